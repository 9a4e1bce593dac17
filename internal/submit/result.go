package submit

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/abhisek/checkform/internal/form"
)

// Result is the outcome of one submission the remote party understood.
// Success false means the remote party rejected specific fields.
type Result struct {
	Success bool
	Errors  []FieldError
}

// FieldError lists the constraint violations reported for one field.
// Field may be empty when the server reports a record-level message.
type FieldError struct {
	Field    string
	Messages []string
}

// Messages flattens the field errors into display lines, preserving order.
func (r *Result) Messages() []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, fe := range r.Errors {
		out = append(out, fe.Messages...)
	}
	return out
}

// recordPayload is the wire shape of a submitted record.
type recordPayload struct {
	Name      string     `json:"name"`
	Age       *float64   `json:"age"`
	IsMarried *bool      `json:"is_married"`
	BirthDate *time.Time `json:"birth_date"`
}

type namePayload struct {
	Name string `json:"name"`
}

func encodeRecord(r form.AnswerRecord) ([]byte, error) {
	p := recordPayload{
		Name:      r.Name,
		Age:       r.Age,
		IsMarried: r.IsMarried,
	}
	if r.BirthDate != nil {
		d := r.BirthDate.UTC()
		p.BirthDate = &d
	}
	return json.Marshal(p)
}

type wireResult struct {
	Success bool             `json:"success"`
	Errors  []wireFieldError `json:"errors"`
}

// wireFieldError accepts the shapes servers use for field errors: a bare
// string, {field, messages} or {property, constraints} where constraints
// is either a list or an object keyed by constraint name.
type wireFieldError struct {
	Field    string
	Messages []string
}

func (w *wireFieldError) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		w.Messages = []string{s}
		return nil
	}

	var obj struct {
		Field       string          `json:"field"`
		Property    string          `json:"property"`
		Messages    []string        `json:"messages"`
		Constraints json.RawMessage `json:"constraints"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	w.Field = obj.Field
	if w.Field == "" {
		w.Field = obj.Property
	}
	w.Messages = obj.Messages

	if len(obj.Constraints) == 0 || string(obj.Constraints) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(obj.Constraints, &list); err == nil {
		w.Messages = append(w.Messages, list...)
		return nil
	}
	msgs, err := constraintMessages(obj.Constraints)
	if err != nil {
		return err
	}
	w.Messages = append(w.Messages, msgs...)
	return nil
}

// constraintMessages reads a {name: message} object and returns the
// messages in document order.
func constraintMessages(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("constraints: expected object, got %v", tok)
	}

	var msgs []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("constraints: %w", err)
		}
		if tok == json.Delim('}') {
			return msgs, nil
		}
		if _, ok := tok.(string); !ok {
			return nil, fmt.Errorf("constraints: expected key, got %v", tok)
		}
		val, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("constraints: %w", err)
		}
		msg, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("constraints: expected string message, got %v", val)
		}
		msgs = append(msgs, msg)
	}
}

// decodeResult checks body against the response contract and decodes it.
func decodeResult(body []byte) (*Result, error) {
	if err := validateContract(body); err != nil {
		return nil, err
	}

	var wr wireResult
	if err := json.Unmarshal(body, &wr); err != nil {
		return nil, &ErrInvalidResponse{Body: body, Err: err}
	}

	res := &Result{Success: wr.Success}
	for _, fe := range wr.Errors {
		res.Errors = append(res.Errors, FieldError(fe))
	}
	return res, nil
}
