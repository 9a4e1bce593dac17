package form

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validation messages. The wording is shown to the user verbatim.
const (
	MsgNameTooShort     = "Name must be at least 1 characters long"
	MsgAgeNotNumber     = "Age must be a number"
	MsgAgeNotPositive   = "Age must be a positive number"
	MsgBirthDateInvalid = "Birth date must be a valid date"
	MsgMarriedRequired  = "If age is 18 or older, is_married must be specified"
)

// Errors maps a field to its constraint violations.
type Errors map[Field][]string

// Has reports whether the field has at least one violation.
func (e Errors) Has(f Field) bool {
	return len(e[f]) > 0
}

// First returns the first message for the field, or "".
func (e Errors) First(f Field) string {
	if msgs := e[f]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ValidationError is returned by ValidateRecord when the record as a
// whole does not satisfy the schema.
type ValidationError struct {
	Fields Errors
	Record []string // cross-field violations
}

func (e *ValidationError) Error() string {
	var parts []string
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[Field(k)], ", "))
	}
	parts = append(parts, e.Record...)
	return "invalid record: " + strings.Join(parts, "; ")
}

// Custom validation tags.
const (
	tagFinite       = "finite"
	tagCalendarDate = "calendar_date"
	tagAdultMarried = "adult_married"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schema() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(sf reflect.StructField) string {
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation(tagFinite, func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})
		_ = v.RegisterValidation(tagCalendarDate, func(fl validator.FieldLevel) bool {
			t, ok := fl.Field().Interface().(time.Time)
			return ok && !t.IsZero()
		})
		v.RegisterStructValidation(func(sl validator.StructLevel) {
			r := sl.Current().Interface().(AnswerRecord)
			if r.IsAdult() && r.IsMarried == nil {
				sl.ReportError(r.IsMarried, string(FieldIsMarried), "IsMarried", tagAdultMarried, "")
			}
		}, AnswerRecord{})
		validate = v
	})
	return validate
}

// message maps a failed rule to the text shown to the user.
func message(f Field, tag string) string {
	switch f {
	case FieldName:
		return MsgNameTooShort
	case FieldAge:
		if tag == "gt" {
			return MsgAgeNotPositive
		}
		return MsgAgeNotNumber
	case FieldBirthDate:
		return MsgBirthDateInvalid
	case FieldIsMarried:
		return MsgMarriedRequired
	}
	return tag
}

// check runs the struct schema once and splits the violations into
// per-field and cross-field ones.
func check(r AnswerRecord) (Errors, []string) {
	fields := Errors{}
	var record []string

	err := schema().Struct(r)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fields, nil
	}
	for _, fe := range verrs {
		f := Field(fe.Field())
		msg := message(f, fe.Tag())
		if fe.Tag() == tagAdultMarried {
			record = append(record, msg)
			continue
		}
		fields[f] = append(fields[f], msg)
	}
	return fields, record
}

// ValidateField returns the violations of the field-level rule for f.
// is_married has no field-level business rule; see CrossFieldValidate.
func ValidateField(r AnswerRecord, f Field) []string {
	fields, _ := check(r)
	return fields[f]
}

// Validate runs every field-level rule and returns the violations keyed
// by field. A valid record yields an empty map.
func Validate(r AnswerRecord) Errors {
	fields, _ := check(r)
	return fields
}

// CrossFieldValidate checks rules spanning more than one field: an adult
// must state marital status, a minor is unconstrained.
func CrossFieldValidate(r AnswerRecord) []string {
	_, record := check(r)
	return record
}

// ValidateRecord runs field and cross-field rules together. It returns
// nil or a *ValidationError.
func ValidateRecord(r AnswerRecord) error {
	fields, record := check(r)
	if len(fields) == 0 && len(record) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields, Record: record}
}
