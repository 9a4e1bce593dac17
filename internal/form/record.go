package form

import "time"

// Field names a single answer in the record. Values match the wire keys.
type Field string

const (
	FieldName      Field = "name"
	FieldAge       Field = "age"
	FieldIsMarried Field = "is_married"
	FieldBirthDate Field = "birth_date"
)

// Fields lists every field in collection order.
var Fields = []Field{FieldName, FieldAge, FieldIsMarried, FieldBirthDate}

// AdultAge is the age at which marital status becomes required.
const AdultAge = 18

// AnswerRecord is the record under construction by the wizard.
// Nil pointers mean "not answered yet". The validate tags are the field
// rules; the adult marital-status rule is registered on the struct.
type AnswerRecord struct {
	Name      string     `json:"name" validate:"required,min=1"`
	Age       *float64   `json:"age" validate:"required,finite,gt=0"`
	IsMarried *bool      `json:"is_married"`
	BirthDate *time.Time `json:"birth_date" validate:"required,calendar_date"`
}

// Clone returns a deep copy so a submitted record cannot be mutated
// by later edits.
func (r AnswerRecord) Clone() AnswerRecord {
	out := AnswerRecord{Name: r.Name}
	if r.Age != nil {
		v := *r.Age
		out.Age = &v
	}
	if r.IsMarried != nil {
		v := *r.IsMarried
		out.IsMarried = &v
	}
	if r.BirthDate != nil {
		v := *r.BirthDate
		out.BirthDate = &v
	}
	return out
}

// IsZero reports whether no field has been answered.
func (r AnswerRecord) IsZero() bool {
	return r.Name == "" && r.Age == nil && r.IsMarried == nil && r.BirthDate == nil
}

// IsAdult reports whether the age is known and at least AdultAge.
func (r AnswerRecord) IsAdult() bool {
	return r.Age != nil && *r.Age >= AdultAge
}

// IsMinor reports whether the age is known and below AdultAge.
func (r AnswerRecord) IsMinor() bool {
	return r.Age != nil && *r.Age < AdultAge
}

// Float returns a pointer to v. Handy for building records in code.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Date returns a pointer to the UTC midnight of the given calendar day.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
