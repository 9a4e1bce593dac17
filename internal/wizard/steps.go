package wizard

import (
	"math"
	"sort"

	"github.com/abhisek/checkform/internal/form"
)

// AgeBracket selects the branch of the step sequence.
type AgeBracket int

const (
	BracketUnknown AgeBracket = iota // age unset or not a number
	BracketMinor                     // age < 18
	BracketAdult                     // age >= 18
)

func (b AgeBracket) String() string {
	switch b {
	case BracketMinor:
		return "minor"
	case BracketAdult:
		return "adult"
	default:
		return "unknown"
	}
}

// BracketOf classifies the record's current age.
func BracketOf(r form.AnswerRecord) AgeBracket {
	if r.Age == nil || math.IsNaN(*r.Age) {
		return BracketUnknown
	}
	if *r.Age >= form.AdultAge {
		return BracketAdult
	}
	return BracketMinor
}

// Special values of StepSpec.Next.
const (
	NextSubmit = -1 // forward navigation submits the record
	NextNone   = -2 // step is outside the effective sequence; no forward move
)

// StepSpec is one row of the transition table.
type StepSpec struct {
	Index      int
	Field      form.Field   // field collected on this step
	Next       int          // next step index, NextSubmit or NextNone
	Required   []form.Field // must be present and valid before moving forward
	InSequence bool         // part of the effective sequence for the bracket
}

type stepKey struct {
	step    int
	bracket AgeBracket
}

// transitions is keyed by (step, bracket). Step 3 has a row under every
// bracket because its gate always requires birth_date, but only the adult
// row belongs to a sequence. Combinations without a row fall back to an
// unconstrained gate.
var transitions = buildTransitions()

func buildTransitions() map[stepKey]StepSpec {
	t := make(map[stepKey]StepSpec)
	all := []AgeBracket{BracketUnknown, BracketMinor, BracketAdult}

	for _, b := range all {
		t[stepKey{0, b}] = StepSpec{Index: 0, Field: form.FieldName, Next: 1, Required: []form.Field{form.FieldName}, InSequence: true}
		t[stepKey{1, b}] = StepSpec{Index: 1, Field: form.FieldAge, Next: 2, Required: []form.Field{form.FieldAge}, InSequence: true}
	}

	t[stepKey{2, BracketMinor}] = StepSpec{Index: 2, Field: form.FieldBirthDate, Next: NextSubmit, Required: []form.Field{form.FieldBirthDate}, InSequence: true}
	t[stepKey{2, BracketAdult}] = StepSpec{Index: 2, Field: form.FieldIsMarried, Next: 3, Required: []form.Field{form.FieldIsMarried}, InSequence: true}

	t[stepKey{3, BracketAdult}] = StepSpec{Index: 3, Field: form.FieldBirthDate, Next: NextSubmit, Required: []form.Field{form.FieldBirthDate}, InSequence: true}
	t[stepKey{3, BracketMinor}] = StepSpec{Index: 3, Field: form.FieldBirthDate, Next: NextNone, Required: []form.Field{form.FieldBirthDate}}
	t[stepKey{3, BracketUnknown}] = StepSpec{Index: 3, Field: form.FieldBirthDate, Next: NextNone, Required: []form.Field{form.FieldBirthDate}}

	return t
}

// Lookup returns the table row for step under bracket.
func Lookup(step int, b AgeBracket) (StepSpec, bool) {
	s, ok := transitions[stepKey{step, b}]
	return s, ok
}

// Sequence returns the effective steps for a bracket in order.
func Sequence(b AgeBracket) []StepSpec {
	var seq []StepSpec
	for k, s := range transitions {
		if k.bracket == b && s.InSequence {
			seq = append(seq, s)
		}
	}
	sort.Slice(seq, func(i, j int) bool { return seq[i].Index < seq[j].Index })
	return seq
}

// IsLastStep reports whether forward navigation on step submits r.
func IsLastStep(step int, r form.AnswerRecord) bool {
	s, ok := Lookup(step, BracketOf(r))
	return ok && s.InSequence && s.Next == NextSubmit
}

// Gate reports whether the user may move forward from step with r.
// A step with no table row is treated as valid.
func Gate(step int, r form.AnswerRecord) bool {
	s, ok := Lookup(step, BracketOf(r))
	if !ok {
		return true
	}
	for _, f := range s.Required {
		if !satisfied(r, f) {
			return false
		}
	}
	return true
}

// satisfied reports whether f is present and passes its field rule.
func satisfied(r form.AnswerRecord, f form.Field) bool {
	switch f {
	case form.FieldName:
		if r.Name == "" {
			return false
		}
	case form.FieldAge:
		if r.Age == nil {
			return false
		}
	case form.FieldIsMarried:
		if r.IsMarried == nil {
			return false
		}
	case form.FieldBirthDate:
		if r.BirthDate == nil {
			return false
		}
	}
	return len(form.ValidateField(r, f)) == 0
}
