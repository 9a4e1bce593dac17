package submit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeResult_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *Result
	}{
		{
			name: "success without errors",
			body: `{"success":true}`,
			want: &Result{Success: true},
		},
		{
			name: "null errors",
			body: `{"success":true,"errors":null}`,
			want: &Result{Success: true},
		},
		{
			name: "field and messages",
			body: `{"success":false,"errors":[{"field":"age","messages":["must be an integer"]}]}`,
			want: &Result{Errors: []FieldError{{Field: "age", Messages: []string{"must be an integer"}}}},
		},
		{
			name: "property and constraint map in server order",
			body: `{"success":false,"errors":[{"property":"name","constraints":{"minLength":"too short","isString":"not a string"}}]}`,
			want: &Result{Errors: []FieldError{{Field: "name", Messages: []string{"too short", "not a string"}}}},
		},
		{
			name: "constraint map keeps order against key sort",
			body: `{"success":false,"errors":[{"property":"age","constraints":{"min":"age must not be less than 1","isInt":"age must be an integer"}}]}`,
			want: &Result{Errors: []FieldError{{Field: "age", Messages: []string{"age must not be less than 1", "age must be an integer"}}}},
		},
		{
			name: "messages then constraints",
			body: `{"success":false,"errors":[{"field":"age","messages":["first"],"constraints":{"z":"second","a":"third"}}]}`,
			want: &Result{Errors: []FieldError{{Field: "age", Messages: []string{"first", "second", "third"}}}},
		},
		{
			name: "constraint list",
			body: `{"success":false,"errors":[{"field":"birth_date","constraints":["must be a date"]}]}`,
			want: &Result{Errors: []FieldError{{Field: "birth_date", Messages: []string{"must be a date"}}}},
		},
		{
			name: "bare strings keep order",
			body: `{"success":false,"errors":["first","second"]}`,
			want: &Result{Errors: []FieldError{{Messages: []string{"first"}}, {Messages: []string{"second"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeResult([]byte(tt.body))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decodeResult mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConstraintMessagesRejectsNonStrings(t *testing.T) {
	_, err := constraintMessages([]byte(`{"min":1}`))
	require.Error(t, err)

	msgs, err := constraintMessages([]byte(`{}`))
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestResultMessages(t *testing.T) {
	r := &Result{Errors: []FieldError{
		{Field: "age", Messages: []string{"a", "b"}},
		{Field: "name", Messages: []string{"c"}},
	}}
	if diff := cmp.Diff([]string{"a", "b", "c"}, r.Messages()); diff != "" {
		t.Errorf("Messages mismatch (-want +got):\n%s", diff)
	}

	var nilResult *Result
	if nilResult.Messages() != nil {
		t.Error("expected nil messages for nil result")
	}
}
