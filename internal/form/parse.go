package form

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Accepted birth date layouts. The first is the one shown to users.
const (
	DateLayout    = "02-01-2006"
	ISODateLayout = "2006-01-02"
)

// dateLayouts are tried in order. Day and month may have one digit and
// be separated by '-' or '/'.
var dateLayouts = []string{DateLayout, "2-1-2006", "2/1/2006", ISODateLayout}

var (
	ErrNotANumber  = errors.New(MsgAgeNotNumber)
	ErrInvalidDate = errors.New(MsgBirthDateInvalid)
	ErrNotYesNo    = errors.New("answer must be yes or no")
)

// ParseAge parses free-text age input. Empty input yields nil with no
// error, so clearing the field un-answers it.
func ParseAge(s string) (*float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ErrNotANumber
	}
	return &v, nil
}

// ParseBirthDate parses DD-MM-YYYY, DD/MM/YYYY or YYYY-MM-DD. time.Parse rejects
// impossible days such as 31-02, which is what makes this a calendar check.
func ParseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDate
}

// ParseMarried maps a yes/no answer to a bool. Italian and English
// spellings are accepted.
func ParseMarried(s string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "s", "si", "sì", "y", "yes", "true":
		return Bool(true), nil
	case "n", "no", "false":
		return Bool(false), nil
	}
	return nil, ErrNotYesNo
}

// FormatAge renders an age for redisplay in a text input.
func FormatAge(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormatBirthDate renders a birth date in DateLayout.
func FormatBirthDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
