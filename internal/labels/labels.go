// Package labels holds the user-facing text of the TUI in every
// supported language.
package labels

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/checkform/internal/form"
)

// DefaultLocale is the catalog used when none is configured.
const DefaultLocale = "it"

//go:embed labels.yaml
var catalogYAML []byte

// Labels is the text set for one locale.
type Labels struct {
	AppTitle string `yaml:"app_title"`

	Menu struct {
		CheckForm string `yaml:"check_form"`
		CheckName string `yaml:"check_name"`
		History   string `yaml:"history"`
		Quit      string `yaml:"quit"`
	} `yaml:"menu"`

	Questions    map[form.Field]string `yaml:"questions"`
	Placeholders map[form.Field]string `yaml:"placeholders"`

	Choice struct {
		Yes string `yaml:"yes"`
		No  string `yaml:"no"`
	} `yaml:"choice"`

	Buttons struct {
		Back    string `yaml:"back"`
		Next    string `yaml:"next"`
		Submit  string `yaml:"submit"`
		Cancel  string `yaml:"cancel"`
		Retry   string `yaml:"retry"`
		Edit    string `yaml:"edit"`
		NewForm string `yaml:"new_form"`
		Check   string `yaml:"check"`
	} `yaml:"buttons"`

	Status struct {
		Submitting     string `yaml:"submitting"`
		Failed         string `yaml:"failed"`
		Valid          string `yaml:"valid"`
		Invalid        string `yaml:"invalid"`
		SubmittedToast string `yaml:"submitted_toast"`
	} `yaml:"status"`

	StepFormat     string `yaml:"step"`
	CheckNameTitle string `yaml:"check_name_title"`
	HistoryTitle   string `yaml:"history_title"`
	HistoryEmpty   string `yaml:"history_empty"`
	NotFound       string `yaml:"not_found"`
	Home           string `yaml:"home"`
}

// Question returns the prompt for f.
func (l *Labels) Question(f form.Field) string {
	return l.Questions[f]
}

// Placeholder returns the input placeholder for f.
func (l *Labels) Placeholder(f form.Field) string {
	return l.Placeholders[f]
}

// Step renders the step counter, 1-based.
func (l *Labels) Step(current, total int) string {
	return fmt.Sprintf(l.StepFormat, current+1, total)
}

var (
	loadOnce sync.Once
	catalog  map[string]*Labels
	loadErr  error
)

func load() (map[string]*Labels, error) {
	loadOnce.Do(func() {
		var c map[string]*Labels
		if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
			loadErr = fmt.Errorf("parse label catalog: %w", err)
			return
		}
		catalog = c
	})
	return catalog, loadErr
}

// For returns the labels of locale.
func For(locale string) (*Labels, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	l, ok := c[locale]
	if !ok {
		return nil, fmt.Errorf("unknown locale %q (available: %v)", locale, Locales())
	}
	return l, nil
}

// MustFor is For for callers holding a validated locale.
func MustFor(locale string) *Labels {
	l, err := For(locale)
	if err != nil {
		panic(err)
	}
	return l
}

// Locales lists the available locales, sorted.
func Locales() []string {
	c, _ := load()
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Has reports whether locale is in the catalog.
func Has(locale string) bool {
	c, _ := load()
	_, ok := c[locale]
	return ok
}
