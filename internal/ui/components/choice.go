package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/checkform/internal/ui/theme"
)

// Choice is a yes/no radio group. It starts unanswered.
type Choice struct {
	Yes, No string
	value   *bool
}

// NewChoice creates a yes/no selector with the given option labels.
func NewChoice(yes, no string, value *bool) Choice {
	c := Choice{Yes: yes, No: no}
	c.SetValue(value)
	return c
}

// Init returns nil.
func (c Choice) Init() tea.Cmd {
	return nil
}

// Update handles selection keys: arrows and tab move between the two
// options, y/s pick yes and n picks no.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "left", "k", "h":
		c.set(true)
	case "down", "right", "j", "l":
		c.set(false)
	case "tab", "space":
		c.set(c.value == nil || !*c.value)
	case "y", "s":
		c.set(true)
	case "n":
		c.set(false)
	}
	return c, nil
}

func (c *Choice) set(v bool) {
	c.value = &v
}

// Value returns the selection, nil while unanswered.
func (c Choice) Value() *bool {
	if c.value == nil {
		return nil
	}
	v := *c.value
	return &v
}

// SetValue replaces the selection.
func (c *Choice) SetValue(v *bool) {
	if v == nil {
		c.value = nil
		return
	}
	c.set(*v)
}

// View renders the two options side by side.
func (c Choice) View() string {
	return c.option(c.Yes, c.value != nil && *c.value) + "    " +
		c.option(c.No, c.value != nil && !*c.value)
}

func (c Choice) option(label string, on bool) string {
	if on {
		return theme.Selected.Render("(•) " + label)
	}
	return theme.Unselected.Render("( ) " + label)
}
