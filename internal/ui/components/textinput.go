package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/checkform/internal/ui/theme"
)

// InputKind restricts which printable keys a TextInput accepts.
type InputKind int

const (
	KindText    InputKind = iota
	KindDecimal           // digits and one decimal separator
	KindDate              // digits and date separators
)

// TextInput wraps bubbles/textinput with checkform styling and an
// inline error line.
type TextInput struct {
	Model textinput.Model
	Kind  InputKind
	Error string
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, kind InputKind, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model: ti,
		Kind:  kind,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Printable keys the kind does not accept are
// dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if key == "space" && t.Kind != KindText {
			return t, nil
		}
		if len(key) == 1 && !t.accepts(key[0]) {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) accepts(c byte) bool {
	isDigit := c >= '0' && c <= '9'
	switch t.Kind {
	case KindDecimal:
		if c == '.' || c == ',' {
			return !strings.ContainsAny(t.Model.Value(), ".,")
		}
		return isDigit
	case KindDate:
		return isDigit || c == '-' || c == '/'
	}
	return true
}

// View renders the input with its error line, if any.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.Error != "" {
		view += "\n" + theme.FieldError.Render("  "+t.Error)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus so key presses are ignored.
func (t *TextInput) Blur() {
	t.Model.Blur()
}
