package checkform

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/ui/components"
	"github.com/abhisek/checkform/internal/ui/theme"
	"github.com/abhisek/checkform/internal/wizard"
)

const cardWidth = 72

func (s *CheckFormScreen) View(width, height int) string {
	var body string
	switch s.ctrl.Status() {
	case wizard.StatusSubmitting:
		body = s.renderSubmitting()
	case wizard.StatusSucceeded:
		body = s.renderSucceeded()
	case wizard.StatusFailed:
		body = s.renderFailed()
	default:
		body = s.renderStep()
	}

	card := theme.Card.Width(cardWidth).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *CheckFormScreen) renderStep() string {
	var b strings.Builder

	progress := components.StepProgress{
		Label:   s.labels.Step(s.ctrl.Step(), s.ctrl.StepCount()),
		Current: s.ctrl.Step(),
		Total:   s.ctrl.StepCount(),
		Width:   cardWidth - 6,
	}
	b.WriteString(progress.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render(s.labels.Question(s.field)))
	b.WriteString("\n\n")

	if s.field == form.FieldIsMarried {
		b.WriteString(s.choice.View())
		if s.attempted && s.choice.Value() == nil {
			b.WriteString("\n" + theme.FieldError.Render("  "+form.MsgMarriedRequired))
		}
	} else {
		b.WriteString(s.input.View())
		if s.attempted && s.input.Error == "" && !s.ctrl.IsValidStep() {
			b.WriteString("\n" + theme.FieldError.Render("  "+strings.Join(form.ValidateField(s.ctrl.Record(), s.field), ", ")))
		}
	}

	for _, msg := range s.ctrl.RecordErrors() {
		b.WriteString("\n" + theme.FieldError.Render("  "+msg))
	}
	b.WriteString("\n\n")

	buttons := make([]components.Button, 0, 2)
	if s.ctrl.Step() > 0 {
		buttons = append(buttons, components.Button{Label: s.labels.Buttons.Back, Key: "esc"})
	}
	next := components.Button{Label: s.labels.Buttons.Next, Key: "enter", Primary: true, Disabled: !s.ctrl.IsValidStep()}
	if s.ctrl.IsLastStep() {
		next.Label = s.labels.Buttons.Submit
	}
	buttons = append(buttons, next)
	b.WriteString(components.ButtonRow(buttons...))

	return b.String()
}

func (s *CheckFormScreen) renderSubmitting() string {
	return theme.Pending.Render(s.labels.Status.Submitting) + "\n\n" +
		components.ButtonRow(components.Button{Label: s.labels.Buttons.Cancel, Key: "esc"})
}

func (s *CheckFormScreen) renderSucceeded() string {
	box := theme.SuccessBox.Render(theme.Valid.Render(s.labels.Status.Valid))
	return box + "\n\n" +
		components.ButtonRow(components.Button{Label: s.labels.Buttons.NewForm, Key: "enter", Primary: true})
}

func (s *CheckFormScreen) renderFailed() string {
	var b strings.Builder
	buttons := []components.Button{{Label: s.labels.Buttons.Edit, Key: "e"}}

	if s.ctrl.FailureKind() == wizard.FailureTransport {
		b.WriteString(theme.Invalid.Render(s.labels.Status.Failed))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(s.ctrl.FailureMessage()))
		buttons = append([]components.Button{{Label: s.labels.Buttons.Retry, Key: "r", Primary: true}}, buttons...)
	} else {
		b.WriteString(theme.ErrorBox.Render(renderFieldErrors(s.labels.Status.Invalid, s.ctrl)))
	}

	buttons = append(buttons, components.Button{Label: s.labels.Buttons.NewForm, Key: "n"})
	b.WriteString("\n\n")
	b.WriteString(components.ButtonRow(buttons...))
	return b.String()
}

// renderFieldErrors lists the rejected fields with their messages verbatim.
func renderFieldErrors(title string, ctrl *wizard.Controller) string {
	lines := []string{theme.Invalid.Render(title), ""}
	res := ctrl.LastResult()
	if res == nil {
		return strings.Join(lines, "\n")
	}
	for _, fe := range res.Errors {
		for _, m := range fe.Messages {
			line := "• " + m
			if fe.Field != "" {
				line = fmt.Sprintf("• %s: %s", fe.Field, m)
			}
			lines = append(lines, theme.FieldError.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}
