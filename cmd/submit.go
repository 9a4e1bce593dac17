package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/checkform/internal/form"
	"github.com/abhisek/checkform/internal/store"
	"github.com/abhisek/checkform/internal/wizard"
)

// ErrSubmissionFailed is returned when the server rejects the record or
// cannot be reached. The details have already been printed.
var ErrSubmissionFailed = errors.New("submission failed")

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Fill in and submit the form without the TUI",
	Example: `  checkform submit --name Mario --age 16 --birth-date 01-05-2010
  checkform submit --name Anna --age 30 --married no --birth-date 02-03-1994`,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers := map[form.Field]string{}
		for _, f := range form.Fields {
			v, _ := cmd.Flags().GetString(flagName(f))
			answers[f] = v
		}

		var repo store.SubmissionRepo
		st, err := openJournal()
		if err != nil {
			logger.Warn("journal unavailable", zap.Error(err))
		} else {
			defer st.Close()
			repo = st.SubmissionRepo()
		}
		client, err := newClient(repo)
		if err != nil {
			return err
		}

		return runSubmit(cmd.Context(), client, answers, cmd.OutOrStdout())
	},
}

func init() {
	submitCmd.Flags().String("name", "", "Your name")
	submitCmd.Flags().String("age", "", "Your age")
	submitCmd.Flags().String("married", "", "yes or no; required from age 18")
	submitCmd.Flags().String("birth-date", "", "Birth date as DD-MM-YYYY")
}

func flagName(f form.Field) string {
	switch f {
	case form.FieldIsMarried:
		return "married"
	case form.FieldBirthDate:
		return "birth-date"
	}
	return string(f)
}

// runSubmit walks the wizard with the given answers, applying the same
// step gates as the TUI, then submits and prints the outcome.
func runSubmit(ctx context.Context, client wizard.Submitter, answers map[form.Field]string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctrl := wizard.New()

	for {
		f, ok := ctrl.CurrentField()
		if !ok {
			return fmt.Errorf("step %d has no field", ctrl.Step())
		}
		if err := ctrl.UpdateField(f, answers[f]); err != nil {
			return fmt.Errorf("--%s: %w", flagName(f), err)
		}
		if ctrl.IsLastStep() {
			break
		}
		if !ctrl.Advance() {
			return fmt.Errorf("--%s: %s", flagName(f), stepError(ctrl, f))
		}
	}

	attempt, ok := ctrl.Submit()
	if !ok {
		if msgs := ctrl.RecordErrors(); len(msgs) > 0 {
			return errors.New(strings.Join(msgs, "; "))
		}
		f, _ := ctrl.CurrentField()
		return fmt.Errorf("--%s: %s", flagName(f), stepError(ctrl, f))
	}

	logger.Debug("submitting", zap.String("session_id", attempt.SessionID))
	ctrl.Apply(attempt.Run(ctx, client))

	switch ctrl.Status() {
	case wizard.StatusSucceeded:
		fmt.Fprintln(out, "✓ Submitted data is valid.")
		return nil
	case wizard.StatusFailed:
		if ctrl.FailureKind() == wizard.FailureTransport {
			fmt.Fprintln(out, "✗ Error sending data:", ctrl.FailureMessage())
			return ErrSubmissionFailed
		}
		fmt.Fprintln(out, "✗ Submitted data is not valid:")
		for _, fe := range ctrl.LastResult().Errors {
			for _, m := range fe.Messages {
				if fe.Field != "" {
					fmt.Fprintf(out, "  %s: %s\n", fe.Field, m)
				} else {
					fmt.Fprintf(out, "  %s\n", m)
				}
			}
		}
		return ErrSubmissionFailed
	}
	return fmt.Errorf("unexpected status %s", ctrl.Status())
}

func stepError(ctrl *wizard.Controller, f form.Field) string {
	if msg := ctrl.FieldError(f); msg != "" {
		return msg
	}
	if f == form.FieldIsMarried {
		return form.MsgMarriedRequired
	}
	return "value required"
}
