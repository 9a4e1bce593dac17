package checkform

import "github.com/abhisek/checkform/internal/wizard"

// submittedMsg carries the outcome of one submission attempt back to the
// control loop.
type submittedMsg struct {
	Outcome wizard.Outcome
}

// toastExpiredMsg clears the status line if it still shows toast Seq.
type toastExpiredMsg struct {
	Seq int
}
