package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/checkform/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Toaster is an optional interface for screens that show a transient
// status message in the footer.
type Toaster interface {
	Toast() (text string, isError bool)
}

// Page names a routable screen.
type Page string

const (
	PageHome      Page = "home"
	PageCheckForm Page = "check-form"
	PageCheckName Page = "check-name"
	PageHistory   Page = "history"
)

// Pages lists the routable pages in menu order.
var Pages = []Page{PageHome, PageCheckForm, PageCheckName, PageHistory}
