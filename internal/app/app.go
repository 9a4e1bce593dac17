package app

import (
	"fmt"
	"net/url"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/checkform/internal/labels"
	"github.com/abhisek/checkform/internal/router"
	"github.com/abhisek/checkform/internal/screen"
	"github.com/abhisek/checkform/internal/screens/checkform"
	"github.com/abhisek/checkform/internal/screens/checkname"
	"github.com/abhisek/checkform/internal/screens/history"
	"github.com/abhisek/checkform/internal/screens/home"
	"github.com/abhisek/checkform/internal/screens/notfound"
	"github.com/abhisek/checkform/internal/store"
	"github.com/abhisek/checkform/internal/submit"
	"github.com/abhisek/checkform/internal/ui/layout"
	"github.com/abhisek/checkform/internal/ui/theme"
)

// Options holds dependencies for the TUI.
type Options struct {
	Labels   *labels.Labels
	Client   submit.Client
	Repo     store.SubmissionRepo // nil disables the history page
	Logger   *zap.Logger
	Endpoint string
	Page     screen.Page // page opened on start; empty means home
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	labels   *labels.Labels
	endpoint string
	start    screen.Page
	width    int
	height   int
}

// newAppModel creates a new AppModel with the home screen and every page
// registered.
func newAppModel(opts Options) AppModel {
	l := opts.Labels
	if l == nil {
		l = labels.MustFor(labels.DefaultLocale)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := router.New(home.New(l, opts.Repo, opts.Endpoint))
	r.Handle(screen.PageHome, func() screen.Screen { return home.New(l, opts.Repo, opts.Endpoint) })
	r.Handle(screen.PageCheckForm, func() screen.Screen { return checkform.New(opts.Client, l, log) })
	r.Handle(screen.PageCheckName, func() screen.Screen { return checkname.New(opts.Client, l, log) })
	if opts.Repo != nil {
		r.Handle(screen.PageHistory, func() screen.Screen { return history.New(opts.Repo, l) })
	}
	r.HandleNotFound(func() screen.Screen { return notfound.New(l) })

	return AppModel{
		router:   r,
		labels:   l,
		endpoint: hostOf(opts.Endpoint),
		start:    opts.Page,
	}
}

func hostOf(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return endpoint
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.start != "" && m.start != screen.PageHome {
		cmds = append(cmds, router.Navigate(m.start))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(m.labels.AppTitle, title, m.endpoint, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: m.labels.Menu.Quit})

	toast := ""
	if t, ok := active.(screen.Toaster); ok {
		if text, isErr := t.Toast(); text != "" {
			style := theme.ToastSuccess
			if isErr {
				style = theme.ToastError
			}
			toast = style.Render(text)
		}
	}

	footer := layout.RenderFooter(footerHints, toast, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
