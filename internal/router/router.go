package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/checkform/internal/screen"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen without growing the stack.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// NavigateMsg pushes the screen registered for Page. Unknown pages open
// the not-found screen.
type NavigateMsg struct {
	Page screen.Page
}

// HomeMsg pops back to the first screen.
type HomeMsg struct{}

// Route builds a fresh screen for a page.
type Route func() screen.Screen

// Router manages a stack of screens and the table of named pages.
type Router struct {
	stack    []screen.Screen
	routes   map[screen.Page]Route
	notFound Route
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack:  []screen.Screen{initial},
		routes: make(map[screen.Page]Route),
	}
}

// Handle registers the route for page.
func (r *Router) Handle(page screen.Page, route Route) {
	r.routes[page] = route
}

// HandleNotFound registers the route used for unknown pages.
func (r *Router) HandleNotFound(route Route) {
	r.notFound = route
}

// Resolve builds the screen for page. It returns nil when page is unknown
// and no not-found route is registered.
func (r *Router) Resolve(page screen.Page) screen.Screen {
	if route, ok := r.routes[page]; ok {
		return route()
	}
	if r.notFound != nil {
		return r.notFound()
	}
	return nil
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// PopToRoot drops every screen above the first.
func (r *Router) PopToRoot() tea.Cmd {
	r.stack = r.stack[:1]
	return nil
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case NavigateMsg:
		if s := r.Resolve(msg.Page); s != nil {
			return r.Push(s)
		}
		return nil
	case HomeMsg:
		return r.PopToRoot()
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}

// Navigate returns a command that opens page.
func Navigate(page screen.Page) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Page: page} }
}

// Back returns a command that pops the active screen.
func Back() tea.Msg { return PopScreenMsg{} }
