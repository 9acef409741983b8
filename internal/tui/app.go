// Package tui is the interactive gallery: a terminal "new tab" that shows
// one artwork per session and prepares the next one in the background.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"

	"github.com/marchand/easel/internal/domain"
	"github.com/marchand/easel/internal/render"
	"github.com/marchand/easel/internal/session"
	"github.com/marchand/easel/internal/tui/styles"
)

// NewControllerFunc builds a session controller rendering into r, with
// queries optionally pinned to one artist.
type NewControllerFunc func(pinArtist string, r domain.Renderer) (*session.Controller, error)

// App holds the gallery's collaborators.
type App struct {
	NewController NewControllerFunc
	Loader        *render.Loader
	Artists       []string
	Logger        *slog.Logger
}

// Run starts the gallery and blocks until quit. In-flight background
// refills are joined before returning.
func (a *App) Run() error {
	if a.Logger == nil {
		a.Logger = slog.Default()
	}

	// Repinning the artist rebuilds the controller mid-run, so track every
	// controller created and join their refills on exit.
	var (
		mu    sync.Mutex
		ctrls []*session.Controller
	)
	newController := func(pin string, r domain.Renderer) (*session.Controller, error) {
		ctrl, err := a.NewController(pin, r)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		ctrls = append(ctrls, ctrl)
		mu.Unlock()
		return ctrl, nil
	}

	br := newBridge(a.Loader)
	ctrl, err := newController("", br)
	if err != nil {
		return err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	m := model{
		app:           a,
		newController: newController,
		bridge:        br,
		ctrl:          ctrl,
		spinner:       sp,
		picker:        newPicker(a.Artists),
		loading:       true,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	for _, c := range ctrls {
		c.Wait()
	}
	return nil
}

type model struct {
	app           *App
	newController NewControllerFunc
	bridge        *bridge
	ctrl          *session.Controller

	spinner spinner.Model
	picker  picker

	width  int
	height int

	loading    bool
	showPicker bool
	showHelp   bool
	failed     bool

	pin     string
	kind    session.StartKind
	artwork *domain.Artwork
	img     *render.Image
	status  string
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startSession(), m.waitForRender())
}

// startSession runs the cache-ahead controller off the update loop. The
// rendered artwork arrives separately through the bridge channel.
func (m model) startSession() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		kind, err := ctrl.Start(context.Background())
		return sessionDoneMsg{kind: kind, err: err}
	}
}

// waitForRender forwards the next bridge event into the update loop
func (m model) waitForRender() tea.Cmd {
	events := m.bridge.events
	return func() tea.Msg {
		return renderMsg(<-events)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionDoneMsg:
		m.kind = msg.kind
		if msg.err != nil {
			m.app.Logger.Warn("session ended with render error", "error", msg.err)
		}
		return m, nil

	case renderMsg:
		m.loading = false
		if msg.failed {
			m.failed = true
			m.artwork = nil
			m.img = nil
			return m, nil
		}
		m.failed = false
		m.artwork = msg.artwork
		m.img = msg.img
		m.status = ""
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showPicker {
		selected, done, cmd := m.picker.update(msg)
		if done {
			m.showPicker = false
			m.picker.close()
			if selected != "" && selected != m.pin {
				return m.repin(selected)
			}
			return m, cmd
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, keys.NewTab):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.startSession(), m.waitForRender())

	case key.Matches(msg, keys.Artist):
		m.showPicker = true
		m.picker.open()
		return m, nil

	case key.Matches(msg, keys.Open):
		if m.artwork == nil {
			return m, nil
		}
		imageURL := m.artwork.ImageURL
		return m, func() tea.Msg {
			if err := render.OpenInBrowser(imageURL); err != nil {
				return statusMsg("could not open browser")
			}
			return statusMsg("opened in browser")
		}

	case key.Matches(msg, keys.Save):
		if m.img == nil || m.artwork == nil {
			return m, nil
		}
		img, artwork := m.img, m.artwork
		return m, func() tea.Msg {
			path := savePath(artwork, img)
			if err := atomic.WriteFile(path, bytes.NewReader(img.Bytes)); err != nil {
				return statusMsg("save failed")
			}
			return statusMsg(fmt.Sprintf("saved %s (%s)", path, humanize.IBytes(uint64(len(img.Bytes)))))
		}
	}

	return m, nil
}

// repin rebuilds the controller around a single-artist canon and starts a
// fresh session.
func (m model) repin(artist string) (tea.Model, tea.Cmd) {
	ctrl, err := m.newController(artist, m.bridge)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.pin = artist
	m.ctrl = ctrl
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.startSession(), m.waitForRender())
}

func (m model) View() string {
	var body string

	switch {
	case m.loading:
		body = fmt.Sprintf("%s fetching artwork...", m.spinner.View())
	case m.failed:
		body = styles.ErrorStyle.Render("No artwork could be displayed. Check your network connection.")
	case m.artwork != nil:
		body = m.cardView()
	}

	if m.showPicker {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.picker.view())
	}

	sections := []string{body, "", m.statusView()}
	if m.showHelp {
		sections = append(sections, m.helpView())
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m model) cardView() string {
	a := m.artwork

	details := fmt.Sprintf("%dx%d %s, %s", m.img.Width, m.img.Height, m.img.Format, humanize.IBytes(uint64(len(m.img.Bytes))))

	card := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(a.Title),
		styles.SubtitleStyle.Render(a.Attribution()),
		"",
		styles.DimStyle.Render(a.Source),
		styles.DimStyle.Render(details),
	)

	return styles.CardBorder.Render(card)
}

func (m model) statusView() string {
	if m.status != "" {
		return styles.SuccessStyle.Render(m.status)
	}

	var parts []string
	if m.artwork != nil {
		parts = append(parts, fmt.Sprintf("%s start", m.kind))
		parts = append(parts, "next artwork prepared in background")
	}
	if m.pin != "" {
		parts = append(parts, styles.AccentStyle.Render("pinned: "+m.pin))
	}
	parts = append(parts, "? for help")

	return styles.DimStyle.Render(strings.Join(parts, "  ·  "))
}

func (m model) helpView() string {
	bindings := []key.Binding{keys.NewTab, keys.Open, keys.Save, keys.Artist, keys.Help, keys.Quit}

	var b strings.Builder
	for i, kb := range bindings {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(styles.AccentStyle.Render(kb.Help().Key))
		b.WriteString(" ")
		b.WriteString(styles.DimStyle.Render(kb.Help().Desc))
	}
	return b.String()
}

// savePath derives a filename from the artwork title and image format
func savePath(a *domain.Artwork, img *render.Image) string {
	name := strings.ToLower(a.Title)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, name)
	name = strings.Trim(name, "-")
	if name == "" {
		name = "artwork"
	}

	ext := img.Format
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("easel-%s.%s", name, ext)
}
