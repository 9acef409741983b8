package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/marchand/easel/internal/tui/styles"
)

const pickerHeight = 10

// picker is the artist-pin overlay: a text input fuzzy-filtering the canon.
type picker struct {
	input   textinput.Model
	artists []string
	matches []fuzzy.Match
	cursor  int
}

func newPicker(artists []string) picker {
	input := textinput.New()
	input.Placeholder = "artist"
	input.Prompt = "/ "
	input.CharLimit = 40

	p := picker{input: input, artists: artists}
	p.filter()
	return p
}

func (p *picker) open() {
	p.input.SetValue("")
	p.input.Focus()
	p.cursor = 0
	p.filter()
}

func (p *picker) close() {
	p.input.Blur()
}

// filter recomputes the match list for the current query. An empty query
// lists the whole canon in order.
func (p *picker) filter() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.matches = make([]fuzzy.Match, len(p.artists))
		for i, a := range p.artists {
			p.matches[i] = fuzzy.Match{Str: a, Index: i}
		}
	} else {
		p.matches = fuzzy.Find(query, p.artists)
	}
	if p.cursor >= len(p.matches) {
		p.cursor = 0
	}
}

// update handles one key event. It returns the selected artist (empty until
// confirmed) and whether the overlay should close.
func (p *picker) update(msg tea.KeyMsg) (selected string, done bool, cmd tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		return "", true, nil
	case key.Matches(msg, keys.Confirm):
		if len(p.matches) == 0 {
			return "", true, nil
		}
		return p.matches[p.cursor].Str, true, nil
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		return "", false, nil
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.matches)-1 {
			p.cursor++
		}
		return "", false, nil
	}

	var c tea.Cmd
	p.input, c = p.input.Update(msg)
	p.filter()
	return "", false, c
}

func (p *picker) view() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n")

	start := 0
	if p.cursor >= pickerHeight {
		start = p.cursor - pickerHeight + 1
	}
	end := min(start+pickerHeight, len(p.matches))

	for i := start; i < end; i++ {
		m := p.matches[i]
		line := highlightMatch(m)
		if i == p.cursor {
			line = styles.HighlightStyle.Render(m.Str)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	if len(p.matches) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("no matches"))
	}

	return styles.OverlayBorder.Render(b.String())
}

// highlightMatch renders a match with its matched runes accented
func highlightMatch(m fuzzy.Match) string {
	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, r := range m.Str {
		if matched[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(styles.SubtitleStyle.Render(string(r)))
		}
	}
	return b.String()
}
