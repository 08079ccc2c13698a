package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/metastring/internal/catalog"
	"github.com/faizmokh/metastring/internal/metastring"
)

// Model owns Bubble Tea state for browsing a directory's parsed file names.
type Model struct {
	ctx     context.Context
	reader  *catalog.Reader
	pattern string
	keys    keyMap

	records []catalog.Record
	// visible indexes into records, honoring the invalid-only filter.
	visible     []int
	selected    int
	invalidOnly bool

	loading    bool
	statusLine string
	errorLine  string
}

type recordsLoadedMsg struct {
	records []catalog.Record
	err     error
}

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, reader *catalog.Reader, pattern string) Model {
	return Model{
		ctx:        ctx,
		reader:     reader,
		pattern:    pattern,
		keys:       defaultKeyMap(),
		loading:    true,
		statusLine: fmt.Sprintf("Scanning %s for %s...", reader.Dir(), pattern),
	}
}

// Init loads the directory.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update wires TUI state transitions from user input and async loads.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case recordsLoadedMsg:
		return m.handleLoaded(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.visible)-1 {
			m.selected++
			m.statusLine = m.position()
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.statusLine = m.position()
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.statusLine = m.position()
	case key.Matches(msg, m.keys.Bottom):
		if len(m.visible) > 0 {
			m.selected = len(m.visible) - 1
		}
		m.statusLine = m.position()
	case key.Matches(msg, m.keys.Invalid):
		m.invalidOnly = !m.invalidOnly
		m.applyFilter()
		if m.invalidOnly {
			m.statusLine = fmt.Sprintf("Showing %d invalid file%s.", len(m.visible), plural(len(m.visible)))
		} else {
			m.statusLine = fmt.Sprintf("Showing all %d file%s.", len(m.visible), plural(len(m.visible)))
		}
	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.errorLine = ""
		m.statusLine = "Reloading..."
		return m, m.loadCmd()
	}
	return m, nil
}

func (m Model) handleLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to scan %s: %v", m.reader.Dir(), msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.records = msg.records
	m.applyFilter()

	s := catalog.Summarize(m.records)
	m.statusLine = fmt.Sprintf("%d file%s, %d invalid, %d with warnings.", s.Total, plural(s.Total), s.Invalid, s.Warned)
	return m, nil
}

// applyFilter rebuilds visible and keeps the selection in range.
func (m *Model) applyFilter() {
	visible := make([]int, 0, len(m.records))
	for i, rec := range m.records {
		if m.invalidOnly && rec.Valid() {
			continue
		}
		visible = append(visible, i)
	}
	m.visible = visible
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) current() (catalog.Record, bool) {
	if len(m.visible) == 0 {
		return catalog.Record{}, false
	}
	return m.records[m.visible[m.selected]], true
}

func (m Model) position() string {
	if len(m.visible) == 0 {
		return ""
	}
	return fmt.Sprintf("Selected file %d of %d", m.selected+1, len(m.visible))
}

func (m Model) loadCmd() tea.Cmd {
	reader := m.reader
	ctx := m.ctx
	pattern := m.pattern
	return func() tea.Msg {
		records, err := reader.Read(ctx, pattern)
		return recordsLoadedMsg{records: records, err: err}
	}
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s", m.reader.Dir(), m.pattern)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.records) == 0:
		b.WriteString("Loading...\n")
	case len(m.visible) == 0:
		if m.invalidOnly {
			b.WriteString("(no invalid files)\n")
		} else {
			b.WriteString("(no matching files)\n")
		}
	default:
		for i, idx := range m.visible {
			rec := m.records[idx]
			cursor := "  "
			name := rec.Name
			if i == m.selected {
				cursor = "> "
				name = selectedStyle.Render(name)
			}
			b.WriteString(cursor)
			b.WriteString(statusMark(rec))
			b.WriteByte(' ')
			b.WriteString(name)
			b.WriteByte('\n')
		}
		if rec, ok := m.current(); ok {
			b.WriteByte('\n')
			b.WriteString(detailsStyle.Render(details(rec)))
			b.WriteByte('\n')
		}
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(helpLine(m.keys)))
	b.WriteByte('\n')

	return b.String()
}

func statusMark(rec catalog.Record) string {
	switch {
	case !rec.Valid():
		return errorStyle.Render("✗")
	case len(rec.Warnings) > 0:
		return warnStyle.Render("!")
	default:
		return okStyle.Render("✓")
	}
}

func details(rec catalog.Record) string {
	var b strings.Builder
	if !rec.Valid() {
		b.WriteString(errorStyle.Render("invalid: " + rec.Err.Error()))
		return b.String()
	}

	var keys []string
	for _, k := range []string{metastring.KeyDate, metastring.KeyTime} {
		if _, ok := rec.Metadata[k]; ok {
			keys = append(keys, k)
		}
	}
	keys = append(keys, rec.Metadata.Fields()...)
	if len(keys) == 0 {
		b.WriteString("(no fields)")
	}
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", k, rec.Metadata[k])
	}
	for _, w := range rec.Warnings {
		b.WriteByte('\n')
		b.WriteString(warnStyle.Render(fmt.Sprintf("warning: %s overwritten with %q", w.Key, w.Value)))
	}
	return b.String()
}

func helpLine(k keyMap) string {
	parts := make([]string, 0, len(k.bindings()))
	for _, binding := range k.bindings() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
