package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nomato-app/nomato-backend/searchflow"
)

type snapshotMsg searchflow.Snapshot

type focusArea int

const (
	focusInput focusArea = iota
	focusBands
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E23744"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	chipStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	chipActive  = chipStyle.BorderForeground(lipgloss.Color("#E23744")).Foreground(lipgloss.Color("#E23744")).Bold(true)
	chipCursor  = lipgloss.NewStyle().Underline(true)
	nameStyle   = lipgloss.NewStyle().Bold(true)
	ratingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	emptyStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	helpStyle   = subtleStyle
)

type model struct {
	flow    *searchflow.Flow
	input   textinput.Model
	spinner spinner.Model
	snap    searchflow.Snapshot

	focus      focusArea
	bandCursor int
	width      int
	height     int
	notice     string
	today      string
}

func newModel(flow *searchflow.Flow) model {
	ti := textinput.New()
	ti.Placeholder = "Cari restoran atau kategori"
	ti.Prompt = "│ "
	ti.CharLimit = 120
	ti.Width = 48
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	return model{
		flow:    flow,
		input:   ti,
		spinner: sp,
		snap:    flow.Snapshot(),
		today:   strings.ToLower(time.Now().Weekday().String()),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// refresh pulls the latest snapshot after a synchronous flow call.
func (m *model) refresh() {
	if snap := m.flow.Snapshot(); snap.Version >= m.snap.Version {
		m.snap = snap
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.Version >= m.snap.Version {
			m.snap = searchflow.Snapshot(msg)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if msg.Width > 10 {
			m.input.Width = msg.Width - 6
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.focus == focusInput {
			m.focus = focusBands
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil
	}

	if m.focus == focusBands {
		return m.handleBandKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		m.flow.Search(m.input.Value())
		m.refresh()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.flow.Type(after)
		m.refresh()
	}
	return m, cmd
}

func (m model) handleBandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "left", "h":
		if m.bandCursor > 0 {
			m.bandCursor--
		}
		return m, nil
	case "right", "l":
		if m.bandCursor < len(searchflow.PriceBands)-1 {
			m.bandCursor++
		}
		return m, nil
	case "enter", " ":
		m.toggle(m.bandCursor)
		return m, nil
	}

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		id := int(key[0] - '0')
		m.toggle(id)
		if id < len(searchflow.PriceBands) {
			m.bandCursor = id
		}
	}
	return m, nil
}

func (m *model) toggle(id int) {
	if err := m.flow.ToggleBand(id); err != nil {
		m.notice = err.Error()
		return
	}
	m.refresh()
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Nomato"))
	b.WriteString(subtleStyle.Render("  cari restoran"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderBands())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderResults())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: pindah fokus • 0-5: filter harga • enter: cari • esc: keluar"))
	return b.String()
}

func (m model) renderBands() string {
	chips := make([]string, 0, len(searchflow.PriceBands))
	for _, band := range searchflow.PriceBands {
		label := fmt.Sprintf("%d %s", band.ID, band.Label)
		style := chipStyle
		if m.snap.Selection.IsSelected(band.ID) {
			style = chipActive
		}
		if m.focus == focusBands && band.ID == m.bandCursor {
			label = chipCursor.Render(label)
		}
		chips = append(chips, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m model) renderResults() string {
	switch m.snap.State {
	case searchflow.StateIdle:
		return subtleStyle.Render("Ketik untuk mulai mencari.") + "\n"
	case searchflow.StateLoading:
		return m.spinner.View() + " Mencari...\n"
	case searchflow.StateEmptyNoResults:
		return emptyStyle.Render(searchflow.NotFoundMessage) + "\n"
	case searchflow.StateFailed:
		return errorStyle.Render(fmt.Sprintf("Pencarian gagal: %v", m.snap.Err)) + "\n"
	}

	var b strings.Builder
	rows := m.snap.Filtered
	maxRows := len(rows)
	if m.height > 0 {
		// header, input, chips and footer take about 12 lines; each row takes 2
		if fit := (m.height - 12) / 2; fit < maxRows {
			maxRows = max(fit, 1)
		}
	}

	fmt.Fprintf(&b, "%s\n", subtleStyle.Render(fmt.Sprintf("%d restoran", len(rows))))
	for _, rec := range rows[:maxRows] {
		b.WriteString(nameStyle.Render(rec.Name()))
		b.WriteString("  ")
		b.WriteString(ratingStyle.Render(fmt.Sprintf("★ %.1f", rec.Rating())))
		if label := priceLabel(rec); label != "" {
			b.WriteString(subtleStyle.Render("  " + label))
		}
		b.WriteString("\n  ")
		details := []string{}
		if addr := rec.Address(); addr != "" {
			details = append(details, addr)
		}
		if hours := rec.Hours(m.today); hours != "" {
			details = append(details, "hari ini "+hours)
		}
		b.WriteString(subtleStyle.Render(strings.Join(details, " · ")))
		b.WriteString("\n")
	}
	if maxRows < len(rows) {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("… %d lagi", len(rows)-maxRows)))
		b.WriteString("\n")
	}
	return b.String()
}

func priceLabel(rec searchflow.ResultRecord) string {
	level, ok := rec.PriceLevel()
	if !ok {
		return ""
	}
	band, err := searchflow.BandByID(level)
	if err != nil {
		return ""
	}
	return band.Label
}
