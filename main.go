package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/pflag"
)

const (
	version         = "v0.1.0"
	defaultInterval = 5 * time.Second
	fetchTimeout    = 10 * time.Second
	peekTimeout     = 10 * time.Second
)

// KeyMap defines the keybindings
type KeyMap struct {
	Quit        key.Binding
	Up          key.Binding
	Down        key.Binding
	PrevColumn  key.Binding
	NextColumn  key.Binding
	ToggleSort  key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Refresh     key.Binding
	Pause       key.Binding
	Inspect     key.Binding
	Peek        key.Binding
	CopyValue   key.Binding
	ToggleHelp  key.Binding
}

var keys = KeyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PrevColumn:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "sort col")),
	NextColumn:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "sort col")),
	ToggleSort:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort dir")),
	Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
	ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
	CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Pause:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
	Inspect:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
	Peek:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "peek output")),
	CopyValue:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "copy")),
	ToggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Toggle, k.NextColumn, k.ToggleSort, k.Refresh, k.Inspect, k.Peek, k.ToggleHelp}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.ExpandAll, k.CollapseAll},
		{k.PrevColumn, k.NextColumn, k.ToggleSort, k.Refresh, k.Pause},
		{k.Inspect, k.Peek, k.CopyValue, k.ToggleHelp, k.Quit},
	}
}

type tickMsg time.Time
type jobsMsg []Job
type errMsg error
type peekMsg struct {
	jobID   string
	content string
	err     error
}

// Model is the main application model
type Model struct {
	source   jobSource
	interval time.Duration

	jobs     []Job
	groups   []Group
	expanded map[string]bool

	sortCol  int
	sortDesc bool

	cur cursor

	width  int
	height int

	paused      bool
	lastRefresh time.Time
	err         error

	flash       string
	flashExpiry time.Time

	help      help.Model
	inHelp    bool
	inDetails bool
	details   detailsModel
	inPeek    bool
	peek      peekModel
}

func NewModel(source jobSource, interval time.Duration) Model {
	m := Model{
		source:   source,
		interval: interval,
		expanded: make(map[string]bool),
		sortCol:  colJobName,
		help:     help.New(),
	}
	m.width, m.height = detectTerminalSize()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchJobsCmd(),
		m.tickCmd(),
		initialWindowSizeCmd(),
	)
}

// rebuild recomputes the group snapshot from the record store. Expand
// and sort state deliberately survive; a group that vanished and later
// returns under the same key keeps its prior expand flag.
func (m *Model) rebuild() {
	m.groups = groupJobs(m.jobs)
	sortGroups(m.groups, m.sortCol, m.sortDesc)
}

func (m *Model) resort() {
	sortGroups(m.groups, m.sortCol, m.sortDesc)
}

// reconcile clamps selection and scroll against the current visible-row
// count. It runs after every event, refresh, and resize; nothing else
// touches the cursor.
func (m *Model) reconcile() {
	m.cur.reconcile(countVisibleRows(m.groups, m.expanded), m.height)
}

func (m *Model) selectedRow() (visibleRow, bool) {
	return visibleRowAt(m.groups, m.expanded, m.cur.selected)
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashExpiry = time.Now().Add(2 * time.Second)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.flash != "" && time.Now().After(m.flashExpiry) {
		m.flash = ""
	}

	switch msg := msg.(type) {
	case tickMsg:
		if !m.paused {
			cmds = append(cmds, m.fetchJobsCmd())
		}
		cmds = append(cmds, m.tickCmd())
		return m, tea.Batch(cmds...)

	case jobsMsg:
		m.jobs = msg
		m.err = nil
		m.lastRefresh = time.Now()
		m.rebuild()
		m.reconcile()
		return m, nil

	case errMsg:
		// Keep the previous snapshot; the error surfaces in the header
		// until the next successful refresh.
		m.err = msg
		return m, nil

	case peekMsg:
		m.peek.setResult(msg)
		return m, nil

	case tea.WindowSizeMsg:
		// Some terminals briefly report zero dimensions during font or
		// window changes; fall back to the last known or default size.
		width, height := msg.Width, msg.Height
		if width <= 0 {
			if m.width > 0 {
				width = m.width
			} else {
				width, _ = detectTerminalSize()
			}
		}
		if height <= 0 {
			if m.height > 0 {
				height = m.height
			} else {
				_, height = detectTerminalSize()
			}
		}
		m.width, m.height = width, height
		m.help.Width = width
		if m.inDetails {
			m.details.resize(width, height)
		}
		if m.inPeek {
			m.peek.resize(width, height)
		}
		m.reconcile()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.inHelp = false
		}
		return m, nil
	}

	if m.inDetails {
		switch msg.String() {
		case "esc", "q", "i":
			m.inDetails = false
			return m, nil
		}
		if key.Matches(msg, keys.CopyValue) {
			if value, ok := m.details.selectedValue(); ok {
				m.setFlash("Value copied")
				return m, osc52CopyCmd(value)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.details, cmd = m.details.update(msg)
		return m, cmd
	}

	if m.inPeek {
		switch msg.String() {
		case "esc", "q", "o":
			m.inPeek = false
			return m, nil
		case "r":
			m.peek.loading = true
			return m, peekCmd(m.peek.jobID)
		}
		var cmd tea.Cmd
		m.peek, cmd = m.peek.update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.ToggleHelp):
		m.inHelp = true
		return m, nil

	case key.Matches(msg, keys.Up):
		m.cur.moveUp()
		m.reconcile()

	case key.Matches(msg, keys.Down):
		m.cur.moveDown()
		m.reconcile()

	case key.Matches(msg, keys.PrevColumn):
		m.sortCol = (m.sortCol - 1 + len(columns)) % len(columns)
		m.resort()
		m.reconcile()

	case key.Matches(msg, keys.NextColumn):
		m.sortCol = (m.sortCol + 1) % len(columns)
		m.resort()
		m.reconcile()

	case key.Matches(msg, keys.ToggleSort):
		m.sortDesc = !m.sortDesc
		m.resort()
		m.reconcile()

	case key.Matches(msg, keys.Toggle):
		if row, ok := m.selectedRow(); ok && row.kind == rowHeader {
			m.expanded[row.group.Key] = !m.expanded[row.group.Key]
			m.reconcile()
		}

	case key.Matches(msg, keys.ExpandAll):
		for i := range m.groups {
			m.expanded[m.groups[i].Key] = true
		}
		m.reconcile()

	case key.Matches(msg, keys.CollapseAll):
		for i := range m.groups {
			m.expanded[m.groups[i].Key] = false
		}
		m.reconcile()

	case key.Matches(msg, keys.Refresh):
		return m, m.fetchJobsCmd()

	case key.Matches(msg, keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, keys.Inspect):
		if row, ok := m.selectedRow(); ok && row.kind == rowMember {
			m.inDetails = true
			m.details = newDetailsModel(*row.job, m.width, m.height)
		}

	case key.Matches(msg, keys.Peek):
		if row, ok := m.selectedRow(); ok && row.kind == rowMember {
			m.inPeek = true
			m.peek = newPeekModel(row.job.JobID, m.width, m.height)
			return m, peekCmd(row.job.JobID)
		}

	case key.Matches(msg, keys.CopyValue):
		if row, ok := m.selectedRow(); ok {
			text := ""
			if row.kind == rowHeader {
				text = row.group.Key
			} else {
				text = row.job.JobID
			}
			m.setFlash("Copied " + text)
			return m, osc52CopyCmd(text)
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.inHelp {
		return m.viewHelpOverlay()
	}
	if m.inDetails {
		return m.details.view(m.width, m.height)
	}
	if m.inPeek {
		return m.peek.view(m.width, m.height)
	}

	sections := []string{
		m.renderTitleLine(),
		m.renderColumnHeader(),
		m.renderRows(),
		m.help.View(keys),
	}

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	view = clampViewHeight(view, m.height)
	view = clampViewWidth(view, m.width)
	return view
}

func (m Model) renderTitleLine() string {
	dir := "▲"
	if m.sortDesc {
		dir = "▼"
	}

	required := []string{
		titlePillStyle.Render("LSF Groups " + version),
		metaPillStyle.Render(fmt.Sprintf("Sort %s %s", columns[m.sortCol].title, dir)),
	}
	if m.paused {
		required = append(required, pausedPillStyle.Render("Paused"))
	}
	if m.err != nil {
		required = append(required, metaAlertPillStyle.Render("Error "+shortenText(m.err.Error(), 40)))
	}
	if m.flash != "" {
		required = append(required, flashStyle.Render(m.flash))
	}

	optional := []string{
		metaPillStyle.Render(fmt.Sprintf("%d jobs / %d groups", len(m.jobs), len(m.groups))),
	}
	if !m.lastRefresh.IsZero() {
		optional = append(optional, metaPillStyle.Render("Updated "+m.lastRefresh.Format("15:04:05")))
	}

	// Keep a one-line header by dropping optional items until it fits.
	parts := append(append([]string{}, required...), optional...)
	for len(parts) > 1 && lipgloss.Width(joinWithGap(parts, 1)) > m.width {
		parts = parts[:len(parts)-1]
	}

	return lipgloss.NewStyle().MaxWidth(m.width).Render(joinWithGap(parts, 1))
}

// markerWidth is the leading cell that holds the expand/collapse marker
// on group rows and the indent on member rows.
const markerWidth = 2

func (m Model) renderColumnHeader() string {
	cells := make([]string, 0, len(columns)+1)
	cells = append(cells, strings.Repeat(" ", markerWidth))
	for i, col := range columns {
		title := col.title
		style := columnHeaderStyle
		if i == m.sortCol {
			if m.sortDesc {
				title += "▼"
			} else {
				title += "▲"
			}
			style = sortColumnStyle
		}
		cells = append(cells, style.Render(padCell(title, col.width)))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(cells, " "))
}

func (m Model) renderRows() string {
	rows := displayRows(m.height)
	window := visibleWindow(m.groups, m.expanded, m.cur.offset, rows)

	lines := make([]string, 0, rows)
	if len(window) == 0 {
		lines = append(lines, placeholderStyle.Render("No jobs to display"))
	}
	for i, row := range window {
		selected := m.cur.offset+i == m.cur.selected
		lines = append(lines, m.renderRow(row, selected))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row visibleRow, selected bool) string {
	if row.kind == rowHeader {
		marker := "▸"
		if m.expanded[row.group.Key] {
			marker = "▾"
		}
		line := fmt.Sprintf("%s %s %s", marker, row.group.Key,
			fmt.Sprintf("(%d)", row.group.Count()))
		if selected {
			return selectedRowStyle.Width(m.width).Render(truncateLine(line, m.width))
		}
		return joinWithGap([]string{
			groupHeaderStyle.Render(marker + " " + row.group.Key),
			groupCountStyle.Render(fmt.Sprintf("(%d)", row.group.Count())),
		}, 1)
	}

	job := *row.job
	cells := make([]string, 0, len(columns)+1)
	cells = append(cells, strings.Repeat(" ", markerWidth))
	for _, col := range columns {
		cells = append(cells, padCell(col.field(job), col.width))
	}
	line := strings.Join(cells, " ")
	if selected {
		return selectedRowStyle.Width(m.width).Render(truncateLine(line, m.width))
	}

	// Color only the status cell; styled cells inside a fixed grid keep
	// their padded width.
	cells[3] = statusStyle(job.Status).Render(cells[3])
	return strings.Join(cells, " ")
}

func (m Model) viewHelpOverlay() string {
	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	shortcuts := []struct{ key, desc string }{
		{"↑/k ↓/j", "Move selection"},
		{"enter/spc", "Expand/collapse group"},
		{"E / C", "Expand / collapse all"},
		{"←/h →/l", "Previous / next sort column"},
		{"s", "Toggle sort direction"},
		{"r", "Refresh now"},
		{"p", "Pause auto-refresh"},
		{"i", "Job details"},
		{"o", "Peek job output"},
		{"^y", "Copy job ID / group key"},
		{"q", "Quit"},
	}
	for _, s := range shortcuts {
		b.WriteString(overlayKeyStyle.Render(s.key))
		b.WriteString(s.desc)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpHintStyle.Render("Press ? or Esc to close"))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		overlayBoxStyle.Render(b.String()),
	)
}

// --- Render helpers ---

func padCell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return truncate.String(s, uint(width))
}

func joinWithGap(parts []string, gap int) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	switch len(filtered) {
	case 0:
		return ""
	case 1:
		return filtered[0]
	}
	if gap <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Left, filtered...)
	}
	spacer := lipgloss.NewStyle().Width(gap).Render(" ")
	row := filtered[0]
	for _, part := range filtered[1:] {
		row = lipgloss.JoinHorizontal(lipgloss.Left, row, spacer, part)
	}
	return row
}

func shortenText(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func clampViewWidth(view string, width int) string {
	if width <= 0 {
		return view
	}
	lines := strings.Split(strings.ReplaceAll(view, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = truncate.String(line, uint(width))
		}
	}
	return strings.Join(lines, "\n")
}

func clampViewHeight(view string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(strings.ReplaceAll(view, "\r\n", "\n"), "\n")
	if len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:height], "\n")
}

// --- Commands ---

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchJobsCmd() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		jobs, err := source.Fetch(ctx)
		if err != nil {
			return errMsg(err)
		}
		return jobsMsg(jobs)
	}
}

func peekCmd(jobID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), peekTimeout)
		defer cancel()
		out, err := peekJobOutput(ctx, jobID)
		return peekMsg{jobID: jobID, content: out, err: err}
	}
}

func osc52CopyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		seq := osc52.New(text).Limit(100 * 1024)
		fmt.Fprint(os.Stderr, seq.String())
		return nil
	}
}

func initialWindowSizeCmd() tea.Cmd {
	return func() tea.Msg {
		width, height := detectTerminalSize()
		return tea.WindowSizeMsg{Width: width, Height: height}
	}
}

func detectTerminalSize() (int, int) {
	width, height, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 || height <= 0 {
		return 80, 24
	}
	return width, height
}

// --- Entry point ---

func buildSource(offline, file string) (jobSource, error) {
	switch offline {
	case "":
		return bjobsSource{}, nil
	case "demo":
		return newDemoSource(), nil
	case "file":
		if file == "" {
			return nil, fmt.Errorf("--offline=file requires --file")
		}
		return fileSource{path: file}, nil
	default:
		return nil, fmt.Errorf("unknown --offline mode %q (want demo or file)", offline)
	}
}

func main() {
	flags := pflag.NewFlagSet("lsf-dashboard", pflag.ContinueOnError)
	interval := flags.IntP("interval", "n", 5, "refresh interval in seconds")
	offline := flags.String("offline", "", "offline data mode: demo or file")
	file := flags.String("file", "", "jobs file for --offline=file")
	showHelp := flags.BoolP("help", "h", false, "show usage")

	usage := func(out *os.File) {
		fmt.Fprintf(out, "Usage: lsf-dashboard [flags]\n\n%s", flags.FlagUsages())
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage(os.Stderr)
		os.Exit(2)
	}
	if *showHelp {
		usage(os.Stdout)
		os.Exit(0)
	}
	if *interval <= 0 {
		fmt.Fprintln(os.Stderr, "--interval must be positive")
		usage(os.Stderr)
		os.Exit(2)
	}

	source, err := buildSource(*offline, *file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage(os.Stderr)
		os.Exit(2)
	}

	model := NewModel(source, time.Duration(*interval)*time.Second)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
