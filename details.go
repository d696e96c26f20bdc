package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// detailsModel is the full-screen Key/Value view of one job.
type detailsModel struct {
	job   Job
	table table.Model
}

func newDetailsModel(job Job, width, height int) detailsModel {
	d := detailsModel{job: job}
	d.table = table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = tableHeaderStyle
	s.Selected = tableSelectedStyle
	d.table.SetStyles(s)
	d.resize(width, height)
	return d
}

func (d *detailsModel) resize(width, height int) {
	w := width - 6
	if w < 12 {
		w = 12
	}
	keyW := w * 25 / 100
	if keyW < 10 {
		keyW = 10
	}
	valW := w - keyW - 1
	if valW < 1 {
		valW = 1
	}

	// SetColumns indexes rows by cell position; clear rows first so a
	// shrinking column set cannot panic mid-resize.
	d.table.SetRows(nil)
	d.table.SetColumns([]table.Column{
		{Title: "Key", Width: keyW},
		{Title: "Value", Width: valW},
	})
	d.table.SetRows(d.rows())

	h := height - 6
	if h < 3 {
		h = 3
	}
	d.table.SetHeight(h)
}

func (d detailsModel) rows() []table.Row {
	group := d.job.Group
	if group == "" {
		group = ungroupedKey
	}
	return []table.Row{
		{"JobID", d.job.JobID},
		{"User", d.job.User},
		{"Status", d.job.Stat},
		{"State", d.job.Status.String()},
		{"Queue", d.job.Queue},
		{"From Host", d.job.FromHost},
		{"Exec Host", d.job.ExecHost},
		{"Name", d.job.Name},
		{"Submitted", d.job.SubmitTime},
		{"CPU Used", d.job.CPUTime},
		{"Memory", d.job.Mem},
		{"Group", group},
	}
}

func (d detailsModel) selectedValue() (string, bool) {
	row := d.table.SelectedRow()
	if len(row) < 2 || strings.TrimSpace(row[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(row[1]), true
}

func (d detailsModel) update(msg tea.Msg) (detailsModel, tea.Cmd) {
	var cmd tea.Cmd
	d.table, cmd = d.table.Update(msg)
	return d, cmd
}

func (d detailsModel) view(width, height int) string {
	title := overlayTitleStyle.Render("Details " + d.job.JobID)
	hint := helpHintStyle.Render("Esc/q/i close  •  ^y copy value")
	top := joinWithGap([]string{title, hint}, 2)
	top = lipgloss.NewStyle().MaxWidth(width).Render(top)

	panel := overlayBoxStyle.Width(width - 2).Render(d.table.View())

	view := lipgloss.JoinVertical(lipgloss.Left, top, panel)
	view = clampViewHeight(view, height)
	view = clampViewWidth(view, width)
	return view
}
