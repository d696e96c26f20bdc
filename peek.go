package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// peekModel shows the buffered output of an unfinished job, fetched
// once via bpeek and re-fetched on demand with 'r'.
type peekModel struct {
	jobID   string
	vp      viewport.Model
	content string
	loading bool
	err     error
}

func newPeekModel(jobID string, width, height int) peekModel {
	p := peekModel{jobID: jobID, loading: true}
	p.resize(width, height)
	return p
}

func (p *peekModel) resize(width, height int) {
	w := width - 4
	if w < 10 {
		w = 10
	}
	h := height - 4
	if h < 3 {
		h = 3
	}
	p.vp = viewport.New(w, h)
	p.setContent()
}

func (p *peekModel) setResult(msg peekMsg) {
	if msg.jobID != p.jobID {
		// Response for a job the user already navigated away from.
		return
	}
	p.loading = false
	p.err = msg.err
	p.content = msg.content
	p.setContent()
}

func (p *peekModel) setContent() {
	text := p.content
	switch {
	case p.loading:
		text = "Fetching output..."
	case p.err != nil:
		text = "Could not peek output: " + p.err.Error()
	case strings.TrimSpace(text) == "":
		text = "(no output yet)"
	}
	p.vp.SetContent(wordwrap.String(text, p.vp.Width))
	p.vp.GotoBottom()
}

func (p peekModel) update(msg tea.Msg) (peekModel, tea.Cmd) {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return p, cmd
}

func (p peekModel) view(width, height int) string {
	title := overlayTitleStyle.Render("Output " + p.jobID)
	hint := helpHintStyle.Render("Esc/q/o close  •  r re-fetch")
	top := joinWithGap([]string{title, hint}, 2)
	top = lipgloss.NewStyle().MaxWidth(width).Render(top)

	panel := overlayBoxStyle.Width(width - 2).Render(p.vp.View())

	out := lipgloss.JoinVertical(lipgloss.Left, top, panel)
	out = clampViewHeight(out, height)
	out = clampViewWidth(out, width)
	return out
}
