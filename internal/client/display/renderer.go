// Package display turns chat data into what the terminal shows: formatted log
// entries and the mood badge.
package display

import (
	"regexp"

	"github.com/rivo/tview"

	"github.com/mindheaven/mindheaven/backend/internal/client/view"
)

// Sender labels shown in front of each entry.
const (
	UserLabel      = "You"
	AssistantLabel = "MindHeaven"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)
)

// Renderer appends formatted messages to a log.
type Renderer struct {
	log view.Log
}

// NewRenderer returns a renderer for log. A nil log makes Render a no-op.
func NewRenderer(log view.Log) *Renderer {
	return &Renderer{log: log}
}

// Render appends text from sender to the log.
func (r *Renderer) Render(sender, text string, crisis bool) {
	if r == nil || r.log == nil {
		return
	}

	label := AssistantLabel
	if sender == view.SenderUser {
		label = UserLabel
	}

	r.log.Append(view.Entry{
		Sender: sender,
		Label:  label,
		Text:   Format(text),
		Crisis: crisis,
	})
}

// Format escapes tview tags in text and converts **bold** and *italic*
// markers into style tags. Newlines are kept as line breaks.
func Format(text string) string {
	out := tview.Escape(text)
	out = boldPattern.ReplaceAllString(out, "[::b]${1}[::-]")
	out = italicPattern.ReplaceAllString(out, "[::i]${1}[::-]")
	return out
}
