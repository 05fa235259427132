// Package view declares the parts of the screen the chat client drives.
//
// Every part of a Surface is optional. Code that updates the screen checks
// for nil and skips the update when the part is not mounted.
package view

import "github.com/mindheaven/mindheaven/backend/internal/model/resource"

// Senders of log entries.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Entry is one rendered line of the conversation log.
type Entry struct {
	Sender string
	Label  string
	// Text is already escaped and carries tview style tags.
	Text   string
	Crisis bool
}

// Log is the scrollable conversation log.
type Log interface {
	// Append adds an entry and scrolls to the bottom.
	Append(entry Entry)
	Clear()
	Len() int
	// SetTyping shows a transient status line below the log. An empty
	// string removes it.
	SetTyping(text string)
}

// Input is the message field together with its send button.
type Input interface {
	SetEnabled(enabled bool)
	Clear()
	Focus()
}

// Badge is the mood indicator.
type Badge interface {
	SetBadge(style BadgeStyle)
}

// BadgeStyle is the text and colours of the mood indicator.
type BadgeStyle struct {
	Text       string
	Background string
	Foreground string
}

// Explanation shows the reasoning behind the current mood.
type Explanation interface {
	SetText(text string)
}

// ChartPoint is one plotted mood sample.
type ChartPoint struct {
	Mood      string
	Intensity float64
}

// ChartCanvas draws the mood history line on a fixed 0-10 axis.
type ChartCanvas interface {
	Draw(points []ChartPoint, lineColor string)
}

// ChartContainer wraps the canvas and can be hidden.
type ChartContainer interface {
	SetVisible(visible bool)
}

// Resources is the helpline panel.
type Resources interface {
	SetDirectory(dir resource.Directory)
	SetHighlighted(highlighted bool)
}

// Surface groups the mounted parts. Any field may be nil.
type Surface struct {
	Log            Log
	Input          Input
	Badge          Badge
	Explanation    Explanation
	ChartCanvas    ChartCanvas
	ChartContainer ChartContainer
	Resources      Resources
}
