// Package viewtest provides in-memory view parts for tests.
package viewtest

import (
	"sync"

	"github.com/mindheaven/mindheaven/backend/internal/client/view"
	"github.com/mindheaven/mindheaven/backend/internal/model/resource"
)

// Log records appended entries.
type Log struct {
	mu      sync.Mutex
	entries []view.Entry
	typing  string
}

func (l *Log) Append(entry view.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Log) SetTyping(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.typing = text
}

// Entries returns a copy of the log.
func (l *Log) Entries() []view.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]view.Entry(nil), l.entries...)
}

// Typing returns the current status line.
func (l *Log) Typing() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.typing
}

// Input records enable state, clears and focus requests.
type Input struct {
	mu      sync.Mutex
	enabled bool
	clears  int
	focuses int
}

// NewInput returns an enabled input.
func NewInput() *Input {
	return &Input{enabled: true}
}

func (i *Input) SetEnabled(enabled bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.enabled = enabled
}

func (i *Input) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.clears++
}

func (i *Input) Focus() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.focuses++
}

func (i *Input) Enabled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.enabled
}

func (i *Input) Clears() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.clears
}

func (i *Input) Focuses() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.focuses
}

// Badge keeps the last style.
type Badge struct {
	mu    sync.Mutex
	style view.BadgeStyle
}

func (b *Badge) SetBadge(style view.BadgeStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.style = style
}

func (b *Badge) Style() view.BadgeStyle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.style
}

// Explanation keeps the last text.
type Explanation struct {
	mu   sync.Mutex
	text string
}

func (e *Explanation) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

func (e *Explanation) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// Canvas counts draws and keeps the last one.
type Canvas struct {
	mu        sync.Mutex
	draws     int
	points    []view.ChartPoint
	lineColor string
}

func (c *Canvas) Draw(points []view.ChartPoint, lineColor string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draws++
	c.points = append([]view.ChartPoint(nil), points...)
	c.lineColor = lineColor
}

func (c *Canvas) Draws() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draws
}

func (c *Canvas) Points() []view.ChartPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]view.ChartPoint(nil), c.points...)
}

func (c *Canvas) LineColor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lineColor
}

// Container tracks visibility. It starts hidden.
type Container struct {
	mu      sync.Mutex
	visible bool
}

func (c *Container) SetVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = visible
}

func (c *Container) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Resources keeps the directory and highlight state.
type Resources struct {
	mu          sync.Mutex
	dir         resource.Directory
	highlighted bool
}

func (r *Resources) SetDirectory(dir resource.Directory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dir = dir
}

func (r *Resources) SetHighlighted(highlighted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlighted = highlighted
}

func (r *Resources) Directory() resource.Directory {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dir
}

func (r *Resources) Highlighted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.highlighted
}

// Surface bundles a full set of fakes.
type Surface struct {
	Log         *Log
	Input       *Input
	Badge       *Badge
	Explanation *Explanation
	Canvas      *Canvas
	Container   *Container
	Resources   *Resources
}

// NewSurface returns fakes for every part.
func NewSurface() *Surface {
	return &Surface{
		Log:         &Log{},
		Input:       NewInput(),
		Badge:       &Badge{},
		Explanation: &Explanation{},
		Canvas:      &Canvas{},
		Container:   &Container{},
		Resources:   &Resources{},
	}
}

// View exposes the fakes as a view.Surface.
func (s *Surface) View() view.Surface {
	return view.Surface{
		Log:            s.Log,
		Input:          s.Input,
		Badge:          s.Badge,
		Explanation:    s.Explanation,
		ChartCanvas:    s.Canvas,
		ChartContainer: s.Container,
		Resources:      s.Resources,
	}
}
