// Package chart keeps the rolling mood intensity series shown under the chat.
package chart

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindheaven/mindheaven/backend/internal/client/view"
	"github.com/mindheaven/mindheaven/backend/internal/logging"
	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
)

// ErrNoMount is returned when there is no canvas to draw on.
var ErrNoMount = errors.New("chart canvas not mounted")

const (
	DefaultCapacity = 10
	DefaultThrottle = time.Second
)

// Option customises a Chart.
type Option func(*Chart)

// WithCapacity sets how many points are kept.
func WithCapacity(n int) Option {
	return func(c *Chart) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithThrottle sets the minimum gap between accepted live updates.
func WithThrottle(d time.Duration) Option {
	return func(c *Chart) {
		if d >= 0 {
			c.throttle = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Chart) {
		if now != nil {
			c.now = now
		}
	}
}

// Chart is safe for concurrent use. Live appends and history loads are
// serialised, so the last one to run wins.
type Chart struct {
	mu         sync.Mutex
	canvas     view.ChartCanvas
	container  view.ChartContainer
	series     []view.ChartPoint
	ready      bool
	lastUpdate time.Time
	updated    bool
	lineColor  string

	capacity int
	throttle time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// New returns a chart drawing on canvas inside container. Either may be nil.
func New(canvas view.ChartCanvas, container view.ChartContainer, opts ...Option) *Chart {
	c := &Chart{
		canvas:    canvas,
		container: container,
		lineColor: mood.FallbackLineColor,
		capacity:  DefaultCapacity,
		throttle:  DefaultThrottle,
		now:       time.Now,
		logger:    logging.Component("chart"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize prepares the canvas. Calling it again is a no-op.
func (c *Chart) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initLocked()
}

func (c *Chart) initLocked() error {
	if c.ready {
		return nil
	}
	if c.canvas == nil {
		return ErrNoMount
	}
	c.ready = true
	c.drawLocked()
	return nil
}

// Append adds one live sample. Calls arriving within the throttle interval
// of the previous accepted call are dropped.
func (c *Chart) Append(label string, intensity mood.Intensity) {
	label = mood.NormalizeLabel(label)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.updated && now.Sub(c.lastUpdate) < c.throttle {
		c.logger.Debug().Str("mood", label).Msg("update throttled")
		return
	}
	c.lastUpdate = now
	c.updated = true

	if err := c.initLocked(); err != nil {
		c.logger.Warn().Err(err).Msg("chart not available for update")
		return
	}

	c.series = append(c.series, view.ChartPoint{Mood: label, Intensity: intensity.Normalize()})
	if len(c.series) > c.capacity {
		c.series = append(c.series[:0:0], c.series[len(c.series)-c.capacity:]...)
	}
	c.lineColor = lineColor(label)

	c.drawLocked()
	c.setVisible(true)
}

// LoadHistory replaces the series with the newest samples. An empty history
// hides the chart and leaves the series as it is.
func (c *Chart) LoadHistory(samples []mood.Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(samples) == 0 {
		c.setVisible(false)
		return
	}

	if err := c.initLocked(); err != nil {
		c.logger.Warn().Err(err).Msg("chart not available after initialization")
		return
	}

	if len(samples) > c.capacity {
		samples = samples[len(samples)-c.capacity:]
	}
	series := make([]view.ChartPoint, 0, len(samples))
	for _, s := range samples {
		series = append(series, view.ChartPoint{Mood: mood.NormalizeLabel(s.Mood), Intensity: s.Intensity.Normalize()})
	}
	c.series = series

	c.drawLocked()
	c.setVisible(true)
}

// Reset empties the series and hides the chart.
func (c *Chart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.series = nil
	if c.ready {
		c.drawLocked()
	}
	c.setVisible(false)
}

// Points returns a copy of the current series.
func (c *Chart) Points() []view.ChartPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]view.ChartPoint(nil), c.series...)
}

// LineColor returns the current line colour.
func (c *Chart) LineColor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lineColor
}

func (c *Chart) drawLocked() {
	c.canvas.Draw(append([]view.ChartPoint(nil), c.series...), c.lineColor)
}

func (c *Chart) setVisible(visible bool) {
	if c.container != nil {
		c.container.SetVisible(visible)
	}
}

func lineColor(label string) string {
	if color, ok := mood.Color(label); ok {
		return color
	}
	return mood.FallbackLineColor
}
