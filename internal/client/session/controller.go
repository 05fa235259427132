// Package session drives one chat session: submitting messages, clearing the
// conversation and keeping the mood badge and chart in step with the server.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindheaven/mindheaven/backend/internal/client/api"
	"github.com/mindheaven/mindheaven/backend/internal/client/chart"
	"github.com/mindheaven/mindheaven/backend/internal/client/display"
	"github.com/mindheaven/mindheaven/backend/internal/client/view"
	"github.com/mindheaven/mindheaven/backend/internal/logging"
	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
	"github.com/mindheaven/mindheaven/backend/internal/model/resource"
)

// Messages shown by the controller.
const (
	WelcomeMessage     = "Hello! I'm here to listen and support you. How are you feeling today?"
	ApologyMessage     = "Sorry, something went wrong. Please try again."
	ClearFailedMessage = "Sorry, I couldn't clear the conversation. Please try again."
	TypingMessage      = "MindHeaven is typing..."
	ExplanationPrompt  = "Share how you're feeling to get insights."
)

// Backend is the server API used by the controller.
type Backend interface {
	Chat(ctx context.Context, message string) (api.ChatResponse, error)
	MoodHistory(ctx context.Context) ([]mood.Sample, error)
	ClearConversation(ctx context.Context) error
	Resources(ctx context.Context) (resource.Directory, error)
}

// Timing holds the delays of the input lifecycle.
type Timing struct {
	SubmitSettle    time.Duration
	ClearSettle     time.Duration
	ChartDelay      time.Duration
	HistoryCooldown time.Duration
}

// DefaultTiming returns the standard delays.
func DefaultTiming() Timing {
	return Timing{
		SubmitSettle:    time.Second,
		ClearSettle:     500 * time.Millisecond,
		ChartDelay:      100 * time.Millisecond,
		HistoryCooldown: 10 * time.Second,
	}
}

// Option customises a Controller.
type Option func(*Controller)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithChart replaces the chart built from the surface.
func WithChart(ch *chart.Chart) Option {
	return func(c *Controller) {
		if ch != nil {
			c.chart = ch
		}
	}
}

// WithTiming replaces DefaultTiming.
func WithTiming(t Timing) Option {
	return func(c *Controller) {
		c.timing = t
	}
}

// Controller owns the client-side session state. It is safe for concurrent
// use; at most one submit or clear and one history fetch run at a time.
type Controller struct {
	mu              sync.Mutex
	state           State
	historyFetching bool
	bootstrapped    bool
	closed          bool
	timers          map[uint64]Timer
	nextTimer       uint64

	backend  Backend
	surface  view.Surface
	renderer *display.Renderer
	chart    *chart.Chart
	sched    Scheduler
	timing   Timing
	logger   zerolog.Logger
}

// New returns an idle controller drawing on surface.
func New(backend Backend, surface view.Surface, opts ...Option) *Controller {
	c := &Controller{
		timers:   make(map[uint64]Timer),
		backend:  backend,
		surface:  surface,
		renderer: display.NewRenderer(surface.Log),
		sched:    RealScheduler(),
		timing:   DefaultTiming(),
		logger:   logging.Component("session"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.chart == nil {
		c.chart = chart.New(surface.ChartCanvas, surface.ChartContainer)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Chart returns the mood chart driven by the controller.
func (c *Controller) Chart() *chart.Chart {
	return c.chart
}

// Submit sends text to the server and renders the reply. It returns
// ErrBusy while another submit or clear is in flight and ErrEmptyMessage for
// blank text. Network failures are shown in the log, not returned.
func (c *Controller) Submit(ctx context.Context, text string) error {
	message := strings.TrimSpace(text)

	if err := c.begin(Submitting, message); err != nil {
		return err
	}

	c.setInputEnabled(false)
	c.renderer.Render(view.SenderUser, message, false)
	if c.surface.Input != nil {
		c.surface.Input.Clear()
	}
	c.setTyping(TypingMessage)

	resp, err := c.backend.Chat(ctx, message)
	c.setTyping("")
	if err != nil {
		c.logger.Error().Err(err).Msg("error sending message")
		c.renderer.Render(view.SenderAssistant, ApologyMessage, false)
	} else {
		c.renderer.Render(view.SenderAssistant, resp.Reply, resp.IsCrisis)
		if resp.MoodAnalysis != nil {
			c.applyAnalysis(*resp.MoodAnalysis, resp.IsCrisis)
		}
	}

	c.schedule(c.timing.SubmitSettle, func() {
		c.setState(Idle)
		c.setInputEnabled(true)
		if c.surface.Input != nil {
			c.surface.Input.Focus()
		}
	})
	return nil
}

// Clear asks the server to drop the conversation and resets the screen.
func (c *Controller) Clear(ctx context.Context) error {
	if err := c.begin(Clearing, ""); err != nil {
		return err
	}

	c.setInputEnabled(false)

	if err := c.backend.ClearConversation(ctx); err != nil {
		c.logger.Error().Err(err).Msg("error clearing conversation")
		c.renderer.Render(view.SenderAssistant, ClearFailedMessage, false)
	} else {
		if c.surface.Log != nil {
			c.surface.Log.Clear()
		}
		c.setBadge(display.PlaceholderBadge())
		if c.surface.Explanation != nil {
			c.surface.Explanation.SetText(ExplanationPrompt)
		}
		c.setHighlighted(false)
		c.chart.Reset()
		c.renderer.Render(view.SenderAssistant, WelcomeMessage, false)
	}

	c.schedule(c.timing.ClearSettle, func() {
		c.setState(Idle)
		c.setInputEnabled(true)
	})
	return nil
}

// Bootstrap prepares the screen once: chart, mood history, helplines and the
// welcome message. Each step fails on its own without stopping the others.
func (c *Controller) Bootstrap(ctx context.Context) {
	c.mu.Lock()
	if c.bootstrapped || c.closed {
		c.mu.Unlock()
		c.logger.Debug().Msg("already initialized")
		return
	}
	c.bootstrapped = true
	c.mu.Unlock()

	if err := c.chart.Initialize(); err != nil {
		c.logger.Warn().Err(err).Msg("error initializing chart")
	}
	if err := c.FetchMoodHistory(ctx); err != nil {
		c.logger.Error().Err(err).Msg("error fetching mood history")
	}
	if err := c.LoadResources(ctx); err != nil {
		c.logger.Error().Err(err).Msg("error loading resources")
	}
	if c.surface.Log != nil && c.surface.Log.Len() == 0 {
		c.renderer.Render(view.SenderAssistant, WelcomeMessage, false)
	}
}

// FetchMoodHistory loads the server's mood history into the chart and sets
// the badge to the latest sample. Further fetches return ErrBusy until the
// cooldown after completion has passed.
func (c *Controller) FetchMoodHistory(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.historyFetching {
		c.mu.Unlock()
		return ErrBusy
	}
	c.historyFetching = true
	c.mu.Unlock()

	defer c.schedule(c.timing.HistoryCooldown, func() {
		c.mu.Lock()
		c.historyFetching = false
		c.mu.Unlock()
		c.logger.Debug().Msg("mood history fetch flag reset")
	})

	samples, err := c.backend.MoodHistory(ctx)
	if err != nil {
		return fmt.Errorf("fetch mood history: %w", err)
	}

	if len(samples) == 0 {
		c.chart.LoadHistory(nil)
		c.logger.Debug().Msg("no mood history available")
		return nil
	}

	c.chart.LoadHistory(samples)
	latest := samples[len(samples)-1]
	c.setBadge(display.Indicator(latest.Mood, latest.Intensity))
	c.logger.Debug().Int("entries", len(samples)).Msg("loaded mood history")
	return nil
}

// LoadResources fills the helpline panel. Without a panel it does nothing.
func (c *Controller) LoadResources(ctx context.Context) error {
	if c.surface.Resources == nil {
		return nil
	}
	dir, err := c.backend.Resources(ctx)
	if err != nil {
		return fmt.Errorf("load resources: %w", err)
	}
	c.surface.Resources.SetDirectory(dir)
	return nil
}

// Close cancels pending timers. Callbacks that already started finish, later
// ones do nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}

func (c *Controller) begin(next State, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed:
		return ErrClosed
	case c.state != Idle:
		c.logger.Debug().Stringer("state", c.state).Msg("request in progress, ignoring")
		return ErrBusy
	case next == Submitting && message == "":
		return ErrEmptyMessage
	}
	c.state = next
	return nil
}

func (c *Controller) applyAnalysis(a mood.Analysis, crisis bool) {
	c.setBadge(display.Indicator(a.Mood, a.Intensity))

	if explanation := strings.TrimSpace(a.Explanation); explanation != "" && c.surface.Explanation != nil {
		c.surface.Explanation.SetText(explanation)
	}
	c.setHighlighted(crisis)

	label, intensity := a.Mood, a.Intensity
	c.schedule(c.timing.ChartDelay, func() {
		c.chart.Append(label, intensity)
	})
}

// schedule runs f after d unless the controller is closed first.
func (c *Controller) schedule(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.nextTimer++
	id := c.nextTimer
	c.timers[id] = c.sched.AfterFunc(d, func() {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		delete(c.timers, id)
		c.mu.Unlock()
		f()
	})
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) setInputEnabled(enabled bool) {
	if c.surface.Input != nil {
		c.surface.Input.SetEnabled(enabled)
	}
}

func (c *Controller) setTyping(text string) {
	if c.surface.Log != nil {
		c.surface.Log.SetTyping(text)
	}
}

func (c *Controller) setBadge(style view.BadgeStyle) {
	if c.surface.Badge != nil {
		c.surface.Badge.SetBadge(style)
	}
}

func (c *Controller) setHighlighted(highlighted bool) {
	if c.surface.Resources != nil {
		c.surface.Resources.SetHighlighted(highlighted)
	}
}
