// Package tui renders the chat session in the terminal with tview.
package tui

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mindheaven/mindheaven/backend/internal/client/display"
	"github.com/mindheaven/mindheaven/backend/internal/client/session"
	"github.com/mindheaven/mindheaven/backend/internal/client/view"
	"github.com/mindheaven/mindheaven/backend/internal/model/resource"
)

const (
	chartRows          = chartHeight + 4
	resourcesTitle     = " Resources "
	resourcesHighlight = " Resources: please reach out "
)

// App is the terminal window. It implements every part of view.Surface; all
// widget updates are queued onto the tview event loop.
type App struct {
	app *tview.Application

	root        *tview.Flex
	side        *tview.Flex
	log         *tview.TextView
	typing      *tview.TextView
	input       *tview.InputField
	clearButton *tview.Button
	badge       *tview.TextView
	explanation *tview.TextView
	chart       *tview.TextView
	resources   *tview.TextView

	mu       sync.Mutex
	entries  int
	onSubmit func(text string)
	onClear  func()
}

// New builds the layout. Callbacks are registered with OnSubmit and OnClear.
func New() *App {
	a := &App{app: tview.NewApplication()}

	a.log = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	a.log.SetBorder(true).SetTitle(" MindHeaven ")

	a.typing = tview.NewTextView().SetDynamicColors(true)
	a.typing.SetTextColor(tcell.ColorGray)

	a.input = tview.NewInputField().
		SetLabel("> ").
		SetPlaceholder("Type how you're feeling and press Enter").
		SetFieldBackgroundColor(tcell.ColorDefault)
	a.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		a.submit(a.input.GetText())
	})

	a.clearButton = tview.NewButton("Clear (Ctrl-L)").SetSelectedFunc(a.clear)

	inputRow := tview.NewFlex().
		AddItem(a.input, 0, 1, true).
		AddItem(a.clearButton, 16, 0, false)

	a.badge = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	a.badge.SetBorder(true).SetTitle(" Mood ")
	a.setBadge(display.PlaceholderBadge())

	a.explanation = tview.NewTextView().SetWordWrap(true).SetText(session.ExplanationPrompt)
	a.explanation.SetBorder(true).SetTitle(" Insight ")

	a.chart = tview.NewTextView().SetDynamicColors(true)
	a.chart.SetBorder(true).SetTitle(" Mood History ")

	a.resources = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true)
	a.resources.SetBorder(true).SetTitle(resourcesTitle)

	chat := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.log, 0, 1, false).
		AddItem(a.typing, 1, 0, false).
		AddItem(inputRow, 1, 0, true)

	a.side = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.badge, 3, 0, false).
		AddItem(a.explanation, 5, 0, false).
		AddItem(a.chart, 0, 0, false).
		AddItem(a.resources, 0, 1, false)

	a.root = tview.NewFlex().
		AddItem(chat, 0, 2, true).
		AddItem(a.side, 0, 1, false)

	a.app.SetRoot(a.root, true).SetFocus(a.input)
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlL {
			a.clear()
			return nil
		}
		return event
	})

	return a
}

// OnSubmit registers the handler for entered text. It runs on its own
// goroutine.
func (a *App) OnSubmit(f func(text string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onSubmit = f
}

// OnClear registers the handler for the clear action. It runs on its own
// goroutine.
func (a *App) OnClear(f func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onClear = f
}

// Surface exposes the widgets to the session controller.
func (a *App) Surface() view.Surface {
	return view.Surface{
		Log:            logPart{a},
		Input:          inputPart{a},
		Badge:          badgePart{a},
		Explanation:    explanationPart{a},
		ChartCanvas:    chartPart{a},
		ChartContainer: chartPart{a},
		Resources:      resourcesPart{a},
	}
}

// Run blocks until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, a.app.Stop)
	defer stop()
	return a.app.Run()
}

// Stop ends Run.
func (a *App) Stop() {
	a.app.Stop()
}

func (a *App) submit(text string) {
	a.mu.Lock()
	f := a.onSubmit
	a.mu.Unlock()
	if f != nil {
		go f(text)
	}
}

func (a *App) clear() {
	a.mu.Lock()
	f := a.onClear
	a.mu.Unlock()
	if f != nil {
		go f()
	}
}

// setBadge must run on the event loop or before Run.
func (a *App) setBadge(style view.BadgeStyle) {
	a.badge.SetText(style.Text)
	a.badge.SetBackgroundColor(tcell.GetColor(style.Background))
	a.badge.SetTextColor(tcell.GetColor(style.Foreground))
}

type logPart struct{ a *App }

func (p logPart) Append(entry view.Entry) {
	p.a.mu.Lock()
	p.a.entries++
	p.a.mu.Unlock()

	line := formatEntry(entry)
	p.a.app.QueueUpdateDraw(func() {
		_, _ = p.a.log.Write([]byte(line))
		p.a.log.ScrollToEnd()
	})
}

func (p logPart) Clear() {
	p.a.mu.Lock()
	p.a.entries = 0
	p.a.mu.Unlock()

	p.a.app.QueueUpdateDraw(func() {
		p.a.log.Clear()
	})
}

func (p logPart) Len() int {
	p.a.mu.Lock()
	defer p.a.mu.Unlock()
	return p.a.entries
}

func (p logPart) SetTyping(text string) {
	p.a.app.QueueUpdateDraw(func() {
		p.a.typing.SetText(tview.Escape(text))
	})
}

type inputPart struct{ a *App }

func (p inputPart) SetEnabled(enabled bool) {
	p.a.app.QueueUpdateDraw(func() {
		p.a.input.SetDisabled(!enabled)
		p.a.clearButton.SetDisabled(!enabled)
	})
}

func (p inputPart) Clear() {
	p.a.app.QueueUpdateDraw(func() {
		p.a.input.SetText("")
	})
}

func (p inputPart) Focus() {
	p.a.app.QueueUpdateDraw(func() {
		p.a.app.SetFocus(p.a.input)
	})
}

type badgePart struct{ a *App }

func (p badgePart) SetBadge(style view.BadgeStyle) {
	p.a.app.QueueUpdateDraw(func() {
		p.a.setBadge(style)
	})
}

type explanationPart struct{ a *App }

func (p explanationPart) SetText(text string) {
	p.a.app.QueueUpdateDraw(func() {
		p.a.explanation.SetText(text)
	})
}

type chartPart struct{ a *App }

func (p chartPart) Draw(points []view.ChartPoint, lineColor string) {
	text := renderChart(points, lineColor)
	p.a.app.QueueUpdateDraw(func() {
		p.a.chart.SetText(text)
	})
}

func (p chartPart) SetVisible(visible bool) {
	rows := 0
	if visible {
		rows = chartRows
	}
	p.a.app.QueueUpdateDraw(func() {
		p.a.side.ResizeItem(p.a.chart, rows, 0)
	})
}

type resourcesPart struct{ a *App }

func (p resourcesPart) SetDirectory(dir resource.Directory) {
	text := renderDirectory(dir)
	p.a.app.QueueUpdateDraw(func() {
		p.a.resources.SetText(text)
	})
}

func (p resourcesPart) SetHighlighted(highlighted bool) {
	p.a.app.QueueUpdateDraw(func() {
		if highlighted {
			p.a.resources.SetBorderColor(tcell.ColorRed).SetTitle(resourcesHighlight)
			return
		}
		p.a.resources.SetBorderColor(tcell.ColorDefault).SetTitle(resourcesTitle)
	})
}
