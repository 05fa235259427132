package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindheaven/mindheaven/backend/internal/client/view"
	"github.com/mindheaven/mindheaven/backend/internal/client/view/viewtest"
	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: "hello"},
		{name: "bold", in: "I am **very** tired", want: "I am [::b]very[::-] tired"},
		{name: "italic", in: "take a *deep* breath", want: "take a [::i]deep[::-] breath"},
		{name: "bold then italic", in: "**a** and *b*", want: "[::b]a[::-] and [::i]b[::-]"},
		{name: "newline kept", in: "line one\nline two", want: "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormatEscapesStyleTags(t *testing.T) {
	out := Format("[red]not a tag[-]")
	assert.NotContains(t, out, "[red]")
	assert.Contains(t, out, "not a tag")
}

func TestRenderLabelsSenders(t *testing.T) {
	log := &viewtest.Log{}
	r := NewRenderer(log)

	r.Render(view.SenderUser, "hi", false)
	r.Render(view.SenderAssistant, "call **now**", true)

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, UserLabel, entries[0].Label)
	assert.False(t, entries[0].Crisis)
	assert.Equal(t, AssistantLabel, entries[1].Label)
	assert.Equal(t, "call [::b]now[::-]", entries[1].Text)
	assert.True(t, entries[1].Crisis)
}

func TestRenderWithoutLogIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRenderer(nil).Render(view.SenderUser, "hi", false)
	})
}

func TestIndicator(t *testing.T) {
	badge := Indicator("positive", mood.Of(6))
	assert.Equal(t, "Positive (6/10)", badge.Text)
	assert.Equal(t, "#4CAF50", badge.Background)
	assert.Equal(t, darkText, badge.Foreground)

	badge = Indicator("depressed", mood.Of(8))
	assert.Equal(t, "Depressed (8/10)", badge.Text)
	assert.Equal(t, "#673AB7", badge.Background)
	assert.Equal(t, lightText, badge.Foreground)

	badge = Indicator("bewildered", mood.Of(12.5))
	assert.Equal(t, "Bewildered (10/10)", badge.Text)
	assert.Equal(t, mood.FallbackColor, badge.Background)
	assert.Equal(t, lightText, badge.Foreground)

	badge = Indicator("anxious", mood.Intensity{})
	assert.Equal(t, "Anxious (5/10)", badge.Text)

	badge = Indicator("happy", mood.Of(7.5))
	assert.Equal(t, "Happy (7.5/10)", badge.Text)

	badge = Indicator(" Positive", mood.Of(6))
	assert.Equal(t, "Positive (6/10)", badge.Text)
	assert.Equal(t, "#4CAF50", badge.Background)
	assert.Equal(t, darkText, badge.Foreground)
}

func TestPlaceholderBadge(t *testing.T) {
	badge := PlaceholderBadge()
	assert.Equal(t, "Analyzing...", badge.Text)
	assert.Equal(t, "#9E9E9E", badge.Background)
}
