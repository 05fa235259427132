package display

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mindheaven/mindheaven/backend/internal/client/view"
	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
)

const (
	darkText  = "#000000"
	lightText = "#FFFFFF"
)

// Indicator returns the badge for a mood reading, e.g. "Positive (6/10)".
func Indicator(label string, intensity mood.Intensity) view.BadgeStyle {
	label = mood.NormalizeLabel(label)
	if label == "" {
		label = mood.Neutral
	}

	background, ok := mood.Color(label)
	if !ok {
		background = mood.FallbackColor
	}
	foreground := lightText
	if mood.IsLight(label) {
		foreground = darkText
	}

	n := strconv.FormatFloat(intensity.Normalize(), 'f', -1, 64)
	return view.BadgeStyle{
		Text:       cases.Title(language.English).String(label) + " (" + n + "/10)",
		Background: background,
		Foreground: foreground,
	}
}

// PlaceholderBadge is shown until a mood has been analysed.
func PlaceholderBadge() view.BadgeStyle {
	return view.BadgeStyle{
		Text:       "Analyzing...",
		Background: mood.FallbackColor,
		Foreground: darkText,
	}
}
