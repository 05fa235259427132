package mood

import "strings"

// Labels produced by the analyzers. Anything else is rendered with the
// fallback colours.
const (
	Positive  = "positive"
	Negative  = "negative"
	Neutral   = "neutral"
	Anxious   = "anxious"
	Depressed = "depressed"
	Happy     = "happy"
	Angry     = "angry"
	Confused  = "confused"
)

const (
	// FallbackColor is used for badges of unrecognised moods.
	FallbackColor = "#9E9E9E"
	// FallbackLineColor is the chart line colour for unrecognised moods.
	FallbackLineColor = "#4BC0C0"
)

var colors = map[string]string{
	Positive:  "#4CAF50",
	Negative:  "#F44336",
	Neutral:   "#9E9E9E",
	Anxious:   "#FFC107",
	Depressed: "#673AB7",
	Happy:     "#2196F3",
	Angry:     "#FF5722",
	Confused:  "#607D8B",
}

var lightMoods = map[string]bool{
	Positive: true,
	Happy:    true,
	Neutral:  true,
}

// NormalizeLabel trims and lowercases a mood label as reported by a server.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Color returns the mapped colour for label and whether the label is known.
// Lookups ignore case and surrounding whitespace.
func Color(label string) (string, bool) {
	c, ok := colors[NormalizeLabel(label)]
	return c, ok
}

// IsLight reports whether label's background needs dark text.
func IsLight(label string) bool {
	return lightMoods[NormalizeLabel(label)]
}
