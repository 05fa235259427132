package mood

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

const (
	// MinIntensity and MaxIntensity bound every stored intensity value.
	MinIntensity = 0
	MaxIntensity = 10
	// DefaultIntensity replaces any intensity that is not a number.
	DefaultIntensity = 5
)

// Intensity is a mood strength as it arrives on the wire. Servers are not
// trusted to send a number, so decoding never fails: anything other than a
// JSON number leaves Valid false.
type Intensity struct {
	Value float64
	Valid bool
}

// Of builds a valid Intensity.
func Of(v float64) Intensity {
	return Intensity{Value: v, Valid: true}
}

// UnmarshalJSON accepts any JSON value.
func (i *Intensity) UnmarshalJSON(data []byte) error {
	*i = Intensity{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '"' || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*i = Intensity{Value: v, Valid: true}
	return nil
}

// MarshalJSON writes the normalized value so peers always see a number.
func (i Intensity) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(i.Normalize(), 'f', -1, 64)), nil
}

// Normalize returns the value clamped to [0,10], or DefaultIntensity when the
// value is not a usable number.
func (i Intensity) Normalize() float64 {
	if !i.Valid || math.IsNaN(i.Value) || math.IsInf(i.Value, 0) {
		return DefaultIntensity
	}
	return Clamp(i.Value)
}

// Clamp constrains v to [MinIntensity, MaxIntensity].
func Clamp(v float64) float64 {
	return math.Max(MinIntensity, math.Min(MaxIntensity, v))
}

// Analysis is the per-turn mood inference attached to a chat reply.
type Analysis struct {
	Mood        string    `json:"mood"`
	Intensity   Intensity `json:"intensity"`
	Explanation string    `json:"explanation,omitempty"`
}

// Sample is one entry of the mood history.
type Sample struct {
	Mood      string    `json:"mood"`
	Intensity Intensity `json:"intensity"`
	Timestamp string    `json:"timestamp,omitempty"`
	Message   string    `json:"message,omitempty"`
}
