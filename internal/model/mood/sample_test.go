package mood

import (
	"encoding/json"
	"testing"
)

func TestIntensityDecodeNumber(t *testing.T) {
	var s Sample
	if err := json.Unmarshal([]byte(`{"mood":"happy","intensity":12.5}`), &s); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if !s.Intensity.Valid {
		t.Fatal("expected valid intensity")
	}
	if got := s.Intensity.Normalize(); got != 10 {
		t.Fatalf("expected clamp to 10, got %v", got)
	}
}

func TestIntensityDecodeNonNumeric(t *testing.T) {
	cases := []string{
		`{"mood":"sad","intensity":"high"}`,
		`{"mood":"sad","intensity":null}`,
		`{"mood":"sad","intensity":[1]}`,
		`{"mood":"sad"}`,
	}
	for _, raw := range cases {
		var s Sample
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			t.Fatalf("unmarshal %s err: %v", raw, err)
		}
		if s.Intensity.Valid {
			t.Fatalf("expected invalid intensity for %s", raw)
		}
		if got := s.Intensity.Normalize(); got != DefaultIntensity {
			t.Fatalf("expected default for %s, got %v", raw, got)
		}
	}
}

func TestIntensityNormalizeNegative(t *testing.T) {
	if got := Of(-3).Normalize(); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestIntensityMarshal(t *testing.T) {
	data, err := json.Marshal(Analysis{Mood: Positive, Intensity: Of(6)})
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	if string(data) != `{"mood":"positive","intensity":6}` {
		t.Fatalf("unexpected json: %s", data)
	}
}

func TestColorFallback(t *testing.T) {
	if c, ok := Color(Positive); !ok || c != "#4CAF50" {
		t.Fatalf("unexpected positive colour %q", c)
	}
	if _, ok := Color("melancholic"); ok {
		t.Fatal("expected unknown mood")
	}
	if !IsLight(Neutral) || IsLight(Angry) {
		t.Fatal("unexpected light mood table")
	}
}

func TestColorIgnoresCase(t *testing.T) {
	if c, ok := Color(" Angry "); !ok || c != "#FF5722" {
		t.Fatalf("unexpected colour %q for mixed-case label", c)
	}
	if !IsLight("HAPPY") {
		t.Fatal("expected HAPPY to be light")
	}
	if got := NormalizeLabel("  Neutral\n"); got != Neutral {
		t.Fatalf("NormalizeLabel = %q", got)
	}
}
