package mood

import "testing"

func TestDetectCrisisCaseInsensitive(t *testing.T) {
	if !DetectCrisis("Sometimes I feel like I Want To Die") {
		t.Fatal("expected crisis keyword to match")
	}
	if DetectCrisis("I had a lovely walk today") {
		t.Fatal("unexpected crisis match")
	}
}

func TestAnalyzeFirstPatternWins(t *testing.T) {
	// "hello" and "happy" both match; greetings come first in the bank.
	decision := Analyze("Hello, I am happy")
	if decision.Mood != "neutral" || decision.Intensity != 5 {
		t.Fatalf("expected greeting decision, got %s/%d", decision.Mood, decision.Intensity)
	}
	if !decision.Matched {
		t.Fatal("expected match flag")
	}
}

func TestAnalyzeWordBoundaries(t *testing.T) {
	decision := Analyze("I feel so lonely lately")
	if decision.Mood != "depressed" || decision.Intensity != 7 {
		t.Fatalf("expected lonely decision, got %s/%d", decision.Mood, decision.Intensity)
	}

	// "bluetooth" must not trigger the "blue" bucket.
	decision = Analyze("my bluetooth headset broke")
	if decision.Matched {
		t.Fatalf("unexpected match: %s", decision.Mood)
	}
	if decision.Mood != "neutral" || len(decision.Responses) == 0 {
		t.Fatalf("expected neutral default, got %s", decision.Mood)
	}
}

func TestAnalyzeExplanationMentionsMood(t *testing.T) {
	decision := Analyze("I'm so excited about tomorrow")
	if decision.Mood != "happy" {
		t.Fatalf("expected happy, got %s", decision.Mood)
	}
	if decision.Explanation != "Message contains words suggesting a happy mood." {
		t.Fatalf("unexpected explanation %q", decision.Explanation)
	}
}
