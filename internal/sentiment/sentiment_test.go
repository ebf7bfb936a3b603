// ABOUTME: Tests for word-list sentiment classification
// ABOUTME: Covers polarity outcomes, ties, case sensitivity, and substring quirks

package sentiment

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Sentiment
	}{
		{"empty", "", Neutral},
		{"positive", "I love this, great job", Positive},
		{"negative", "this is terrible and frustrating", Negative},
		{"frustrated", "I'm frustrated, nothing is working", Negative},
		{"tie", "good but bad", Neutral},
		{"case sensitive", "GREAT", Neutral},
		{"repetition counts once", "good good good bad sad", Negative},
		{"dislike also counts like", "I dislike it", Neutral},
		{"thanks", "thanks a lot", Positive},
		{"no words", "the train leaves at noon", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %q; want %q (score %+v)", tt.input, got, tt.want, Measure(tt.input))
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	got := Measure("happy and excellent, but angry about the problem")
	if got.Positive != 2 || got.Negative != 2 {
		t.Errorf("Measure = %+v; want {2 2}", got)
	}
	if got.Polarity() != Neutral {
		t.Errorf("Polarity = %q; want neutral", got.Polarity())
	}
}
