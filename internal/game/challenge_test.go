package game

import "testing"

func TestParseChallenge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		raw          string
		wantQuestion string
		wantAnswer   string
		wantOK       bool
	}{
		{
			name:         "well formed",
			raw:          "Q? A) x B) y C) z D) w ||| C",
			wantQuestion: "Q? A) x B) y C) z D) w",
			wantAnswer:   "C",
			wantOK:       true,
		},
		{
			name:         "lowercase letter",
			raw:          "Which food? ||| b",
			wantQuestion: "Which food?",
			wantAnswer:   "B",
			wantOK:       true,
		},
		{
			name:         "letter with whitespace",
			raw:          "Which food? |||   D  \n",
			wantQuestion: "Which food?",
			wantAnswer:   "D",
			wantOK:       true,
		},
		{
			name:         "missing delimiter falls back",
			raw:          "Which food is traditional?",
			wantQuestion: "Which food is traditional?",
			wantAnswer:   FallbackLetter,
			wantOK:       false,
		},
		{
			name:         "junk after delimiter falls back",
			raw:          "Which food? ||| the answer is B",
			wantQuestion: "Which food?",
			wantAnswer:   FallbackLetter,
			wantOK:       false,
		},
		{
			name:         "letter outside alphabet falls back",
			raw:          "Which food? ||| E",
			wantQuestion: "Which food?",
			wantAnswer:   FallbackLetter,
			wantOK:       false,
		},
		{
			name:         "splits on last delimiter",
			raw:          "Tricky ||| question body ||| A",
			wantQuestion: "Tricky ||| question body",
			wantAnswer:   "A",
			wantOK:       true,
		},
		{
			name:         "empty input",
			raw:          "",
			wantQuestion: "",
			wantAnswer:   FallbackLetter,
			wantOK:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseChallenge(tt.raw)
			if got.Question != tt.wantQuestion {
				t.Errorf("Question = %q, want %q", got.Question, tt.wantQuestion)
			}
			if got.Answer != tt.wantAnswer {
				t.Errorf("Answer = %q, want %q", got.Answer, tt.wantAnswer)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestParseChallengeFallbackIsDeterministic(t *testing.T) {
	t.Parallel()

	const raw = "No delimiter here at all"
	first, _ := ParseChallenge(raw)
	for i := 0; i < 10; i++ {
		again, _ := ParseChallenge(raw)
		if again.Answer != first.Answer {
			t.Fatalf("fallback letter changed between parses: %q then %q", first.Answer, again.Answer)
		}
	}
}

func TestNormalizeLetter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"b", "B"},
		{" C ", "C"},
		{"\td\n", "D"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLetter(tt.in); got != tt.want {
			t.Errorf("NormalizeLetter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
