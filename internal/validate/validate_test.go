// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"testing"

	"github.com/pdiddy/qtipack/pkg/types"
)

func choices(texts ...string) []types.Choice {
	out := make([]types.Choice, len(texts))
	for i, t := range texts {
		out[i] = types.Choice{Label: string(rune('A' + i)), Text: t}
	}
	return out
}

func marked(cs []types.Choice, idx ...int) []types.Choice {
	for _, i := range idx {
		cs[i].Correct = true
	}
	return cs
}

func manyChoices(n int) []types.Choice {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("option %d", i+1)
	}
	return marked(choices(texts...), 0)
}

func TestValidate(t *testing.T) {
	cfg := types.DefaultPipelineConfig()

	tests := []struct {
		name       string
		candidate  types.Candidate
		wantReason types.ReasonCode
		wantType   types.QuestionType
	}{
		{
			name:      "single correct",
			candidate: types.Candidate{Text: "What is 2+2?", Choices: marked(choices("3", "4", "5", "6"), 1)},
			wantType:  types.QuestionSingle,
		},
		{
			name:      "multiple correct",
			candidate: types.Candidate{Text: "Which are even?", Choices: marked(choices("2", "3", "4"), 0, 2)},
			wantType:  types.QuestionMultiple,
		},
		{
			name:       "stem too short",
			candidate:  types.Candidate{Text: " 2+2 ", Choices: marked(choices("3", "4"), 1)},
			wantReason: types.ReasonTextTooShort,
		},
		{
			name:       "stem length counts runes",
			candidate:  types.Candidate{Text: "éééé", Choices: marked(choices("a", "b"), 0)},
			wantReason: types.ReasonTextTooShort,
		},
		{
			name:       "too few choices",
			candidate:  types.Candidate{Text: "Is the sky blue?", Choices: marked(choices("yes"), 0)},
			wantReason: types.ReasonTooFewChoices,
		},
		{
			name:       "too many choices",
			candidate:  types.Candidate{Text: "Pick the right letter", Choices: manyChoices(25)},
			wantReason: types.ReasonTooManyChoices,
		},
		{
			name:      "twenty choices allowed",
			candidate: types.Candidate{Text: "Pick the right letter", Choices: manyChoices(20)},
			wantType:  types.QuestionSingle,
		},
		{
			name:       "empty choice text",
			candidate:  types.Candidate{Text: "Pick a colour", Choices: marked(choices("red", "  "), 0)},
			wantReason: types.ReasonEmptyChoiceText,
		},
		{
			name:       "no correct answer",
			candidate:  types.Candidate{Text: "Pick a colour", Choices: choices("red", "blue")},
			wantReason: types.ReasonNoCorrectAnswer,
		},
		{
			name:       "first failing rule wins",
			candidate:  types.Candidate{Text: "Hi", Choices: choices("")},
			wantReason: types.ReasonTextTooShort,
		},
		{
			name:       "choice count before empty text",
			candidate:  types.Candidate{Text: "Pick a colour", Choices: choices("")},
			wantReason: types.ReasonTooFewChoices,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, rej := Validate(cfg, tt.candidate)
			if tt.wantReason != "" {
				if rej == nil {
					t.Fatalf("accepted, want rejection %s", tt.wantReason)
				}
				if rej.Reason != tt.wantReason {
					t.Errorf("reason = %s, want %s", rej.Reason, tt.wantReason)
				}
				return
			}
			if rej != nil {
				t.Fatalf("rejected with %s, want accepted", rej.Reason)
			}
			if q.Type != tt.wantType {
				t.Errorf("type = %s, want %s", q.Type, tt.wantType)
			}
			if q.Points != types.DefaultPoints {
				t.Errorf("points = %d, want %d", q.Points, types.DefaultPoints)
			}
		})
	}
}

func TestValidate_AcceptedInvariants(t *testing.T) {
	cfg := types.DefaultPipelineConfig()
	for n := 1; n <= 22; n++ {
		for correct := 0; correct <= 3 && correct <= n; correct++ {
			idx := make([]int, correct)
			for i := range idx {
				idx[i] = i
			}
			texts := make([]string, n)
			for i := range texts {
				texts[i] = fmt.Sprintf("c%d", i)
			}
			q, rej := Validate(cfg, types.Candidate{Text: "A long enough stem", Choices: marked(choices(texts...), idx...)})
			if rej != nil {
				continue
			}
			if len(q.Choices) < cfg.MinChoices || len(q.Choices) > cfg.MaxChoices {
				t.Errorf("n=%d: accepted %d choices", n, len(q.Choices))
			}
			got := len(q.CorrectIDs())
			switch q.Type {
			case types.QuestionSingle:
				if got != 1 {
					t.Errorf("n=%d: single with %d correct", n, got)
				}
			case types.QuestionMultiple:
				if got < 2 {
					t.Errorf("n=%d: multiple with %d correct", n, got)
				}
			}
		}
	}
}

func TestValidate_CustomConfig(t *testing.T) {
	cfg := types.PipelineConfig{MinChoices: 3, MaxChoices: 4, DefaultPoints: 5}.Normalize()

	_, rej := Validate(cfg, types.Candidate{Text: "Pick a colour", Choices: marked(choices("a", "b"), 0)})
	if rej == nil || rej.Reason != types.ReasonTooFewChoices {
		t.Fatalf("rejection = %+v, want TOO_FEW_CHOICES", rej)
	}

	q, rej := Validate(cfg, types.Candidate{Text: "Pick a colour", Choices: marked(choices("a", "b", "c"), 0)})
	if rej != nil {
		t.Fatalf("unexpected rejection %s", rej.Reason)
	}
	if q.Points != 5 {
		t.Errorf("points = %d, want 5", q.Points)
	}
}

func TestValidate_DoesNotAliasCandidate(t *testing.T) {
	c := types.Candidate{Text: "What is 2+2?", Choices: marked(choices("3", "4"), 1)}
	q, rej := Validate(types.DefaultPipelineConfig(), c)
	if rej != nil {
		t.Fatal(rej.Reason)
	}
	q.Choices[0].ID = "item_0001_c01"
	if c.Choices[0].ID != "" {
		t.Error("question shares choice storage with candidate")
	}
}

func TestAll(t *testing.T) {
	cands := []types.Candidate{
		{Text: "What is 2+2?", Choices: marked(choices("3", "4"), 1), Line: 1},
		{Text: "Pick a colour", Choices: choices("red", "blue"), Line: 5},
		{Text: "Which are even?", Choices: marked(choices("2", "3", "4"), 0, 2), Line: 9},
	}
	accepted, rejected := All(types.DefaultPipelineConfig(), cands)
	if len(accepted) != 2 || len(rejected) != 1 {
		t.Fatalf("accepted=%d rejected=%d, want 2 and 1", len(accepted), len(rejected))
	}
	if accepted[0].Line != 1 || accepted[1].Line != 9 {
		t.Errorf("order not preserved: lines %d, %d", accepted[0].Line, accepted[1].Line)
	}
	if rejected[0].Reason != types.ReasonNoCorrectAnswer {
		t.Errorf("reason = %s", rejected[0].Reason)
	}
}
