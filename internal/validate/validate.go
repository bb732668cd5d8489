// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate enforces structural rules on recognized candidates.
// Each candidate is either accepted as a typed Question or rejected with
// exactly one reason code.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/qtipack/pkg/types"
)

// Validate checks c against cfg. Rules run in the order of
// types.ReasonCodes and the first failing rule decides the rejection.
// Exactly one of the return values is meaningful: a nil *Rejection means
// the Question was accepted.
func Validate(cfg types.PipelineConfig, c types.Candidate) (types.Question, *types.Rejection) {
	if reason, ok := check(cfg, c); !ok {
		return types.Question{}, &types.Rejection{Candidate: c, Reason: reason}
	}

	qtype := types.QuestionSingle
	if c.CorrectCount() > 1 {
		qtype = types.QuestionMultiple
	}
	points := cfg.DefaultPoints
	if points <= 0 {
		points = types.DefaultPoints
	}

	choices := make([]types.Choice, len(c.Choices))
	copy(choices, c.Choices)
	return types.Question{
		Text:       strings.TrimSpace(c.Text),
		Choices:    choices,
		Type:       qtype,
		Points:     points,
		SourceFile: c.SourceFile,
		Line:       c.Line,
	}, nil
}

func check(cfg types.PipelineConfig, c types.Candidate) (types.ReasonCode, bool) {
	cfg = cfg.Normalize()

	if utf8.RuneCountInString(strings.TrimSpace(c.Text)) < cfg.MinQuestionLength {
		return types.ReasonTextTooShort, false
	}
	if len(c.Choices) < cfg.MinChoices {
		return types.ReasonTooFewChoices, false
	}
	if len(c.Choices) > cfg.MaxChoices {
		return types.ReasonTooManyChoices, false
	}
	for _, ch := range c.Choices {
		if strings.TrimSpace(ch.Text) == "" {
			return types.ReasonEmptyChoiceText, false
		}
	}
	if c.CorrectCount() == 0 {
		return types.ReasonNoCorrectAnswer, false
	}
	return "", true
}

// All validates every candidate, keeping source order in both outputs.
func All(cfg types.PipelineConfig, candidates []types.Candidate) ([]types.Question, []types.Rejection) {
	var (
		accepted []types.Question
		rejected []types.Rejection
	)
	for _, c := range candidates {
		q, rej := Validate(cfg, c)
		if rej != nil {
			rejected = append(rejected, *rej)
			continue
		}
		accepted = append(accepted, q)
	}
	return accepted, rejected
}
