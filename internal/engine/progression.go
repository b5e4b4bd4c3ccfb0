package engine

import (
	"fmt"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// LevelUpOutcome is a level transition
type LevelUpOutcome struct {
	From     transformation.Level
	To       transformation.Level
	Progress *transformation.Progress
	// Completed is true when From was the last level. To equals From and the
	// session is over.
	Completed bool
	Message   string
	Detail    string
}

// LevelUp advances to the next level and resets the position. Tokens and
// angels carry over. It is also the forced path, so it never checks pain.
func LevelUp(p *transformation.Progress) (*LevelUpOutcome, error) {
	if err := requireProgress(p); err != nil {
		return nil, err
	}
	if !p.CurrentLevel.IsValid() {
		return nil, errors.InvalidArgumentf("unknown level %q", p.CurrentLevel)
	}

	outcome := &LevelUpOutcome{
		From:     p.CurrentLevel,
		Progress: p.Clone(),
	}

	next, ok := p.CurrentLevel.Next()
	if !ok {
		outcome.To = p.CurrentLevel
		outcome.Completed = true
		outcome.Message = "Transformation complete"
		outcome.Detail = "You have integrated your intention on every level."
		return outcome, nil
	}

	outcome.To = next
	outcome.Progress.CurrentLevel = next
	outcome.Progress.Position = 0
	outcome.Message = fmt.Sprintf("Advanced to the %s level", next.DisplayName())
	return outcome, nil
}

// GraduationOutcome is the result of reaching the end of the track
type GraduationOutcome struct {
	Progress *transformation.Progress
	Blocked  bool
	// PendingPain is the pain that refused graduation
	PendingPain int
	// LevelUp is set when graduation succeeded
	LevelUp *LevelUpOutcome
	Message string
	Detail  string
}

// AttemptGraduation gates the level-up on zero pain. A refused attempt moves
// the player back exactly one step from the end of the track.
func AttemptGraduation(p *transformation.Progress) (*GraduationOutcome, error) {
	if err := requireProgress(p); err != nil {
		return nil, err
	}

	if p.PainTokens > 0 {
		next := p.Clone()
		next.Position = transformation.TrackLength - 1
		return &GraduationOutcome{
			Progress:    next,
			Blocked:     true,
			PendingPain: p.PainTokens,
			Message:     "Graduation blocked",
			Detail:      fmt.Sprintf("You still have %d tears. Clear them to advance.", p.PainTokens),
		}, nil
	}

	levelUp, err := LevelUp(p)
	if err != nil {
		return nil, err
	}
	return &GraduationOutcome{
		Progress: levelUp.Progress,
		LevelUp:  levelUp,
		Message:  levelUp.Message,
		Detail:   levelUp.Detail,
	}, nil
}

// ClearPain spends one awareness token to remove one pain token
func ClearPain(p *transformation.Progress) (*transformation.Progress, error) {
	if err := requireProgress(p); err != nil {
		return nil, err
	}
	if !p.CanClearPain() {
		return nil, errors.FailedPrecondition("clearing pain needs at least one awareness and one pain token").
			WithMeta("awareness_tokens", p.AwarenessTokens).
			WithMeta("pain_tokens", p.PainTokens)
	}

	next := p.Clone()
	next.AwarenessTokens--
	next.PainTokens--
	return next, nil
}
