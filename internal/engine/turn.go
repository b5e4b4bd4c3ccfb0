package engine

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// DieSides is the size of the single die rolled each turn
const DieSides = 6

// TurnResult is the outcome of moving for one roll
type TurnResult struct {
	Roll     int
	Movement int
	// Progress has the new position applied
	Progress *transformation.Progress
	// Square is set when the player landed on a square that must be resolved
	Square            transformation.SquareType
	HasSquare         bool
	Blocked           bool
	GraduationAttempt bool
	Message           string
	Detail            string
}

// RollDie rolls one six-sided die with the given roller
func RollDie(roller dice.Roller) (int, error) {
	if roller == nil {
		return 0, errors.InvalidArgument("dice roller is required")
	}

	roll, err := roller.Roll(DieSides)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll die")
	}
	if roll < 1 || roll > DieSides {
		return 0, errors.Internalf("roller returned %d for a d%d", roll, DieSides)
	}
	return roll, nil
}

// ResolveTurn computes movement for roll. Each pain token absorbs one pip;
// when the roll does not exceed the pain count the player is blocked and no
// square is evaluated. Movement is clamped at the end of the track, and
// reaching it exactly is a graduation attempt rather than a square landing.
func ResolveTurn(p *transformation.Progress, roll int) (*TurnResult, error) {
	if err := requireProgress(p); err != nil {
		return nil, err
	}
	if roll < 1 || roll > DieSides {
		return nil, errors.InvalidArgumentf("roll must be between 1 and %d, got %d", DieSides, roll).
			WithMeta("roll", roll)
	}

	next := p.Clone()
	result := &TurnResult{
		Roll:     roll,
		Movement: max(0, roll-p.PainTokens),
		Progress: next,
	}

	if result.Movement == 0 {
		result.Blocked = true
		result.Message = fmt.Sprintf("Stayed in place (blocked by %d tears)", p.PainTokens)
		result.Detail = "Clear tears to move forward."
		return result, nil
	}

	next.Position = min(p.Position+result.Movement, transformation.TrackLength)

	result.Message = fmt.Sprintf("Moved %d steps", result.Movement)
	if p.PainTokens > 0 {
		result.Message += fmt.Sprintf(" (rolled %d - %d tears)", roll, p.PainTokens)
	}
	result.Detail = fmt.Sprintf("Reached position %d", next.Position)

	if next.Position == transformation.TrackLength {
		result.GraduationAttempt = true
		return result, nil
	}

	result.Square, result.HasSquare = transformation.SquareAt(next.Position)
	return result, nil
}
