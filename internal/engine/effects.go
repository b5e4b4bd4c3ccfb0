package engine

import (
	"fmt"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

type squareKind int

const (
	kindNone squareKind = iota
	kindDeterministic
	kindNarrative
	kindNarrativeWithSource
)

// deterministicEffect mutates p in place. p is always a clone owned by the caller.
type deterministicEffect func(p *transformation.Progress) (forceLevelUp bool, message, detail string)

type squareRule struct {
	kind  squareKind
	apply deterministicEffect
}

var squareRules = map[transformation.SquareType]squareRule{
	transformation.SquareEmpty:          {kind: kindNone},
	transformation.SquareTear:           {kind: kindDeterministic, apply: applyTear},
	transformation.SquareAppreciation:   {kind: kindDeterministic, apply: applyAppreciation},
	transformation.SquareTransformation: {kind: kindDeterministic, apply: applyTransformation},
	transformation.SquareMiracle:        {kind: kindDeterministic, apply: applyMiracle},
	transformation.SquareInspiration:    {kind: kindNarrativeWithSource},
	transformation.SquareObstacle:       {kind: kindNarrativeWithSource},
	transformation.SquareAngel:          {kind: kindNarrative},
	transformation.SquareService:        {kind: kindNarrative},
	transformation.SquareIntuition:      {kind: kindNarrative},
	transformation.SquareUniverse:       {kind: kindNarrative},
	transformation.SquareBlessing:       {kind: kindNarrative},
}

func applyTear(p *transformation.Progress) (bool, string, string) {
	p.PainTokens += TearPain
	return false, "Tear square", fmt.Sprintf("You received %d tear tokens. They will slow your steps.", TearPain)
}

func applyAppreciation(p *transformation.Progress) (bool, string, string) {
	if p.PainTokens > 0 {
		p.PainTokens = 0
		return false, "Appreciation square", "All tears have been cleared."
	}
	p.AwarenessTokens += AppreciationAwareness
	return false, "Appreciation square", fmt.Sprintf("Gratitude brings %d awareness tokens.", AppreciationAwareness)
}

func applyTransformation(p *transformation.Progress) (bool, string, string) {
	p.PainTokens = 0
	return true, "Transformation square", "You have transformed all patterns of pain!"
}

func applyMiracle(p *transformation.Progress) (bool, string, string) {
	p.PainTokens = 0
	return false, "Miracle square", "Grace arrives and every tear disappears."
}

func ruleFor(sq transformation.SquareType) (squareRule, error) {
	rule, ok := squareRules[sq]
	if !ok {
		return squareRule{}, errors.InvalidArgumentf("unknown square type %q", sq)
	}
	return rule, nil
}

// NeedsNarrative reports whether landing on sq requires a card from the
// narrative provider before any token changes
func NeedsNarrative(sq transformation.SquareType) bool {
	rule := squareRules[sq]
	return rule.kind == kindNarrative || rule.kind == kindNarrativeWithSource
}

// NeedsSourceChoice reports whether the player picks a card source first
func NeedsSourceChoice(sq transformation.SquareType) bool {
	return squareRules[sq].kind == kindNarrativeWithSource
}

// IsDeterministic reports whether sq resolves without a card. Empty counts.
func IsDeterministic(sq transformation.SquareType) bool {
	rule, ok := squareRules[sq]
	return ok && (rule.kind == kindDeterministic || rule.kind == kindNone)
}

// SquareOutcome is the result of a deterministic square
type SquareOutcome struct {
	Square   transformation.SquareType
	Progress *transformation.Progress
	// ForceLevelUp asks the caller to level up without the pain gate
	ForceLevelUp bool
	// Message is empty when the square has no effect
	Message string
	Detail  string
}

// ApplySquare resolves a square that needs no card
func ApplySquare(p *transformation.Progress, sq transformation.SquareType) (*SquareOutcome, error) {
	if err := requireProgress(p); err != nil {
		return nil, err
	}
	rule, err := ruleFor(sq)
	if err != nil {
		return nil, err
	}

	outcome := &SquareOutcome{Square: sq, Progress: p.Clone()}
	switch rule.kind {
	case kindNone:
		return outcome, nil
	case kindDeterministic:
		outcome.ForceLevelUp, outcome.Message, outcome.Detail = rule.apply(outcome.Progress)
		return outcome, nil
	default:
		return nil, errors.FailedPreconditionf("square %s requires a narrative card", sq).
			WithMeta("square", string(sq))
	}
}

// CardOutcome is the result of applying an acknowledged card
type CardOutcome struct {
	Square   transformation.SquareType
	Progress *transformation.Progress
	// AngelCollected is the quality appended to Angels, if any
	AngelCollected string
	// AngelGraduation is true when the player holds enough angels and no pain
	// after this application
	AngelGraduation bool
	Message         string
	Detail          string
}

// ApplyCard applies card deltas with a floor of zero on every counter. On an
// Angel square the card title is collected as an angel. AngelGraduation is
// evaluated after every application, whatever square triggered the card.
func ApplyCard(p *transformation.Progress, sq transformation.SquareType, card *transformation.Card) (*CardOutcome, error) {
	if err := requireProgress(p); err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errors.InvalidArgument("card is required")
	}
	if !NeedsNarrative(sq) {
		return nil, errors.FailedPreconditionf("square %s does not draw cards", sq).
			WithMeta("square", string(sq))
	}

	next := p.Clone()
	next.AwarenessTokens = clampAdd(next.AwarenessTokens, card.Effect.Awareness)
	next.PainTokens = clampAdd(next.PainTokens, card.Effect.Pain)
	next.ServiceTokens = clampAdd(next.ServiceTokens, card.Effect.Service)

	outcome := &CardOutcome{
		Square:   sq,
		Progress: next,
		Message:  fmt.Sprintf("Drew %s", card.Title),
		Detail:   card.Description,
	}

	if sq == transformation.SquareAngel {
		next.Angels = append(next.Angels, card.Title)
		outcome.AngelCollected = card.Title
	}

	outcome.AngelGraduation = len(next.Angels) >= AngelsToGraduate && next.PainTokens == 0
	return outcome, nil
}
