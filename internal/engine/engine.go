// Package engine implements the rules of the transformation game as pure
// functions over transformation.Progress.
//
// Every operation takes the current progress and returns an outcome holding a
// new Progress value; the input is never modified. Committing the outcome,
// logging it and talking to the narrative provider are the caller's job.
package engine

import (
	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// Token amounts fixed by the board rules
const (
	TearPain              = 4
	AppreciationAwareness = 2
	AngelsToGraduate      = 3
)

func requireProgress(p *transformation.Progress) error {
	if p == nil {
		return errors.InvalidArgument("progress is required")
	}
	return nil
}

// clampAdd applies delta to current with a floor of zero
func clampAdd(current, delta int) int {
	return max(0, current+delta)
}
