package testutils

import (
	"fmt"
	"sync"
)

// ScriptedRoller satisfies the rpg-toolkit dice.Roller interface and returns
// a fixed sequence of rolls. It fails once the script runs out.
type ScriptedRoller struct {
	mu    sync.Mutex
	rolls []int
	calls int
}

// NewScriptedRoller creates a roller that returns rolls in order
func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// Push appends more rolls to the script
func (r *ScriptedRoller) Push(rolls ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rolls = append(r.rolls, rolls...)
}

// Roll returns the next scripted roll
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.calls >= len(r.rolls) {
		return 0, fmt.Errorf("scripted roller exhausted after %d rolls", r.calls)
	}
	roll := r.rolls[r.calls]
	r.calls++
	if roll < 1 || roll > size {
		return 0, fmt.Errorf("scripted roll %d does not fit a d%d", roll, size)
	}
	return roll, nil
}

// RollN returns the next count scripted rolls
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for range count {
		roll, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, roll)
	}
	return out, nil
}

// Calls returns how many rolls were consumed
func (r *ScriptedRoller) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
