// Package transformation holds the data model of the transformation game:
// levels, the typed board, player progress with its token economy, card
// content and the session log entry shape.
//
// Types in this package carry no rules beyond their own invariants. Turn
// resolution, square effects and level progression live in internal/engine.
package transformation
