// Package errors provides the structured error handling used across combat-api.
//
// It provides:
//   - Structured errors with codes, messages, and metadata
//   - Combat domain codes (illegal move/target, insufficient mana, battle over)
//   - HTTP status mapping for the handler layer
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("battle not found")
//	err := errors.IllegalMovef("cell (%d,%d) is not reachable", to.Row, to.Col)
//
// Adding metadata:
//
//	err := errors.IllegalTarget("target out of range").
//	    WithMeta("attacker_id", attackerID).
//	    WithMeta("target_id", targetID)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to get battle record")
//	}
//
// # Error Checking
//
//	if errors.IsInsufficientMana(err) {
//	    // reject the skill, battle state is untouched
//	}
//
//	code := errors.GetCode(err)
//	status := code.HTTPStatus()
//
// # Validation Errors
//
// Using the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Rules == nil {
//	    vb.RequiredField("Rules")
//	}
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Engine (internal/combat):
//   - Illegal-action errors (IllegalMove, IllegalTarget, InsufficientMana,
//     BattleOver) are recoverable; the rejected action mutates nothing.
//   - InvalidClassData is fatal to battle initialization.
//
// Repository layer:
//   - Return NotFound/AlreadyExists with relevant IDs in metadata.
//   - Wrap storage errors with context.
//
// Handler layer:
//   - Map codes to HTTP statuses via Code.HTTPStatus().
package errors
