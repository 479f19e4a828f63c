// Package errors provides the structured error type shared by every layer of deck-api.
//
// Errors carry a Code, a short message and optional metadata:
//
//	err := errors.NotFoundf("character %s not found", id).
//	    WithMeta("slot", slot)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to save preset")
//	}
//
// The taxonomy used by the deck engine:
//   - InvalidArgument: malformed presets, reference data and inputs
//   - NotFound: unknown characters, equipment, cards and share ids
//   - AlreadyExists: a character placed twice in one deck
//   - FailedPrecondition: operations on an empty slot, leader not selected
//   - OutOfRange: slot indexes and card positions
//   - Unavailable: clipboard and storage access failures
//
// Handlers convert to gRPC with ToGRPCError.
package errors
