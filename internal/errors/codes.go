package errors

// Code classifies an error independently of its message
type Code string

// Codes used by the deck engine and its transports. Each maps one to one
// onto a gRPC status code.
const (
	CodeOK Code = "OK"

	// CodeInvalidArgument covers malformed presets, reference data and requests
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound covers unknown characters, equipment, cards and share ids
	CodeNotFound Code = "NOT_FOUND"
	// CodeAlreadyExists covers duplicate characters and share id collisions
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	// CodeFailedPrecondition covers operations that need a character in the slot
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	// CodeOutOfRange covers slot indexes and display positions
	CodeOutOfRange Code = "OUT_OF_RANGE"
	// CodeAborted covers canceled clipboard access
	CodeAborted Code = "ABORTED"
	// CodeUnavailable covers clipboard and storage failures
	CodeUnavailable Code = "UNAVAILABLE"
	// CodeDataLoss covers stored presets that no longer decode
	CodeDataLoss Code = "DATA_LOSS"
	CodeInternal Code = "INTERNAL"
)

func (c Code) String() string {
	return string(c)
}
