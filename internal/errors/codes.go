package errors

import "net/http"

// Code represents an error code
type Code string

// Generic error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// Combat domain error codes. Illegal-action codes are always
// caller-recoverable: the engine rejects the action and leaves battle
// state untouched. CodeInvalidClassData is fatal to battle initialization.
const (
	CodeIllegalMove      Code = "ILLEGAL_MOVE"
	CodeIllegalTarget    Code = "ILLEGAL_TARGET"
	CodeInsufficientMana Code = "INSUFFICIENT_MANA"
	CodeBattleOver       Code = "BATTLE_OVER"
	CodeInvalidClassData Code = "INVALID_CLASS_DATA"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument, CodeOutOfRange:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeBattleOver:
		return http.StatusConflict
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case CodeIllegalMove, CodeIllegalTarget, CodeInsufficientMana:
		return http.StatusUnprocessableEntity
	case CodeInvalidClassData, CodeInternal:
		return http.StatusInternalServerError
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
