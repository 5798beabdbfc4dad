package service

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/mmynk/splitroom/internal/calculator"
	"github.com/mmynk/splitroom/internal/storage"
)

var (
	errNameRequired        = errors.New("name is required")
	errCodeInvalid         = errors.New("room code must look like ABC-123")
	errDescriptionRequired = errors.New("description is required")
	errAmountInvalid       = errors.New("amount must be positive")
	errSplitRequired       = errors.New("split_among must name at least one member")
	errRoomNotFound        = errors.New("room not found")
	errWrongRoom           = errors.New("session belongs to another room")
	errCodeExhausted       = errors.New("could not allocate a free room code")
)

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, errRoomNotFound)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, calculator.ErrInvalidExpense):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
