package models

import "errors"

// Failure taxonomy shared by the controllers. Handlers pick an HTTP status by
// branching on these with errors.Is; none of them are swallowed on the way up.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrDuplicateMobile   = errors.New("mobile number already registered")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrEmptyCart         = errors.New("no products in order")
)

// FailedGroup records one farmer group whose order could not be persisted
// during checkout.
type FailedGroup struct {
	FarmerID string `json:"farmerId"`
	Reason   string `json:"reason"`
}
