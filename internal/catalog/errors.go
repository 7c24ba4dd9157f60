package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that the requested movie does not exist.
	ErrNotFound = errors.New("movie not found")
	// ErrMalformedID signals an identifier the active store cannot parse.
	ErrMalformedID = errors.New("malformed movie id")
	// ErrBadRequest signals a form submission with missing fields.
	ErrBadRequest = errors.New("bad request")
	// ErrRatingNotNumber marks a rating that could not be parsed at all.
	ErrRatingNotNumber = errors.New("rating is not a number")
	// ErrRatingOutOfRange marks a numeric rating outside [0, 10].
	ErrRatingOutOfRange = errors.New("rating out of range")
)

// User-facing validation messages, in the order they are checked.
const (
	MsgTitleRequired    = "Please enter title"
	MsgDuplicateTitle   = "This movie is exists!"
	MsgDirectorRequired = "Please enter director"
	MsgRatingRange      = "Please enter rating between 1 and 10"
)

// Validation failure reasons, used as metric labels.
const (
	ReasonTitle     = "title"
	ReasonDuplicate = "duplicate"
	ReasonDirector  = "director"
	ReasonRating    = "rating"
)

// ValidationError is a form problem the user can fix. Message is shown on the
// re-rendered form.
type ValidationError struct {
	Reason  string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MalformedID wraps ErrMalformedID with the offending identifier.
func MalformedID(id string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w %q", ErrMalformedID, id)
	}
	return fmt.Errorf("%w %q: %v", ErrMalformedID, id, cause)
}
