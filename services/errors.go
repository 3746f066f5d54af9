package services

import "errors"

// Domain failure classes. Handlers map these onto HTTP statuses; the
// wrapped message is what the client sees.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type domainError struct {
	kind error
	msg  string
}

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.kind }

// NotFoundError reports an entity that is absent or not owned by the
// requester. The two cases are deliberately indistinguishable.
func NotFoundError(msg string) error {
	return &domainError{kind: ErrNotFound, msg: msg}
}

// ConflictError reports an invariant violation such as a full property
// or a duplicate booking.
func ConflictError(msg string) error {
	return &domainError{kind: ErrConflict, msg: msg}
}

func BadRequestError(msg string) error {
	return &domainError{kind: ErrBadRequest, msg: msg}
}

func UnauthorizedError(msg string) error {
	return &domainError{kind: ErrUnauthorized, msg: msg}
}

func ForbiddenError(msg string) error {
	return &domainError{kind: ErrForbidden, msg: msg}
}
