package custom_errors

import "errors"

var (
	ErrConflict       = errors.New("record already exists")
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("not authenticated")
	ErrForbidden      = errors.New("not an administrator")
	ErrInternalServer = errors.New("internal server error")
)
