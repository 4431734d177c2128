package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// Resources owned by another user are reported with this error too.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates that no authenticated owner identity was available.
var ErrUnauthorized = errors.New("unauthorized")

// ErrStoreFailure indicates that the underlying persistence operation failed.
var ErrStoreFailure = errors.New("store failure")
