package v1alpha1

import "errors"

// ErrInvalidExecutor is returned when an executor other than vim or nvim is specified.
var ErrInvalidExecutor = errors.New("invalid executor")
