package model

import "errors"

// ErrInvalidClaim marks claim input rejected before a job is created.
var ErrInvalidClaim = errors.New("invalid claim")
