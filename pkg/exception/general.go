package exception

import "github.com/yanun0323/errors"

// General errors
var (
	ErrNotFound        = errors.New("key not found")
	ErrNilInstance     = errors.New("nil instance")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInternal        = errors.New("internal error")
)
