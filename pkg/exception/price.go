package exception

import "github.com/yanun0323/errors"

var (
	ErrInvalidPrice = errors.New("price: invalid fractional notation")
)
