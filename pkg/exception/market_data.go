package exception

import "github.com/yanun0323/errors"

var (
	ErrEmptyBook       = errors.New("market data: empty order book side")
	ErrUnknownProduct  = errors.New("market data: unknown product")
	ErrMalformedRecord = errors.New("market data: malformed record")
)
