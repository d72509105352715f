package exception

import "github.com/yanun0323/errors"

var (
	ErrConfigMissing = errors.New("risk: product missing from pv01 table")
)
