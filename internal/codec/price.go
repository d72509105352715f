package codec

import (
	"strconv"
	"strings"

	"main/internal/schema"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

// ParsePrice decodes the treasury fractional notation "B-XYz" into ticks:
// B whole points, XY 32nds (00..31), z extra 256ths where z is a digit
// 0..7 or '+' for 4. "99-16+" is 99 + 16/32 + 4/256 points.
func ParsePrice(s string) (schema.Price, error) {
	dash := strings.IndexByte(s, '-')
	if dash <= 0 || len(s) != dash+4 {
		return 0, errors.Wrapf(exception.ErrInvalidPrice, "input: %q", s)
	}

	base, err := strconv.ParseInt(s[:dash], 10, 64)
	if err != nil || base < 0 {
		return 0, errors.Wrapf(exception.ErrInvalidPrice, "base: %q", s[:dash])
	}

	xy, err := strconv.ParseInt(s[dash+1:dash+3], 10, 64)
	if err != nil || xy < 0 || xy > 31 {
		return 0, errors.Wrapf(exception.ErrInvalidPrice, "32nds: %q", s[dash+1:dash+3])
	}

	var z int64
	switch c := s[dash+3]; {
	case c == '+':
		z = 4
	case c >= '0' && c <= '7':
		z = int64(c - '0')
	default:
		return 0, errors.Wrapf(exception.ErrInvalidPrice, "256ths: %q", string(s[dash+3]))
	}

	return schema.Price(base)*schema.TicksPerPoint +
		schema.Price(xy)*schema.TicksPer32nd +
		schema.Price(z), nil
}

// FormatPrice encodes ticks back into "B-XYz" notation. The price must be
// non-negative.
func FormatPrice(p schema.Price) string {
	base := p / schema.TicksPerPoint
	rem := p % schema.TicksPerPoint
	xy := rem / schema.TicksPer32nd
	z := rem % schema.TicksPer32nd

	var b strings.Builder
	b.WriteString(strconv.FormatInt(int64(base), 10))
	b.WriteByte('-')
	if xy < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(int64(xy), 10))
	if z == 4 {
		b.WriteByte('+')
	} else {
		b.WriteByte(byte('0' + z))
	}
	return b.String()
}
