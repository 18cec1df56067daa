// Package u128 provides 128-bit unsigned and signed integers for the
// Simple-8b codec.
//
// The codec only requires equality, bit-width queries, trailing-zero counts
// and shifts from its element type; Uint128 implements that capability set on
// a pair of uint64 limbs. The package also provides decimal-string parsing
// with overflow detection, which is how wide deltas typically enter the
// system (e.g. decimal128 columns).
package u128

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
)

// Parsing errors, following strconv conventions.
var (
	// ErrSyntax indicates the input is empty or contains a non-digit rune.
	ErrSyntax = errors.New("u128: invalid syntax")
	// ErrRange indicates the decimal value does not fit in 128 bits
	// (or 127 bits plus sign for Int128).
	ErrRange = errors.New("u128: value out of range")
)

// Uint128 is an unsigned 128-bit integer composed of two 64-bit limbs.
// The zero value is the number zero.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Max is the largest representable Uint128 (2^128 - 1).
var Max = Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}

// From64 returns a Uint128 holding the given 64-bit value.
func From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero reports whether u is zero.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Cmp compares u and v and returns -1, 0, or +1.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi != v.Hi:
		if u.Hi < v.Hi {
			return -1
		}

		return 1
	case u.Lo != v.Lo:
		if u.Lo < v.Lo {
			return -1
		}

		return 1
	default:
		return 0
	}
}

// BitLen returns the number of bits required to represent u.
// BitLen(0) is 0.
func (u Uint128) BitLen() int {
	if u.Hi != 0 {
		return 64 + bits.Len64(u.Hi)
	}

	return bits.Len64(u.Lo)
}

// TrailingZeros returns the number of trailing zero bits in u.
// TrailingZeros(0) is 128.
func (u Uint128) TrailingZeros() int {
	if u.Lo != 0 {
		return bits.TrailingZeros64(u.Lo)
	}
	if u.Hi != 0 {
		return 64 + bits.TrailingZeros64(u.Hi)
	}

	return 128
}

// Lsh returns u shifted left by n bits. Shifts of 128 or more return zero.
func (u Uint128) Lsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64)}
	case n == 0:
		return u
	default:
		return Uint128{
			Hi: u.Hi<<n | u.Lo>>(64-n),
			Lo: u.Lo << n,
		}
	}
}

// Rsh returns u shifted right by n bits. Shifts of 128 or more return zero.
func (u Uint128) Rsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: u.Hi >> (n - 64)}
	case n == 0:
		return u
	default:
		return Uint128{
			Hi: u.Hi >> n,
			Lo: u.Lo>>n | u.Hi<<(64-n),
		}
	}
}

// Add returns u + v, wrapping on overflow.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)

	return Uint128{Hi: hi, Lo: lo}
}

// Sub returns u - v, wrapping on underflow.
func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)

	return Uint128{Hi: hi, Lo: lo}
}

// mul10add returns u*10 + d and whether the result overflowed 128 bits.
func (u Uint128) mul10add(d uint64) (Uint128, bool) {
	if u.BitLen() > 125 {
		// u*8 alone would exceed 128 bits.
		return Uint128{}, true
	}

	// u*10 = u*8 + u*2, both exact after the width check above.
	u8 := u.Lsh(3)
	u2 := u.Lsh(1)

	sum := u8.Add(u2)
	if sum.Cmp(u8) < 0 {
		return Uint128{}, true
	}

	res := sum.Add(Uint128{Lo: d})
	if res.Cmp(sum) < 0 {
		return Uint128{}, true
	}

	return res, false
}

// String returns the decimal representation of u.
func (u Uint128) String() string {
	if u.Hi == 0 {
		return strconv.FormatUint(u.Lo, 10)
	}

	// Peel off chunks of 10^19, the largest power of ten in a uint64.
	var buf [40]byte
	i := len(buf)
	for !u.IsZero() {
		var rem uint64
		u, rem = u.divmod64(1e19)
		if u.IsZero() {
			for rem > 0 {
				i--
				buf[i] = byte('0' + rem%10)
				rem /= 10
			}
		} else {
			for j := 0; j < 19; j++ {
				i--
				buf[i] = byte('0' + rem%10)
				rem /= 10
			}
		}
	}

	return string(buf[i:])
}

// divmod64 divides u by a 64-bit divisor, returning quotient and remainder.
func (u Uint128) divmod64(d uint64) (Uint128, uint64) {
	if u.Hi == 0 {
		return Uint128{Lo: u.Lo / d}, u.Lo % d
	}

	qHi := u.Hi / d
	rem := u.Hi % d
	qLo, rem := bits.Div64(rem, u.Lo, d)

	return Uint128{Hi: qHi, Lo: qLo}, rem
}

// Parse converts a decimal string to a Uint128.
//
// The input must consist entirely of ASCII digits. An empty string or any
// non-digit rune yields ErrSyntax; values above 2^128-1 yield ErrRange.
func Parse(s string) (Uint128, error) {
	if len(s) == 0 {
		return Uint128{}, fmt.Errorf("parsing %q: %w", s, ErrSyntax)
	}

	var val Uint128
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Uint128{}, fmt.Errorf("parsing %q: %w", s, ErrSyntax)
		}

		next, overflow := val.mul10add(uint64(c - '0'))
		if overflow {
			return Uint128{}, fmt.Errorf("parsing %q: %w", s, ErrRange)
		}
		val = next
	}

	return val, nil
}

// Int128 is a signed 128-bit integer in two's complement representation.
// The zero value is the number zero.
type Int128 struct {
	Hi int64
	Lo uint64
}

// MaxInt128 is the largest representable Int128 (2^127 - 1).
var MaxInt128 = Int128{Hi: 0x7FFFFFFFFFFFFFFF, Lo: ^uint64(0)}

// Uint128 reinterprets the two's complement bits of i as unsigned.
func (i Int128) Uint128() Uint128 {
	return Uint128{Hi: uint64(i.Hi), Lo: i.Lo}
}

// Sign returns -1, 0, or +1 depending on the sign of i.
func (i Int128) Sign() int {
	switch {
	case i.Hi < 0:
		return -1
	case i.Hi == 0 && i.Lo == 0:
		return 0
	default:
		return 1
	}
}

// Neg returns -i, wrapping for the minimum value.
func (i Int128) Neg() Int128 {
	u := Uint128{}.Sub(i.Uint128())

	return Int128{Hi: int64(u.Hi), Lo: u.Lo}
}

// ParseInt128 converts a decimal string, with an optional leading minus
// sign, to an Int128.
//
// Magnitudes above 2^127-1 yield ErrRange, matching the overflow contract
// of Parse. Note that the most negative value -2^127 is therefore rejected;
// producers of deltas in that range are expected to fall back to an
// uncompressed representation.
func ParseInt128(s string) (Int128, error) {
	if len(s) == 0 {
		return Int128{}, fmt.Errorf("parsing %q: %w", s, ErrSyntax)
	}

	neg := false
	digits := s
	if s[0] == '-' {
		neg = true
		digits = s[1:]
	}

	mag, err := Parse(digits)
	if err != nil {
		// Re-wrap so the reported input includes the sign.
		if errors.Is(err, ErrRange) {
			return Int128{}, fmt.Errorf("parsing %q: %w", s, ErrRange)
		}

		return Int128{}, fmt.Errorf("parsing %q: %w", s, ErrSyntax)
	}

	if mag.Cmp(MaxInt128.Uint128()) > 0 {
		return Int128{}, fmt.Errorf("parsing %q: %w", s, ErrRange)
	}

	val := Int128{Hi: int64(mag.Hi), Lo: mag.Lo}
	if neg {
		val = val.Neg()
	}

	return val, nil
}
