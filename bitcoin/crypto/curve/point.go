package curve

import (
	"errors"
	"math/big"

	"git.gammaspectra.live/P2Pool/secp256k1/types"
	fasthex "github.com/tmthrgd/go-hex"
)

// Point an affine point on the curve. The point at infinity is not representable
type Point struct {
	X, Y *big.Int
}

// NewPoint returns a copy of (x, y) on secp256k1, rejecting non-canonical coordinates and points off the curve
func NewPoint(x, y *big.Int) (Point, error) {
	return S256().NewPoint(x, y)
}

func (c *Params) NewPoint(x, y *big.Int) (Point, error) {
	if x == nil || y == nil {
		return Point{}, MakeError(ErrInvalidFormat, "missing coordinate")
	}
	if x.Sign() < 0 || x.Cmp(c.P) >= 0 || y.Sign() < 0 || y.Cmp(c.P) >= 0 {
		return Point{}, MakeError(ErrOutOfRange, "coordinate is not a field element")
	}
	if !c.IsOnCurve(x, y) {
		return Point{}, MakeError(ErrPointNotOnCurve, "point is not on "+c.Name)
	}
	return Point{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}, nil
}

func (p Point) Valid() bool {
	return p.X != nil && p.Y != nil
}

func (p Point) Equal(other Point) bool {
	if !p.Valid() || !other.Valid() {
		return p.Valid() == other.Valid()
	}
	return p.X.Cmp(other.X) == 0 && p.Y.Cmp(other.Y) == 0
}

// String the uncompressed hex form x ‖ y
func (p Point) String() string {
	if !p.Valid() {
		return "<nil>"
	}
	x, y := FieldBytes(p.X), FieldBytes(p.Y)
	return fasthex.EncodeToString(x[:]) + fasthex.EncodeToString(y[:])
}

// FieldBytes the zero padded 32-byte big-endian form of a field element or scalar.
// nil, negative and values of 2²⁵⁶ or more have no such form and yield types.ZeroHash
func FieldBytes(v *big.Int) types.Hash {
	return types.HashFromBig(v)
}

func (c *Params) mod(v *big.Int) *big.Int {
	return v.Mod(v, c.P)
}

// Double returns 2·pt. ErrPointAtInfinity is returned when y ≡ 0
func (c *Params) Double(pt Point) (Point, error) {
	if !pt.Valid() {
		return Point{}, MakeError(ErrInvalidFormat, "missing point")
	}
	if new(big.Int).Mod(pt.Y, c.P).Sign() == 0 {
		return Point{}, MakeError(ErrPointAtInfinity, "doubling a point with y = 0")
	}

	// slope = (3x² + a) / 2y
	numerator := new(big.Int).Mul(pt.X, pt.X)
	numerator.Mul(numerator, three)
	numerator.Add(numerator, c.A)

	denominator, err := Inverse(new(big.Int).Mul(pt.Y, two), c.P)
	if err != nil {
		return Point{}, MakeError(ErrPointAtInfinity, err.Error())
	}
	slope := c.mod(numerator.Mul(numerator, denominator))

	return c.fromSlope(slope, pt.X, pt.X, pt.Y), nil
}

// Add returns pt1 + pt2. Equal points are doubled. ErrPointAtInfinity is returned when x1 - x2 is not invertible,
// which includes pt1 == -pt2
func (c *Params) Add(pt1, pt2 Point) (Point, error) {
	if !pt1.Valid() || !pt2.Valid() {
		return Point{}, MakeError(ErrInvalidFormat, "missing point")
	}
	if pt1.Equal(pt2) {
		return c.Double(pt1)
	}

	dx := c.mod(new(big.Int).Sub(pt2.X, pt1.X))
	denominator, err := Inverse(dx, c.P)
	if err != nil {
		if errors.Is(err, ErrNotInvertible) {
			return Point{}, MakeError(ErrPointAtInfinity, "adding points with equal x")
		}
		return Point{}, err
	}

	// slope = (y2 - y1) / (x2 - x1)
	slope := new(big.Int).Sub(pt2.Y, pt1.Y)
	slope = c.mod(slope.Mul(slope, denominator))

	return c.fromSlope(slope, pt1.X, pt2.X, pt1.Y), nil
}

// fromSlope x3 = s² - x1 - x2, y3 = s(x1 - x3) - y1
func (c *Params) fromSlope(slope, x1, x2, y1 *big.Int) Point {
	x3 := new(big.Int).Mul(slope, slope)
	x3.Sub(x3, x1)
	x3 = c.mod(x3.Sub(x3, x2))

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, slope)
	y3 = c.mod(y3.Sub(y3, y1))

	return Point{X: x3, Y: y3}
}

// Negate returns (x, -y mod P). A missing point stays missing
func (c *Params) Negate(pt Point) Point {
	if !pt.Valid() {
		return Point{}
	}
	return Point{
		X: new(big.Int).Set(pt.X),
		Y: c.mod(new(big.Int).Sub(c.P, pt.Y)),
	}
}

// ScalarMult returns k·pt using most significant bit first double-and-add.
// The accumulator starts at pt, so the top bit is implicit. k <= 0 returns ErrOutOfRange
func (c *Params) ScalarMult(k *big.Int, pt Point) (Point, error) {
	if k == nil || k.Sign() <= 0 {
		return Point{}, MakeError(ErrOutOfRange, "scalar must be positive")
	}
	if !pt.Valid() {
		return Point{}, MakeError(ErrInvalidFormat, "missing point")
	}

	result := Point{X: new(big.Int).Set(pt.X), Y: new(big.Int).Set(pt.Y)}
	var err error
	for i := k.BitLen() - 2; i >= 0; i-- {
		if result, err = c.Double(result); err != nil {
			return Point{}, err
		}
		if k.Bit(i) == 1 {
			if result, err = c.Add(result, pt); err != nil {
				return Point{}, err
			}
		}
	}

	if !c.IsOnCurve(result.X, result.Y) {
		return Point{}, MakeError(ErrPointNotOnCurve, "scalar multiplication left the curve")
	}

	return result, nil
}

// ScalarBaseMult returns k·G
func (c *Params) ScalarBaseMult(k *big.Int) (Point, error) {
	return c.ScalarMult(k, c.G)
}

// DecompressY returns the y coordinate for x with the requested parity
func (c *Params) DecompressY(x *big.Int, odd bool) (*big.Int, error) {
	if x == nil || x.Sign() < 0 || x.Cmp(c.P) >= 0 {
		return nil, MakeError(ErrOutOfRange, "x is not a field element")
	}

	r1, r2, err := Sqrt(c.Polynomial(x), c.P)
	if err != nil {
		return nil, err
	}

	if (r1.Bit(0) == 1) == odd {
		return r1, nil
	}
	if r2.Sign() == 0 || r2.Cmp(c.P) == 0 {
		// y = 0 has no odd counterpart
		return nil, MakeError(ErrNoSquareRoot, "no root with requested parity")
	}
	return r2, nil
}
