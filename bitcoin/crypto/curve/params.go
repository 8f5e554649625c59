package curve

import (
	"math/big"
	"sync"

	"git.gammaspectra.live/P2Pool/secp256k1/utils"
)

// Params the parameters of a short Weierstrass curve y² = x³ + ax + b over the prime field P
type Params struct {
	P       *big.Int // the order of the underlying field
	N       *big.Int // the order of the base point
	A       *big.Int // the linear coefficient of the curve equation
	B       *big.Int // the constant of the curve equation
	G       Point    // the base point
	BitSize int      // the size of the underlying field
	Name    string   // the canonical name of the curve
}

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		utils.Panicf("Curve", "invalid constant %s", s)
	}
	return v
}

// S256 returns the secp256k1 parameters. They are built once and must not be modified
var S256 = sync.OnceValue(func() *Params {
	params := &Params{
		P: mustBig("0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		N: mustBig("0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		A: big.NewInt(0),
		B: big.NewInt(7),
		G: Point{
			X: mustBig("55066263022277343669578718895168534326250603453777594175500187360389116729240"),
			Y: mustBig("32670510020758816978083085130507043184471273380659243275938904335757337482424"),
		},
		BitSize: 256,
		Name:    "secp256k1",
	}

	if !params.IsOnCurve(params.G.X, params.G.Y) {
		utils.Panicf("Curve", "base point is not on %s", params.Name)
	}

	return params
})

// Polynomial returns x³ + ax + b mod P
func (c *Params) Polynomial(x *big.Int) *big.Int {
	x3 := new(big.Int).Mul(x, x)
	x3.Add(x3, c.A) // x² + a
	x3.Mul(x3, x)   // x³ + ax
	x3.Add(x3, c.B) // x³ + ax + b

	return x3.Mod(x3, c.P)
}

// IsOnCurve reports whether (x, y) are canonical field elements satisfying the curve equation
func (c *Params) IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}
	if x.Sign() < 0 || x.Cmp(c.P) >= 0 || y.Sign() < 0 || y.Cmp(c.P) >= 0 {
		return false
	}

	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, c.P)

	return c.Polynomial(x).Cmp(y2) == 0
}

// InScalarRange reports whether 1 <= k <= N-1
func (c *Params) InScalarRange(k *big.Int) bool {
	return k != nil && k.Sign() > 0 && k.Cmp(c.N) < 0
}
