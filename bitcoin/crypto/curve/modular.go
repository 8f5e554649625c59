package curve

import (
	"math/big"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// Inverse returns x such that a·x ≡ 1 (mod m), computed with the extended Euclidean algorithm.
// a is first normalized into [0, m). ErrNotInvertible is returned when gcd(a, m) != 1
func Inverse(a, m *big.Int) (*big.Int, error) {
	if m.Cmp(one) <= 0 {
		return nil, MakeError(ErrNotInvertible, "modulus must be greater than one")
	}

	v := new(big.Int).Mod(a, m)

	x := new(big.Int)
	gcd := new(big.Int).GCD(x, nil, v, m)
	if gcd.Cmp(one) != 0 {
		return nil, MakeError(ErrNotInvertible, "value is not coprime with modulus")
	}

	// Bézout coefficient may be negative
	return x.Mod(x, m), nil
}

// Sqrt returns both square roots r and p-r of a modulo the prime p.
// Only primes with p ≡ 3 (mod 4) are supported, other primes return ErrUnsupportedPrime.
// Quadratic non-residues return ErrNoSquareRoot
func Sqrt(a, p *big.Int) (r1, r2 *big.Int, err error) {
	if new(big.Int).Mod(p, four).Cmp(three) != 0 {
		return nil, nil, MakeError(ErrUnsupportedPrime, "prime is not congruent to 3 mod 4")
	}

	v := new(big.Int).Mod(a, p)
	if v.Sign() == 0 {
		return new(big.Int), new(big.Int), nil
	}

	// Euler's criterion: a^((p-1)/2) == 1 for quadratic residues
	exponent := new(big.Int).Sub(p, one)
	exponent.Rsh(exponent, 1)
	if new(big.Int).Exp(v, exponent, p).Cmp(one) != 0 {
		return nil, nil, MakeError(ErrNoSquareRoot, "value is not a quadratic residue")
	}

	exponent.Add(p, one)
	exponent.Rsh(exponent, 2)
	r1 = new(big.Int).Exp(v, exponent, p)
	r2 = new(big.Int).Sub(p, r1)

	return r1, r2, nil
}
