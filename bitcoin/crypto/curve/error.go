package curve

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidFormat is returned for malformed hex, DER, Base58, public key
	// or address input, wrong lengths and unknown version markers.
	ErrInvalidFormat = ErrorKind("ErrInvalidFormat")

	// ErrOutOfRange is returned when a scalar is not within [1, n-1], or a
	// recovered x coordinate exceeds the field prime.
	ErrOutOfRange = ErrorKind("ErrOutOfRange")

	// ErrPointAtInfinity is returned when an operation would produce the
	// point at infinity, which cannot be represented.
	ErrPointAtInfinity = ErrorKind("ErrPointAtInfinity")

	// ErrNotInvertible is returned when a modular inverse is requested for a
	// value that is not coprime with the modulus.
	ErrNotInvertible = ErrorKind("ErrNotInvertible")

	// ErrNoSquareRoot is returned when an x coordinate has no matching y.
	ErrNoSquareRoot = ErrorKind("ErrNoSquareRoot")

	// ErrVerificationFailed is returned when a recovered or supplied key does
	// not reproduce the signature R value.
	ErrVerificationFailed = ErrorKind("ErrVerificationFailed")

	// ErrPointNotOnCurve is returned when coordinates do not satisfy the
	// curve equation.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrUnsupportedPrime is returned when a square root is requested modulo
	// a prime that is not congruent to 3 mod 4.
	ErrUnsupportedPrime = ErrorKind("ErrUnsupportedPrime")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to curve arithmetic, signatures or their
// encodings. It has full support for errors.Is and errors.As, so the caller
// can ascertain the specific reason for the error by checking the underlying
// error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// MakeError creates an Error given a set of arguments.
func MakeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
