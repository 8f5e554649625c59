package ecdsa

import (
	"context"
	"fmt"
	"math/big"

	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto"
	"git.gammaspectra.live/P2Pool/secp256k1/bitcoin/crypto/curve"
	"git.gammaspectra.live/P2Pool/secp256k1/types"
	"git.gammaspectra.live/P2Pool/secp256k1/utils"
)

// RecoveryFlag selects one of the candidate public keys of a signature.
// Bit 0 of flag - 27 is the y parity of R, bit 1 selects x = R + N.
// Flags of 31 and above mark a compressed public key
type RecoveryFlag uint8

const (
	RecoveryFlagMin        RecoveryFlag = 27
	RecoveryFlagCompressed RecoveryFlag = 31
	RecoveryFlagMax        RecoveryFlag = 35

	recoveryCandidates = 4
)

func NewRecoveryFlag(recoveryId uint8, compressed bool) RecoveryFlag {
	flag := RecoveryFlagMin + RecoveryFlag(recoveryId&(recoveryCandidates-1))
	if compressed {
		flag += RecoveryFlagCompressed - RecoveryFlagMin
	}
	return flag
}

func (f RecoveryFlag) Valid() bool {
	return f >= RecoveryFlagMin && f < RecoveryFlagMax
}

func (f RecoveryFlag) Compressed() bool {
	return f >= RecoveryFlagCompressed
}

// RecoveryId the candidate index within [0, 3]
func (f RecoveryFlag) RecoveryId() uint8 {
	if f.Compressed() {
		return uint8(f - RecoveryFlagCompressed)
	}
	return uint8(f - RecoveryFlagMin)
}

// Recover rebuilds the public key selected by flag, Q = R⁻¹·(S·Rpt - digest·G), and accepts it only if it verifies sig
func Recover(sig *Signature, digest types.Hash, flag RecoveryFlag) (*crypto.PublicKey, error) {
	if !flag.Valid() {
		return nil, curve.MakeError(curve.ErrInvalidFormat, fmt.Sprintf("recovery flag %d is not within [%d, %d)", flag, RecoveryFlagMin, RecoveryFlagMax))
	}

	params := curve.S256()
	if !sig.inRange(params) {
		return nil, curve.MakeError(curve.ErrOutOfRange, "signature values are not within [1, n-1]")
	}

	recoveryId := flag.RecoveryId()

	x := new(big.Int).Set(sig.R)
	if recoveryId&2 != 0 {
		x.Add(x, params.N)
	}
	if x.Cmp(params.P) >= 0 {
		return nil, curve.MakeError(curve.ErrOutOfRange, "R + n overflows the field prime")
	}

	y, err := params.DecompressY(x, recoveryId&1 == 1)
	if err != nil {
		return nil, err
	}
	rPoint := curve.Point{X: x, Y: y}

	rInv, err := curve.Inverse(sig.R, params.N)
	if err != nil {
		return nil, err
	}

	// u1 = -digest·R⁻¹, u2 = S·R⁻¹
	u1 := digest.Big()
	u1.Neg(u1)
	u1.Mul(u1, rInv)
	u1.Mod(u1, params.N)

	u2 := new(big.Int).Mul(sig.S, rInv)
	u2.Mod(u2, params.N)

	q, err := linearCombination(params, u1, u2, rPoint)
	if err != nil {
		return nil, err
	}

	pub := &crypto.PublicKey{Point: q, Compressed: flag.Compressed()}
	if !Verify(pub, sig, digest) {
		return nil, curve.MakeError(curve.ErrVerificationFailed, "recovered key does not verify signature")
	}

	return pub, nil
}

type recoveryAttempt struct {
	Flag RecoveryFlag
	Key  *crypto.PublicKey
	Err  error
}

// probe tries the four flags of one compression class concurrently and returns the attempts in flag order
func probe(sig *Signature, digest types.Hash, compressed bool, accept func(key *crypto.PublicKey) bool) (attempts [recoveryCandidates]recoveryAttempt) {
	_ = utils.SplitWork(context.Background(), recoveryCandidates, recoveryCandidates, func(ctx context.Context, workIndex uint64, routineIndex int) error {
		attempt := &attempts[workIndex]
		attempt.Flag = NewRecoveryFlag(uint8(workIndex), compressed)
		attempt.Key, attempt.Err = Recover(sig, digest, attempt.Flag)
		if attempt.Err == nil && accept != nil && !accept(attempt.Key) {
			attempt.Key, attempt.Err = nil, curve.MakeError(curve.ErrVerificationFailed, "recovered key does not match")
		}
		return nil
	})

	if utils.IsLogLevelDebug() {
		for _, attempt := range attempts {
			utils.Debugf("ECDSA", "recovery flag %d: %v", attempt.Flag, attempt.Err)
		}
	}
	return attempts
}

// RecoverAny returns the first flag of the requested compression class that recovers a self-verifying key.
// Several flags may verify, callers knowing the expected key should use FindRecoveryFlag
func RecoverAny(sig *Signature, digest types.Hash, compressed bool) (*crypto.PublicKey, RecoveryFlag, error) {
	for _, attempt := range probe(sig, digest, compressed, nil) {
		if attempt.Err == nil {
			return attempt.Key, attempt.Flag, nil
		}
	}
	return nil, 0, curve.MakeError(curve.ErrVerificationFailed, "no valid key recoverable")
}

// FindRecoveryFlag returns the flag that recovers exactly pub, in its compression class
func FindRecoveryFlag(sig *Signature, digest types.Hash, pub *crypto.PublicKey) (RecoveryFlag, error) {
	if pub == nil {
		return 0, curve.MakeError(curve.ErrInvalidFormat, "missing public key")
	}

	for _, attempt := range probe(sig, digest, pub.Compressed, pub.Equal) {
		if attempt.Err == nil {
			return attempt.Flag, nil
		}
	}
	return 0, curve.MakeError(curve.ErrVerificationFailed, "no recovery flag reproduces public key")
}
