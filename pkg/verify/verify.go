// Package verify cross-checks solver results independently of the
// solver's own machinery: a brute-force exhaustive search over variable
// assignments, a witness/clause-set satisfaction check, and a siphash
// fingerprint used to fast-reject mismatches before paying for the
// exhaustive path.
//
// The two-phase shape — a cheap fingerprint filter ahead of an
// exhaustive confirmation — mirrors how the instruction-sequence
// equivalence checker this package is descended from worked: compare
// hashes first, fall back to exhaustive comparison only when hashes
// collide or confirmation is required.
package verify

import (
	"github.com/dchest/siphash"

	"github.com/oisee/satsolve/pkg/solver"
)

// fingerprintKey is an arbitrary fixed key: fingerprints are only ever
// compared against other fingerprints computed with this package, never
// persisted or compared across versions.
const fingerprintKey0, fingerprintKey1 = 0x646f6f726b6e6f62, 0x6261636b70656e6e

// ExhaustiveSAT brute-forces every assignment of variables 1..maxVar and
// returns whether any satisfies every clause, along with that
// satisfying witness (signed literals, one per variable) when found.
// Intended for small maxVar — this package makes no attempt to be fast,
// only exhaustive, to serve as ground truth.
func ExhaustiveSAT(clauses [][]int, maxVar int) (sat bool, witness []int) {
	if maxVar < 0 {
		maxVar = 0
	}
	total := uint64(1) << uint(maxVar)

	for bits := uint64(0); bits < total; bits++ {
		candidate := make([]int, maxVar)
		for v := 1; v <= maxVar; v++ {
			if bits&(1<<uint(v-1)) != 0 {
				candidate[v-1] = v
			} else {
				candidate[v-1] = -v
			}
		}
		if solver.Check(clauses, candidate) {
			return true, candidate
		}
	}
	return false, nil
}

// Check reports whether witness satisfies every clause. It delegates to
// solver.Check: the satisfaction rule (every clause shares a literal
// with the witness) has exactly one definition in this module.
func Check(clauses [][]int, witness []int) bool {
	return solver.Check(clauses, witness)
}

// Fingerprint returns a siphash-2-4 digest of bits, packed LSB-first
// into bytes (bits[i] is bit i%8 of byte i/8). Two witnesses with
// the same fingerprint are not guaranteed equal — Fingerprint is a
// fast-reject filter, never the final arbiter; literal equality (or a
// full Check) always settles a match.
func Fingerprint(bits []bool) uint64 {
	buf := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	return siphash.Hash(fingerprintKey0, fingerprintKey1, buf)
}

// WitnessFingerprint is a convenience wrapper that fingerprints a signed
// literal witness by its polarity bits, variable 1..maxVar.
func WitnessFingerprint(witness []int, maxVar int) uint64 {
	set := make(map[int]bool, len(witness))
	for _, l := range witness {
		set[l] = true
	}
	bits := make([]bool, maxVar)
	for v := 1; v <= maxVar; v++ {
		bits[v-1] = set[v]
	}
	return Fingerprint(bits)
}
