// Package word implements fixed-width multi-bit values layered over a bit
// arena: arithmetic, bitwise ops, shifts/rotations, comparisons, slicing,
// and fold reductions, all built from the arena's AND/OR/NOT combinators.
//
// A Word owns exactly one arena reference per bit it holds (LSB at index
// 0), acquired on construction, clone, and slice, and released on Drop.
// Every combinator in this package upholds that discipline: any
// intermediate id it allocates but does not place into the result is
// decremented before the combinator returns.
package word

import "github.com/oisee/satsolve/pkg/arena"

// Word is an ordered, fixed-width sequence of arena bit ids, LSB first.
type Word struct {
	a    *arena.Arena
	bits []arena.BitId
}

// Width returns the number of bits in w.
func (w *Word) Width() int { return len(w.bits) }

// Arena returns the arena w's bits belong to.
func (w *Word) Arena() *arena.Arena { return w.a }

// Var constructs a width-wide word of fresh, unconstrained variables.
func Var(a *arena.Arena, width int) *Word {
	bits := make([]arena.BitId, width)
	for i := range bits {
		bits[i] = a.Var()
	}
	return &Word{a: a, bits: bits}
}

// FromUint64 constructs a width-wide word whose bit i is bit i of n.
func FromUint64(a *arena.Arena, n uint64, width int) *Word {
	bits := make([]arena.BitId, width)
	for i := range bits {
		bits[i] = a.Const((n>>uint(i))&1 != 0)
	}
	return &Word{a: a, bits: bits}
}

// TryToUint64 returns the concrete value of w if every bit is a constant
// and width <= 64; otherwise it returns ok=false.
func TryToUint64(w *Word) (value uint64, ok bool) {
	if w.Width() > 64 {
		return 0, false
	}
	for i, id := range w.bits {
		if w.a.IsTrue(id) {
			value |= 1 << uint(i)
		} else if !w.a.IsFalse(id) {
			return 0, false
		}
	}
	return value, true
}

// Clone returns a new Word aliasing the same arena and bits, with each
// bit's refcount incremented.
func (w *Word) Clone() *Word {
	bits := make([]arena.BitId, len(w.bits))
	copy(bits, w.bits)
	for _, id := range bits {
		w.a.Incr(id)
	}
	return &Word{a: w.a, bits: bits}
}

// Drop releases w's reference on every bit it holds. After Drop, w must
// not be used again.
func (w *Word) Drop() {
	for _, id := range w.bits {
		w.a.Decr(id)
	}
	w.bits = nil
}

func sameArena(a, b *Word) {
	if a.a != b.a {
		panic("word: operands belong to different arenas")
	}
}

func sameWidth(a, b *Word) {
	if a.Width() != b.Width() {
		panic("word: width mismatch")
	}
}

// And returns the bitwise AND of a and b.
func And(a, b *Word) *Word {
	sameArena(a, b)
	sameWidth(a, b)
	ar := a.a
	bits := make([]arena.BitId, a.Width())
	for i := range bits {
		bits[i] = ar.And(a.bits[i], b.bits[i])
	}
	return &Word{a: ar, bits: bits}
}

// Or returns the bitwise OR of a and b.
func Or(a, b *Word) *Word {
	sameArena(a, b)
	sameWidth(a, b)
	ar := a.a
	bits := make([]arena.BitId, a.Width())
	for i := range bits {
		bits[i] = ar.Or(a.bits[i], b.bits[i])
	}
	return &Word{a: ar, bits: bits}
}

// Not returns the bitwise complement of a.
func Not(a *Word) *Word {
	ar := a.a
	bits := make([]arena.BitId, a.Width())
	for i := range bits {
		bits[i] = ar.Not(a.bits[i])
	}
	return &Word{a: ar, bits: bits}
}

// xorBit returns a XOR b as a single bit, decrementing every temporary it
// allocates along the way.
func xorBit(ar *arena.Arena, a, b arena.BitId) arena.BitId {
	t1 := ar.Not(a)
	t2 := ar.Not(b)
	t3 := ar.And(t1, b)
	t4 := ar.And(a, t2)
	id := ar.Or(t3, t4)

	ar.Decr(t1)
	ar.Decr(t2)
	ar.Decr(t3)
	ar.Decr(t4)

	return id
}

// Xor returns the bitwise XOR of a and b.
func Xor(a, b *Word) *Word {
	sameArena(a, b)
	sameWidth(a, b)
	ar := a.a
	bits := make([]arena.BitId, a.Width())
	for i := range bits {
		bits[i] = xorBit(ar, a.bits[i], b.bits[i])
	}
	return &Word{a: ar, bits: bits}
}

// fullAdder returns (sum, carry-out) for inputs a, b, carry-in c,
// decrementing every temporary it allocates.
func fullAdder(ar *arena.Arena, a, b, c arena.BitId) (s, cOut arena.BitId) {
	t1 := xorBit(ar, a, b)
	s = xorBit(ar, t1, c)

	t2 := ar.And(a, b)
	t3 := ar.And(c, t1)
	cOut = ar.Or(t2, t3)

	ar.Decr(t1)
	ar.Decr(t2)
	ar.Decr(t3)

	return s, cOut
}

// AddC returns a+b along with the carry-out as a width-1 word.
func AddC(a, b *Word) (sum, carry *Word) {
	sameArena(a, b)
	sameWidth(a, b)
	ar := a.a

	bits := make([]arena.BitId, a.Width())
	c := ar.Const(false)

	for i := range bits {
		s, cOut := fullAdder(ar, a.bits[i], b.bits[i], c)
		ar.Decr(c)
		c = cOut
		bits[i] = s
	}

	return &Word{a: ar, bits: bits}, &Word{a: ar, bits: []arena.BitId{c}}
}

// Add returns a+b, truncated to the operand width (the carry-out is
// discarded).
func Add(a, b *Word) *Word {
	sum, carry := AddC(a, b)
	carry.Drop()
	return sum
}

// Neg returns the two's-complement negation of a: ^a + 1.
func Neg(a *Word) *Word {
	notA := Not(a)
	one := FromUint64(a.a, 1, a.Width())
	r := Add(notA, one)
	notA.Drop()
	one.Drop()
	return r
}

// Sub returns a-b, computed as a + (-b).
func Sub(a, b *Word) *Word {
	negB := Neg(b)
	r := Add(a, negB)
	negB.Drop()
	return r
}

// Shl returns a shifted left by k bits, logical, zero-filled, width
// preserved (bits shifted past the top are discarded).
func Shl(a *Word, k int) *Word {
	w := a.Width()
	if k < 0 || k > w {
		panic("word: shift amount out of range")
	}
	ar := a.a
	bits := make([]arena.BitId, 0, w)
	for i := 0; i < k; i++ {
		bits = append(bits, ar.Const(false))
	}
	for _, id := range a.bits[:w-k] {
		ar.Incr(id)
		bits = append(bits, id)
	}
	return &Word{a: ar, bits: bits}
}

// Shr returns a shifted right by k bits, logical, zero-filled.
func Shr(a *Word, k int) *Word {
	w := a.Width()
	if k < 0 || k > w {
		panic("word: shift amount out of range")
	}
	ar := a.a
	bits := make([]arena.BitId, 0, w)
	for _, id := range a.bits[k:] {
		ar.Incr(id)
		bits = append(bits, id)
	}
	for i := 0; i < k; i++ {
		bits = append(bits, ar.Const(false))
	}
	return &Word{a: ar, bits: bits}
}

// Rotl returns a rotated left by k bits (k taken modulo width).
func Rotl(a *Word, k int) *Word {
	w := a.Width()
	if w == 0 {
		return a.Clone()
	}
	k = ((k % w) + w) % w
	if k == 0 {
		return a.Clone()
	}

	x := Shl(a, k)
	y := Shr(a, w-k)
	r := Or(x, y)
	x.Drop()
	y.Drop()
	return r
}

// Rotr returns a rotated right by k bits (k taken modulo width).
func Rotr(a *Word, k int) *Word {
	w := a.Width()
	if w == 0 {
		return a.Clone()
	}
	k = ((k % w) + w) % w
	return Rotl(a, w-k)
}

// Slice returns bits [lo, hi] of a, inclusive, as a new word of width
// hi-lo+1.
func Slice(a *Word, lo, hi int) *Word {
	if lo > hi || lo < 0 || hi >= a.Width() {
		panic("word: slice out of range")
	}
	ids := make([]arena.BitId, hi-lo+1)
	copy(ids, a.bits[lo:hi+1])
	for _, id := range ids {
		a.a.Incr(id)
	}
	return &Word{a: a.a, bits: ids}
}

// Concat returns b's bits (low) followed by a's bits (high): Concat(a, b)
// places b's bits first.
func Concat(a, b *Word) *Word {
	sameArena(a, b)
	ar := a.a
	bits := make([]arena.BitId, 0, a.Width()+b.Width())
	bits = append(bits, b.bits...)
	bits = append(bits, a.bits...)
	for _, id := range bits {
		ar.Incr(id)
	}
	return &Word{a: ar, bits: bits}
}

// Cond selects yes when test (a width-1 word) is true, no otherwise,
// per bit.
func Cond(test, yes, no *Word) *Word {
	if test.Width() != 1 {
		panic("word: cond test must be width 1")
	}
	sameArena(yes, no)
	sameWidth(yes, no)
	ar := yes.a

	testBit := test.bits[0]
	notTest := ar.Not(testBit)

	bits := make([]arena.BitId, yes.Width())
	for i := range bits {
		t2 := ar.And(testBit, yes.bits[i])
		t3 := ar.And(notTest, no.bits[i])
		bits[i] = ar.Or(t2, t3)
		ar.Decr(t2)
		ar.Decr(t3)
	}
	ar.Decr(notTest)

	return &Word{a: ar, bits: bits}
}

// Mul returns a*b, shift-and-add, truncated to the operand width.
func Mul(a, b *Word) *Word {
	sameArena(a, b)
	sameWidth(a, b)
	ar := a.a
	w := a.Width()

	zero := FromUint64(ar, 0, w)
	sum := zero.Clone()

	for i := 0; i < w; i++ {
		bit := Slice(b, i, i)
		v := Cond(bit, a, zero)
		shifted := Shl(v, i)
		next := Add(sum, shifted)

		bit.Drop()
		v.Drop()
		shifted.Drop()
		sum.Drop()
		sum = next
	}
	zero.Drop()

	return sum
}

func fold(a *Word, combine func(ar *arena.Arena, x, y arena.BitId) arena.BitId, identity bool) *Word {
	ar := a.a
	value := ar.Const(identity)
	for _, id := range a.bits {
		next := combine(ar, value, id)
		ar.Decr(value)
		value = next
	}
	return &Word{a: ar, bits: []arena.BitId{value}}
}

// FoldAnd reduces a's bits with AND, width-1 result.
func FoldAnd(a *Word) *Word {
	return fold(a, func(ar *arena.Arena, x, y arena.BitId) arena.BitId { return ar.And(x, y) }, true)
}

// FoldOr reduces a's bits with OR, width-1 result.
func FoldOr(a *Word) *Word {
	return fold(a, func(ar *arena.Arena, x, y arena.BitId) arena.BitId { return ar.Or(x, y) }, false)
}

// FoldXor reduces a's bits with XOR, width-1 result.
func FoldXor(a *Word) *Word {
	return fold(a, xorBit, false)
}

// LessThan returns a width-1 word that is true iff a < b, unsigned,
// scanned LSB to MSB.
func LessThan(a, b *Word) *Word {
	sameArena(a, b)
	sameWidth(a, b)
	ar := a.a

	value := ar.Const(false)
	for i := 0; i < a.Width(); i++ {
		t2 := ar.Not(a.bits[i])
		t3 := ar.And(t2, b.bits[i])

		t4 := ar.Not(b.bits[i])
		t5 := ar.And(a.bits[i], t4)
		t6 := ar.Not(t5)

		t7 := ar.And(t6, value)
		t8 := value
		value = ar.Or(t3, t7)

		ar.Decr(t2)
		ar.Decr(t3)
		ar.Decr(t4)
		ar.Decr(t5)
		ar.Decr(t6)
		ar.Decr(t7)
		ar.Decr(t8)
	}

	return &Word{a: ar, bits: []arena.BitId{value}}
}

// EqualTo returns a width-1 word that is true iff a == b.
func EqualTo(a, b *Word) *Word {
	x := Xor(a, b)
	f := FoldOr(x)
	x.Drop()
	r := Not(f)
	f.Drop()
	return r
}

// GreaterThan returns a width-1 word that is true iff a > b, unsigned.
func GreaterThan(a, b *Word) *Word {
	lt := LessThan(a, b)
	eq := EqualTo(a, b)
	le := Or(lt, eq)
	lt.Drop()
	eq.Drop()
	r := Not(le)
	le.Drop()
	return r
}
