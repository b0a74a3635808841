package ast

import "math/big"

// NumericStorage holds the bit pattern of an arbitrary-bit-width numeric
// literal. Values needing at most one machine word are stored inline;
// wider values live in a word array allocated from the tree's arena, so
// releasing the arena releases them along with the nodes.
//
// Replacing an out-of-line value installs the new word array before the
// old one is released. There is no window with no valid storage, and no
// leak on overwrite.
type NumericStorage struct {
	bitWidth int
	val      uint64
	words    []uint64
}

func numWords(bits int) int { return (bits + 63) / 64 }

func (ns *NumericStorage) hasAllocation() bool { return numWords(ns.bitWidth) > 1 }

// BitWidth returns the declared width in bits of the stored value.
func (ns *NumericStorage) BitWidth() int { return ns.bitWidth }

var word64Mask = new(big.Int).SetUint64(^uint64(0))

// setIntValue stores the magnitude bit pattern of v at the given width.
func (ns *NumericStorage) setIntValue(a *Arena, v *big.Int, width int) {
	if v.Sign() < 0 {
		fatalf("negative value in numeric storage; sign belongs to a unary node")
	}
	if v.BitLen() > width {
		fatalf("%d-bit value does not fit %d-bit numeric storage", v.BitLen(), width)
	}
	old := ns.words
	if n := numWords(width); n > 1 {
		w := a.allocWords(n)
		var t big.Int
		for i := range w {
			t.Rsh(v, uint(64*i))
			t.And(&t, word64Mask)
			w[i] = t.Uint64()
		}
		ns.words, ns.val = w, 0
	} else {
		ns.words, ns.val = nil, v.Uint64()
	}
	ns.bitWidth = width
	// Release only after the new value is fully installed.
	if old != nil {
		a.releaseWords(old)
	}
}

// intValue reconstructs the stored bit pattern.
func (ns *NumericStorage) intValue() *big.Int {
	if !ns.hasAllocation() {
		return new(big.Int).SetUint64(ns.val)
	}
	v := new(big.Int)
	var t big.Int
	for i := len(ns.words) - 1; i >= 0; i-- {
		v.Lsh(v, 64)
		v.Or(v, t.SetUint64(ns.words[i]))
	}
	return v
}

// IntStorage stores an arbitrary-precision non-negative integer.
type IntStorage struct {
	NumericStorage
}

// SetValue stores v. Values up to 64 bits are stored inline with no
// allocation; wider values take one arena word array.
func (s *IntStorage) SetValue(a *Arena, v *big.Int) {
	width := 64
	if v.BitLen() > width {
		width = v.BitLen()
	}
	s.setIntValue(a, v, width)
}

// Value reconstructs the stored integer.
func (s *IntStorage) Value() *big.Int { return s.intValue() }

// Uint64 returns the value when it fits one word; wider values are fatal.
func (s *IntStorage) Uint64() uint64 {
	if s.hasAllocation() {
		fatalf("%d-bit integer read through Uint64", s.bitWidth)
	}
	return s.val
}

// FloatStorage stores a float as its IEEE interchange bit pattern. The
// declared bit width selects the format and must be one of 16, 32, 64
// or 128.
type FloatStorage struct {
	NumericStorage
}

// SetValue stores v rounded to the IEEE format of the given bit width.
func (s *FloatStorage) SetValue(a *Arena, v *big.Float, bits int) {
	s.setIntValue(a, floatToBits(v, bits), bits)
}

// Value reinterprets the stored bit pattern under the IEEE format
// matching the declared bit width.
func (s *FloatStorage) Value() *big.Float {
	return floatFromBits(s.intValue(), s.bitWidth)
}

// ieeeFormat describes an IEEE binary interchange format.
type ieeeFormat struct {
	exp  int // exponent field bits
	mant int // mantissa field bits, excluding the implicit leading bit
}

func ieeeFormatFor(bits int) ieeeFormat {
	switch bits {
	case 16:
		return ieeeFormat{exp: 5, mant: 10}
	case 32:
		return ieeeFormat{exp: 8, mant: 23}
	case 64:
		return ieeeFormat{exp: 11, mant: 52}
	case 128:
		return ieeeFormat{exp: 15, mant: 112}
	}
	fatalf("no IEEE format for %d-bit float", bits)
	return ieeeFormat{}
}

func (f ieeeFormat) bias() int   { return 1<<(f.exp-1) - 1 }
func (f ieeeFormat) maxExp() int { return 1<<f.exp - 1 }

func bitMask(n int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return m.Sub(m, big.NewInt(1))
}

// floatFromBits decodes an IEEE bit pattern of the given width.
func floatFromBits(pat *big.Int, bits int) *big.Float {
	f := ieeeFormatFor(bits)
	prec := uint(f.mant + 1)
	neg := pat.Bit(bits-1) == 1

	expField := new(big.Int).Rsh(pat, uint(f.mant))
	expField.And(expField, bitMask(f.exp))
	e := int(expField.Int64())
	mantField := new(big.Int).And(pat, bitMask(f.mant))

	var v *big.Float
	switch {
	case e == f.maxExp():
		if mantField.Sign() != 0 {
			fatalf("NaN bit pattern in %d-bit float storage", bits)
		}
		v = new(big.Float).SetPrec(prec).SetInf(neg)
		return v
	case e == 0:
		if mantField.Sign() == 0 {
			v = new(big.Float).SetPrec(prec)
		} else {
			// Subnormal: no implicit leading bit.
			m := new(big.Float).SetPrec(prec).SetInt(mantField)
			v = new(big.Float).SetMantExp(m, 1-f.bias()-f.mant)
		}
	default:
		m := new(big.Int).SetBit(mantField, f.mant, 1)
		mf := new(big.Float).SetPrec(prec).SetInt(m)
		v = new(big.Float).SetMantExp(mf, e-f.bias()-f.mant)
	}
	if neg {
		v.Neg(v)
	}
	return v
}

// floatToBits encodes v into the IEEE format of the given width, rounding
// to nearest-even. Values beyond the format's range become infinities;
// values below subnormal precision truncate toward zero.
func floatToBits(v *big.Float, bits int) *big.Int {
	f := ieeeFormatFor(bits)
	signBit := new(big.Int)
	if v.Signbit() {
		signBit.SetBit(signBit, bits-1, 1)
	}
	if v.Sign() == 0 {
		return signBit
	}
	infPattern := func() *big.Int {
		p := new(big.Int).Lsh(big.NewInt(int64(f.maxExp())), uint(f.mant))
		return p.Or(p, signBit)
	}
	if v.IsInf() {
		return infPattern()
	}

	r := new(big.Float).SetPrec(uint(f.mant + 1)).Set(v)
	r.Abs(r)
	mant := new(big.Float)
	exp := r.MantExp(mant) // r = mant × 2**exp, mant in [0.5, 1)

	// mant × 2**(f.mant+1) is an integer with the leading bit set.
	mi, _ := new(big.Float).SetMantExp(mant, f.mant+1).Int(nil)

	e := exp - 1 + f.bias()
	switch {
	case e >= f.maxExp():
		return infPattern()
	case e <= 0:
		shift := 1 - e
		if shift > f.mant+1 {
			return signBit // underflow to zero
		}
		mi.Rsh(mi, uint(shift))
		e = 0
	default:
		mi.SetBit(mi, f.mant, 0) // drop the implicit leading bit
	}
	pat := new(big.Int).Lsh(big.NewInt(int64(e)), uint(f.mant))
	pat.Or(pat, mi)
	return pat.Or(pat, signBit)
}
