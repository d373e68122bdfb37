package zx

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/matzehuels/zxdraw/pkg/errors"
)

// Phase is an angle expressed as an exact rational multiple of π, normalized
// into the half-open range [0, 2).
//
// Phase is a comparable value type: two phases are == exactly when they
// represent the same angle. The zero value is the zero phase. Numerators and
// denominators are unbounded.
type Phase struct {
	frac string // reduced "n" or "n/d" with 0 < n/d < 2; empty for zero
}

// Named phases.
var (
	PhaseZero  = Phase{}            // 0
	PhaseOne   = Phase{frac: "1"}   // π
	PhasePlus  = Phase{frac: "1/2"} // π/2
	PhaseMinus = Phase{frac: "3/2"} // -π/2, stored as 3π/2
)

// NewPhase returns the phase num/den · π. It panics if den is zero, the same
// way big.NewRat does.
func NewPhase(num, den int64) Phase {
	return PhaseFromRat(big.NewRat(num, den))
}

// PhaseFromRat returns the phase r · π, wrapped modulo 2 into [0, 2).
func PhaseFromRat(r *big.Rat) Phase {
	twoDen := new(big.Int).Lsh(r.Denom(), 1)
	m := new(big.Int).Mod(r.Num(), twoDen) // Euclidean: always non-negative
	if m.Sign() == 0 {
		return Phase{}
	}
	return Phase{frac: new(big.Rat).SetFrac(m, r.Denom()).RatString()}
}

// PhaseFromFloat returns the phase f · π. The conversion goes through the
// shortest decimal form of f, so 0.1 becomes exactly 1/10.
// It panics if f is not finite.
func PhaseFromFloat(f float64) Phase {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		panic("zx: phase from non-finite float")
	}
	return PhaseFromRat(r)
}

// ParsePhase parses a phase in units of π. Accepted forms:
//
//	"0", "1", "3/2", "-0.5", "1.25"      multiples of π
//	"pi", "-pi", "pi/2", "3pi/4", "3*π/4" explicit π
func ParsePhase(s string) (Phase, error) {
	in := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if in == "" {
		return Phase{}, errors.New(errors.ErrCodeInvalidInput, "empty phase")
	}
	in = strings.ReplaceAll(in, "π", "pi")
	if !strings.Contains(in, "pi") {
		r, ok := new(big.Rat).SetString(in)
		if !ok {
			return Phase{}, errors.New(errors.ErrCodeInvalidInput, "invalid phase %q", s)
		}
		return PhaseFromRat(r), nil
	}

	numPart, denPart, hasDen := strings.Cut(in, "/")
	coeff := strings.TrimSuffix(strings.TrimSuffix(numPart, "pi"), "*")
	if strings.Contains(coeff, "pi") || !strings.HasSuffix(numPart, "pi") {
		return Phase{}, errors.New(errors.ErrCodeInvalidInput, "invalid phase %q", s)
	}

	r := big.NewRat(1, 1)
	switch coeff {
	case "", "+":
	case "-":
		r.SetInt64(-1)
	default:
		if _, ok := r.SetString(coeff); !ok {
			return Phase{}, errors.New(errors.ErrCodeInvalidInput, "invalid phase %q", s)
		}
	}
	if hasDen {
		d, ok := new(big.Rat).SetString(denPart)
		if !ok || d.Sign() == 0 {
			return Phase{}, errors.New(errors.ErrCodeInvalidInput, "invalid phase %q", s)
		}
		r.Quo(r, d)
	}
	return PhaseFromRat(r), nil
}

// IsZero reports whether the phase is 0.
func (p Phase) IsZero() bool { return p.frac == "" }

// Angle returns the phase as a fraction of π in lowest terms with a positive
// denominator. The zero phase is (0, 1). The results are fresh values owned by
// the caller.
func (p Phase) Angle() (num, den *big.Int) {
	r := p.Rat()
	return new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom())
}

// Equal reports whether p and o represent the same angle.
func (p Phase) Equal(o Phase) bool { return p == o }

// Rat returns the phase as a new big.Rat in units of π.
func (p Phase) Rat() *big.Rat {
	r := new(big.Rat)
	if p.frac != "" {
		r.SetString(p.frac)
	}
	return r
}

// Radians returns the phase in radians.
func (p Phase) Radians() float64 {
	f, _ := p.Rat().Float64()
	return f * math.Pi
}

// Add returns p + o, normalized.
func (p Phase) Add(o Phase) Phase {
	return PhaseFromRat(new(big.Rat).Add(p.Rat(), o.Rat()))
}

// Neg returns -p, normalized.
func (p Phase) Neg() Phase {
	return PhaseFromRat(new(big.Rat).Neg(p.Rat()))
}

// String formats the phase with a π symbol: "0", "π", "π/2", "3π/2".
func (p Phase) String() string {
	if p.frac == "" {
		return "0"
	}
	n, d, hasDen := strings.Cut(p.frac, "/")
	if n == "1" {
		n = ""
	}
	if !hasDen {
		return n + "π"
	}
	return n + "π/" + d
}

// MarshalText encodes the phase as a fraction of π ("0", "1", "3/2").
func (p Phase) MarshalText() ([]byte, error) {
	if p.frac == "" {
		return []byte("0"), nil
	}
	return []byte(p.frac), nil
}

// UnmarshalText decodes any form accepted by [ParsePhase].
func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
