package zx

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
)

func TestNewPhaseNormalizes(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		wantNum  int64
		wantDen  int64
	}{
		{"zero", 0, 1, 0, 1},
		{"pi", 1, 1, 1, 1},
		{"half", 1, 2, 1, 2},
		{"negative half", -1, 2, 3, 2},
		{"two wraps to zero", 2, 1, 0, 1},
		{"nine halves", 9, 2, 1, 2},
		{"reduces", 4, 8, 1, 2},
		{"negative denominator", 1, -4, 7, 4},
		{"large negative", -7, 1, 1, 1},
		{"minus two", -2, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, d := NewPhase(tt.num, tt.den).Angle()
			if n.Int64() != tt.wantNum || d.Int64() != tt.wantDen {
				t.Errorf("NewPhase(%d, %d).Angle() = %d/%d, want %d/%d",
					tt.num, tt.den, n, d, tt.wantNum, tt.wantDen)
			}
		})
	}
}

func TestPhaseWrapsByTwo(t *testing.T) {
	for _, r := range []*big.Rat{
		big.NewRat(0, 1), big.NewRat(1, 3), big.NewRat(-5, 7), big.NewRat(13, 4), big.NewRat(-1, 1),
	} {
		p := PhaseFromRat(r)
		for _, k := range []int64{-4, -2, 2, 6} {
			shifted := new(big.Rat).Add(r, big.NewRat(k, 1))
			if got := PhaseFromRat(shifted); got != p {
				t.Errorf("PhaseFromRat(%s) = %v, want %v", shifted.RatString(), got, p)
			}
		}
		n, d := p.Angle()
		if n.Sign() < 0 || n.Cmp(new(big.Int).Lsh(d, 1)) >= 0 {
			t.Errorf("Angle() of %s = %d/%d, not in [0, 2)", r.RatString(), n, d)
		}
	}
}

func TestPhaseZero(t *testing.T) {
	if !(Phase{}).IsZero() {
		t.Error("zero value is not zero")
	}
	if !NewPhase(0, 5).IsZero() || !NewPhase(2, 1).IsZero() {
		t.Error("0 and 2 must both be zero")
	}
	if NewPhase(0, 5) != PhaseZero {
		t.Error("NewPhase(0, 5) != PhaseZero")
	}
	if PhaseOne.IsZero() {
		t.Error("PhaseOne.IsZero() = true")
	}
}

func TestNamedPhases(t *testing.T) {
	if NewPhase(1, 1) != PhaseOne {
		t.Error("PhaseOne mismatch")
	}
	if NewPhase(1, 2) != PhasePlus {
		t.Error("PhasePlus mismatch")
	}
	if NewPhase(-1, 2) != PhaseMinus {
		t.Error("PhaseMinus mismatch")
	}
}

func TestPhaseFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want Phase
	}{
		{0, PhaseZero},
		{-0.5, PhaseMinus},
		{0.5, PhasePlus},
		{1.25, NewPhase(5, 4)},
		{0.1, NewPhase(1, 10)},
		{4, PhaseZero},
	}
	for _, tt := range tests {
		if got := PhaseFromFloat(tt.in); got != tt.want {
			t.Errorf("PhaseFromFloat(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPhaseFromFloatPanicsOnNaN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	PhaseFromFloat(math.NaN())
}

func TestParsePhase(t *testing.T) {
	tests := []struct {
		in      string
		want    Phase
		wantErr bool
	}{
		{in: "0", want: PhaseZero},
		{in: "1", want: PhaseOne},
		{in: "3/2", want: PhaseMinus},
		{in: "-0.5", want: PhaseMinus},
		{in: "1.25", want: NewPhase(5, 4)},
		{in: "pi", want: PhaseOne},
		{in: "-pi", want: PhaseOne},
		{in: "pi/2", want: PhasePlus},
		{in: "-pi/2", want: PhaseMinus},
		{in: "3pi/4", want: NewPhase(3, 4)},
		{in: "3*π/4", want: NewPhase(3, 4)},
		{in: " PI / 4 ", want: NewPhase(1, 4)},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "pi/0", wantErr: true},
		{in: "1/0", wantErr: true},
		{in: "pipi", wantErr: true},
		{in: "2/pi", wantErr: true},
		{in: "1/100000000000000000000", want: PhaseFromRat(new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil)))},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePhase(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePhase(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePhase(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseZero, "0"},
		{PhaseOne, "π"},
		{PhasePlus, "π/2"},
		{PhaseMinus, "3π/2"},
		{NewPhase(5, 4), "5π/4"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPhaseArithmetic(t *testing.T) {
	if got := PhasePlus.Add(PhasePlus); got != PhaseOne {
		t.Errorf("π/2 + π/2 = %v, want π", got)
	}
	if got := PhaseMinus.Add(PhasePlus); !got.IsZero() {
		t.Errorf("3π/2 + π/2 = %v, want 0", got)
	}
	if got := PhasePlus.Neg(); got != PhaseMinus {
		t.Errorf("-(π/2) = %v, want 3π/2", got)
	}
	if got := PhaseZero.Neg(); got != PhaseZero {
		t.Errorf("-0 = %v, want 0", got)
	}
}

func TestPhaseRadians(t *testing.T) {
	if got := PhasePlus.Radians(); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("Radians() = %v, want π/2", got)
	}
	if got := PhaseZero.Radians(); got != 0 {
		t.Errorf("Radians() = %v, want 0", got)
	}
}

func TestPhaseText(t *testing.T) {
	type doc struct {
		Phase Phase `json:"phase"`
	}
	data, err := json.Marshal(doc{Phase: PhaseMinus})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"phase":"3/2"}` {
		t.Errorf("Marshal = %s", data)
	}

	var back doc
	if err := json.Unmarshal([]byte(`{"phase":"pi/4"}`), &back); err != nil {
		t.Fatal(err)
	}
	if back.Phase != NewPhase(1, 4) {
		t.Errorf("Unmarshal = %v, want π/4", back.Phase)
	}

	if err := json.Unmarshal([]byte(`{"phase":"nope"}`), &back); err == nil {
		t.Error("expected error for invalid phase")
	}
}

func TestPhaseUnboundedFractions(t *testing.T) {
	pow70 := new(big.Int).Lsh(big.NewInt(1), 70)

	p := PhaseFromRat(new(big.Rat).SetFrac(big.NewInt(1), pow70))
	n, d := p.Angle()
	if n.Cmp(big.NewInt(1)) != 0 || d.Cmp(pow70) != 0 {
		t.Errorf("Angle() = %s/%s, want 1/%s", n, d, pow70)
	}
	if p.IsZero() {
		t.Error("1/2^70 reported as zero")
	}
	if got := p.Add(p.Neg()); !got.IsZero() {
		t.Errorf("p + (-p) = %v, want 0", got)
	}

	// -1/2^70 wraps to (2^71 - 1)/2^70.
	n, d = p.Neg().Angle()
	wantNum := new(big.Int).Sub(new(big.Int).Lsh(pow70, 1), big.NewInt(1))
	if n.Cmp(wantNum) != 0 || d.Cmp(pow70) != 0 {
		t.Errorf("Neg().Angle() = %s/%s, want %s/%s", n, d, wantNum, pow70)
	}

	tiny := PhaseFromFloat(1e-30)
	if tiny.IsZero() {
		t.Error("PhaseFromFloat(1e-30) reported as zero")
	}
	if got := tiny.Rat(); got.Cmp(big.NewRat(1, 1)) >= 0 || got.Sign() <= 0 {
		t.Errorf("PhaseFromFloat(1e-30).Rat() = %s", got.RatString())
	}
	if got := tiny.Radians(); got <= 0 || got > 1e-29 {
		t.Errorf("Radians() = %v", got)
	}

	// Denominators whose product overflows 64 bits.
	a, b := NewPhase(1, 1<<62-1), NewPhase(1, 1<<62-3)
	sum := a.Add(b)
	want := new(big.Rat).Add(big.NewRat(1, 1<<62-1), big.NewRat(1, 1<<62-3))
	if sum.Rat().Cmp(want) != 0 {
		t.Errorf("Add = %s, want %s", sum.Rat().RatString(), want.RatString())
	}
	if sum != a.Add(b) {
		t.Error("equal sums compare unequal")
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var back Phase
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != p {
		t.Errorf("text round trip = %v, want %v", back, p)
	}
}
