package tikz_test

import (
	"fmt"

	"github.com/matzehuels/zxdraw/pkg/render/tikz"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

func ExamplePhaseLaTeX() {
	fmt.Println(tikz.PhaseLaTeX(zx.PhaseOne))
	fmt.Println(tikz.PhaseLaTeX(zx.NewPhase(3, 4)))
	// Output:
	// $\pi$
	// $\frac{3\pi}{4}$
}
