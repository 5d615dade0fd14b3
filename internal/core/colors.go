package core

import (
	"fmt"
	"math/rand"
)

// ColorFunc produces an RGB hex color for categories and goals created
// without an explicit color. Injectable so tests can pin the palette.
type ColorFunc func() string

// RandomColor returns a ColorFunc backed by the given source.
func RandomColor(rnd *rand.Rand) ColorFunc {
	return func() string {
		return fmt.Sprintf("#%06x", rnd.Intn(0x1000000))
	}
}
