package galaxy

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with components in [0,1], stored as-is (no gamma).
type Color colorful.Color

// ParseColor accepts "#rrggbb" or "#rgb".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color(c), nil
}

// MustColor is ParseColor for compile-time constants.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	return colorful.Color(c).Clamped().Hex()
}

func (c Color) String() string { return c.Hex() }

// Clamped forces every component into [0,1].
func (c Color) Clamped() Color {
	return Color(colorful.Color(c).Clamped())
}

// Valid reports whether every component lies in [0,1].
func (c Color) Valid() bool {
	return colorful.Color(c).IsValid()
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Lerp blends a toward b componentwise. t=0 yields a, t=1 yields b.
func Lerp(a, b Color, t float64) Color {
	return Color(colorful.Color(a).BlendRgb(colorful.Color(b), t))
}
