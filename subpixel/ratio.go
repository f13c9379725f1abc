package subpixel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ratio is a multiplier stored in thousandths: One (1000) is 1.0, 500 is 0.5.
// Configs write ratios as decimals ("0.4", "2", "1.125") and they are parsed
// digit by digit so no float rounding can creep into the simulation.
type Ratio int32

const (
	ratioDen      = 1000
	ratioDecimals = 3
)

// One is the identity ratio.
const One Ratio = ratioDen

// Mul composes two ratios, flooring the product.
func (r Ratio) Mul(o Ratio) Ratio {
	return Ratio(FloorDiv(int64(r)*int64(o), ratioDen))
}

// Apply scales u by r, flooring toward negative infinity.
func (r Ratio) Apply(u Units) Units {
	return Units(FloorDiv(int64(u)*int64(r), ratioDen))
}

// IsOne reports whether r is the identity.
func (r Ratio) IsOne() bool { return r == One }

func (r Ratio) String() string {
	v := int64(r)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := v / ratioDen
	frac := v % ratioDen
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	s := strings.TrimRight(fmt.Sprintf("%03d", frac), "0")
	return fmt.Sprintf("%s%d.%s", sign, whole, s)
}

// ParseRatio parses a decimal string with at most three fractional digits.
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("subpixel: empty ratio")
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("subpixel: ratio %q has no digits", s)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > ratioDecimals {
		return 0, fmt.Errorf("subpixel: ratio %q has more than %d decimals", s, ratioDecimals)
	}
	if !digits(whole) || !digits(frac) {
		return 0, fmt.Errorf("subpixel: ratio %q is not a decimal", s)
	}
	w, err := strconv.ParseInt(whole, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("subpixel: ratio %q: %w", s, err)
	}
	var f int64
	if frac != "" {
		f, err = strconv.ParseInt(frac+strings.Repeat("0", ratioDecimals-len(frac)), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("subpixel: ratio %q: %w", s, err)
		}
	}
	v := w*ratioDen + f
	if neg {
		v = -v
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("subpixel: ratio %q out of range", s)
	}
	return Ratio(v), nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// UnmarshalYAML reads the scalar text verbatim rather than through float64.
func (r *Ratio) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("ratio must be a scalar")
	}
	parsed, err := ParseRatio(value.Value)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Ratio) MarshalYAML() (any, error) {
	return r.String(), nil
}
