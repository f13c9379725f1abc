// Package subpixel holds the integer unit convention shared by every physics
// quantity: positions are subpixels, velocities are subpixels per tick and
// accelerations are subpixels per tick per tick. Nothing in here touches a
// float.
package subpixel

// Scale is the number of subpixel units in one rendered pixel.
const Scale = 256

// Units is a signed subpixel quantity.
type Units int32

// FromPixels converts whole pixels to subpixels.
func FromPixels(px int) Units {
	return Units(px * Scale)
}

// Pixels converts subpixels to whole pixels, flooring toward negative infinity
// so that -1 subpixel lands on pixel -1 rather than 0.
func (u Units) Pixels() int {
	return int(FloorDiv(int64(u), Scale))
}

// Frac returns the subpixel remainder in [0, Scale).
func (u Units) Frac() Units {
	return Units(int64(u) - FloorDiv(int64(u), Scale)*Scale)
}

// FloorDiv divides a by b and floors the quotient toward negative infinity.
// Go's native division truncates toward zero which makes -3/2 == -1 while
// 3/2 == 1; every division in the simulation goes through here instead.
// b must be non-zero.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// MulDiv computes floor(u * num / den) with a 64-bit intermediate.
func MulDiv(u Units, num, den int64) Units {
	if den == 0 {
		return 0
	}
	return Units(FloorDiv(int64(u)*num, den))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi Units) Units {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs(v Units) Units {
	if v < 0 {
		return -v
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v Units) Units {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Approach moves v toward target by at most step and never past it.
// A non-positive step leaves v unchanged.
func Approach(v, target, step Units) Units {
	if step <= 0 {
		return v
	}
	if v < target {
		v += step
		if v > target {
			v = target
		}
		return v
	}
	if v > target {
		v -= step
		if v < target {
			v = target
		}
	}
	return v
}
