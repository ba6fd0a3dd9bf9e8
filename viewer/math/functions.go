package math

import (
	m "math"
)

const (
	// Pi is an approximate representation of PI.
	Pi float32 = 3.14159265358979323846
	// TwoPi is an approximate representation of PI multiplied by 2.
	TwoPi float32 = 2.0 * Pi
	// HalfPi is an approximate representation of PI divided by 2.
	HalfPi float32 = 0.5 * Pi
	// QuarterPi is an approximate representation of PI divided by 4.
	QuarterPi float32 = 0.25 * Pi
	// Deg2Rad is a multiplier used to convert degrees to radians.
	Deg2Rad float32 = Pi / 180.0
	// Rad2Deg is a multiplier used to convert radians to degrees.
	Rad2Deg float32 = 180.0 / Pi
	// Infinity is a huge number that should be larger than any valid
	// number used.
	Infinity float32 = 1e30
	// FloatEpsilon is the smallest positive number where
	// 1.0 + FloatEpsilon != 1.0.
	FloatEpsilon float32 = 1.192092896e-07
)

func Sin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func Tan(x float32) float32 {
	return float32(m.Tan(float64(x)))
}

func Sqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func Abs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func Clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Mod returns the floating point remainder of x/y, with the sign of x.
func Mod(x, y float32) float32 {
	return float32(m.Mod(float64(x), float64(y)))
}

// FloatEqual compares two floats for equality within FloatEpsilon.
func FloatEqual(a, b float32) bool {
	return Abs(a-b) <= FloatEpsilon
}
