// Package noise provides stateless, seed-driven coherent noise used by the
// terrain generators. Every function is pure: identical inputs always produce
// bit-identical outputs.
package noise

import "math"

// #region lattice

// Noise2D hashes an integer lattice point and seed into [0, 1).
func Noise2D(x, y int, seed int32) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + uint32(seed)*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h) / 4294967296.0
}

// #endregion lattice

// #region smooth

// SmoothNoise bilinearly interpolates Noise2D between the four surrounding
// lattice points, eased with smoothstep t²(3−2t).
func SmoothNoise(x, y float64, seed int32) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	x0, y0 := int(fx), int(fy)
	sx := smoothstep(x - fx)
	sy := smoothstep(y - fy)

	n00 := Noise2D(x0, y0, seed)
	n10 := Noise2D(x0+1, y0, seed)
	n01 := Noise2D(x0, y0+1, seed)
	n11 := Noise2D(x0+1, y0+1, seed)

	top := lerp(n00, n10, sx)
	bottom := lerp(n01, n11, sx)
	return lerp(top, bottom, sy)
}

// #endregion smooth

// #region fractal

// FractalNoise sums octaves of SmoothNoise at doubling frequency and halving
// amplitude, normalized by the total amplitude so the result stays in [0, 1).
// Octave counts below 1 are treated as 1.
func FractalNoise(x, y float64, octaves int, seed int32) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var total, maxAmp float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		total += SmoothNoise(x*freq, y*freq, seed+int32(i)) * amp
		maxAmp += amp
		amp *= 0.5
		freq *= 2
	}
	v := total / maxAmp
	if v >= 1 {
		// rounding guard, keeps the half-open range
		v = math.Nextafter(1, 0)
	}
	return v
}

// #endregion fractal

// #region helpers

func smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// #endregion helpers
