// Package analysis extracts summary quantities from recorded runs:
// dominant oscillation frequency via FFT and orbital radius statistics.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform by radix-2 decimation.
// The input length must be a power of two; callers truncate with
// PowerOfTwoFloor first.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns |FFT| for the positive-frequency half.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// PowerOfTwoFloor returns the largest power of two not exceeding n.
func PowerOfTwoFloor(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

// DominantPeriod estimates the strongest oscillation period in a uniformly
// sampled series, in seconds, given the sample interval. The mean is
// removed so the DC bin never wins. Returns 0 when the series is too short
// or has no oscillatory content.
func DominantPeriod(series []float64, sampleDt float64) float64 {
	n := PowerOfTwoFloor(len(series))
	if n < 4 || sampleDt <= 0 {
		return 0
	}

	mean := 0.0
	for _, v := range series[:n] {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range series[:n] {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best, bestPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPower {
			best, bestPower = k, ps[k]
		}
	}
	if best == 0 || bestPower == 0 {
		return 0
	}

	freq := float64(best) / (float64(n) * sampleDt)
	return 1 / freq
}

// RadiusStats summarizes a body's distance from a center over a run.
type RadiusStats struct {
	Min, Max, Mean float64
}

// Radii computes per-sample distance from (cx, cy).
func Radii(xs, ys []float64, cx, cy float64) []float64 {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Hypot(xs[i]-cx, ys[i]-cy)
	}
	return out
}

// Stats reduces a series to min/max/mean. Returns zero stats for an empty
// series.
func Stats(series []float64) RadiusStats {
	if len(series) == 0 {
		return RadiusStats{}
	}
	s := RadiusStats{Min: series[0], Max: series[0]}
	sum := 0.0
	for _, v := range series {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(series))
	return s
}
