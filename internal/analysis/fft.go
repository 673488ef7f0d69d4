package analysis

import (
	"errors"
	"math/bits"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrTooShort = errors.New("analysis: need at least two samples")

// Spectrum removes the mean, zero-pads samples to a power of two and
// returns the one-sided amplitude at each frequency bin in Hz.
func Spectrum(samples []float64, dt float64) (freqs, amps []float64, err error) {
	if len(samples) < 2 || dt <= 0 {
		return nil, nil, ErrTooShort
	}
	var mean float64
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	n := 1 << bits.Len(uint(len(samples)-1))
	padded := make([]float64, n)
	for i, v := range samples {
		padded[i] = v - mean
	}

	spec := fft.FFTReal(padded)
	freqs = make([]float64, n/2)
	amps = make([]float64, n/2)
	for k := range amps {
		freqs[k] = float64(k) / (float64(n) * dt)
		amps[k] = 2 * cmplx.Abs(spec[k]) / float64(len(samples))
	}
	return freqs, amps, nil
}

// Dominant returns the strongest non-DC frequency and its amplitude.
func Dominant(samples []float64, dt float64) (hz, amp float64) {
	freqs, amps, err := Spectrum(samples, dt)
	if err != nil {
		return 0, 0
	}
	for k := 1; k < len(amps); k++ {
		if amps[k] > amp {
			hz, amp = freqs[k], amps[k]
		}
	}
	return hz, amp
}
