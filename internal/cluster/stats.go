package cluster

import "math"

const (
	peakThreshold   = 0.7
	valleyThreshold = 0.3
)

// Stats summarises a conversation's per-message affect intensities.
type Stats struct {
	Count         int     `json:"count"`
	Mean          float64 `json:"mean"`
	Variance      float64 `json:"variance"`
	PeakDensity   float64 `json:"peak_density"`
	ValleyDensity float64 `json:"valley_density"`
}

// ComputeStats returns population variance plus the share of intensities at
// or above 0.7 (peaks) and at or below 0.3 (valleys). Non-finite values are ignored.
func ComputeStats(intensities []float64) Stats {
	var s Stats
	var sum float64
	for _, v := range intensities {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s.Count++
		sum += v
		if v >= peakThreshold {
			s.PeakDensity++
		}
		if v <= valleyThreshold {
			s.ValleyDensity++
		}
	}
	if s.Count == 0 {
		return Stats{}
	}
	n := float64(s.Count)
	s.Mean = sum / n
	for _, v := range intensities {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		d := v - s.Mean
		s.Variance += d * d
	}
	s.Variance /= n
	s.PeakDensity /= n
	s.ValleyDensity /= n
	return s
}
