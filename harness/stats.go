package harness

import "time"

// SampleStats accumulates per-trial timings and proof sizes across the
// sampling loop and reduces them to arithmetic means.
type SampleStats struct {
	Samples         int
	TotalProving    time.Duration
	TotalVerifying  time.Duration
	TotalProofBytes int64
}

// AddProving records one proving trial and the size of the proof it
// produced.
func (s *SampleStats) AddProving(d time.Duration, proofBytes int) {
	s.TotalProving += d
	s.TotalProofBytes += int64(proofBytes)
}

// AddVerifying records one verifying trial.
func (s *SampleStats) AddVerifying(d time.Duration) {
	s.TotalVerifying += d
}

// MeanProvingSeconds returns the mean proving time in fractional seconds.
func (s *SampleStats) MeanProvingSeconds() float64 {
	return meanSeconds(s.TotalProving, s.Samples)
}

// MeanVerifyingSeconds returns the mean verifying time in fractional
// seconds.
func (s *SampleStats) MeanVerifyingSeconds() float64 {
	return meanSeconds(s.TotalVerifying, s.Samples)
}

// AvgProofSize returns the mean serialized proof length in bytes.
func (s *SampleStats) AvgProofSize() int64 {
	if s.Samples == 0 {
		return 0
	}
	return s.TotalProofBytes / int64(s.Samples)
}

// meanSeconds divides the accumulated duration by the sample count and
// renders it as whole seconds plus sub-second nanoseconds over 1e9.
func meanSeconds(total time.Duration, samples int) float64 {
	if samples == 0 {
		return 0
	}
	mean := total / time.Duration(samples)
	return float64(mean/time.Second) + float64(mean%time.Second)/1e9
}
