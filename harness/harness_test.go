package harness

import (
	"bytes"
	"math"
	"testing"
	"time"

	"drg-porep/fr32"
)

func TestBufferGenerationDeterministic(t *testing.T) {
	const nodes = 64

	gen := func() []byte {
		prng, err := NewBenchPRNG()
		if err != nil {
			t.Fatalf("NewBenchPRNG: %v", err)
		}
		buf, err := FileBackedBufferFromPRNG(prng, nodes)
		if err != nil {
			t.Fatalf("FileBackedBufferFromPRNG: %v", err)
		}
		defer buf.Close()
		return append([]byte(nil), buf.Bytes()...)
	}

	a := gen()
	b := gen()
	if len(a) != nodes*fr32.ElementSize {
		t.Fatalf("buffer is %d bytes, want %d", len(a), nodes*fr32.ElementSize)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("two runs produced different buffers")
	}
}

func TestBufferElementsCanonical(t *testing.T) {
	prng, err := NewBenchPRNG()
	if err != nil {
		t.Fatalf("NewBenchPRNG: %v", err)
	}
	buf, err := FileBackedBufferFromPRNG(prng, 16)
	if err != nil {
		t.Fatalf("FileBackedBufferFromPRNG: %v", err)
	}
	defer buf.Close()
	data := buf.Bytes()
	for i := 0; i < 16; i++ {
		if _, err := fr32.BytesIntoFr(data[i*fr32.ElementSize : (i+1)*fr32.ElementSize]); err != nil {
			t.Fatalf("element %d not canonical: %v", i, err)
		}
	}
}

func TestBufferMutableInPlace(t *testing.T) {
	buf, err := FileBackedBufferFrom([]byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("FileBackedBufferFrom: %v", err)
	}
	defer buf.Close()
	buf.Bytes()[2] = 9
	if buf.Bytes()[2] != 9 {
		t.Fatalf("mapped buffer did not keep the write")
	}
}

func TestSampleStatsMeans(t *testing.T) {
	s := SampleStats{Samples: 4}
	durations := []time.Duration{
		1 * time.Second,
		1500 * time.Millisecond,
		500 * time.Millisecond,
		1 * time.Second,
	}
	sizes := []int{100, 120, 80, 100}
	for i, d := range durations {
		s.AddProving(d, sizes[i])
		s.AddVerifying(d / 2)
	}

	if got := s.MeanProvingSeconds(); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("mean proving = %v, want 1.0", got)
	}
	if got := s.MeanVerifyingSeconds(); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("mean verifying = %v, want 0.5", got)
	}
	if got := s.AvgProofSize(); got != 100 {
		t.Fatalf("avg proof size = %d, want 100", got)
	}
}

func TestSampleStatsSubSecond(t *testing.T) {
	s := SampleStats{Samples: 2}
	s.AddProving(3*time.Millisecond, 10)
	s.AddProving(5*time.Millisecond, 10)
	if got := s.MeanProvingSeconds(); math.Abs(got-0.004) > 1e-12 {
		t.Fatalf("mean proving = %v, want 0.004", got)
	}
}

func TestRunPoRepExampleScenario(t *testing.T) {
	// 1 KB -> 32 nodes, m=6, one challenge, default hasher.
	report, err := RunPoRep(&PoRepConfig{
		DataSize:   1024,
		M:          6,
		Challenges: 1,
		Hasher:     "pedersen",
	})
	if err != nil {
		t.Fatalf("RunPoRep: %v", err)
	}
	if report.Nodes != 32 {
		t.Fatalf("nodes = %d, want 32", report.Nodes)
	}
	if report.AvgProofSize <= 0 {
		t.Fatalf("average proof size not positive")
	}
	if report.AvgProvingSeconds < 0 || report.AvgVerifyingSeconds < 0 {
		t.Fatalf("negative mean timing")
	}
}

func TestRunPoRepUnknownHasher(t *testing.T) {
	_, err := RunPoRep(&PoRepConfig{
		DataSize:   1024,
		M:          6,
		Challenges: 1,
		Hasher:     "xyz",
	})
	if err == nil {
		t.Fatalf("unknown hasher accepted")
	}
}

func TestRunEncodingRates(t *testing.T) {
	report, err := RunEncoding(&EncodingConfig{
		DataSize:        1024,
		M:               5,
		ExpansionDegree: 6,
	})
	if err != nil {
		t.Fatalf("RunEncoding: %v", err)
	}

	reconstructed := report.PerByteSeconds * float64(report.DataSize)
	if math.Abs(reconstructed-report.EncodingTime.Seconds()) > 1e-6 {
		t.Fatalf("per-byte rate %v times %d bytes != %v",
			report.PerByteSeconds, report.DataSize, report.EncodingTime)
	}
	wantPerGiB := report.PerByteSeconds * float64(1<<30)
	if math.Abs(report.PerGiB.Seconds()-wantPerGiB) > wantPerGiB/1e6+1e-9 {
		t.Fatalf("per-GiB rate %v, want %v seconds", report.PerGiB.Seconds(), wantPerGiB)
	}
}
