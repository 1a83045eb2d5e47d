package prof

import (
	"fmt"
	"os"
	"runtime/pprof"
)

// Scope brackets a benchmark stage with optional CPU profiling. The no-op
// implementation keeps the instrumentation boundary free of any effect on
// control flow or results.
type Scope interface {
	// Start begins profiling the named stage.
	Start(stage string) error
	// Stop ends the current stage.
	Stop() error
}

// NopScope is the default: profiling disabled.
type NopScope struct{}

func (NopScope) Start(string) error { return nil }
func (NopScope) Stop() error        { return nil }

// CPUScope samples CPU usage of each stage into <stage>.profile.
type CPUScope struct {
	f *os.File
}

// NewCPUScope returns a CPU-profiling scope.
func NewCPUScope() *CPUScope { return &CPUScope{} }

func (s *CPUScope) Start(stage string) error {
	if s.f != nil {
		return fmt.Errorf("prof: scope %q still open", s.f.Name())
	}
	f, err := os.Create(fmt.Sprintf("./%s.profile", stage))
	if err != nil {
		return fmt.Errorf("prof: create profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("prof: start cpu profile: %w", err)
	}
	s.f = f
	return nil
}

func (s *CPUScope) Stop() error {
	if s.f == nil {
		return fmt.Errorf("prof: no open scope")
	}
	pprof.StopCPUProfile()
	err := s.f.Close()
	s.f = nil
	return err
}
