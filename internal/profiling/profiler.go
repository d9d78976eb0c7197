// Package profiling writes CPU and heap profiles for a single run.
package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Options selects the profiles to write. Empty paths disable a profile.
type Options struct {
	// CPU is the CPU profile path, recorded from Start until stop.
	CPU string
	// Heap is the heap profile path, written when stop is called.
	Heap string
}

// Enabled reports whether any profile is requested.
func (o Options) Enabled() bool {
	return o.CPU != "" || o.Heap != ""
}

// Start begins the requested profiles and returns a function that ends
// them. stop must be called exactly once.
func Start(opts Options) (stop func() error, err error) {
	var cpuFile *os.File
	if opts.CPU != "" {
		cpuFile, err = os.Create(opts.CPU)
		if err != nil {
			return nil, fmt.Errorf("failed to create CPU profile file: %w", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			_ = cpuFile.Close()
			return nil, fmt.Errorf("failed to start CPU profile: %w", err)
		}
	}

	return func() error {
		var errs []error
		if cpuFile != nil {
			pprof.StopCPUProfile()
			errs = append(errs, cpuFile.Close())
		}
		if opts.Heap != "" {
			errs = append(errs, writeHeap(opts.Heap))
		}
		return errors.Join(errs...)
	}, nil
}

// writeHeap writes a heap profile after a forced garbage collection.
func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile file: %w", err)
	}
	defer func() { _ = f.Close() }()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}
