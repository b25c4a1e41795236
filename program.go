package shaderspec

import (
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// StageCode is the per-stage input to a program replay.
type StageCode struct {
	// Stage is the shader stage the code belongs to.
	Stage ShaderStage

	// Code is the raw guest shader code.
	Code []byte

	// ConstantBuffer1 is the captured constant buffer 1 data.
	ConstantBuffer1 []byte
}

// ReplayFunc retranslates one stage through its accessor. It is called once
// per stage, possibly concurrently across stages.
type ReplayFunc func(stage ShaderStage, acc StateAccessor) error

// ReplayProgramOptions configures ReplayProgram.
type ReplayProgramOptions struct {
	// AlphaTestEmulation is the backend capability flag passed to every
	// stage accessor.
	AlphaTestEmulation bool

	// Workers bounds the number of stages translated concurrently.
	// Zero or negative means GOMAXPROCS.
	Workers int

	// Logger receives accessor diagnostics. Nil means silent.
	Logger *slog.Logger
}

// ReplayProgram revalidates one cached program against its old snapshot.
//
// It builds the fresh snapshot, creates one ReplayAccessor per stage, and
// runs fn for each stage on a bounded worker pool. On success the returned
// snapshot is the fingerprint for the retranslated program. On failure the
// first error is returned and the partially built snapshot is discarded;
// the caller's response is to drop the cache entry and retranslate from
// source, never to patch around a missing fact.
func ReplayProgram(old *SpecializationState, stages []StageCode, opts ReplayProgramOptions, fn ReplayFunc) (*SpecializationState, error) {
	fresh := old.CloneForRecord()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for _, sc := range stages {
		g.Go(func() error {
			acc := NewReplayAccessor(ReplayOptions{
				Stage:              sc.Stage,
				Code:               sc.Code,
				ConstantBuffer1:    sc.ConstantBuffer1,
				Old:                old,
				Fresh:              fresh,
				AlphaTestEmulation: opts.AlphaTestEmulation,
				Logger:             opts.Logger,
			})
			if err := fn(sc.Stage, acc); err != nil {
				return err
			}
			// A lookup miss has no error return; it surfaces here.
			return acc.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fresh, nil
}
