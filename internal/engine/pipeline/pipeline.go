// Package pipeline executes build plans step by step.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline runs plans strictly sequentially, one external process at a time.
type Pipeline struct {
	runner    ports.CommandRunner
	sync      ports.Synchronizer
	hasher    ports.Hasher
	telemetry ports.Telemetry
	logger    ports.Logger
	now       func() time.Time

	mu         sync.RWMutex
	stepStatus map[string]domain.StepStatus
}

// New creates a new Pipeline.
func New(
	runner ports.CommandRunner,
	synchronizer ports.Synchronizer,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		runner:     runner,
		sync:       synchronizer,
		hasher:     hasher,
		telemetry:  telemetry,
		logger:     logger,
		now:        time.Now,
		stepStatus: make(map[string]domain.StepStatus),
	}
}

// StepResult is the outcome of one executed step.
type StepResult struct {
	Plan   string
	Label  string
	Kind   domain.StepKind
	Status domain.StepStatus
	// Attempt is the final status of a compile step.
	Attempt domain.Status
	// Retried is set when the clean variant ran.
	Retried bool
	Err     error
}

// Report summarizes a pipeline run.
type Report struct {
	Steps  []StepResult
	Copied []domain.CopiedFile
}

// Failed returns the failed steps.
func (r *Report) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Status == domain.StepStatusFailed {
			failed = append(failed, s)
		}
	}
	return failed
}

// Skipped returns the skipped steps.
func (r *Report) Skipped() []StepResult {
	var skipped []StepResult
	for _, s := range r.Steps {
		if s.Status == domain.StepStatusSkipped {
			skipped = append(skipped, s)
		}
	}
	return skipped
}

// Status returns the last recorded status of a step label.
func (p *Pipeline) Status(label string) domain.StepStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.stepStatus[label]; ok {
		return s
	}
	return domain.StepStatusPending
}

func (p *Pipeline) updateStatus(label string, status domain.StepStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stepStatus[label] = status
}

// Run executes plans in order and records copied artifacts in store, which may be nil.
// The first failing step abandons the rest of the run with domain.ErrBuildExecutionFailed.
// Synchronization passes with a missing source are skipped.
func (p *Pipeline) Run(ctx context.Context, store ports.ArtifactStore, plans ...*domain.Plan) (*Report, error) {
	report := &Report{}
	for _, plan := range plans {
		for _, step := range plan.Steps {
			p.updateStatus(step.Label, domain.StepStatusPending)
		}
	}

	for _, plan := range plans {
		p.logger.Info("Running " + plan.Name)
		for i := range plan.Steps {
			if err := ctx.Err(); err != nil {
				return report, zerr.Wrap(err, "build cancelled")
			}

			res := p.runStep(ctx, plan.Name, &plan.Steps[i], store, report)
			report.Steps = append(report.Steps, res)
			if res.Status != domain.StepStatusFailed {
				continue
			}

			p.logger.Error(res.Err)
			failed := zerr.With(zerr.Wrap(domain.ErrBuildExecutionFailed, "exiting due to errors"), "plan", plan.Name)
			return report, zerr.With(errors.Join(failed, res.Err), "step", res.Label)
		}
	}
	return report, nil
}

func (p *Pipeline) runStep(ctx context.Context, planName string, step *domain.Step, store ports.ArtifactStore, report *Report) StepResult {
	res := StepResult{Plan: planName, Label: step.Label, Kind: step.Kind}
	p.updateStatus(step.Label, domain.StepStatusRunning)

	ctx, vertex := p.telemetry.Record(ctx, step.Label, ports.WithGroup(planName))

	var copied []domain.CopiedFile
	var err error
	switch step.Kind {
	case domain.StepCompile:
		err = p.compile(ctx, step.Attempt, &res)
	case domain.StepSync:
		p.logger.Info("Copying " + step.Copy.Src + " to " + step.Copy.Dst)
		copied, err = p.sync.Sync(*step.Copy)
	case domain.StepSimRename:
		err = p.sync.SimRename(*step.SimRename)
	case domain.StepMirror:
		err = p.sync.Mirror(*step.Mirror)
	case domain.StepReset:
		err = p.sync.Reset(*step.Reset)
	case domain.StepShaders:
		copied, err = p.sync.ConvertShaders(*step.Shaders)
	default:
		err = zerr.With(zerr.New("unknown step kind"), "kind", step.Kind.String())
	}

	if len(copied) > 0 {
		report.Copied = append(report.Copied, copied...)
		if recErr := p.record(store, copied); recErr != nil {
			err = errors.Join(err, recErr)
		}
	}

	switch {
	case err == nil:
		res.Status = domain.StepStatusCompleted
		vertex.Complete(nil)
	case errors.Is(err, domain.ErrSourceMissing):
		// Missing sources were already reported by the synchronizer.
		res.Status = domain.StepStatusSkipped
		res.Err = err
		vertex.Log(domain.LogLevelWarn, err.Error())
		vertex.Skipped()
	default:
		res.Status = domain.StepStatusFailed
		res.Err = zerr.With(zerr.Wrap(err, "step failed"), "step", step.Label)
		vertex.Complete(err)
	}
	p.updateStatus(step.Label, res.Status)
	return res
}

// compile runs an attempt and, when its output asks for it, the clean variant once.
func (p *Pipeline) compile(ctx context.Context, attempt *domain.CompileAttempt, res *StepResult) error {
	status, err := p.runner.Run(ctx, attempt.Command)
	if err == nil && status == domain.StatusNeedsClean && attempt.Clean != nil {
		p.logger.Warn("Arguments do not match previous build, running a clean build")
		res.Retried = true
		if attempt.CleanDir != "" {
			if err := p.sync.Reset(domain.ResetRule{Path: attempt.CleanDir}); err != nil {
				attempt.Status = domain.StatusFailed
				res.Attempt = domain.StatusFailed
				return zerr.Wrap(err, "failed to clean build tree")
			}
		}
		status, err = p.runner.Run(ctx, *attempt.Clean)
	}
	if status == domain.StatusNeedsClean {
		status = domain.StatusFailed
	}

	attempt.Status = status
	res.Attempt = status
	if err != nil {
		attempt.Status = domain.StatusFailed
		res.Attempt = domain.StatusFailed
		return zerr.Wrap(err, "failed to run command")
	}
	if status == domain.StatusFailed {
		return zerr.With(zerr.Wrap(domain.ErrCompileFailed, "command reported errors"), "step", attempt.Label)
	}
	return nil
}

// record hashes copied destinations and stores them as artifact records.
// A destination whose source and content did not change keeps its timestamp.
func (p *Pipeline) record(store ports.ArtifactStore, copied []domain.CopiedFile) error {
	if store == nil {
		return nil
	}
	records := make([]domain.ArtifactRecord, 0, len(copied))
	for _, c := range copied {
		sum, err := p.hasher.ComputeFileHash(c.Destination)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to hash artifact"), "path", c.Destination)
		}
		rec := domain.ArtifactRecord{
			Destination: c.Destination,
			Source:      c.Source,
			Hash:        domain.FormatHash(sum),
			Timestamp:   p.now(),
		}

		prev, err := store.Get(c.Destination)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read artifact record"), "path", c.Destination)
		}
		if prev != nil && prev.Hash == rec.Hash && prev.Source == rec.Source && !prev.Timestamp.IsZero() {
			rec.Timestamp = prev.Timestamp
		}
		records = append(records, rec)
	}
	if err := store.Put(records...); err != nil {
		return zerr.Wrap(err, "failed to store artifact records")
	}
	return nil
}
