// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const journalDirPerm = 0o755

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
// Every status update goes to an in-memory tape and to the attached journal.
type Recorder struct {
	tape   *progrock.Tape
	sink   *sink
	rec    *progrock.Recorder
	logger ports.Logger

	mu      sync.Mutex
	journal string
}

// New creates a new Recorder that logs a run summary through logger on Close.
func New(logger ports.Logger) *Recorder {
	tape := progrock.NewTape()
	s := &sink{writers: progrock.MultiWriter{tape}}
	return &Recorder{
		tape:   tape,
		sink:   s,
		rec:    progrock.NewRecorder(s),
		logger: logger,
	}
}

// Record starts recording a new vertex, inside its group when one is given.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	cfg := ports.VertexConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	rec := r.group(cfg.Group)
	v := rec.Vertex(digest.FromString(cfg.Group+"/"+name), name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// group returns the recorder of a named group, created on first use.
func (r *Recorder) group(name string) *progrock.Recorder {
	if name == "" {
		return r.rec
	}
	return r.rec.WithGroup(name)
}

// Journal writes every following status update to path as JSON lines,
// replacing the previous journal at path.
func (r *Recorder) Journal(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.journal == path {
		return nil
	}
	if r.journal != "" {
		return zerr.With(zerr.New("progress journal already attached"), "path", r.journal)
	}

	if err := os.MkdirAll(filepath.Dir(path), journalDirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create journal directory"), "path", path)
	}
	w, err := progrock.CreateJournal(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create progress journal"), "path", path)
	}
	r.sink.attach(w)
	r.journal = path
	return nil
}

// Close completes the groups, logs a summary of the recorded steps and closes
// the tape and journal.
func (r *Recorder) Close() error {
	r.rec.Complete()

	err := r.rec.Close()
	if total := r.tape.TotalCount(); total > 0 && r.logger != nil {
		r.logger.Info(fmt.Sprintf("Recorded %d steps, %d failed, %d skipped in %s",
			total, r.tape.ErroredCount(), r.tape.CachedCount(), r.tape.Duration().Round(time.Millisecond)))
	}
	if err != nil {
		return zerr.Wrap(err, "failed to close progress recording")
	}
	return nil
}

// sink fans status updates out to the tape and the journal.
type sink struct {
	mu      sync.Mutex
	writers progrock.MultiWriter
}

func (s *sink) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writers.WriteStatus(update)
}

func (s *sink) attach(w progrock.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writers = append(s.writers, w)
}

func (s *sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writers.Close()
}
