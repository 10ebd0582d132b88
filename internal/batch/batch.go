// Package batch generates many agreements concurrently. Every job runs its
// own generation pipeline; the only shared state is the generator's
// read-only template registry and logo cache.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/orchestrator"
)

// DefaultConcurrency bounds parallel generations when no option is given.
const DefaultConcurrency = 4

// Generator is satisfied by *orchestrator.Generator.
type Generator interface {
	Generate(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error)
}

// Job is one document to generate.
type Job struct {
	Type     document.Type
	Record   agreement.Record
	Renderer string
	// Output overrides the suggested filename.
	Output string
}

// Outcome reports one job. Err is nil on success.
type Outcome struct {
	Index  int
	Job    Job
	Result orchestrator.Result
	Err    error
}

// Filename is Job.Output when set, otherwise the suggested filename.
func (o Outcome) Filename() string {
	if strings.TrimSpace(o.Job.Output) != "" {
		return o.Job.Output
	}
	return o.Result.Filename
}

// Sink receives every successful outcome, typically to persist the document.
// Sinks are called concurrently.
type Sink func(ctx context.Context, outcome Outcome) error

// Option configures Run.
type Option func(*runner)

// WithConcurrency caps the number of parallel generations.
func WithConcurrency(n int) Option {
	return func(r *runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithSink registers the consumer of generated documents.
func WithSink(sink Sink) Option {
	return func(r *runner) {
		r.sink = sink
	}
}

// WithFailFast cancels the remaining jobs after the first failure.
func WithFailFast(enabled bool) Option {
	return func(r *runner) {
		r.failFast = enabled
	}
}

type runner struct {
	concurrency int
	sink        Sink
	failFast    bool
}

// Run generates every job and returns one outcome per job in input order.
// Without fail-fast every job runs and the returned error joins all job
// failures; with fail-fast the first failure cancels jobs not yet started.
func Run(ctx context.Context, gen Generator, jobs []Job, options ...Option) ([]Outcome, error) {
	if gen == nil {
		return nil, errors.New("batch: generator is required")
	}
	r := runner{concurrency: DefaultConcurrency}
	for _, opt := range options {
		if opt != nil {
			opt(&r)
		}
	}

	outcomes := make([]Outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, job := range jobs {
		outcomes[i] = Outcome{Index: i, Job: job}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = err
				return r.fail(err)
			}
			result, err := gen.Generate(gctx, orchestrator.Request{
				Type:     job.Type,
				Record:   job.Record,
				Renderer: job.Renderer,
			})
			if err != nil {
				outcomes[i].Err = fmt.Errorf("batch: job %d (%s): %w", i, job.Type, err)
				return r.fail(outcomes[i].Err)
			}
			outcomes[i].Result = result
			if r.sink != nil {
				if err := r.sink(gctx, outcomes[i]); err != nil {
					outcomes[i].Err = fmt.Errorf("batch: job %d (%s): sink: %w", i, job.Type, err)
					return r.fail(outcomes[i].Err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && r.failFast {
		return outcomes, err
	}

	var errs []error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			errs = append(errs, outcome.Err)
		}
	}
	return outcomes, errors.Join(errs...)
}

func (r runner) fail(err error) error {
	if r.failFast {
		return err
	}
	return nil
}

// Manifest is the YAML description of a batch:
//
//	renderer: pdf
//	jobs:
//	  - type: nda
//	    record:
//	      organization_name: Acme Corp
//	  - type: partnership
//	    output: studio-north.pdf
//	    record: {partner_name: Studio North, fee_model: B, hourly_rate: "95"}
type Manifest struct {
	Renderer string
	Jobs     []Job
}

type manifestWire struct {
	Renderer string    `yaml:"renderer"`
	Jobs     []jobWire `yaml:"jobs"`
}

type jobWire struct {
	Type     string    `yaml:"type"`
	Renderer string    `yaml:"renderer"`
	Output   string    `yaml:"output"`
	Record   yaml.Node `yaml:"record"`
}

// ParseManifest decodes a manifest. Records are decoded into the shape their
// document type requires; unknown types fail the whole manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var wire manifestWire
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return Manifest{}, fmt.Errorf("batch: parse manifest: %w", err)
	}
	if len(wire.Jobs) == 0 {
		return Manifest{}, errors.New("batch: manifest has no jobs")
	}

	manifest := Manifest{Renderer: strings.TrimSpace(wire.Renderer)}
	for i, item := range wire.Jobs {
		docType, err := document.ParseType(item.Type)
		if err != nil {
			return Manifest{}, fmt.Errorf("batch: job %d: %w", i, err)
		}
		record, err := agreement.DecodeNode(docType, &item.Record)
		if err != nil {
			return Manifest{}, fmt.Errorf("batch: job %d: %w", i, err)
		}
		renderer := strings.TrimSpace(item.Renderer)
		if renderer == "" {
			renderer = manifest.Renderer
		}
		manifest.Jobs = append(manifest.Jobs, Job{
			Type:     docType,
			Record:   record,
			Renderer: renderer,
			Output:   strings.TrimSpace(item.Output),
		})
	}
	return manifest, nil
}
