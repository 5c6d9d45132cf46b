// Package mongo implements tracestore.Sink over MongoDB, used when
// config.TraceSink is "mongo".
package mongo

import (
	"context"
	"errors"

	"github.com/pvkg/pvqa/internal/orchestrator"
	"github.com/pvkg/pvqa/internal/tracestore"
	clientsmongo "github.com/pvkg/pvqa/internal/tracestore/mongo/clients/mongo"
)

// Options configures the Mongo-backed trace store.
type Options struct {
	Client clientsmongo.Client
}

// Store implements tracestore.Sink by delegating to the Mongo client.
type Store struct {
	client clientsmongo.Client
}

// NewStore builds a Store using the provided client.
func NewStore(opts Options) (*Store, error) {
	if opts.Client == nil {
		return nil, errors.New("client is required")
	}
	return &Store{client: opts.Client}, nil
}

// NewStoreFromMongo instantiates the Store by constructing the underlying client.
func NewStoreFromMongo(opts clientsmongo.Options) (*Store, error) {
	client, err := clientsmongo.New(opts)
	if err != nil {
		return nil, err
	}
	return NewStore(Options{Client: client})
}

func (s *Store) Append(ctx context.Context, rec tracestore.Record) error {
	return s.client.UpsertTrace(ctx, toDoc(rec))
}

func (s *Store) Load(ctx context.Context, queryID string) (tracestore.Record, error) {
	doc, err := s.client.LoadTrace(ctx, queryID)
	if err != nil {
		return tracestore.Record{}, err
	}
	return fromDoc(doc), nil
}

func toDoc(rec tracestore.Record) clientsmongo.TraceDoc {
	iterations := make([]clientsmongo.IterationDoc, 0, len(rec.Trace))
	for _, it := range rec.Trace {
		calls := make([]string, 0, len(it.Calls))
		for _, c := range it.Calls {
			calls = append(calls, string(c.Tool)+": "+c.Summary)
		}
		iterations = append(iterations, clientsmongo.IterationDoc{
			Iteration:   it.Iteration,
			PlanReason:  it.PlanReason,
			Verdict:     it.Verdict,
			VerdictGaps: it.VerdictGaps,
			CallSummary: calls,
		})
	}
	return clientsmongo.TraceDoc{
		QueryID:          rec.QueryID,
		QueryText:        rec.QueryText,
		CompletedAt:      rec.CompletedAt,
		CompletionReason: string(rec.CompletionReason),
		Summary:          rec.Summary,
		Iterations:       iterations,
	}
}

func fromDoc(doc clientsmongo.TraceDoc) tracestore.Record {
	trace := make([]orchestrator.IterationLog, 0, len(doc.Iterations))
	for _, it := range doc.Iterations {
		trace = append(trace, orchestrator.IterationLog{
			Iteration:   it.Iteration,
			PlanReason:  it.PlanReason,
			Verdict:     it.Verdict,
			VerdictGaps: it.VerdictGaps,
		})
	}
	return tracestore.Record{
		QueryID:          doc.QueryID,
		QueryText:        doc.QueryText,
		CompletedAt:      doc.CompletedAt,
		CompletionReason: orchestrator.CompletionReason(doc.CompletionReason),
		Trace:            trace,
		Summary:          doc.Summary,
	}
}
