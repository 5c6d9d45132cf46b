// Package tracestore persists completed queries' iteration traces for later
// audit, independent of the orchestrator's in-memory Result.
package tracestore

import (
	"context"
	"time"

	"github.com/pvkg/pvqa/internal/orchestrator"
)

// Record is one persisted query run: the question asked, when it completed,
// and the full iteration trace and completion reason from its Result.
type Record struct {
	QueryID          string
	QueryText        string
	CompletedAt      time.Time
	CompletionReason orchestrator.CompletionReason
	Trace            []orchestrator.IterationLog
	Summary          string
}

// Sink persists and retrieves Records. Append is called once per completed
// query; Load supports replaying a prior run's trace for debugging.
type Sink interface {
	Append(ctx context.Context, rec Record) error
	Load(ctx context.Context, queryID string) (Record, error)
}

// FromResult builds a Record from an orchestrator.Result for a given query.
func FromResult(queryID, queryText string, completedAt time.Time, result orchestrator.Result) Record {
	return Record{
		QueryID:          queryID,
		QueryText:        queryText,
		CompletedAt:      completedAt,
		CompletionReason: result.CompletionReason,
		Trace:            result.Trace,
		Summary:          result.Summary,
	}
}
