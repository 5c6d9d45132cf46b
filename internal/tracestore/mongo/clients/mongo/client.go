// Package mongo hosts the MongoDB client used by the trace store.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	defaultCollection = "query_traces"
	defaultOpTimeout   = 5 * time.Second
)

// IterationDoc is the persisted shape of one orchestrator.IterationLog,
// decoupled from that type so a schema change there doesn't rename Mongo
// fields out from under existing documents.
type IterationDoc struct {
	Iteration   int      `bson:"iteration"`
	PlanReason  string   `bson:"plan_reason,omitempty"`
	Verdict     string   `bson:"verdict,omitempty"`
	VerdictGaps []string `bson:"verdict_gaps,omitempty"`
	CallSummary []string `bson:"call_summary,omitempty"`
}

// TraceDoc is the persisted document for one completed query.
type TraceDoc struct {
	QueryID          string         `bson:"query_id"`
	QueryText        string         `bson:"query_text"`
	CompletedAt      time.Time      `bson:"completed_at"`
	CompletionReason string         `bson:"completion_reason"`
	Summary          string         `bson:"summary,omitempty"`
	Iterations       []IterationDoc `bson:"iterations,omitempty"`
}

// Client exposes Mongo-backed operations for trace documents.
type Client interface {
	Ping(ctx context.Context) error
	UpsertTrace(ctx context.Context, doc TraceDoc) error
	LoadTrace(ctx context.Context, queryID string) (TraceDoc, error)
}

// Options configures the Mongo trace client.
type Options struct {
	Client     *mongodriver.Client
	Database   string
	Collection string
	Timeout    time.Duration
}

type client struct {
	mongo   *mongodriver.Client
	coll    *mongodriver.Collection
	timeout time.Duration
}

// New returns a Client backed by MongoDB, ensuring a unique index on
// query_id exists before returning.
func New(opts Options) (Client, error) {
	if opts.Client == nil {
		return nil, errors.New("mongo client is required")
	}
	if opts.Database == "" {
		return nil, errors.New("database name is required")
	}
	collection := opts.Collection
	if collection == "" {
		collection = defaultCollection
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	coll := opts.Client.Database(opts.Database).Collection(collection)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	index := mongodriver.IndexModel{
		Keys:    bson.D{{Key: "query_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
		return nil, err
	}
	return &client{mongo: opts.Client, coll: coll, timeout: timeout}, nil
}

func (c *client) Ping(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.mongo.Ping(ctx, readpref.Primary())
}

func (c *client) UpsertTrace(ctx context.Context, doc TraceDoc) error {
	if doc.QueryID == "" {
		return errors.New("query id is required")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	filter := bson.M{"query_id": doc.QueryID}
	update := bson.M{"$set": doc}
	_, err := c.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

func (c *client) LoadTrace(ctx context.Context, queryID string) (TraceDoc, error) {
	if queryID == "" {
		return TraceDoc{}, errors.New("query id is required")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	var doc TraceDoc
	err := c.coll.FindOne(ctx, bson.M{"query_id": queryID}).Decode(&doc)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return TraceDoc{}, nil
	}
	return doc, err
}

func (c *client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
