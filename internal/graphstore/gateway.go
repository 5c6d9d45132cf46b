package graphstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// DB is the subset of the pgx API the gateway's queries use. Both
// *pgxpool.Pool and *pgx.Conn satisfy it; Gateway itself holds a
// *pgxpool.Pool directly and does not go through this interface.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// requiredTable names a table and the columns the engine relies on; Probe
// checks each entry against information_schema at startup.
type requiredTable struct {
	table   string
	columns []string
}

var requiredSchema = []requiredTable{
	{"drug", []string{"key", "preferred_name", "drugcentral_id", "chembl_id", "pubchem_cid", "inchi_key"}},
	{"gene", []string{"key", "hgnc_id", "symbol", "ensembl_id", "protein_id"}},
	{"disease", []string{"key", "ontology_id", "label"}},
	{"pathway", []string{"key", "ref_id", "label"}},
	{"adverse_event", []string{"key", "label", "ontology_code"}},
	{"claim", []string{"key", "claim_type", "polarity", "strength_score", "dataset_key", "source_record_id", "raw_statement"}},
	{"evidence", []string{"key", "evidence_type", "source_record_id", "source_url", "payload"}},
	{"dataset", []string{"dataset_key", "version", "license"}},
	{"has_claim", []string{"entity_kind", "entity_key", "claim_key"}},
	{"claim_gene", []string{"claim_key", "gene_key"}},
	{"claim_disease", []string{"claim_key", "disease_key", "score"}},
	{"claim_pathway", []string{"claim_key", "pathway_key"}},
	{"claim_adverse_event", []string{"claim_key", "ae_key", "frequency"}},
	{"supported_by", []string{"claim_key", "evidence_key"}},
}

// Gateway is the read-only Graph Store Gateway. It owns a pooled connection
// to Postgres and is constructed once, then shared by reference across
// concurrent queries.
type Gateway struct {
	pool *pgxpool.Pool
}

// Open parses dsn, establishes a pooled connection (sized by poolSize), and
// registers pgvector codecs on every new connection so Drug.Embedding can be
// scanned directly. It does not run Probe; callers must call Probe once at
// startup and refuse to serve traffic if it fails.
func Open(ctx context.Context, dsn string, poolSize int) (*Gateway, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, unavailable("parse dsn", err)
	}
	if poolSize > 0 {
		cfg.MaxConns = int32(poolSize)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, unavailable("open pool", err)
	}
	return &Gateway{pool: pool}, nil
}

// NewFromPool wraps an already-constructed pool instead of opening one from
// a DSN.
func NewFromPool(pool *pgxpool.Pool) *Gateway { return &Gateway{pool: pool} }

// Close releases the underlying connection pool.
func (g *Gateway) Close() { g.pool.Close() }

// Probe runs a one-shot check that every table/column the gateway relies on
// is present, returning KindSchemaMismatch on the first miss. Callers run
// this once at startup; on failure the server must refuse to start.
func (g *Gateway) Probe(ctx context.Context) error {
	for _, rt := range requiredSchema {
		var exists bool
		row := g.pool.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, rt.table)
		if err := row.Scan(&exists); err != nil {
			return unavailable(fmt.Sprintf("probe table %s", rt.table), err)
		}
		if !exists {
			return schemaMismatch(fmt.Sprintf("missing table %q", rt.table))
		}
		for _, col := range rt.columns {
			var colExists bool
			row := g.pool.QueryRow(ctx, `SELECT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = $1 AND column_name = $2)`, rt.table, col)
			if err := row.Scan(&colExists); err != nil {
				return unavailable(fmt.Sprintf("probe column %s.%s", rt.table, col), err)
			}
			if !colExists {
				return schemaMismatch(fmt.Sprintf("missing column %s.%s", rt.table, col))
			}
		}
	}
	return nil
}

// wrapQueryErr normalizes a pgx error as a KindUnavailable Error. Row-not-
// found (pgx.ErrNoRows) is not an error for the gateway's purposes: callers
// (the tool library) treat an empty result set as "no match", not a failure.
func wrapQueryErr(op string, err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return unavailable(op, err)
}
