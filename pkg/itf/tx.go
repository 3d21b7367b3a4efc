package itf

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ExecCall struct {
	SQL  string
	Args []any
}

// RecordingTx stands in for a real transaction and records every Exec issued
// against it. Only the methods the scoped executor and repositories use are
// implemented; anything else panics through the nil embedded interface.
type RecordingTx struct {
	pgx.Tx
	Execs     []ExecCall
	Commits   int
	Rollbacks int

	// FailOn aborts any Exec whose statement starts with the given prefix.
	FailOn   string
	FailWith error
}

func NewRecordingTx() *RecordingTx {
	return &RecordingTx{}
}

func (t *RecordingTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.FailOn != "" && strings.HasPrefix(sql, t.FailOn) {
		return pgconn.CommandTag{}, t.FailWith
	}
	t.Execs = append(t.Execs, ExecCall{SQL: sql, Args: args})
	return pgconn.CommandTag{}, nil
}

func (t *RecordingTx) Commit(ctx context.Context) error {
	t.Commits++
	return nil
}

func (t *RecordingTx) Rollback(ctx context.Context) error {
	t.Rollbacks++
	return nil
}

// ExecsWithPrefix filters the recorded statements by prefix.
func (t *RecordingTx) ExecsWithPrefix(prefix string) []ExecCall {
	var out []ExecCall
	for _, call := range t.Execs {
		if strings.HasPrefix(call.SQL, prefix) {
			out = append(out, call)
		}
	}
	return out
}
