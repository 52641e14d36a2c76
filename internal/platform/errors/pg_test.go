package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgresf(t *testing.T) {
	if FromPostgresf(nil, "x") != nil {
		t.Fatalf("nil must stay nil")
	}

	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"bad text", &pgconn.PgError{Code: pgErrInvalidTextRepresentation}, ErrorCodeInvalidArgument},
		{"starting up", &pgconn.PgError{Code: pgErrCannotConnectNow}, ErrorCodeUnavailable},
		{"too many conns", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgErrTooManyConnections}), ErrorCodeUnavailable},
		{"other sqlstate", &pgconn.PgError{Code: "XX000"}, ErrorCodeDB},
		{"not pg", stderrs.New("closed pool"), ErrorCodeDB},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FromPostgresf(c.err, "query %s", "items")
			if CodeOf(got) != c.want {
				t.Fatalf("code = %v, want %v", CodeOf(got), c.want)
			}
		})
	}
}

func TestIsSQLState(t *testing.T) {
	err := fmt.Errorf("x: %w", &pgconn.PgError{Code: pgErrQueryCanceled})
	if !IsSQLState(err, pgErrQueryCanceled) {
		t.Fatalf("expected SQLSTATE match")
	}
	if IsSQLState(stderrs.New("plain"), pgErrQueryCanceled) {
		t.Fatalf("plain error must not match")
	}
}
