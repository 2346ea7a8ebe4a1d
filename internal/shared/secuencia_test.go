package shared

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type maxRow struct {
	max int64
}

func (r maxRow) Scan(dest ...any) error {
	if len(dest) != 1 {
		return errors.New("unexpected scan arity")
	}
	*(dest[0].(*int64)) = r.max
	return nil
}

type maxQuerier struct {
	max   int64
	serie string
}

func (q *maxQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func (q *maxQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (q *maxQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if len(args) == 2 {
		q.serie, _ = args[1].(string)
	}
	return maxRow{max: q.max}
}

func TestNextSecuenciaPadsToEightDigits(t *testing.T) {
	q := &maxQuerier{max: 41}

	sec, err := NextSecuencia(context.Background(), q, "incidencias", 1, "2026")
	if err != nil {
		t.Fatalf("next secuencia: %v", err)
	}
	if sec.Serie != "2026" {
		t.Fatalf("serie = %q", sec.Serie)
	}
	if sec.Numero != "00000042" {
		t.Fatalf("numero = %q, want 00000042", sec.Numero)
	}
	if sec.String() != "2026-00000042" {
		t.Fatalf("string = %q", sec.String())
	}
}

func TestNextSecuenciaStartsAtOne(t *testing.T) {
	sec, err := NextSecuencia(context.Background(), &maxQuerier{max: 0}, "incidencias", 1, "2026")
	if err != nil {
		t.Fatalf("next secuencia: %v", err)
	}
	if sec.Numero != "00000001" {
		t.Fatalf("numero = %q, want 00000001", sec.Numero)
	}
}

func TestNextSecuenciaDefaultsSerieToYear(t *testing.T) {
	q := &maxQuerier{max: 3}

	sec, err := NextSecuencia(context.Background(), q, "incidencias", 1, "")
	if err != nil {
		t.Fatalf("next secuencia: %v", err)
	}
	want := strconv.Itoa(time.Now().Year())
	if sec.Serie != want || q.serie != want {
		t.Fatalf("serie = %q (queried %q), want %q", sec.Serie, q.serie, want)
	}
}
