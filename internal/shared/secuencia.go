package shared

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/coarapp/coar/internal/platform/db"
)

// Secuencia is a per-tenant, per-serie correlative. Numero is zero padded to
// eight digits ("00000001") to match the documents the school prints.
type Secuencia struct {
	Serie  string
	Numero string
}

// String renders the "SERIE-NUMERO" form used in listings.
func (s Secuencia) String() string {
	return s.Serie + "-" + s.Numero
}

// NextSecuencia computes the next correlative for the given table and serie.
// An empty serie defaults to the current year. The read is not locked; callers
// that persist the number must do so inside the same transaction as the read
// (pass the tx as q) so concurrent inserts cannot take the same value.
func NextSecuencia(ctx context.Context, q db.DBTX, table string, empresaID int64, serie string) (Secuencia, error) {
	if serie == "" {
		serie = strconv.Itoa(time.Now().Year())
	}

	// Table names come from a fixed caller-side set, never from user input.
	query := `SELECT COALESCE(MAX(numero::bigint), 0) FROM ` + table + ` WHERE id_empresa = $1 AND serie = $2`

	var actual int64
	if err := q.QueryRow(ctx, query, empresaID, serie).Scan(&actual); err != nil {
		return Secuencia{}, fmt.Errorf("shared: next secuencia %s: %w", table, err)
	}

	return Secuencia{
		Serie:  serie,
		Numero: fmt.Sprintf("%08d", actual+1),
	}, nil
}
