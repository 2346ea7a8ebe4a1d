package centinela

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/coarapp/coar/internal/shared"
)

type idRow struct {
	id  int64
	err error
}

func (r idRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.id
	return nil
}

type insertRecorder struct {
	args []any
	row  idRow
}

func (q *insertRecorder) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func (q *insertRecorder) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (q *insertRecorder) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func TestRegistrarStampsIdentity(t *testing.T) {
	rec := &insertRecorder{row: idRow{id: 99}}
	service := NewService(rec)

	rolID := int64(3)
	ctx := shared.ContextWithIdentity(context.Background(), &shared.Identity{
		UserID: 7, EmpresaID: 2, RolID: &rolID,
	})

	entry, err := service.Registrar(ctx, rec, AccionNuevo, "SECRETARÍA", "ÁREA", "CONFIGURACIÓN")
	if err != nil {
		t.Fatalf("registrar: %v", err)
	}
	if entry.ID != 99 {
		t.Fatalf("id = %d", entry.ID)
	}
	if entry.IDUsuario == nil || *entry.IDUsuario != 7 {
		t.Fatalf("id_usuario = %v", entry.IDUsuario)
	}
	if entry.IDEmpresa == nil || *entry.IDEmpresa != 2 {
		t.Fatalf("id_empresa = %v", entry.IDEmpresa)
	}
	if entry.Accion != AccionNuevo || entry.Menu != "ÁREA" || entry.Modulo != "CONFIGURACIÓN" {
		t.Fatalf("entry = %+v", entry)
	}
	if len(rec.args) != 7 {
		t.Fatalf("insert args = %d, want 7", len(rec.args))
	}
}

// An absent identity is tolerated; the row is written with null actor columns.
func TestRegistrarWithoutIdentity(t *testing.T) {
	rec := &insertRecorder{row: idRow{id: 1}}
	service := NewService(rec)

	entry, err := service.Registrar(context.Background(), rec, AccionEliminar, "AULA 101", "LUGAR", "CONFIGURACIÓN")
	if err != nil {
		t.Fatalf("registrar: %v", err)
	}
	if entry.IDUsuario != nil || entry.IDEmpresa != nil {
		t.Fatalf("actor columns should be nil, got %v / %v", entry.IDUsuario, entry.IDEmpresa)
	}
}

func TestRegistrarRejectsMissingFields(t *testing.T) {
	rec := &insertRecorder{row: idRow{id: 1}}
	service := NewService(rec)

	if _, err := service.Registrar(context.Background(), rec, "", "X", "ÁREA", "CONFIGURACIÓN"); err == nil {
		t.Fatal("empty accion must fail")
	}
	if _, err := service.Registrar(context.Background(), rec, AccionNuevo, "X", "", "CONFIGURACIÓN"); err == nil {
		t.Fatal("empty menu must fail")
	}
}

func TestRegistrarPropagatesInsertError(t *testing.T) {
	boom := errors.New("deadlock")
	rec := &insertRecorder{row: idRow{err: boom}}
	service := NewService(rec)

	_, err := service.Registrar(context.Background(), rec, AccionNuevo, "X", "ÁREA", "CONFIGURACIÓN")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}

type movimientoRows struct {
	rows []Movimiento
	idx  int
}

func (r *movimientoRows) Close()                                       {}
func (r *movimientoRows) Err() error                                   { return nil }
func (r *movimientoRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *movimientoRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *movimientoRows) Values() ([]any, error)                       { return nil, errors.New("not implemented") }
func (r *movimientoRows) RawValues() [][]byte                          { return nil }
func (r *movimientoRows) Conn() *pgx.Conn                              { return nil }

func (r *movimientoRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *movimientoRows) Scan(dest ...any) error {
	m := r.rows[r.idx-1]
	*(dest[0].(*time.Time)) = m.Fecha
	*(dest[1].(*string)) = m.Modulo
	*(dest[2].(*string)) = m.Menu
	*(dest[3].(*string)) = m.Accion
	*(dest[4].(*string)) = m.Descripcion
	*(dest[5].(*string)) = m.Usuario
	return nil
}

type listRecorder struct {
	sql  string
	args []any
	rows *movimientoRows
}

func (q *listRecorder) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func (q *listRecorder) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return idRow{err: errors.New("not implemented")}
}

func (q *listRecorder) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = sql
	q.args = args
	return q.rows, nil
}

func TestListarBindsTenantAndOrdersNewestFirst(t *testing.T) {
	hoy := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	ayer := hoy.Add(-24 * time.Hour)
	rec := &listRecorder{rows: &movimientoRows{rows: []Movimiento{
		{Fecha: hoy, Modulo: "CONFIGURACIÓN", Menu: "ÁREA", Accion: AccionNuevo, Descripcion: "SECRETARÍA", Usuario: "María"},
		{Fecha: ayer, Modulo: "OPERACIÓN", Menu: "INCIDENCIAS", Accion: AccionNuevo, Descripcion: "2026-00000001", Usuario: "José"},
	}}}
	service := NewService(rec)

	desde := ayer.Add(-time.Hour)
	movimientos, err := service.Listar(context.Background(), 2, desde, hoy)
	if err != nil {
		t.Fatalf("listar: %v", err)
	}

	if len(rec.args) != 3 {
		t.Fatalf("query args = %v", rec.args)
	}
	if rec.args[0] != int64(2) {
		t.Fatalf("empresa arg = %v, want 2", rec.args[0])
	}
	if rec.args[1] != desde || rec.args[2] != hoy {
		t.Fatalf("range args = %v", rec.args[1:])
	}
	if !strings.Contains(rec.sql, "c.id_empresa = $1") {
		t.Fatalf("query does not filter by empresa:\n%s", rec.sql)
	}
	if !strings.Contains(rec.sql, "ORDER BY c.fecha DESC") {
		t.Fatalf("query does not order newest first:\n%s", rec.sql)
	}

	if len(movimientos) != 2 {
		t.Fatalf("movimientos = %d, want 2", len(movimientos))
	}
	if !movimientos[0].Fecha.Equal(hoy) || !movimientos[1].Fecha.Equal(ayer) {
		t.Fatalf("row order lost: %v, %v", movimientos[0].Fecha, movimientos[1].Fecha)
	}
	if movimientos[0].Usuario != "María" || movimientos[1].Descripcion != "2026-00000001" {
		t.Fatalf("scan mismatch: %+v", movimientos)
	}
}
