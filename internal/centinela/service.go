package centinela

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Service writes and reads centinela rows.
type Service struct {
	pool db.DBTX
}

// NewService constructs a Service. pool is used for the read path; writes go
// through the q handed to Registrar.
func NewService(pool db.DBTX) *Service {
	return &Service{pool: pool}
}

// Registrar appends one audit row, stamping it with the acting user and
// empresa from the request identity. Callers pass the transaction of the
// business mutation as q so that the mutation and its audit row commit or roll
// back together; a failed audit insert therefore aborts the whole operation.
func (s *Service) Registrar(ctx context.Context, q db.DBTX, accion, descripcion, menu, modulo string) (Entry, error) {
	if s == nil {
		return Entry{}, errors.New("centinela: service not initialised")
	}
	if accion == "" || menu == "" || modulo == "" {
		return Entry{}, errors.New("centinela: accion, menu y modulo son obligatorios")
	}

	entry := Entry{
		Fecha:       time.Now(),
		Modulo:      modulo,
		Menu:        menu,
		Accion:      accion,
		Descripcion: descripcion,
	}
	if ident := shared.IdentityFromContext(ctx); ident != nil {
		entry.IDUsuario = &ident.UserID
		entry.IDEmpresa = &ident.EmpresaID
	}

	err := q.QueryRow(ctx,
		`INSERT INTO centinela (fecha, id_usuario, id_empresa, modulo, menu, accion, descripcion)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		entry.Fecha, entry.IDUsuario, entry.IDEmpresa, entry.Modulo, entry.Menu, entry.Accion, entry.Descripcion,
	).Scan(&entry.ID)
	if err != nil {
		return Entry{}, fmt.Errorf("centinela: registrar: %w", err)
	}
	return entry, nil
}

// Listar returns the movimientos of one empresa within the date range,
// newest first, with the actor's name resolved. Rows of other empresas are
// never visible regardless of range.
func (s *Service) Listar(ctx context.Context, empresaID int64, desde, hasta time.Time) ([]Movimiento, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT c.fecha, c.modulo, c.menu, c.accion, c.descripcion, COALESCE(u.nombre, '') AS usuario
		 FROM centinela c
		 LEFT JOIN usuario u ON u.id = c.id_usuario
		 WHERE c.id_empresa = $1 AND c.fecha BETWEEN $2 AND $3
		 ORDER BY c.fecha DESC, c.id DESC`,
		empresaID, desde, hasta,
	)
	if err != nil {
		return nil, fmt.Errorf("centinela: listar: %w", err)
	}
	defer rows.Close()

	var movimientos []Movimiento
	for rows.Next() {
		var m Movimiento
		if err := rows.Scan(&m.Fecha, &m.Modulo, &m.Menu, &m.Accion, &m.Descripcion, &m.Usuario); err != nil {
			return nil, err
		}
		movimientos = append(movimientos, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movimientos, nil
}
