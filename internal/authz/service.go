package authz

import (
	"context"
	"fmt"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Repository answers permission existence queries.
type Repository interface {
	HasPermission(ctx context.Context, rolID int64, menu string, action Action) (bool, error)
}

// PGRepository implements Repository over the permiso table.
type PGRepository struct {
	db db.DBTX
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(q db.DBTX) *PGRepository {
	return &PGRepository{db: q}
}

// HasPermission reports whether a permiso row grants the action for the menu.
// An unknown menu simply matches no row.
func (r *PGRepository) HasPermission(ctx context.Context, rolID int64, menu string, action Action) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM permiso WHERE id_rol = $1 AND menu = $2 AND %s)`, action.column())

	var ok bool
	if err := r.db.QueryRow(ctx, query, rolID, menu).Scan(&ok); err != nil {
		return false, fmt.Errorf("authz: has permission: %w", err)
	}
	return ok, nil
}

var _ Repository = (*PGRepository)(nil)

// Checker is the single authorization decision point. It holds no state beyond
// the repository; every call re-queries the current permission rows.
type Checker struct {
	repo Repository
}

// NewChecker constructs a Checker.
func NewChecker(repo Repository) *Checker {
	return &Checker{repo: repo}
}

// Check allows or denies the action on the menu for the identity carried in
// ctx. Super administrators and super users are allowed without a lookup. A
// missing identity, a missing role and a missing grant all return *Denied;
// only repository failures return a different error.
func (c *Checker) Check(ctx context.Context, menu string, action Action) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return &Denied{Menu: menu, Action: action}
	}
	if ident.IsSuper() {
		return nil
	}
	if ident.RolID == nil {
		return &Denied{Menu: menu, Action: action}
	}

	ok, err := c.repo.HasPermission(ctx, *ident.RolID, menu, action)
	if err != nil {
		return err
	}
	if !ok {
		return &Denied{Menu: menu, Action: action}
	}
	return nil
}

// Has is the non-throwing variant used to filter navigation menus. Lookup
// failures count as "no permission".
func (c *Checker) Has(ctx context.Context, menu string, action Action) bool {
	return c.Check(ctx, menu, action) == nil
}
