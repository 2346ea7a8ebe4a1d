// Package authz decides whether the current identity may perform an action on
// a menu. Every handler calls Check before touching data; the decision is a
// pure function of the stored permission rows at call time.
package authz

import "fmt"

// Action is one of the four permission facets a menu can grant. Each action is
// bound to a fixed column so a typo cannot silently deny everything.
type Action int

const (
	ActionView Action = iota
	ActionNew
	ActionEdit
	ActionDelete
)

// column returns the permiso table column backing the action.
func (a Action) column() string {
	switch a {
	case ActionView:
		return "can_view"
	case ActionNew:
		return "can_new"
	case ActionEdit:
		return "can_edit"
	case ActionDelete:
		return "can_delete"
	}
	return "can_view"
}

// Label returns the Spanish label the frontend shows in denial messages.
func (a Action) Label() string {
	switch a {
	case ActionView:
		return "VER"
	case ActionNew:
		return "NUEVO"
	case ActionEdit:
		return "EDITAR"
	case ActionDelete:
		return "ELIMINAR"
	}
	return "VER"
}

// String implements fmt.Stringer with the wire names used in permission JSON.
func (a Action) String() string {
	switch a {
	case ActionView:
		return "view"
	case ActionNew:
		return "new"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	}
	return "view"
}

// Denied is returned by Check when the identity lacks the grant. It carries
// everything needed to build the 401 response body.
type Denied struct {
	Menu   string
	Action Action
}

// Error implements error.
func (d *Denied) Error() string {
	return fmt.Sprintf("authz: permiso denegado para %s %s", d.Menu, d.Action.Label())
}

// Mensaje builds the user-facing denial text. The <strong> markup is part of
// the frontend contract; the SPA renders it inside a toast.
func (d *Denied) Mensaje() string {
	return fmt.Sprintf("No tienes permisos suficientes para <strong>%s</strong> %s", d.Menu, d.Action.Label())
}
