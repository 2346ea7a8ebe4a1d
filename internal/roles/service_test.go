package roles

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputPermisos(t *testing.T) {
	in := Input{
		Nombre: "MONITOR",
		Permisos: []PermisoInput{
			{Menu: "configuracion-area", View: true, Edit: true},
			{Menu: "operacion-incidencias", View: true, New: true},
		},
	}

	permisos := in.permisos()

	require.Len(t, permisos, 2)
	assert.Equal(t, Permiso{Menu: "configuracion-area", View: true, Edit: true}, permisos[0])
	assert.Equal(t, Permiso{Menu: "operacion-incidencias", View: true, New: true}, permisos[1])
}

func TestInputPermisosEmpty(t *testing.T) {
	permisos := Input{Nombre: "VACIO"}.permisos()

	require.NotNil(t, permisos)
	assert.Empty(t, permisos)
}

func TestInputValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	assert.NoError(t, validate.Struct(Input{
		Nombre:   "MONITOR",
		Permisos: []PermisoInput{{Menu: "configuracion-area", View: true}},
	}))

	err := validate.Struct(Input{Nombre: "MONITOR"})
	require.Error(t, err, "a role without grants must be rejected")

	err = validate.Struct(Input{
		Nombre:   "MONITOR",
		Permisos: []PermisoInput{{View: true}},
	})
	require.Error(t, err, "a grant row without menu must be rejected")
}
