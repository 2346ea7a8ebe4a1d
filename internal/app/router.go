package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/coarapp/coar/internal/auth"
	"github.com/coarapp/coar/internal/catalogos/areas"
	"github.com/coarapp/coar/internal/catalogos/estadosmonitoreo"
	"github.com/coarapp/coar/internal/catalogos/lugares"
	"github.com/coarapp/coar/internal/catalogos/tipopersonal"
	"github.com/coarapp/coar/internal/catalogos/tiposincidencia"
	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/empresa"
	"github.com/coarapp/coar/internal/estudiantes"
	"github.com/coarapp/coar/internal/incidencias"
	"github.com/coarapp/coar/internal/observability"
	"github.com/coarapp/coar/internal/personal"
	"github.com/coarapp/coar/internal/roles"
	"github.com/coarapp/coar/internal/selects"
	"github.com/coarapp/coar/internal/usuarios"
	"github.com/coarapp/coar/jobs"
)

// RouterParams groups the handlers mounted on the API router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Auth    func(http.Handler) http.Handler
	Metrics *observability.Metrics

	AuthHandler            *auth.Handler
	AreasHandler           *areas.Handler
	LugaresHandler         *lugares.Handler
	TiposIncidenciaHandler *tiposincidencia.Handler
	EstadosMonitoreo       *estadosmonitoreo.Handler
	TipoPersonalHandler    *tipopersonal.Handler
	PersonalHandler        *personal.Handler
	RolesHandler           *roles.Handler
	EmpresaHandler         *empresa.Handler
	UsuariosHandler        *usuarios.Handler
	EstudiantesHandler     *estudiantes.Handler
	SelectsHandler         *selects.Handler
	IncidenciasHandler     *incidencias.Handler
	ReportesHandler        *centinela.Handler
	DashboardHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with the full API surface.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Auth:    params.Auth,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Route("/configuracion", func(r chi.Router) {
			r.Route("/areas", params.AreasHandler.MountRoutes)
			r.Route("/lugares", params.LugaresHandler.MountRoutes)
			r.Route("/tipos-incidencia", params.TiposIncidenciaHandler.MountRoutes)
			r.Route("/estado-monitoreo", params.EstadosMonitoreo.MountRoutes)
			r.Route("/tipo-personal", params.TipoPersonalHandler.MountRoutes)
			r.Route("/personal", params.PersonalHandler.MountRoutes)
			r.Route("/rol", params.RolesHandler.MountRoutes)
			r.Route("/empresa", params.EmpresaHandler.MountRoutes)
			r.Route("/usuario", params.UsuariosHandler.MountRoutes)
			r.Route("/estudiante", params.EstudiantesHandler.MountRoutes)
			r.Route("/selects", params.SelectsHandler.MountRoutes)
		})

		r.Route("/operacion", func(r chi.Router) {
			r.Route("/incidencias", params.IncidenciasHandler.MountRoutes)
		})

		r.Route("/reportes", params.ReportesHandler.MountRoutes)

		if params.DashboardHandler != nil {
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
