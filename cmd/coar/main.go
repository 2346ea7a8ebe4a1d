package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coarapp/coar/internal/app"
	"github.com/coarapp/coar/internal/auth"
	"github.com/coarapp/coar/internal/authz"
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
	"github.com/coarapp/coar/internal/platform/cache"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/roles"
	"github.com/coarapp/coar/internal/selects"
	"github.com/coarapp/coar/internal/shared"
	"github.com/coarapp/coar/internal/usuarios"
	"github.com/coarapp/coar/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens := shared.NewTokenStore(redisClient, cfg.TokenTTL)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, tokens)

	checker := authz.NewChecker(authz.NewRepository(pool))
	audit := centinela.NewService(pool)

	areasHandler := areas.NewHandler(logger, areas.NewService(pool, areas.NewRepository(), audit), checker)
	lugaresHandler := lugares.NewHandler(logger, lugares.NewService(pool, lugares.NewRepository(), audit), checker)
	tiposIncidenciaHandler := tiposincidencia.NewHandler(logger, tiposincidencia.NewService(pool, tiposincidencia.NewRepository(), audit), checker)
	estadosMonitoreoHandler := estadosmonitoreo.NewHandler(logger, estadosmonitoreo.NewService(pool, estadosmonitoreo.NewRepository(), audit), checker)
	tipoPersonalHandler := tipopersonal.NewHandler(logger, tipopersonal.NewService(pool, tipopersonal.NewRepository(), audit), checker)
	personalHandler := personal.NewHandler(logger, personal.NewService(pool, personal.NewRepository(), audit), checker)
	rolesHandler := roles.NewHandler(logger, roles.NewService(pool, roles.NewRepository(), audit), checker)
	empresaHandler := empresa.NewHandler(logger, empresa.NewService(pool, empresa.NewRepository(), audit), checker)
	usuariosHandler := usuarios.NewHandler(logger, usuarios.NewService(pool, usuarios.NewRepository(), audit), checker)
	estudiantesHandler := estudiantes.NewHandler(logger, estudiantes.NewService(pool, estudiantes.NewRepository(), audit), checker)
	selectsHandler := selects.NewHandler(logger, pool, selects.NewRepository())
	incidenciasHandler := incidencias.NewHandler(logger, incidencias.NewService(pool, incidencias.NewRepository(), audit), checker)
	reportesHandler := centinela.NewHandler(logger, audit, checker)

	digestJob := jobs.NewDigestRefreshJob(pool, redisClient, logger)
	dashboardHandler := jobs.NewHandler(digestJob, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:  logger,
		Config:  cfg,
		Auth:    auth.Middleware(tokens, authRepo, logger),
		Metrics: metrics,

		AuthHandler:            authHandler,
		AreasHandler:           areasHandler,
		LugaresHandler:         lugaresHandler,
		TiposIncidenciaHandler: tiposIncidenciaHandler,
		EstadosMonitoreo:       estadosMonitoreoHandler,
		TipoPersonalHandler:    tipoPersonalHandler,
		PersonalHandler:        personalHandler,
		RolesHandler:           rolesHandler,
		EmpresaHandler:         empresaHandler,
		UsuariosHandler:        usuariosHandler,
		EstudiantesHandler:     estudiantesHandler,
		SelectsHandler:         selectsHandler,
		IncidenciasHandler:     incidenciasHandler,
		ReportesHandler:        reportesHandler,
		DashboardHandler:       dashboardHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
