package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// digestTTL keeps a stale digest servable between scheduler runs.
const digestTTL = 15 * time.Minute

// Digest is the per-tenant dashboard summary cached in Redis.
type Digest struct {
	Estudiantes    int64  `json:"estudiantes"`
	Personal       int64  `json:"personal"`
	Incidencias    int64  `json:"incidencias"`
	MovimientosHoy int64  `json:"movimientos_hoy"`
	GeneradoEn     string `json:"generado_en"`
}

// DigestKey is the Redis key of one tenant's digest.
func DigestKey(empresaID int64) string {
	return fmt.Sprintf("coar:digest:%d", empresaID)
}

// DigestRefreshJob recomputes dashboard digests. Concurrent refreshes of the
// same tenant collapse into one computation.
type DigestRefreshJob struct {
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Logger *slog.Logger

	group singleflight.Group
	clock func() time.Time
}

// NewDigestRefreshJob wires dependencies for the digest handler.
func NewDigestRefreshJob(pool *pgxpool.Pool, rdb *redis.Client, logger *slog.Logger) *DigestRefreshJob {
	return &DigestRefreshJob{
		Pool:   pool,
		Redis:  rdb,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes digest:refresh tasks.
func (j *DigestRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("digest refresh: handler not configured")
	}
	var payload DigestRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()

	empresas := []int64{payload.IDEmpresa}
	if payload.IDEmpresa == 0 {
		var err error
		empresas, err = j.fetchEmpresas(ctx)
		if err != nil {
			logger.Error("load empresas", slog.Any("error", err))
			return err
		}
	}

	start := j.now()
	for _, empresaID := range empresas {
		if _, err := j.Refresh(ctx, empresaID); err != nil {
			logger.Error("refresh digest", slog.Int64("id_empresa", empresaID), slog.Any("error", err))
			return err
		}
	}

	logger.Info("digest refresh done",
		slog.Int("empresas", len(empresas)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Refresh recomputes and caches the digest of one tenant.
func (j *DigestRefreshJob) Refresh(ctx context.Context, empresaID int64) (Digest, error) {
	v, err, _ := j.group.Do(DigestKey(empresaID), func() (any, error) {
		return j.compute(ctx, empresaID)
	})
	if err != nil {
		return Digest{}, err
	}
	return v.(Digest), nil
}

// Load returns the cached digest of one tenant, computing it on a miss.
func (j *DigestRefreshJob) Load(ctx context.Context, empresaID int64) (Digest, error) {
	raw, err := j.Redis.Get(ctx, DigestKey(empresaID)).Bytes()
	if err == nil {
		var d Digest
		if err := json.Unmarshal(raw, &d); err == nil {
			return d, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return Digest{}, err
	}
	return j.Refresh(ctx, empresaID)
}

func (j *DigestRefreshJob) compute(ctx context.Context, empresaID int64) (Digest, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	d := Digest{GeneradoEn: j.now().Format(time.RFC3339)}

	row := j.Pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM estudiante
		    WHERE id_empresa = $1 AND condicion_estudiante <> 'ELIMINADO'),
		   (SELECT COUNT(*) FROM personal WHERE id_empresa = $1 AND estado = 1),
		   (SELECT COUNT(*) FROM incidencias WHERE id_empresa = $1),
		   (SELECT COUNT(*) FROM centinela
		    WHERE id_empresa = $1 AND fecha >= CURRENT_DATE)`, empresaID)
	if err := row.Scan(&d.Estudiantes, &d.Personal, &d.Incidencias, &d.MovimientosHoy); err != nil {
		return Digest{}, err
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return Digest{}, err
	}
	if err := j.Redis.Set(ctx, DigestKey(empresaID), raw, digestTTL).Err(); err != nil {
		return Digest{}, err
	}
	return d, nil
}

func (j *DigestRefreshJob) fetchEmpresas(ctx context.Context) ([]int64, error) {
	rows, err := j.Pool.Query(ctx, `SELECT id FROM empresa ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var empresas []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		empresas = append(empresas, id)
	}
	return empresas, rows.Err()
}

func (j *DigestRefreshJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDigestRefresh))
	}
	return slog.Default().With(slog.String("job", TaskDigestRefresh))
}

func (j *DigestRefreshJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
