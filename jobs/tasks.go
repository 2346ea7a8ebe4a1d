// Package jobs contains the background work of the service: the asynq
// worker, its tasks and the dashboard digest they maintain.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDigestRefresh recomputes the per-tenant dashboard digest.
	TaskDigestRefresh = "digest:refresh"
)

// DigestRefreshPayload selects the tenant to refresh. A zero IDEmpresa
// refreshes every tenant.
type DigestRefreshPayload struct {
	IDEmpresa int64 `json:"id_empresa"`
}

// NewDigestRefreshTask constructs the asynq task for a digest refresh.
func NewDigestRefreshTask(payload DigestRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDigestRefresh, data), nil
}
