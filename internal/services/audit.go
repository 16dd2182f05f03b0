package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/blogpost-backend/internal/models"
	repo "github.com/baharkarakas/blogpost-backend/internal/repository"
	"github.com/baharkarakas/blogpost-backend/internal/worker"
)

// AuditTrail persists auth events through the worker pool so the request
// path never waits on, or fails because of, an audit write.
type AuditTrail struct {
	logs repo.AuditLogs
	pool *worker.Pool
}

func NewAuditTrail(logs repo.AuditLogs, pool *worker.Pool) *AuditTrail {
	return &AuditTrail{logs: logs, pool: pool}
}

func (a *AuditTrail) Record(entityType, entityID, action string, details map[string]any) {
	if a == nil {
		return
	}
	var eid *string
	if entityID != "" {
		eid = &entityID
	}
	a.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		l := models.AuditLog{EntityType: entityType, EntityID: eid, Action: action, Details: details}
		if err := a.logs.Create(ctx, l); err != nil {
			slog.Error("audit write", "action", action, "err", err)
		}
	})
}
