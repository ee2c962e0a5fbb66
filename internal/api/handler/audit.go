package handler

import (
	"time"

	"github.com/colegio/school-system/internal/core/domain"
)

// AuditSink receives audit entries without blocking the request. A nil sink
// is valid and drops everything.
type AuditSink interface {
	Record(entry domain.AuditEntry)
}

// recordAudit enqueues an audit entry for a completed mutation or login.
func recordAudit(sink AuditSink, identity AuthContext, action, entity, entityID string) {
	if sink == nil {
		return
	}
	sink.Record(domain.AuditEntry{
		ActorID:  identity.ID,
		Role:     identity.Role,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		At:       time.Now().UTC(),
	})
}
