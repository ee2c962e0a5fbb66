package ports

import (
	"context"

	"github.com/colegio/school-system/internal/core/domain"
)

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}
