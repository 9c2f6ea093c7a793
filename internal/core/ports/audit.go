package ports

import (
	"context"

	"github.com/clinicore/account-system/internal/core/domain"
)

// AuditRecorder appends entries to the identity audit trail. Recording is
// best-effort: failures are logged by the caller, never surfaced to users.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
