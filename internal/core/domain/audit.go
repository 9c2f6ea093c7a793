package domain

import "time"

// Audit actions recorded for identity operations.
const (
	AuditLogin          = "login"
	AuditLogout         = "logout"
	AuditRegister       = "register"
	AuditCreateUser     = "create_user"
	AuditUpdateUser     = "update_user"
	AuditUpdateProfile  = "update_profile"
	AuditDeleteUser     = "delete_user"
	AuditResetPassword  = "reset_password"
	AuditChangePassword = "change_password"
	AuditUpdateStatus   = "update_status"
)

// AuditEntry is one record in the identity audit trail. ActorID is zero for
// unauthenticated flows (login, self-registration).
type AuditEntry struct {
	Action     string    `json:"action"`
	ActorID    int64     `json:"actor_id,omitempty"`
	TargetID   int64     `json:"target_id,omitempty"`
	TargetName string    `json:"target_name,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
