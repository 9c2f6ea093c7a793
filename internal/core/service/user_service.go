package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
	"github.com/clinicore/account-system/internal/pkg/password"
)

// UserService is the identity lifecycle orchestrator. It never caches
// identity state between calls; every operation re-reads from the account
// store before writing.
type UserService struct {
	users    ports.UserRepository
	uow      ports.UnitOfWork
	sessions ports.SessionAuthority
	audit    ports.AuditRecorder
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, uow ports.UnitOfWork, sessions ports.SessionAuthority, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{users: users, uow: uow, sessions: sessions, audit: audit, logger: logger}
}

// Login authenticates by username and password and issues a session token.
// Disabled accounts cannot authenticate even with correct credentials.
func (s *UserService) Login(ctx context.Context, username, pass string) (string, *domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.Enabled() {
		return "", nil, domain.ErrAccountDisabled
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", username).Int64("user_id", user.ID).Msg("login succeeded")
	s.record(ctx, domain.AuditEntry{Action: domain.AuditLogin, ActorID: user.ID, TargetID: user.ID, TargetName: username})
	return token, user, nil
}

// Logout invalidates the presented session. Unknown or expired tokens are
// not an error.
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}

// Register creates a self-service account with the patient role, enabled,
// together with its primary role association. The user row and the
// association commit or roll back as one unit.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	var created *domain.User
	err := s.uow.Do(ctx, func(repos ports.TxRepositories) error {
		user, err := s.createAccount(ctx, repos, accountSpec{
			Username: input.Username,
			Password: input.Password,
			RealName: input.RealName,
			Phone:    input.Phone,
			Email:    input.Email,
			Role:     domain.RoleUser,
		})
		if err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("user registered")
	s.record(ctx, domain.AuditEntry{Action: domain.AuditRegister, TargetID: created.ID, TargetName: created.Username})
	return created, nil
}

// RegisterPatient registers a patient account and its linked patient profile
// in the same transaction as the role association.
func (s *UserService) RegisterPatient(ctx context.Context, input ports.RegisterPatientInput) (*domain.User, error) {
	var created *domain.User
	err := s.uow.Do(ctx, func(repos ports.TxRepositories) error {
		user, err := s.createAccount(ctx, repos, accountSpec{
			Username: input.Username,
			Password: input.Password,
			RealName: input.RealName,
			Phone:    input.Phone,
			Email:    input.Email,
			Role:     domain.RoleUser,
			Patient: &domain.Patient{
				Name:   input.RealName,
				Gender: input.Gender,
				Age:    input.Age,
				Phone:  input.Phone,
			},
		})
		if err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("patient registered")
	s.record(ctx, domain.AuditEntry{Action: domain.AuditRegister, TargetID: created.ID, TargetName: created.Username, Detail: "patient"})
	return created, nil
}

// CreateUser is the administrative create: the role classifier is
// caller-supplied and stored as given. The association mapping is total, so
// out-of-range classifiers still get a ROLE_USER primary association.
func (s *UserService) CreateUser(ctx context.Context, callerID int64, input ports.CreateUserInput) (*domain.User, error) {
	var created *domain.User
	err := s.uow.Do(ctx, func(repos ports.TxRepositories) error {
		user, err := s.createAccount(ctx, repos, accountSpec{
			Username: input.Username,
			Password: input.Password,
			RealName: input.RealName,
			Phone:    input.Phone,
			Email:    input.Email,
			Role:     input.Role,
		})
		if err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Int64("user_id", created.ID).Int("role", created.Role).Msg("user created")
	s.record(ctx, domain.AuditEntry{Action: domain.AuditCreateUser, ActorID: callerID, TargetID: created.ID, TargetName: created.Username})
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, filter domain.UserFilter, page, pageSize int) (*domain.Page[domain.User], error) {
	return s.users.List(ctx, filter, page, pageSize)
}

// UpdateUser overwrites identity fields on an existing user. A role change
// here rewrites only the classifier on the user row, not the role
// association created at account-creation time.
func (s *UserService) UpdateUser(ctx context.Context, callerID, targetID int64, input ports.UpdateUserInput) error {
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	user.RealName = input.RealName
	user.Phone = input.Phone
	user.Email = input.Email
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.record(ctx, domain.AuditEntry{Action: domain.AuditUpdateUser, ActorID: callerID, TargetID: targetID, TargetName: user.Username})
	return nil
}

// UpdateProfile overwrites profile fields on the caller's own record.
func (s *UserService) UpdateProfile(ctx context.Context, callerID int64, input ports.UpdateProfileInput) error {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return err
	}

	user.RealName = input.RealName
	user.Phone = input.Phone
	user.Email = input.Email
	user.Title = input.Title
	user.Specialty = input.Specialty
	user.Avatar = input.Avatar

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.record(ctx, domain.AuditEntry{Action: domain.AuditUpdateProfile, ActorID: callerID, TargetID: callerID, TargetName: user.Username})
	return nil
}

// DeleteUser removes an account. Deleting the caller's own account is
// forbidden. Dependent rows are left to the store's referential policy.
func (s *UserService) DeleteUser(ctx context.Context, callerID, targetID int64) error {
	if callerID == targetID {
		return domain.ErrSelfDeleteForbidden
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	s.record(ctx, domain.AuditEntry{Action: domain.AuditDeleteUser, ActorID: callerID, TargetID: targetID})
	return nil
}

// ResetPassword stores a new password for any account without checking the
// old one. Existing sessions stay valid.
func (s *UserService) ResetPassword(ctx context.Context, callerID, targetID int64, newPassword string) error {
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.record(ctx, domain.AuditEntry{Action: domain.AuditResetPassword, ActorID: callerID, TargetID: targetID, TargetName: user.Username})
	return nil
}

// ChangePassword replaces the caller's password after verifying the old one.
// Existing sessions stay valid.
func (s *UserService) ChangePassword(ctx context.Context, callerID int64, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return err
	}

	if !password.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrWrongOldPassword
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.record(ctx, domain.AuditEntry{Action: domain.AuditChangePassword, ActorID: callerID, TargetID: callerID, TargetName: user.Username})
	return nil
}

// UpdateStatus enables or disables an account. Disabling the caller's own
// account is forbidden; re-enabling it is allowed.
func (s *UserService) UpdateStatus(ctx context.Context, callerID, targetID int64, status int) error {
	if callerID == targetID && status == domain.StatusDisabled {
		return domain.ErrSelfDisableForbidden
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	user.Status = status

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.record(ctx, domain.AuditEntry{Action: domain.AuditUpdateStatus, ActorID: callerID, TargetID: targetID, TargetName: user.Username, Detail: fmt.Sprintf("status=%d", status)})
	return nil
}

// accountSpec is the shared shape of the three account-creation paths.
type accountSpec struct {
	Username string
	Password string
	RealName string
	Phone    string
	Email    string
	Role     int
	Patient  *domain.Patient
}

// createAccount runs inside a unit of work: duplicate pre-check, user insert,
// optional patient profile, primary role association. The store's unique
// constraint on username remains the duplicate authority; the pre-check only
// fails fast.
func (s *UserService) createAccount(ctx context.Context, repos ports.TxRepositories, spec accountSpec) (*domain.User, error) {
	if _, err := repos.Users.FindByUsername(ctx, spec.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := password.Hash(spec.Password)
	if err != nil {
		return nil, err
	}

	user, err := repos.Users.Create(ctx, &domain.User{
		Username:     spec.Username,
		PasswordHash: hash,
		RealName:     spec.RealName,
		Phone:        spec.Phone,
		Email:        spec.Email,
		Role:         spec.Role,
		Status:       domain.StatusEnabled,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if spec.Patient != nil {
		patient := *spec.Patient
		patient.PatientNo = generatePatientNo()
		patient.UserID = user.ID
		if err := repos.Patients.Create(ctx, &patient); err != nil {
			return nil, err
		}
	}

	if err := s.createRoleAssociation(ctx, repos, user.ID, user.Role); err != nil {
		return nil, err
	}
	return user, nil
}

// createRoleAssociation resolves the classifier's role code and links the
// user to it as the primary role. A missing role is a deployment defect, not
// user input, so it is logged at error level before failing the transaction.
func (s *UserService) createRoleAssociation(ctx context.Context, repos ports.TxRepositories, userID int64, roleClassifier int) error {
	code := domain.RoleCodeFor(roleClassifier)

	role, err := repos.Roles.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotConfigured) {
			s.logger.Error().Str("role_code", code).Int64("user_id", userID).Msg("role not configured")
		}
		return err
	}

	return repos.UserRoles.Create(ctx, &domain.UserRole{
		UserID:    userID,
		RoleID:    role.ID,
		IsPrimary: true,
	})
}

// generatePatientNo builds a best-effort unique patient number: a literal
// prefix, the current unix milliseconds, and four uppercase characters of a
// random UUID. Uniqueness is not checked against existing records.
func generatePatientNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("P%d%s", time.Now().UnixMilli(), suffix)
}

// record appends to the audit trail. Audit failures never fail the operation.
func (s *UserService) record(ctx context.Context, entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.OccurredAt = time.Now().UTC()
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("action", entry.Action).Msg("audit record failed")
	}
}
