package ports

import "context"

// TxRepositories groups the repositories participating in one transaction.
type TxRepositories struct {
	Users     UserRepository
	Roles     RoleRepository
	UserRoles UserRoleRepository
	Patients  PatientRepository
}

// UnitOfWork runs fn against transaction-scoped repositories. If fn returns
// an error every write inside it is rolled back; otherwise all writes commit
// together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos TxRepositories) error) error
}
