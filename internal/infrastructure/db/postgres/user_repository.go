package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

const userColumns = "id, username, password_hash, real_name, phone, email, role, status, title, specialty, avatar, created_at"

// UserRepository is the account store.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, username))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `INSERT INTO users (username, password_hash, real_name, phone, email, role, status, title, specialty, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.RealName, user.Phone, user.Email,
		user.Role, user.Status, user.Title, user.Specialty, user.Avatar, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `UPDATE users
		SET password_hash = $2, real_name = $3, phone = $4, email = $5,
		    role = $6, status = $7, title = $8, specialty = $9, avatar = $10
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		user.ID, user.PasswordHash, user.RealName, user.Phone, user.Email,
		user.Role, user.Status, user.Title, user.Specialty, user.Avatar,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// List returns a page of users, most recently created first. Username and
// real name match as substrings, role matches exactly.
func (r *UserRepository) List(ctx context.Context, filter domain.UserFilter, page, pageSize int) (*domain.Page[domain.User], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	where := squirrel.And{}
	if filter.Username != "" {
		where = append(where, squirrel.ILike{"username": "%" + filter.Username + "%"})
	}
	if filter.RealName != "" {
		where = append(where, squirrel.ILike{"real_name": "%" + filter.RealName + "%"})
	}
	if filter.Role != nil {
		where = append(where, squirrel.Eq{"role": *filter.Role})
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	countQuery, countArgs, err := builder.Select("COUNT(1)").From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	query, args, err := builder.Select(userColumns).
		From("users").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	items := make([]domain.User, 0, pageSize)
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &domain.Page[domain.User]{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := scanUser(row, &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func scanUser(row pgx.Row, u *domain.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.RealName, &u.Phone, &u.Email,
		&u.Role, &u.Status, &u.Title, &u.Specialty, &u.Avatar, &u.CreatedAt,
	)
}
