package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vfg2006/margin-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-dashboard-api/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

var userColumns = []string{"id", "tenant_id", "name", "email", "password_hash", "active", "role_id", "created_at", "updated_at"}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := psql.
		Insert(usersTable).
		Columns("id", "tenant_id", "name", "email", "password_hash", "active", "role_id").
		Values(user.ID, user.TenantID, user.Name, user.Email, user.PasswordHash, user.Active, user.RoleID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, dbError("criar usuário", err)
	}

	return user, nil
}

// GetUserByEmail retorna nil sem erro quando o e-mail não existe
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.getBy(ctx, "email", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getBy(ctx, "id", userID)
}

func (r *userRepository) getBy(ctx context.Context, column string, value string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(usersTable).
		Where(column+" = ?", value).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var user domain.User
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.TenantID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, dbError("buscar usuário", err)
	}

	return &user, nil
}
