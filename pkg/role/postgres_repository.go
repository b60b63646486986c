package role

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/academy-idm/pkg/errors"
)

// PostgresRoleRepository implements RoleRepository using PostgreSQL
type PostgresRoleRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRoleRepository creates a new PostgreSQL role repository
func NewPostgresRoleRepository(db *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{
		db: db,
	}
}

// FindRoles returns all roles ordered by name
func (r *PostgresRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(description, '') FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRoleById retrieves a role by ID
func (r *PostgresRoleRepository) GetRoleById(ctx context.Context, id string) (Role, error) {
	var role Role
	err := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, '') FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return Role{}, errors.RoleNotFound(id)
		}
		return Role{}, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// GetRoleByName retrieves a role by name, case-insensitively
func (r *PostgresRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	var role Role
	err := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, '') FROM roles WHERE lower(name) = lower($1)`, name).
		Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return Role{}, errors.RoleNotFound(name)
		}
		return Role{}, fmt.Errorf("failed to get role by name: %w", err)
	}
	return role, nil
}

// CreateRole creates a new role. The unique index on name is the
// authoritative uniqueness guard.
func (r *PostgresRoleRepository) CreateRole(ctx context.Context, role Role) (string, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO roles (id, name, description) VALUES ($1, $2, $3)`,
		role.ID, role.Name, role.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", errors.Newf(errors.ErrCodeConflict, "role name already exists: %s", role.Name)
		}
		return "", fmt.Errorf("failed to create role: %w", err)
	}
	return role.ID, nil
}
