package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"isp-admin/internal/model"
)

const adminColumns = `id, username, password_hash, role, created_at`

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (model.AdminRecord, bool, error) {
	rec, err := scanAdmin(r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE username = $1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AdminRecord{}, false, nil
	}
	if err != nil {
		return model.AdminRecord{}, false, fmt.Errorf("find admin by username: %w", err)
	}
	return rec, true, nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id int64) (model.AdminRecord, bool, error) {
	rec, err := scanAdmin(r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AdminRecord{}, false, nil
	}
	if err != nil {
		return model.AdminRecord{}, false, fmt.Errorf("find admin by id: %w", err)
	}
	return rec, true, nil
}

func (r *AdminRepository) Create(ctx context.Context, username string, passwordHash string, role string) (model.AdminRecord, error) {
	if role == "" {
		role = "admin"
	}

	rec, err := scanAdmin(r.pool.QueryRow(ctx,
		`INSERT INTO admins (username, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING `+adminColumns,
		username, passwordHash, role))
	if isUniqueViolation(err) {
		return model.AdminRecord{}, model.ErrDuplicateUsername
	}
	if err != nil {
		return model.AdminRecord{}, fmt.Errorf("create admin: %w", err)
	}
	return rec, nil
}

func scanAdmin(row pgx.Row) (model.AdminRecord, error) {
	var rec model.AdminRecord
	err := row.Scan(&rec.ID, &rec.Username, &rec.PasswordHash, &rec.Role, &rec.CreatedAt)
	return rec, err
}
