package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"isp-admin/internal/model"
)

const packageColumns = `id, name, speed, price, description, is_active, created_at, updated_at`

type PackageRepository struct {
	pool *pgxpool.Pool
}

func NewPackageRepository(pool *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{pool: pool}
}

func (r *PackageRepository) FindAll(ctx context.Context) ([]model.PackageRecord, error) {
	return r.query(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY id DESC`)
}

func (r *PackageRepository) FindActive(ctx context.Context) ([]model.PackageRecord, error) {
	return r.query(ctx, `SELECT `+packageColumns+` FROM packages WHERE is_active = 1 ORDER BY id DESC`)
}

func (r *PackageRepository) FindByID(ctx context.Context, id int64) (model.PackageRecord, bool, error) {
	rec, err := scanPackage(r.pool.QueryRow(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PackageRecord{}, false, nil
	}
	if err != nil {
		return model.PackageRecord{}, false, fmt.Errorf("find package by id: %w", err)
	}
	return rec, true, nil
}

func (r *PackageRepository) Create(ctx context.Context, data model.CreatePackageData) (model.PackageRecord, error) {
	isActive := 1
	if data.IsActive != nil && !*data.IsActive {
		isActive = 0
	}

	rec, err := scanPackage(r.pool.QueryRow(ctx,
		`INSERT INTO packages (name, speed, price, description, is_active)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		 RETURNING `+packageColumns,
		data.Name, data.Speed, data.Price, deref(data.Description), isActive))
	if err != nil {
		return model.PackageRecord{}, fmt.Errorf("create package: %w", err)
	}
	return rec, nil
}

// Update applies a sparse patch. An entirely empty patch returns the current
// record without touching updated_at; any other patch refreshes it.
func (r *PackageRepository) Update(ctx context.Context, id int64, data model.UpdatePackageData) (model.PackageRecord, bool, error) {
	if data.Empty() {
		return r.FindByID(ctx, id)
	}

	sets, args := buildPackagePatch(id, data)
	query := fmt.Sprintf(`UPDATE packages SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), packageColumns)

	rec, err := scanPackage(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PackageRecord{}, false, nil
	}
	if err != nil {
		return model.PackageRecord{}, false, fmt.Errorf("update package: %w", err)
	}
	return rec, true, nil
}

func (r *PackageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete package: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func buildPackagePatch(id int64, data model.UpdatePackageData) ([]string, []any) {
	sets := make([]string, 0, 6)
	args := []any{id}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if data.Name != nil {
		add("name", *data.Name)
	}
	if data.Speed != nil {
		add("speed", *data.Speed)
	}
	if data.Price != nil {
		add("price", *data.Price)
	}
	if data.Description != nil {
		args = append(args, *data.Description)
		sets = append(sets, fmt.Sprintf("description = NULLIF($%d, '')", len(args)))
	}
	if data.IsActive != nil {
		active := 0
		if *data.IsActive {
			active = 1
		}
		add("is_active", active)
	}

	sets = append(sets, "updated_at = now()")
	return sets, args
}

func (r *PackageRepository) query(ctx context.Context, sql string) ([]model.PackageRecord, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query packages: %w", err)
	}
	defer rows.Close()

	records := make([]model.PackageRecord, 0)
	for rows.Next() {
		rec, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanPackage(row pgx.Row) (model.PackageRecord, error) {
	var rec model.PackageRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Speed, &rec.Price, &rec.Description,
		&rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
