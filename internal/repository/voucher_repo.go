package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"isp-admin/internal/model"
)

const voucherColumns = `id, code, duration, price, is_active, created_at, updated_at`

// SQLSTATE for unique constraint violations.
const uniqueViolationCode = "23505"

type VoucherRepository struct {
	pool *pgxpool.Pool
}

func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

func (r *VoucherRepository) FindAll(ctx context.Context) ([]model.VoucherRecord, error) {
	return r.query(ctx, `SELECT `+voucherColumns+` FROM vouchers ORDER BY id DESC`)
}

func (r *VoucherRepository) FindActive(ctx context.Context) ([]model.VoucherRecord, error) {
	return r.query(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE is_active = 1 ORDER BY price ASC`)
}

func (r *VoucherRepository) FindByID(ctx context.Context, id int64) (model.VoucherRecord, bool, error) {
	rec, err := scanVoucher(r.pool.QueryRow(ctx,
		`SELECT `+voucherColumns+` FROM vouchers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.VoucherRecord{}, false, nil
	}
	if err != nil {
		return model.VoucherRecord{}, false, fmt.Errorf("find voucher by id: %w", err)
	}
	return rec, true, nil
}

// FindByCode matches the code exactly as stored (case-sensitive).
func (r *VoucherRepository) FindByCode(ctx context.Context, code string) (model.VoucherRecord, bool, error) {
	rec, err := scanVoucher(r.pool.QueryRow(ctx,
		`SELECT `+voucherColumns+` FROM vouchers WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.VoucherRecord{}, false, nil
	}
	if err != nil {
		return model.VoucherRecord{}, false, fmt.Errorf("find voucher by code: %w", err)
	}
	return rec, true, nil
}

// Create relies on the UNIQUE(code) constraint for atomicity: when two
// inserts race on the same code, exactly one succeeds and the other comes
// back as ErrDuplicateCode.
func (r *VoucherRepository) Create(ctx context.Context, data model.CreateVoucherData) (model.VoucherRecord, error) {
	isActive := 1
	if data.IsActive != nil && !*data.IsActive {
		isActive = 0
	}

	rec, err := scanVoucher(r.pool.QueryRow(ctx,
		`INSERT INTO vouchers (code, duration, price, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+voucherColumns,
		data.Code, data.Duration, data.Price, isActive))
	if isUniqueViolation(err) {
		return model.VoucherRecord{}, model.ErrDuplicateCode
	}
	if err != nil {
		return model.VoucherRecord{}, fmt.Errorf("create voucher: %w", err)
	}
	return rec, nil
}

// Update applies a sparse patch. An entirely empty patch returns the current
// record without touching updated_at; any other patch refreshes it.
func (r *VoucherRepository) Update(ctx context.Context, id int64, data model.UpdateVoucherData) (model.VoucherRecord, bool, error) {
	if data.Empty() {
		return r.FindByID(ctx, id)
	}

	sets, args := buildVoucherPatch(id, data)
	query := fmt.Sprintf(`UPDATE vouchers SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), voucherColumns)

	rec, err := scanVoucher(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.VoucherRecord{}, false, nil
	}
	if isUniqueViolation(err) {
		return model.VoucherRecord{}, false, model.ErrDuplicateCode
	}
	if err != nil {
		return model.VoucherRecord{}, false, fmt.Errorf("update voucher: %w", err)
	}
	return rec, true, nil
}

func (r *VoucherRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete voucher: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func buildVoucherPatch(id int64, data model.UpdateVoucherData) ([]string, []any) {
	sets := make([]string, 0, 5)
	args := []any{id}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if data.Code != nil {
		add("code", *data.Code)
	}
	if data.Duration != nil {
		add("duration", *data.Duration)
	}
	if data.Price != nil {
		add("price", *data.Price)
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

func (r *VoucherRepository) query(ctx context.Context, sql string) ([]model.VoucherRecord, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query vouchers: %w", err)
	}
	defer rows.Close()

	records := make([]model.VoucherRecord, 0)
	for rows.Next() {
		rec, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan voucher: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanVoucher(row pgx.Row) (model.VoucherRecord, error) {
	var rec model.VoucherRecord
	err := row.Scan(&rec.ID, &rec.Code, &rec.Duration, &rec.Price,
		&rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
