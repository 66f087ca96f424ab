package handler

import (
	"context"
	"sort"
	"time"

	"isp-admin/internal/model"
)

// In-memory stands-ins for the pgx repositories, honoring the same contract:
// not-found is a plain false, duplicate voucher codes surface ErrDuplicateCode,
// empty patches do not bump updated_at.

type memPackageStore struct {
	nextID  int64
	records []model.PackageRecord
}

func (f *memPackageStore) FindAll(_ context.Context) ([]model.PackageRecord, error) {
	out := make([]model.PackageRecord, 0, len(f.records))
	for i := len(f.records) - 1; i >= 0; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *memPackageStore) FindActive(_ context.Context) ([]model.PackageRecord, error) {
	out := make([]model.PackageRecord, 0)
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].IsActive == 1 {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *memPackageStore) FindByID(_ context.Context, id int64) (model.PackageRecord, bool, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, true, nil
		}
	}
	return model.PackageRecord{}, false, nil
}

func (f *memPackageStore) Create(_ context.Context, data model.CreatePackageData) (model.PackageRecord, error) {
	f.nextID++
	isActive := 1
	if data.IsActive != nil && !*data.IsActive {
		isActive = 0
	}
	now := time.Now().UTC()
	rec := model.PackageRecord{
		ID:          f.nextID,
		Name:        data.Name,
		Speed:       data.Speed,
		Price:       data.Price,
		Description: data.Description,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *memPackageStore) Update(ctx context.Context, id int64, data model.UpdatePackageData) (model.PackageRecord, bool, error) {
	if data.Empty() {
		return f.FindByID(ctx, id)
	}
	for i, rec := range f.records {
		if rec.ID != id {
			continue
		}
		if data.Name != nil {
			rec.Name = *data.Name
		}
		if data.Speed != nil {
			rec.Speed = *data.Speed
		}
		if data.Price != nil {
			rec.Price = *data.Price
		}
		if data.Description != nil {
			if *data.Description == "" {
				rec.Description = nil
			} else {
				desc := *data.Description
				rec.Description = &desc
			}
		}
		if data.IsActive != nil {
			rec.IsActive = 0
			if *data.IsActive {
				rec.IsActive = 1
			}
		}
		rec.UpdatedAt = time.Now().UTC()
		f.records[i] = rec
		return rec, true, nil
	}
	return model.PackageRecord{}, false, nil
}

func (f *memPackageStore) Delete(_ context.Context, id int64) (bool, error) {
	for i, rec := range f.records {
		if rec.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memVoucherStore struct {
	nextID  int64
	records []model.VoucherRecord
}

func (f *memVoucherStore) FindAll(_ context.Context) ([]model.VoucherRecord, error) {
	out := make([]model.VoucherRecord, 0, len(f.records))
	for i := len(f.records) - 1; i >= 0; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *memVoucherStore) FindActive(_ context.Context) ([]model.VoucherRecord, error) {
	out := make([]model.VoucherRecord, 0)
	for _, rec := range f.records {
		if rec.IsActive == 1 {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (f *memVoucherStore) FindByID(_ context.Context, id int64) (model.VoucherRecord, bool, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, true, nil
		}
	}
	return model.VoucherRecord{}, false, nil
}

func (f *memVoucherStore) FindByCode(_ context.Context, code string) (model.VoucherRecord, bool, error) {
	for _, rec := range f.records {
		if rec.Code == code {
			return rec, true, nil
		}
	}
	return model.VoucherRecord{}, false, nil
}

func (f *memVoucherStore) Create(ctx context.Context, data model.CreateVoucherData) (model.VoucherRecord, error) {
	if _, found, _ := f.FindByCode(ctx, data.Code); found {
		return model.VoucherRecord{}, model.ErrDuplicateCode
	}
	f.nextID++
	isActive := 1
	if data.IsActive != nil && !*data.IsActive {
		isActive = 0
	}
	now := time.Now().UTC()
	rec := model.VoucherRecord{
		ID:        f.nextID,
		Code:      data.Code,
		Duration:  data.Duration,
		Price:     data.Price,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *memVoucherStore) Update(ctx context.Context, id int64, data model.UpdateVoucherData) (model.VoucherRecord, bool, error) {
	if data.Empty() {
		return f.FindByID(ctx, id)
	}
	for i, rec := range f.records {
		if rec.ID != id {
			continue
		}
		if data.Code != nil {
			if existing, found, _ := f.FindByCode(ctx, *data.Code); found && existing.ID != id {
				return model.VoucherRecord{}, false, model.ErrDuplicateCode
			}
			rec.Code = *data.Code
		}
		if data.Duration != nil {
			rec.Duration = *data.Duration
		}
		if data.Price != nil {
			rec.Price = *data.Price
		}
		if data.IsActive != nil {
			rec.IsActive = 0
			if *data.IsActive {
				rec.IsActive = 1
			}
		}
		rec.UpdatedAt = time.Now().UTC()
		f.records[i] = rec
		return rec, true, nil
	}
	return model.VoucherRecord{}, false, nil
}

func (f *memVoucherStore) Delete(_ context.Context, id int64) (bool, error) {
	for i, rec := range f.records {
		if rec.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memAdminStore struct {
	admins []model.AdminRecord
}

func (f *memAdminStore) FindByUsername(_ context.Context, username string) (model.AdminRecord, bool, error) {
	for _, admin := range f.admins {
		if admin.Username == username {
			return admin, true, nil
		}
	}
	return model.AdminRecord{}, false, nil
}

func f64Ptr(v float64) *float64 { return &v }
func strPtr(s string) *string   { return &s }
func boolPtr(v bool) *bool      { return &v }
