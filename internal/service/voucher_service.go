package service

import (
	"context"
	"errors"
	"strings"

	"isp-admin/internal/model"
	"isp-admin/pkg/apierror"
)

type VoucherStore interface {
	FindAll(ctx context.Context) ([]model.VoucherRecord, error)
	FindActive(ctx context.Context) ([]model.VoucherRecord, error)
	FindByID(ctx context.Context, id int64) (model.VoucherRecord, bool, error)
	FindByCode(ctx context.Context, code string) (model.VoucherRecord, bool, error)
	Create(ctx context.Context, data model.CreateVoucherData) (model.VoucherRecord, error)
	Update(ctx context.Context, id int64, data model.UpdateVoucherData) (model.VoucherRecord, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type VoucherService struct {
	store VoucherStore
}

func NewVoucherService(store VoucherStore) *VoucherService {
	return &VoucherService{store: store}
}

func (s *VoucherService) FindAll(ctx context.Context) ([]model.Voucher, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return vouchersFromRecords(records), nil
}

func (s *VoucherService) FindActive(ctx context.Context) ([]model.Voucher, error) {
	records, err := s.store.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return vouchersFromRecords(records), nil
}

func (s *VoucherService) FindByID(ctx context.Context, id int64) (model.Voucher, bool, error) {
	rec, found, err := s.store.FindByID(ctx, id)
	if err != nil || !found {
		return model.Voucher{}, found, err
	}
	return voucherFromRecord(rec), true, nil
}

func (s *VoucherService) Create(ctx context.Context, req model.CreateVoucherRequest) (model.Voucher, error) {
	if fields := validateVoucherCreate(req); len(fields) > 0 {
		return model.Voucher{}, apierror.Validation(fields...)
	}

	code := strings.TrimSpace(req.Code)
	available, err := s.isCodeAvailable(ctx, code, 0)
	if err != nil {
		return model.Voucher{}, err
	}
	if !available {
		return model.Voucher{}, duplicateCodeError()
	}

	rec, err := s.store.Create(ctx, model.CreateVoucherData{
		Code:     code,
		Duration: strings.TrimSpace(req.Duration),
		Price:    *req.Price,
		IsActive: req.IsActive,
	})
	if errors.Is(err, model.ErrDuplicateCode) {
		// Lost a race with a concurrent insert; the constraint is the
		// real arbiter, the pre-check above is only early validation.
		return model.Voucher{}, duplicateCodeError()
	}
	if err != nil {
		return model.Voucher{}, err
	}
	return voucherFromRecord(rec), nil
}

func (s *VoucherService) Update(ctx context.Context, id int64, req model.UpdateVoucherRequest) (model.Voucher, bool, error) {
	if fields := validateVoucherUpdate(req); len(fields) > 0 {
		return model.Voucher{}, false, apierror.Validation(fields...)
	}

	data := model.UpdateVoucherData{Price: req.Price, IsActive: req.IsActive}
	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		available, err := s.isCodeAvailable(ctx, code, id)
		if err != nil {
			return model.Voucher{}, false, err
		}
		if !available {
			return model.Voucher{}, false, duplicateCodeError()
		}
		data.Code = &code
	}
	if req.Duration != nil {
		data.Duration = trimmed(req.Duration)
	}

	rec, found, err := s.store.Update(ctx, id, data)
	if errors.Is(err, model.ErrDuplicateCode) {
		return model.Voucher{}, false, duplicateCodeError()
	}
	if err != nil || !found {
		return model.Voucher{}, found, err
	}
	return voucherFromRecord(rec), true, nil
}

func (s *VoucherService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}

// isCodeAvailable ignores the record being updated so an update may keep its
// own code.
func (s *VoucherService) isCodeAvailable(ctx context.Context, code string, excludeID int64) (bool, error) {
	existing, found, err := s.store.FindByCode(ctx, code)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}
	return existing.ID == excludeID, nil
}

func duplicateCodeError() *apierror.Error {
	return apierror.Conflict(apierror.FieldError{Field: "code", Message: "Voucher code already exists"})
}

func validateVoucherCreate(req model.CreateVoucherRequest) []apierror.FieldError {
	var fields []apierror.FieldError

	if strings.TrimSpace(req.Code) == "" {
		fields = append(fields, apierror.FieldError{Field: "code", Message: "Code is required"})
	}
	if strings.TrimSpace(req.Duration) == "" {
		fields = append(fields, apierror.FieldError{Field: "duration", Message: "Duration is required"})
	}
	fields = append(fields, validateRequiredPrice(req.Price)...)

	return fields
}

func validateVoucherUpdate(req model.UpdateVoucherRequest) []apierror.FieldError {
	var fields []apierror.FieldError

	if req.Code != nil && strings.TrimSpace(*req.Code) == "" {
		fields = append(fields, apierror.FieldError{Field: "code", Message: "Code cannot be empty"})
	}
	if req.Duration != nil && strings.TrimSpace(*req.Duration) == "" {
		fields = append(fields, apierror.FieldError{Field: "duration", Message: "Duration cannot be empty"})
	}
	if req.Price != nil {
		fields = append(fields, validatePrice(*req.Price)...)
	}

	return fields
}

func voucherFromRecord(rec model.VoucherRecord) model.Voucher {
	return model.Voucher{
		ID:        rec.ID,
		Code:      rec.Code,
		Duration:  rec.Duration,
		Price:     rec.Price,
		IsActive:  rec.IsActive == 1,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func vouchersFromRecords(records []model.VoucherRecord) []model.Voucher {
	out := make([]model.Voucher, 0, len(records))
	for _, rec := range records {
		out = append(out, voucherFromRecord(rec))
	}
	return out
}
