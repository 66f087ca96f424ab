package service

import (
	"context"
	"math"
	"strings"

	"isp-admin/internal/model"
	"isp-admin/pkg/apierror"
)

// PackageStore is the persistence contract the service needs. Not-found is a
// plain false, never an error.
type PackageStore interface {
	FindAll(ctx context.Context) ([]model.PackageRecord, error)
	FindActive(ctx context.Context) ([]model.PackageRecord, error)
	FindByID(ctx context.Context, id int64) (model.PackageRecord, bool, error)
	Create(ctx context.Context, data model.CreatePackageData) (model.PackageRecord, error)
	Update(ctx context.Context, id int64, data model.UpdatePackageData) (model.PackageRecord, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PackageService struct {
	store PackageStore
}

func NewPackageService(store PackageStore) *PackageService {
	return &PackageService{store: store}
}

func (s *PackageService) FindAll(ctx context.Context) ([]model.Package, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return packagesFromRecords(records), nil
}

func (s *PackageService) FindActive(ctx context.Context) ([]model.Package, error) {
	records, err := s.store.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return packagesFromRecords(records), nil
}

func (s *PackageService) FindByID(ctx context.Context, id int64) (model.Package, bool, error) {
	rec, found, err := s.store.FindByID(ctx, id)
	if err != nil || !found {
		return model.Package{}, found, err
	}
	return packageFromRecord(rec), true, nil
}

func (s *PackageService) Create(ctx context.Context, req model.CreatePackageRequest) (model.Package, error) {
	if fields := validatePackageCreate(req); len(fields) > 0 {
		return model.Package{}, apierror.Validation(fields...)
	}

	data := model.CreatePackageData{
		Name:     strings.TrimSpace(req.Name),
		Speed:    strings.TrimSpace(req.Speed),
		Price:    *req.Price,
		IsActive: req.IsActive,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		data.Description = &desc
	}

	rec, err := s.store.Create(ctx, data)
	if err != nil {
		return model.Package{}, err
	}
	return packageFromRecord(rec), nil
}

func (s *PackageService) Update(ctx context.Context, id int64, req model.UpdatePackageRequest) (model.Package, bool, error) {
	if fields := validatePackageUpdate(req); len(fields) > 0 {
		return model.Package{}, false, apierror.Validation(fields...)
	}

	data := model.UpdatePackageData{Price: req.Price, IsActive: req.IsActive}
	if req.Name != nil {
		data.Name = trimmed(req.Name)
	}
	if req.Speed != nil {
		data.Speed = trimmed(req.Speed)
	}
	if req.Description != nil {
		data.Description = trimmed(req.Description)
	}

	rec, found, err := s.store.Update(ctx, id, data)
	if err != nil || !found {
		return model.Package{}, found, err
	}
	return packageFromRecord(rec), true, nil
}

func (s *PackageService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}

func validatePackageCreate(req model.CreatePackageRequest) []apierror.FieldError {
	var fields []apierror.FieldError

	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, apierror.FieldError{Field: "name", Message: "Name is required"})
	}
	if strings.TrimSpace(req.Speed) == "" {
		fields = append(fields, apierror.FieldError{Field: "speed", Message: "Speed is required"})
	}
	fields = append(fields, validateRequiredPrice(req.Price)...)

	return fields
}

func validatePackageUpdate(req model.UpdatePackageRequest) []apierror.FieldError {
	var fields []apierror.FieldError

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		fields = append(fields, apierror.FieldError{Field: "name", Message: "Name cannot be empty"})
	}
	if req.Speed != nil && strings.TrimSpace(*req.Speed) == "" {
		fields = append(fields, apierror.FieldError{Field: "speed", Message: "Speed cannot be empty"})
	}
	if req.Price != nil {
		fields = append(fields, validatePrice(*req.Price)...)
	}

	return fields
}

func validateRequiredPrice(price *float64) []apierror.FieldError {
	if price == nil {
		return []apierror.FieldError{{Field: "price", Message: "Price is required"}}
	}
	return validatePrice(*price)
}

func validatePrice(price float64) []apierror.FieldError {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return []apierror.FieldError{{Field: "price", Message: "Price must be a valid number"}}
	}
	if price < 0 {
		return []apierror.FieldError{{Field: "price", Message: "Price must be non-negative"}}
	}
	return nil
}

func packageFromRecord(rec model.PackageRecord) model.Package {
	return model.Package{
		ID:          rec.ID,
		Name:        rec.Name,
		Speed:       rec.Speed,
		Price:       rec.Price,
		Description: rec.Description,
		IsActive:    rec.IsActive == 1,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func packagesFromRecords(records []model.PackageRecord) []model.Package {
	out := make([]model.Package, 0, len(records))
	for _, rec := range records {
		out = append(out, packageFromRecord(rec))
	}
	return out
}

func trimmed(s *string) *string {
	t := strings.TrimSpace(*s)
	return &t
}
