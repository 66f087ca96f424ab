package model

import "time"

// PackageRecord mirrors a row of the packages table. The active flag is
// stored as an integer (0/1); the service layer maps it to a boolean.
type PackageRecord struct {
	ID          int64
	Name        string
	Speed       string
	Price       float64
	Description *string
	IsActive    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Package is the API-facing shape of a monthly subscription plan.
type Package struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Speed       string    `json:"speed"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreatePackageRequest is the create payload. Price and IsActive are pointers
// so that "absent" is distinguishable from zero values.
type CreatePackageRequest struct {
	Name        string   `json:"name"`
	Speed       string   `json:"speed"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	IsActive    *bool    `json:"isActive"`
}

// UpdatePackageRequest is a sparse patch: nil means "leave unchanged".
type UpdatePackageRequest struct {
	Name        *string  `json:"name"`
	Speed       *string  `json:"speed"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	IsActive    *bool    `json:"isActive"`
}

// CreatePackageData is the validated, trimmed input handed to the repository.
type CreatePackageData struct {
	Name        string
	Speed       string
	Price       float64
	Description *string
	IsActive    *bool
}

// UpdatePackageData carries only the fields that should change.
type UpdatePackageData struct {
	Name        *string
	Speed       *string
	Price       *float64
	Description *string
	IsActive    *bool
}

// Empty reports whether the patch would change nothing.
func (d UpdatePackageData) Empty() bool {
	return d.Name == nil && d.Speed == nil && d.Price == nil &&
		d.Description == nil && d.IsActive == nil
}
