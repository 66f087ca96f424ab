package model

import "time"

// VoucherRecord mirrors a row of the vouchers table.
type VoucherRecord struct {
	ID        int64
	Code      string
	Duration  string
	Price     float64
	IsActive  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Voucher is the API-facing shape of a prepaid access code.
type Voucher struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Duration  string    `json:"duration"`
	Price     float64   `json:"price"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateVoucherRequest struct {
	Code     string   `json:"code"`
	Duration string   `json:"duration"`
	Price    *float64 `json:"price"`
	IsActive *bool    `json:"isActive"`
}

// UpdateVoucherRequest is a sparse patch: nil means "leave unchanged".
type UpdateVoucherRequest struct {
	Code     *string  `json:"code"`
	Duration *string  `json:"duration"`
	Price    *float64 `json:"price"`
	IsActive *bool    `json:"isActive"`
}

type CreateVoucherData struct {
	Code     string
	Duration string
	Price    float64
	IsActive *bool
}

type UpdateVoucherData struct {
	Code     *string
	Duration *string
	Price    *float64
	IsActive *bool
}

// Empty reports whether the patch would change nothing.
func (d UpdateVoucherData) Empty() bool {
	return d.Code == nil && d.Duration == nil && d.Price == nil && d.IsActive == nil
}
