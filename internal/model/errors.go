package model

import "errors"

var (
	// ErrDuplicateCode is returned by the voucher repository when an insert or
	// update violates the UNIQUE constraint on vouchers.code.
	ErrDuplicateCode = errors.New("voucher code already exists")

	// ErrDuplicateUsername is the admins.username counterpart.
	ErrDuplicateUsername = errors.New("username already exists")
)
