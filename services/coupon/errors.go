package coupon

import "librarium/utils"

var (
	ErrMissingUser        = utils.NewValidationError("missingUser", "coupon owner is required")
	ErrInvalidCouponType  = utils.NewValidationError("invalidCouponType", "unknown coupon type")
	ErrInvalidDiscount    = utils.NewValidationError("invalidDiscount", "discount percent must be one of 5, 10, 20, 50, 100")
	ErrInvalidExpiry      = utils.NewValidationError("invalidExpiry", "expiry days must not be negative")
	ErrCouponNotFound     = utils.NewNotFoundError("couponNotFound", "coupon not found")
	ErrCouponUsed         = utils.NewPreconditionError("couponUsed", "coupon has already been used")
	ErrCouponExpired      = utils.NewPreconditionError("couponExpired", "coupon has expired")
	ErrCategoryMismatch   = utils.NewPreconditionError("couponCategoryMismatch", "coupon is not valid for this category")
	ErrCouponTypeMismatch = utils.NewPreconditionError("couponTypeMismatch", "coupon cannot be used here")
)
