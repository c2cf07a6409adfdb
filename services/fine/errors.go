package fine

import "librarium/utils"

var (
	ErrInvalidRate     = utils.NewValidationError("invalidFineRate", "fine rate must be a non-negative number")
	ErrMissingRecord   = utils.NewValidationError("missingRecord", "borrow record id is required")
	ErrEmptyBatch      = utils.NewValidationError("emptyBatch", "no records selected for payment")
	ErrRecordNotFound  = utils.NewNotFoundError("recordNotFound", "borrow record not found")
	ErrAlreadyPaid     = utils.NewPreconditionError("fineAlreadyPaid", "fine has already been paid")
	ErrNotOverdue      = utils.NewPreconditionError("fineNotOverdue", "record is not overdue")
	ErrInvalidDiscount = utils.NewValidationError("invalidDiscount", "discount percent must be one of 5, 10, 20, 50, 100")
)
