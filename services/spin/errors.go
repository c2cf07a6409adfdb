package spin

import "librarium/utils"

var (
	ErrMissingUser     = utils.NewValidationError("missingUser", "user id is required")
	ErrWheelInactive   = utils.NewPreconditionError("wheelInactive", "the wheel is currently closed")
	ErrNotEligible     = utils.NewPreconditionError("spinNotEligible", "no spins left for today")
	ErrNoRewards       = utils.NewPreconditionError("noActiveRewards", "the wheel has no active rewards")
	ErrZeroWeight      = utils.NewPreconditionError("zeroRewardWeight", "active rewards have no probability weight")
	ErrSpinInProgress  = utils.NewConflictError("spinInProgress", "a spin is already in progress")
	ErrUnhandledReward = utils.NewValidationError("unhandledRewardType", "reward type cannot be materialized")
)
