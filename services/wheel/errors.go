package wheel

import "librarium/utils"

var (
	ErrWheelNotFound       = utils.NewNotFoundError("wheelNotFound", "wheel not found")
	ErrRewardNotFound      = utils.NewNotFoundError("rewardNotFound", "reward not found")
	ErrEmptyRewardName     = utils.NewValidationError("emptyRewardName", "reward name is required")
	ErrNegativeProbability = utils.NewValidationError("negativeProbability", "probability must not be negative")
	ErrUnknownRewardType   = utils.NewValidationError("unknownRewardType", "unknown reward type")
	ErrInvalidRewardValue  = utils.NewValidationError("invalidRewardValue", "discount rewards need a value of 5, 10, 20, 50 or 100")
	ErrProbabilitySum      = utils.NewValidationError("probabilitySum", "probabilities must add up to 100")
	ErrInvalidSpinLimit    = utils.NewValidationError("invalidSpinLimit", "daily spin limit must be at least 1")
	ErrMissingWheelID      = utils.NewValidationError("missingWheelId", "wheel id is required")
)
