package handlers

import (
	"net/http"

	"librarium/services/spin"
	"librarium/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SpinHandler struct {
	Spins spin.SpinService
}

func NewSpinHandler(ss spin.SpinService) *SpinHandler {
	return &SpinHandler{Spins: ss}
}

// SpinStatusHandler reports whether the user can spin and the countdown otherwise.
func (h *SpinHandler) SpinStatusHandler(c *gin.Context) {
	status, err := h.Spins.Status(c.Request.Context(), c.Param("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *SpinHandler) SpinHandler(c *gin.Context) {
	userID := c.Param("userID")
	result, err := h.Spins.Spin(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Debug("spin served", zap.String("userID", userID), zap.String("rewardID", result.Reward.ID))
	c.JSON(http.StatusOK, result)
}
