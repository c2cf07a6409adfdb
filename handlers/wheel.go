package handlers

import (
	"net/http"

	"librarium/models"
	"librarium/services/wheel"
	"librarium/utils"

	"github.com/gin-gonic/gin"
)

// WheelHandler is the admin surface of the reward catalog.
type WheelHandler struct {
	Wheels wheel.WheelService
}

func NewWheelHandler(ws wheel.WheelService) *WheelHandler {
	return &WheelHandler{Wheels: ws}
}

type createWheelBody struct {
	Name string `json:"name"`
}

type wheelActiveBody struct {
	IsActive *bool `json:"isActive"`
}

type spinLimitBody struct {
	DailySpinLimit int `json:"dailySpinLimit" binding:"required"`
}

type probabilitiesBody struct {
	Probabilities map[string]float64 `json:"probabilities" binding:"required"`
}

func (h *WheelHandler) ListWheelsHandler(c *gin.Context) {
	wheels, err := h.Wheels.ListWheels(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wheels)
}

func (h *WheelHandler) CurrentWheelHandler(c *gin.Context) {
	w, err := h.Wheels.CurrentWheel(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WheelHandler) GetWheelHandler(c *gin.Context) {
	w, err := h.Wheels.GetWheel(c.Request.Context(), c.Param("wheelID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WheelHandler) CreateWheelHandler(c *gin.Context) {
	var body createWheelBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
	}
	w, err := h.Wheels.CreateWheel(c.Request.Context(), body.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// SetWheelActiveHandler sets isActive when given, otherwise toggles it.
func (h *WheelHandler) SetWheelActiveHandler(c *gin.Context) {
	var body wheelActiveBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
	}
	ctx := c.Request.Context()
	id := c.Param("wheelID")
	var w *models.WheelSettings
	var err error
	if body.IsActive != nil {
		w, err = h.Wheels.SetWheelActive(ctx, id, *body.IsActive)
	} else {
		w, err = h.Wheels.ToggleWheel(ctx, id)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WheelHandler) SetSpinLimitHandler(c *gin.Context) {
	var body spinLimitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	w, err := h.Wheels.SetDailySpinLimit(c.Request.Context(), c.Param("wheelID"), body.DailySpinLimit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// SetCurrentWheelHandler makes the wheel the one users spin.
func (h *WheelHandler) SetCurrentWheelHandler(c *gin.Context) {
	w, err := h.Wheels.SetCurrentWheel(c.Request.Context(), c.Param("wheelID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WheelHandler) ListRewardsHandler(c *gin.Context) {
	rewards, err := h.Wheels.ListRewards(c.Request.Context(), c.Param("wheelID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rewards)
}

func (h *WheelHandler) AddRewardHandler(c *gin.Context) {
	var in wheel.RewardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	r, err := h.Wheels.AddReward(c.Request.Context(), c.Param("wheelID"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *WheelHandler) EditRewardHandler(c *gin.Context) {
	var in wheel.RewardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	r, err := h.Wheels.EditReward(c.Request.Context(), c.Param("wheelID"), c.Param("rewardID"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *WheelHandler) DeleteRewardHandler(c *gin.Context) {
	if err := h.Wheels.DeleteReward(c.Request.Context(), c.Param("wheelID"), c.Param("rewardID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WheelHandler) ToggleRewardHandler(c *gin.Context) {
	r, err := h.Wheels.ToggleReward(c.Request.Context(), c.Param("wheelID"), c.Param("rewardID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateProbabilitiesHandler saves several weights at once; they must add up to 100.
func (h *WheelHandler) UpdateProbabilitiesHandler(c *gin.Context) {
	var body probabilitiesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	w, err := h.Wheels.UpdateProbabilities(c.Request.Context(), c.Param("wheelID"), body.Probabilities)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}
