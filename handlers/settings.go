package handlers

import (
	"net/http"

	"librarium/services/settings"
	"librarium/utils"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Settings settings.SettingsService
}

func NewSettingsHandler(ss settings.SettingsService) *SettingsHandler {
	return &SettingsHandler{Settings: ss}
}

type fineRateBody struct {
	FinePerDay *float64 `json:"finePerDay" binding:"required"`
}

func (h *SettingsHandler) GetFineRateHandler(c *gin.Context) {
	rate, err := h.Settings.GetFineRate(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"finePerDay": rate})
}

// SetFineRateHandler changes the rate for unpaid fines. Paid fines keep their snapshot.
func (h *SettingsHandler) SetFineRateHandler(c *gin.Context) {
	var body fineRateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	updated, err := h.Settings.SetFineRate(c.Request.Context(), *body.FinePerDay)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"finePerDay": updated.FinePerDay, "updatedAt": updated.UpdatedAt})
}
