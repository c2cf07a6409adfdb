package handlers

import (
	"net/http"

	"librarium/models"
	"librarium/services/fine"
	"librarium/services/settings"
	"librarium/utils"

	"github.com/gin-gonic/gin"
)

// FineHandler exposes fine quotes, payments and summaries.
type FineHandler struct {
	Fines    fine.FineService
	Settings settings.SettingsService
}

func NewFineHandler(fs fine.FineService, ss settings.SettingsService) *FineHandler {
	return &FineHandler{Fines: fs, Settings: ss}
}

type payFineBody struct {
	CouponID string `json:"couponId"`
}

type payBatchBody struct {
	RecordIDs []string `json:"recordIds" binding:"required"`
}

// GetUserFinesHandler lists a user's fined records with the current total.
func (h *FineHandler) GetUserFinesHandler(c *gin.Context) {
	rate, err := h.Settings.GetFineRate(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	summary, err := h.Fines.UserSummary(c.Request.Context(), c.Param("userID"), rate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// QuoteFineHandler shows what paying the record would cost right now.
func (h *FineHandler) QuoteFineHandler(c *gin.Context) {
	rate, err := h.Settings.GetFineRate(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	view, err := h.Fines.Quote(c.Request.Context(), c.Param("recordID"), rate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PayFineHandler settles one record at the current rate, optionally with a coupon.
func (h *FineHandler) PayFineHandler(c *gin.Context) {
	var body payFineBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
	}
	rate, err := h.Settings.GetFineRate(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	res, err := h.Fines.PayFine(c.Request.Context(), fine.PayFineRequest{
		RecordID:   c.Param("recordID"),
		RatePerDay: rate,
		CouponID:   body.CouponID,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AdminFinesHandler lists every fined record, optionally filtered by ?status=.
func (h *FineHandler) AdminFinesHandler(c *gin.Context) {
	rate, err := h.Settings.GetFineRate(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	status := c.Query("status")
	if status == "all" {
		status = ""
	}
	summary, err := h.Fines.AdminSummary(c.Request.Context(), rate, models.FineStatus(status))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PayBatchHandler marks several fines as paid; each record succeeds or fails on its own.
func (h *FineHandler) PayBatchHandler(c *gin.Context) {
	var body payBatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	rate, err := h.Settings.GetFineRate(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	results, err := h.Fines.PayFineBatch(c.Request.Context(), body.RecordIDs, rate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
