package handlers

import (
	"net/http"

	"librarium/services/coupon"
	"librarium/utils"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	Coupons coupon.CouponService
}

func NewCouponHandler(cs coupon.CouponService) *CouponHandler {
	return &CouponHandler{Coupons: cs}
}

func (h *CouponHandler) ListUserCouponsHandler(c *gin.Context) {
	views, err := h.Coupons.ListByUser(c.Request.Context(), c.Param("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ListAvailableCouponsHandler returns coupons usable for ?category= right now.
func (h *CouponHandler) ListAvailableCouponsHandler(c *gin.Context) {
	coupons, err := h.Coupons.ListAvailable(c.Request.Context(), c.Param("userID"), c.Query("category"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) AdminListCouponsHandler(c *gin.Context) {
	views, err := h.Coupons.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// AdminCreateCouponHandler issues a coupon by hand.
func (h *CouponHandler) AdminCreateCouponHandler(c *gin.Context) {
	var in coupon.CreateCouponInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	in.WonFromSpin = false
	created, err := h.Coupons.CreateCoupon(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
