package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiketku/internal/models/request_models"
	"tiketku/internal/services"
	"tiketku/pkg/utils"
)

type VoucherController struct {
	voucherService services.VoucherServiceInterface
}

func NewVoucherController(voucherService services.VoucherServiceInterface) *VoucherController {
	return &VoucherController{voucherService: voucherService}
}

// ListVouchers godoc
// @Summary List vouchers
// @Tags Voucher
// @Produce json
// @Param event query string false "Event slug filter"
// @Param code query string false "Code search"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {array} response_models.VoucherResponse
// @Router /vouchers [get]
func (v *VoucherController) ListVouchers(c *gin.Context) {
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	vouchers, meta, err := v.voucherService.ListVouchers(c.Request.Context(),
		c.Query("event"), c.Query("code"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"data": vouchers, "meta": meta}, "Vouchers fetched successfully")
}

// CreateVoucher godoc
// @Summary Create a voucher
// @Tags Voucher
// @Accept json
// @Produce json
// @Param request body request_models.CreateVoucherRequest true "Voucher payload"
// @Success 200 {object} response_models.VoucherResponse
// @Security BearerAuth
// @Router /vouchers [post]
func (v *VoucherController) CreateVoucher(c *gin.Context) {
	var req request_models.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid voucher payload")
		return
	}

	voucher, err := v.voucherService.CreateVoucher(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, voucher, "Voucher created successfully")
}
