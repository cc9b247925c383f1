package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tiketku/internal/models/request_models"
	"tiketku/internal/services"
	"tiketku/pkg/utils"
)

type TransactionController struct {
	transactionService services.TransactionServiceInterface
}

func NewTransactionController(transactionService services.TransactionServiceInterface) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

// CreateTransaction godoc
// @Summary Check out a cart
// @Description Reserves stock for the requested tickets and starts the payment window
// @Tags Transaction
// @Accept json
// @Produce json
// @Param request body request_models.CreateTransactionRequest true "Cart items"
// @Success 200 {object} response_models.CreateTransactionResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions [post]
func (t *TransactionController) CreateTransaction(c *gin.Context) {
	var req request_models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid cart payload")
		return
	}

	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	result, err := t.transactionService.CreateTransaction(c.Request.Context(), userID, req.Items)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Transaction created successfully")
}

// UploadPaymentProof godoc
// @Summary Upload payment proof
// @Description Attach a transfer proof image to an unpaid transaction
// @Tags Transaction
// @Accept mpfd
// @Produce json
// @Param reference path string true "Transaction reference"
// @Param payment_proof formData file true "Proof image"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/{reference}/payment-proof [patch]
func (t *TransactionController) UploadPaymentProof(c *gin.Context) {
	reference, ok := referenceParam(c)
	if !ok {
		return
	}

	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("payment_proof")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "payment_proof file is required")
		return
	}

	if err := t.transactionService.UploadPaymentProof(c.Request.Context(), reference, file, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Payment proof uploaded successfully")
}

// DecideTransaction godoc
// @Summary Accept or reject a transaction
// @Description Organizer decision on a submitted payment proof; rejection releases the reserved stock
// @Tags Transaction
// @Accept json
// @Produce json
// @Param reference path string true "Transaction reference"
// @Param request body request_models.DecideTransactionRequest true "ACCEPT or REJECT"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/{reference}/decision [patch]
func (t *TransactionController) DecideTransaction(c *gin.Context) {
	reference, ok := referenceParam(c)
	if !ok {
		return
	}

	var req request_models.DecideTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Decision must be ACCEPT or REJECT")
		return
	}

	if err := t.transactionService.DecideTransaction(c.Request.Context(), reference, req.Type); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Decision applied successfully")
}

// GetTransaction godoc
// @Summary Get one of my transactions
// @Tags Transaction
// @Produce json
// @Param reference path string true "Transaction reference"
// @Success 200 {object} response_models.TransactionResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/{reference} [get]
func (t *TransactionController) GetTransaction(c *gin.Context) {
	reference, ok := referenceParam(c)
	if !ok {
		return
	}

	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	txn, err := t.transactionService.GetTransaction(c.Request.Context(), reference, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txn, "Transaction fetched successfully")
}

// ListMyTransactions godoc
// @Summary List my transactions
// @Tags Transaction
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} response_models.TransactionListResponse
// @Security BearerAuth
// @Router /transactions [get]
func (t *TransactionController) ListMyTransactions(c *gin.Context) {
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	txns, err := t.transactionService.ListMyTransactions(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txns, "Transactions fetched successfully")
}

func referenceParam(c *gin.Context) (uuid.UUID, bool) {
	reference, err := uuid.Parse(c.Param("reference"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid transaction reference")
		return uuid.Nil, false
	}
	return reference, true
}

func sessionUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return uuid.Nil, false
	}
	return userID, true
}
