package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/metlabs/backend/internal/models"
	"github.com/metlabs/backend/internal/services"
)

type TransactionHandler struct {
	service   *services.TransactionService
	validator *ValidationHelper
}

func NewTransactionHandler(service *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		service:   service,
		validator: NewValidationHelper(),
	}
}

// AddTransactionRequest represents the transaction creation payload
// @Description Transaction creation request structure
type AddTransactionRequest struct {
	TransactionHash string `json:"transactionHash" validate:"required" example:"0xabc123"`
	UserAddress     string `json:"userAddress" validate:"required" example:"0xwallet1"`
	Type            string `json:"type" validate:"required" example:"deposit"`
}

// Add records a new deposit or withdrawal claim
// @Summary Add transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddTransactionRequest true "Transaction request"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	tx, err := h.service.Add(r.Context(), req.TransactionHash, req.UserAddress, models.TransactionType(req.Type))
	if err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

// ListByUser returns every transaction attributed to a wallet address
// @Summary List transactions by address
// @Tags transactions
// @Produce json
// @Param userAddress path string true "Wallet address"
// @Success 200 {array} models.Transaction
// @Router /transactions/{userAddress} [get]
func (h *TransactionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userAddress := chi.URLParam(r, "userAddress")
	if userAddress == "" {
		SendErrorResponse(w, "userAddress is required", http.StatusBadRequest, nil)
		return
	}

	transactions, err := h.service.ListByUser(r.Context(), userAddress)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}
