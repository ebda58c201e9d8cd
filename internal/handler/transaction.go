package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bookhive/bookhive-go/internal/middleware"
	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/service"
)

// TransactionHandler handles HTTP requests for checkouts and the log.
type TransactionHandler struct {
	service *service.CheckoutService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc *service.CheckoutService) *TransactionHandler {
	return &TransactionHandler{service: svc}
}

// HandleCheckout handles POST /api/transactions requests.
func (h *TransactionHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Checkout(r.Context(), identity.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTransactionType),
			errors.Is(err, service.ErrBookIDRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrBookNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/transactions requests (admin only).
func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}
