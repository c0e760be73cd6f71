// Package handlers implements the HTTP endpoints of the tracker API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vvadla/upi-tracker/internal/api/middleware"
	"github.com/vvadla/upi-tracker/internal/domain"
	infraBQ "github.com/vvadla/upi-tracker/internal/infra/bigquery"
)

// submitTimeLayout matches the combined date+time the form submits.
const submitTimeLayout = "2006-01-02 15:04"

// TransactionsHandler handles transaction submission and listing.
type TransactionsHandler struct {
	repo infraBQ.LedgerRepository
	log  zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo infraBQ.LedgerRepository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{repo: repo, log: log}
}

// SubmitRequest is the payload of POST /api/transactions, mirroring the
// submission form's fields.
type SubmitRequest struct {
	Name              string  `json:"name"`
	TransactionID     string  `json:"transaction_id"`
	Date              string  `json:"date"` // "2006-01-02"
	Time              string  `json:"time"` // "15:04"
	Amount            float64 `json:"amount"`
	PaymentType       string  `json:"payment_type"` // "Credited" or "Debited"
	PayeeType         string  `json:"payee_type"`
	PersonalReference string  `json:"personal_reference"`
	TransactionRating string  `json:"transaction_rating"`
}

func (req *SubmitRequest) validate() (domain.Transaction, error) {
	if req.Name == "" || req.TransactionID == "" || req.PayeeType == "" {
		return domain.Transaction{}, fmt.Errorf("name, transaction_id and payee_type are required")
	}
	if req.Amount <= 0 {
		return domain.Transaction{}, fmt.Errorf("amount must be positive")
	}

	var direction domain.Direction
	switch strings.ToLower(req.PaymentType) {
	case "credited", "credit":
		direction = domain.DirectionCredit
	case "debited", "debit":
		direction = domain.DirectionDebit
	default:
		return domain.Transaction{}, fmt.Errorf("payment_type must be Credited or Debited")
	}

	timestamp, err := time.Parse(submitTimeLayout, req.Date+" "+req.Time)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid date/time: %v", err)
	}

	return domain.Transaction{
		UID:               uuid.New().String(),
		Name:              req.Name,
		TransactionID:     req.TransactionID,
		Timestamp:         timestamp,
		Amount:            req.Amount,
		Direction:         direction,
		PayeeType:         req.PayeeType,
		PersonalReference: req.PersonalReference,
		Rating:            req.TransactionRating,
	}, nil
}

// SubmitTransaction handles POST /api/transactions
func (h *TransactionsHandler) SubmitTransaction(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := req.validate()
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if err := h.repo.InsertTransaction(ctx, txn.Direction, infraBQ.NewTransactionRow(txn)); err != nil {
		h.log.Error().Err(err).Str("direction", string(txn.Direction)).Msg("Failed to insert transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	h.log.Info().
		Str("uid", txn.UID).
		Str("direction", string(txn.Direction)).
		Str("payee_type", txn.PayeeType).
		Msg("Transaction recorded")

	middleware.WriteJSON(w, http.StatusCreated, map[string]string{
		"uid":    txn.UID,
		"status": "recorded",
	})
}

// ListTransactions handles GET /api/transactions
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ledger, err := infraBQ.LoadLedger(r.Context(), h.repo)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"credits": ledger.Credits,
		"debits":  ledger.Debits,
		"count":   ledger.Size(),
	})
}
