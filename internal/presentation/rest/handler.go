package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/creditdesk/credit-engine/internal/application/dto"
	"github.com/creditdesk/credit-engine/internal/application/usecase"
	"github.com/creditdesk/credit-engine/internal/domain/model"
	"github.com/creditdesk/credit-engine/internal/observability"
)

// Handler wires the HTTP endpoints to the use cases.
type Handler struct {
	register    *usecase.RegisterCustomerUseCase
	eligibility *usecase.CheckEligibilityUseCase
	createLoan  *usecase.CreateLoanUseCase
	getLoan     *usecase.GetLoanUseCase
	listLoans   *usecase.ListCustomerLoansUseCase
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewHandler creates a handler with all use-case dependencies.
func NewHandler(
	register *usecase.RegisterCustomerUseCase,
	eligibility *usecase.CheckEligibilityUseCase,
	createLoan *usecase.CreateLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	listLoans *usecase.ListCustomerLoansUseCase,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Handler {
	return &Handler{
		register:    register,
		eligibility: eligibility,
		createLoan:  createLoan,
		getLoan:     getLoan,
		listLoans:   listLoans,
		logger:      logger,
		metrics:     metrics,
	}
}

// Register mounts the API routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/check-eligibility", h.handleCheckEligibility)
	r.Post("/create-loan", h.handleCreateLoan)
	r.Get("/view-loan/{loan_id}", h.handleViewLoan)
	r.Get("/view-loans/{customer_id}", h.handleViewCustomerLoans)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", model.ErrValidation, err))
		return
	}
	if err := validateRegister(req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.register.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "register customer failed", "error", err)
		writeError(w, err)
		return
	}

	h.metrics.CustomersRegistered.Inc()
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleCheckEligibility(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", model.ErrValidation, err))
		return
	}
	if err := validateLoanRequest(req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.eligibility.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "eligibility check failed", "customer_id", req.CustomerID, "error", err)
		writeError(w, err)
		return
	}

	h.metrics.ObserveDecision("check_eligibility", resp.Approval)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", model.ErrValidation, err))
		return
	}
	if err := validateLoanRequest(req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.createLoan.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "create loan failed", "customer_id", req.CustomerID, "error", err)
		writeError(w, err)
		return
	}

	h.metrics.ObserveDecision("create_loan", resp.LoanApproved)
	if resp.LoanApproved {
		h.metrics.LoansCreated.Inc()
	}
	h.logger.InfoContext(r.Context(), "loan decision",
		"customer_id", req.CustomerID,
		"approved", resp.LoanApproved,
		"message", resp.Message,
	)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleViewLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loan_id")
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.getLoan.Execute(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleViewCustomerLoans(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customer_id")
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.listLoans.Execute(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", model.ErrValidation, name)
	}
	return id, nil
}
