package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/application/usecase"
	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/domain/valueobject"
	"github.com/moroapp/moro/pkg/auth"
)

// FinancingHandler exposes the financing application API over HTTP.
type FinancingHandler struct {
	submitUC   *usecase.SubmitFinancingApplicationUseCase
	getUC      *usecase.GetApplicationUseCase
	listUC     *usecase.ListApplicationsUseCase
	reviewUC   *usecase.ReviewApplicationUseCase
	disburseUC *usecase.DisburseApplicationUseCase
	scoreUC    *usecase.ScoreApplicantUseCase
	callbackUC *usecase.HandlePaymentCallbackUseCase
	logger     *slog.Logger
}

// NewFinancingHandler wires the HTTP handler to its use cases.
func NewFinancingHandler(
	submitUC *usecase.SubmitFinancingApplicationUseCase,
	getUC *usecase.GetApplicationUseCase,
	listUC *usecase.ListApplicationsUseCase,
	reviewUC *usecase.ReviewApplicationUseCase,
	disburseUC *usecase.DisburseApplicationUseCase,
	scoreUC *usecase.ScoreApplicantUseCase,
	callbackUC *usecase.HandlePaymentCallbackUseCase,
	logger *slog.Logger,
) *FinancingHandler {
	return &FinancingHandler{
		submitUC:   submitUC,
		getUC:      getUC,
		listUC:     listUC,
		reviewUC:   reviewUC,
		disburseUC: disburseUC,
		scoreUC:    scoreUC,
		callbackUC: callbackUC,
		logger:     logger,
	}
}

// RegisterRoutes attaches all financing API routes to the given mux.
func (h *FinancingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/applications", h.submitApplication)
	mux.HandleFunc("GET /api/v1/applications/{id}", h.getApplication)
	mux.HandleFunc("GET /api/v1/applicants/{id}/applications", h.listApplications)
	mux.HandleFunc("POST /api/v1/applications/{id}/review", h.reviewApplication)
	mux.HandleFunc("POST /api/v1/applications/{id}/disburse", h.disburseApplication)
	mux.HandleFunc("POST /api/v1/scores", h.scoreApplicant)
	mux.HandleFunc("POST /api/v1/payments/callback", h.paymentCallback)
}

func (h *FinancingHandler) submitApplication(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TenantID = tenantFrom(r, req.TenantID)

	resp, err := h.submitUC.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *FinancingHandler) getApplication(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getUC.Execute(r.Context(), dto.GetApplicationRequest{
		TenantID:      tenantFrom(r, ""),
		ApplicationID: r.PathValue("id"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) listApplications(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listUC.Execute(r.Context(), dto.ListApplicationsRequest{
		TenantID:    tenantFrom(r, ""),
		ApplicantID: r.PathValue("id"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": resp})
}

func (h *FinancingHandler) reviewApplication(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireRole(r.Context(), auth.RoleInstitution); err != nil {
		writeError(w, http.StatusForbidden, "reviewer role required")
		return
	}

	var req dto.ReviewApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TenantID = tenantFrom(r, req.TenantID)
	req.ApplicationID = r.PathValue("id")
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok && req.ReviewerID == "" {
		req.ReviewerID = claims.UserID
	}

	resp, err := h.reviewUC.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) disburseApplication(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireRole(r.Context(), auth.RoleInstitution); err != nil {
		writeError(w, http.StatusForbidden, "institution role required")
		return
	}

	resp, err := h.disburseUC.Execute(r.Context(), dto.DisburseApplicationRequest{
		TenantID:      tenantFrom(r, ""),
		ApplicationID: r.PathValue("id"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) scoreApplicant(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.scoreUC.Execute(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) paymentCallback(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.callbackUC.Execute(r.Context(), req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

// writeDomainError maps domain and application errors to HTTP responses.
func (h *FinancingHandler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, port.ErrApplicationNotFound):
		writeError(w, http.StatusNotFound, "application not found")
	case errors.Is(err, port.ErrApplicantNotFound):
		writeError(w, http.StatusNotFound, "applicant not found")
	case errors.Is(err, usecase.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		writeError(w, http.StatusConflict, err.Error())
	case port.IsDataAccess(err):
		h.logger.ErrorContext(r.Context(), "data access failure", "error", err)
		w.Header().Set("Retry-After", "5")
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

// tenantFrom resolves the tenant scope for the request: authenticated claims
// win, then the explicit value, then the X-Tenant-ID header.
func tenantFrom(r *http.Request, explicit string) string {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok && claims.TenantID != "" {
		return claims.TenantID
	}
	if explicit != "" {
		return explicit
	}
	return r.Header.Get("X-Tenant-ID")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
