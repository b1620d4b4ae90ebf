package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneybook-app/moneybook/internal/adapter/http/dto"
	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// TemplateHandler handles recurring template HTTP requests.
type TemplateHandler struct {
	templateUC *usecase.TemplateUseCase
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateUC *usecase.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{templateUC: templateUC}
}

// Create creates a new recurring template.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	template, err := h.templateUC.CreateTemplate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TemplateFromDomain(template))
}

// Get retrieves a template by ID.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, CodeValidation, "missing template ID")
		return
	}

	template, err := h.templateUC.GetTemplate(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplateFromDomain(template))
}

// Update updates a template.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, CodeValidation, "missing template ID")
		return
	}

	var req dto.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	template, err := h.templateUC.UpdateTemplate(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplateFromDomain(template))
}

// Delete deletes a template.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, CodeValidation, "missing template ID")
		return
	}

	if err := h.templateUC.DeleteTemplate(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists templates for a user and ledger type.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	ledgerType := domain.LedgerType(r.URL.Query().Get("ledger_type"))

	templates, err := h.templateUC.ListTemplates(r.Context(), userID, ledgerType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplatesFromDomain(templates))
}
