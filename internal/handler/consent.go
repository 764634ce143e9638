package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"asset-management-api/internal/middleware"
	"asset-management-api/internal/model"
	"asset-management-api/internal/service"
)

// ConsentHandler handles the HTTP requests for asset collection consent forms.
type ConsentHandler struct {
	Service *service.ConsentService
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewConsentHandler creates a new ConsentHandler with dependencies and helpers
func NewConsentHandler(svc *service.ConsentService, logger *log.Logger) *ConsentHandler {
	if logger == nil {
		logger = log.Default()
	}

	return &ConsentHandler{
		Service:        svc,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateFormHandler handles the creation of a new consent form.
func (h *ConsentHandler) CreateFormHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var form model.ConsentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	created, err := h.Service.CreateForm(ctx, form)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "create consent form")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusCreated, "Consent form created successfully", created)
}

// GetAllFormsHandler handles the retrieval of all consent forms.
func (h *ConsentHandler) GetAllFormsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	forms, err := h.Service.GetAllForms(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "retrieve consent forms")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("forms", forms, len(forms))
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

// GetMyFormsHandler handles the retrieval of the caller's own consent forms.
func (h *ConsentHandler) GetMyFormsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		h.ErrorHandler.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
		return
	}

	forms, err := h.Service.GetFormsByUser(ctx, principal.ID)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "retrieve consent forms")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("forms", forms, len(forms))
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

// GetFormHandler handles the retrieval of a single consent form by ID.
func (h *ConsentHandler) GetFormHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	form, err := h.Service.GetFormByID(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "retrieve consent form")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, form)
}

// SendFormHandler marks a consent form as sent to the employee.
func (h *ConsentHandler) SendFormHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	form, err := h.Service.SendForm(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "send consent form")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Consent form sent", form)
}

type signRequest struct {
	Signature string `json:"signature"`
}

// SignFormHandler records the employee's signature on a sent consent form.
// The signer is always the authenticated principal; the service rejects
// signatures from anyone but the form's target user.
func (h *ConsentHandler) SignFormHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		h.ErrorHandler.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
		return
	}

	var req signRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	form, err := h.Service.SignForm(ctx, id, principal.ID, req.Signature)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "sign consent form")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Consent form signed", form)
}

// ApproveFormHandler records the caller's side of the dual approval. The side
// recorded is determined by the caller's role, never by the request body.
func (h *ConsentHandler) ApproveFormHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		h.ErrorHandler.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
		return
	}

	form, err := h.Service.ApproveForm(ctx, id, principal.Role)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "approve consent form")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Consent form approval recorded", form)
}
