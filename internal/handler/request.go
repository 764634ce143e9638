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

// RequestHandler handles the HTTP requests for asset requests.
type RequestHandler struct {
	Service *service.RequestService
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewRequestHandler creates a new RequestHandler with dependencies and helpers
func NewRequestHandler(svc *service.RequestService, logger *log.Logger) *RequestHandler {
	if logger == nil {
		logger = log.Default()
	}

	return &RequestHandler{
		Service:        svc,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateRequestHandler handles the submission of a new asset request.
// Non-admin callers always request on their own behalf.
func (h *RequestHandler) CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var request model.AssetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	if principal := middleware.PrincipalFromContext(r.Context()); principal != nil && principal.Role != model.RoleAdmin {
		request.UserID = principal.ID
	}

	created, err := h.Service.CreateRequest(ctx, request)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "create asset request")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusCreated, "Asset request submitted successfully", created)
}

// GetAllRequestsHandler handles the retrieval of all asset requests.
func (h *RequestHandler) GetAllRequestsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	requests, err := h.Service.GetAllRequests(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "retrieve asset requests")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("requests", requests, len(requests))
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

// GetMyRequestsHandler handles the retrieval of the caller's own asset requests.
func (h *RequestHandler) GetMyRequestsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		h.ErrorHandler.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
		return
	}

	requests, err := h.Service.GetRequestsByUser(ctx, principal.ID)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "retrieve asset requests")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("requests", requests, len(requests))
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

// GetRequestHandler handles the retrieval of a single asset request by ID.
func (h *RequestHandler) GetRequestHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	request, err := h.Service.GetRequestByID(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "retrieve asset request")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, request)
}

type decisionRequest struct {
	Notes string `json:"notes"`
}

// ApproveRequestHandler transitions a pending request to approved.
func (h *RequestHandler) ApproveRequestHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	var decision decisionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
			h.ErrorHandler.HandleJSONDecodeError(w, err)
			return
		}
	}

	request, err := h.Service.ApproveRequest(ctx, id, decision.Notes)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "approve asset request")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Asset request approved", request)
}

// RejectRequestHandler transitions a pending request to rejected. The decision
// notes carry the mandatory rejection reason.
func (h *RequestHandler) RejectRequestHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	var decision decisionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
			h.ErrorHandler.HandleJSONDecodeError(w, err)
			return
		}
	}

	request, err := h.Service.RejectRequest(ctx, id, decision.Notes)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "reject asset request")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Asset request rejected", request)
}

// ITApprovalHandler records IT's sub-approval on a pending request.
func (h *RequestHandler) ITApprovalHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	request, err := h.Service.SetITApproval(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "record IT approval")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "IT approval recorded", request)
}

// ManagementApprovalHandler records management's sub-approval on a pending request.
func (h *RequestHandler) ManagementApprovalHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	request, err := h.Service.SetManagementApproval(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "record management approval")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Management approval recorded", request)
}
