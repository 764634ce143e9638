package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"asset-management-api/internal/model"
	"asset-management-api/internal/service"
)

// TerminationHandler handles the HTTP requests for termination and asset
// collection workflows.
type TerminationHandler struct {
	Service *service.TerminationService
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewTerminationHandler creates a new TerminationHandler with dependencies and helpers
func NewTerminationHandler(svc *service.TerminationService, logger *log.Logger) *TerminationHandler {
	if logger == nil {
		logger = log.Default()
	}

	return &TerminationHandler{
		Service:        svc,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateTerminationHandler handles the submission of a new termination request
// with its asset collection checklist.
func (h *TerminationHandler) CreateTerminationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var termination model.TerminationRequest
	if err := json.NewDecoder(r.Body).Decode(&termination); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	created, err := h.Service.CreateTermination(ctx, termination)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "create termination request")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusCreated, "Termination request created successfully", created)
}

// GetAllTerminationsHandler handles the retrieval of all termination requests.
func (h *TerminationHandler) GetAllTerminationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	terminations, err := h.Service.GetAllTerminations(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "retrieve termination requests")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("terminations", terminations, len(terminations))
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

// GetTerminationHandler handles the retrieval of a single termination request by ID.
func (h *TerminationHandler) GetTerminationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	termination, err := h.Service.GetTerminationByID(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "retrieve termination request")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, termination)
}

// ApproveTerminationHandler approves a pending termination request, which also
// records the management sign-off.
func (h *TerminationHandler) ApproveTerminationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	termination, err := h.Service.ApproveTermination(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "approve termination request")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Termination request approved", termination)
}

type rejectTerminationRequest struct {
	Reason string `json:"reason"`
}

// RejectTerminationHandler rejects a pending termination request. A reason
// is required.
func (h *TerminationHandler) RejectTerminationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	var req rejectTerminationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.ErrorHandler.HandleJSONDecodeError(w, err)
			return
		}
	}

	termination, err := h.Service.RejectTermination(ctx, id, req.Reason)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "reject termination request")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Termination request rejected", termination)
}

type collectAssetRequest struct {
	CollectorSignature string `json:"collector_signature"`
}

// CollectAssetHandler records that one asset on the collection checklist has
// been recovered, with the collector's signature.
func (h *TerminationHandler) CollectAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	terminationID, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}
	assetID, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["asset_id"])
	if !valid {
		return
	}

	var req collectAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	termination, err := h.Service.MarkAssetCollected(ctx, terminationID, assetID, req.CollectorSignature)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, err, "mark asset collected")
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Asset collection recorded", termination)
}
