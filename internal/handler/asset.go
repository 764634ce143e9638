package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"asset-management-api/internal/middleware"
	"asset-management-api/internal/model"
	"asset-management-api/internal/repository"
	"asset-management-api/pkg/validation"
)

// AssetHandler handles the HTTP requests for company assets.
type AssetHandler struct {
	Repo   repository.AssetRepository
	Logger *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewAssetHandler creates a new AssetHandler with dependencies and helpers
func NewAssetHandler(repo repository.AssetRepository, logger *log.Logger) *AssetHandler {
	if logger == nil {
		logger = log.Default()
	}

	return &AssetHandler{
		Repo:           repo,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateAssetHandler handles the registration of a new asset.
func (h *AssetHandler) CreateAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var asset model.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	if validationErrors := validation.ValidateAssetInput(&asset); len(validationErrors) > 0 {
		errorMap := make(map[string]string)
		for i, err := range validationErrors {
			errorMap[fmt.Sprintf("error_%d", i)] = err
		}
		h.ErrorHandler.HandleValidationErrors(w, errorMap)
		return
	}

	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	now := time.Now()
	asset.CreatedAt = now
	asset.UpdatedAt = now

	if err := h.Repo.CreateAsset(ctx, asset); err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "create asset")
		return
	}

	successData := h.ResponseHelper.CreateIDSuccessData(asset.ID.String())
	h.ErrorHandler.SendSuccessResponse(w, http.StatusCreated, "Asset created successfully", successData)
}

// GetAllAssetsHandler handles the retrieval of all assets.
func (h *AssetHandler) GetAllAssetsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	// Optional serial lookup via query parameter
	if serial := r.URL.Query().Get("serial"); serial != "" {
		asset, err := h.Repo.GetAssetBySerial(ctx, serial)
		if err != nil {
			h.ErrorHandler.HandleRepositoryError(w, err, "retrieve asset")
			return
		}
		h.ErrorHandler.SendJSONResponse(w, http.StatusOK, asset)
		return
	}

	assets, err := h.Repo.GetAllAssets(ctx)
	if err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "retrieve assets")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("assets", assets, len(assets))
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

// GetAssetHandler handles the retrieval of a single asset by ID.
func (h *AssetHandler) GetAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	asset, err := h.Repo.GetAssetByID(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "retrieve asset")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, asset)
}

// UpdateAssetHandler handles the update of an asset.
func (h *AssetHandler) UpdateAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	var asset model.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	if validationErrors := validation.ValidateAssetInput(&asset); len(validationErrors) > 0 {
		errorMap := make(map[string]string)
		for i, err := range validationErrors {
			errorMap[fmt.Sprintf("error_%d", i)] = err
		}
		h.ErrorHandler.HandleValidationErrors(w, errorMap)
		return
	}

	if err := h.Repo.UpdateAsset(ctx, id, asset); err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "update asset")
		return
	}

	successData := h.ResponseHelper.CreateIDSuccessData(id.String())
	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Asset updated successfully", successData)
}

// DeleteAssetHandler handles the deletion of an asset.
func (h *AssetHandler) DeleteAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	if err := h.Repo.DeleteAsset(ctx, id); err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "delete asset")
		return
	}

	successData := h.ResponseHelper.CreateIDSuccessData(id.String())
	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Asset deleted successfully", successData)
}

// GetUserAssetsHandler handles the retrieval of all assets assigned to a user.
func (h *AssetHandler) GetUserAssetsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	userID, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["user_id"])
	if !valid {
		return
	}

	assets, err := h.Repo.GetAssetsByAssignee(ctx, userID)
	if err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "retrieve user assets")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("assets", assets, len(assets))
	responseData["user_id"] = userID.String()
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

// GetMyAssetsHandler handles the retrieval of the caller's own assigned assets.
func (h *AssetHandler) GetMyAssetsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		h.ErrorHandler.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
		return
	}

	assets, err := h.Repo.GetAssetsByAssignee(ctx, principal.ID)
	if err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "retrieve assigned assets")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("assets", assets, len(assets))
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

// GetProvisioningQueueHandler lists assets awaiting hardware details, optionally
// filtered by asset type.
func (h *AssetHandler) GetProvisioningQueueHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var assetType *model.AssetType
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		t := model.AssetType(typeStr)
		if !t.Valid() {
			h.ErrorHandler.SendErrorResponse(w, http.StatusBadRequest, "Invalid asset type", "INVALID_ASSET_TYPE", nil)
			return
		}
		assetType = &t
	}

	assets, err := h.Repo.GetProvisioningQueue(ctx, assetType)
	if err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "retrieve provisioning queue")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("assets", assets, len(assets))
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

type provisionRequest struct {
	SerialNumber string  `json:"serialNumber"`
	Model        *string `json:"model,omitempty"`
}

// ProvisionAssetHandler records the serial number (and optionally the model)
// of a provisioned asset.
func (h *AssetHandler) ProvisionAssetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	var req provisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	if err := validation.ValidateSerialNumber(req.SerialNumber); err != nil {
		h.ErrorHandler.SendErrorResponse(w, http.StatusBadRequest, err.Error(), "INVALID_SERIAL", nil)
		return
	}

	if err := h.Repo.ProvisionAsset(ctx, id, req.SerialNumber, req.Model); err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "provision asset")
		return
	}

	h.Logger.Printf("Asset provisioned: ID=%s, serial=%s", id, req.SerialNumber)

	successData := h.ResponseHelper.CreateIDSuccessData(id.String())
	successData["serial_number"] = req.SerialNumber
	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "Asset provisioned successfully", successData)
}
