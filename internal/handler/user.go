package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"asset-management-api/internal/model"
	"asset-management-api/internal/repository"
	"asset-management-api/pkg/validation"
)

// UserHandler handles the HTTP requests for employee accounts.
type UserHandler struct {
	Repo   repository.UserRepository
	Logger *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewUserHandler creates a new UserHandler with dependencies and helpers
func NewUserHandler(repo repository.UserRepository, logger *log.Logger) *UserHandler {
	if logger == nil {
		logger = log.Default()
	}

	return &UserHandler{
		Repo:           repo,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateUserHandler handles the creation of a new user account.
func (h *UserHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	if validationErrors := validation.ValidateUserInput(&user); len(validationErrors) > 0 {
		errorMap := make(map[string]string)
		for i, err := range validationErrors {
			errorMap[fmt.Sprintf("error_%d", i)] = err
		}
		h.ErrorHandler.HandleValidationErrors(w, errorMap)
		return
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.DateCreated = time.Now()
	user.IsActive = true

	if err := h.Repo.CreateUser(ctx, user); err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "create user")
		return
	}

	successData := h.ResponseHelper.CreateIDSuccessData(user.ID.String())
	h.ErrorHandler.SendSuccessResponse(w, http.StatusCreated, "User created successfully", successData)
}

// GetAllUsersHandler handles the retrieval of all user accounts.
func (h *UserHandler) GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	users, err := h.Repo.GetAllUsers(ctx)
	if err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "retrieve users")
		return
	}

	responseData := h.ResponseHelper.CreateListResponseData("users", users, len(users))
	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, responseData)
}

// GetUserHandler handles the retrieval of a single user by ID.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	user, err := h.Repo.GetUserByID(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "retrieve user")
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, user)
}

// UpdateUserHandler handles the update of a user account.
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, err)
		return
	}

	if validationErrors := validation.ValidateUserInput(&user); len(validationErrors) > 0 {
		errorMap := make(map[string]string)
		for i, err := range validationErrors {
			errorMap[fmt.Sprintf("error_%d", i)] = err
		}
		h.ErrorHandler.HandleValidationErrors(w, errorMap)
		return
	}

	if err := h.Repo.UpdateUser(ctx, id, user); err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "update user")
		return
	}

	successData := h.ResponseHelper.CreateIDSuccessData(id.String())
	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "User updated successfully", successData)
}

// DeactivateUserHandler marks a user account as inactive without removing it.
func (h *UserHandler) DeactivateUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	if err := h.Repo.DeactivateUser(ctx, id); err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "deactivate user")
		return
	}

	successData := h.ResponseHelper.CreateIDSuccessData(id.String())
	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "User deactivated successfully", successData)
}

// DeleteUserHandler handles the deletion of a user account.
func (h *UserHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	vars := mux.Vars(r)
	id, valid := h.ErrorHandler.ParseAndValidateUUID(w, vars["id"])
	if !valid {
		return
	}

	if err := h.Repo.DeleteUser(ctx, id); err != nil {
		h.ErrorHandler.HandleRepositoryError(w, err, "delete user")
		return
	}

	successData := h.ResponseHelper.CreateIDSuccessData(id.String())
	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "User deleted successfully", successData)
}
