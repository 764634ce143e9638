package router

import (
	"github.com/gorilla/mux"

	"asset-management-api/internal/config"
	"asset-management-api/internal/handler"
	"asset-management-api/internal/middleware"
	"asset-management-api/internal/model"
)

// Handlers bundles the HTTP handlers wired into the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Asset       *handler.AssetHandler
	Request     *handler.RequestHandler
	Consent     *handler.ConsentHandler
	Termination *handler.TerminationHandler
}

// NewRouter creates a new router and sets up the routes with security and
// authentication middleware. Role requirements per route mirror the page-level
// access rules of the web frontend.
func NewRouter(h Handlers, authMW *middleware.AuthMiddleware, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	// Initialize security middleware
	securityMW := middleware.NewSecurityMiddleware(&cfg.Security)

	// Apply global middleware in order
	r.Use(securityMW.SecurityHeaders)
	r.Use(securityMW.CORS)
	r.Use(securityMW.TrustedProxy)
	r.Use(securityMW.RateLimit)
	r.Use(securityMW.RequestTimeout)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", h.Auth.HealthHandler).Methods("GET")
	api.HandleFunc("/auth/login", h.Auth.LoginHandler).Methods("POST")

	// Everything below requires a valid session token
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMW.Authenticate)

	protected.HandleFunc("/auth/logout", h.Auth.LogoutHandler).Methods("POST")
	protected.HandleFunc("/auth/me", h.Auth.MeHandler).Methods("GET")

	// User account administration
	protected.HandleFunc("/users", middleware.RequireRoles(h.User.CreateUserHandler, model.RoleAdmin)).Methods("POST")
	protected.HandleFunc("/users", middleware.RequireRoles(h.User.GetAllUsersHandler, model.RoleAdmin, model.RoleManagement)).Methods("GET")
	protected.HandleFunc("/users/{id}", middleware.RequireRoles(h.User.GetUserHandler, model.RoleAdmin, model.RoleManagement)).Methods("GET")
	protected.HandleFunc("/users/{id}", middleware.RequireRoles(h.User.UpdateUserHandler, model.RoleAdmin)).Methods("PUT")
	protected.HandleFunc("/users/{id}", middleware.RequireRoles(h.User.DeleteUserHandler, model.RoleAdmin)).Methods("DELETE")
	protected.HandleFunc("/users/{id}/deactivate", middleware.RequireRoles(h.User.DeactivateUserHandler, model.RoleAdmin)).Methods("POST")
	protected.HandleFunc("/users/{user_id}/assets", middleware.RequireRoles(h.Asset.GetUserAssetsHandler, model.RoleAdmin, model.RoleManagement, model.RoleIT, model.RoleSupport)).Methods("GET")

	// Asset inventory
	protected.HandleFunc("/assets", middleware.RequireRoles(h.Asset.CreateAssetHandler, model.RoleAdmin, model.RoleIT)).Methods("POST")
	protected.HandleFunc("/assets", middleware.RequireRoles(h.Asset.GetAllAssetsHandler, model.RoleAdmin, model.RoleManagement, model.RoleIT, model.RoleSupport)).Methods("GET")
	protected.HandleFunc("/assets/mine", h.Asset.GetMyAssetsHandler).Methods("GET")
	protected.HandleFunc("/assets/provisioning", middleware.RequireRoles(h.Asset.GetProvisioningQueueHandler, model.RoleAdmin, model.RoleIT)).Methods("GET")
	protected.HandleFunc("/assets/{id}", middleware.RequireRoles(h.Asset.GetAssetHandler, model.RoleAdmin, model.RoleManagement, model.RoleIT, model.RoleSupport)).Methods("GET")
	protected.HandleFunc("/assets/{id}", middleware.RequireRoles(h.Asset.UpdateAssetHandler, model.RoleAdmin, model.RoleIT)).Methods("PUT")
	protected.HandleFunc("/assets/{id}", middleware.RequireRoles(h.Asset.DeleteAssetHandler, model.RoleAdmin)).Methods("DELETE")
	protected.HandleFunc("/assets/{id}/provision", middleware.RequireRoles(h.Asset.ProvisionAssetHandler, model.RoleAdmin, model.RoleIT)).Methods("POST")

	// Asset requests
	protected.HandleFunc("/requests", h.Request.CreateRequestHandler).Methods("POST")
	protected.HandleFunc("/requests", middleware.RequireRoles(h.Request.GetAllRequestsHandler, model.RoleAdmin, model.RoleManagement, model.RoleIT)).Methods("GET")
	protected.HandleFunc("/requests/mine", h.Request.GetMyRequestsHandler).Methods("GET")
	protected.HandleFunc("/requests/{id}", middleware.RequireRoles(h.Request.GetRequestHandler, model.RoleAdmin, model.RoleManagement, model.RoleIT)).Methods("GET")
	protected.HandleFunc("/requests/{id}/approve", middleware.RequireRoles(h.Request.ApproveRequestHandler, model.RoleAdmin, model.RoleManagement)).Methods("POST")
	protected.HandleFunc("/requests/{id}/reject", middleware.RequireRoles(h.Request.RejectRequestHandler, model.RoleAdmin, model.RoleManagement)).Methods("POST")
	protected.HandleFunc("/requests/{id}/it-approval", middleware.RequireRoles(h.Request.ITApprovalHandler, model.RoleAdmin, model.RoleIT)).Methods("POST")
	protected.HandleFunc("/requests/{id}/management-approval", middleware.RequireRoles(h.Request.ManagementApprovalHandler, model.RoleAdmin, model.RoleManagement)).Methods("POST")

	// Consent forms
	protected.HandleFunc("/consent-forms", middleware.RequireRoles(h.Consent.CreateFormHandler, model.RoleAdmin)).Methods("POST")
	protected.HandleFunc("/consent-forms", middleware.RequireRoles(h.Consent.GetAllFormsHandler, model.RoleAdmin, model.RoleManagement)).Methods("GET")
	protected.HandleFunc("/consent-forms/mine", h.Consent.GetMyFormsHandler).Methods("GET")
	protected.HandleFunc("/consent-forms/{id}", middleware.RequireRoles(h.Consent.GetFormHandler, model.RoleAdmin, model.RoleManagement)).Methods("GET")
	protected.HandleFunc("/consent-forms/{id}/send", middleware.RequireRoles(h.Consent.SendFormHandler, model.RoleAdmin)).Methods("POST")
	protected.HandleFunc("/consent-forms/{id}/sign", h.Consent.SignFormHandler).Methods("POST")
	protected.HandleFunc("/consent-forms/{id}/approve", middleware.RequireRoles(h.Consent.ApproveFormHandler, model.RoleAdmin, model.RoleManagement)).Methods("POST")

	// Termination and asset collection
	protected.HandleFunc("/terminations", middleware.RequireRoles(h.Termination.CreateTerminationHandler, model.RoleAdmin, model.RoleManagement)).Methods("POST")
	protected.HandleFunc("/terminations", middleware.RequireRoles(h.Termination.GetAllTerminationsHandler, model.RoleAdmin, model.RoleManagement, model.RoleIT, model.RoleSupport)).Methods("GET")
	protected.HandleFunc("/terminations/{id}", middleware.RequireRoles(h.Termination.GetTerminationHandler, model.RoleAdmin, model.RoleManagement, model.RoleIT, model.RoleSupport)).Methods("GET")
	protected.HandleFunc("/terminations/{id}/approve", middleware.RequireRoles(h.Termination.ApproveTerminationHandler, model.RoleAdmin, model.RoleManagement)).Methods("POST")
	protected.HandleFunc("/terminations/{id}/reject", middleware.RequireRoles(h.Termination.RejectTerminationHandler, model.RoleAdmin, model.RoleManagement)).Methods("POST")
	protected.HandleFunc("/terminations/{id}/assets/{asset_id}/collect", middleware.RequireRoles(h.Termination.CollectAssetHandler, model.RoleAdmin, model.RoleIT, model.RoleSupport)).Methods("POST")

	return r
}
