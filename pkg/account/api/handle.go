package api

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"

	accountpkg "github.com/edustack/academy-idm/pkg/account"
	"github.com/edustack/academy-idm/pkg/errors"
)

type Handle struct {
	accountService *accountpkg.AccountService
}

func NewHandle(accountService *accountpkg.AccountService) *Handle {
	return &Handle{
		accountService: accountService,
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type assignRoleRequest struct {
	RoleID string `json:"role_id"`
}

// Create handles account creation
// (POST /accounts)
func (h *Handle) Create(w http.ResponseWriter, r *http.Request) *Response {
	var request accountpkg.CreateAccountParams
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		return ErrorResponse(errors.InvalidInput("body", "malformed JSON"))
	}
	if resp := validateCreate(request); resp != nil {
		return resp
	}

	account, err := h.accountService.CreateAccount(r.Context(), request)
	if err != nil {
		if errors.GetCode(err) == errors.ErrCodeInternal {
			slog.Error("Failed to create account", "username", request.Username, "err", err)
		}
		return ErrorResponse(err)
	}
	return JSONResponse(http.StatusCreated, accountpkg.ToDTO(&account))
}

// Get handles retrieving an account by id
// (GET /accounts/{id})
func (h *Handle) Get(w http.ResponseWriter, r *http.Request) *Response {
	account, err := h.accountService.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return ErrorResponse(err)
	}
	return JSONResponse(http.StatusOK, accountpkg.ToDTO(&account))
}

// GetProfile handles retrieving the public profile projection
// (GET /accounts/{id}/profile)
func (h *Handle) GetProfile(w http.ResponseWriter, r *http.Request) *Response {
	account, err := h.accountService.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return ErrorResponse(err)
	}
	return JSONResponse(http.StatusOK, accountpkg.ToProfileDTO(&account))
}

// UpdateProfile handles a partial profile update
// (PUT /accounts/{id})
func (h *Handle) UpdateProfile(w http.ResponseWriter, r *http.Request) *Response {
	var request accountpkg.UpdateProfileParams
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		return ErrorResponse(errors.InvalidInput("body", "malformed JSON"))
	}
	if v := strings.TrimSpace(request.Email); v != "" {
		if _, err := mail.ParseAddress(v); err != nil {
			return ErrorResponse(errors.InvalidInput("email", "invalid format"))
		}
	}

	account, err := h.accountService.UpdateProfile(r.Context(), chi.URLParam(r, "id"), request)
	if err != nil {
		return ErrorResponse(err)
	}
	return JSONResponse(http.StatusOK, accountpkg.ToDTO(&account))
}

// AssignRole handles replacing the account's role
// (PUT /accounts/{id}/role)
func (h *Handle) AssignRole(w http.ResponseWriter, r *http.Request) *Response {
	var request assignRoleRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		return ErrorResponse(errors.InvalidInput("body", "malformed JSON"))
	}
	if request.RoleID == "" {
		return ErrorResponse(errors.InvalidInput("role_id", "role_id is required"))
	}

	account, err := h.accountService.AssignRole(r.Context(), chi.URLParam(r, "id"), request.RoleID)
	if err != nil {
		return ErrorResponse(err)
	}
	return JSONResponse(http.StatusOK, accountpkg.ToDTO(&account))
}

// ChangePassword handles password change requests
// (PUT /accounts/{id}/password)
func (h *Handle) ChangePassword(w http.ResponseWriter, r *http.Request) *Response {
	var request changePasswordRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		return ErrorResponse(errors.InvalidInput("body", "malformed JSON"))
	}
	if request.CurrentPassword == "" || request.NewPassword == "" {
		return ErrorResponse(errors.InvalidInput("password", "current and new password are required"))
	}

	err := h.accountService.ChangePassword(r.Context(), chi.URLParam(r, "id"),
		request.CurrentPassword, request.NewPassword)
	if err != nil {
		return ErrorResponse(err)
	}
	return JSONResponse(http.StatusOK, map[string]string{"message": "password updated"})
}

// RecordLogin stamps the account's last login
// (POST /accounts/{id}/login)
func (h *Handle) RecordLogin(w http.ResponseWriter, r *http.Request) *Response {
	account, err := h.accountService.RecordLogin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return ErrorResponse(err)
	}
	return JSONResponse(http.StatusOK, accountpkg.ToDTO(&account))
}

// validateCreate enforces the inbound field constraints the core itself
// never checks
func validateCreate(request accountpkg.CreateAccountParams) *Response {
	if strings.TrimSpace(request.Username) == "" {
		return ErrorResponse(errors.InvalidInput("username", "username is required"))
	}
	if request.Email == "" {
		return ErrorResponse(errors.InvalidInput("email", "email is required"))
	}
	if _, err := mail.ParseAddress(request.Email); err != nil {
		return ErrorResponse(errors.InvalidInput("email", "invalid format"))
	}
	if request.Password == "" {
		return ErrorResponse(errors.InvalidInput("password", "password is required"))
	}
	if request.RoleID == "" {
		return ErrorResponse(errors.InvalidInput("role_id", "role_id is required"))
	}
	return nil
}
