package api

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"

	"github.com/edustack/academy-idm/pkg/errors"
	rolepkg "github.com/edustack/academy-idm/pkg/role"
)

type Handle struct {
	roleService *rolepkg.RoleService
}

func NewHandle(roleService *rolepkg.RoleService) *Handle {
	return &Handle{
		roleService: roleService,
	}
}

// Get handles retrieving a list of roles
// (GET /roles)
func (h *Handle) Get(w http.ResponseWriter, r *http.Request) *Response {
	roles, err := h.roleService.FindRoles(r.Context())
	if err != nil {
		slog.Error("Failed to find roles", "err", err)
		return ErrorResponse(err)
	}

	apiRoles := make([]*rolepkg.RoleDTO, len(roles))
	for i := range roles {
		apiRoles[i] = rolepkg.ToDTO(&roles[i])
	}
	return JSONResponse(http.StatusOK, apiRoles)
}

// GetID handles retrieving a role by ID or name
// (GET /roles/{id})
func (h *Handle) GetID(w http.ResponseWriter, r *http.Request) *Response {
	identifier := chi.URLParam(r, "id")

	role, err := h.roleService.Resolve(r.Context(), identifier)
	if err != nil {
		if !errors.IsCode(err, errors.ErrCodeRoleNotFound) {
			slog.Error("Failed to resolve role", "identifier", identifier, "err", err)
		}
		return ErrorResponse(err)
	}
	return JSONResponse(http.StatusOK, rolepkg.ToDTO(&role))
}

// Create handles creating a new role
// (POST /roles)
func (h *Handle) Create(w http.ResponseWriter, r *http.Request) *Response {
	var request rolepkg.CreateRoleParams
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		return ErrorResponse(errors.InvalidInput("body", "malformed JSON"))
	}
	if request.Name == "" {
		return ErrorResponse(errors.InvalidInput("name", "name is required"))
	}

	id, err := h.roleService.CreateRole(r.Context(), request.Name, request.Description)
	if err != nil {
		if stderrors.Is(err, rolepkg.ErrEmptyRoleName) {
			return ErrorResponse(errors.InvalidInput("name", "name is required"))
		}
		slog.Error("Failed to create role", "err", err)
		return ErrorResponse(err)
	}
	return JSONResponse(http.StatusCreated, map[string]string{"id": id})
}
