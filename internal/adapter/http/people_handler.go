package http

import (
	"net/http"

	permdomain "opsplatform-backend/internal/domain/permission"
	"opsplatform-backend/internal/domain/reconcile"
	roledomain "opsplatform-backend/internal/domain/role"
	"opsplatform-backend/internal/usecase/permission"
	"opsplatform-backend/internal/usecase/role"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// PeopleHandler serves the role catalogue and the permission matrix.
type PeopleHandler struct {
	roles *role.Usecase
	perms *permission.Usecase
	log   logrus.FieldLogger
}

func NewPeopleHandler(roles *role.Usecase, perms *permission.Usecase, log logrus.FieldLogger) *PeopleHandler {
	return &PeopleHandler{roles: roles, perms: perms, log: log}
}

type saveRoleReq struct {
	Code        string `json:"code" validate:"required,upper_code,max=50"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r saveRoleReq) input() role.SaveInput {
	return role.SaveInput{Code: r.Code, Name: r.Name, Description: r.Description, Status: roledomain.Status(r.Status)}
}

type reorderRolesReq struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,hex32"`
}

type setFlagReq struct {
	Value *bool `json:"value" validate:"required"`
}

type setVisibilityReq struct {
	Level *string `json:"level"`
	Scope *string `json:"scope"`
}

func (h *PeopleHandler) ListRoles(c echo.Context) error {
	roles, err := h.roles.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, reconcile.RoleSave, err)
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *PeopleHandler) CreateRole(c echo.Context) error {
	var req saveRoleReq
	if ok, err := bind(c, reconcile.RoleSave, &req); !ok {
		return err
	}
	r, err := h.roles.Create(c.Request().Context(), actorOf(c), req.input())
	if err != nil {
		return writeError(c, h.log, reconcile.RoleSave, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *PeopleHandler) UpdateRole(c echo.Context) error {
	roleID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.RoleSave, err)
	}
	var req saveRoleReq
	if ok, err := bind(c, reconcile.RoleSave, &req); !ok {
		return err
	}
	r, err := h.roles.Update(c.Request().Context(), actorOf(c), roleID, req.input())
	if err != nil {
		return writeError(c, h.log, reconcile.RoleSave, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *PeopleHandler) DeleteRole(c echo.Context) error {
	roleID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.RoleDelete, err)
	}
	if err := h.roles.Delete(c.Request().Context(), actorOf(c), roleID); err != nil {
		return writeError(c, h.log, reconcile.RoleDelete, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PeopleHandler) ReorderRoles(c echo.Context) error {
	var req reorderRolesReq
	if ok, err := bind(c, reconcile.RoleReorder, &req); !ok {
		return err
	}
	roles, err := h.roles.Reorder(c.Request().Context(), actorOf(c), req.IDs)
	if err != nil {
		return writeError(c, h.log, reconcile.RoleReorder, err)
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *PeopleHandler) ListPermissions(c echo.Context) error {
	entries, err := h.perms.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, reconcile.PermissionToggle, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *PeopleHandler) GetPermission(c echo.Context) error {
	roleID, err := pathID(c, "role_id")
	if err != nil {
		return writeError(c, h.log, reconcile.PermissionToggle, err)
	}
	e, err := h.perms.Get(c.Request().Context(), roleID)
	if err != nil {
		return writeError(c, h.log, reconcile.PermissionToggle, err)
	}
	return c.JSON(http.StatusOK, e)
}

// SetFlag writes a single flag column; concurrent toggles of other flags
// on the same role are not overwritten.
func (h *PeopleHandler) SetFlag(c echo.Context) error {
	roleID, err := pathID(c, "role_id")
	if err != nil {
		return writeError(c, h.log, reconcile.PermissionToggle, err)
	}
	var req setFlagReq
	if ok, err := bind(c, reconcile.PermissionToggle, &req); !ok {
		return err
	}
	flag := permdomain.Flag(c.Param("flag"))
	p, err := h.perms.SetFlag(c.Request().Context(), actorOf(c), roleID, flag, *req.Value)
	if err != nil {
		return writeError(c, h.log, reconcile.PermissionToggle, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PeopleHandler) SetVisibility(c echo.Context) error {
	roleID, err := pathID(c, "role_id")
	if err != nil {
		return writeError(c, h.log, reconcile.PermissionVisibility, err)
	}
	var req setVisibilityReq
	if ok, err := bind(c, reconcile.PermissionVisibility, &req); !ok {
		return err
	}
	var in permission.VisibilityInput
	var details []FieldError
	if req.Level != nil {
		l, err := permdomain.ParseLevel(*req.Level)
		if err != nil {
			details = append(details, FieldError{Field: "level", Message: err.Error()})
		}
		in.Level = &l
	}
	if req.Scope != nil {
		s, err := permdomain.ParseScope(*req.Scope)
		if err != nil {
			details = append(details, FieldError{Field: "scope", Message: err.Error()})
		}
		in.Scope = &s
	}
	if len(details) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:     "validation failed",
			Details:   details,
			Reconcile: string(reconcile.For(reconcile.PermissionVisibility)),
		})
	}
	p, err := h.perms.SetVisibility(c.Request().Context(), actorOf(c), roleID, in)
	if err != nil {
		return writeError(c, h.log, reconcile.PermissionVisibility, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Effective renders the permission row of a role as plain sentences.
func (h *PeopleHandler) Effective(c echo.Context) error {
	roleID, err := pathID(c, "role_id")
	if err != nil {
		return writeError(c, h.log, reconcile.PermissionToggle, err)
	}
	lines, err := h.perms.Effective(c.Request().Context(), roleID)
	if err != nil {
		return writeError(c, h.log, reconcile.PermissionToggle, err)
	}
	return c.JSON(http.StatusOK, lines)
}
