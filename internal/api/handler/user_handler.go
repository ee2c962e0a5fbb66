package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/colegio/school-system/internal/api/metrics"
	"github.com/colegio/school-system/internal/api/middleware"
	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations. Role allow-lists
// for the uniform endpoints live in the route table (middleware.RequireRoles);
// Get adds self-access on top and therefore checks inline.
type UserHandler struct {
	service ports.UserService
	audit   AuditSink
}

func NewUserHandler(service ports.UserService, audit AuditSink) *UserHandler {
	return &UserHandler{service: service, audit: audit}
}

// pageParams reads ?page and ?limit with the original defaults.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page == 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit == 0 {
		limit = 10
	}
	return page, limit
}

// List handles GET /user.
//
// @Summary      List users (paginated)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 10, max 100)"
// @Success      200    {object}  pagedResponse
// @Failure      401    {object}  errorResponse
// @Router       /user [get]
func (h *UserHandler) List(c echo.Context) error {
	page, limit := pageParams(c)

	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pagedResponse{
		TotalItems:  result.TotalItems,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
		Data:        result.Items,
	})
}

// Get handles GET /user/:id. ADMIN and TEACHER may read anyone; everyone may
// read themselves.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if !allowSelfOr(identity, id, domain.RoleAdmin, domain.RoleTeacher) {
		return middleware.Deny("insufficient_role")
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /user. ADMIN only (route table).
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /user [post]
func (h *UserHandler) Create(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		ChildrenIDs: req.Children,
		ClassroomID: req.ClassroomID,
	})
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("user", "create").Inc()
	recordAudit(h.audit, identity, "create", "user", user.ID)

	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /user/:id. ADMIN only (route table).
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id := c.Param("id")
	user, err := h.service.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		ChildrenIDs: req.Children,
		ClassroomID: req.ClassroomID,
	})
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("user", "update").Inc()
	recordAudit(h.audit, identity, "update", "user", id)

	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /user/:id. ADMIN only (route table).
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	deleted, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("user", "delete").Inc()
	recordAudit(h.audit, identity, "delete", "user", id)

	return c.JSON(http.StatusOK, deleted)
}
