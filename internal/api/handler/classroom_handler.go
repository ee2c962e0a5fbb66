package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colegio/school-system/internal/api/metrics"
	"github.com/colegio/school-system/internal/core/ports"
)

// ClassroomHandler handles HTTP requests for classroom operations. All role
// checks for classrooms are uniform, so they live entirely in the route table.
type ClassroomHandler struct {
	service ports.ClassroomService
	audit   AuditSink
}

func NewClassroomHandler(service ports.ClassroomService, audit AuditSink) *ClassroomHandler {
	return &ClassroomHandler{service: service, audit: audit}
}

// List handles GET /classroom.
//
// @Summary      List classrooms (paginated)
// @Tags         classrooms
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 10, max 100)"
// @Success      200    {object}  pagedResponse
// @Failure      401    {object}  errorResponse
// @Router       /classroom [get]
func (h *ClassroomHandler) List(c echo.Context) error {
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

// Get handles GET /classroom/:id, the detail view with students and subjects.
//
// @Summary      Get a classroom by id, with its students and subjects
// @Tags         classrooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Classroom id"
// @Success      200  {object}  domain.ClassroomDetail
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /classroom/{id} [get]
func (h *ClassroomHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// GetByName handles GET /classroom/name/:name.
//
// @Summary      Get a classroom by name
// @Tags         classrooms
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Classroom name"
// @Success      200   {object}  domain.Classroom
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /classroom/name/{name} [get]
func (h *ClassroomHandler) GetByName(c echo.Context) error {
	classroom, err := h.service.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classroom)
}

// Create handles POST /classroom. ADMIN only (route table).
//
// @Summary      Create a classroom
// @Tags         classrooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      classroomRequest  true  "Classroom details"
// @Success      201   {object}  domain.Classroom
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /classroom [post]
func (h *ClassroomHandler) Create(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	var req classroomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	classroom, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("classroom", "create").Inc()
	recordAudit(h.audit, identity, "create", "classroom", classroom.ID)

	return c.JSON(http.StatusCreated, classroom)
}

// Update handles PUT /classroom/:id. ADMIN only (route table).
//
// @Summary      Update a classroom
// @Tags         classrooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Classroom id"
// @Param        body  body      updateClassroomRequest  true  "Fields to update"
// @Success      200   {object}  domain.Classroom
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /classroom/{id} [put]
func (h *ClassroomHandler) Update(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	var req updateClassroomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id := c.Param("id")
	classroom, err := h.service.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("classroom", "update").Inc()
	recordAudit(h.audit, identity, "update", "classroom", id)

	return c.JSON(http.StatusOK, classroom)
}

// Delete handles DELETE /classroom/:id. ADMIN only (route table).
//
// @Summary      Delete a classroom
// @Tags         classrooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Classroom id"
// @Success      200  {object}  domain.Classroom
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /classroom/{id} [delete]
func (h *ClassroomHandler) Delete(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	deleted, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("classroom", "delete").Inc()
	recordAudit(h.audit, identity, "delete", "classroom", id)

	return c.JSON(http.StatusOK, deleted)
}
