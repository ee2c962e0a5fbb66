package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colegio/school-system/internal/api/metrics"
	"github.com/colegio/school-system/internal/api/middleware"
	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
)

// SubjectHandler handles HTTP requests for subject operations.
type SubjectHandler struct {
	service ports.SubjectService
	audit   AuditSink
}

func NewSubjectHandler(service ports.SubjectService, audit AuditSink) *SubjectHandler {
	return &SubjectHandler{service: service, audit: audit}
}

// List handles GET /subject.
//
// @Summary      List subjects (paginated)
// @Tags         subjects
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 10, max 100)"
// @Success      200    {object}  pagedResponse
// @Failure      401    {object}  errorResponse
// @Router       /subject [get]
func (h *SubjectHandler) List(c echo.Context) error {
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

// Get handles GET /subject/:id. ADMIN and TEACHER may read any subject; the
// historical self-access rule (caller id equal to the subject id) is kept
// for compatibility.
//
// @Summary      Get a subject by id
// @Tags         subjects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Subject id"
// @Success      200  {object}  domain.Subject
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /subject/{id} [get]
func (h *SubjectHandler) Get(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if !allowSelfOr(identity, id, domain.RoleAdmin, domain.RoleTeacher) {
		return middleware.Deny("insufficient_role")
	}

	subject, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subject)
}

// Create handles POST /subject. ADMIN only (route table).
//
// @Summary      Create a subject
// @Tags         subjects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSubjectRequest  true  "Subject details"
// @Success      201   {object}  domain.Subject
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /subject [post]
func (h *SubjectHandler) Create(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	var req createSubjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	subject, err := h.service.Create(c.Request().Context(), ports.SubjectInput{
		Name:        req.Name,
		ClassroomID: req.ClassroomID,
		TeacherID:   req.TeacherID,
	})
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("subject", "create").Inc()
	recordAudit(h.audit, identity, "create", "subject", subject.ID)

	return c.JSON(http.StatusCreated, subject)
}

// Update handles PUT /subject/:id. ADMIN only (route table).
//
// @Summary      Update a subject
// @Tags         subjects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Subject id"
// @Param        body  body      updateSubjectRequest  true  "Fields to update"
// @Success      200   {object}  domain.Subject
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /subject/{id} [put]
func (h *SubjectHandler) Update(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	var req updateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id := c.Param("id")
	subject, err := h.service.Update(c.Request().Context(), id, ports.SubjectInput{
		Name:        req.Name,
		ClassroomID: req.ClassroomID,
		TeacherID:   req.TeacherID,
	})
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("subject", "update").Inc()
	recordAudit(h.audit, identity, "update", "subject", id)

	return c.JSON(http.StatusOK, subject)
}

// Delete handles DELETE /subject/:id. ADMIN only (route table).
//
// @Summary      Delete a subject
// @Tags         subjects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Subject id"
// @Success      200  {object}  domain.Subject
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /subject/{id} [delete]
func (h *SubjectHandler) Delete(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	deleted, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.EntityMutationsTotal.WithLabelValues("subject", "delete").Inc()
	recordAudit(h.audit, identity, "delete", "subject", id)

	return c.JSON(http.StatusOK, deleted)
}
