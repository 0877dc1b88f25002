package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"properties-api/dto"
	"properties-api/services"
)

// LeadController maneja los endpoints HTTP de leads
type LeadController struct {
	service services.LeadService
}

// NewLeadController crea una nueva instancia del controlador
func NewLeadController(service services.LeadService) *LeadController {
	return &LeadController{service: service}
}

// parseDate acepta fechas en RFC3339 o como "2006-01-02"
func parseDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return &t, true
	}
	return nil, false
}

// Create maneja POST /api/leads
// Endpoint público: lo usa el formulario de captación del sitio
func (ctrl *LeadController) Create(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "name, email and phone are required",
		})
		return
	}

	lead, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Data:    lead,
		Message: "Lead created successfully",
	})
}

// GetAll maneja GET /api/leads
// Listado protegido con filtros conjuntivos y paginación
func (ctrl *LeadController) GetAll(c *gin.Context) {
	var filters dto.LeadFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "invalid query parameters",
		})
		return
	}

	// Las fechas se parsean a mano para aceptar los dos formatos
	after, ok := parseDate(filters.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "startDate must be RFC3339 or YYYY-MM-DD",
		})
		return
	}
	before, ok := parseDate(filters.EndDate)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "endDate must be RFC3339 or YYYY-MM-DD",
		})
		return
	}
	filters.CreatedAfter = after
	filters.CreatedBefore = before

	leads, total, err := ctrl.service.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 {
		limit = 20
	}

	c.JSON(http.StatusOK, dto.NewPagedResponse(leads, len(leads), total, page, limit))
}

// GetStats maneja GET /api/leads/stats
// Va registrada ANTES de /:id para que "stats" no se tome como un ID
func (ctrl *LeadController) GetStats(c *gin.Context) {
	stats, err := ctrl.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: stats})
}

// GetByID maneja GET /api/leads/:id
// Incluye hasta 5 propiedades sugeridas según las preferencias del lead
func (ctrl *LeadController) GetByID(c *gin.Context) {
	detail, err := ctrl.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: detail})
}

// Update maneja PUT /api/leads/:id
func (ctrl *LeadController) Update(c *gin.Context) {
	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	lead, err := ctrl.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    lead,
		Message: "Lead updated successfully",
	})
}

// AddNote maneja POST /api/leads/:id/notes
// El autor de la nota es el usuario autenticado, no viene en el body
func (ctrl *LeadController) AddNote(c *gin.Context) {
	var req dto.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "note text is required",
		})
		return
	}

	authorID, _ := c.Get("user_id")
	id, _ := authorID.(uint)

	lead, err := ctrl.service.AddNote(c.Request.Context(), c.Param("id"), req.Text, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    lead,
		Message: "Note added successfully",
	})
}
