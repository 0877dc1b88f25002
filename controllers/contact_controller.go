package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"properties-api/dto"
	"properties-api/services"
)

// ContactController maneja los endpoints HTTP del formulario de contacto
type ContactController struct {
	service services.ContactService
}

// NewContactController crea una nueva instancia del controlador
func NewContactController(service services.ContactService) *ContactController {
	return &ContactController{service: service}
}

// Submit maneja POST /api/contact
// Endpoint público: guarda la consulta y dispara los mails en background
func (ctrl *ContactController) Submit(c *gin.Context) {
	var req dto.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "name, email, phone and message are required",
		})
		return
	}

	contact, err := ctrl.service.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Data:    contact,
		Message: "Thank you for contacting us. We will get back to you soon.",
	})
}

// GetAll maneja GET /api/contact
// Listado protegido, filtrable por status, más reciente primero
func (ctrl *ContactController) GetAll(c *gin.Context) {
	var filters dto.ContactFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "invalid query parameters",
		})
		return
	}

	contacts, total, err := ctrl.service.List(c.Request.Context(), filters)
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

	c.JSON(http.StatusOK, dto.NewPagedResponse(contacts, len(contacts), total, page, limit))
}

// UpdateStatus maneja PUT /api/contact/:id
// Al pasar a "replied" se adjunta la respuesta con el usuario que respondió
func (ctrl *ContactController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "status is required",
		})
		return
	}

	actorValue, _ := c.Get("user_id")
	actorID, _ := actorValue.(uint)

	contact, err := ctrl.service.UpdateStatus(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    contact,
		Message: "Contact status updated",
	})
}
