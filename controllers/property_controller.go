package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"properties-api/dto"
	"properties-api/services"
	"properties-api/storage"
)

// PropertyController maneja los endpoints HTTP de propiedades
type PropertyController struct {
	service services.PropertyService
	storage storage.ImageStorage
}

// NewPropertyController crea una nueva instancia del controlador
func NewPropertyController(service services.PropertyService, storage storage.ImageStorage) *PropertyController {
	return &PropertyController{service: service, storage: storage}
}

// GetAll maneja GET /api/properties
// Listado público con filtros y paginación
// Ejemplo: GET /api/properties?type=plot&minPrice=100000&page=2
func (ctrl *PropertyController) GetAll(c *gin.Context) {
	// 1. Parsear los filtros del query string
	var filters dto.PropertyFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "invalid query parameters",
		})
		return
	}

	// 2. Llamar al servicio (aplica defaults de paginación y cache)
	properties, total, err := ctrl.service.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	// El servicio ya normalizó page/limit, recalculamos acá los defaults
	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 {
		limit = 10
	}

	c.JSON(http.StatusOK, dto.NewPagedResponse(properties, len(properties), total, page, limit))
}

// GetFeatured maneja GET /api/properties/featured
// Devuelve hasta 6 propiedades destacadas disponibles
func (ctrl *PropertyController) GetFeatured(c *gin.Context) {
	properties, err := ctrl.service.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Success: true,
		Count:   len(properties),
		Data:    properties,
	})
}

// Search maneja GET /api/properties/search?q=...
func (ctrl *PropertyController) Search(c *gin.Context) {
	properties, err := ctrl.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Success: true,
		Count:   len(properties),
		Data:    properties,
	})
}

// GetByID maneja GET /api/properties/:id
func (ctrl *PropertyController) GetByID(c *gin.Context) {
	property, err := ctrl.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Data: property})
}

// Create maneja POST /api/properties
// Llega como multipart/form-data: los campos de texto más las imágenes
// Solo admin y agent llegan hasta acá (lo garantiza el middleware)
func (ctrl *PropertyController) Create(c *gin.Context) {
	// 1. Parsear los campos de texto del formulario
	var req dto.CreatePropertyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "invalid form data",
		})
		return
	}

	// 2. Extraer los archivos de imagen (son opcionales)
	var imagePaths []string
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		files := form.File["images"]
		if len(files) > 0 {
			// Validar todo ANTES de escribir nada a disco
			if err := storage.ValidateImages(files); err != nil {
				respondError(c, err)
				return
			}
			imagePaths, err = ctrl.storage.SaveImages(files)
			if err != nil {
				respondError(c, err)
				return
			}
		}
	}

	// 3. Crear la propiedad
	property, err := ctrl.service.Create(c.Request.Context(), req, imagePaths)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Data:    property,
		Message: "Property created successfully",
	})
}

// Update maneja PUT /api/properties/:id
// Actualización parcial: solo se pisan los campos presentes en el JSON
func (ctrl *PropertyController) Update(c *gin.Context) {
	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	property, err := ctrl.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    property,
		Message: "Property updated successfully",
	})
}

// Delete maneja DELETE /api/properties/:id
// No borra el documento: lo marca como vendido (soft delete)
// Solo admin llega hasta acá
func (ctrl *PropertyController) Delete(c *gin.Context) {
	property, err := ctrl.service.MarkSold(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    property,
		Message: "Property marked as sold",
	})
}
