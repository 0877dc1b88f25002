package dto

// SubmitContactRequest representa una consulta del formulario de contacto
type SubmitContactRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Subject    string `json:"subject,omitempty"`
	Message    string `json:"message" binding:"required"`
	PropertyID string `json:"propertyId,omitempty"` // Referencia opcional a una propiedad
}

// UpdateContactStatusRequest representa el cambio de estado de una consulta
// Si viene responseMessage, la consulta debe pasar a "replied" y la
// respuesta queda registrada a nombre del usuario autenticado
type UpdateContactStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	ResponseMessage string `json:"responseMessage,omitempty"`
}

// ContactFilters representa los filtros del listado de consultas
type ContactFilters struct {
	Status string `form:"status"`
	Page   int64  `form:"page"`
	Limit  int64  `form:"limit"`
}
