package dto

// Response es la envoltura estándar de todas las respuestas de la API
// Toda respuesta lleva success; data y message son opcionales
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ListResponse es la envoltura para listados sin paginación (featured, search)
type ListResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

// PagedResponse es la envoltura para listados paginados
type PagedResponse struct {
	Success     bool        `json:"success"`
	Count       int         `json:"count"`
	Total       int64       `json:"total"`
	TotalPages  int64       `json:"totalPages"`
	CurrentPage int64       `json:"currentPage"`
	Data        interface{} `json:"data"`
}

// NewPagedResponse arma la envoltura calculando la cantidad de páginas
func NewPagedResponse(data interface{}, count int, total, page, limit int64) PagedResponse {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PagedResponse{
		Success:     true,
		Count:       count,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Data:        data,
	}
}
