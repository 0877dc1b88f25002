package dto

// CreatePropertyRequest representa el alta de una propiedad
// Llega como multipart/form-data junto con las imágenes, por eso
// los campos numéricos vienen como strings y se coercionan en el servicio
type CreatePropertyRequest struct {
	Title        string `form:"title"`
	Description  string `form:"description"`
	PropertyType string `form:"propertyType"`
	Area         string `form:"area"`
	City         string `form:"city"`
	Price        string `form:"price"`
	SizeValue    string `form:"sizeValue"`
	SizeUnit     string `form:"sizeUnit"`
	Bedrooms     string `form:"bedrooms"`
	Bathrooms    string `form:"bathrooms"`
	IsFeatured   string `form:"isFeatured"`
}

// UpdatePropertyRequest representa una actualización parcial
// Los punteros distinguen "campo ausente" de "campo en cero"
// El status no se actualiza por acá: la única transición es markSold
type UpdatePropertyRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	PropertyType *string  `json:"propertyType,omitempty"`
	Area         *string  `json:"area,omitempty"`
	City         *string  `json:"city,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	SizeValue    *float64 `json:"sizeValue,omitempty"`
	SizeUnit     *string  `json:"sizeUnit,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	IsFeatured   *bool    `json:"isFeatured,omitempty"`
}

// PropertyFilters representa los filtros del listado público
// El listado público siempre se restringe a status=available
type PropertyFilters struct {
	Type     string   `form:"type"`
	Location string   `form:"location"` // Compara contra location.area
	MinPrice *float64 `form:"minPrice"`
	MaxPrice *float64 `form:"maxPrice"`
	Bedrooms *int     `form:"bedrooms"` // Mínimo de dormitorios
	Page     int64    `form:"page"`
	Limit    int64    `form:"limit"`
	SortBy   string   `form:"sortBy"`
	Order    string   `form:"order"` // "asc" o "desc"
}
