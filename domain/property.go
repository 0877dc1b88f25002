package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyType define los tipos de propiedad que maneja la inmobiliaria
type PropertyType string

const (
	PropertyTypePlot PropertyType = "plot" // Terreno
	PropertyTypeFlat PropertyType = "flat" // Departamento
)

// IsValid verifica que el tipo de propiedad sea uno de los permitidos
func (t PropertyType) IsValid() bool {
	return t == PropertyTypePlot || t == PropertyTypeFlat
}

// PropertyStatus define el estado de publicación de una propiedad
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available" // Disponible para la venta
	PropertyStatusSold      PropertyStatus = "sold"      // Vendida (baja lógica)
)

// Location es la ubicación embebida de una propiedad
type Location struct {
	Area string `bson:"area" json:"area"`
	City string `bson:"city" json:"city"`
}

// Size es la superficie embebida de una propiedad
type Size struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit" json:"unit"` // "sqft" por defecto
}

// Property representa una propiedad publicada por la inmobiliaria
// Se persiste como documento en MongoDB
type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	PropertyType PropertyType       `bson:"propertyType" json:"propertyType"`
	Location     Location           `bson:"location" json:"location"`
	Price        float64            `bson:"price" json:"price"`
	Size         Size               `bson:"size" json:"size"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms"`
	Images       []string           `bson:"images" json:"images"` // Rutas de archivos subidos, máximo 10
	Status       PropertyStatus     `bson:"status" json:"status"`
	IsFeatured   bool               `bson:"isFeatured" json:"isFeatured"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSizeUnit es la unidad de superficie por defecto
const DefaultSizeUnit = "sqft"

// MaxPropertyImages es la cantidad máxima de imágenes por propiedad
const MaxPropertyImages = 10
