package services

import (
	"context"
	"crypto/md5"
	"fmt"
	"strconv"
	"strings"
	"time"

	"properties-api/domain"
	"properties-api/dto"
	"properties-api/publishers"
	"properties-api/repositories"
)

// featuredCacheKey es la clave del caché de propiedades destacadas
const featuredCacheKey = "properties:featured"

// listVersionKey versiona las claves de los listados cacheados
// Cada escritura lo incrementa, así ninguna página sobrevive a un cambio
const listVersionKey = "properties:list:version"

// listCacheTTL es el TTL del caché de listados en Memcached
const listCacheTTL = 5 * time.Minute

// maxFeatured es la cantidad máxima de destacadas que se devuelven
const maxFeatured = 6

// maxSearchResults es el tope de resultados de búsqueda
const maxSearchResults = 20

// PropertyService define la interfaz del servicio de propiedades
type PropertyService interface {
	List(ctx context.Context, filters dto.PropertyFilters) ([]domain.Property, int64, error)
	Featured(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	Search(ctx context.Context, q string) ([]domain.Property, error)
	Create(ctx context.Context, req dto.CreatePropertyRequest, imagePaths []string) (*domain.Property, error)
	Update(ctx context.Context, id string, req dto.UpdatePropertyRequest) (*domain.Property, error)
	MarkSold(ctx context.Context, id string) (*domain.Property, error)
}

// propertyService es la implementación real del servicio
type propertyService struct {
	repo      repositories.PropertyRepository
	cache     repositories.CacheRepository
	publisher publishers.EventPublisher
}

// NewPropertyService crea una nueva instancia del servicio
func NewPropertyService(repo repositories.PropertyRepository, cache repositories.CacheRepository, publisher publishers.EventPublisher) PropertyService {
	return &propertyService{repo: repo, cache: cache, publisher: publisher}
}

// listCacheKey genera la clave de caché a partir de los filtros
func (s *propertyService) listCacheKey(f dto.PropertyFilters) string {
	minPrice, maxPrice := -1.0, -1.0
	if f.MinPrice != nil {
		minPrice = *f.MinPrice
	}
	if f.MaxPrice != nil {
		maxPrice = *f.MaxPrice
	}
	bedrooms := -1
	if f.Bedrooms != nil {
		bedrooms = *f.Bedrooms
	}

	keyString := strings.Join([]string{
		fmt.Sprintf("type:%s", f.Type),
		fmt.Sprintf("location:%s", f.Location),
		fmt.Sprintf("min_price:%.2f", minPrice),
		fmt.Sprintf("max_price:%.2f", maxPrice),
		fmt.Sprintf("bedrooms:%d", bedrooms),
		fmt.Sprintf("page:%d", f.Page),
		fmt.Sprintf("limit:%d", f.Limit),
		fmt.Sprintf("sort_by:%s", f.SortBy),
		fmt.Sprintf("order:%s", f.Order),
	}, "|")

	hash := md5.Sum([]byte(keyString))
	return fmt.Sprintf("properties:list:v%d:%x", s.cache.Version(listVersionKey), hash)
}

// sortableFields son los campos por los que se puede ordenar el listado
var sortableFields = map[string]bool{
	"createdAt": true,
	"price":     true,
	"bedrooms":  true,
	"title":     true,
}

// List devuelve la página de propiedades disponibles que cumple los filtros
func (s *propertyService) List(ctx context.Context, filters dto.PropertyFilters) ([]domain.Property, int64, error) {
	// 1. Normalizar paginación y orden
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 10
	}
	if !sortableFields[filters.SortBy] {
		filters.SortBy = "createdAt"
	}
	if filters.Order != "asc" {
		filters.Order = "desc"
	}

	// 2. Consultar el caché primero
	key := s.listCacheKey(filters)
	if page, found := s.cache.Get(key); found {
		return page.Properties, page.Total, nil
	}

	// 3. Cache miss: consultar Mongo y guardar la página
	properties, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	s.cache.Set(key, &repositories.PropertyPage{Properties: properties, Total: total}, listCacheTTL)

	return properties, total, nil
}

// Featured devuelve hasta 6 propiedades destacadas y disponibles
func (s *propertyService) Featured(ctx context.Context) ([]domain.Property, error) {
	if page, found := s.cache.Get(featuredCacheKey); found {
		return page.Properties, nil
	}

	properties, err := s.repo.Featured(ctx, maxFeatured)
	if err != nil {
		return nil, err
	}
	s.cache.Set(featuredCacheKey, &repositories.PropertyPage{Properties: properties, Total: int64(len(properties))}, listCacheTTL)

	return properties, nil
}

// GetByID devuelve una propiedad o ErrPropertyNotFound
func (s *propertyService) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	return s.repo.GetByID(ctx, id)
}

// Search busca por subcadena en título, descripción, zona y ciudad
func (s *propertyService) Search(ctx context.Context, q string) ([]domain.Property, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, NewValidationError("search query is required")
	}
	return s.repo.Search(ctx, q, maxSearchResults)
}

// Create valida, coerciona los números y persiste la propiedad
// Las imágenes ya fueron guardadas por el storage; acá solo se asocian
func (s *propertyService) Create(ctx context.Context, req dto.CreatePropertyRequest, imagePaths []string) (*domain.Property, error) {
	ve := &ValidationError{}

	// 1. Campos de texto requeridos
	title := strings.TrimSpace(req.Title)
	if title == "" {
		ve.Add("title is required")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		ve.Add("description is required")
	}
	area := strings.TrimSpace(req.Area)
	if area == "" {
		ve.Add("location area is required")
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		ve.Add("location city is required")
	}

	propertyType := domain.PropertyType(req.PropertyType)
	if !propertyType.IsValid() {
		ve.Add("propertyType must be one of: plot, flat")
	}

	// 2. Coerciones numéricas: price y sizeValue deben ser positivos
	price := parsePositiveFloat(req.Price, "price", ve)
	sizeValue := parsePositiveFloat(req.SizeValue, "sizeValue", ve)
	bedrooms := parseNonNegativeInt(req.Bedrooms, "bedrooms", ve)
	bathrooms := parseNonNegativeInt(req.Bathrooms, "bathrooms", ve)

	sizeUnit := strings.TrimSpace(req.SizeUnit)
	if sizeUnit == "" {
		sizeUnit = domain.DefaultSizeUnit
	}

	isFeatured := req.IsFeatured == "true" || req.IsFeatured == "1"

	if len(imagePaths) > domain.MaxPropertyImages {
		ve.Add(fmt.Sprintf("a property can have at most %d images", domain.MaxPropertyImages))
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	// 3. Armar y persistir el documento
	now := time.Now()
	property := &domain.Property{
		Title:        title,
		Description:  description,
		PropertyType: propertyType,
		Location:     domain.Location{Area: area, City: city},
		Price:        price,
		Size:         domain.Size{Value: sizeValue, Unit: sizeUnit},
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		Images:       imagePaths,
		Status:       domain.PropertyStatusAvailable,
		IsFeatured:   isFeatured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if property.Images == nil {
		property.Images = []string{}
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}

	// 4. Invalidar destacadas y avisar al indexador
	s.cache.Delete(featuredCacheKey)
	s.cache.Bump(listVersionKey)
	s.publisher.PublishPropertyEvent("create", property.ID.Hex())

	return property, nil
}

// Update mergea los campos recibidos y revalida el documento completo
func (s *propertyService) Update(ctx context.Context, id string, req dto.UpdatePropertyRequest) (*domain.Property, error) {
	// 1. Buscar el documento actual
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Aplicar los campos presentes
	if req.Title != nil {
		property.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		property.Description = strings.TrimSpace(*req.Description)
	}
	if req.PropertyType != nil {
		property.PropertyType = domain.PropertyType(*req.PropertyType)
	}
	if req.Area != nil {
		property.Location.Area = strings.TrimSpace(*req.Area)
	}
	if req.City != nil {
		property.Location.City = strings.TrimSpace(*req.City)
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.SizeValue != nil {
		property.Size.Value = *req.SizeValue
	}
	if req.SizeUnit != nil {
		property.Size.Unit = strings.TrimSpace(*req.SizeUnit)
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.IsFeatured != nil {
		property.IsFeatured = *req.IsFeatured
	}

	// 3. Revalidar el documento mergeado completo
	ve := &ValidationError{}
	if property.Title == "" {
		ve.Add("title is required")
	}
	if property.Description == "" {
		ve.Add("description is required")
	}
	if property.Location.Area == "" {
		ve.Add("location area is required")
	}
	if property.Location.City == "" {
		ve.Add("location city is required")
	}
	if !property.PropertyType.IsValid() {
		ve.Add("propertyType must be one of: plot, flat")
	}
	if property.Price <= 0 {
		ve.Add("price must be a positive number")
	}
	if property.Size.Value <= 0 {
		ve.Add("sizeValue must be a positive number")
	}
	if property.Size.Unit == "" {
		property.Size.Unit = domain.DefaultSizeUnit
	}
	if property.Bedrooms < 0 {
		ve.Add("bedrooms must not be negative")
	}
	if property.Bathrooms < 0 {
		ve.Add("bathrooms must not be negative")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	// 4. Persistir el reemplazo
	property.UpdatedAt = time.Now()
	if err := s.repo.Replace(ctx, property); err != nil {
		return nil, err
	}

	s.cache.Delete(featuredCacheKey)
	s.cache.Bump(listVersionKey)
	s.publisher.PublishPropertyEvent("update", property.ID.Hex())

	return property, nil
}

// MarkSold marca la propiedad como vendida
// Es idempotente: repetirla sobre una vendida devuelve éxito igual
func (s *propertyService) MarkSold(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.repo.MarkSold(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(featuredCacheKey)
	s.cache.Bump(listVersionKey)
	// Para el índice de búsqueda una vendida deja de existir
	s.publisher.PublishPropertyEvent("delete", property.ID.Hex())

	return property, nil
}

// parsePositiveFloat coerciona un string a float positivo
func parsePositiveFloat(raw, field string, ve *ValidationError) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		ve.Add(field + " is required")
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		ve.Add(field + " must be a positive number")
		return 0
	}
	return value
}

// parseNonNegativeInt coerciona un string a entero no negativo, 0 por defecto
func parseNonNegativeInt(raw, field string, ve *ValidationError) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		ve.Add(field + " must be a non-negative integer")
		return 0
	}
	return value
}
