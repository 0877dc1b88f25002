package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"properties-api/domain"
	"properties-api/dto"
	"properties-api/repositories"
)

// ============================================
// MOCKS para los tests
// ============================================

type mockPropertyRepository struct {
	properties map[string]*domain.Property
	listCalls  int
}

func newMockPropertyRepository() *mockPropertyRepository {
	return &mockPropertyRepository{properties: make(map[string]*domain.Property)}
}

func (m *mockPropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	p.ID = primitive.NewObjectID()
	m.properties[p.ID.Hex()] = p
	return nil
}

func (m *mockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	p, exists := m.properties[id]
	if !exists {
		return nil, repositories.ErrPropertyNotFound
	}
	copy := *p
	return &copy, nil
}

func (m *mockPropertyRepository) List(ctx context.Context, filters dto.PropertyFilters) ([]domain.Property, int64, error) {
	m.listCalls++
	results := []domain.Property{}
	for _, p := range m.properties {
		if p.Status == domain.PropertyStatusAvailable {
			results = append(results, *p)
		}
	}
	return results, int64(len(results)), nil
}

func (m *mockPropertyRepository) Featured(ctx context.Context, limit int64) ([]domain.Property, error) {
	results := []domain.Property{}
	for _, p := range m.properties {
		if p.IsFeatured && p.Status == domain.PropertyStatusAvailable && int64(len(results)) < limit {
			results = append(results, *p)
		}
	}
	return results, nil
}

func (m *mockPropertyRepository) Search(ctx context.Context, q string, limit int64) ([]domain.Property, error) {
	results := []domain.Property{}
	for _, p := range m.properties {
		if int64(len(results)) < limit {
			results = append(results, *p)
		}
	}
	return results, nil
}

func (m *mockPropertyRepository) Replace(ctx context.Context, p *domain.Property) error {
	if _, exists := m.properties[p.ID.Hex()]; !exists {
		return repositories.ErrPropertyNotFound
	}
	copy := *p
	m.properties[p.ID.Hex()] = &copy
	return nil
}

func (m *mockPropertyRepository) MarkSold(ctx context.Context, id string) (*domain.Property, error) {
	p, exists := m.properties[id]
	if !exists {
		return nil, repositories.ErrPropertyNotFound
	}
	p.Status = domain.PropertyStatusSold
	copy := *p
	return &copy, nil
}

func (m *mockPropertyRepository) FindAvailableByTypeAndArea(ctx context.Context, propertyType domain.PropertyType, area string, limit int64) ([]domain.Property, error) {
	results := []domain.Property{}
	for _, p := range m.properties {
		if p.Status == domain.PropertyStatusAvailable && p.PropertyType == propertyType && p.Location.Area == area && int64(len(results)) < limit {
			results = append(results, *p)
		}
	}
	return results, nil
}

type mockCacheRepository struct {
	entries  map[string]*repositories.PropertyPage
	deleted  []string
	versions map[string]int64
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{
		entries:  make(map[string]*repositories.PropertyPage),
		versions: make(map[string]int64),
	}
}

func (m *mockCacheRepository) Get(key string) (*repositories.PropertyPage, bool) {
	page, found := m.entries[key]
	return page, found
}

func (m *mockCacheRepository) Set(key string, page *repositories.PropertyPage, ttl time.Duration) {
	m.entries[key] = page
}

func (m *mockCacheRepository) Delete(key string) {
	delete(m.entries, key)
	m.deleted = append(m.deleted, key)
}

func (m *mockCacheRepository) Version(key string) int64 {
	return m.versions[key]
}

func (m *mockCacheRepository) Bump(key string) {
	m.versions[key]++
}

type mockPublisher struct {
	events []string
}

func (m *mockPublisher) PublishPropertyEvent(action, propertyID string) {
	m.events = append(m.events, action+":"+propertyID)
}

func (m *mockPublisher) Close() error {
	return nil
}

func newPropertyService() (PropertyService, *mockPropertyRepository, *mockCacheRepository, *mockPublisher) {
	repo := newMockPropertyRepository()
	cache := newMockCacheRepository()
	publisher := &mockPublisher{}
	return NewPropertyService(repo, cache, publisher), repo, cache, publisher
}

func validCreateRequest() dto.CreatePropertyRequest {
	return dto.CreatePropertyRequest{
		Title:        "Corner plot in Najafgarh",
		Description:  "South facing plot near the main road",
		PropertyType: "plot",
		Area:         "najafgarh",
		City:         "Delhi",
		Price:        "2500000",
		SizeValue:    "900",
		Bedrooms:     "0",
		Bathrooms:    "0",
	}
}

// ============================================
// TESTS
// ============================================

// Test: Crear propiedad coercionando los campos del formulario
func TestCreateProperty_Success(t *testing.T) {
	service, _, _, publisher := newPropertyService()

	req := validCreateRequest()
	req.IsFeatured = "true"

	property, err := service.Create(context.Background(), req, []string{"uploads/properties/a.jpg"})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if property.Price != 2500000 {
		t.Errorf("Expected price 2500000, got %f", property.Price)
	}
	if property.Size.Value != 900 {
		t.Errorf("Expected size value 900, got %f", property.Size.Value)
	}
	if property.Size.Unit != domain.DefaultSizeUnit {
		t.Errorf("Expected default size unit %s, got %s", domain.DefaultSizeUnit, property.Size.Unit)
	}
	if property.Status != domain.PropertyStatusAvailable {
		t.Errorf("Expected status available, got %s", property.Status)
	}
	if !property.IsFeatured {
		t.Error("Expected property to be featured")
	}
	if len(publisher.events) != 1 || publisher.events[0] != "create:"+property.ID.Hex() {
		t.Errorf("Expected create event, got %v", publisher.events)
	}
}

// Test: Precio negativo o no numérico rechazado sin tocar el repositorio
func TestCreateProperty_InvalidPrice(t *testing.T) {
	service, repo, _, _ := newPropertyService()

	for _, price := range []string{"-500", "0", "abc", ""} {
		req := validCreateRequest()
		req.Price = price

		property, err := service.Create(context.Background(), req, nil)

		if property != nil {
			t.Errorf("price %q: expected nil property", price)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("price %q: expected ValidationError, got %v", price, err)
		}
	}
	if len(repo.properties) != 0 {
		t.Error("Expected no properties persisted")
	}
}

// Test: Más de 10 imágenes rechazadas
func TestCreateProperty_TooManyImages(t *testing.T) {
	service, _, _, _ := newPropertyService()

	images := make([]string, domain.MaxPropertyImages+1)
	for i := range images {
		images[i] = "uploads/properties/img.jpg"
	}

	_, err := service.Create(context.Background(), validCreateRequest(), images)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

// Test: El listado usa el caché en la segunda llamada
func TestListProperties_CachesResult(t *testing.T) {
	service, repo, _, _ := newPropertyService()
	service.Create(context.Background(), validCreateRequest(), nil)
	repo.listCalls = 0

	filters := dto.PropertyFilters{Type: "plot"}

	if _, _, err := service.List(context.Background(), filters); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, _, err := service.List(context.Background(), filters); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if repo.listCalls != 1 {
		t.Errorf("Expected 1 repository call, got %d", repo.listCalls)
	}
}

// Test: Una escritura invalida las páginas cacheadas del listado
func TestListProperties_FreshAfterWrite(t *testing.T) {
	service, repo, _, _ := newPropertyService()
	service.Create(context.Background(), validCreateRequest(), nil)
	repo.listCalls = 0

	filters := dto.PropertyFilters{Type: "plot"}

	if _, _, err := service.List(context.Background(), filters); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Alta nueva: la versión del listado cambia y la página vieja queda huérfana
	if _, err := service.Create(context.Background(), validCreateRequest(), nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	properties, _, err := service.List(context.Background(), filters)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if repo.listCalls != 2 {
		t.Errorf("Expected 2 repository calls, got %d", repo.listCalls)
	}
	if len(properties) != 2 {
		t.Errorf("Expected 2 properties, got %d", len(properties))
	}
}

// Test: Marcar vendida publica el evento "delete" y es idempotente
func TestMarkSold_Idempotent(t *testing.T) {
	service, _, _, publisher := newPropertyService()
	created, _ := service.Create(context.Background(), validCreateRequest(), nil)

	first, err := service.MarkSold(context.Background(), created.ID.Hex())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if first.Status != domain.PropertyStatusSold {
		t.Errorf("Expected status sold, got %s", first.Status)
	}

	// Repetir la operación sobre una propiedad ya vendida también es éxito
	second, err := service.MarkSold(context.Background(), created.ID.Hex())
	if err != nil {
		t.Fatalf("Expected no error on repeat, got %v", err)
	}
	if second.Status != domain.PropertyStatusSold {
		t.Errorf("Expected status sold on repeat, got %s", second.Status)
	}

	if publisher.events[len(publisher.events)-1] != "delete:"+created.ID.Hex() {
		t.Errorf("Expected delete event, got %v", publisher.events)
	}
}

// Test: Propiedad inexistente devuelve ErrPropertyNotFound
func TestGetProperty_NotFound(t *testing.T) {
	service, _, _, _ := newPropertyService()

	_, err := service.GetByID(context.Background(), primitive.NewObjectID().Hex())

	if !errors.Is(err, repositories.ErrPropertyNotFound) {
		t.Errorf("Expected ErrPropertyNotFound, got %v", err)
	}
}

// Test: Búsqueda sin query rechazada
func TestSearchProperties_EmptyQuery(t *testing.T) {
	service, _, _, _ := newPropertyService()

	_, err := service.Search(context.Background(), "   ")

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}

// Test: La actualización parcial solo pisa los campos presentes
func TestUpdateProperty_MergesFields(t *testing.T) {
	service, _, _, _ := newPropertyService()
	created, _ := service.Create(context.Background(), validCreateRequest(), nil)

	newPrice := 3000000.0
	updated, err := service.Update(context.Background(), created.ID.Hex(), dto.UpdatePropertyRequest{
		Price: &newPrice,
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Price != newPrice {
		t.Errorf("Expected price %f, got %f", newPrice, updated.Price)
	}
	if updated.Title != created.Title {
		t.Errorf("Expected title preserved, got %s", updated.Title)
	}
}

// Test: La actualización revalida el documento completo
func TestUpdateProperty_RejectsInvalidMerge(t *testing.T) {
	service, _, _, _ := newPropertyService()
	created, _ := service.Create(context.Background(), validCreateRequest(), nil)

	badPrice := -1.0
	_, err := service.Update(context.Background(), created.ID.Hex(), dto.UpdatePropertyRequest{
		Price: &badPrice,
	})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}
