package repositories

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"properties-api/domain"
	"properties-api/dto"
)

// PropertyRepository define la interfaz del repositorio de propiedades
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, filters dto.PropertyFilters) ([]domain.Property, int64, error)
	Featured(ctx context.Context, limit int64) ([]domain.Property, error)
	Search(ctx context.Context, q string, limit int64) ([]domain.Property, error)
	Replace(ctx context.Context, p *domain.Property) error
	MarkSold(ctx context.Context, id string) (*domain.Property, error)
	FindAvailableByTypeAndArea(ctx context.Context, propertyType domain.PropertyType, area string, limit int64) ([]domain.Property, error)
}

// propertyRepository implementa PropertyRepository sobre MongoDB
type propertyRepository struct {
	collection *mongo.Collection
}

// NewPropertyRepository crea una nueva instancia del repositorio
func NewPropertyRepository(db *mongo.Database) PropertyRepository {
	return &propertyRepository{collection: db.Collection("properties")}
}

// Create inserta una propiedad nueva
func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// GetByID busca una propiedad por su ObjectID en hexadecimal
// Un ID mal formado se trata igual que un ID inexistente
func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPropertyNotFound
	}

	var p domain.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List devuelve la página de propiedades disponibles que cumple todos los
// filtros, junto con el total para calcular las páginas
func (r *propertyRepository) List(ctx context.Context, filters dto.PropertyFilters) ([]domain.Property, int64, error) {
	// 1. Armar el filtro: el listado público siempre es status=available
	query := bson.M{"status": domain.PropertyStatusAvailable}
	if filters.Type != "" {
		query["propertyType"] = filters.Type
	}
	if filters.Location != "" {
		query["location.area"] = filters.Location
	}
	if filters.MinPrice != nil || filters.MaxPrice != nil {
		price := bson.M{}
		if filters.MinPrice != nil {
			price["$gte"] = *filters.MinPrice
		}
		if filters.MaxPrice != nil {
			price["$lte"] = *filters.MaxPrice
		}
		query["price"] = price
	}
	if filters.Bedrooms != nil {
		query["bedrooms"] = bson.M{"$gte": *filters.Bedrooms}
	}

	// 2. Orden elegido por el caller, createdAt descendente por defecto
	direction := -1
	if filters.Order == "asc" {
		direction = 1
	}
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: direction}}).
		SetLimit(filters.Limit).
		SetSkip((filters.Page - 1) * filters.Limit)

	// 3. Ejecutar la consulta y el count con el mismo filtro
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// Featured devuelve hasta `limit` propiedades destacadas y disponibles
func (r *propertyRepository) Featured(ctx context.Context, limit int64) ([]domain.Property, error) {
	query := bson.M{
		"isFeatured": true,
		"status":     domain.PropertyStatusAvailable,
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// Search hace una búsqueda por subcadena, sin distinguir mayúsculas,
// sobre título, descripción, zona y ciudad de propiedades disponibles
func (r *propertyRepository) Search(ctx context.Context, q string, limit int64) ([]domain.Property, error) {
	// El término se busca literal, no como expresión regular
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}

	query := bson.M{
		"status": domain.PropertyStatusAvailable,
		"$or": []bson.M{
			{"title": pattern},
			{"description": pattern},
			{"location.area": pattern},
			{"location.city": pattern},
		},
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// Replace reemplaza el documento completo de una propiedad
func (r *propertyRepository) Replace(ctx context.Context, p *domain.Property) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// MarkSold marca una propiedad como vendida (baja lógica)
// Repetir la operación sobre una propiedad ya vendida no es un error
func (r *propertyRepository) MarkSold(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPropertyNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Property
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": domain.PropertyStatusSold}},
		opts,
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAvailableByTypeAndArea busca propiedades disponibles que coincidan
// exactamente con el tipo y la zona; se usa para sugerencias de interesados
func (r *propertyRepository) FindAvailableByTypeAndArea(ctx context.Context, propertyType domain.PropertyType, area string, limit int64) ([]domain.Property, error) {
	query := bson.M{
		"propertyType":  propertyType,
		"location.area": area,
		"status":        domain.PropertyStatusAvailable,
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}
