package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"properties-api/domain"
	"properties-api/dto"
)

// LeadRepository define la interfaz del repositorio de interesados
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, filters dto.LeadFilters) ([]domain.Lead, int64, error)
	Replace(ctx context.Context, lead *domain.Lead) error
	AddNote(ctx context.Context, id string, note domain.LeadNote) (*domain.Lead, error)
	CountAll(ctx context.Context) (int64, error)
	CountByField(ctx context.Context, field string) (map[string]int64, error)
	CountCreatedSince(ctx context.Context, since time.Time, status domain.LeadStatus) (int64, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

// leadRepository implementa LeadRepository sobre MongoDB
type leadRepository struct {
	collection *mongo.Collection
}

// NewLeadRepository crea una nueva instancia del repositorio
func NewLeadRepository(db *mongo.Database) LeadRepository {
	return &leadRepository{collection: db.Collection("leads")}
}

// Create inserta un interesado nuevo
func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	result, err := r.collection.InsertOne(ctx, lead)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		lead.ID = oid
	}
	return nil
}

// GetByID busca un interesado por su ObjectID en hexadecimal
func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrLeadNotFound
	}

	var lead domain.Lead
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// buildLeadQuery arma el filtro de Mongo a partir de los filtros recibidos
// Todos los criterios presentes se aplican en conjunto (AND)
func buildLeadQuery(filters dto.LeadFilters) bson.M {
	query := bson.M{}
	if filters.Status != "" {
		query["status"] = filters.Status
	}
	if filters.Source != "" {
		query["source"] = filters.Source
	}
	if filters.AssignedTo != nil {
		query["assignedTo"] = *filters.AssignedTo
	}
	if filters.CreatedAfter != nil || filters.CreatedBefore != nil {
		createdAt := bson.M{}
		if filters.CreatedAfter != nil {
			createdAt["$gte"] = *filters.CreatedAfter
		}
		if filters.CreatedBefore != nil {
			createdAt["$lte"] = *filters.CreatedBefore
		}
		query["createdAt"] = createdAt
	}
	return query
}

// List devuelve la página de interesados que cumple todos los filtros,
// ordenada del más nuevo al más viejo
func (r *leadRepository) List(ctx context.Context, filters dto.LeadFilters) ([]domain.Lead, int64, error) {
	query := buildLeadQuery(filters)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(filters.Limit).
		SetSkip((filters.Page - 1) * filters.Limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	leads := []domain.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// Replace reemplaza el documento completo de un interesado
func (r *leadRepository) Replace(ctx context.Context, lead *domain.Lead) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": lead.ID}, lead)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// AddNote agrega una nota al final de la lista con $push
// Las notas nunca se editan ni se borran
func (r *leadRepository) AddNote(ctx context.Context, id string, note domain.LeadNote) (*domain.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrLeadNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var lead domain.Lead
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"notes": note}},
		opts,
	).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// CountAll cuenta todos los interesados
func (r *leadRepository) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountByField agrupa y cuenta por un campo ("status" o "source")
// La agregación se resuelve en Mongo con $group
func (r *leadRepository) CountByField(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// CountCreatedSince cuenta los interesados creados desde `since`
// Si status no es vacío, también filtra por estado
func (r *leadRepository) CountCreatedSince(ctx context.Context, since time.Time, status domain.LeadStatus) (int64, error) {
	query := bson.M{"createdAt": bson.M{"$gte": since}}
	if status != "" {
		query["status"] = status
	}
	return r.collection.CountDocuments(ctx, query)
}

// CreatedSince devuelve las fechas de alta desde `since`
// El agrupado por día se hace en el servicio con la fecha local del server
func (r *leadRepository) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	opts := options.Find().
		SetProjection(bson.M{"createdAt": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"createdAt": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		times = append(times, row.CreatedAt)
	}
	return times, nil
}
