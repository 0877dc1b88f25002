package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"properties-api/domain"
	"properties-api/dto"
)

// ContactRepository define la interfaz del repositorio de consultas
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, filters dto.ContactFilters) ([]domain.Contact, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus, response *domain.ContactResponse) (*domain.Contact, error)
}

// contactRepository implementa ContactRepository sobre MongoDB
type contactRepository struct {
	collection *mongo.Collection
}

// NewContactRepository crea una nueva instancia del repositorio
func NewContactRepository(db *mongo.Database) ContactRepository {
	return &contactRepository{collection: db.Collection("contacts")}
}

// Create inserta una consulta nueva
func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	result, err := r.collection.InsertOne(ctx, contact)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		contact.ID = oid
	}
	return nil
}

// GetByID busca una consulta por su ObjectID en hexadecimal
func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrContactNotFound
	}

	var contact domain.Contact
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&contact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// List devuelve la página de consultas, de la más nueva a la más vieja
func (r *contactRepository) List(ctx context.Context, filters dto.ContactFilters) ([]domain.Contact, int64, error) {
	query := bson.M{}
	if filters.Status != "" {
		query["status"] = filters.Status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(filters.Limit).
		SetSkip((filters.Page - 1) * filters.Limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	contacts := []domain.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// UpdateStatus actualiza el estado y, si corresponde, la respuesta
// Es un $set puntual, no un reemplazo del documento
func (r *contactRepository) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus, response *domain.ContactResponse) (*domain.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrContactNotFound
	}

	set := bson.M{"status": status}
	if response != nil {
		set["response"] = response
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var contact domain.Contact
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		opts,
	).Decode(&contact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}
