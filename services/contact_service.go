package services

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"properties-api/domain"
	"properties-api/dto"
	"properties-api/repositories"
)

// ContactService define la interfaz del servicio de consultas
type ContactService interface {
	Submit(ctx context.Context, req dto.SubmitContactRequest) (*domain.Contact, error)
	List(ctx context.Context, filters dto.ContactFilters) ([]domain.Contact, int64, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateContactStatusRequest, actorID uint) (*domain.Contact, error)
}

// contactService es la implementación real del servicio
type contactService struct {
	repo     repositories.ContactRepository
	notifier Notifier
}

// NewContactService crea una nueva instancia del servicio
func NewContactService(repo repositories.ContactRepository, notifier Notifier) ContactService {
	return &contactService{repo: repo, notifier: notifier}
}

// Submit valida y persiste una consulta, y después dispara los avisos
// Los avisos salen en una goroutine, ya fuera del request: si el correo
// falla la consulta quedó guardada igual y el caller recibe éxito
func (s *contactService) Submit(ctx context.Context, req dto.SubmitContactRequest) (*domain.Contact, error) {
	ve := &ValidationError{}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		ve.Add("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		ve.Add("email is required")
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		ve.Add("phone is required")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		ve.Add("message is required")
	}

	subject := domain.ContactSubject(req.Subject)
	if req.Subject == "" {
		subject = domain.ContactSubjectGeneral
	} else if !subject.IsValid() {
		ve.Add("subject must be one of: plot_inquiry, flat_inquiry, general, complaint, feedback")
	}

	var propertyID *primitive.ObjectID
	if req.PropertyID != "" {
		oid, err := primitive.ObjectIDFromHex(req.PropertyID)
		if err != nil {
			ve.Add("propertyId is not a valid id")
		} else {
			propertyID = &oid
		}
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		Name:       name,
		Email:      email,
		Phone:      phone,
		Subject:    subject,
		Message:    message,
		PropertyID: propertyID,
		Status:     domain.ContactStatusNew,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	// Avisos al operador y al remitente, independientes de la respuesta
	go s.dispatchNotifications(contact)

	return contact, nil
}

// dispatchNotifications manda los dos correos y solo loguea los errores
func (s *contactService) dispatchNotifications(contact *domain.Contact) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendOperatorAlert(contact); err != nil {
		log.Printf("Error sending operator alert for contact %s: %v", contact.ID.Hex(), err)
	}
	if err := s.notifier.SendSubmitterAck(contact); err != nil {
		log.Printf("Error sending acknowledgment to %s: %v", contact.Email, err)
	}
}

// List devuelve las consultas de la más nueva a la más vieja
func (s *contactService) List(ctx context.Context, filters dto.ContactFilters) ([]domain.Contact, int64, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 20
	}
	if filters.Status != "" && !domain.ContactStatus(filters.Status).IsValid() {
		return nil, 0, NewValidationError("status must be one of: new, read, replied, archived")
	}
	return s.repo.List(ctx, filters)
}

// UpdateStatus cambia el estado de una consulta
// Cualquier estado del enum es asignable por un usuario autorizado; la
// respuesta solo se registra al pasar a "replied", una única vez, y queda
// a nombre del usuario que la hizo
func (s *contactService) UpdateStatus(ctx context.Context, id string, req dto.UpdateContactStatusRequest, actorID uint) (*domain.Contact, error) {
	status := domain.ContactStatus(req.Status)
	if !status.IsValid() {
		return nil, NewValidationError("status must be one of: new, read, replied, archived")
	}

	var response *domain.ContactResponse
	if strings.TrimSpace(req.ResponseMessage) != "" {
		if status != domain.ContactStatusReplied {
			return nil, NewValidationError("a response can only be attached when the status is replied")
		}

		contact, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if contact.Response != nil {
			return nil, NewValidationError("this contact has already been replied to")
		}

		response = &domain.ContactResponse{
			Message:   strings.TrimSpace(req.ResponseMessage),
			RepliedBy: actorID,
			RepliedAt: time.Now(),
		}
	}

	return s.repo.UpdateStatus(ctx, id, status, response)
}
