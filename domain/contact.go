package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactSubject define el motivo de la consulta
type ContactSubject string

const (
	ContactSubjectPlotInquiry ContactSubject = "plot_inquiry"
	ContactSubjectFlatInquiry ContactSubject = "flat_inquiry"
	ContactSubjectGeneral     ContactSubject = "general"
	ContactSubjectComplaint   ContactSubject = "complaint"
	ContactSubjectFeedback    ContactSubject = "feedback"
)

// IsValid verifica que el motivo sea uno de los permitidos
func (s ContactSubject) IsValid() bool {
	switch s {
	case ContactSubjectPlotInquiry, ContactSubjectFlatInquiry,
		ContactSubjectGeneral, ContactSubjectComplaint, ContactSubjectFeedback:
		return true
	}
	return false
}

// ContactStatus define el estado de gestión de una consulta
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusReplied  ContactStatus = "replied"
	ContactStatusArchived ContactStatus = "archived"
)

// IsValid verifica que el estado sea uno de los permitidos
func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied, ContactStatusArchived:
		return true
	}
	return false
}

// ContactResponse es la respuesta del administrador a una consulta
// Se setea una única vez, cuando la consulta pasa a "replied"
type ContactResponse struct {
	Message   string    `bson:"message" json:"message"`
	RepliedBy uint      `bson:"repliedBy" json:"repliedBy"` // Referencia débil a User
	RepliedAt time.Time `bson:"repliedAt" json:"repliedAt"`
}

// Contact representa una consulta enviada desde el formulario de contacto
type Contact struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	Email      string              `bson:"email" json:"email"`
	Phone      string              `bson:"phone" json:"phone"`
	Subject    ContactSubject      `bson:"subject" json:"subject"`
	Message    string              `bson:"message" json:"message"`
	PropertyID *primitive.ObjectID `bson:"propertyId,omitempty" json:"propertyId,omitempty"` // Referencia opcional a Property
	Status     ContactStatus       `bson:"status" json:"status"`
	Response   *ContactResponse    `bson:"response,omitempty" json:"response,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}
