package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadSource define por qué canal llegó el interesado
type LeadSource string

const (
	LeadSourceWebsiteForm LeadSource = "website_form"
	LeadSourcePhoneCall   LeadSource = "phone_call"
	LeadSourceWalkIn      LeadSource = "walk_in"
	LeadSourceReferral    LeadSource = "referral"
)

// IsValid verifica que el origen sea uno de los permitidos
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWebsiteForm, LeadSourcePhoneCall, LeadSourceWalkIn, LeadSourceReferral:
		return true
	}
	return false
}

// LeadStatus define el estado de seguimiento de un interesado
type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new"
	LeadStatusContacted     LeadStatus = "contacted"
	LeadStatusInterested    LeadStatus = "interested"
	LeadStatusNotInterested LeadStatus = "not_interested"
	LeadStatusConverted     LeadStatus = "converted"
)

// IsValid verifica que el estado sea uno de los permitidos
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusInterested,
		LeadStatusNotInterested, LeadStatusConverted:
		return true
	}
	return false
}

// LeadLocation define las zonas donde la inmobiliaria opera
type LeadLocation string

const (
	LeadLocationNajafgarh LeadLocation = "najafgarh"
	LeadLocationDwarka    LeadLocation = "dwarka"
)

// IsValid verifica que la zona sea una de las permitidas
func (l LeadLocation) IsValid() bool {
	return l == LeadLocationNajafgarh || l == LeadLocationDwarka
}

// Budget es el rango de presupuesto declarado por el interesado
type Budget struct {
	Min float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max float64 `bson:"max,omitempty" json:"max,omitempty"`
}

// LeadNote es una nota de seguimiento sobre un interesado
// Las notas son de solo agregado: nunca se editan ni se borran
type LeadNote struct {
	Text      string    `bson:"text" json:"text"`
	Author    uint      `bson:"author" json:"author"` // ID del usuario que la escribió (referencia débil)
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Lead representa un interesado capturado por el sitio o cargado por un agente
type Lead struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // Siempre en minúsculas
	Phone        string             `bson:"phone" json:"phone"`
	PropertyType PropertyType       `bson:"propertyType,omitempty" json:"propertyType,omitempty"`
	Location     LeadLocation       `bson:"location,omitempty" json:"location,omitempty"`
	Budget       *Budget            `bson:"budget,omitempty" json:"budget,omitempty"`
	Message      string             `bson:"message,omitempty" json:"message,omitempty"`
	Source       LeadSource         `bson:"source" json:"source"`
	Status       LeadStatus         `bson:"status" json:"status"`
	AssignedTo   uint               `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"` // Referencia débil a User
	Notes        []LeadNote         `bson:"notes" json:"notes"`
	FollowUpDate *time.Time         `bson:"followUpDate,omitempty" json:"followUpDate,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
