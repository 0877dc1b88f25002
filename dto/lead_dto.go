package dto

import (
	"time"

	"properties-api/domain"
)

// BudgetRequest es el rango de presupuesto declarado
type BudgetRequest struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CreateLeadRequest representa el alta de un interesado
// Lo envía el formulario público del sitio o un agente
type CreateLeadRequest struct {
	Name         string         `json:"name" binding:"required"`
	Email        string         `json:"email" binding:"required,email"`
	Phone        string         `json:"phone" binding:"required"`
	PropertyType string         `json:"propertyType,omitempty"`
	Location     string         `json:"location,omitempty"`
	Budget       *BudgetRequest `json:"budget,omitempty"`
	Message      string         `json:"message,omitempty"`
	Source       string         `json:"source,omitempty"`
	FollowUpDate *time.Time     `json:"followUpDate,omitempty"`
}

// UpdateLeadRequest representa una actualización parcial de un interesado
type UpdateLeadRequest struct {
	Name         *string        `json:"name,omitempty"`
	Email        *string        `json:"email,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	PropertyType *string        `json:"propertyType,omitempty"`
	Location     *string        `json:"location,omitempty"`
	Budget       *BudgetRequest `json:"budget,omitempty"`
	Message      *string        `json:"message,omitempty"`
	Source       *string        `json:"source,omitempty"`
	Status       *string        `json:"status,omitempty"`
	AssignedTo   *uint          `json:"assignedTo,omitempty"`
	FollowUpDate *time.Time     `json:"followUpDate,omitempty"`
}

// AddNoteRequest representa una nota de seguimiento nueva
// El autor sale del token, no del body
type AddNoteRequest struct {
	Text string `json:"text" binding:"required"`
}

// LeadFilters representa los filtros del listado de interesados
// Todos los filtros se aplican en conjunto (AND)
type LeadFilters struct {
	Status        string     `form:"status"`
	Source        string     `form:"source"`
	AssignedTo    *uint      `form:"assignedTo"`
	StartDate     string     `form:"startDate"`
	EndDate       string     `form:"endDate"`
	CreatedAfter  *time.Time `form:"-"`
	CreatedBefore *time.Time `form:"-"`
	Page          int64      `form:"page"`
	Limit         int64      `form:"limit"`
}

// AssigneeInfo son los datos del usuario asignado, resueltos por lookup
type AssigneeInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// LeadItem es un interesado con su asignado resuelto para mostrar
type LeadItem struct {
	domain.Lead
	AssignedToUser *AssigneeInfo `json:"assignedToUser,omitempty"`
}

// LeadDetail es el detalle de un interesado con propiedades sugeridas
type LeadDetail struct {
	Lead                LeadItem          `json:"lead"`
	SuggestedProperties []domain.Property `json:"suggestedProperties"`
}

// DailyLeadCount es la cantidad de altas de un día del mes corriente
type DailyLeadCount struct {
	Date  string `json:"date"` // "2006-01-02"
	Count int64  `json:"count"`
}

// WeeklyLeadStats son las métricas de la semana corriente (domingo a hoy)
type WeeklyLeadStats struct {
	Leads          int64   `json:"leads"`
	Converted      int64   `json:"converted"`
	ConversionRate float64 `json:"conversionRate"` // converted/leads*100, 2 decimales
}

// LeadStatsResponse es el tablero de estadísticas de interesados
type LeadStatsResponse struct {
	TotalLeads    int64            `json:"totalLeads"`
	LeadsByStatus map[string]int64 `json:"leadsByStatus"`
	LeadsBySource map[string]int64 `json:"leadsBySource"`
	MonthlyLeads  []DailyLeadCount `json:"monthlyLeads"`
	WeeklyStats   WeeklyLeadStats  `json:"weeklyStats"`
}
