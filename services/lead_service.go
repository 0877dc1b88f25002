package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"properties-api/domain"
	"properties-api/dto"
	"properties-api/repositories"
)

// maxSuggestedProperties es el tope de sugerencias en el detalle
const maxSuggestedProperties = 5

// LeadService define la interfaz del servicio de interesados
type LeadService interface {
	Create(ctx context.Context, req dto.CreateLeadRequest) (*domain.Lead, error)
	List(ctx context.Context, filters dto.LeadFilters) ([]dto.LeadItem, int64, error)
	GetByID(ctx context.Context, id string) (*dto.LeadDetail, error)
	Update(ctx context.Context, id string, req dto.UpdateLeadRequest) (*domain.Lead, error)
	AddNote(ctx context.Context, id, text string, authorID uint) (*domain.Lead, error)
	Stats(ctx context.Context) (*dto.LeadStatsResponse, error)
}

// leadService es la implementación real del servicio
type leadService struct {
	repo         repositories.LeadRepository
	propertyRepo repositories.PropertyRepository
	userRepo     repositories.UserRepository
}

// NewLeadService crea una nueva instancia del servicio
func NewLeadService(repo repositories.LeadRepository, propertyRepo repositories.PropertyRepository, userRepo repositories.UserRepository) LeadService {
	return &leadService{repo: repo, propertyRepo: propertyRepo, userRepo: userRepo}
}

// Create valida y persiste un interesado nuevo
func (s *leadService) Create(ctx context.Context, req dto.CreateLeadRequest) (*domain.Lead, error) {
	ve := &ValidationError{}

	// 1. Contacto requerido, sin espacios alrededor
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

	// 2. Preferencias opcionales, validadas contra los enums
	propertyType := domain.PropertyType(req.PropertyType)
	if req.PropertyType != "" && !propertyType.IsValid() {
		ve.Add("propertyType must be one of: plot, flat")
	}
	location := domain.LeadLocation(req.Location)
	if req.Location != "" && !location.IsValid() {
		ve.Add("location must be one of: najafgarh, dwarka")
	}

	// 3. Origen: website_form por defecto
	source := domain.LeadSource(req.Source)
	if req.Source == "" {
		source = domain.LeadSourceWebsiteForm
	} else if !source.IsValid() {
		ve.Add("source must be one of: website_form, phone_call, walk_in, referral")
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	lead := &domain.Lead{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PropertyType: propertyType,
		Location:     location,
		Message:      strings.TrimSpace(req.Message),
		Source:       source,
		Status:       domain.LeadStatusNew,
		Notes:        []domain.LeadNote{},
		FollowUpDate: req.FollowUpDate,
		CreatedAt:    time.Now(),
	}
	if req.Budget != nil {
		lead.Budget = &domain.Budget{Min: req.Budget.Min, Max: req.Budget.Max}
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// List devuelve los interesados con el usuario asignado resuelto
func (s *leadService) List(ctx context.Context, filters dto.LeadFilters) ([]dto.LeadItem, int64, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 20
	}

	leads, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	// Resolver los asignados de toda la página con una sola consulta
	assignees, err := s.lookupAssignees(leads)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.LeadItem, 0, len(leads))
	for _, lead := range leads {
		items = append(items, dto.LeadItem{
			Lead:           lead,
			AssignedToUser: assignees[lead.AssignedTo],
		})
	}
	return items, total, nil
}

// GetByID devuelve el detalle de un interesado con sugerencias
// Las sugerencias son propiedades disponibles que coinciden exactamente
// con el tipo y la zona, cuando el interesado declaró ambos
func (s *leadService) GetByID(ctx context.Context, id string) (*dto.LeadDetail, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	assignees, err := s.lookupAssignees([]domain.Lead{*lead})
	if err != nil {
		return nil, err
	}

	suggested := []domain.Property{}
	if lead.PropertyType != "" && lead.Location != "" {
		suggested, err = s.propertyRepo.FindAvailableByTypeAndArea(ctx, lead.PropertyType, string(lead.Location), maxSuggestedProperties)
		if err != nil {
			return nil, err
		}
	}

	return &dto.LeadDetail{
		Lead: dto.LeadItem{
			Lead:           *lead,
			AssignedToUser: assignees[lead.AssignedTo],
		},
		SuggestedProperties: suggested,
	}, nil
}

// Update mergea los campos recibidos y revalida el interesado completo
func (s *leadService) Update(ctx context.Context, id string, req dto.UpdateLeadRequest) (*domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lead.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		lead.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		lead.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.PropertyType != nil {
		lead.PropertyType = domain.PropertyType(*req.PropertyType)
	}
	if req.Location != nil {
		lead.Location = domain.LeadLocation(*req.Location)
	}
	if req.Budget != nil {
		lead.Budget = &domain.Budget{Min: req.Budget.Min, Max: req.Budget.Max}
	}
	if req.Message != nil {
		lead.Message = strings.TrimSpace(*req.Message)
	}
	if req.Source != nil {
		lead.Source = domain.LeadSource(*req.Source)
	}
	if req.Status != nil {
		lead.Status = domain.LeadStatus(*req.Status)
	}
	if req.AssignedTo != nil {
		lead.AssignedTo = *req.AssignedTo
	}
	if req.FollowUpDate != nil {
		lead.FollowUpDate = req.FollowUpDate
	}

	ve := &ValidationError{}
	if lead.Name == "" {
		ve.Add("name is required")
	}
	if lead.Email == "" {
		ve.Add("email is required")
	}
	if lead.Phone == "" {
		ve.Add("phone is required")
	}
	if lead.PropertyType != "" && !lead.PropertyType.IsValid() {
		ve.Add("propertyType must be one of: plot, flat")
	}
	if lead.Location != "" && !lead.Location.IsValid() {
		ve.Add("location must be one of: najafgarh, dwarka")
	}
	if !lead.Source.IsValid() {
		ve.Add("source must be one of: website_form, phone_call, walk_in, referral")
	}
	if !lead.Status.IsValid() {
		ve.Add("status must be one of: new, contacted, interested, not_interested, converted")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// AddNote agrega una nota atribuida al usuario autenticado
// El timestamp lo pone el servidor, no el cliente
func (s *leadService) AddNote(ctx context.Context, id, text string, authorID uint) (*domain.Lead, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewValidationError("note text is required")
	}

	note := domain.LeadNote{
		Text:      text,
		Author:    authorID,
		CreatedAt: time.Now(),
	}
	return s.repo.AddNote(ctx, id, note)
}

// Stats arma el tablero de estadísticas de interesados
// Los agrupados por status y source se resuelven en Mongo; las ventanas
// diaria y semanal se calculan acá con la fecha local del server
func (s *leadService) Stats(ctx context.Context) (*dto.LeadStatsResponse, error) {
	// 1. Totales y agrupados
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.CountByField(ctx, "status")
	if err != nil {
		return nil, err
	}
	bySource, err := s.repo.CountByField(ctx, "source")
	if err != nil {
		return nil, err
	}

	// 2. Altas por día del mes corriente
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	createdAts, err := s.repo.CreatedSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}
	daily := groupByDay(createdAts)

	// 3. Semana corriente alineada al domingo, fecha local
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	startOfWeek := today.AddDate(0, 0, -int(today.Weekday()))

	weeklyLeads, err := s.repo.CountCreatedSince(ctx, startOfWeek, "")
	if err != nil {
		return nil, err
	}
	weeklyConverted, err := s.repo.CountCreatedSince(ctx, startOfWeek, domain.LeadStatusConverted)
	if err != nil {
		return nil, err
	}

	conversionRate := 0.0
	if weeklyLeads > 0 {
		conversionRate = math.Round(float64(weeklyConverted)/float64(weeklyLeads)*100*100) / 100
	}

	return &dto.LeadStatsResponse{
		TotalLeads:    total,
		LeadsByStatus: byStatus,
		LeadsBySource: bySource,
		MonthlyLeads:  daily,
		WeeklyStats: dto.WeeklyLeadStats{
			Leads:          weeklyLeads,
			Converted:      weeklyConverted,
			ConversionRate: conversionRate,
		},
	}, nil
}

// lookupAssignees resuelve las referencias débiles assignedTo de una página
func (s *leadService) lookupAssignees(leads []domain.Lead) (map[uint]*dto.AssigneeInfo, error) {
	seen := map[uint]bool{}
	ids := []uint{}
	for _, lead := range leads {
		if lead.AssignedTo != 0 && !seen[lead.AssignedTo] {
			seen[lead.AssignedTo] = true
			ids = append(ids, lead.AssignedTo)
		}
	}

	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	assignees := make(map[uint]*dto.AssigneeInfo, len(users))
	for _, user := range users {
		user := user
		assignees[user.ID] = &dto.AssigneeInfo{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		}
	}
	return assignees, nil
}

// groupByDay agrupa las fechas de alta por día local "2006-01-02"
func groupByDay(times []time.Time) []dto.DailyLeadCount {
	counts := map[string]int64{}
	for _, t := range times {
		counts[t.Local().Format("2006-01-02")]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	daily := make([]dto.DailyLeadCount, 0, len(days))
	for _, day := range days {
		daily = append(daily, dto.DailyLeadCount{Date: day, Count: counts[day]})
	}
	return daily
}
