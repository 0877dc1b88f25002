package repositories

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"properties-api/dto"
)

// Test: Sin filtros la consulta queda vacía (trae todo)
func TestBuildLeadQuery_Empty(t *testing.T) {
	query := buildLeadQuery(dto.LeadFilters{})

	if len(query) != 0 {
		t.Errorf("Expected empty query, got %v", query)
	}
}

// Test: Cada filtro presente agrega su criterio, todos en AND
func TestBuildLeadQuery_AllFilters(t *testing.T) {
	assignedTo := uint(3)
	after := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	before := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)

	query := buildLeadQuery(dto.LeadFilters{
		Status:        "contacted",
		Source:        "referral",
		AssignedTo:    &assignedTo,
		CreatedAfter:  &after,
		CreatedBefore: &before,
	})

	if len(query) != 4 {
		t.Fatalf("Expected 4 criteria, got %d: %v", len(query), query)
	}
	if query["status"] != "contacted" {
		t.Errorf("Expected status contacted, got %v", query["status"])
	}
	if query["source"] != "referral" {
		t.Errorf("Expected source referral, got %v", query["source"])
	}
	if query["assignedTo"] != assignedTo {
		t.Errorf("Expected assignedTo %d, got %v", assignedTo, query["assignedTo"])
	}

	createdAt, ok := query["createdAt"].(bson.M)
	if !ok {
		t.Fatalf("Expected createdAt range, got %v", query["createdAt"])
	}
	if createdAt["$gte"] != after {
		t.Errorf("Expected $gte %v, got %v", after, createdAt["$gte"])
	}
	if createdAt["$lte"] != before {
		t.Errorf("Expected $lte %v, got %v", before, createdAt["$lte"])
	}
}

// Test: Solo fecha de inicio arma el rango únicamente con $gte
func TestBuildLeadQuery_OnlyStartDate(t *testing.T) {
	after := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)

	query := buildLeadQuery(dto.LeadFilters{CreatedAfter: &after})

	createdAt, ok := query["createdAt"].(bson.M)
	if !ok {
		t.Fatalf("Expected createdAt range, got %v", query["createdAt"])
	}
	if len(createdAt) != 1 || createdAt["$gte"] != after {
		t.Errorf("Expected only $gte %v, got %v", after, createdAt)
	}
}

// Test: Solo fecha de fin arma el rango únicamente con $lte
func TestBuildLeadQuery_OnlyEndDate(t *testing.T) {
	before := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)

	query := buildLeadQuery(dto.LeadFilters{CreatedBefore: &before})

	createdAt, ok := query["createdAt"].(bson.M)
	if !ok {
		t.Fatalf("Expected createdAt range, got %v", query["createdAt"])
	}
	if len(createdAt) != 1 || createdAt["$lte"] != before {
		t.Errorf("Expected only $lte %v, got %v", before, createdAt)
	}
}

// Test: La paginación no se cuela en el filtro
func TestBuildLeadQuery_IgnoresPagination(t *testing.T) {
	query := buildLeadQuery(dto.LeadFilters{Page: 3, Limit: 50})

	if len(query) != 0 {
		t.Errorf("Expected empty query, got %v", query)
	}
}
