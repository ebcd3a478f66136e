package repository

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateOrderID(t *testing.T) {
	id := generateOrderID()

	if !strings.HasPrefix(id, "ord_") {
		t.Errorf("Expected ord_ prefix, got %s", id)
	}

	// Timestamp portion must parse back.
	if _, err := time.Parse("20060102150405", strings.TrimPrefix(id, "ord_")); err != nil {
		t.Errorf("Expected timestamp-based ID, got %s: %v", id, err)
	}
}

func TestPostgresOrderRepository_Create(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func TestPostgresOrderRepository_GetByID(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func TestPostgresCatalogRepository_List(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func TestPostgresPaymentRepository_UpdateStatus(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func TestPostgresUserRepository_GetByEmail(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func BenchmarkGenerateOrderID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		generateOrderID()
	}
}
