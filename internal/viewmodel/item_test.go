package viewmodel_test

import (
	"context"
	"testing"

	"sosa_resort/internal/domain"
	"sosa_resort/internal/viewmodel"
)

func TestItem_NotFound(t *testing.T) {
	rec := &recorder{}
	it := viewmodel.NewItem("Failed to fetch cottage details", func(ctx context.Context) (domain.Cottage, error) {
		return domain.Cottage{}, domain.NewStatusError(404, "Cottage not found", "", nil)
	}, rec)

	if err := it.Load(context.Background()); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	s := it.Snapshot()
	if !s.NotFound || s.Loaded || s.Error != "Cottage not found" {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
	if len(rec.all()) != 1 {
		t.Fatalf("expected one error notice")
	}
}

func TestItem_Loads(t *testing.T) {
	it := viewmodel.NewItem("Failed to fetch featured cottages", func(ctx context.Context) ([]domain.Cottage, error) {
		return []domain.Cottage{{ID: 1}, {ID: 2}}, nil
	}, nil)

	if err := it.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s := it.Snapshot(); !s.Loaded || len(s.Value) != 2 || s.Loading {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
}
