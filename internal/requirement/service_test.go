package requirement

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rfq-match/internal/model"
)

func TestValidateAcceptsWellFormedRequirement(t *testing.T) {
	t.Parallel()

	if err := Validate(validRequirement()); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestValidateRejectsWeightsNotSumming(t *testing.T) {
	t.Parallel()

	req := validRequirement()
	req.Criteria = model.Criteria{Price: 50, Quality: 30, Delivery: 30}

	err := Validate(req)
	if err == nil {
		t.Fatal("expected validation error for weights summing to 110")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "sum to 100") {
		t.Fatalf("expected weight message, got %q", err.Error())
	}
}

func TestValidateRejectsNegativeWeights(t *testing.T) {
	t.Parallel()

	req := validRequirement()
	req.Criteria = model.Criteria{Price: 120, Quality: -10, Delivery: -10}

	if err := Validate(req); err == nil {
		t.Fatal("expected validation error for negative weights")
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	t.Parallel()

	err := Validate(model.Requirement{Criteria: model.Criteria{Price: 100}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected title and categories errors, got %+v", verr.Fields)
	}
}

func TestValidateRejectsNegativeQuantity(t *testing.T) {
	t.Parallel()

	req := validRequirement()
	req.Categories[0].Quantity = -1

	if err := Validate(req); err == nil {
		t.Fatal("expected validation error for negative quantity")
	}
}

func TestCreateStampsVersion(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	svc := NewService(store)

	rfq, err := svc.Create(context.Background(), "raw rfq text", validRequirement())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rfq.Version == "" {
		t.Fatal("expected a version token")
	}
	if rfq.OriginalContent != "raw rfq text" {
		t.Fatalf("expected original content preserved, got %q", rfq.OriginalContent)
	}
	if store.created != 1 {
		t.Fatalf("expected 1 create call, got %d", store.created)
	}
}

func TestCreateRejectsInvalidRequirement(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	svc := NewService(store)

	req := validRequirement()
	req.Criteria.Delivery = 0 // sums to 80

	if _, err := svc.Create(context.Background(), "", req); err == nil {
		t.Fatal("expected validation error")
	}
	if store.created != 0 {
		t.Fatal("expected no store writes for invalid requirement")
	}
}

func TestUpdateRequirementProducesNewVersion(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	svc := NewService(store)

	created, err := svc.Create(context.Background(), "", validRequirement())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated := validRequirement()
	updated.Categories[0].Quantity = 20
	got, err := svc.UpdateRequirement(context.Background(), created.ID, updated)
	if err != nil {
		t.Fatalf("UpdateRequirement error: %v", err)
	}
	if got.Version == created.Version {
		t.Fatal("expected a fresh version after update")
	}
	if got.Requirement.Categories[0].Quantity != 20 {
		t.Fatalf("expected replaced requirement, got quantity %d", got.Requirement.Categories[0].Quantity)
	}
}

// --- helpers & stubs ---

func validRequirement() model.Requirement {
	return model.Requirement{
		Title: "Office laptops",
		Categories: []model.CategoryBlock{
			{Category: "Laptops", Quantity: 10, Targets: map[string]string{"memory": "16 GB"}},
		},
		Criteria: model.Criteria{Price: 50, Quality: 30, Delivery: 20},
	}
}

type stubStore struct {
	created int
	rfqs    map[uint]model.RFQ
	nextID  uint
}

func (s *stubStore) CreateRFQ(ctx context.Context, rfq *model.RFQ) error {
	s.created++
	s.nextID++
	rfq.ID = s.nextID
	if s.rfqs == nil {
		s.rfqs = make(map[uint]model.RFQ)
	}
	s.rfqs[rfq.ID] = *rfq
	return nil
}

func (s *stubStore) GetRFQ(ctx context.Context, id uint) (*model.RFQ, error) {
	rfq, ok := s.rfqs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &rfq, nil
}

func (s *stubStore) UpdateRFQRequirement(ctx context.Context, id uint, req model.Requirement, version string) error {
	rfq, ok := s.rfqs[id]
	if !ok {
		return errors.New("not found")
	}
	rfq.Requirement = req
	rfq.Version = version
	s.rfqs[id] = rfq
	return nil
}
