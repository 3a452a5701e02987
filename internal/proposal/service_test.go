package proposal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"rfq-match/internal/model"
)

func TestRecordMatches(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := NewService(store, nil, nil)

	matches := []model.MatchResult{
		{
			Product:    model.Product{ID: 11},
			TotalScore: 82.5,
			Breakdown:  model.Breakdown{Price: 40, Quality: 25, Delivery: 17.5},
		},
		{
			Product:    model.Product{ID: 12},
			TotalScore: 60,
			Breakdown:  model.Breakdown{Price: 30, Quality: 15, Delivery: 15},
		},
	}
	proposals, err := svc.RecordMatches(context.Background(), 5, matches)
	if err != nil {
		t.Fatalf("RecordMatches error: %v", err)
	}
	if len(proposals) != 2 {
		t.Fatalf("expected 2 proposals, got %d", len(proposals))
	}
	if store.replacedRFQ != 5 {
		t.Fatalf("expected proposals replaced for rfq 5, got %d", store.replacedRFQ)
	}
	first := proposals[0]
	if first.ProductID != 11 || first.Score != 82.5 || first.PriceScore != 40 || first.DeliveryScore != 17.5 {
		t.Fatalf("expected scores mapped onto proposal, got %+v", first)
	}
}

func TestGenerateEmailTemplate(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := NewService(store, nil, nil)

	email, err := svc.GenerateEmail(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateEmail error: %v", err)
	}
	if email.Subject != "Request for quotation: Office laptops" {
		t.Fatalf("unexpected subject %q", email.Subject)
	}
	if !strings.Contains(email.Body, "Dear Dell Technologies team,") {
		t.Fatalf("expected supplier greeting, got %q", email.Body)
	}
	if !strings.Contains(email.Body, "$999.99") {
		t.Fatalf("expected listed price in body, got %q", email.Body)
	}
	if store.savedSubject != email.Subject || store.savedBody != email.Body {
		t.Fatal("expected generated email persisted")
	}
}

func TestGenerateEmailUsesLLM(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	llm := &stubLLM{response: "```json\n{\"subject\":\"Quotation for Latitude 5520\",\"body\":\"Hello Dell\"}\n```"}
	svc := NewService(store, llm, nil)

	email, err := svc.GenerateEmail(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateEmail error: %v", err)
	}
	if email.Subject != "Quotation for Latitude 5520" || email.Body != "Hello Dell" {
		t.Fatalf("expected llm email, got %+v", email)
	}
	if !strings.Contains(llm.prompt, "Latitude 5520") {
		t.Fatalf("expected product in prompt, got %q", llm.prompt)
	}
}

func TestGenerateEmailFallsBackOnBadLLMOutput(t *testing.T) {
	t.Parallel()

	for _, response := range []string{"not json at all", `{"subject":"","body":""}`} {
		store := newStubStore()
		svc := NewService(store, &stubLLM{response: response}, nil)

		email, err := svc.GenerateEmail(context.Background(), 1)
		if err != nil {
			t.Fatalf("GenerateEmail error: %v", err)
		}
		if !strings.HasPrefix(email.Subject, "Request for quotation:") {
			t.Fatalf("expected template fallback for %q, got %+v", response, email)
		}
	}
}

func TestGenerateEmailNotifiesSupplier(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	notifier := &stubNotifier{}
	svc := NewService(store, nil, notifier)

	email, err := svc.GenerateEmail(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateEmail error: %v", err)
	}
	if notifier.to != "sales@dell.com" {
		t.Fatalf("expected supplier contact used, got %q", notifier.to)
	}
	if notifier.subject != email.Subject || notifier.body != email.Body {
		t.Fatal("expected generated email forwarded to notifier")
	}
}

func TestGenerateEmailNotifierError(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := NewService(store, nil, &stubNotifier{err: errors.New("smtp down")})
	if _, err := svc.GenerateEmail(context.Background(), 1); err == nil {
		t.Fatal("expected notifier error to surface")
	}
}

// --- stubs ---

type stubStore struct {
	rfq      *model.RFQ
	proposal *model.Proposal
	product  *model.Product
	supplier *model.Supplier

	replacedRFQ       uint
	replacedProposals []model.Proposal
	savedSubject      string
	savedBody         string
}

func newStubStore() *stubStore {
	return &stubStore{
		rfq:      &model.RFQ{ID: 5, Title: "Office laptops"},
		proposal: &model.Proposal{ID: 1, RFQID: 5, ProductID: 11, Score: 82.5},
		product: &model.Product{
			ID:         11,
			SupplierID: 3,
			Name:       "Latitude 5520",
			Price:      decimal.RequireFromString("999.99"),
			Warranty:   "3 years",
		},
		supplier: &model.Supplier{
			ID:           3,
			Name:         "Dell Technologies",
			ContactEmail: "sales@dell.com",
			DeliveryTime: "15-20 days",
		},
	}
}

func (s *stubStore) GetRFQ(ctx context.Context, id uint) (*model.RFQ, error) {
	return s.rfq, nil
}

func (s *stubStore) GetProposal(ctx context.Context, id uint) (*model.Proposal, error) {
	return s.proposal, nil
}

func (s *stubStore) ListProposals(ctx context.Context, rfqID uint) ([]model.Proposal, error) {
	return s.replacedProposals, nil
}

func (s *stubStore) ReplaceProposals(ctx context.Context, rfqID uint, proposals []model.Proposal) error {
	s.replacedRFQ = rfqID
	s.replacedProposals = proposals
	return nil
}

func (s *stubStore) UpdateProposalEmail(ctx context.Context, id uint, subject, body string) error {
	s.savedSubject = subject
	s.savedBody = body
	return nil
}

func (s *stubStore) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	return s.product, nil
}

func (s *stubStore) GetSupplier(ctx context.Context, id uint) (*model.Supplier, error) {
	return s.supplier, nil
}

type stubLLM struct {
	response string
	prompt   string
}

func (l *stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	l.prompt = prompt
	return l.response, nil
}

type stubNotifier struct {
	to      string
	subject string
	body    string
	err     error
}

func (n *stubNotifier) Notify(ctx context.Context, to, subject, body string) error {
	n.to = to
	n.subject = subject
	n.body = body
	return n.err
}
