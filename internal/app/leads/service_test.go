package leads_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/felixstiven/wog-agent/internal/adapters/storage/memory"
	"github.com/felixstiven/wog-agent/internal/app/leads"
	"github.com/felixstiven/wog-agent/internal/domain"
)

func newService() (*leads.Service, *memory.LeadStore) {
	store := memory.NewLeadStore()
	return leads.NewService(store, zerolog.Nop()), store
}

func TestCreateValidLead(t *testing.T) {
	svc, _ := newService()

	lead, err := svc.Create(context.Background(), leads.CreateInput{
		Company: "Acme Corp",
		Name:    "Jane Doe",
		Email:   "Jane@Example.com",
		Phone:   "(300) 123-4567",
		Message: "We need a chatbot",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if lead.ID == "" {
		t.Fatalf("expected a lead id")
	}
	if lead.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", lead.Email)
	}
	if lead.Phone != "3001234567" {
		t.Fatalf("expected digits-only phone, got %q", lead.Phone)
	}
	if lead.Status != domain.LeadStatusNew {
		t.Fatalf("expected status new, got %q", lead.Status)
	}
}

func TestCreatePhoneIsOptional(t *testing.T) {
	svc, _ := newService()

	lead, err := svc.Create(context.Background(), leads.CreateInput{
		Company: "Acme Corp",
		Name:    "Jane Doe",
		Email:   "jane@example.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if lead.Phone != "" {
		t.Fatalf("expected empty phone, got %q", lead.Phone)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	valid := leads.CreateInput{
		Company: "Acme Corp",
		Name:    "Jane Doe",
		Email:   "jane@example.com",
	}

	cases := []struct {
		name   string
		mutate func(in *leads.CreateInput)
	}{
		{"short company", func(in *leads.CreateInput) { in.Company = "A" }},
		{"short name", func(in *leads.CreateInput) { in.Name = "J" }},
		{"markup-only name", func(in *leads.CreateInput) { in.Name = "<b></b>" }},
		{"bad email", func(in *leads.CreateInput) { in.Email = "not-an-email" }},
		{"bad phone", func(in *leads.CreateInput) { in.Phone = "12345" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateSanitizesFields(t *testing.T) {
	svc, store := newService()

	lead, err := svc.Create(context.Background(), leads.CreateInput{
		Company: "Acme <script>Corp</script>",
		Name:    `Jane "Hacker" Doe`,
		Email:   "jane@example.com",
		Message: "hello <img src=x> there",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if lead.Company != "Acme Corp" {
		t.Fatalf("expected sanitized company, got %q", lead.Company)
	}
	if lead.Name != "Jane Hacker Doe" {
		t.Fatalf("expected sanitized name, got %q", lead.Name)
	}
	if lead.Message != "hello there" {
		t.Fatalf("expected sanitized message, got %q", lead.Message)
	}

	stored, err := store.ListLeads(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListLeads failed: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != lead.ID {
		t.Fatalf("expected the lead to be persisted")
	}
}

func TestListDefaultsLimit(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, leads.CreateInput{
			Company: "Acme Corp",
			Name:    "Jane Doe",
			Email:   "jane@example.com",
		}); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	list, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 leads, got %d", len(list))
	}

	list, err = svc.List(ctx, 2)
	if err != nil {
		t.Fatalf("List with limit failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(list))
	}
}
