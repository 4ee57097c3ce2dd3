package sheets

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/felixstiven/wog-agent/internal/domain"
)

// Row layout in the spreadsheet:
// [ID, Company, Name, Email, Phone, Message, CreatedAt, Status]
const (
	appendRange = "A:H"
	readRange   = "A2:H" // first row holds the headers
)

// Config selects the spreadsheet and how to authenticate against it.
// CredentialsBase64 (production) takes precedence over CredentialsPath.
type Config struct {
	SpreadsheetID     string
	CredentialsPath   string
	CredentialsBase64 string
}

// LeadStore persists leads to a Google Sheets spreadsheet.
type LeadStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewLeadStore authenticates with a service account and opens the sheet.
func NewLeadStore(ctx context.Context, cfg Config) (*LeadStore, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required for the sheets lead store")
	}

	creds, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &LeadStore{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

func loadCredentials(cfg Config) ([]byte, error) {
	if cfg.CredentialsBase64 != "" {
		creds, err := base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("decoding GOOGLE_CREDENTIALS_BASE64: %w", err)
		}
		return creds, nil
	}

	creds, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	return creds, nil
}

func (s *LeadStore) SaveLead(ctx context.Context, lead *domain.Lead) error {
	row := []interface{}{
		lead.ID,
		lead.Company,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Message,
		lead.CreatedAt.Format(time.RFC3339),
		string(lead.Status),
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, appendRange, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append lead: %w", err)
	}
	return nil
}

func (s *LeadStore) ListLeads(ctx context.Context, limit int) ([]*domain.Lead, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets read leads: %w", err)
	}

	rows := resp.Values
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]*domain.Lead, 0, len(rows))
	for _, row := range rows {
		lead := &domain.Lead{
			ID:      cell(row, 0),
			Company: cell(row, 1),
			Name:    cell(row, 2),
			Email:   cell(row, 3),
			Phone:   cell(row, 4),
			Message: cell(row, 5),
			Status:  domain.LeadStatus(cell(row, 7)),
		}
		if lead.Status == "" {
			lead.Status = domain.LeadStatusNew
		}
		if ts, err := time.Parse(time.RFC3339, cell(row, 6)); err == nil {
			lead.CreatedAt = ts
		}
		out = append(out, lead)
	}
	return out, nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}
