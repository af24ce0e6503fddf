package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "1000", want: "1000"},
		{name: "fraction kept exact", input: "0.1", want: "0.1"},
		{name: "many decimals", input: "0.00012345", want: "0.00012345"},
		{name: "surrounding spaces", input: " 12.50 ", want: "12.5"},
		{name: "negative", input: "-3", want: "-3"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("empty is zero", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil || !got.IsZero() {
			t.Fatalf("expected zero time, got %v (%v)", got, err)
		}
	})

	t.Run("calendar date", func(t *testing.T) {
		got, err := ParseDate("2024-02-29")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if FormatDate(got) != "2024-02-29" {
			t.Errorf("round trip changed the date: %s", FormatDate(got))
		}
	})

	t.Run("timestamp rejected", func(t *testing.T) {
		if _, err := ParseDate("2024-02-29T10:00:00Z"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("optional empty rejected", func(t *testing.T) {
		empty := ""
		if _, err := ParseOptionalDate(&empty); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("optional nil", func(t *testing.T) {
		got, err := ParseOptionalDate(nil)
		if err != nil || got != nil {
			t.Fatalf("expected nil, got %v (%v)", got, err)
		}
	})
}

func TestParseOptionalUUID(t *testing.T) {
	empty := ""
	bad := "nope"
	id := uuid.New()
	good := id.String()

	if got, err := ParseOptionalUUID(&empty); err != nil || got != nil {
		t.Errorf("empty: expected nil, got %v (%v)", got, err)
	}
	if _, err := ParseOptionalUUID(&bad); err == nil {
		t.Error("bad: expected error")
	}
	got, err := ParseOptionalUUID(&good)
	if err != nil || got == nil || *got != id {
		t.Errorf("good: expected %s, got %v (%v)", id, got, err)
	}
}

func TestNewMoneyResponse(t *testing.T) {
	m := NewMoneyResponse(decimal.RequireFromString("1234.5"), "USD")
	if m.Amount != "1234.5" {
		t.Errorf("amount must stay exact, got %s", m.Amount)
	}
	if m.Currency != "USD" {
		t.Errorf("unexpected currency %s", m.Currency)
	}
	if m.Formatted != "$1,234.50" {
		t.Errorf("unexpected formatting %q", m.Formatted)
	}
}

func TestToTransactionResponse(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	credited := decimal.RequireFromString("13500")
	rate := decimal.RequireFromString("1350")
	txn := &entity.Transaction{
		ID:                   uuid.New(),
		Type:                 entity.TransactionTypeTransfer,
		Amount:               decimal.RequireFromString("10"),
		Date:                 time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Description:          "Exchange",
		OriginProductID:      &from,
		DestinationProductID: &to,
		DestinationAmount:    &credited,
		ExchangeRate:         &rate,
	}

	response := ToTransactionResponse(txn)

	if response.Date != "2025-03-05" {
		t.Errorf("unexpected date %s", response.Date)
	}
	if response.Amount != "10" || *response.DestinationAmount != "13500" || *response.ExchangeRate != "1350" {
		t.Errorf("unexpected amounts: %+v", response)
	}
	if *response.OriginProductID != from.String() || *response.DestinationProductID != to.String() {
		t.Errorf("unexpected products: %+v", response)
	}
	if response.Installment != nil {
		t.Error("transfer must not carry installment data")
	}

	raw, err := json.Marshal(response)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["amount"].(string); !ok {
		t.Errorf("amount must be a JSON string, got %T", decoded["amount"])
	}
	if _, ok := decoded["category_id"]; ok {
		t.Error("absent category must be omitted")
	}
}

func TestToBillListResponse_Overdue(t *testing.T) {
	service := entity.NewService(uuid.New(), "Power", decimal.RequireFromString("50"), "ARS", nil)
	rule := &entity.ServicePaymentRule{DueDay: 31, StartYear: 2025, StartMonth: 1}
	feb := entity.NewServiceBill(service, rule, 2025, 2)

	response := ToBillResponse(feb, feb.IsOverdue(2025, 3))

	if !response.Overdue {
		t.Error("pending February bill viewed in March must be overdue")
	}
	if response.DueDate != "2025-02-28" {
		t.Errorf("due day must clamp to month end, got %s", response.DueDate)
	}
	if response.Status != string(entity.BillStatusPending) {
		t.Errorf("unexpected status %s", response.Status)
	}
}
