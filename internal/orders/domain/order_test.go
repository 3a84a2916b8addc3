package domain

import "testing"

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name    string
		order   Order
		wantErr string
	}{
		{
			name:  "valid order",
			order: Order{ID: "order-1", CustomerID: "customer-1", AmountCents: 1000},
		},
		{
			name:  "zero amount is allowed",
			order: Order{ID: "order-1", CustomerID: "customer-1", AmountCents: 0},
		},
		{
			name:    "missing id",
			order:   Order{CustomerID: "customer-1", AmountCents: 1000},
			wantErr: "id is required",
		},
		{
			name:    "blank id",
			order:   Order{ID: "   ", CustomerID: "customer-1", AmountCents: 1000},
			wantErr: "id is required",
		},
		{
			name:    "missing customer",
			order:   Order{ID: "order-1", AmountCents: 1000},
			wantErr: "customer_id is required",
		},
		{
			name:    "negative amount",
			order:   Order{ID: "order-1", CustomerID: "customer-1", AmountCents: -1},
			wantErr: "amount_cents must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
