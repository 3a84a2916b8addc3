package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dejobratic/orderbilling/internal/events"
	httpadapter "github.com/dejobratic/orderbilling/internal/orders/adapters/http"
	"github.com/dejobratic/orderbilling/internal/orders/adapters/memory"
	"github.com/dejobratic/orderbilling/internal/orders/app"
	"github.com/dejobratic/orderbilling/internal/orders/domain"
	"github.com/dejobratic/orderbilling/internal/orders/metrics"
	"github.com/dejobratic/orderbilling/internal/orders/ports"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type stubEventBus struct {
	publishFn func(ctx context.Context, event events.OrderCreated) error
	published []events.OrderCreated
}

func (s *stubEventBus) PublishOrderCreated(ctx context.Context, event events.OrderCreated) error {
	if s.publishFn != nil {
		if err := s.publishFn(ctx, event); err != nil {
			return err
		}
	}
	s.published = append(s.published, event)
	return nil
}

type failingRepository struct {
	err error
}

func (f *failingRepository) Create(context.Context, domain.Order) error {
	return f.err
}

func (f *failingRepository) List(context.Context) ([]domain.Order, error) {
	return nil, f.err
}

func newTestServer(t *testing.T, repo ports.OrderRepository, bus ports.EventBus) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	m, err := metrics.NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	service := app.NewService(repo, bus, logger, m)
	handler := httpadapter.NewHandler(service)

	mux := http.NewServeMux()
	handler.Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Run("returns 201 with location header and body", func(t *testing.T) {
		repo := memory.NewRepository()
		bus := &stubEventBus{}
		srv := newTestServer(t, repo, bus)

		body := `{"id":"order-a","customer_id":"customer-1","amount_cents":10000}`
		resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/orders/order-a" {
			t.Errorf("expected Location /orders/order-a, got %q", loc)
		}

		var created domain.Order
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if created.ID != "order-a" || created.CustomerID != "customer-1" || created.AmountCents != 10000 {
			t.Errorf("unexpected created order: %+v", created)
		}

		if len(bus.published) != 1 {
			t.Errorf("expected 1 published event, got %d", len(bus.published))
		}
	})

	t.Run("returns 400 with message envelope for invalid JSON", func(t *testing.T) {
		srv := newTestServer(t, memory.NewRepository(), &stubEventBus{})

		resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader("{not json"))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}

		var envelope map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope["Message"] == "" {
			t.Error("expected a Message in the error envelope")
		}
	})

	t.Run("returns 400 for structurally invalid order", func(t *testing.T) {
		srv := newTestServer(t, memory.NewRepository(), &stubEventBus{})

		body := `{"id":"order-a","customer_id":"customer-1","amount_cents":-5}`
		resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("returns 500 with message envelope when persistence fails", func(t *testing.T) {
		repo := &failingRepository{err: errors.New("store unavailable")}
		bus := &stubEventBus{}
		srv := newTestServer(t, repo, bus)

		body := `{"id":"order-a","customer_id":"customer-1","amount_cents":100}`
		resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", resp.StatusCode)
		}

		var envelope map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !strings.Contains(envelope["Message"], "store unavailable") {
			t.Errorf("expected failure message in envelope, got %q", envelope["Message"])
		}

		if len(bus.published) != 0 {
			t.Errorf("expected no published events, got %d", len(bus.published))
		}
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		repo := memory.NewRepository()
		bus := &stubEventBus{
			publishFn: func(context.Context, events.OrderCreated) error {
				return errors.New("broker unavailable")
			},
		}
		srv := newTestServer(t, repo, bus)

		body := `{"id":"order-a","customer_id":"customer-1","amount_cents":100}`
		resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", resp.StatusCode)
		}

		orders, err := repo.List(context.Background())
		if err != nil {
			t.Fatalf("List() failed: %v", err)
		}
		if len(orders) != 1 {
			t.Errorf("expected order to remain persisted, got %d", len(orders))
		}
	})
}

func TestListOrdersEndpoint(t *testing.T) {
	t.Run("round-trips created orders", func(t *testing.T) {
		repo := memory.NewRepository()
		srv := newTestServer(t, repo, &stubEventBus{})

		bodies := []string{
			`{"id":"order-a","customer_id":"customer-1","amount_cents":10000}`,
			`{"id":"order-b","customer_id":"customer-2","amount_cents":250}`,
		}
		for _, body := range bodies {
			resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(body))
			if err != nil {
				t.Fatalf("POST failed: %v", err)
			}
			resp.Body.Close()
		}

		resp, err := http.Get(srv.URL + "/orders")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}

		var orders []domain.Order
		if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(orders))
		}
		if orders[0].ID != "order-a" || orders[0].CustomerID != "customer-1" || orders[0].AmountCents != 10000 {
			t.Errorf("unexpected first order: %+v", orders[0])
		}
	})

	t.Run("returns empty array when no orders exist", func(t *testing.T) {
		srv := newTestServer(t, memory.NewRepository(), &stubEventBus{})

		resp, err := http.Get(srv.URL + "/orders")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if strings.TrimSpace(string(body)) != "[]" {
			t.Errorf("expected empty JSON array, got %q", string(body))
		}
	})

	t.Run("rejects unsupported methods", func(t *testing.T) {
		srv := newTestServer(t, memory.NewRepository(), &stubEventBus{})

		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/orders", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("DELETE failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("expected status 405, got %d", resp.StatusCode)
		}
	})
}
