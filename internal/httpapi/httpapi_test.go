package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/billforge/billforge/pkg/render"
)

// stubGateway records the request and writes a placeholder artifact.
type stubGateway struct {
	req render.Request
}

func (g *stubGateway) Build(ctx context.Context, req render.Request) error {
	g.req = req
	return os.WriteFile(req.Path, []byte("%PDF-stub"), 0o644)
}

func newTestServer(t *testing.T) (*stubGateway, http.Handler) {
	t.Helper()
	gw := &stubGateway{}
	logger := charmlog.New(io.Discard)
	return gw, New(logger, WithGateway(gw))
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestGenerateInvoice(t *testing.T) {
	gw, h := newTestServer(t)

	body := `{
		"invoice": {"id": "INV-1"},
		"client": {"name": "Example Client"},
		"items": [
			{"name": "Widget", "units": 2, "unit_price": "5.00", "amount": "10.00"}
		],
		"options": {"tax_rate": "10", "paid": true}
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/invoices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Errorf("body should be the rendered artifact, got %q", rec.Body.String())
	}

	// The gateway received an assembled story with the paid stamp.
	if gw.req.Stamp == nil {
		t.Error("paid request should carry a stamp")
	}
	if len(gw.req.Story) == 0 {
		t.Error("gateway received an empty story")
	}
}

func TestGenerateRejectsBadJSON(t *testing.T) {
	_, h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/invoices", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_INPUT") {
		t.Errorf("body = %s, want INVALID_INPUT code", rec.Body.String())
	}
}

func TestGenerateRejectsInvalidManifest(t *testing.T) {
	_, h := newTestServer(t)

	// Provider without a name fails validation.
	body := `{"provider": {"street": "nowhere"}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/invoices", strings.NewReader(body))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "INVALID_MANIFEST") {
		t.Errorf("body = %s, want INVALID_MANIFEST code", rec.Body.String())
	}
}

func TestGenerateRejectsBadAmount(t *testing.T) {
	_, h := newTestServer(t)

	body := `{"items": [{"name": "w", "units": 1, "unit_price": "abc", "amount": "1"}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/invoices", strings.NewReader(body))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "INVALID_AMOUNT") {
		t.Errorf("body = %s, want INVALID_AMOUNT code", rec.Body.String())
	}
}
