package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zhouzirui/thonia-chat/internal/handler/live"
	"github.com/zhouzirui/thonia-chat/internal/handler/page"
	"github.com/zhouzirui/thonia-chat/internal/widget"
)

type echoClient struct{}

func (echoClient) Send(_ context.Context, message string) (string, error) {
	return message, nil
}

func setupRouter() http.Handler {
	liveHandler := live.New(func() widget.Client { return echoClient{} }, nil, widget.Config{}, nil)
	return NewRouter(page.New(page.Data{}, nil), liveHandler, nil)
}

func TestWidgetPageExposesStableIDs(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	for _, id := range []string{`id="chat-form"`, `id="chat-input"`, `id="chat-display"`} {
		if !strings.Contains(string(body), id) {
			t.Fatalf("page is missing %s", id)
		}
	}
}

func TestHealthz(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"ok"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for plain GET, got %d", resp.Code)
	}
}
