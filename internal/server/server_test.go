package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"StockBoard/internal/collector"
	"StockBoard/internal/model"
	"StockBoard/internal/state"
	"StockBoard/internal/widget"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, initialize bool) (*Server, *widget.Widget) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	w := widget.New(collector.SampleFetcher(), state.NewWidgetStore(), widget.Options{DefaultTicker: "AAPL"}, zerolog.Nop())
	if initialize {
		w.InitDefaultView(ctx)
	}
	return New(ctx, w, zerolog.Nop()), w
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, false)
	if rec := do(t, s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestChartBeforeRender(t *testing.T) {
	s, _ := newTestServer(t, false)
	if rec := do(t, s, http.MethodGet, "/api/chart", ""); rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	rec := do(t, s, http.MethodGet, "/api/view", "")
	if !strings.Contains(rec.Body.String(), `"list":[]`) {
		t.Errorf("expected empty list, got %s", rec.Body.String())
	}
}

func TestView(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := do(t, s, http.MethodGet, "/api/view", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var v View
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(v.List) != 2 {
		t.Errorf("list: expected 2 rows, got %d", len(v.List))
	}
	if v.Panel.Name != "AAPL" || v.Panel.Profit != "5.00%" || v.Panel.ColorClass != "green" {
		t.Errorf("panel: got %+v", v.Panel)
	}
	if v.Chart == nil || len(v.Chart.Data[0].X) != 2 {
		t.Errorf("chart: got %+v", v.Chart)
	}

	rec = do(t, s, http.MethodGet, "/api/chart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, want := range []string{`"paper_bgcolor":"#0a0931"`, `"displayModeBar":false`, `"shapes":[]`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("chart json missing %s: %s", want, rec.Body.String())
		}
	}
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t, true)
	rec := do(t, s, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`id="chart"`, `id="hover-date"`, `id="name"`, `id="price"`, `id="profit"`, `id="desc"`,
		`class="stock-list"`, `class="buttons"`, "1 Month", "5 Years", "TSLA", "$20.500",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	// listeners are dropped by newPlot and must be bound again per figure
	if !strings.Contains(body, "bindHover(el, fig.revision);") {
		t.Error("page does not bind hover after newPlot")
	}
	if strings.Contains(body, "bound = true") {
		t.Error("page binds hover only once")
	}
}

func TestEvents(t *testing.T) {
	s, w := newTestServer(t, true)

	if rec := do(t, s, http.MethodPost, "/api/ranges/1%20Year", ""); rec.Code != http.StatusAccepted {
		t.Errorf("range: expected 202, got %d", rec.Code)
	}
	if got := w.Store().State().Data.Selection.Range; got != model.Range1y {
		t.Errorf("range: expected 1y, got %q", got)
	}

	if rec := do(t, s, http.MethodPost, "/api/hover", `{"x":"Jan 1, 1970"}`); rec.Code != http.StatusAccepted {
		t.Errorf("hover: expected 202, got %d", rec.Code)
	}
	if got := w.Store().State().Data.Hover.Label; got != "Date: Jan 1, 1970" {
		t.Errorf("hover: expected label, got %q", got)
	}
	if rec := do(t, s, http.MethodPost, "/api/hover", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad hover: expected 400, got %d", rec.Code)
	}

	if rec := do(t, s, http.MethodPost, "/api/leave", ""); rec.Code != http.StatusAccepted {
		t.Errorf("leave: expected 202, got %d", rec.Code)
	}
	if got := w.Store().State().Data.Hover.Label; got != "" {
		t.Errorf("leave: expected empty label, got %q", got)
	}

	if rec := do(t, s, http.MethodPost, "/api/tickers/TSLA/select", ""); rec.Code != http.StatusAccepted {
		t.Errorf("select: expected 202, got %d", rec.Code)
	}
	s.Wait()
	if got := w.Store().State().Data.Panel.Name; got != "TSLA" {
		t.Errorf("select: expected TSLA panel, got %q", got)
	}
}

func TestHoverRevision(t *testing.T) {
	s, w := newTestServer(t, true)
	stale := w.Store().State().Data.Chart.Revision

	if rec := do(t, s, http.MethodPost, "/api/ranges/1%20Year", ""); rec.Code != http.StatusAccepted {
		t.Fatalf("range: expected 202, got %d", rec.Code)
	}
	current := w.Store().State().Data.Chart.Revision
	if current == stale {
		t.Fatalf("range change kept revision %d", current)
	}

	hover := func(rev uint64) {
		t.Helper()
		body := fmt.Sprintf(`{"x":"Jan 1, 1970","revision":%d}`, rev)
		if rec := do(t, s, http.MethodPost, "/api/hover", body); rec.Code != http.StatusAccepted {
			t.Errorf("hover %d: expected 202, got %d", rev, rec.Code)
		}
	}
	leave := func(rev uint64) {
		t.Helper()
		body := fmt.Sprintf(`{"revision":%d}`, rev)
		if rec := do(t, s, http.MethodPost, "/api/leave", body); rec.Code != http.StatusAccepted {
			t.Errorf("leave %d: expected 202, got %d", rev, rec.Code)
		}
	}

	hover(stale)
	if got := w.Store().State().Data.Hover.Label; got != "" {
		t.Errorf("hover from replaced figure: expected empty label, got %q", got)
	}
	hover(current)
	if got := w.Store().State().Data.Hover.Label; got != "Date: Jan 1, 1970" {
		t.Errorf("hover: expected label, got %q", got)
	}
	leave(stale)
	if got := w.Store().State().Data.Hover.Label; got != "Date: Jan 1, 1970" {
		t.Errorf("leave from replaced figure cleared label: got %q", got)
	}
	leave(current)
	if got := w.Store().State().Data.Hover.Label; got != "" {
		t.Errorf("leave: expected empty label, got %q", got)
	}
	if rec := do(t, s, http.MethodPost, "/api/leave", `{"revision":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad leave: expected 400, got %d", rec.Code)
	}
}

func TestWebsocketPushesChanges(t *testing.T) {
	s, _ := newTestServer(t, true)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first View
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial view: %v", err)
	}
	if first.Panel.Name != "AAPL" {
		t.Errorf("initial view panel: got %+v", first.Panel)
	}

	resp, err := http.Post(ts.URL+"/api/hover", "application/json", strings.NewReader(`{"x":"Jan 2, 1970"}`))
	if err != nil {
		t.Fatalf("post hover: %v", err)
	}
	resp.Body.Close()

	for {
		var v View
		if err := conn.ReadJSON(&v); err != nil {
			t.Fatalf("read pushed view: %v", err)
		}
		if v.HoverLabel == "Date: Jan 2, 1970" {
			if n := len(v.Chart.Layout.Shapes); n != 1 {
				t.Errorf("expected guide shape, got %d shapes", n)
			}
			return
		}
	}
}
