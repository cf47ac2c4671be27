package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tompkins/pkg/config"
	"github.com/matzehuels/tompkins/pkg/observability"
	"github.com/matzehuels/tompkins/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	s, err := New(pipeline.NewRunner(nil, logger), config.Default(), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request ID")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t)
	const id = "3f2c1e9a-4b7d-4c1e-9a2b-6d8e0f1a2b3c"

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" || got == "" {
		t.Errorf("request ID = %q, want a fresh UUID", got)
	}
}

func TestTriangleJSON(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/triangle?k=4&n=8&highlight=25")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get("X-Highlighted"); got != "1" {
		t.Errorf("X-Highlighted = %q, want 1", got)
	}

	var doc struct {
		K           int        `json:"k"`
		C           uint64     `json:"c"`
		Rows        [][]uint64 `json:"rows"`
		Highlighted []struct {
			Row int `json:"row"`
			Col int `json:"col"`
		} `json:"highlighted"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.K != 4 || doc.C != 2 || len(doc.Rows) != 8 {
		t.Fatalf("got k=%d c=%d rows=%d, want k=4 c=2 rows=8", doc.K, doc.C, len(doc.Rows))
	}
	if len(doc.Highlighted) != 1 || doc.Highlighted[0].Row != 6 || doc.Highlighted[0].Col != 4 {
		t.Errorf("highlighted = %+v, want [{6 4}]", doc.Highlighted)
	}
	if doc.Rows[7][4] != 55 {
		t.Errorf("rows[7][4] = %d, want 55", doc.Rows[7][4])
	}
}

func TestTrianglePNG(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/triangle.png?k=3&n=5&diagonal=0")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if _, err := png.Decode(bytes.NewReader(body)); err != nil {
		t.Errorf("decode png: %v", err)
	}
}

func TestTriangleDOT(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/triangle.dot?k=4&n=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if !bytes.HasPrefix(body, []byte("digraph")) {
		t.Errorf("body does not start with digraph: %q", body)
	}
}

func TestTriangleServerRowBound(t *testing.T) {
	ts := newTestServer(t)
	n := config.DefaultServerMaxRows

	resp, body := get(t, fmt.Sprintf("%s/triangle?k=4&n=%d", ts.URL, n))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("n=%d: status = %d, body %s", n, resp.StatusCode, body)
	}
	resp, body = get(t, fmt.Sprintf("%s/triangle?k=4&n=%d", ts.URL, n+1))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("n=%d: status = %d, want 400 (body %s)", n+1, resp.StatusCode, body)
	}
}

func TestTriangleErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"order too small", "/triangle?k=2&n=5", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"zero rows", "/triangle?k=4&n=0", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"too many rows", "/triangle?k=4&n=1000", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"above server row bound", "/triangle.png?k=3&n=64", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"non-numeric k", "/triangle?k=four", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"negative highlight", "/triangle?highlight=-1", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"negative diagonal", "/triangle?diagonal=-2", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"unknown format", "/triangle.gif", http.StatusNotFound, "INVALID_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			var e struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.Message == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestStats(t *testing.T) {
	logger := log.New(io.Discard)
	s, err := New(pipeline.NewRunner(nil, logger), config.Default(), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Stats().Register()
	t.Cleanup(observability.Reset)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	get(t, ts.URL+"/triangle.dot?k=4&n=3")
	get(t, ts.URL+"/triangle?k=1")

	_, body := get(t, ts.URL+"/stats")
	var snap observability.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if snap.Generated != 1 || snap.Rendered["dot"] != 1 {
		t.Errorf("generated = %d, rendered = %v", snap.Generated, snap.Rendered)
	}
	if snap.Requests[http.StatusOK] != 1 || snap.Requests[http.StatusBadRequest] != 1 {
		t.Errorf("requests = %v", snap.Requests)
	}
}
