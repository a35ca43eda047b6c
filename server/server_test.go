package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/acta/layout"
	"github.com/ByLCY/acta/renderer"
	"github.com/ByLCY/acta/sink"
)

type stubBackend struct{}

func (stubBackend) TextWidth(text string, font layout.Font) float64 {
	return 0.5 * font.Size * float64(utf8.RuneCountInString(text))
}

func (stubBackend) Render(res *layout.Result) ([]byte, error) {
	if err := renderer.Check(res); err != nil {
		return nil, err
	}
	return []byte("%PDF-stub"), nil
}

const record = `{
  "code": "ACT-7",
  "date": "2025-06-01",
  "time": "10:00",
  "giver": {"grade": "Sgto.", "name": "Juan", "surname": "Pérez", "nationalId": "1"},
  "receiver": {"name": "Ana", "surname": "Ruiz", "nationalId": "2"},
  "location": "Bodega",
  "description": "Sin novedad",
  "items": [{"code": "BN-1", "name": "Silla", "status": "Bueno"}]
}`

type memStore struct {
	docs map[string][]byte
	err  error
}

func (m *memStore) Deliver(ctx context.Context, doc sink.Document) (sink.Outcome, error) {
	if m.err != nil {
		return sink.Outcome{Status: sink.StatusUnavailable}, m.err
	}
	m.docs[doc.Name] = doc.Bytes
	return sink.Outcome{Status: sink.StatusDelivered, Location: "acta:" + doc.Name, Size: len(doc.Bytes)}, nil
}

func newTestServer(t *testing.T, store sink.Sink) *Server {
	t.Helper()
	s, err := New(":0", Deps{
		Backends:       map[string]renderer.Backend{"stub": stubBackend{}},
		DefaultBackend: "stub",
		Store:          store,
	})
	require.NoError(t, err)
	return s
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(t, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rec.Body.String())
}

func TestRequestIDIsKept(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	newTestServer(t, nil).Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestReadinessDegraded(t *testing.T) {
	s, err := New(":0", Deps{
		Backends:       map[string]renderer.Backend{"stub": stubBackend{}},
		DefaultBackend: "stub",
		Ready:          func(context.Context) error { return errors.New("redis down") },
	})
	require.NoError(t, err)
	rec := do(s, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis down")
}

func TestListFlavors(t *testing.T) {
	rec := do(newTestServer(t, nil), http.MethodGet, "/api/v1/flavors", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":["handover","return"]}`, rec.Body.String())
}

func TestPrintInline(t *testing.T) {
	rec := do(newTestServer(t, nil), http.MethodPost, "/api/v1/actas/handover", record)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "acta-entrega-ACT-7.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestPrintStored(t *testing.T) {
	store := &memStore{docs: map[string][]byte{}}
	rec := do(newTestServer(t, store), http.MethodPost, "/api/v1/actas/return?store=1", record)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data sink.Outcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, sink.StatusDelivered, body.Data.Status)
	assert.Equal(t, "acta:acta-devolucion-ACT-7.pdf", body.Data.Location)
	assert.Contains(t, store.docs, "acta-devolucion-ACT-7.pdf")
}

func TestPrintErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		store  sink.Sink
		status int
		code   string
	}{
		{"unknown flavor", "/api/v1/actas/loan", record, nil, http.StatusNotFound, "UNKNOWN_FLAVOR"},
		{"unknown backend", "/api/v1/actas/handover?backend=latex", record, nil, http.StatusBadRequest, "UNKNOWN_BACKEND"},
		{"bad json", "/api/v1/actas/handover", "{", nil, http.StatusBadRequest, "INVALID_RECORD"},
		{"no items", "/api/v1/actas/handover", `{"code":"X"}`, nil, http.StatusUnprocessableEntity, "NO_LINE_ITEMS"},
		{"no store", "/api/v1/actas/handover?store=1", record, nil, http.StatusServiceUnavailable, "PRINT_UNAVAILABLE"},
		{"store down", "/api/v1/actas/handover?store=1", record,
			&memStore{err: sink.ErrPrintUnavailable}, http.StatusServiceUnavailable, "PRINT_UNAVAILABLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newTestServer(t, tt.store), http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestPrintUnavailableCarriesOutcome(t *testing.T) {
	rec := do(newTestServer(t, nil), http.MethodPost, "/api/v1/actas/handover?store=1", record)
	e := decodeError(t, rec)
	require.NotNil(t, e.Outcome)
	assert.Equal(t, sink.StatusUnavailable, e.Outcome.Status)
}

func TestLayoutEndpoint(t *testing.T) {
	rec := do(newTestServer(t, nil), http.MethodPost, "/api/v1/actas/handover/layout", record)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res layout.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Pages, 1)
	assert.Equal(t, "Acta de entrega ACT-7", res.Meta.Title)
}

func TestNewValidatesBackends(t *testing.T) {
	_, err := New(":0", Deps{})
	assert.Error(t, err)
	_, err = New(":0", Deps{Backends: map[string]renderer.Backend{"stub": stubBackend{}}, DefaultBackend: "canvas"})
	assert.Error(t, err)
}
