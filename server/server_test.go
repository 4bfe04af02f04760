package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skiroute/server"
	"github.com/katalvlaran/skiroute/skiing"
	"github.com/katalvlaran/skiroute/store"
)

const sampleMap = "4 4\n4 8 7 3\n2 5 9 3\n6 3 2 5\n4 4 1 6\n"

func newServer(t *testing.T, opts ...server.Option) (*server.Server, store.Store) {
	t.Helper()
	st := store.NewMemory()
	return server.New(st, opts...), st
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, body
}

func decodeReport(t *testing.T, body []byte) skiing.Report {
	t.Helper()
	var rep skiing.Report
	require.NoError(t, json.Unmarshal(body, &rep))
	return rep
}

func assertSampleRoute(t *testing.T, rep skiing.Report) {
	t.Helper()
	require.Len(t, rep.Routes, 1)
	assert.Equal(t, 4, rep.MaxDistance)
	assert.Equal(t, 8, rep.Routes[0].Drop)
	assert.Equal(t, []int{6, 5, 9, 10, 14}, rep.Routes[0].PathIndices)
	assert.Equal(t, []int{9, 5, 3, 2, 1}, rep.Routes[0].PathValues)
}

func TestSolve_TextBody(t *testing.T) {
	srv, st := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(sampleMap))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
	resp, body := do(t, srv.App(), req)

	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "miss", resp.Header.Get(server.CacheHeader))
	rep := decodeReport(t, body)
	assertSampleRoute(t, rep)

	stored, err := st.GetRun(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.Digest, stored.Digest)
}

func TestSolve_JSONBodies(t *testing.T) {
	bodies := map[string]string{
		"Flat": `{"width":4,"height":4,"elevations":[4,8,7,3,2,5,9,3,6,3,2,5,4,4,1,6]}`,
		"Rows": `{"rows":[[4,8,7,3],[2,5,9,3],[6,3,2,5],[4,4,1,6]]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv, _ := newServer(t)
			req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, out := do(t, srv.App(), req)

			require.Equal(t, http.StatusCreated, resp.StatusCode, string(out))
			assertSampleRoute(t, decodeReport(t, out))
		})
	}
}

func TestSolve_CacheHit(t *testing.T) {
	srv, st := newServer(t)
	post := func(query string) (*http.Response, []byte) {
		req := httptest.NewRequest(http.MethodPost, "/solve"+query, strings.NewReader(sampleMap))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
		return do(t, srv.App(), req)
	}

	resp, body := post("")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decodeReport(t, body)

	resp, body = post("")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hit", resp.Header.Get(server.CacheHeader))
	assert.Equal(t, first.ID, decodeReport(t, body).ID)

	resp, body = post("?refresh=true")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEqual(t, first.ID, decodeReport(t, body).ID)

	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSolve_BadInput(t *testing.T) {
	cases := []struct {
		name, contentType, body string
	}{
		{"MissingHeader", fiber.MIMETextPlain, ""},
		{"BadToken", fiber.MIMETextPlain, "2 1\n3 x\n"},
		{"ShortBody", fiber.MIMETextPlain, "2 2\n1 2 3\n"},
		{"BadJSON", fiber.MIMEApplicationJSON, "{"},
		{"SizeMismatch", fiber.MIMEApplicationJSON, `{"width":2,"height":2,"elevations":[1]}`},
		{"Ragged", fiber.MIMEApplicationJSON, `{"rows":[[1,2],[3]]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newServer(t)
			req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, tc.contentType)
			resp, body := do(t, srv.App(), req)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, string(body), `"error"`)
		})
	}
}

func TestSolve_TooLarge(t *testing.T) {
	srv, _ := newServer(t, server.WithSolveOptions(skiing.WithMaxCells(4)))

	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(sampleMap))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
	resp, _ := do(t, srv.App(), req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

// TestSolve_TooLargeCached: a stored run for the same map does not bypass
// the cell limit.
func TestSolve_TooLargeCached(t *testing.T) {
	st := store.NewMemory()
	post := func(srv *server.Server) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(sampleMap))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
		resp, _ := do(t, srv.App(), req)
		return resp
	}

	require.Equal(t, http.StatusCreated, post(server.New(st)).StatusCode)
	resp := post(server.New(st, server.WithSolveOptions(skiing.WithMaxCells(4))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(server.CacheHeader))
}

func TestRuns_CRUD(t *testing.T) {
	srv, _ := newServer(t)
	app := srv.App()

	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(sampleMap))
	resp, body := do(t, app, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeReport(t, body).ID

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/runs", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var runs []skiing.Report
	require.NoError(t, json.Unmarshal(body, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/runs/"+id, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assertSampleRoute(t, decodeReport(t, body))

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/runs/"+id, nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/runs/"+id, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/runs/"+id, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/runs", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestRuns_BadLimit(t *testing.T) {
	srv, _ := newServer(t)
	resp, _ := do(t, srv.App(), httptest.NewRequest(http.MethodGet, "/runs?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type failingStore struct{ store.Store }

func (failingStore) ListRuns(context.Context, int) ([]skiing.Report, error) {
	return nil, errors.New("disk on fire")
}

func TestRuns_StoreError(t *testing.T) {
	srv := server.New(failingStore{store.NewMemory()})
	resp, body := do(t, srv.App(), httptest.NewRequest(http.MethodGet, "/runs", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "disk on fire")
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newServer(t)

	resp, body := do(t, srv.App(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, body = do(t, srv.App(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "skiroute_http_requests_total")
}
