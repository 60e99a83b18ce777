package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/economy"
	"github.com/ironhorse/railyard/internal/market"
	"github.com/ironhorse/railyard/internal/memstore"
)

var testNow = time.Date(2026, time.March, 6, 14, 30, 0, 0, time.UTC)

// newTestRouter wires real services on a memstore behind the full
// route table used in production.
func newTestRouter(t *testing.T) (*chi.Mux, *memstore.Store) {
	t.Helper()
	store := memstore.New().WithClock(func() time.Time { return testNow })
	gen := market.NewSeededGenerator(7)
	svc := economy.NewServiceWithClock(store, gen, catalog.DefaultHomeCity,
		func() time.Time { return testNow }, func() float64 { return 1 })

	r := chi.NewRouter()
	r.Route("/api/v1/players/{playerID}", func(r chi.Router) {
		r.Get("/", HandleGetPlayer(svc))
		r.Post("/jobs/assign", HandleAssignJob(svc))
		r.Post("/jobs/auto-assign", HandleAutoAssignJob(svc))
		r.Post("/jobs/claim", HandleClaimJob(svc))
		r.Post("/market/refresh", HandleRefreshMarket(svc))
		r.Post("/market/purchase", HandlePurchaseNew(svc))
		r.Post("/fleet/{locoID}/rename", HandleRenameLocomotive(svc))
		r.Post("/admin/grant", HandleAdminGrant(store))
	})
	return r, store
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetPlayerCreatesAndReturnsSnapshot(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/players/alice/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var p domain.PlayerState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "alice", p.PlayerID)
	assert.Len(t, p.Locomotives, 1)
	assert.Len(t, p.Jobs, 11)
}

func TestAssignJobEndToEnd(t *testing.T) {
	router, store := newTestRouter(t)

	// Materialize the player and pick a job the starter can power.
	rec := doRequest(t, router, http.MethodGet, "/api/v1/players/alice/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	p, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)

	var jobID string
	for _, j := range p.Jobs {
		if j.HPRequired <= p.Locomotives[0].Horsepower {
			jobID = j.ID
			break
		}
	}
	require.NotEmpty(t, jobID, "seeded board should contain a starter-powerable job")

	body := `{"job_id":"` + jobID + `","loco_ids":["` + p.Locomotives[0].ID + `"]}`
	rec = doRequest(t, router, http.MethodPost, "/api/v1/players/alice/jobs/assign", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var job domain.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, domain.JobStatusInProgress, job.Status)
}

func TestAssignJobValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)
	doRequest(t, router, http.MethodGet, "/api/v1/players/alice/", "")

	// Missing loco_ids fails validation before touching the service.
	rec := doRequest(t, router, http.MethodPost, "/api/v1/players/alice/jobs/assign",
		`{"job_id":"whatever"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "loco_ids")

	// Malformed body.
	rec = doRequest(t, router, http.MethodPost, "/api/v1/players/alice/jobs/assign", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClaimJobNotFoundMapsToBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)
	doRequest(t, router, http.MethodGet, "/api/v1/players/alice/", "")

	rec := doRequest(t, router, http.MethodPost, "/api/v1/players/alice/jobs/claim",
		`{"job_id":"missing"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgJobNotFoundError)
}

func TestRenameRejectsBadUnitNumber(t *testing.T) {
	router, store := newTestRouter(t)
	doRequest(t, router, http.MethodGet, "/api/v1/players/alice/", "")

	p, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	locoID := p.Locomotives[0].ID

	rec := doRequest(t, router, http.MethodPost,
		"/api/v1/players/alice/fleet/"+locoID+"/rename", `{"unit_number":"#12"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unit_number")
}

func TestPurchaseNewInsufficientStock(t *testing.T) {
	router, store := newTestRouter(t)
	doRequest(t, router, http.MethodGet, "/api/v1/players/alice/", "")

	// Zero out stock so the purchase must fail cleanly.
	p, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	p.DealershipStock = domain.DealershipStock{}
	require.NoError(t, store.Update(context.Background(), p))

	rec := doRequest(t, router, http.MethodPost, "/api/v1/players/alice/market/purchase",
		`{"model":"SW1500","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgOutOfStockError)
}

func TestAdminGrantIncrementsStats(t *testing.T) {
	router, store := newTestRouter(t)
	doRequest(t, router, http.MethodGet, "/api/v1/players/alice/", "")

	rec := doRequest(t, router, http.MethodPost, "/api/v1/players/alice/admin/grant",
		`{"cash":1000,"xp":27000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	p, err := store.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(27000), p.Stats.XP)
	assert.Equal(t, 10, p.Stats.Level)
}

func TestHealthEndpoints(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealthz()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	HandleReadyz(nil)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
