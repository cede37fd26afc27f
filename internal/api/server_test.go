package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/haven/internal/content"
	"github.com/talgya/haven/internal/sim"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	engine := sim.New(content.Default())
	st := engine.DefaultState()
	st.SummonPaused = false
	st.PauseOnSummon = false
	st.Creation.Stage = sim.StageComplete
	return NewServer(engine, st)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "10.0.0.1:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetState(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	st := decode[sim.State](t, rec)
	assert.Equal(t, 1, st.Day)
	assert.Len(t, st.Villagers, 3)
}

func TestGetStatusSummary(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	status := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, status["day"])
	assert.EqualValues(t, 3, status["population"])
	assert.EqualValues(t, content.DefaultBedCapacity, status["beds"])
}

func TestContentEndpoints(t *testing.T) {
	srv := testServer(t)
	h := srv.Handler()

	biomes := decode[[]content.Biome](t, doJSON(t, h, http.MethodGet, "/api/v1/content/biomes", nil))
	assert.Len(t, biomes, 11)

	jobs := decode[[]content.Job](t, doJSON(t, h, http.MethodGet, "/api/v1/content/jobs", nil))
	assert.Len(t, jobs, 8)

	plans := decode[[]content.Plan](t, doJSON(t, h, http.MethodGet, "/api/v1/content/plans", nil))
	assert.NotEmpty(t, plans)
}

func TestPostTickAdvancesDay(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/tick", map[string]int{"days": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	st := decode[sim.State](t, rec)
	assert.Equal(t, 4, st.Day)
	assert.Equal(t, 4, srv.State().Day, "the live snapshot moved too")
}

func TestPostAssignSuggestsNearMisses(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/assign",
		map[string]string{"villagerId": "v-1", "jobId": "foragr"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[errorResponse](t, rec)
	assert.Contains(t, resp.Error, "unknown job")
	assert.Equal(t, "forager", resp.Suggestion)
}

func TestPostAssignMovesVillager(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/assign",
		map[string]string{"villagerId": "v-1", "jobId": "mason"})
	require.Equal(t, http.StatusOK, rec.Code)

	st := decode[sim.State](t, rec)
	assert.Equal(t, "mason", st.Villagers[0].JobID)
}

func TestPostCraftRegistersTarget(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/craft",
		map[string]any{"recipeId": "iron_axe", "targetCount": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	st := decode[sim.State](t, rec)
	require.Len(t, st.Crafting, 1)
	assert.Equal(t, "iron_axe", st.Crafting[0].RecipeID)
}

func TestPostBuildQueuesProject(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/build", map[string]any{
		"type": "new", "targetSlug": "makeshift_shelter",
		"location": [2]int{1, 0}, "baseDays": 2, "capacityDelta": 4,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	st := decode[sim.State](t, rec)
	require.Len(t, st.BuildQueue, 1)
	assert.Equal(t, "makeshift_shelter", st.BuildQueue[0].TargetSlug)
}

func TestAdminKeyGuardsIntents(t *testing.T) {
	srv := testServer(t)
	srv.AdminKey = "sekrit"
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/tick", map[string]int{"days": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/state", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "reads stay public")

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(map[string]int{"days": 1}))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tick", &buf)
	req.Header.Set("Authorization", "Bearer sekrit")
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestCreationFlowOverHTTP(t *testing.T) {
	engine := sim.New(content.Default())
	srv := NewServer(engine, engine.DefaultState())
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/creation/biome", map[string]string{"biome": "desert"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/creation/event", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[sim.State](t, rec)
	require.NotNil(t, st.Creation.EventID)

	// Pick the first thought of whichever event was rolled.
	var thoughtID string
	for _, evID := range []string{"dry_wellspring", "rising_water"} {
		if *st.Creation.EventID == evID {
			switch evID {
			case "dry_wellspring":
				thoughtID = "wellspring_forager_roots"
			case "rising_water":
				thoughtID = "water_woodcutter_dike"
			}
		}
	}
	require.NotEmpty(t, thoughtID)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/creation/thought", map[string]string{"thoughtId": thoughtID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/creation/task", map[string]string{"task": "gather_food"})
	require.Equal(t, http.StatusOK, rec.Code)
	final := decode[sim.State](t, rec)
	assert.Equal(t, sim.StageComplete, final.Creation.Stage)
	assert.False(t, final.SummonPaused)
}

func TestCreationBiomeTypoGetsSuggestion(t *testing.T) {
	engine := sim.New(content.Default())
	srv := NewServer(engine, engine.DefaultState())

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/creation/biome", map[string]string{"biome": "tiaga"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[errorResponse](t, rec)
	assert.Equal(t, "taiga", resp.Suggestion)
}
