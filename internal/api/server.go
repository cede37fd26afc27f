// Package api serves the settlement over HTTP. GET endpoints are public
// read-only views of the current snapshot; POST endpoints carry player
// intents (advance day, assign job, set craft target, enqueue
// construction, creation flow) and require a bearer token when one is
// configured.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/talgya/haven/internal/content"
	"github.com/talgya/haven/internal/persistence"
	"github.com/talgya/haven/internal/sim"
)

// displayNotifications is how many recent notifications the presentation
// endpoints return. The core buffer keeps more; this is a view concern.
const displayNotifications = 6

// Server owns the live snapshot and serializes intents against it.
type Server struct {
	Engine   *sim.Simulation
	DB       *persistence.DB // optional; state is persisted after each intent
	Slot     string
	Port     int
	AdminKey string // bearer token for POST endpoints; empty = open

	mu    sync.Mutex
	state sim.State
}

// NewServer creates a server around an initial snapshot.
func NewServer(engine *sim.Simulation, st sim.State) *Server {
	return &Server{Engine: engine, Slot: persistence.DefaultSlot, state: st}
}

// State returns a deep copy of the current snapshot.
func (s *Server) State() sim.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Handler builds the route table. Split out from Start so tests can mount
// it on httptest servers.
func (s *Server) Handler() http.Handler {
	intentLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/state", s.handleState)
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/map", s.handleMap)
	mux.HandleFunc("GET /api/v1/plan", s.handlePlan)
	mux.HandleFunc("GET /api/v1/notifications", s.handleNotifications)
	mux.HandleFunc("GET /api/v1/content/biomes", s.handleBiomes)
	mux.HandleFunc("GET /api/v1/content/jobs", s.handleJobs)
	mux.HandleFunc("GET /api/v1/content/plans", s.handlePlans)

	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return RateLimitMiddleware(intentLimiter, s.adminOnly(h))
	}
	mux.HandleFunc("POST /api/v1/tick", limited(s.handleTick))
	mux.HandleFunc("POST /api/v1/assign", limited(s.handleAssign))
	mux.HandleFunc("POST /api/v1/craft", limited(s.handleCraft))
	mux.HandleFunc("POST /api/v1/build", limited(s.handleBuild))
	mux.HandleFunc("POST /api/v1/creation/biome", limited(s.handleCreationBiome))
	mux.HandleFunc("POST /api/v1/creation/event", limited(s.handleCreationEvent))
	mux.HandleFunc("POST /api/v1/creation/thought", limited(s.handleCreationThought))
	mux.HandleFunc("POST /api/v1/creation/task", limited(s.handleCreationTask))

	return mux
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	go func() {
		slog.Info("api listening", "addr", addr)
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("api server stopped", "error", err)
		}
	}()
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey != "" && r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

type errorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.State())
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.State()
	beds := 0.0
	for _, b := range st.Buildings {
		if b.Status == sim.StatusActive {
			beds += b.Capacity
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"day":          st.Day,
		"biome":        st.Biome,
		"population":   len(st.Villagers),
		"beds":         beds,
		"morale":       st.Morale,
		"stability":    st.Stability,
		"readiness":    st.Readiness,
		"resources":    st.Resources,
		"deltas":       st.Deltas,
		"summonPaused": st.SummonPaused,
		"queueLength":  len(st.BuildQueue),
	})
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.State().Map)
}

func (s *Server) handlePlan(w http.ResponseWriter, _ *http.Request) {
	st := s.State()
	writeJSON(w, http.StatusOK, s.Engine.EvaluateJobPlans(st).Summaries)
}

func (s *Server) handleNotifications(w http.ResponseWriter, _ *http.Request) {
	st := s.State()
	n := st.Notifications
	if len(n) > displayNotifications {
		n = n[len(n)-displayNotifications:]
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleBiomes(w http.ResponseWriter, _ *http.Request) {
	tables := s.Engine.Tables()
	out := make([]content.Biome, 0, len(tables.BiomeOrder))
	for _, id := range tables.BiomeOrder {
		out = append(out, tables.Biomes[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleJobs(w http.ResponseWriter, _ *http.Request) {
	tables := s.Engine.Tables()
	out := make([]content.Job, 0, len(tables.JobOrder))
	for _, id := range tables.JobOrder {
		out = append(out, tables.Jobs[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePlans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Tables().Plans)
}

// mutate applies an intent under the lock and persists the result.
func (s *Server) mutate(fn func(sim.State) (sim.State, error)) (sim.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return sim.State{}, err
	}
	s.state = next
	if s.DB != nil {
		if err := s.DB.SaveState(s.Slot, next); err != nil {
			slog.Error("persist state", "error", err)
		}
	}
	return next.Clone(), nil
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Days int `json:"days"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	if req.Days < 1 {
		req.Days = 1
	}
	next, _ := s.mutate(func(st sim.State) (sim.State, error) {
		return s.Engine.TickDay(st, req.Days), nil
	})
	slog.Info("day advanced", "day", next.Day)
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VillagerID string `json:"villagerId"`
		JobID      string `json:"jobId"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	next, err := s.mutate(func(st sim.State) (sim.State, error) {
		return s.Engine.AssignJob(st, req.VillagerID, req.JobID)
	})
	if err != nil {
		resp := errorResponse{Error: err.Error()}
		if errors.Is(err, sim.ErrUnknownJob) {
			resp.Suggestion = s.nearestID(req.JobID, s.Engine.Tables().JobOrder)
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleCraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecipeID    string  `json:"recipeId"`
		TargetCount float64 `json:"targetCount"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	next, err := s.mutate(func(st sim.State) (sim.State, error) {
		return s.Engine.EnsureCraftTarget(st, req.RecipeID, req.TargetCount)
	})
	if err != nil {
		resp := errorResponse{Error: err.Error()}
		if errors.Is(err, sim.ErrUnknownRecipe) {
			var ids []string
			for id := range s.Engine.Tables().Recipes {
				ids = append(ids, id)
			}
			resp.Suggestion = s.nearestID(req.RecipeID, ids)
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type          string  `json:"type"`
		TargetSlug    string  `json:"targetSlug"`
		Location      [2]int  `json:"location"`
		BaseDays      int     `json:"baseDays"`
		ReplacementOf *string `json:"replacementOf"`
		CapacityDelta float64 `json:"capacityDelta"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	next, err := s.mutate(func(st sim.State) (sim.State, error) {
		return s.Engine.EnqueueConstruction(st, sim.EnqueueOptions{
			Kind:          content.BuildKind(req.Type),
			TargetSlug:    req.TargetSlug,
			Location:      req.Location,
			BaseDays:      req.BaseDays,
			ReplacementOf: req.ReplacementOf,
			CapacityDelta: req.CapacityDelta,
		})
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleCreationBiome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Biome string `json:"biome"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	next, err := s.mutate(func(st sim.State) (sim.State, error) {
		return s.Engine.ChooseBiome(st, req.Biome)
	})
	if err != nil {
		resp := errorResponse{Error: err.Error()}
		resp.Suggestion = s.nearestID(req.Biome, s.Engine.Tables().BiomeOrder)
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleCreationEvent(w http.ResponseWriter, _ *http.Request) {
	next, err := s.mutate(s.Engine.BeginCreationEvent)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleCreationThought(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ThoughtID string `json:"thoughtId"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	next, err := s.mutate(func(st sim.State) (sim.State, error) {
		return s.Engine.ChooseThought(st, req.ThoughtID)
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleCreationTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Task string `json:"task"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	next, err := s.mutate(func(st sim.State) (sim.State, error) {
		return s.Engine.ChooseStartingTask(st, req.Task)
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, next)
}

// nearestID suggests the closest known id when a request names an unknown
// one. Returns empty when nothing is plausibly close.
func (s *Server) nearestID(input string, ids []string) string {
	best := ""
	bestDist := 4 // anything further is noise, not a typo
	for _, id := range ids {
		if d := levenshtein.ComputeDistance(input, id); d < bestDist {
			best = id
			bestDist = d
		}
	}
	return best
}
