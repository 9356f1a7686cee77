package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// submitRequest is the POST /api/battles body: a seed and the raw YAML
// configuration bytes (units, abilities, traits, items, deployments).
type submitRequest struct {
	Seed   uint64 `json:"seed"`
	Config string `json:"config"`
}

func (h *routerHandlers) handleSubmitBattle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "reading request body", http.StatusBadRequest)
		return
	}

	var req submitRequest
	contentType := r.Header.Get("Content-Type")
	if contentType == "application/json" {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	} else {
		// Accept raw YAML directly, seed from the query string.
		req.Config = string(body)
	}
	if seedParam := r.URL.Query().Get("seed"); seedParam != "" {
		if seed, err := strconv.ParseUint(seedParam, 10, 64); err == nil {
			req.Seed = seed
		}
	}
	if req.Config == "" {
		writeError(w, "config is required", http.StatusBadRequest)
		return
	}

	run, err := h.store.Submit([]byte(req.Config), req.Seed)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]any{"id": run.ID, "seed": run.Seed, "status": StatusRunning})
}

func (h *routerHandlers) handleGetBattle(w http.ResponseWriter, r *http.Request) {
	run, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, "unknown battle id", http.StatusNotFound)
		return
	}

	status, result, runErr := run.snapshot()
	resp := map[string]any{
		"id":     run.ID,
		"seed":   run.Seed,
		"status": status,
		"tick":   run.CurrentTick(),
	}
	if status == StatusDone {
		resp["winner"] = result.Winner
		resp["ticks"] = result.Ticks
	}
	if status == StatusFailed {
		resp["error"] = runErr.Error()
	}
	writeJSON(w, resp)
}

func (h *routerHandlers) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	run, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, "unknown battle id", http.StatusNotFound)
		return
	}
	writeJSON(w, run.Events())
}

func (h *routerHandlers) handleListBattles(w http.ResponseWriter, r *http.Request) {
	runs := h.store.List()
	out := make([]map[string]any, 0, len(runs))
	for _, run := range runs {
		status, _, _ := run.snapshot()
		out = append(out, map[string]any{"id": run.ID, "seed": run.Seed, "status": status, "tick": run.CurrentTick()})
	}
	writeJSON(w, out)
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
