package task

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// Handler exposes the store's operations as JSON endpoints. Validation no-ops
// and lookup misses answer 200 with ok=false, matching the store contract:
// they are not errors.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// /api/tasks  (collection)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := ParseFilter(r.URL.Query().Get("filter"))
		writeJSON(w, 200, h.store.Derive(filter))

	case http.MethodPost:
		var in struct {
			Text string `json:"text"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		t, ok := h.store.Add(in.Text)
		if !ok {
			writeJSON(w, 200, map[string]any{"ok": false, "reason": "empty text"})
			return
		}
		writeJSON(w, 201, t)

	case http.MethodDelete:
		h.store.ClearAll()
		writeJSON(w, 200, map[string]any{"ok": true})

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/tasks/{id}, /api/tasks/{id}/toggle, /api/tasks/{id}/edit,
// /api/tasks/counts
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	if tail == "counts" {
		if r.Method != http.MethodGet {
			writeErr(w, 405, "method not allowed")
			return
		}
		writeJSON(w, 200, h.store.Counts())
		return
	}

	parts := strings.Split(tail, "/")
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		writeErr(w, 400, "invalid task id")
		return
	}

	// /api/tasks/{id}
	if len(parts) == 1 {
		if r.Method != http.MethodDelete {
			writeErr(w, 405, "method not allowed")
			return
		}
		writeJSON(w, 200, map[string]any{"ok": h.store.Delete(id)})
		return
	}

	if len(parts) != 2 {
		writeErr(w, 404, "not found")
		return
	}

	switch parts[1] {
	case "toggle":
		if r.Method != http.MethodPost {
			writeErr(w, 405, "method not allowed")
			return
		}
		writeJSON(w, 200, map[string]any{"ok": h.store.Toggle(id)})

	case "edit":
		h.edit(w, r, id)

	default:
		writeErr(w, 404, "not found")
	}
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodPost:
		var in struct {
			Text string `json:"text"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		h.store.StartEdit(id, in.Text)
		writeJSON(w, 200, h.store.Editing())

	case http.MethodPut:
		var in struct {
			Text *string `json:"text"`
		}
		if r.Body != nil {
			_ = decodeJSON(r, &in)
		}
		// The page sends its latest scratch text along with the save.
		if in.Text != nil {
			h.store.SetEditText(*in.Text)
		}
		writeJSON(w, 200, map[string]any{"ok": h.store.SaveEdit(id)})

	case http.MethodDelete:
		h.store.CancelEdit()
		writeJSON(w, 200, map[string]any{"ok": true})

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/state  (page bootstrap)
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, 200, h.store.Snapshot())

	case http.MethodPut:
		var in struct {
			Filter string `json:"filter"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		h.store.SetFilter(ParseFilter(in.Filter))
		writeJSON(w, 200, h.store.Snapshot())

	default:
		writeErr(w, 405, "method not allowed")
	}
}
