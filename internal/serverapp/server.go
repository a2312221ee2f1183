package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"ticklist/internal/config"
	"ticklist/internal/httpmw"
	"ticklist/internal/server"
	"ticklist/internal/storage"
	"ticklist/internal/task"
	"ticklist/internal/telemetry"
	"ticklist/static"
	"ticklist/ui/page"

	"github.com/a-h/templ"
)

type Options struct {
	Config        *config.Config
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger

	// IDs overrides the store's identity source (tests).
	IDs task.IDSource
}

// App is the assembled application: one store, one slot, one event sink.
type App struct {
	Handler http.Handler
	Store   *task.Store
	Events  telemetry.Repository

	closers []func() error
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	app := &App{}

	slot, closeSlot, err := storage.Open(opts.Config)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeSlot)

	events := telemetry.NewMemoryRepository()
	store, err := task.NewStore(task.Options{
		Slot:   slot,
		Events: events,
		Logger: opts.Logger,
		IDs:    opts.IDs,
	})
	if err != nil {
		return nil, err
	}
	store.Load()

	app.Store = store
	app.Events = events

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	taskHandler := task.NewHandler(store)
	mux.HandleFunc("/api/tasks", taskHandler.TasksRoot)
	mux.HandleFunc("/api/tasks/", taskHandler.TasksSub)
	mux.HandleFunc("/api/state", taskHandler.State)

	rr.Add(server.RouteDoc{Method: "GET", Pattern: "/api/tasks", Summary: "List tasks, ?filter=all|active|completed"})
	rr.Add(server.RouteDoc{Method: "POST", Pattern: "/api/tasks", Summary: "Add a task", ExampleBody: `{"text":"buy milk"}`})
	rr.Add(server.RouteDoc{Method: "DELETE", Pattern: "/api/tasks", Summary: "Clear the whole list"})
	rr.Add(server.RouteDoc{Method: "GET", Pattern: "/api/tasks/counts", Summary: "Task counts"})
	rr.Add(server.RouteDoc{Method: "POST", Pattern: "/api/tasks/{id}/toggle", Summary: "Toggle completion"})
	rr.Add(server.RouteDoc{Method: "DELETE", Pattern: "/api/tasks/{id}", Summary: "Delete a task"})
	rr.Add(server.RouteDoc{Method: "POST", Pattern: "/api/tasks/{id}/edit", Summary: "Start editing", ExampleBody: `{"text":"current text"}`})
	rr.Add(server.RouteDoc{Method: "PUT", Pattern: "/api/tasks/{id}/edit", Summary: "Save the edit", ExampleBody: `{"text":"new text"}`})
	rr.Add(server.RouteDoc{Method: "DELETE", Pattern: "/api/tasks/{id}/edit", Summary: "Cancel the edit"})
	rr.Add(server.RouteDoc{Method: "GET", Pattern: "/api/state", Summary: "Full page state"})
	rr.Add(server.RouteDoc{Method: "PUT", Pattern: "/api/state", Summary: "Set the active filter", ExampleBody: `{"filter":"active"}`})

	mux.HandleFunc("/api/routes", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, rr.List())
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		since := time.Now().AddDate(0, 0, -7)
		if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "since must be YYYY-MM-DD"})
				return
			}
			since = parsed
		}
		evs, err := events.GetEvents(since, nil)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, telemetry.CalculateStats(evs, since))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "ticklist",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, _, err := slot.Get(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "task storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "ticklist",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.Handle("/", templ.Handler(page.HomePage()))

	app.Handler = httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)
	return app, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
