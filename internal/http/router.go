package http

import (
	"net/http"
	"strconv"
	"strings"
)

// RouterConfig assembles the handlers and middleware served by the API.
type RouterConfig struct {
	Health     *HealthHandler
	Schedules  *ScheduleHandler
	Middleware []func(http.Handler) http.Handler
}

// NewRouter builds the /api route tree and wraps it in the configured
// middleware, outermost first.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Health != nil {
		mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Health.Check(w, r)
		})
	}

	if cfg.Schedules != nil {
		mux.HandleFunc("/api/slots", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Schedules.List(w, r)
			case http.MethodPost:
				cfg.Schedules.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/api/slots/", func(w http.ResponseWriter, r *http.Request) {
			routeSlotSubtree(cfg.Schedules, w, r)
		})
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

// routeSlotSubtree dispatches everything below /api/slots/:
// week/{date}, {id}, {id}/date/{date} and {id}/exceptions.
func routeSlotSubtree(schedules *ScheduleHandler, w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/slots/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	if len(parts) == 2 && parts[0] == "week" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		r = r.WithContext(ContextWithDate(r.Context(), parts[1]))
		schedules.Week(w, r)
		return
	}

	// Everything else starts with a slot id; a malformed id flows through
	// as zero so the handler can reply with the envelope error.
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		id = 0
	}
	r = r.WithContext(ContextWithScheduleID(r.Context(), id))

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodDelete {
			methodNotAllowed(w, http.MethodDelete)
			return
		}
		schedules.Delete(w, r)

	case len(parts) == 2 && parts[1] == "exceptions":
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		schedules.Exceptions(w, r)

	case len(parts) == 3 && parts[1] == "date":
		r = r.WithContext(ContextWithDate(r.Context(), parts[2]))
		switch r.Method {
		case http.MethodPut:
			schedules.Modify(w, r)
		case http.MethodDelete:
			schedules.Clear(w, r)
		default:
			methodNotAllowed(w, http.MethodPut, http.MethodDelete)
		}

	default:
		http.NotFound(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
