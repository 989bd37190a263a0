package daycounter

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	prom "github.com/prometheus/client_golang/prometheus"

	"daycounter/internal/config"
	"daycounter/internal/metrics"
	"daycounter/internal/store"
)

// Server encapsulates all the state and handlers for the day counter
type Server struct {
	State    *State
	Clients  *Clients
	Registry *prom.Registry
	gateway  store.Gateway
	upgrader websocket.Upgrader
}

// NewServer opens the configured gateway, loads the stored start date and
// wires the websocket broadcast.
func NewServer(ctx context.Context, cfg config.Config) (*Server, error) {
	policy, err := ParseDismissPolicy(cfg.PickerDismiss)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	gateway, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Persistence gateway ready", "backend", cfg.Backend, "policy", policy, "timezone", loc)

	reg := prom.NewRegistry()
	state := NewState(gateway,
		WithDismissPolicy(policy),
		WithLocation(loc),
		WithRecorder(metrics.NewPrometheusRecorder(reg)),
	)
	server := New(state, reg)
	server.gateway = gateway

	state.Initialize(ctx)
	return server, nil
}

// New wraps an existing state. reg may be nil when metrics are not exposed.
func New(state *State, reg *prom.Registry) *Server {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	server := &Server{
		State:    state,
		Clients:  NewClients(),
		Registry: reg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	state.AddHook(BroadcastHook(server.Clients))
	return server
}

// Close releases the persistence gateway.
func (s *Server) Close() error {
	if s.gateway == nil {
		return nil
	}
	return s.gateway.Close()
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SetupRoutes configures all HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/counter", s.CounterHandler)
	mux.HandleFunc("/counter/date", s.SelectDateHandler)
	mux.HandleFunc("/counter/reset", s.ResetHandler)
	mux.HandleFunc("/picker/open", s.PickerOpenHandler)
	mux.HandleFunc("/picker/change", s.PickerChangeHandler)
	mux.HandleFunc("/picker/dismiss", s.PickerDismissHandler)
	mux.HandleFunc("/connect", s.WebsocketHandler)
	mux.Handle("/metrics", metrics.HTTPHandler(s.Registry))

	return corsMiddleware(mux)
}
