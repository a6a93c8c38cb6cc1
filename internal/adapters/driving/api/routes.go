package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driving"
)

const (
	apiBasePath             = "/api"
	representativesBasePath = "/representatives"
	casesBasePath           = "/cases"
	syncBasePath            = "/sync"
	statusSubPath           = "/status"
	healthPath              = "/healthz"
)

const paramID = "id"

// RequestTimeout bounds every request, including POST /api/sync.
const RequestTimeout = 5 * time.Minute

// NewRouter builds the HTTP handler over the driving ports.
func NewRouter(entities driving.EntityService, syncOrch driving.SyncOrchestrator) http.Handler {
	h := &handler{entities: entities, sync: syncOrch}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: requestLog{}, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))
	r.Use(middleware.SetHeader(headerContentType, contentTypeJSON))

	r.Route(apiBasePath, func(r chi.Router) {
		configureEntityRoutes(r, representativesBasePath, domain.KindRepresentative, h)
		configureEntityRoutes(r, casesBasePath, domain.KindCase, h)
		r.Route(syncBasePath, func(r chi.Router) {
			r.Post("/", makeHandler(h.handleSync))
			r.Get(statusSubPath, makeHandler(h.handleStatus))
		})
	})

	r.Get(healthPath, handleHealthCheck)

	return r
}

func configureEntityRoutes(r chi.Router, basePath string, kind domain.EntityKind, h *handler) {
	r.Route(basePath, func(r chi.Router) {
		r.Get("/", makeHandler(h.listEntities(kind)))
		r.Get("/{"+paramID+"}", makeHandler(h.getEntity(kind)))
	})
}

func handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
