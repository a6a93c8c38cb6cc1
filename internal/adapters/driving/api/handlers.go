package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driving"
)

type handler struct {
	entities driving.EntityService
	sync     driving.SyncOrchestrator
}

func (h *handler) listEntities(kind domain.EntityKind) appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		opts, err := parseListOptions(r)
		if err != nil {
			return err
		}

		items, err := h.entities.List(r.Context(), kind, opts)
		if err != nil {
			return err
		}
		total, err := h.entities.Count(r.Context(), kind)
		if err != nil {
			return err
		}
		if items == nil {
			items = []domain.Entity{}
		}

		respondJSON(w, http.StatusOK, listResponse{
			Kind:   kind,
			Total:  total,
			Limit:  opts.PageSize(),
			Offset: opts.Offset,
			Items:  items,
		})
		return nil
	}
}

func (h *handler) getEntity(kind domain.EntityKind) appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		entity, err := h.entities.Get(r.Context(), kind, chi.URLParam(r, paramID))
		if err != nil {
			return err
		}
		respondJSON(w, http.StatusOK, entity)
		return nil
	}
}

func (h *handler) handleSync(w http.ResponseWriter, r *http.Request) error {
	force, err := parseBool(r, "force")
	if err != nil {
		return err
	}

	var round *domain.RoundResult
	if force {
		round, err = h.sync.ForceSync(r.Context())
	} else {
		round, err = h.sync.MaybeSync(r.Context())
	}
	if round == nil {
		if err == nil {
			err = errors.New("sync returned no result")
		}
		return err
	}

	// A round that ran but could not be committed still reports its results.
	dto := toRoundDTO(round)
	code := http.StatusOK
	switch {
	case err != nil:
		dto.Error = err.Error()
		code = http.StatusInternalServerError
	case errors.Is(round.Err(), domain.ErrSyncInProgress):
		dto.Error = round.Err().Error()
		code = http.StatusConflict
	}
	respondJSON(w, code, dto)
	return nil
}

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) error {
	status, err := h.sync.Status(r.Context())
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, toStatusDTO(status))
	return nil
}

func parseListOptions(r *http.Request) (domain.ListOptions, error) {
	var opts domain.ListOptions
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, badRequest("invalid limit %q", v)
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, badRequest("invalid offset %q", v)
		}
		opts.Offset = n
	}
	return opts, nil
}

func parseBool(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, badRequest("invalid %s %q", key, v)
	}
	return b, nil
}
