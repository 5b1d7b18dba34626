package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/dtroode/contacts-server/internal/api/http/respond"
	"github.com/dtroode/contacts-server/internal/logger"
)

const healthTimeout = 3 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Health serves the health checker endpoint.
type Health struct {
	checks map[string]Check
	logger *logger.Logger
}

func NewHealth(checks map[string]Check, logger *logger.Logger) *Health {
	return &Health{checks: checks, logger: logger}
}

// Healthchecker pings every dependency and fails on the first unreachable one.
func (h *Health) Healthchecker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Error("Health handler: dependency unreachable",
				"dependency", name,
				"error", err.Error())
			respond.Detail(w, http.StatusInternalServerError, "Error connecting to the "+name)
			return
		}
	}

	respond.JSON(w, http.StatusOK, respond.MessageBody{Message: "Welcome to the contacts API!"})
}
