// Package metrics defines and registers the custom Prometheus metrics of the
// notes API. HTTP request metrics come from echoprometheus; the counters here
// describe what happened at the domain level.
//
// All metrics are registered with the default Prometheus registry at package
// init via promauto.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/notesapp/notes-manager/internal/core/domain"
)

const namespace = "notes"

// Result labels.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "rejected" (bad input or credentials) or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// ── Note metrics ──────────────────────────────────────────────────────────────

// NoteOperationsTotal counts note CRUD calls.
// Labels:
//   - operation: "list", "create", "get", "update" or "delete"
//   - result: "success", "rejected" or "error"
var NoteOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "note_operations_total",
		Help:      "Total number of note operations, by outcome.",
	},
	[]string{"operation", "result"},
)

// Result classifies err for the result label. Domain errors caused by the
// caller count as rejected; anything else is an error.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNoteNotFound):
		return ResultRejected
	default:
		return ResultError
	}
}
