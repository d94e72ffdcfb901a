package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/database"
	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// Health statuses and messages
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	MsgDatabaseUnavailable = "database connection failed"
	MsgStateNotProvisioned = "lottery state not provisioned"
	MsgStateUnreadable     = "lottery state unreadable"

	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgSchemaVersion   = "Could not read schema version"

	readinessTimeout = 2 * time.Second
)

// Build-time variables (injected via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// VersionInfo describes the running build and the lottery schema it sees
type VersionInfo struct {
	Version       string `json:"version"`
	GoVersion     string `json:"go_version"`
	BuildTime     string `json:"build_time,omitempty"`
	GitCommit     string `json:"git_commit,omitempty"`
	SchemaVersion int64  `json:"schema_version"`
	SchemaLatest  int64  `json:"schema_latest"`
	SchemaPending bool   `json:"schema_pending"`
}

// StateReader reads the singleton lottery state
type StateReader interface {
	GetState(ctx context.Context) (*domain.LotteryState, error)
}

// SchemaVersionFunc reports the migration version applied to the database
type SchemaVersionFunc func(ctx context.Context) (int64, error)

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports ready once the database answers and the lottery
// state row exists. Displays cannot reconcile without that row.
// @Summary Readiness check
// @Description Returns OK if the database is reachable and the lottery state is provisioned
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool, states StateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			slog.Error(LogMsgReadinessFailed, "check", "database", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: StatusUnavailable, Message: MsgDatabaseUnavailable})
			return
		}

		if _, err := states.GetState(ctx); err != nil {
			msg := MsgStateUnreadable
			if errors.Is(err, domain.ErrStateNotFound) {
				msg = MsgStateNotProvisioned
			}
			slog.Error(LogMsgReadinessFailed, "check", "lottery_state", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: StatusUnavailable, Message: msg})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleVersion returns build information and the lottery schema version
// @Summary Version
// @Description Build info plus the applied and embedded migration versions
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(schema SchemaVersionFunc) http.HandlerFunc {
	latest, err := database.LatestMigrationVersion()
	if err != nil {
		slog.Warn(LogMsgSchemaVersion, "source", "embedded", "error", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		info := VersionInfo{
			Version:      buildVersion(),
			GoVersion:    runtime.Version(),
			BuildTime:    BuildTime,
			GitCommit:    GitCommit,
			SchemaLatest: latest,
		}

		if schema != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			applied, err := schema(ctx)
			if err != nil {
				slog.Warn(LogMsgSchemaVersion, "source", "database", "error", err)
			} else {
				info.SchemaVersion = applied
				info.SchemaPending = applied < latest
			}
		}

		respondJSON(w, http.StatusOK, info)
	}
}

// buildVersion prefers the ldflags value, then VERSION from the environment
func buildVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
