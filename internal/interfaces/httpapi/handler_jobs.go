package httpapi

import (
	"fmt"
	"net/http"
)

// RunSyncJob refreshes every sport synchronously and returns the per-sport report.
// Individual sport failures are part of the report, not an error response.
func (h *Handler) RunSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncJob")
	defer span.End()

	report, err := h.sports.SyncAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync job failed", "error", err)
		writeError(ctx, w, fmt.Errorf("run sync job: %w", err))
		return
	}

	h.logger.InfoContext(ctx, "sync job finished",
		"success_count", report.SuccessCount,
		"failed_count", report.FailedCount,
		"worker_count", report.WorkerCount,
	)
	writeSuccess(ctx, w, http.StatusOK, report)
}
