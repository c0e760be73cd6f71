package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vvadla/upi-tracker/internal/api/middleware"
	"github.com/vvadla/upi-tracker/internal/export"
	"github.com/vvadla/upi-tracker/internal/jobs"
)

// ExportHandler enqueues ledger CSV export jobs.
type ExportHandler struct {
	publisher jobs.Publisher
	bucket    string
	log       zerolog.Logger
}

// NewExportHandler creates a new export handler. An empty bucket disables
// the endpoint.
func NewExportHandler(publisher jobs.Publisher, bucket string, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{publisher: publisher, bucket: bucket, log: log}
}

// EnqueueExport handles POST /api/export
func (h *ExportHandler) EnqueueExport(w http.ResponseWriter, r *http.Request) {
	if h.bucket == "" {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Exports are not configured")
		return
	}

	job := &jobs.ExportLedgerJob{
		Bucket:     h.bucket,
		ObjectName: export.ObjectName(time.Now().Format("2006/01/02"), uuid.New().String()),
	}

	if err := h.publisher.PublishExportLedger(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue export job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue export")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("object", job.ObjectName).Msg("Export job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"object": job.ObjectName,
		"status": string(job.Status),
	})
}

// JobsHandler answers job status queries.
type JobsHandler struct {
	store jobs.Store
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.Store, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.Filter{Status: jobs.JobStatus(query.Get("status"))}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
