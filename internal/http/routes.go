package httpapp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/jobtracker/internal/app"
	"github.com/cesargomez89/jobtracker/internal/backup"
	"github.com/cesargomez89/jobtracker/internal/constants"
	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/http/dto"
)

func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Exporter.WriteJSON(r.Context(), &buf); err != nil {
		h.writeError(w, constants.StatusInternalError, "Export failed", err.Error())
		return
	}

	name := backup.FileName(h.Now())
	w.Header().Set("Content-Type", constants.MimeTypeJSON)
	w.Header().Set(constants.HeaderDisposition, fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("Failed to send export", "error", err)
	}
}

func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	dryRun, errs := dto.ParseBoolParam("dry_run", r.URL.Query().Get("dry_run"))
	if len(errs) > 0 {
		h.writeInvalid(w, errs)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, constants.StatusRequestTooLarge, backup.FailureMessage(backup.ErrInvalidData),
				fmt.Sprintf("file exceeds %d bytes", tooLarge.Limit))
			return
		}
		h.writeError(w, constants.StatusBadRequest, backup.FailureMessage(backup.ErrInvalidData), err.Error())
		return
	}

	res, err := h.Importer.ImportJSON(r.Context(), data, backup.ImportOptions{DryRun: dryRun})
	if err != nil {
		status := constants.StatusInternalError
		switch {
		case errors.Is(err, backup.ErrInvalidData):
			status = constants.StatusBadRequest
		case errors.Is(err, backup.ErrImportInProgress):
			status = constants.StatusConflict
		case backup.Unchanged(err):
			status = constants.StatusServiceUnavailable
		}
		h.writeError(w, status, backup.FailureMessage(err), err.Error())
		return
	}

	h.writeJSON(w, constants.StatusOK, res)
}

func (h *Handler) BackupStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Exporter.Stats(r.Context())
	if err != nil {
		h.writeError(w, constants.StatusInternalError, "Failed to load statistics", err.Error())
		return
	}
	h.writeJSON(w, constants.StatusOK, stats)
}

func (h *Handler) ImportWarning(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, constants.StatusOK, dto.WarningResponse{Warning: backup.WarningText})
}

func (h *Handler) ListEmployers(w http.ResponseWriter, r *http.Request) {
	employers, err := h.Employers.GetAll(r.Context())
	if err != nil {
		h.writeError(w, constants.StatusInternalError, "Failed to list employers", err.Error())
		return
	}
	if employers == nil {
		employers = []*domain.Employer{}
	}
	h.writeJSON(w, constants.StatusOK, employers)
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, errs := dto.ParsePageParams(q.Get("page"), q.Get("page_size"))
	if len(errs) > 0 {
		h.writeInvalid(w, errs)
		return
	}

	jobs, err := h.Jobs.GetJobsWithEmployers(r.Context())
	if err != nil {
		h.writeError(w, constants.StatusInternalError, "Failed to list jobs", err.Error())
		return
	}

	p := dto.NewPagination(page, size, len(jobs))
	start, end := p.Bounds()
	resp := dto.JobListResponse{Jobs: make([]dto.JobResponse, 0, end-start), Pagination: p}
	for _, j := range jobs[start:end] {
		resp.Jobs = append(resp.Jobs, dto.NewJobResponse(j))
	}
	h.writeJSON(w, constants.StatusOK, resp)
}

func (h *Handler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	id, errs := dto.ParseID("id", chi.URLParam(r, "id"))
	if len(errs) > 0 {
		h.writeInvalid(w, errs)
		return
	}

	var req dto.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, constants.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		h.writeInvalid(w, errs)
		return
	}

	err := h.Jobs.UpdateStatus(r.Context(), id, domain.JobStatus(*req.Status))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, constants.StatusNotFound, "Job not found", err.Error())
		return
	case errors.Is(err, app.ErrValidation):
		h.writeError(w, constants.StatusBadRequest, "Invalid status", err.Error())
		return
	case err != nil:
		h.writeError(w, constants.StatusInternalError, "Failed to update status", err.Error())
		return
	}

	job, err := h.Jobs.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, constants.StatusInternalError, "Failed to load job", err.Error())
		return
	}
	h.writeJSON(w, constants.StatusOK, job)
}

func (h *Handler) KeywordStats(w http.ResponseWriter, r *http.Request) {
	weighted, errs := dto.ParseBoolParam("weighted", r.URL.Query().Get("weighted"))
	if len(errs) > 0 {
		h.writeInvalid(w, errs)
		return
	}

	var (
		stats interface{}
		err   error
	)
	if weighted {
		stats, err = h.Keywords.WeightedStats(r.Context())
	} else {
		stats, err = h.Keywords.Stats(r.Context())
	}
	if err != nil {
		h.writeError(w, constants.StatusInternalError, "Failed to compute keyword statistics", err.Error())
		return
	}
	h.writeJSON(w, constants.StatusOK, stats)
}
