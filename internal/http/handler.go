package httpapp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/jobtracker/internal/app"
	"github.com/cesargomez89/jobtracker/internal/backup"
	"github.com/cesargomez89/jobtracker/internal/constants"
	"github.com/cesargomez89/jobtracker/internal/http/dto"
	"github.com/cesargomez89/jobtracker/internal/logger"
)

type Handler struct {
	Employers      *app.EmployerService
	Jobs           *app.JobService
	Keywords       *app.KeywordService
	Exporter       *backup.Exporter
	Importer       *backup.Importer
	MaxImportBytes int64
	Logger         *logger.Logger
	Now            func() time.Time
}

func NewHandler(
	employers *app.EmployerService,
	jobs *app.JobService,
	keywords *app.KeywordService,
	exporter *backup.Exporter,
	importer *backup.Importer,
	maxImportBytes int64,
	log *logger.Logger,
) *Handler {
	if maxImportBytes <= 0 {
		maxImportBytes = constants.DefaultMaxImportBytes
	}
	return &Handler{
		Employers:      employers,
		Jobs:           jobs,
		Keywords:       keywords,
		Exporter:       exporter,
		Importer:       importer,
		MaxImportBytes: maxImportBytes,
		Logger:         log.WithComponent("http"),
		Now:            time.Now,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/backup/export", h.ExportBackup)
		r.Post("/backup/import", h.ImportBackup)
		r.Get("/backup/stats", h.BackupStats)
		r.Get("/backup/warning", h.ImportWarning)

		r.Get("/employers", h.ListEmployers)
		r.Get("/jobs", h.ListJobs)
		r.Post("/jobs/{id}/status", h.UpdateJobStatus)
		r.Get("/keywords/stats", h.KeywordStats)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", constants.MimeTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("Failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, detail string) {
	h.writeJSON(w, status, dto.ErrorResponse{Error: message, Detail: detail})
}

func (h *Handler) writeInvalid(w http.ResponseWriter, errs []dto.ValidationError) {
	h.writeJSON(w, constants.StatusBadRequest, dto.ErrorResponse{
		Error:   dto.ToResponse(errs),
		Invalid: dto.ToMap(errs),
	})
}
