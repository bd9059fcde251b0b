package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cesargomez89/jobtracker/internal/constants"
	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/logger"
)

// Writer inserts records with the timestamps they carry and sets the
// assigned id on the record.
type Writer interface {
	CreateEmployer(ctx context.Context, e *domain.Employer) error
	CreateJob(ctx context.Context, j *domain.Job) error
	// CreateKeyword reuses the existing row for a duplicate (jobId, keyword).
	CreateKeyword(ctx context.Context, k *domain.Keyword) error
	CreateActivity(ctx context.Context, a *domain.Activity) error
	// UpsertGoal replaces the goal of the same type.
	UpsertGoal(ctx context.Context, g *domain.Goal) error
	// CreateUserKeyword reuses the existing row for a duplicate keyword.
	CreateUserKeyword(ctx context.Context, k *domain.UserKeyword) error
}

// Repository is the store as seen by the importer.
type Repository interface {
	Writer
	// ClearAll empties every entity table in one transaction.
	ClearAll(ctx context.Context) error
}

type ImportOptions struct {
	// DryRun validates and resolves references against the document alone
	// and reports what would be imported. The store is not touched.
	DryRun bool
}

type SkipReason string

const (
	ReasonUnresolvedReference SkipReason = "unresolved_reference"
	ReasonInsertFailed        SkipReason = "insert_failed"
	ReasonInvalidRecord       SkipReason = "invalid_record"
)

// Skip records one snapshot record that was not imported.
type Skip struct {
	Category   Category   `json:"category"`
	Reason     SkipReason `json:"reason"`
	OriginalID int64      `json:"originalId"`
}

// Result reports an import. Skipped always equals len(Skips).
type Result struct {
	EmployersImported    int      `json:"employersImported"`
	JobsImported         int      `json:"jobsImported"`
	KeywordsImported     int      `json:"keywordsImported"`
	ActivitiesImported   int      `json:"activitiesImported"`
	GoalsImported        int      `json:"goalsImported"`
	UserKeywordsImported int      `json:"userKeywordsImported"`
	Skipped              int      `json:"skipped"`
	Skips                []Skip   `json:"skips"`
	DryRun               bool     `json:"dryRun"`
	Warnings             []string `json:"warnings,omitempty"`
}

type Importer struct {
	Repo     Repository
	Settings SettingsStore
	Logger   *logger.Logger
	Now      func() time.Time

	mu sync.Mutex
}

func NewImporter(repo Repository, settings SettingsStore, log *logger.Logger) *Importer {
	return &Importer{
		Repo:     repo,
		Settings: settings,
		Logger:   log.WithComponent("import"),
		Now:      time.Now,
	}
}

// ImportJSON validates raw snapshot bytes and imports them.
func (i *Importer) ImportJSON(ctx context.Context, data []byte, opts ImportOptions) (*Result, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, &ValidationError{Message: "invalid data format", Detail: err.Error()}
	}
	if err := validateRaw(raw); err != nil {
		return nil, err
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	if n := normalizeTimestamps(raw); n > 0 {
		i.Logger.Warn("Unreadable timestamps replaced with the import time", "count", n)
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, &ValidationError{Message: "invalid data format", Detail: err.Error()}
	}

	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, &ValidationError{Message: "invalid data format", Detail: err.Error()}
	}
	return i.Import(ctx, &doc, opts)
}

// Import replaces the whole store with the contents of doc.
//
// Validation failures return ErrInvalidData and leave the store untouched.
// Otherwise every table is cleared and the records are re-inserted parent
// first with their ids re-keyed. Records that cannot be inserted or whose
// parent is missing are skipped. Once clearing has started the import runs
// to completion even if ctx is cancelled, and a storage failure returns
// ErrImportFailed with no rollback.
func (i *Importer) Import(ctx context.Context, doc *Document, opts ImportOptions) (*Result, error) {
	if !opts.DryRun {
		if !i.mu.TryLock() {
			return nil, ErrImportInProgress
		}
		defer i.mu.Unlock()
	}

	log := i.Logger.WithImport(uuid.NewString(), opts.DryRun)

	if err := validateDocument(doc); err != nil {
		log.Warn("Import rejected", "error", err)
		return nil, err
	}

	res := &Result{DryRun: opts.DryRun, Skips: []Skip{}}
	if !KnownVersion(doc.Version) {
		log.Warn("Unknown snapshot version, importing with current defaults", "version", doc.Version)
		res.Warnings = append(res.Warnings, fmt.Sprintf("unknown snapshot version %q", doc.Version))
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("import cancelled: %w", err)
	}

	var w Writer = &dryRunWriter{}
	if !opts.DryRun {
		log.Info("Clearing existing data")
		if err := i.Repo.ClearAll(ctx); err != nil {
			log.Error("Failed to clear store", "error", err)
			return nil, fmt.Errorf("%w: clearing store: %w", ErrImportFailed, err)
		}
		w = i.Repo
		ctx = context.WithoutCancel(ctx)
	}

	run := &importRun{
		w:           w,
		log:         log,
		now:         i.now(),
		res:         res,
		employerIDs: make(map[int64]int64, len(doc.Employers)),
		jobIDs:      make(map[int64]int64, len(doc.Jobs)),
	}
	run.employers(ctx, doc.Employers)
	run.jobs(ctx, doc.Jobs)
	run.keywords(ctx, doc.Keywords)
	run.activities(ctx, doc.Activities)
	run.goals(ctx, doc.Goals)
	run.userKeywords(ctx, doc.UserKeywords)

	log.Info("Import completed",
		"employers", res.EmployersImported,
		"jobs", res.JobsImported,
		"keywords", res.KeywordsImported,
		"activities", res.ActivitiesImported,
		"goals", res.GoalsImported,
		"user_keywords", res.UserKeywordsImported,
		"skipped", res.Skipped,
	)

	if !opts.DryRun {
		i.record(ctx, log, run.now, res)
	}
	return res, nil
}

func (i *Importer) now() time.Time {
	if i.Now == nil {
		return time.Now().UTC()
	}
	return i.Now().UTC()
}

// record saves the import time and result. Failures are logged only, the
// data itself is already written.
func (i *Importer) record(ctx context.Context, log *logger.Logger, at time.Time, res *Result) {
	if i.Settings == nil {
		return
	}
	if err := i.Settings.Set(ctx, constants.SettingLastImportAt, at.Format(time.RFC3339Nano)); err != nil {
		log.Warn("Failed to record import time", "error", err)
	}
	payload, err := json.Marshal(res)
	if err != nil {
		log.Warn("Failed to encode import result", "error", err)
		return
	}
	if err := i.Settings.Set(ctx, constants.SettingLastImportResult, string(payload)); err != nil {
		log.Warn("Failed to record import result", "error", err)
	}
}

// importRun holds the state of one import: the id maps are built by the
// parent phases and consumed by the child phases.
type importRun struct {
	w           Writer
	log         *logger.Logger
	now         time.Time
	res         *Result
	employerIDs map[int64]int64
	jobIDs      map[int64]int64
}

func (r *importRun) skip(c Category, reason SkipReason, originalID int64, err error) {
	r.res.Skipped++
	r.res.Skips = append(r.res.Skips, Skip{Category: c, Reason: reason, OriginalID: originalID})

	l := r.log.WithRecord(string(c), originalID)
	if err != nil {
		l.Warn("Skipping record", "reason", reason, "error", err)
		return
	}
	l.Warn("Skipping record", "reason", reason)
}

// stamp keeps the snapshot timestamp, falling back to the import time when
// the record has none.
func (r *importRun) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return r.now
	}
	return t
}

func (r *importRun) employers(ctx context.Context, records []*domain.Employer) {
	r.log.Debug("Importing employers", "count", len(records))
	for _, src := range records {
		e := &domain.Employer{
			Name:      src.Name,
			Notes:     src.Notes,
			Industry:  src.Industry,
			Favorited: src.Favorited,
			CreatedAt: r.stamp(src.CreatedAt),
			UpdatedAt: r.stamp(src.UpdatedAt),
		}
		if err := r.w.CreateEmployer(ctx, e); err != nil {
			r.skip(CategoryEmployers, ReasonInsertFailed, src.ID, err)
			continue
		}
		if src.ID != 0 {
			r.employerIDs[src.ID] = e.ID
		}
		r.res.EmployersImported++
	}
}

func (r *importRun) jobs(ctx context.Context, records []*domain.Job) {
	r.log.Debug("Importing jobs", "count", len(records))
	for _, src := range records {
		employerID, ok := r.employerIDs[src.EmployerID]
		if !ok {
			r.skip(CategoryJobs, ReasonUnresolvedReference, src.ID, nil)
			continue
		}

		status := domain.JobStatus(strings.ToLower(strings.TrimSpace(string(src.Status))))
		if status == "" {
			status = domain.JobStatusNotApplied
		}
		if _, err := domain.ParseJobStatus(string(status)); err != nil {
			r.skip(CategoryJobs, ReasonInvalidRecord, src.ID, err)
			continue
		}

		j := &domain.Job{
			EmployerID:      employerID,
			Title:           src.Title,
			Notes:           src.Notes,
			Link:            src.Link,
			ReferenceNumber: src.ReferenceNumber,
			SalaryEstimate:  src.SalaryEstimate,
			InterestLevel:   src.InterestLevel,
			Archived:        src.Archived,
			Favorited:       src.Favorited,
			Status:          status,
			CreatedAt:       r.stamp(src.CreatedAt),
			UpdatedAt:       r.stamp(src.UpdatedAt),
		}
		if err := r.w.CreateJob(ctx, j); err != nil {
			r.skip(CategoryJobs, ReasonInsertFailed, src.ID, err)
			continue
		}
		if src.ID != 0 {
			r.jobIDs[src.ID] = j.ID
		}
		r.res.JobsImported++
	}
}

func (r *importRun) keywords(ctx context.Context, records []*domain.Keyword) {
	r.log.Debug("Importing keywords", "count", len(records))
	for _, src := range records {
		jobID, ok := r.jobIDs[src.JobID]
		if !ok {
			r.skip(CategoryKeywords, ReasonUnresolvedReference, src.ID, nil)
			continue
		}

		k := &domain.Keyword{
			JobID:     jobID,
			Keyword:   src.Keyword,
			CreatedAt: r.stamp(src.CreatedAt),
			UpdatedAt: r.stamp(src.UpdatedAt),
		}
		if err := r.w.CreateKeyword(ctx, k); err != nil {
			r.skip(CategoryKeywords, ReasonInsertFailed, src.ID, err)
			continue
		}
		r.res.KeywordsImported++
	}
}

func (r *importRun) activities(ctx context.Context, records []*domain.Activity) {
	r.log.Debug("Importing activities", "count", len(records))
	for _, src := range records {
		if src == nil {
			r.skip(CategoryActivities, ReasonInvalidRecord, 0, nil)
			continue
		}
		if src.JobID == 0 {
			r.skip(CategoryActivities, ReasonInvalidRecord, src.ID, nil)
			continue
		}
		jobID, ok := r.jobIDs[src.JobID]
		if !ok {
			r.skip(CategoryActivities, ReasonUnresolvedReference, src.ID, nil)
			continue
		}
		if !src.Type.IsValid() {
			r.skip(CategoryActivities, ReasonInvalidRecord, src.ID, fmt.Errorf("unknown activity type %q", src.Type))
			continue
		}

		a := &domain.Activity{
			JobID:          jobID,
			Type:           src.Type,
			Category:       src.Category,
			Notes:          src.Notes,
			PreviousStatus: src.PreviousStatus,
			NewStatus:      src.NewStatus,
			CreatedAt:      r.stamp(src.CreatedAt),
			UpdatedAt:      r.stamp(src.UpdatedAt),
		}
		if err := r.w.CreateActivity(ctx, a); err != nil {
			r.skip(CategoryActivities, ReasonInsertFailed, src.ID, err)
			continue
		}
		r.res.ActivitiesImported++
	}
}

func (r *importRun) goals(ctx context.Context, records []*domain.Goal) {
	r.log.Debug("Importing goals", "count", len(records))
	for _, src := range records {
		if src == nil {
			r.skip(CategoryGoals, ReasonInvalidRecord, 0, nil)
			continue
		}
		if !src.Type.IsValid() {
			r.skip(CategoryGoals, ReasonInvalidRecord, src.ID, fmt.Errorf("unknown goal type %q", src.Type))
			continue
		}

		g := &domain.Goal{
			Type:          src.Type,
			TargetNumber:  src.TargetNumber,
			FrequencyDays: src.FrequencyDays,
			CreatedAt:     r.stamp(src.CreatedAt),
			UpdatedAt:     r.stamp(src.UpdatedAt),
		}
		if err := r.w.UpsertGoal(ctx, g); err != nil {
			r.skip(CategoryGoals, ReasonInsertFailed, src.ID, err)
			continue
		}
		r.res.GoalsImported++
	}
}

func (r *importRun) userKeywords(ctx context.Context, records []*domain.UserKeyword) {
	r.log.Debug("Importing user keywords", "count", len(records))
	for _, src := range records {
		if src == nil {
			r.skip(CategoryUserKeywords, ReasonInvalidRecord, 0, nil)
			continue
		}
		if strings.TrimSpace(src.Keyword) == "" {
			r.skip(CategoryUserKeywords, ReasonInvalidRecord, src.ID, nil)
			continue
		}

		k := &domain.UserKeyword{
			Keyword:   src.Keyword,
			CreatedAt: r.stamp(src.CreatedAt),
			UpdatedAt: r.stamp(src.UpdatedAt),
		}
		if err := r.w.CreateUserKeyword(ctx, k); err != nil {
			r.skip(CategoryUserKeywords, ReasonInsertFailed, src.ID, err)
			continue
		}
		r.res.UserKeywordsImported++
	}
}

// dryRunWriter hands out ids without storing anything.
type dryRunWriter struct {
	next int64
}

func (d *dryRunWriter) id() int64 {
	d.next++
	return d.next
}

func (d *dryRunWriter) CreateEmployer(_ context.Context, e *domain.Employer) error {
	e.ID = d.id()
	return nil
}

func (d *dryRunWriter) CreateJob(_ context.Context, j *domain.Job) error {
	j.ID = d.id()
	return nil
}

func (d *dryRunWriter) CreateKeyword(_ context.Context, k *domain.Keyword) error {
	k.ID = d.id()
	return nil
}

func (d *dryRunWriter) CreateActivity(_ context.Context, a *domain.Activity) error {
	a.ID = d.id()
	return nil
}

func (d *dryRunWriter) UpsertGoal(_ context.Context, g *domain.Goal) error {
	g.ID = d.id()
	return nil
}

func (d *dryRunWriter) CreateUserKeyword(_ context.Context, k *domain.UserKeyword) error {
	k.ID = d.id()
	return nil
}
