package backup

import (
	"context"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/logger"
	"github.com/cesargomez89/jobtracker/internal/store"
)

func newTestStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "backup.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestImporter(db *store.DB) *Importer {
	return NewImporter(db, store.NewSettingsRepo(db), logger.Discard())
}

func newTestExporter(db *store.DB) *Exporter {
	return NewExporter(db, store.NewSettingsRepo(db), logger.Discard())
}

func ptr[T any](v T) *T { return &v }

var base = time.Date(2023, 5, 1, 9, 30, 0, 250000000, time.UTC)

func at(days int) time.Time { return base.Add(time.Duration(days) * 24 * time.Hour) }

// seedScenario fills db with 2 employers, 3 jobs (2 under Acme, 1 under
// Globex), 5 keywords and 4 activities, all with past timestamps.
func seedScenario(t *testing.T, db *store.DB) {
	t.Helper()
	ctx := context.Background()

	acme := &domain.Employer{Name: "Acme", Notes: ptr("hiring fast"), Industry: ptr(domain.IndustrySaaS), Favorited: true, CreatedAt: at(0), UpdatedAt: at(1)}
	globex := &domain.Employer{Name: "Globex", CreatedAt: at(2), UpdatedAt: at(2)}
	require.NoError(t, db.CreateEmployer(ctx, acme))
	require.NoError(t, db.CreateEmployer(ctx, globex))

	backend := &domain.Job{
		EmployerID: acme.ID, Title: "Backend Engineer", Link: ptr("https://acme.example/jobs/1"),
		ReferenceNumber: ptr("BE-1"), SalaryEstimate: ptr("150k"), InterestLevel: ptr(8),
		Favorited: true, Status: domain.JobStatusInterview, CreatedAt: at(3), UpdatedAt: at(5),
	}
	frontend := &domain.Job{
		EmployerID: acme.ID, Title: "Frontend Engineer", Notes: ptr("remote ok"),
		Archived: true, Status: domain.JobStatusRejected, CreatedAt: at(4), UpdatedAt: at(6),
	}
	ops := &domain.Job{
		EmployerID: globex.ID, Title: "SRE", InterestLevel: ptr(3),
		Status: domain.JobStatusNotApplied, CreatedAt: at(7), UpdatedAt: at(7),
	}
	for _, j := range []*domain.Job{backend, frontend, ops} {
		require.NoError(t, db.CreateJob(ctx, j))
	}

	keywords := []struct {
		job *domain.Job
		kw  string
	}{
		{backend, "go"}, {backend, "postgres"}, {frontend, "react"}, {ops, "kubernetes"}, {ops, "go"},
	}
	for i, k := range keywords {
		require.NoError(t, db.CreateKeyword(ctx, &domain.Keyword{JobID: k.job.ID, Keyword: k.kw, CreatedAt: at(8 + i), UpdatedAt: at(8 + i)}))
	}

	applied := domain.JobStatusApplied
	interview := domain.JobStatusInterview
	notApplied := domain.JobStatusNotApplied
	activities := []*domain.Activity{
		{JobID: backend.ID, Type: domain.ActivityTypeStatusChange, Category: "status_change", PreviousStatus: &notApplied, NewStatus: &applied, CreatedAt: at(10), UpdatedAt: at(10)},
		{JobID: backend.ID, Type: domain.ActivityTypeStatusChange, Category: "status_change", PreviousStatus: &applied, NewStatus: &interview, CreatedAt: at(12), UpdatedAt: at(12)},
		{JobID: frontend.ID, Type: domain.ActivityTypeActivity, Category: "networking", Notes: ptr("met the team lead"), CreatedAt: at(11), UpdatedAt: at(13)},
		{JobID: ops.ID, Type: domain.ActivityTypeActivity, Category: "research", CreatedAt: at(14), UpdatedAt: at(14)},
	}
	for _, a := range activities {
		require.NoError(t, db.CreateActivity(ctx, a))
	}
}

// The views describe store contents without surrogate ids so two stores
// can be compared after a round trip.

type employerView struct {
	Name, Notes, Industry string
	Favorited             bool
	CreatedAt, UpdatedAt  string
}

type jobView struct {
	Employer, Title, Notes, Link, Ref, Salary string
	Interest                                  int
	Archived, Favorited                       bool
	Status                                    domain.JobStatus
	CreatedAt, UpdatedAt                      string
}

type keywordView struct {
	Job, Keyword         string
	CreatedAt, UpdatedAt string
}

type activityView struct {
	Job, Category, Notes, Previous, New string
	Type                                domain.ActivityType
	CreatedAt, UpdatedAt                string
}

type storeView struct {
	Employers  []employerView
	Jobs       []jobView
	Keywords   []keywordView
	Activities []activityView
}

func ts(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func deref[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

func viewOf(t *testing.T, db *store.DB) storeView {
	t.Helper()
	ctx := context.Background()

	employers, err := db.ListEmployersRaw(ctx)
	require.NoError(t, err)
	jobs, err := db.ListJobsRaw(ctx)
	require.NoError(t, err)
	keywords, err := db.ListKeywords(ctx)
	require.NoError(t, err)
	activities, err := db.ListActivitiesRaw(ctx)
	require.NoError(t, err)

	employerNames := make(map[int64]string)
	var v storeView
	for _, e := range employers {
		employerNames[e.ID] = e.Name
		v.Employers = append(v.Employers, employerView{
			Name: e.Name, Notes: deref(e.Notes), Industry: deref(e.Industry), Favorited: e.Favorited,
			CreatedAt: ts(e.CreatedAt), UpdatedAt: ts(e.UpdatedAt),
		})
	}

	jobTitles := make(map[int64]string)
	for _, j := range jobs {
		jobTitles[j.ID] = j.Title
		interest := 0
		if j.InterestLevel != nil {
			interest = *j.InterestLevel
		}
		v.Jobs = append(v.Jobs, jobView{
			Employer: employerNames[j.EmployerID], Title: j.Title, Notes: deref(j.Notes), Link: deref(j.Link),
			Ref: deref(j.ReferenceNumber), Salary: deref(j.SalaryEstimate), Interest: interest,
			Archived: j.Archived, Favorited: j.Favorited, Status: j.Status,
			CreatedAt: ts(j.CreatedAt), UpdatedAt: ts(j.UpdatedAt),
		})
	}

	for _, k := range keywords {
		v.Keywords = append(v.Keywords, keywordView{
			Job: jobTitles[k.JobID], Keyword: k.Keyword, CreatedAt: ts(k.CreatedAt), UpdatedAt: ts(k.UpdatedAt),
		})
	}

	for _, a := range activities {
		v.Activities = append(v.Activities, activityView{
			Job: jobTitles[a.JobID], Category: a.Category, Notes: deref(a.Notes),
			Previous: deref(a.PreviousStatus), New: deref(a.NewStatus), Type: a.Type,
			CreatedAt: ts(a.CreatedAt), UpdatedAt: ts(a.UpdatedAt),
		})
	}

	sort.Slice(v.Keywords, func(i, j int) bool {
		if v.Keywords[i].Job != v.Keywords[j].Job {
			return v.Keywords[i].Job < v.Keywords[j].Job
		}
		return v.Keywords[i].Keyword < v.Keywords[j].Keyword
	})
	sort.Slice(v.Activities, func(i, j int) bool { return v.Activities[i].CreatedAt < v.Activities[j].CreatedAt })
	return v
}

// assertIntegrity checks that every foreign key in db resolves.
func assertIntegrity(t *testing.T, db *store.DB) {
	t.Helper()
	ctx := context.Background()

	employers, err := db.ListEmployersRaw(ctx)
	require.NoError(t, err)
	jobs, err := db.ListJobsRaw(ctx)
	require.NoError(t, err)
	keywords, err := db.ListKeywords(ctx)
	require.NoError(t, err)
	activities, err := db.ListActivitiesRaw(ctx)
	require.NoError(t, err)

	employerIDs := make(map[int64]bool)
	for _, e := range employers {
		employerIDs[e.ID] = true
	}
	jobIDs := make(map[int64]bool)
	for _, j := range jobs {
		require.Truef(t, employerIDs[j.EmployerID], "job %d references missing employer %d", j.ID, j.EmployerID)
		jobIDs[j.ID] = true
	}
	for _, k := range keywords {
		require.Truef(t, jobIDs[k.JobID], "keyword %d references missing job %d", k.ID, k.JobID)
	}
	for _, a := range activities {
		require.Truef(t, jobIDs[a.JobID], "activity %d references missing job %d", a.ID, a.JobID)
	}
}
