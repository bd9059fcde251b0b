package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/jobtracker/internal/constants"
	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/logger"
	"github.com/cesargomez89/jobtracker/internal/store"
)

func TestExport_EmptyStoreHasEmptyArrays(t *testing.T) {
	db := newTestStore(t)
	exp := newTestExporter(db)
	exp.Now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 789000000, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, exp.WriteJSON(context.Background(), &buf))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"employers", "jobs", "keywords", "activities", "goals", "userKeywords"} {
		assert.Equal(t, "[]", string(raw[key]), "collection %s", key)
	}

	assert.Equal(t, `"1.0"`, string(raw["version"]))
	assert.Equal(t, `"2024-03-09T14:05:06.789Z"`, string(raw["exportDate"]))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"version\""), "expected two-space indent, got %q", buf.String()[:20])
}

func TestExport_ContainsEveryRecord(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	seedScenario(t, db)
	require.NoError(t, db.UpsertGoal(ctx, &domain.Goal{Type: domain.GoalOffers, TargetNumber: 1, FrequencyDays: 30, CreatedAt: at(1), UpdatedAt: at(1)}))

	doc, err := newTestExporter(db).Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, doc.Version)
	assert.Len(t, doc.Employers, 2)
	assert.Len(t, doc.Jobs, 3)
	assert.Len(t, doc.Keywords, 5)
	assert.Len(t, doc.Activities, 4)
	assert.Len(t, doc.Goals, 1)
	assert.Empty(t, doc.UserKeywords)

	// archived jobs are included
	var archived int
	for _, j := range doc.Jobs {
		if j.Archived {
			archived++
		}
	}
	assert.Equal(t, 1, archived)
}

func TestExport_ExportedDocumentValidates(t *testing.T) {
	db := newTestStore(t)
	seedScenario(t, db)
	var buf bytes.Buffer
	require.NoError(t, newTestExporter(db).WriteJSON(context.Background(), &buf))

	var raw interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.NoError(t, validateRaw(raw))
	assert.NoError(t, validateSchema(raw))
}

// failingSource fails reading keywords.
type failingSource struct{}

func (failingSource) ListEmployersRaw(context.Context) ([]*domain.Employer, error) { return nil, nil }
func (failingSource) ListJobsRaw(context.Context) ([]*domain.Job, error)           { return nil, nil }
func (failingSource) ListKeywords(context.Context) ([]*domain.Keyword, error) {
	return nil, errors.New("database is locked")
}
func (failingSource) ListActivitiesRaw(context.Context) ([]*domain.Activity, error) { return nil, nil }
func (failingSource) ListGoalsRaw(context.Context) ([]*domain.Goal, error)          { return nil, nil }
func (failingSource) ListUserKeywordsRaw(context.Context) ([]*domain.UserKeyword, error) {
	return nil, nil
}

func TestExport_ReadFailure(t *testing.T) {
	exp := NewExporter(failingSource{}, nil, logger.Discard())

	_, err := exp.Export(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExportFailed)
	assert.Contains(t, err.Error(), "reading keywords")
	assert.Contains(t, err.Error(), "database is locked")

	var buf bytes.Buffer
	assert.ErrorIs(t, exp.WriteJSON(context.Background(), &buf), ErrExportFailed)
	assert.Zero(t, buf.Len())
}

func TestFileName(t *testing.T) {
	name := FileName(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Equal(t, constants.BackupFilePrefix+"2024-01-02-03-04-05"+constants.BackupFileExt, name)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)

	stats, err := newTestExporter(db).Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalEmployers)
	assert.Nil(t, stats.LastModified)
	assert.Nil(t, stats.LastImportAt)

	seedScenario(t, db)
	require.NoError(t, db.CreateUserKeyword(ctx, &domain.UserKeyword{Keyword: "go", CreatedAt: at(30), UpdatedAt: at(31)}))

	stats, err = newTestExporter(db).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEmployers)
	assert.Equal(t, 3, stats.TotalJobs)
	assert.Equal(t, 5, stats.TotalKeywords)
	assert.Equal(t, 4, stats.TotalActivities)
	assert.Equal(t, 0, stats.TotalGoals)
	assert.Equal(t, 1, stats.TotalUserKeywords)
	require.NotNil(t, stats.LastModified)
	assert.True(t, stats.LastModified.Equal(at(31)), "last modified %s", stats.LastModified)

	settings := store.NewSettingsRepo(db)
	require.NoError(t, settings.Set(ctx, constants.SettingLastImportAt, "not a time"))
	stats, err = newTestExporter(db).Stats(ctx)
	require.NoError(t, err)
	assert.Nil(t, stats.LastImportAt)
}
