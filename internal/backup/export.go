package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cesargomez89/jobtracker/internal/constants"
	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/logger"
)

// Source is the read side of the store used for export.
type Source interface {
	ListEmployersRaw(ctx context.Context) ([]*domain.Employer, error)
	ListJobsRaw(ctx context.Context) ([]*domain.Job, error)
	ListKeywords(ctx context.Context) ([]*domain.Keyword, error)
	ListActivitiesRaw(ctx context.Context) ([]*domain.Activity, error)
	ListGoalsRaw(ctx context.Context) ([]*domain.Goal, error)
	ListUserKeywordsRaw(ctx context.Context) ([]*domain.UserKeyword, error)
}

// SettingsStore persists small pieces of import state.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type Exporter struct {
	Source   Source
	Settings SettingsStore
	Logger   *logger.Logger
	Now      func() time.Time
}

func NewExporter(src Source, settings SettingsStore, log *logger.Logger) *Exporter {
	return &Exporter{
		Source:   src,
		Settings: settings,
		Logger:   log.WithComponent("export"),
		Now:      time.Now,
	}
}

// Stats summarizes the store contents for the backup screen.
type Stats struct {
	TotalEmployers    int        `json:"totalEmployers"`
	TotalJobs         int        `json:"totalJobs"`
	TotalKeywords     int        `json:"totalKeywords"`
	TotalActivities   int        `json:"totalActivities"`
	TotalGoals        int        `json:"totalGoals"`
	TotalUserKeywords int        `json:"totalUserKeywords"`
	LastModified      *time.Time `json:"lastModified,omitempty"`
	LastImportAt      *time.Time `json:"lastImportAt,omitempty"`
}

// Export reads every table into a snapshot. The tables are read
// concurrently without a lock, so a write racing the export may be half
// included.
func (e *Exporter) Export(ctx context.Context) (*Document, error) {
	start := time.Now()

	doc, err := e.snapshot(ctx)
	if err != nil {
		e.Logger.Error("Export failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	doc.Version = CurrentVersion
	doc.ExportDate = e.Now().UTC().Format(exportDateLayout)

	e.Logger.Info("Export completed",
		"employers", len(doc.Employers),
		"jobs", len(doc.Jobs),
		"keywords", len(doc.Keywords),
		"activities", len(doc.Activities),
		"goals", len(doc.Goals),
		"user_keywords", len(doc.UserKeywords),
		"duration", time.Since(start),
	)
	return doc, nil
}

func (e *Exporter) snapshot(ctx context.Context) (*Document, error) {
	doc := &Document{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		doc.Employers, err = e.Source.ListEmployersRaw(gctx)
		return wrapRead(CategoryEmployers, err)
	})
	g.Go(func() (err error) {
		doc.Jobs, err = e.Source.ListJobsRaw(gctx)
		return wrapRead(CategoryJobs, err)
	})
	g.Go(func() (err error) {
		doc.Keywords, err = e.Source.ListKeywords(gctx)
		return wrapRead(CategoryKeywords, err)
	})
	g.Go(func() (err error) {
		doc.Activities, err = e.Source.ListActivitiesRaw(gctx)
		return wrapRead(CategoryActivities, err)
	})
	g.Go(func() (err error) {
		doc.Goals, err = e.Source.ListGoalsRaw(gctx)
		return wrapRead(CategoryGoals, err)
	})
	g.Go(func() (err error) {
		doc.UserKeywords, err = e.Source.ListUserKeywordsRaw(gctx)
		return wrapRead(CategoryUserKeywords, err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	doc.normalize()
	return doc, nil
}

func wrapRead(c Category, err error) error {
	if err != nil {
		return fmt.Errorf("reading %s: %w", c, err)
	}
	return nil
}

// WriteJSON exports the store and writes the document as indented JSON.
func (e *Exporter) WriteJSON(ctx context.Context, w io.Writer) error {
	doc, err := e.Export(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", constants.BackupJSONIndent)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: encoding document: %w", ErrExportFailed, err)
	}
	return nil
}

// Stats counts every table and finds the latest update across all records.
func (e *Exporter) Stats(ctx context.Context) (*Stats, error) {
	doc, err := e.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	stats := &Stats{
		TotalEmployers:    len(doc.Employers),
		TotalJobs:         len(doc.Jobs),
		TotalKeywords:     len(doc.Keywords),
		TotalActivities:   len(doc.Activities),
		TotalGoals:        len(doc.Goals),
		TotalUserKeywords: len(doc.UserKeywords),
	}

	var latest time.Time
	track := func(t time.Time) {
		if t.After(latest) {
			latest = t
		}
	}
	for _, r := range doc.Employers {
		track(r.UpdatedAt)
	}
	for _, r := range doc.Jobs {
		track(r.UpdatedAt)
	}
	for _, r := range doc.Keywords {
		track(r.UpdatedAt)
	}
	for _, r := range doc.Activities {
		track(r.UpdatedAt)
	}
	for _, r := range doc.Goals {
		track(r.UpdatedAt)
	}
	for _, r := range doc.UserKeywords {
		track(r.UpdatedAt)
	}
	if !latest.IsZero() {
		stats.LastModified = &latest
	}

	if e.Settings != nil {
		raw, err := e.Settings.Get(ctx, constants.SettingLastImportAt)
		if err != nil {
			return nil, fmt.Errorf("failed to read last import time: %w", err)
		}
		if raw != "" {
			if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
				stats.LastImportAt = &t
			} else {
				e.Logger.Warn("Ignoring malformed last import time", "value", raw, "error", err)
			}
		}
	}
	return stats, nil
}
