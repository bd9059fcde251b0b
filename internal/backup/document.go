// Package backup serializes the whole store to a versioned snapshot
// document and restores it with every identifier re-keyed.
package backup

import (
	"time"

	"github.com/cesargomez89/jobtracker/internal/constants"
	"github.com/cesargomez89/jobtracker/internal/domain"
)

// CurrentVersion is the format version written by Export.
const CurrentVersion = "1.0"

// exportDateLayout matches the millisecond ISO-8601 form older snapshots use.
const exportDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Document is the snapshot wire format.
type Document struct {
	Version      string                `json:"version"`
	ExportDate   string                `json:"exportDate"`
	Employers    []*domain.Employer    `json:"employers"`
	Jobs         []*domain.Job         `json:"jobs"`
	Keywords     []*domain.Keyword     `json:"keywords"`
	Activities   []*domain.Activity    `json:"activities"`
	Goals        []*domain.Goal        `json:"goals"`
	UserKeywords []*domain.UserKeyword `json:"userKeywords"`
}

// Category names a collection of the document.
type Category string

const (
	CategoryEmployers    Category = "employers"
	CategoryJobs         Category = "jobs"
	CategoryKeywords     Category = "keywords"
	CategoryActivities   Category = "activities"
	CategoryGoals        Category = "goals"
	CategoryUserKeywords Category = "userKeywords"
)

type collection struct {
	Category Category
	// Since is the first format version that carried the collection.
	Since string
	// Required collections must be present. Others default to empty.
	Required bool
	// Message is the validation error when the field is not an array.
	Message string
}

// collections lists the document collections in import order.
var collections = []collection{
	{Category: CategoryEmployers, Since: "1.0", Required: true, Message: "invalid data structure"},
	{Category: CategoryJobs, Since: "1.0", Required: true, Message: "invalid data structure"},
	{Category: CategoryKeywords, Since: "1.0", Required: true, Message: "invalid data structure"},
	{Category: CategoryActivities, Since: "1.0", Required: false, Message: "invalid data structure"},
	{Category: CategoryGoals, Since: "1.0", Required: false, Message: "invalid goals data structure"},
	{Category: CategoryUserKeywords, Since: "1.0", Required: false, Message: "invalid data structure"},
}

var knownVersions = map[string]bool{
	"1.0": true,
}

// KnownVersion reports whether v is a format version this build understands.
// Unknown versions are still imported.
func KnownVersion(v string) bool {
	return knownVersions[v]
}

// normalize replaces nil collections with empty ones so the JSON form
// always carries arrays.
func (d *Document) normalize() {
	if d.Employers == nil {
		d.Employers = []*domain.Employer{}
	}
	if d.Jobs == nil {
		d.Jobs = []*domain.Job{}
	}
	if d.Keywords == nil {
		d.Keywords = []*domain.Keyword{}
	}
	if d.Activities == nil {
		d.Activities = []*domain.Activity{}
	}
	if d.Goals == nil {
		d.Goals = []*domain.Goal{}
	}
	if d.UserKeywords == nil {
		d.UserKeywords = []*domain.UserKeyword{}
	}
}

// FileName is the download name for a snapshot taken at t, in t's zone.
func FileName(t time.Time) string {
	return constants.BackupFilePrefix + t.Format(constants.BackupTimeLayout) + constants.BackupFileExt
}
