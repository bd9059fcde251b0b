package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a record looked up by id does not exist.
var ErrNotFound = errors.New("not found")

// Employer is a company the user tracks applications against.
type Employer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	Industry  *Industry `json:"industry,omitempty" db:"industry" validate:"omitempty,industry"`
	Favorited bool      `json:"favorited" db:"favorited"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Normalize trims the employer name.
func (e *Employer) Normalize() {
	e.Name = strings.TrimSpace(e.Name)
}

// Job is a single application at an employer.
type Job struct { //nolint:govet // field ordering follows the wire format
	ID              int64     `json:"id" db:"id"`
	EmployerID      int64     `json:"employerId" db:"employer_id" validate:"required"`
	Title           string    `json:"title" db:"title" validate:"required"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	Link            *string   `json:"link,omitempty" db:"link"`
	ReferenceNumber *string   `json:"referenceNumber,omitempty" db:"reference_number"`
	SalaryEstimate  *string   `json:"salaryEstimate,omitempty" db:"salary_estimate"`
	InterestLevel   *int      `json:"interestLevel,omitempty" db:"interest_level" validate:"omitempty,min=1,max=10"`
	Archived        bool      `json:"archived" db:"archived"`
	Favorited       bool      `json:"favorited" db:"favorited"`
	Status          JobStatus `json:"status" db:"status" validate:"jobstatus"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// JobWithEmployer pairs a job with its owning employer.
type JobWithEmployer struct {
	Job
	Employer Employer `json:"employer"`
}

// Keyword is a skill or term attached to a job posting.
type Keyword struct {
	ID        int64     `json:"id" db:"id"`
	JobID     int64     `json:"jobId" db:"job_id" validate:"required"`
	Keyword   string    `json:"keyword" db:"keyword" validate:"required"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Normalize lowercases and trims the keyword text.
func (k *Keyword) Normalize() {
	k.Keyword = NormalizeKeyword(k.Keyword)
}

// UserKeyword is a skill the user already has.
type UserKeyword struct {
	ID        int64     `json:"id" db:"id"`
	Keyword   string    `json:"keyword" db:"keyword" validate:"required"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Normalize lowercases and trims the keyword text.
func (k *UserKeyword) Normalize() {
	k.Keyword = NormalizeKeyword(k.Keyword)
}

// Activity is one entry in a job's history.
type Activity struct {
	ID             int64        `json:"id" db:"id"`
	JobID          int64        `json:"jobId" db:"job_id" validate:"required"`
	Type           ActivityType `json:"type" db:"type" validate:"activitytype"`
	Category       string       `json:"category" db:"category" validate:"required"`
	Notes          *string      `json:"notes,omitempty" db:"notes"`
	PreviousStatus *JobStatus   `json:"previousStatus,omitempty" db:"previous_status" validate:"omitempty,jobstatus"`
	NewStatus      *JobStatus   `json:"newStatus,omitempty" db:"new_status" validate:"omitempty,jobstatus"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
}

// Goal is a target count per period for one goal type.
type Goal struct {
	ID            int64     `json:"id" db:"id"`
	Type          GoalType  `json:"type" db:"type" validate:"goaltype"`
	TargetNumber  int       `json:"targetNumber" db:"target_number" validate:"gte=0"`
	FrequencyDays int       `json:"frequencyDays" db:"frequency_days" validate:"gte=1"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// NormalizeKeyword is the canonical form used for keyword uniqueness.
func NormalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EmployerPatch carries the fields of a partial employer update.
// Nil fields are left untouched.
type EmployerPatch struct {
	Name      *string
	Notes     *string
	Industry  *Industry
	Favorited *bool
}

// JobPatch carries the fields of a partial job update.
type JobPatch struct {
	EmployerID      *int64
	Title           *string
	Notes           *string
	Link            *string
	ReferenceNumber *string
	SalaryEstimate  *string
	InterestLevel   *int
	Archived        *bool
	Favorited       *bool
	Status          *JobStatus
}

// ActivityPatch carries the fields of a partial activity update.
type ActivityPatch struct {
	Category *string
	Notes    *string
}

// GoalPatch carries the fields of a partial goal update.
type GoalPatch struct {
	TargetNumber  *int
	FrequencyDays *int
}
