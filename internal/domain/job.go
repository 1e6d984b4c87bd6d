package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// JobStatus is the application stage of a tracked job.
type JobStatus string

const (
	StatusApplied      JobStatus = "Applied"
	StatusInterviewing JobStatus = "Interviewing"
	StatusRejected     JobStatus = "Rejected"
	StatusOffer        JobStatus = "Offer"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []JobStatus{StatusApplied, StatusInterviewing, StatusRejected, StatusOffer}

// IsValid reports whether s is one of the four known statuses.
func (s JobStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusRejected, StatusOffer:
		return true
	}
	return false
}

// ParseJobStatus converts a raw string into a JobStatus, rejecting unknown values.
func ParseJobStatus(raw string) (JobStatus, error) {
	s := JobStatus(raw)
	if !s.IsValid() {
		return "", &ValidationError{Field: "status", Message: statusMessage()}
	}
	return s, nil
}

// UnmarshalJSON rejects any value outside the status enumeration.
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ValidationError{Field: "status", Message: statusMessage()}
	}
	parsed, err := ParseJobStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func statusMessage() string {
	names := make([]string, len(AllStatuses))
	for i, s := range AllStatuses {
		names[i] = string(s)
	}
	return "Status must be one of " + strings.Join(names, ", ")
}

// Job is a single tracked job application.
type Job struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	ApplicationLink string    `json:"applicationLink"`
	Status          JobStatus `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Clone returns a copy of the job that shares no state with j.
func (j *Job) Clone() *Job {
	c := *j
	return &c
}

// CreateJobRequest is the body of a job creation request.
type CreateJobRequest struct {
	Title           string    `json:"title" validate:"required,utf16max=100"`
	Company         string    `json:"company" validate:"required,utf16max=100"`
	ApplicationLink string    `json:"applicationLink" validate:"required,url"`
	Status          JobStatus `json:"status" validate:"required"`
}

// UpdateJobRequest is the body of a job update request. Absent fields are left unchanged.
type UpdateJobRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitnil,min=1,utf16max=100"`
	Company         *string    `json:"company,omitempty" validate:"omitnil,min=1,utf16max=100"`
	ApplicationLink *string    `json:"applicationLink,omitempty" validate:"omitnil,url"`
	Status          *JobStatus `json:"status,omitempty"`
}

// UnmarshalJSON treats an explicit null like any other non-string value: a field is
// either absent or carries a value, it is never cleared.
func (r *UpdateJobRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, name := range []string{"title", "company", "applicationLink", "status"} {
		raw, ok := fields[name]
		if !ok || string(bytes.TrimSpace(raw)) != "null" {
			continue
		}
		if name == "status" {
			return &ValidationError{Field: name, Message: statusMessage()}
		}
		return &ValidationError{Field: name, Message: "Expected string, received null"}
	}

	type plain UpdateJobRequest
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = UpdateJobRequest(decoded)
	return nil
}

// Patch converts a validated update request into the store-level patch.
func (r *UpdateJobRequest) Patch() JobPatch {
	return JobPatch{
		Title:           r.Title,
		Company:         r.Company,
		ApplicationLink: r.ApplicationLink,
		Status:          r.Status,
	}
}

// JobPatch holds the subset of mutable job fields to replace.
type JobPatch struct {
	Title           *string
	Company         *string
	ApplicationLink *string
	Status          *JobStatus
}

// Apply merges the present fields into job. ID and timestamps are not touched.
func (p JobPatch) Apply(job *Job) {
	if p.Title != nil {
		job.Title = *p.Title
	}
	if p.Company != nil {
		job.Company = *p.Company
	}
	if p.ApplicationLink != nil {
		job.ApplicationLink = *p.ApplicationLink
	}
	if p.Status != nil {
		job.Status = *p.Status
	}
}

// AnalyzeRequest carries a pasted job description for AI analysis.
type AnalyzeRequest struct {
	JobDescription string `json:"jobDescription" validate:"required,min=10"`
}

// JobAnalysis is the summary and key skills extracted from a job description.
type JobAnalysis struct {
	Summary   string   `json:"summary"`
	KeySkills []string `json:"keySkills"`
}

// EventType names a job lifecycle event.
type EventType string

const (
	EventJobCreated EventType = "job.created"
	EventJobUpdated EventType = "job.updated"
	EventJobDeleted EventType = "job.deleted"
)

// JobEvent is emitted after a successful mutation of the job store.
type JobEvent struct {
	Type       EventType `json:"type"`
	JobID      string    `json:"jobId"`
	Job        *Job      `json:"job,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewJobEvent builds an event stamped with the current UTC time.
func NewJobEvent(t EventType, jobID string, job *Job) *JobEvent {
	return &JobEvent{
		Type:       t,
		JobID:      jobID,
		Job:        job,
		OccurredAt: time.Now().UTC(),
	}
}
