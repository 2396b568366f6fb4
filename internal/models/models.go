package models

import (
	"fmt"
	"strings"
	"time"
)

// ProjectStatus enumerates the lifecycle states of a project.
type ProjectStatus string

const (
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusOnHold     ProjectStatus = "on_hold"
	StatusCancelled  ProjectStatus = "cancelled"
)

// ProjectStatuses lists every status in display order.
var ProjectStatuses = []ProjectStatus{
	StatusInProgress,
	StatusCompleted,
	StatusOnHold,
	StatusCancelled,
}

// Label is the human readable status name.
func (s ProjectStatus) Label() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusOnHold:
		return "On Hold"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Color is the badge color as a hex string.
func (s ProjectStatus) Color() string {
	switch s {
	case StatusInProgress:
		return "#3B82F6"
	case StatusCompleted:
		return "#22C55E"
	case StatusOnHold:
		return "#F97316"
	case StatusCancelled:
		return "#EF4444"
	}
	return "#9CA3AF"
}

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	for _, known := range ProjectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Next cycles to the following status, wrapping around.
func (s ProjectStatus) Next() ProjectStatus {
	for i, known := range ProjectStatuses {
		if s == known {
			return ProjectStatuses[(i+1)%len(ProjectStatuses)]
		}
	}
	return ProjectStatuses[0]
}

// ParseProjectStatus accepts the stored value or the label, ignoring case,
// spaces and underscores ("on hold", "on_hold" and "OnHold" all match).
func ParseProjectStatus(v string) (ProjectStatus, error) {
	norm := statusKey(v)
	for _, s := range ProjectStatuses {
		if norm == statusKey(string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown project status %q", v)
}

var statusKeyReplacer = strings.NewReplacer(" ", "", "_", "", "-", "")

func statusKey(v string) string {
	return statusKeyReplacer.Replace(strings.ToLower(strings.TrimSpace(v)))
}

// DisplayDateLayout renders creation dates as dd/mm/yyyy.
const DisplayDateLayout = "02/01/2006"

// Project is a unit of work tracked by the application.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	CreatedAt   time.Time
	TeamMembers []string
}

// CreationDate returns the display form of CreatedAt.
func (p Project) CreationDate() string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return p.CreatedAt.Local().Format(DisplayDateLayout)
}

// Worker is a person who can be assigned to projects.
type Worker struct {
	ID    string
	Name  string
	Role  string
	Email string
}

// Client is a customer projects are delivered to.
type Client struct {
	ID    string
	Name  string
	Email string
	Phone string
}
