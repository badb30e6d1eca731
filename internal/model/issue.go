package model

import (
	"time"
)

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusClosed     Status = "Closed"
)

// Statuses lists every accepted status in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusClosed}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every accepted priority in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

const (
	DefaultStatus   = StatusOpen
	DefaultPriority = PriorityMedium
)

// Issue is a row of the issues table. The database assigns ID, CreatedAt
// and UpdatedAt.
type Issue struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `json:"description"`
	Status      Status    `gorm:"size:20;not null" json:"status"`
	Priority    Priority  `gorm:"size:20;not null" json:"priority"`
	CreatedAt   time.Time `gorm:"not null;default:now();autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now();autoUpdateTime:false" json:"updated_at"`
}

// IssuePatch carries the fields of an update. A nil field is left untouched;
// an empty Description clears the stored description.
type IssuePatch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}

// Empty reports whether the patch changes no field.
func (p IssuePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil
}
