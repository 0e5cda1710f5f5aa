// Package project defines the portfolio project aggregate family: shared
// facts (dates, status, technologies, links) plus per-locale summaries and
// descriptions.
package project

import (
	"fmt"
	"time"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Family is the aggregate family name for projects.
const Family = "projects"

// Status of a project over its lifetime.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusPaused     Status = "paused"
)

// Valid reports whether s belongs to the known status set.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusPaused:
		return true
	}
	return false
}

// Type of engagement a project was built under.
type Type string

const (
	TypePersonal  Type = "personal"
	TypeCompany   Type = "company"
	TypeFreelance Type = "freelance"
)

// Valid reports whether t belongs to the known type set.
func (t Type) Valid() bool {
	switch t {
	case TypePersonal, TypeCompany, TypeFreelance:
		return true
	}
	return false
}

// Links holds external URLs for a project.
type Links struct {
	GitHub  string `json:"github,omitempty"`
	Website string `json:"website,omitempty"`
}

// Attributes is the locale-independent half of a project. Title doubles as
// the domain uniqueness key.
type Attributes struct {
	Title        string     `json:"title"`
	Type         Type       `json:"type"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Status       Status     `json:"status"`
	Technologies []string   `json:"technologies,omitempty"`
	Links        Links      `json:"links"`
}

// TranslationAttributes is the locale-scoped half of a project.
type TranslationAttributes struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// Validate checks the cross-field invariants of a project.
func Validate(a Attributes) error {
	if a.Title == "" {
		return localizedcontent.NewValidationError("title is required")
	}
	if !a.Type.Valid() {
		return localizedcontent.NewValidationError(fmt.Sprintf("unknown project type: %s", a.Type))
	}
	if !a.Status.Valid() {
		return localizedcontent.NewValidationError(fmt.Sprintf("unknown project status: %s", a.Status))
	}
	if a.Status == StatusCompleted && a.EndDate == nil {
		return localizedcontent.NewValidationError("completed projects require an end date")
	}
	if a.EndDate != nil && !a.EndDate.After(a.StartDate) {
		return localizedcontent.NewValidationError("end date must be after start date")
	}
	return nil
}

// Definition wires the project family into the aggregate engine.
func Definition() localizedcontent.Definition[Attributes, TranslationAttributes] {
	return localizedcontent.Definition[Attributes, TranslationAttributes]{
		Family:      Family,
		AssetFolder: "portfolio/projects",
		UniqueKey:   func(a Attributes) string { return a.Title },
		Validate:    Validate,
	}
}

// NewService creates the project aggregate service.
func NewService(options ...localizedcontent.Option[Attributes, TranslationAttributes]) (Service, error) {
	return localizedcontent.New(Definition(), options...)
}

// Convenience aliases for the generic engine types instantiated with the
// project attribute shapes.
type (
	Service       = localizedcontent.Service[Attributes, TranslationAttributes]
	General       = localizedcontent.General[Attributes]
	Translation   = localizedcontent.Translation[TranslationAttributes]
	LocalizedView = localizedcontent.LocalizedView[Attributes, TranslationAttributes]
)
