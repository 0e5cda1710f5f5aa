// Package experience defines the work experience aggregate family. The
// General holds employment facts and an optional company logo asset; each
// translation carries the localized position title and description.
package experience

import (
	"fmt"
	"time"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Family is the aggregate family name for experiences.
const Family = "experiences"

// Type of work arrangement.
type Type string

const (
	TypeFreelance    Type = "freelance"
	TypeEmployment   Type = "employment"
	TypeInternship   Type = "internship"
	TypeVolunteering Type = "volunteering"
	TypeContract     Type = "contract"
)

// Valid reports whether t belongs to the known type set.
func (t Type) Valid() bool {
	switch t {
	case TypeFreelance, TypeEmployment, TypeInternship, TypeVolunteering, TypeContract:
		return true
	}
	return false
}

// Attributes is the locale-independent half of an experience. CompanyName
// doubles as the domain uniqueness key. The company logo, when present,
// lives in the General's asset list.
type Attributes struct {
	CompanyName  string     `json:"company_name"`
	Type         Type       `json:"type"`
	Location     string     `json:"location,omitempty"`
	Technologies []string   `json:"technologies,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Ongoing      bool       `json:"ongoing"`
}

// TranslationAttributes is the locale-scoped half of an experience.
type TranslationAttributes struct {
	Position    string `json:"position"`
	Description string `json:"description,omitempty"`
}

// Validate checks the cross-field invariants of an experience.
func Validate(a Attributes) error {
	if a.CompanyName == "" {
		return localizedcontent.NewValidationError("company name is required")
	}
	if !a.Type.Valid() {
		return localizedcontent.NewValidationError(fmt.Sprintf("unknown experience type: %s", a.Type))
	}
	if a.Ongoing && a.EndDate != nil {
		return localizedcontent.NewValidationError("ongoing experiences cannot have an end date")
	}
	if !a.Ongoing && a.EndDate == nil {
		return localizedcontent.NewValidationError("finished experiences require an end date")
	}
	if a.EndDate != nil && !a.EndDate.After(a.StartDate) {
		return localizedcontent.NewValidationError("end date must be after start date")
	}
	return nil
}

// Definition wires the experience family into the aggregate engine.
func Definition() localizedcontent.Definition[Attributes, TranslationAttributes] {
	return localizedcontent.Definition[Attributes, TranslationAttributes]{
		Family:      Family,
		AssetFolder: "portfolio/experiences",
		UniqueKey:   func(a Attributes) string { return a.CompanyName },
		Validate:    Validate,
	}
}

// NewService creates the experience aggregate service.
func NewService(options ...localizedcontent.Option[Attributes, TranslationAttributes]) (Service, error) {
	return localizedcontent.New(Definition(), options...)
}

type (
	Service       = localizedcontent.Service[Attributes, TranslationAttributes]
	General       = localizedcontent.General[Attributes]
	Translation   = localizedcontent.Translation[TranslationAttributes]
	LocalizedView = localizedcontent.LocalizedView[Attributes, TranslationAttributes]
)
