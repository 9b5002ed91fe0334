package models

import (
	"strings"

	dErrors "logvault/pkg/domain-errors"
	s "logvault/pkg/platform/strings"
	limits "logvault/pkg/platform/validation"
	"logvault/pkg/validation"
)

// AddRequest appends one entry.
type AddRequest struct {
	Message   string `json:"message"`
	Level     string `json:"level" validate:"required,loglevel"`
	Namespace string `json:"namespace"`

	parsedLevel Level
}

func (r *AddRequest) Normalize() {
	r.Level = strings.TrimSpace(r.Level)
}

func (r *AddRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if err := limits.CheckStringLength("message", r.Message, limits.MaxMessageLength); err != nil {
		return err
	}
	if err := limits.CheckStringLength("namespace", r.Namespace, limits.MaxNamespaceLength); err != nil {
		return err
	}
	level, err := ParseLevel(r.Level)
	if err != nil {
		return err
	}
	r.parsedLevel = level
	return nil
}

// ParsedLevel is only meaningful after Validate succeeded.
func (r *AddRequest) ParsedLevel() Level {
	return r.parsedLevel
}

// QueryRequest is the shared body of query and export.
type QueryRequest struct {
	Namespaces []string `json:"namespaces"`
	Level      *string  `json:"level,omitempty" validate:"omitempty,loglevel"`
	Take       *int     `json:"take,omitempty" validate:"omitempty,gte=0"`
	Prev       *int     `json:"prev,omitempty" validate:"omitempty,gte=0"`

	filter Filter
}

func (r *QueryRequest) Normalize() {
	r.Namespaces = s.Dedupe(r.Namespaces)
	if r.Level != nil {
		trimmed := strings.TrimSpace(*r.Level)
		if trimmed == "" {
			r.Level = nil
		} else {
			r.Level = &trimmed
		}
	}
}

func (r *QueryRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	filter, err := buildFilter(r.Namespaces, r.Level)
	if err != nil {
		return err
	}
	r.filter = filter
	return nil
}

func (r *QueryRequest) Filter() Filter {
	return r.filter
}

func (r *QueryRequest) Page() Page {
	page := Page{Take: r.Take}
	if r.Prev != nil {
		page.Prev = *r.Prev
	}
	return page
}

// SizeRequest is decoded from query parameters: repeated ?namespace= values
// and an optional ?level= threshold.
type SizeRequest struct {
	Namespaces []string
	Level      *string

	filter Filter
}

func (r *SizeRequest) Normalize() {
	r.Namespaces = s.Dedupe(r.Namespaces)
	if r.Level != nil && strings.TrimSpace(*r.Level) == "" {
		r.Level = nil
	}
}

func (r *SizeRequest) Validate() error {
	filter, err := buildFilter(r.Namespaces, r.Level)
	if err != nil {
		return err
	}
	r.filter = filter
	return nil
}

func (r *SizeRequest) Filter() Filter {
	return r.filter
}

// ClearRequest removes entries of the listed namespaces, or every entry when
// the list is empty or absent.
type ClearRequest struct {
	Namespaces []string `json:"namespaces,omitempty"`
}

func (r *ClearRequest) Normalize() {
	r.Namespaces = s.Dedupe(r.Namespaces)
}

func (r *ClearRequest) Validate() error {
	return limits.CheckSliceCount("namespaces", len(r.Namespaces), limits.MaxNamespaces)
}

// BufferSizeRequest sets the store capacity. The upper bound is enforced by
// the store because it is configurable.
type BufferSizeRequest struct {
	Size int `json:"size" validate:"gte=1"`
}

func (r *BufferSizeRequest) Validate() error {
	return validation.Validate(r)
}

func buildFilter(namespaces []string, level *string) (Filter, error) {
	if err := limits.CheckSliceCount("namespaces", len(namespaces), limits.MaxNamespaces); err != nil {
		return Filter{}, err
	}
	if err := limits.CheckEachStringLength("namespace", namespaces, limits.MaxNamespaceLength); err != nil {
		return Filter{}, err
	}
	filter := Filter{Namespaces: namespaces}
	if level != nil {
		parsed, err := ParseLevel(*level)
		if err != nil {
			return Filter{}, dErrors.Wrap(err, dErrors.CodeValidation, "level must be one of Debug, Info, Warn, Error, Fatal")
		}
		filter.MinLevel = &parsed
	}
	return filter, nil
}
