package models

import (
	"time"

	"github.com/google/uuid"
)

// ChangeKind tags the variant carried by a PendingChange.
type ChangeKind string

const (
	KindNewService  ChangeKind = "new_service"
	KindNewVersion  ChangeKind = "new_version"
	KindGeneralInfo ChangeKind = "general_info"
)

// PendingChange is a staged mutation awaiting a moderator decision.
// Exactly one payload pointer is set, matching Kind. ServiceID is a weak
// reference to the target: for KindNewService it points at the not-yet-live
// service row created alongside the record.
type PendingChange struct {
	ID          uuid.UUID
	Kind        ChangeKind
	ServiceID   uuid.UUID
	VersionID   *uuid.UUID
	SubmitterID uuid.UUID
	CreatedAt   time.Time

	NewService  *ServicePayload     `json:"new_service,omitempty"`
	NewVersion  *VersionPayload     `json:"new_version,omitempty"`
	GeneralInfo *GeneralInfoPayload `json:"general_info,omitempty"`
}

// Payload returns the variant payload as an untyped value, or nil for a
// malformed record.
func (p *PendingChange) Payload() any {
	switch p.Kind {
	case KindNewService:
		if p.NewService != nil {
			return p.NewService
		}
	case KindNewVersion:
		if p.NewVersion != nil {
			return p.NewVersion
		}
	case KindGeneralInfo:
		if p.GeneralInfo != nil {
			return p.GeneralInfo
		}
	}
	return nil
}

// ServicePayload is the proposed content of a brand-new service.
type ServicePayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PayModel    PayModel        `json:"pay_model"`
	Icon        string          `json:"icon,omitempty"`
	Tags        []string        `json:"tags"`
	Version     *VersionPayload `json:"version,omitempty"`
}

// VersionPayload is the proposed content of a new or updated version.
type VersionPayload struct {
	VersionName        string             `json:"version_name"`
	VersionDescription string             `json:"version_description"`
	Docs               []string           `json:"docs,omitempty"`
	Endpoints          []*EndpointPayload `json:"endpoints,omitempty"`
}

type EndpointPayload struct {
	Method          string              `json:"method"`
	Link            string              `json:"link"`
	MainDescription string              `json:"main_description"`
	Tab             string              `json:"tab"`
	Parameters      []*ParameterPayload `json:"parameters,omitempty"`
	Responses       []*ResponsePayload  `json:"responses,omitempty"`
}

type ParameterPayload struct {
	Name      string        `json:"name"`
	Type      ParameterType `json:"type"`
	ValueType string        `json:"value_type"`
	Required  bool          `json:"required"`
	Example   string        `json:"example,omitempty"`
}

type ResponsePayload struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Example     string   `json:"example,omitempty"`
	Conditions  []string `json:"conditions,omitempty"`
}

// GeneralInfoPayload is a staged replacement for a live service's
// name/description/tags/icon/pay model.
type GeneralInfoPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PayModel    PayModel `json:"pay_model"`
	Icon        string   `json:"icon,omitempty"`
	Tags        []string `json:"tags"`
}
