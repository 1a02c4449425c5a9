package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is shared by services, versions and staged changes. LIVE,
// REJECTED and UPDATE_REJECTED are terminal until a new submission.
type Status string

const (
	StatusLive           Status = "LIVE"
	StatusPending        Status = "PENDING"
	StatusUpdatePending  Status = "UPDATE_PENDING"
	StatusRejected       Status = "REJECTED"
	StatusUpdateRejected Status = "UPDATE_REJECTED"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

type PayModel string

const (
	PayModelFree     PayModel = "Free"
	PayModelFreemium PayModel = "Freemium"
	PayModelPremium  PayModel = "Premium"
)

type User struct {
	ID       uuid.UUID
	Name     string
	Role     Role
	IsActive bool
}

type Service struct {
	ID           uuid.UUID
	Name         string
	Description  string
	OwnerID      uuid.UUID
	PayModel     PayModel
	Icon         string
	Tags         []string
	Status       Status
	StatusReason string
	CreatedAt    time.Time
	Versions     []*Version
}

type Version struct {
	ID                 uuid.UUID
	ServiceID          uuid.UUID
	VersionName        string
	VersionDescription string
	Docs               []string
	NewlyCreated       bool
	Status             Status
	StatusReason       string
	CreatedAt          time.Time
	Endpoints          []*Endpoint
}

type Endpoint struct {
	ID              uuid.UUID
	Method          string
	Link            string
	MainDescription string
	Tab             string
	Parameters      []*EndpointParameter
	Responses       []*EndpointResponse
}

type ParameterType string

const (
	ParameterHeader ParameterType = "HEADER"
	ParameterBody   ParameterType = "BODY"
	ParameterPath   ParameterType = "PATH"
	ParameterQuery  ParameterType = "QUERY"
)

type EndpointParameter struct {
	ID        uuid.UUID
	Name      string
	Type      ParameterType
	ValueType string
	Required  bool
	Example   string
}

type EndpointResponse struct {
	ID          uuid.UUID
	Code        string
	Description string
	Example     string
	Conditions  []string
}

type ReviewType string

const (
	ReviewPositive ReviewType = "positive"
	ReviewNegative ReviewType = "negative"
)

type Review struct {
	RID        uuid.UUID
	ServiceID  uuid.UUID
	ReviewerID uuid.UUID
	Comment    string
	Type       ReviewType
	Upvotes    int
	Downvotes  int
	Edited     bool
	CreatedAt  time.Time
	Reply      *Reply
}

// Reply is the service owner's single-slot answer to a review.
type Reply struct {
	ReviewID  uuid.UUID
	OwnerID   uuid.UUID
	Comment   string
	CreatedAt time.Time
}
