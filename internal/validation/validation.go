// Package validation applies the field-level rules shared by live and
// staged catalog entities. Every rule is checked so a caller can surface
// all violations in one pass instead of fixing them one at a time.
package validation

import (
	"fmt"
	"strings"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
)

// The two category tags are mutually exclusive: a submission carries
// exactly one of them.
const (
	TagAPI          = "API"
	TagMicroservice = "Microservice"
)

type Violation struct {
	Field  string
	Reason string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Reason
}

// Error collects every violated field of a submission.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) add(field, reason string) {
	e.Violations = append(e.Violations, Violation{Field: field, Reason: reason})
}

func (e *Error) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// Service validates a proposed new service, including its initial version
// when one is attached.
func Service(p *models.ServicePayload) error {
	verr := &Error{}

	if strings.TrimSpace(p.Name) == "" {
		verr.add("name", "must not be empty")
	}
	if strings.TrimSpace(p.Description) == "" {
		verr.add("description", "must not be empty")
	}
	checkPayModel(verr, p.PayModel)
	checkTags(verr, p.Tags)

	if p.Version != nil {
		checkVersion(verr, p.Version)
	}

	return verr.orNil()
}

// Version validates a proposed new or updated version.
func Version(p *models.VersionPayload) error {
	verr := &Error{}
	checkVersion(verr, p)
	return verr.orNil()
}

// GeneralInfo validates a staged replacement of a service's public fields.
func GeneralInfo(p *models.GeneralInfoPayload) error {
	verr := &Error{}

	if strings.TrimSpace(p.Name) == "" {
		verr.add("name", "must not be empty")
	}
	if strings.TrimSpace(p.Description) == "" {
		verr.add("description", "must not be empty")
	}
	checkPayModel(verr, p.PayModel)
	checkTags(verr, p.Tags)

	return verr.orNil()
}

// Reason validates a moderator's decision justification, which is
// mandatory for approvals and rejections alike.
func Reason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return &Error{Violations: []Violation{{Field: "reason", Reason: "must not be empty"}}}
	}
	return nil
}

func checkPayModel(verr *Error, pm models.PayModel) {
	switch pm {
	case models.PayModelFree, models.PayModelFreemium, models.PayModelPremium:
	default:
		verr.add("pay_model", fmt.Sprintf("unknown pay model %q", string(pm)))
	}
}

func checkTags(verr *Error, tags []string) {
	if len(tags) == 0 {
		verr.add("tags", "at least one tag is required")
		return
	}

	seen := make(map[string]struct{}, len(tags))
	categories := 0
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			verr.add("tags", "tags must not be empty")
			continue
		}
		if _, dup := seen[tag]; dup {
			verr.add("tags", fmt.Sprintf("duplicate tag %q", tag))
		}
		seen[tag] = struct{}{}
		if tag == TagAPI || tag == TagMicroservice {
			categories++
		}
	}

	if categories == 0 {
		verr.add("tags", fmt.Sprintf("one of %q or %q is required", TagAPI, TagMicroservice))
	}
	if categories > 1 {
		verr.add("tags", fmt.Sprintf("%q and %q are mutually exclusive", TagAPI, TagMicroservice))
	}
}

func checkVersion(verr *Error, p *models.VersionPayload) {
	if strings.TrimSpace(p.VersionName) == "" {
		verr.add("version_name", "must not be empty")
	}

	for i, ep := range p.Endpoints {
		prefix := fmt.Sprintf("endpoints[%d]", i)
		checkEndpoint(verr, prefix, ep)
	}
}

func checkEndpoint(verr *Error, prefix string, ep *models.EndpointPayload) {
	switch ep.Method {
	case "GET", "POST", "PUT", "DELETE":
	default:
		verr.add(prefix+".method", fmt.Sprintf("unknown method %q", ep.Method))
	}
	if strings.TrimSpace(ep.Link) == "" {
		verr.add(prefix+".link", "must not be empty")
	}

	paramNames := make(map[string]struct{}, len(ep.Parameters))
	for j, param := range ep.Parameters {
		field := fmt.Sprintf("%s.parameters[%d]", prefix, j)
		if strings.TrimSpace(param.Name) == "" {
			verr.add(field+".name", "must not be empty")
			continue
		}
		if _, dup := paramNames[param.Name]; dup {
			verr.add(field+".name", fmt.Sprintf("duplicate parameter name %q", param.Name))
		}
		paramNames[param.Name] = struct{}{}

		switch param.Type {
		case models.ParameterHeader, models.ParameterBody, models.ParameterPath, models.ParameterQuery:
		default:
			verr.add(field+".type", fmt.Sprintf("unknown parameter type %q", string(param.Type)))
		}
	}

	codes := make(map[string]struct{}, len(ep.Responses))
	for j, resp := range ep.Responses {
		field := fmt.Sprintf("%s.responses[%d]", prefix, j)
		if strings.TrimSpace(resp.Code) == "" {
			verr.add(field+".code", "must not be empty")
			continue
		}
		if _, dup := codes[resp.Code]; dup {
			verr.add(field+".code", fmt.Sprintf("duplicate response code %q", resp.Code))
		}
		codes[resp.Code] = struct{}{}
	}
}
