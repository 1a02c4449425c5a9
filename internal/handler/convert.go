package handler

import (
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/api"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefStrings(s *[]string) []string {
	if s == nil {
		return nil
	}
	return *s
}

func servicePayloadFromAPI(p *api.ServicePayload) *models.ServicePayload {
	out := &models.ServicePayload{
		Name:        p.Name,
		Description: p.Description,
		PayModel:    models.PayModel(p.PayModel),
		Icon:        deref(p.Icon),
		Tags:        p.Tags,
	}
	if p.Version != nil {
		out.Version = versionPayloadFromAPI(p.Version)
	}
	return out
}

func versionPayloadFromAPI(p *api.VersionPayload) *models.VersionPayload {
	out := &models.VersionPayload{
		VersionName:        p.VersionName,
		VersionDescription: deref(p.VersionDescription),
		Docs:               derefStrings(p.Docs),
	}
	if p.Endpoints != nil {
		for _, ep := range *p.Endpoints {
			out.Endpoints = append(out.Endpoints, endpointPayloadFromAPI(ep))
		}
	}
	return out
}

func endpointPayloadFromAPI(e api.Endpoint) *models.EndpointPayload {
	out := &models.EndpointPayload{
		Method:          e.Method,
		Link:            e.Link,
		MainDescription: deref(e.MainDescription),
		Tab:             deref(e.Tab),
	}
	if e.Parameters != nil {
		for _, p := range *e.Parameters {
			out.Parameters = append(out.Parameters, &models.ParameterPayload{
				Name:      p.Name,
				Type:      models.ParameterType(p.Type),
				ValueType: p.ValueType,
				Required:  p.Required,
				Example:   deref(p.Example),
			})
		}
	}
	if e.Responses != nil {
		for _, r := range *e.Responses {
			out.Responses = append(out.Responses, &models.ResponsePayload{
				Code:        r.Code,
				Description: r.Description,
				Example:     deref(r.Example),
				Conditions:  derefStrings(r.Conditions),
			})
		}
	}
	return out
}

func generalInfoFromAPI(p api.GeneralInfoPayload) *models.GeneralInfoPayload {
	return &models.GeneralInfoPayload{
		Name:        p.Name,
		Description: p.Description,
		PayModel:    models.PayModel(p.PayModel),
		Icon:        deref(p.Icon),
		Tags:        p.Tags,
	}
}

func serviceToAPI(s *models.Service) api.Service {
	out := api.Service{
		ServiceId:    s.ID.String(),
		Name:         s.Name,
		Description:  s.Description,
		OwnerId:      s.OwnerID.String(),
		PayModel:     string(s.PayModel),
		Icon:         optional(s.Icon),
		Tags:         s.Tags,
		Status:       string(s.Status),
		StatusReason: optional(s.StatusReason),
		CreatedAt:    s.CreatedAt,
	}
	if len(s.Versions) > 0 {
		versions := make([]api.Version, 0, len(s.Versions))
		for _, v := range s.Versions {
			versions = append(versions, versionToAPI(v))
		}
		out.Versions = &versions
	}
	return out
}

func versionToAPI(v *models.Version) api.Version {
	out := api.Version{
		VersionId:          v.ID.String(),
		VersionName:        v.VersionName,
		VersionDescription: optional(v.VersionDescription),
		NewlyCreated:       v.NewlyCreated,
		Status:             string(v.Status),
		StatusReason:       optional(v.StatusReason),
		CreatedAt:          v.CreatedAt,
	}
	if len(v.Docs) > 0 {
		docs := v.Docs
		out.Docs = &docs
	}
	if len(v.Endpoints) > 0 {
		endpoints := make([]api.Endpoint, 0, len(v.Endpoints))
		for _, ep := range v.Endpoints {
			endpoints = append(endpoints, endpointToAPI(ep))
		}
		out.Endpoints = &endpoints
	}
	return out
}

func endpointToAPI(ep *models.Endpoint) api.Endpoint {
	out := api.Endpoint{
		Method:          ep.Method,
		Link:            ep.Link,
		MainDescription: optional(ep.MainDescription),
		Tab:             optional(ep.Tab),
	}
	if len(ep.Parameters) > 0 {
		params := make([]api.EndpointParameter, 0, len(ep.Parameters))
		for _, p := range ep.Parameters {
			params = append(params, api.EndpointParameter{
				Name:      p.Name,
				Type:      string(p.Type),
				ValueType: p.ValueType,
				Required:  p.Required,
				Example:   optional(p.Example),
			})
		}
		out.Parameters = &params
	}
	if len(ep.Responses) > 0 {
		responses := make([]api.EndpointResponse, 0, len(ep.Responses))
		for _, r := range ep.Responses {
			resp := api.EndpointResponse{
				Code:        r.Code,
				Description: r.Description,
				Example:     optional(r.Example),
			}
			if len(r.Conditions) > 0 {
				conditions := r.Conditions
				resp.Conditions = &conditions
			}
			responses = append(responses, resp)
		}
		out.Responses = &responses
	}
	return out
}

func pendingToAPI(p *models.PendingChange) api.PendingChange {
	out := api.PendingChange{
		PendingId:   p.ID.String(),
		Kind:        api.PendingChangeKind(p.Kind),
		ServiceId:   p.ServiceID.String(),
		SubmitterId: p.SubmitterID.String(),
		CreatedAt:   p.CreatedAt,
	}
	if p.VersionID != nil {
		id := p.VersionID.String()
		out.VersionId = &id
	}
	if p.NewService != nil {
		out.NewService = servicePayloadToAPI(p.NewService)
	}
	if p.NewVersion != nil {
		out.NewVersion = versionPayloadToAPI(p.NewVersion)
	}
	if p.GeneralInfo != nil {
		out.GeneralInfo = generalInfoToAPI(p.GeneralInfo)
	}
	return out
}

func pendingListToAPI(records []*models.PendingChange) []api.PendingChange {
	out := make([]api.PendingChange, 0, len(records))
	for _, record := range records {
		out = append(out, pendingToAPI(record))
	}
	return out
}

func servicePayloadToAPI(p *models.ServicePayload) *api.ServicePayload {
	out := &api.ServicePayload{
		Name:        p.Name,
		Description: p.Description,
		PayModel:    string(p.PayModel),
		Icon:        optional(p.Icon),
		Tags:        p.Tags,
	}
	if p.Version != nil {
		out.Version = versionPayloadToAPI(p.Version)
	}
	return out
}

func versionPayloadToAPI(p *models.VersionPayload) *api.VersionPayload {
	out := &api.VersionPayload{
		VersionName:        p.VersionName,
		VersionDescription: optional(p.VersionDescription),
	}
	if len(p.Docs) > 0 {
		docs := p.Docs
		out.Docs = &docs
	}
	if len(p.Endpoints) > 0 {
		endpoints := make([]api.Endpoint, 0, len(p.Endpoints))
		for _, ep := range p.Endpoints {
			endpoints = append(endpoints, endpointPayloadToAPI(ep))
		}
		out.Endpoints = &endpoints
	}
	return out
}

func endpointPayloadToAPI(p *models.EndpointPayload) api.Endpoint {
	out := api.Endpoint{
		Method:          p.Method,
		Link:            p.Link,
		MainDescription: optional(p.MainDescription),
		Tab:             optional(p.Tab),
	}
	if len(p.Parameters) > 0 {
		params := make([]api.EndpointParameter, 0, len(p.Parameters))
		for _, param := range p.Parameters {
			params = append(params, api.EndpointParameter{
				Name:      param.Name,
				Type:      string(param.Type),
				ValueType: param.ValueType,
				Required:  param.Required,
				Example:   optional(param.Example),
			})
		}
		out.Parameters = &params
	}
	if len(p.Responses) > 0 {
		responses := make([]api.EndpointResponse, 0, len(p.Responses))
		for _, r := range p.Responses {
			resp := api.EndpointResponse{
				Code:        r.Code,
				Description: r.Description,
				Example:     optional(r.Example),
			}
			if len(r.Conditions) > 0 {
				conditions := r.Conditions
				resp.Conditions = &conditions
			}
			responses = append(responses, resp)
		}
		out.Responses = &responses
	}
	return out
}

func generalInfoToAPI(p *models.GeneralInfoPayload) *api.GeneralInfoPayload {
	return &api.GeneralInfoPayload{
		Name:        p.Name,
		Description: p.Description,
		PayModel:    string(p.PayModel),
		Icon:        optional(p.Icon),
		Tags:        p.Tags,
	}
}

func reviewToAPI(r *models.Review) api.Review {
	out := api.Review{
		ReviewId:   r.RID.String(),
		ServiceId:  r.ServiceID.String(),
		ReviewerId: r.ReviewerID.String(),
		Comment:    r.Comment,
		Type:       string(r.Type),
		Upvotes:    r.Upvotes,
		Downvotes:  r.Downvotes,
		Edited:     r.Edited,
		CreatedAt:  r.CreatedAt,
	}
	if r.Reply != nil {
		out.Reply = &api.Reply{
			OwnerId:   r.Reply.OwnerID.String(),
			Comment:   r.Reply.Comment,
			CreatedAt: r.Reply.CreatedAt,
		}
	}
	return out
}
