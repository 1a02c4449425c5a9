package handler

import (
	"net/http"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/api"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/auth"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GetServiceGet works for anonymous callers too: they only ever see LIVE
// services, while owners and moderators see everything of theirs.
func (h *APIHandler) GetServiceGet(c echo.Context, params api.GetServiceGetParams) error {
	token, _ := auth.FromContext(c)

	serviceID, err := uuid.Parse(params.ServiceId)
	if err != nil {
		return badRequest(c, "invalid service_id")
	}

	svc, err := h.catalog.GetService(c.Request().Context(), token, serviceID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, serviceToAPI(svc))
}

func (h *APIHandler) GetServiceList(c echo.Context) error {
	services, err := h.catalog.ListLive(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}

	out := make([]api.Service, 0, len(services))
	for _, svc := range services {
		out = append(out, serviceToAPI(svc))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"services": out,
	})
}

func (h *APIHandler) GetServiceMine(c echo.Context) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	services, err := h.catalog.ListMine(c.Request().Context(), token)
	if err != nil {
		return h.writeError(c, err)
	}

	out := make([]api.Service, 0, len(services))
	for _, svc := range services {
		out = append(out, serviceToAPI(svc))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"services": out,
	})
}

func (h *APIHandler) GetVersionGet(c echo.Context, params api.GetVersionGetParams) error {
	serviceID, err := uuid.Parse(params.ServiceId)
	if err != nil {
		return badRequest(c, "invalid service_id")
	}

	version, err := h.catalog.GetVersion(c.Request().Context(), serviceID, params.VersionName)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, versionToAPI(version))
}

func (h *APIHandler) PostReviewAdd(c echo.Context) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	body := &api.PostReviewAddJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}

	serviceID, err := uuid.Parse(body.ServiceId)
	if err != nil {
		return badRequest(c, "invalid service_id")
	}

	reviewType, ok := parseReviewType(body.Type)
	if !ok {
		return badRequest(c, "unknown review type")
	}

	review, err := h.catalog.AddReview(c.Request().Context(), token, serviceID, body.Comment, reviewType)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, reviewToAPI(review))
}

func (h *APIHandler) PostReviewEdit(c echo.Context) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	body := &api.PostReviewEditJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}

	rid, err := uuid.Parse(body.ReviewId)
	if err != nil {
		return badRequest(c, "invalid review_id")
	}

	reviewType, ok := parseReviewType(body.Type)
	if !ok {
		return badRequest(c, "unknown review type")
	}

	review, err := h.catalog.EditReview(c.Request().Context(), token, rid, body.Comment, reviewType)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, reviewToAPI(review))
}

func (h *APIHandler) PostReviewReply(c echo.Context) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	body := &api.PostReviewReplyJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}

	rid, err := uuid.Parse(body.ReviewId)
	if err != nil {
		return badRequest(c, "invalid review_id")
	}

	reply, err := h.catalog.ReplyToReview(c.Request().Context(), token, rid, body.Comment)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, api.Reply{
		OwnerId:   reply.OwnerID.String(),
		Comment:   reply.Comment,
		CreatedAt: reply.CreatedAt,
	})
}

func (h *APIHandler) PostReviewVote(c echo.Context) error {
	if _, ok := auth.FromContext(c); !ok {
		return unauthorized(c)
	}

	body := &api.PostReviewVoteJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}

	rid, err := uuid.Parse(body.ReviewId)
	if err != nil {
		return badRequest(c, "invalid review_id")
	}

	if err := h.catalog.VoteReview(c.Request().Context(), rid, body.Up); err != nil {
		return h.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *APIHandler) GetReviewList(c echo.Context, params api.GetReviewListParams) error {
	serviceID, err := uuid.Parse(params.ServiceId)
	if err != nil {
		return badRequest(c, "invalid service_id")
	}

	reviews, err := h.catalog.ListReviews(c.Request().Context(), serviceID)
	if err != nil {
		return h.writeError(c, err)
	}

	out := make([]api.Review, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, reviewToAPI(review))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"reviews": out,
	})
}

func parseReviewType(s string) (models.ReviewType, bool) {
	switch t := models.ReviewType(s); t {
	case models.ReviewPositive, models.ReviewNegative:
		return t, true
	default:
		return "", false
	}
}
