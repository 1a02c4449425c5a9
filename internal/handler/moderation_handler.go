package handler

import (
	"net/http"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/api"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/auth"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (h *APIHandler) PostServiceSubmit(c echo.Context) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	body := &api.PostServiceSubmitJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}

	pendingID, err := h.moderation.SubmitNewService(c.Request().Context(), token, servicePayloadFromAPI(body))
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"pending_id": pendingID.String(),
	})
}

func (h *APIHandler) PostVersionSubmit(c echo.Context) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	body := &api.PostVersionSubmitJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}

	serviceID, err := uuid.Parse(body.ServiceId)
	if err != nil {
		return badRequest(c, "invalid service_id")
	}

	pendingID, err := h.moderation.SubmitNewVersion(c.Request().Context(), token, serviceID, versionPayloadFromAPI(&body.Version))
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"pending_id": pendingID.String(),
	})
}

func (h *APIHandler) PostServiceUpdate(c echo.Context) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	body := &api.PostServiceUpdateJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}

	serviceID, err := uuid.Parse(body.ServiceId)
	if err != nil {
		return badRequest(c, "invalid service_id")
	}

	pendingID, err := h.moderation.SubmitGeneralInfo(c.Request().Context(), token, serviceID, generalInfoFromAPI(body.Info))
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"pending_id": pendingID.String(),
	})
}

func (h *APIHandler) GetAdminPending(c echo.Context, params api.GetAdminPendingParams) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}
	if !token.CanModerate() {
		resp := api.ErrorResponse{}
		resp.Error.Code = api.PERMISSIONDENIED
		resp.Error.Message = "moderator role required"
		return c.JSON(http.StatusForbidden, resp)
	}

	ctx := c.Request().Context()

	var records []*models.PendingChange
	var err error
	switch models.ChangeKind(params.Kind) {
	case models.KindNewService:
		records, err = h.moderation.ListPendingServices(ctx)
	case models.KindNewVersion:
		records, err = h.moderation.ListPendingVersions(ctx)
	case models.KindGeneralInfo:
		records, err = h.moderation.ListPendingGeneralInfo(ctx)
	default:
		return badRequest(c, "unknown kind")
	}
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"pending": pendingListToAPI(records),
	})
}

func (h *APIHandler) PostAdminDecide(c echo.Context) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	body := &api.PostAdminDecideJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}

	pendingID, err := uuid.Parse(body.PendingId)
	if err != nil {
		return badRequest(c, "invalid pending_id")
	}

	remaining, err := h.moderation.Decide(c.Request().Context(), token, pendingID, body.Approve, body.Reason)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"pending": pendingListToAPI(remaining),
	})
}

func (h *APIHandler) PostAdminPromote(c echo.Context) error {
	token, ok := auth.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	body := &api.PostAdminPromoteJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}

	userID, err := uuid.Parse(body.UserId)
	if err != nil {
		return badRequest(c, "invalid user_id")
	}

	role, ok := parseRole(body.Role)
	if !ok {
		return badRequest(c, "unknown role")
	}

	if err := h.auth.Promote(c.Request().Context(), token, userID, role); err != nil {
		return h.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *APIHandler) PostAuthToken(c echo.Context) error {
	body := &api.PostAuthTokenJSONRequestBody{}
	if err := c.Bind(body); err != nil {
		return badRequest(c, "bad request")
	}
	if body.Username == "" {
		return badRequest(c, "username is required")
	}

	token, user, err := h.auth.Token(c.Request().Context(), body.Username)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token":   token,
		"user_id": user.ID.String(),
		"role":    string(user.Role),
	})
}

func parseRole(s string) (models.Role, bool) {
	switch role := models.Role(s); role {
	case models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin:
		return role, true
	default:
		return "", false
	}
}
