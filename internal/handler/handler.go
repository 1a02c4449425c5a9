package handler

import (
	"errors"
	"net/http"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/api"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/service"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// APIHandler implements the HTTP surface over the moderation, catalog and
// auth services.
type APIHandler struct {
	moderation *service.ModerationService
	catalog    *service.CatalogService
	auth       *service.AuthService

	log *zap.Logger
}

var _ api.ServerInterface = (*APIHandler)(nil)

func NewAPIHandler(
	moderation *service.ModerationService,
	catalog *service.CatalogService,
	auth *service.AuthService,
	log *zap.Logger,
) *APIHandler {
	return &APIHandler{
		moderation: moderation,
		catalog:    catalog,
		auth:       auth,
		log:        log,
	}
}

// writeError maps service errors to HTTP responses. Anything unrecognized
// is a 500 with no body.
func (h *APIHandler) writeError(c echo.Context, err error) error {
	resp := api.ErrorResponse{}

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		resp.Error.Code = api.VALIDATIONFAILED
		resp.Error.Message = verr.Error()
		return c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, service.ErrPermissionDenied):
		resp.Error.Code = api.PERMISSIONDENIED
		resp.Error.Message = "caller is not allowed to do that"
		return c.JSON(http.StatusForbidden, resp)
	case errors.Is(err, service.ErrNotFound):
		resp.Error.Code = api.NOTFOUND
		resp.Error.Message = "resource not found"
		return c.JSON(http.StatusNotFound, resp)
	case errors.Is(err, service.ErrNotLive):
		resp.Error.Code = api.NOTLIVE
		resp.Error.Message = "service is not live"
		return c.JSON(http.StatusConflict, resp)
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrDuplicate):
		resp.Error.Code = api.CONFLICT
		resp.Error.Message = "a conflicting change is outstanding"
		return c.JSON(http.StatusConflict, resp)
	default:
		h.log.Error("request failed", zap.Error(err), zap.String("path", c.Path()))
		return c.JSON(http.StatusInternalServerError, "")
	}
}

func unauthorized(c echo.Context) error {
	resp := api.ErrorResponse{}
	resp.Error.Code = api.UNAUTHORIZED
	resp.Error.Message = "authentication required"
	return c.JSON(http.StatusUnauthorized, resp)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, message)
}
