package theatre

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/api/auth"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListTheatres(w http.ResponseWriter, r *http.Request)
	GetTheatre(w http.ResponseWriter, r *http.Request)
	CreateTheatre(w http.ResponseWriter, r *http.Request)
	UpdateTheatre(w http.ResponseWriter, r *http.Request)
	DeleteTheatre(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	theatreService Service
	logger         *slog.Logger
}

func NewHandlerImpl(theatreService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{theatreService: theatreService, logger: logger}
}

func (h *HandlerImpl) ListTheatres(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TheatreHandler").Start(r.Context(), "ListTheatres", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/theatres"),
	))
	defer span.End()

	theatres, err := h.theatreService.ListTheatres(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list theatres")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, theatres)
}

func (h *HandlerImpl) GetTheatre(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TheatreHandler").Start(r.Context(), "GetTheatre", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/theatres/{theatreID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "theatreID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid theatre ID")
		return
	}

	t, err := h.theatreService.GetTheatre(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get theatre")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, t)
}

func (h *HandlerImpl) CreateTheatre(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TheatreHandler").Start(r.Context(), "CreateTheatre", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/theatres"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertTheatreRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.theatreService.CreateTheatre(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create theatre")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, t)
}

func (h *HandlerImpl) UpdateTheatre(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TheatreHandler").Start(r.Context(), "UpdateTheatre", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/theatres/{theatreID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "theatreID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid theatre ID")
		return
	}

	var req UpsertTheatreRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.theatreService.UpdateTheatre(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update theatre")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, t)
}

func (h *HandlerImpl) DeleteTheatre(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TheatreHandler").Start(r.Context(), "DeleteTheatre", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/theatres/{theatreID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "theatreID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid theatre ID")
		return
	}

	if err := h.theatreService.DeleteTheatre(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete theatre")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
