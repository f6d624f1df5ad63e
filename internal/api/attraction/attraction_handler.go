package attraction

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
	ListAttractions(w http.ResponseWriter, r *http.Request)
	GetAttraction(w http.ResponseWriter, r *http.Request)
	CreateAttraction(w http.ResponseWriter, r *http.Request)
	UpdateAttraction(w http.ResponseWriter, r *http.Request)
	DeleteAttraction(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	attractionService Service
	logger            *slog.Logger
}

func NewHandlerImpl(attractionService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{attractionService: attractionService, logger: logger}
}

func (h *HandlerImpl) ListAttractions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AttractionHandler").Start(r.Context(), "ListAttractions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/attractions"),
	))
	defer span.End()

	if category := r.URL.Query().Get("category"); category != "" {
		attractions, err := h.attractionService.ListAttractionsByCategory(ctx, category)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to list attractions by category")
			api.HandleError(w, r, err)
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, attractions)
		return
	}

	attractions, err := h.attractionService.ListAttractions(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list attractions")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, attractions)
}

func (h *HandlerImpl) GetAttraction(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AttractionHandler").Start(r.Context(), "GetAttraction", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/attractions/{attractionID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "attractionID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction ID")
		return
	}

	a, err := h.attractionService.GetAttraction(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get attraction")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, a)
}

func (h *HandlerImpl) CreateAttraction(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AttractionHandler").Start(r.Context(), "CreateAttraction", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/attractions"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertAttractionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.attractionService.CreateAttraction(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create attraction")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, a)
}

func (h *HandlerImpl) UpdateAttraction(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AttractionHandler").Start(r.Context(), "UpdateAttraction", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/attractions/{attractionID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "attractionID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction ID")
		return
	}

	var req UpsertAttractionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.attractionService.UpdateAttraction(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update attraction")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, a)
}

func (h *HandlerImpl) DeleteAttraction(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AttractionHandler").Start(r.Context(), "DeleteAttraction", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/attractions/{attractionID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "attractionID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction ID")
		return
	}

	if err := h.attractionService.DeleteAttraction(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete attraction")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
