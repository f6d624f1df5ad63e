package restaurant

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
	ListRestaurants(w http.ResponseWriter, r *http.Request)
	GetRestaurant(w http.ResponseWriter, r *http.Request)
	CreateRestaurant(w http.ResponseWriter, r *http.Request)
	UpdateRestaurant(w http.ResponseWriter, r *http.Request)
	DeleteRestaurant(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	restaurantService Service
	logger            *slog.Logger
}

func NewHandlerImpl(restaurantService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{restaurantService: restaurantService, logger: logger}
}

func (h *HandlerImpl) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "ListRestaurants", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/restaurants"),
	))
	defer span.End()

	if cuisine := r.URL.Query().Get("cuisine"); cuisine != "" {
		restaurants, err := h.restaurantService.ListRestaurantsByCuisine(ctx, cuisine)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to list restaurants by cuisine")
			api.HandleError(w, r, err)
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, restaurants)
		return
	}

	restaurants, err := h.restaurantService.ListRestaurants(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list restaurants")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, restaurants)
}

func (h *HandlerImpl) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "GetRestaurant", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/restaurants/{restaurantID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "restaurantID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	rest, err := h.restaurantService.GetRestaurant(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get restaurant")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, rest)
}

func (h *HandlerImpl) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "CreateRestaurant", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/restaurants"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertRestaurantRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rest, err := h.restaurantService.CreateRestaurant(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create restaurant")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, rest)
}

func (h *HandlerImpl) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "UpdateRestaurant", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/restaurants/{restaurantID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "restaurantID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	var req UpsertRestaurantRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rest, err := h.restaurantService.UpdateRestaurant(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update restaurant")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, rest)
}

func (h *HandlerImpl) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "DeleteRestaurant", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/restaurants/{restaurantID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "restaurantID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	if err := h.restaurantService.DeleteRestaurant(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete restaurant")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
