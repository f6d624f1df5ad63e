package hotel

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
	ListHotels(w http.ResponseWriter, r *http.Request)
	GetHotel(w http.ResponseWriter, r *http.Request)
	CreateHotel(w http.ResponseWriter, r *http.Request)
	UpdateHotel(w http.ResponseWriter, r *http.Request)
	DeleteHotel(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	hotelService Service
	logger       *slog.Logger
}

func NewHandlerImpl(hotelService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{hotelService: hotelService, logger: logger}
}

func (h *HandlerImpl) ListHotels(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "ListHotels", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels"),
	))
	defer span.End()

	// Optional name filter
	if name := r.URL.Query().Get("name"); name != "" {
		hotels, err := h.hotelService.SearchHotels(ctx, name)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to search hotels")
			api.HandleError(w, r, err)
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, hotels)
		return
	}

	hotels, err := h.hotelService.ListHotels(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list hotels")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, hotels)
}

func (h *HandlerImpl) GetHotel(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "GetHotel", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/{hotelID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "hotelID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid hotel ID")
		return
	}

	hotel, err := h.hotelService.GetHotel(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get hotel")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, hotel)
}

func (h *HandlerImpl) CreateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "CreateHotel", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertHotelRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hotel, err := h.hotelService.CreateHotel(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create hotel")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, hotel)
}

func (h *HandlerImpl) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "UpdateHotel", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/{hotelID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "hotelID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid hotel ID")
		return
	}

	var req UpsertHotelRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hotel, err := h.hotelService.UpdateHotel(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update hotel")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, hotel)
}

func (h *HandlerImpl) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "DeleteHotel", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/{hotelID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "hotelID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid hotel ID")
		return
	}

	if err := h.hotelService.DeleteHotel(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete hotel")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
