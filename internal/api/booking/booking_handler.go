package booking

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
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	BookHotel(w http.ResponseWriter, r *http.Request)
	ListHotelBookings(w http.ResponseWriter, r *http.Request)
	CancelHotelBooking(w http.ResponseWriter, r *http.Request)

	ReserveRestaurant(w http.ResponseWriter, r *http.Request)
	ListRestaurantReservations(w http.ResponseWriter, r *http.Request)
	CancelRestaurantReservation(w http.ResponseWriter, r *http.Request)

	BookTheatre(w http.ResponseWriter, r *http.Request)
	ListTheatreBookings(w http.ResponseWriter, r *http.Request)
	CancelTheatreBooking(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	bookingService Service
	logger         *slog.Logger
}

func NewHandlerImpl(bookingService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{bookingService: bookingService, logger: logger}
}

func (h *HandlerImpl) BookHotel(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "BookHotel", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotel-bookings"),
	))
	defer span.End()

	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateHotelBookingRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.bookingService.BookHotel(ctx, user.ID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to book hotel")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, b)
}

func (h *HandlerImpl) ListHotelBookings(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "ListHotelBookings", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotel-bookings"),
	))
	defer span.End()

	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	bookings, err := h.bookingService.ListHotelBookings(ctx, user.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list hotel bookings")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, bookings)
}

func (h *HandlerImpl) CancelHotelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "CancelHotelBooking", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotel-bookings/{bookingID}"),
	))
	defer span.End()

	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "bookingID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	b, err := h.bookingService.CancelHotelBooking(ctx, user.ID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to cancel hotel booking")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, b)
}

func (h *HandlerImpl) ReserveRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "ReserveRestaurant", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/restaurant-reservations"),
	))
	defer span.End()

	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateRestaurantReservationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.bookingService.ReserveRestaurant(ctx, user.ID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to reserve restaurant")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, res)
}

func (h *HandlerImpl) ListRestaurantReservations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "ListRestaurantReservations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/restaurant-reservations"),
	))
	defer span.End()

	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	reservations, err := h.bookingService.ListRestaurantReservations(ctx, user.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list restaurant reservations")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, reservations)
}

func (h *HandlerImpl) CancelRestaurantReservation(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "CancelRestaurantReservation", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/restaurant-reservations/{reservationID}"),
	))
	defer span.End()

	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "reservationID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid reservation ID")
		return
	}

	res, err := h.bookingService.CancelRestaurantReservation(ctx, user.ID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to cancel restaurant reservation")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, res)
}

func (h *HandlerImpl) BookTheatre(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "BookTheatre", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/theatre-bookings"),
	))
	defer span.End()

	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTheatreBookingRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.bookingService.BookTheatre(ctx, user.ID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to book theatre")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, b)
}

func (h *HandlerImpl) ListTheatreBookings(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "ListTheatreBookings", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/theatre-bookings"),
	))
	defer span.End()

	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	bookings, err := h.bookingService.ListTheatreBookings(ctx, user.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list theatre bookings")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, bookings)
}

func (h *HandlerImpl) CancelTheatreBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "CancelTheatreBooking", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/theatre-bookings/{bookingID}"),
	))
	defer span.End()

	user, ok := auth.IdentityFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "bookingID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	b, err := h.bookingService.CancelTheatreBooking(ctx, user.ID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to cancel theatre booking")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, b)
}
