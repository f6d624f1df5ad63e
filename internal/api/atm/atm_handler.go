package atm

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
	ListATMs(w http.ResponseWriter, r *http.Request)
	GetATM(w http.ResponseWriter, r *http.Request)
	CreateATM(w http.ResponseWriter, r *http.Request)
	UpdateATM(w http.ResponseWriter, r *http.Request)
	DeleteATM(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	atmService Service
	logger     *slog.Logger
}

func NewHandlerImpl(atmService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{atmService: atmService, logger: logger}
}

func (h *HandlerImpl) ListATMs(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ATMHandler").Start(r.Context(), "ListATMs", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/atms"),
	))
	defer span.End()

	if bank := r.URL.Query().Get("bank"); bank != "" {
		atms, err := h.atmService.ListATMsByBank(ctx, bank)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to list atms by bank")
			api.HandleError(w, r, err)
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, atms)
		return
	}

	atms, err := h.atmService.ListATMs(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list atms")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, atms)
}

func (h *HandlerImpl) GetATM(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ATMHandler").Start(r.Context(), "GetATM", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/atms/{atmID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "atmID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid ATM ID")
		return
	}

	a, err := h.atmService.GetATM(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get atm")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, a)
}

func (h *HandlerImpl) CreateATM(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ATMHandler").Start(r.Context(), "CreateATM", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/atms"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertATMRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.atmService.CreateATM(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create atm")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, a)
}

func (h *HandlerImpl) UpdateATM(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ATMHandler").Start(r.Context(), "UpdateATM", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/atms/{atmID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "atmID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid ATM ID")
		return
	}

	var req UpsertATMRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.atmService.UpdateATM(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update atm")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, a)
}

func (h *HandlerImpl) DeleteATM(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ATMHandler").Start(r.Context(), "DeleteATM", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/atms/{atmID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "atmID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid ATM ID")
		return
	}

	if err := h.atmService.DeleteATM(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete atm")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
