package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/tmendes/go-smartcity-services/app/observability/metrics"
	"github.com/tmendes/go-smartcity-services/internal/api"
)

type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		authService: authService,
	}
}

// Register handles POST /auth/register. The first user ever registered
// becomes ADMIN.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Register")
	defer span.End()
	start := time.Now()
	defer h.observe(ctx, "register", start)

	l := h.logger.With(slog.String("handler", "Register"))

	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid register payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authService.Register(ctx, req)
	if err != nil {
		l.WarnContext(ctx, "Registration failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "registration failed")
		h.countFailure(ctx, "register")
		api.HandleError(w, r, err)
		return
	}

	if m := metrics.Get(); m != nil {
		m.RegisterRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	}
	l.InfoContext(ctx, "Registration successful", slog.String("username", resp.Username))
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Login")
	defer span.End()
	start := time.Now()
	defer h.observe(ctx, "login", start)

	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid login payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authService.Login(ctx, req)
	if err != nil {
		// A single generic message regardless of whether the username
		// exists: enumeration stays impossible at the boundary too.
		l.WarnContext(ctx, "Login failed", slog.String("username", req.Username))
		span.SetStatus(codes.Error, "login failed")
		h.countFailure(ctx, "login")
		api.HandleError(w, r, err)
		return
	}

	if m := metrics.Get(); m != nil {
		m.LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// RefreshToken handles POST /auth/refresh-token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "RefreshToken")
	defer span.End()
	start := time.Now()
	defer h.observe(ctx, "refresh", start)

	l := h.logger.With(slog.String("handler", "RefreshToken"))

	var req RefreshTokenRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid refresh payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.RefreshToken == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "refreshToken is required")
		return
	}

	resp, err := h.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		// Expired, rotated-out and garbage tokens all collapse to the
		// same 401; NotFound for a vanished subject does too.
		l.WarnContext(ctx, "Token refresh rejected", slog.Any("error", err))
		span.SetStatus(codes.Error, "refresh rejected")
		h.countFailure(ctx, "refresh")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	if m := metrics.Get(); m != nil {
		m.TokenRefreshesTotal.Add(ctx, 1)
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Logout handles POST /auth/logout. The refresh token travels in the
// Authorization header rather than the body.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Logout")
	defer span.End()

	l := h.logger.With(slog.String("handler", "Logout"))

	authHeader := r.Header.Get("Authorization")
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		l.WarnContext(ctx, "Malformed Authorization header on logout")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Authorization header format must be Bearer {token}")
		return
	}

	if err := h.authService.Logout(ctx, headerParts[1]); err != nil {
		l.WarnContext(ctx, "Logout rejected", slog.Any("error", err))
		span.SetStatus(codes.Error, "logout rejected")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) observe(ctx context.Context, op string, start time.Time) {
	if m := metrics.Get(); m != nil {
		m.AuthDurationSeconds.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("operation", op)))
	}
}

func (h *AuthHandler) countFailure(ctx context.Context, op string) {
	if m := metrics.Get(); m != nil {
		m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}
