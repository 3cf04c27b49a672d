package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appadmin "github.com/agung037/cv-processor/internal/application/admin"
	appauth "github.com/agung037/cv-processor/internal/application/auth"
	appcv "github.com/agung037/cv-processor/internal/application/cv"
	apphistory "github.com/agung037/cv-processor/internal/application/history"
	"github.com/agung037/cv-processor/internal/domain/history"
	"github.com/agung037/cv-processor/internal/domain/users"
	"github.com/agung037/cv-processor/internal/logger"
	"github.com/agung037/cv-processor/internal/middleware"
)

const defaultMaxUpload = 20 << 20

type Services struct {
	Auth    *appauth.Service
	Admin   *appadmin.Service
	CV      *appcv.Service
	History *apphistory.Service
}

type Options struct {
	Logger         *zap.Logger
	Metrics        *middleware.Metrics // optional
	HealthCheckers map[string]middleware.HealthChecker
	AllowedOrigins []string
	SecureCookies  bool
	MaxUploadBytes int64
}

type Router struct {
	svc  Services
	opts Options
	log  *zap.Logger
}

func NewRouter(svc Services, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUpload
	}
	rt := &Router{svc: svc, opts: opts, log: logger.OrNop(opts.Logger)}
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.Logging(rt.log))
	mux.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		mux.Use(opts.Metrics.Middleware)
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/ready", middleware.ReadinessHandler(opts.HealthCheckers))
	mux.Get("/live", middleware.LivenessHandler)

	authn := middleware.Authenticate(svc.Auth, rt.log)

	mux.Route("/api", func(api chi.Router) {
		api.Get("/status", middleware.StatusHandler)

		api.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.wrap(rt.handleRegister, "Terjadi kesalahan saat mendaftar."))
			r.Post("/login", rt.wrap(rt.handleLogin, "Terjadi kesalahan saat login."))
			r.Post("/logout", rt.wrap(rt.handleLogout, "Terjadi kesalahan saat logout."))
			r.With(authn).Get("/me", rt.wrap(rt.handleMe, "Terjadi kesalahan saat mengambil data pengguna."))
		})

		api.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/cv/analyze", rt.handleAnalyze)

			r.Get("/history", rt.wrap(rt.handleHistoryList, "Terjadi kesalahan saat mengambil riwayat CV."))
			r.Get("/history/{id}", rt.wrap(rt.handleHistoryGet, "Terjadi kesalahan saat mengambil detail riwayat CV."))
			r.Get("/history/{id}/html", rt.wrap(rt.handleHistoryHTML, "Terjadi kesalahan saat menampilkan riwayat CV."))
			r.Delete("/history/{id}", rt.wrap(rt.handleHistoryDelete, "Terjadi kesalahan saat menghapus riwayat CV."))
		})

		api.Route("/admin", func(r chi.Router) {
			r.Use(authn, middleware.RequireRole(users.RoleAdmin))
			r.Get("/users", rt.wrap(rt.handleAdminUsers, "Terjadi kesalahan saat mengambil data pengguna."))
			r.Put("/users/{id}/status", rt.wrap(rt.handleAdminStatus, "Terjadi kesalahan saat mengubah status pengguna."))
			r.Delete("/users/{id}", rt.wrap(rt.handleAdminDelete, "Terjadi kesalahan saat menghapus pengguna."))
		})
	})

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Endpoint tidak ditemukan.")
	})
	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// httpError is returned by handlers that already know the response
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(msg string) error { return &httpError{status: http.StatusBadRequest, msg: msg} }

// wrap maps handler errors to status codes; internalMsg is shown for 500s
func (rt *Router) wrap(h handlerFunc, internalMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		status, msg := errorResponse(err)
		if status == http.StatusInternalServerError {
			msg = internalMsg
			rt.log.Error("request failed",
				zap.String("path", req.URL.Path),
				zap.String("request_id", chimw.GetReqID(req.Context())),
				zap.Error(err),
			)
		}
		middleware.WriteError(w, status, msg)
	}
}

func errorResponse(err error) (int, string) {
	var he *httpError
	var ve *appauth.ValidationError
	switch {
	case errors.As(err, &he):
		return he.status, he.msg
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, users.ErrConflict):
		return http.StatusConflict, "Username atau email sudah terdaftar."
	case errors.Is(err, users.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Username atau password tidak valid."
	case errors.Is(err, users.ErrInactive):
		return http.StatusForbidden, "Akun belum diaktifkan oleh admin."
	case errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound, "Pengguna tidak ditemukan."
	case errors.Is(err, users.ErrProtected):
		return http.StatusForbidden, "Tidak dapat mengubah admin."
	case errors.Is(err, history.ErrNotFound):
		return http.StatusNotFound, "Riwayat CV tidak ditemukan."
	default:
		return http.StatusInternalServerError, ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// currentUser is set by middleware.Authenticate on every protected route
func currentUser(req *http.Request) *users.User {
	u, _ := middleware.UserFromContext(req.Context())
	return u
}

func pathID(req *http.Request) (int64, error) {
	return middleware.ParseID(chi.URLParam(req, "id"))
}

func sessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		return c
	}
	c.MaxAge = int(ttl.Seconds())
	c.Expires = time.Now().Add(ttl)
	return c
}
