package httpserver

import (
	"encoding/json"
	"net/http"

	appauth "github.com/agung037/cv-processor/internal/application/auth"
)

// POST /api/auth/register
// Body: {"username","email","password"}
func (rt *Router) handleRegister(w http.ResponseWriter, req *http.Request) error {
	var body appauth.RegisterCommand
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("Username, email, dan password diperlukan.")
	}
	id, err := rt.svc.Auth.Register(req.Context(), body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Pendaftaran berhasil. Akun Anda akan diaktifkan oleh admin.",
		"userId":  id,
	})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var body appauth.LoginCommand
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("Username dan password diperlukan.")
	}
	res, err := rt.svc.Auth.Login(req.Context(), body)
	if err != nil {
		return err
	}

	http.SetCookie(w, sessionCookie(res.Token, rt.svc.Auth.Tokens.TTL(), rt.opts.SecureCookies))
	return writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login berhasil",
		"user": map[string]any{
			"id":       res.User.ID,
			"username": res.User.Username,
			"email":    res.User.Email,
			"role":     res.User.Role,
		},
		"token": res.Token,
	})
}

// POST /api/auth/logout
func (rt *Router) handleLogout(w http.ResponseWriter, _ *http.Request) error {
	http.SetCookie(w, sessionCookie("", 0, rt.opts.SecureCookies))
	return writeJSON(w, http.StatusOK, map[string]any{"message": "Logout berhasil"})
}

// GET /api/auth/me
func (rt *Router) handleMe(w http.ResponseWriter, req *http.Request) error {
	u, err := rt.svc.Auth.Me(req.Context(), currentUser(req).ID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"user": u})
}
