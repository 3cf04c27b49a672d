package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agung037/cv-processor/internal/domain/users"
)

// GET /api/admin/users
func (rt *Router) handleAdminUsers(w http.ResponseWriter, req *http.Request) error {
	list, err := rt.svc.Admin.ListUsers(req.Context(), currentUser(req).ID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"users": list})
}

// PUT /api/admin/users/{id}/status
// Body: {"is_active": true|false}
func (rt *Router) handleAdminStatus(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return badRequest("ID pengguna tidak valid.")
	}
	var body struct {
		IsActive json.RawMessage `json:"is_active"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("Status aktivasi harus berupa boolean.")
	}
	var active bool
	raw := string(body.IsActive)
	if raw == "" || raw == "null" || json.Unmarshal(body.IsActive, &active) != nil {
		return badRequest("Status aktivasi harus berupa boolean.")
	}

	if err := rt.svc.Admin.SetActive(req.Context(), id, active); err != nil {
		if errors.Is(err, users.ErrProtected) {
			return &httpError{status: http.StatusForbidden, msg: "Tidak dapat mengubah status admin."}
		}
		return err
	}

	verb := "dinonaktifkan"
	if active {
		verb = "diaktifkan"
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Pengguna berhasil " + verb + ".",
		"userId":    id,
		"is_active": active,
	})
}

// DELETE /api/admin/users/{id}
func (rt *Router) handleAdminDelete(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return badRequest("ID pengguna tidak valid.")
	}
	if err := rt.svc.Admin.Delete(req.Context(), id); err != nil {
		if errors.Is(err, users.ErrProtected) {
			return &httpError{status: http.StatusForbidden, msg: "Tidak dapat menghapus admin."}
		}
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"message": "Pengguna berhasil dihapus.",
		"userId":  id,
	})
}
