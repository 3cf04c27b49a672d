package httpserver

import (
	"net/http"
	"strconv"

	"github.com/agung037/cv-processor/internal/middleware"
)

// GET /api/history?page=&page_size=
func (rt *Router) handleHistoryList(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))

	list, err := rt.svc.History.List(req.Context(), currentUser(req).ID,
		middleware.ValidatePage(page), middleware.ValidateLimit(size))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /api/history/{id}
func (rt *Router) handleHistoryGet(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return badRequest("ID riwayat tidak valid.")
	}
	d, err := rt.svc.History.Get(req.Context(), currentUser(req).ID, id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"historyItem": d.Item,
		"analysis":    d.Analysis,
		"report":      d.Report,
	})
}

// GET /api/history/{id}/html
func (rt *Router) handleHistoryHTML(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return badRequest("ID riwayat tidak valid.")
	}
	page, err := rt.svc.History.RenderHTML(req.Context(), currentUser(req).ID, id)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = w.Write([]byte(page))
	return err
}

// DELETE /api/history/{id}
func (rt *Router) handleHistoryDelete(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req)
	if err != nil {
		return badRequest("ID riwayat tidak valid.")
	}
	if err := rt.svc.History.Delete(req.Context(), currentUser(req).ID, id); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"message": "Riwayat CV berhasil dihapus.",
		"id":      id,
	})
}
