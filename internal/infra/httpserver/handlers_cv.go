package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	appcv "github.com/agung037/cv-processor/internal/application/cv"
	"github.com/agung037/cv-processor/internal/domain/cv"
	"github.com/agung037/cv-processor/internal/middleware"
)

const (
	uploadField     = "cv_file"
	multipartMemory = 8 << 20
)

// POST /api/cv/analyze (multipart, field cv_file)
// Errors past validation are answered as {"error": "Error memproses file: ...", "advice": null}.
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, rt.opts.MaxUploadBytes)

	cmd := appcv.AnalyzeCommand{UserID: currentUser(req).ID}
	if err := req.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Ukuran file melebihi batas %dMB", rt.opts.MaxUploadBytes>>20))
			return
		}
		// not multipart, or no parts at all: same as no file
	} else {
		defer req.MultipartForm.RemoveAll()
		if f, hdr, err := req.FormFile(uploadField); err == nil {
			defer f.Close()
			cmd.Upload = cv.AnalysisRequest{
				Filename: middleware.SanitizeFilename(hdr.Filename),
				Size:     hdr.Size,
				Body:     f,
			}
		}
	}

	res, err := rt.svc.CV.Analyze(req.Context(), cmd)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"advice":    res.Advice,
			"historyId": res.HistoryID,
		})
	case errors.Is(err, cv.ErrNoFile):
		middleware.WriteError(w, http.StatusBadRequest, "Tidak ada file yang dipilih")
	case errors.Is(err, cv.ErrUnsupportedFormat):
		middleware.WriteError(w, http.StatusBadRequest, "Hanya file DOCX dan PDF yang didukung")
	default:
		rt.log.Error("processing cv failed",
			zap.Int64("user_id", cmd.UserID),
			zap.String("file", cmd.Upload.Filename),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  "Error memproses file: " + err.Error(),
			"advice": nil,
		})
	}
}
