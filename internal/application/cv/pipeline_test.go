package cv

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agung037/cv-processor/internal/application"
	domain "github.com/agung037/cv-processor/internal/domain/cv"
	"github.com/agung037/cv-processor/internal/infra/ai/openai"
	"github.com/agung037/cv-processor/internal/infra/ai/prompt"
	"github.com/agung037/cv-processor/internal/infra/extractor"
	"github.com/agung037/cv-processor/internal/infra/storage"
)

const pipelineLine = "Experienced backend engineer"

// pdfUpload renders a one-line PDF and opens it as an upload body
func pdfUpload(t *testing.T) *os.File {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(40, 10, pipelineLine)
	path := filepath.Join(t.TempDir(), "source.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

type llmStub struct {
	status int
	body   string
	prompt string
}

func (s *llmStub) serve(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if json.NewDecoder(r.Body).Decode(&req) == nil && len(req.Messages) > 0 {
			s.prompt = req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newPipeline(t *testing.T, llmURL string) (*Service, *fakeHistory, *recordingObserver, string) {
	t.Helper()
	dir := t.TempDir()
	uploads, err := storage.NewUploadDir(dir)
	require.NoError(t, err)

	hist := &fakeHistory{}
	obs := &recordingObserver{}
	return &Service{
		Store:         uploads,
		Extractor:     extractor.New(nil),
		Advisor:       openai.NewClient(openai.Options{BaseURL: llmURL, APIKey: "k"}, nil),
		History:       hist,
		Observer:      obs,
		Clock:         application.FixedClock(now),
		RetainUploads: true,
	}, hist, obs, dir
}

func TestPipelineGeneratesAdviceFromRealPDF(t *testing.T) {
	content, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": "# 📄 Analisis CV Profesional\n\nBagus"}, "finish_reason": "stop"}},
	})
	stub := &llmStub{status: http.StatusOK, body: string(content)}
	svc, hist, obs, dir := newPipeline(t, stub.serve(t))

	res, err := svc.Analyze(context.Background(), AnalyzeCommand{
		UserID: 7,
		Upload: domain.AnalysisRequest{Filename: "cv.pdf", Body: pdfUpload(t)},
	})
	require.NoError(t, err)

	assert.Equal(t, "# 📄 Analisis CV Profesional\n\nBagus", res.Advice.Markdown)
	assert.False(t, res.Advice.Fallback)
	assert.EqualValues(t, 1, res.HistoryID)
	assert.Contains(t, stub.prompt, pipelineLine)

	require.Len(t, hist.created, 1)
	assert.FileExists(t, filepath.Join(dir, hist.created[0].StoredFilename))
	assert.Equal(t, []string{OutcomeGenerated}, obs.outcomes)
}

func TestPipelineFallsBackWhenLLMFails(t *testing.T) {
	stub := &llmStub{status: http.StatusInternalServerError, body: `{"error":{"message":"upstream exploded","type":"server_error"}}`}
	svc, hist, obs, _ := newPipeline(t, stub.serve(t))

	res, err := svc.Analyze(context.Background(), AnalyzeCommand{
		UserID: 7,
		Upload: domain.AnalysisRequest{Filename: "cv.pdf", Body: pdfUpload(t)},
	})
	require.NoError(t, err)

	assert.Equal(t, prompt.FallbackMarkdown, res.Advice.Markdown)
	assert.True(t, res.Advice.Fallback)
	assert.EqualValues(t, 1, res.HistoryID)
	assert.Contains(t, stub.prompt, pipelineLine)

	// history keeps the same {markdown} shape for the fallback document
	require.Len(t, hist.created, 1)
	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(hist.created[0].AnalysisResult), &stored))
	assert.Equal(t, map[string]any{"markdown": prompt.FallbackMarkdown}, stored)
	assert.Equal(t, []string{OutcomeFallback}, obs.outcomes)
}
