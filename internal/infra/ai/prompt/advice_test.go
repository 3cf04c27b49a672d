package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAdvicePromptEmbedsText(t *testing.T) {
	p := BuildAdvicePrompt("Experienced backend engineer with 8 years of Go")

	assert.Contains(t, p, "TEKS CV:\nExperienced backend engineer with 8 years of Go\n")
	for _, heading := range []string{
		"## 📋 Struktur",
		"## 💼 Pekerjaan yang Cocok",
		"## 🔍 Area Perbaikan",
		"## 📊 Penilaian Detail",
		"| Aspek | Skor | Komentar |",
		"## 🏆 Skor Keseluruhan",
		"### 💪 Kekuatan",
		"### 🚧 Kelemahan",
		"### 🚀 Tips Pencarian Kerja",
	} {
		assert.Contains(t, p, heading)
	}
}

func TestBuildAdvicePromptScoreTableHasSevenRows(t *testing.T) {
	p := BuildAdvicePrompt("cv")
	assert.Equal(t, 7, strings.Count(p, "| 80/100 |"))
}

func TestBuildAdvicePromptIsDeterministic(t *testing.T) {
	assert.Equal(t, BuildAdvicePrompt("same input"), BuildAdvicePrompt("same input"))
}

func TestBuildAdvicePromptTruncationBoundary(t *testing.T) {
	exact := strings.Repeat("a", MaxCVChars)
	over := exact + "Z"

	pExact := BuildAdvicePrompt(exact)
	pOver := BuildAdvicePrompt(over)

	assert.Equal(t, pExact, pOver)
	assert.NotContains(t, pOver, "Z")
	assert.Contains(t, pExact, exact)
}

func TestBuildAdvicePromptEmptyText(t *testing.T) {
	p := BuildAdvicePrompt("")
	assert.Contains(t, p, "TEKS CV:\n\n")
}

func TestTruncateCountsRunes(t *testing.T) {
	s := strings.Repeat("é", 10)
	got := Truncate(s, 4)
	require.Equal(t, "éééé", got)
	assert.Equal(t, s, Truncate(s, 10))
	assert.Equal(t, s, Truncate(s, 11))
	assert.Equal(t, "", Truncate(s, 0))
}

func TestFallbackMarkdownApologizes(t *testing.T) {
	assert.Contains(t, FallbackMarkdown, "Maaf, kami tidak dapat menganalisis CV Anda")
	assert.NotEmpty(t, strings.TrimSpace(FallbackMarkdown))
}
