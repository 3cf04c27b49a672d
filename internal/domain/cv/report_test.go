package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullReport = `# 📄 Analisis CV Profesional

## 💼 Pekerjaan yang Cocok
- **Backend Engineer** ✅ - Pengalaman Go yang kuat
- **Site Reliability Engineer** ✅ - Terbiasa dengan infrastruktur

## 📊 Penilaian Detail
| Aspek | Skor | Komentar |
|-------|------|----------|
| Presentasi & Format | 80/100 | Rapi dan konsisten |
| Kejelasan Informasi | 78/100 | Jelas |
| Relevansi Pengalaman | 85/100 | Relevan |
| Keseimbangan Konten | 70/100 | Cukup |
| Penggunaan Kata Kunci | 65/100 | Tambah kata kunci |
| Dampak Keseluruhan | 77/100 | Baik |
| Kesesuaian Standar Industri | 74/100 | Sesuai |

## 🏆 Skor Keseluruhan: **76/100**

## 💪 Kekuatan
Pengalaman teknis yang solid.

## 🚧 Kelemahan
Kurang metrik pencapaian.

## 🚀 Tips Pencarian Kerja
Bangun jaringan di komunitas Go.
`

func TestParseReportFull(t *testing.T) {
	rep := ParseReport(fullReport)

	assert.Equal(t, 76, rep.OverallScore)
	require.Len(t, rep.Ratings, 7)
	assert.Equal(t, "presentasi_format", rep.Ratings[0].Key)
	assert.Equal(t, 80, rep.Ratings[0].Score)
	assert.Equal(t, "Rapi dan konsisten", rep.Ratings[0].Comment)
	assert.Equal(t, "kesesuaian_standar_industri", rep.Ratings[6].Key)
	assert.Equal(t, 74, rep.Ratings[6].Score)

	require.Len(t, rep.JobMatches, 2)
	assert.Equal(t, "Backend Engineer", rep.JobMatches[0].Position)
	assert.Equal(t, "Pengalaman Go yang kuat", rep.JobMatches[0].Reason)

	assert.Equal(t, "Pengalaman teknis yang solid.", rep.Advice.Strengths)
	assert.Equal(t, "Kurang metrik pencapaian.", rep.Advice.Weaknesses)
	assert.Equal(t, "Bangun jaringan di komunitas Go.", rep.Advice.JobSearch)
	assert.False(t, rep.Partial)
}

func TestParseReportDefaults(t *testing.T) {
	rep := ParseReport("Maaf, kami tidak dapat menganalisis CV Anda saat ini.")

	assert.Equal(t, 75, rep.OverallScore)
	require.Len(t, rep.Ratings, 7)
	for _, r := range rep.Ratings {
		assert.Equal(t, 75, r.Score)
		assert.NotEmpty(t, r.Comment)
	}
	assert.Empty(t, rep.JobMatches)
	assert.NotEmpty(t, rep.Advice.Strengths)
	assert.True(t, rep.Partial)
}

func TestParseReportIgnoresOutOfRangeScores(t *testing.T) {
	rep := ParseReport("| Presentasi & Format | 180/100 | aneh |\nSkor Keseluruhan: 250/100")
	assert.Equal(t, 75, rep.OverallScore)
	assert.Equal(t, 75, rep.Ratings[0].Score)
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("PDF")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)

	f, ok = FormatOf("cv.final.DocX")
	assert.True(t, ok)
	assert.Equal(t, FormatDOCX, f)

	_, ok = FormatOf("notes.txt")
	assert.False(t, ok)
	_, ok = FormatOf("noext")
	assert.False(t, ok)
}
