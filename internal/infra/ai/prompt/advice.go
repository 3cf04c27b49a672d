package prompt

import (
	"fmt"
)

// MaxCVChars batas karakter teks CV yang dikirim ke model
const MaxCVChars = 2500

// FallbackMarkdown is returned to the user when the advice call fails.
const FallbackMarkdown = `# 📄 Analisis CV Profesional

## ⚠️ Analisis Tidak Tersedia

Maaf, kami tidak dapat menganalisis CV Anda saat ini karena masalah teknis. Silakan coba lagi nanti.

### Langkah Selanjutnya
- 🔄 Periksa koneksi internet Anda
- 📁 Pastikan CV Anda dalam format yang didukung (PDF atau DOCX)
- ⏱️ Coba lagi dalam beberapa saat
`

const adviceTemplate = `Anda adalah konsultan profesional CV/resume. Di bawah ini ada teks CV. Tolong analisis dan berikan saran profesional dan mendalam tentang CV tersebut dalam format markdown yang terstruktur. PENTING: Berikan SELURUH respons dalam Bahasa Indonesia saja dan gunakan emoji yang relevan untuk membuat hasil analisis lebih menarik dan mudah dibaca.

TEKS CV:
%s

Berikan analisis komprehensif dengan format berikut:

# 📄 Analisis CV Profesional

## 📋 Struktur
[Analisis lengkap tentang struktur CV, termasuk format, organisasi informasi, dan kelengkapan komponen standar CV]

## 💼 Pekerjaan yang Cocok
- **[Nama Posisi 1]** ✅ [Alasan posisi ini cocok berdasarkan pengalaman dan keterampilan]
- **[Nama Posisi 2]** ✅ [Alasan posisi ini cocok berdasarkan pengalaman dan keterampilan]
- **[Nama Posisi 3]** ✅ [Alasan posisi ini cocok berdasarkan pengalaman dan keterampilan]
- **[Nama Posisi 4]** ✅ [Alasan posisi ini cocok berdasarkan pengalaman dan keterampilan]
- **[Nama Posisi 5]** ✅ [Alasan posisi ini cocok berdasarkan pengalaman dan keterampilan]

## 🔍 Area Perbaikan
### 🔸 [Area 1]
**Detail**: [Penjelasan detail tentang apa yang perlu diperbaiki]
**Saran**: [Saran spesifik untuk perbaikan]

### 🔸 [Area 2]
**Detail**: [Penjelasan detail tentang apa yang perlu diperbaiki]
**Saran**: [Saran spesifik untuk perbaikan]

### 🔸 [Area 3]
**Detail**: [Penjelasan detail tentang apa yang perlu diperbaiki]
**Saran**: [Saran spesifik untuk perbaikan]

## 📊 Penilaian Detail
PENTING: Gunakan format tabel markdown yang tepat seperti berikut, dengan pipe (|) sebagai pemisah kolom dan header yang dipisahkan dengan garis. Pastikan tabel mudah dibaca.

| Aspek | Skor | Komentar |
|-------|------|----------|
| Presentasi & Format | 80/100 | [Komentar singkat] |
| Kejelasan Informasi | 80/100 | [Komentar singkat] |
| Relevansi Pengalaman | 80/100 | [Komentar singkat] |
| Keseimbangan Konten | 80/100 | [Komentar singkat] |
| Penggunaan Kata Kunci | 80/100 | [Komentar singkat] |
| Dampak Keseluruhan | 80/100 | [Komentar singkat] |
| Kesesuaian Standar Industri | 80/100 | [Komentar singkat] |

## 🏆 Skor Keseluruhan: [85]/100
[Deskripsi kekuatan utama CV ini]

## 👨‍💼 Nasehat Personal

### 💪 Kekuatan
[Ringkasan kekuatan utama dari CV ini]

### 🚧 Kelemahan
[Ringkasan kelemahan utama dari CV ini]

### 🚀 Tips Pencarian Kerja
[Tips konkret untuk mencari pekerjaan di sektor yang paling cocok berdasarkan analisis CV]

Pastikan format markdown yang digunakan mudah dibaca dan terstruktur dengan baik. Gunakan elemen markdown seperti heading, list, bold, italic, dan tabel untuk meningkatkan keterbacaan. SELURUH RESPONS HARUS DALAM BAHASA INDONESIA DAN GUNAKAN EMOJI SECARA KONSISTEN.`

// BuildAdvicePrompt embeds the first MaxCVChars characters of the CV text
// into the advice template.
func BuildAdvicePrompt(cvText string) string {
	return fmt.Sprintf(adviceTemplate, Truncate(cvText, MaxCVChars))
}

// Truncate keeps at most n characters (runes) of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
