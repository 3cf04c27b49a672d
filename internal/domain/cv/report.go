package cv

import (
	"regexp"
	"strconv"
	"strings"
)

// Report is a best-effort structured view of an advice markdown document.
// Missing parts are filled with defaults, parsing never fails.
type Report struct {
	OverallScore int          `json:"overall_score"`
	Ratings      []Rating     `json:"ratings"`
	JobMatches   []JobMatch   `json:"job_matches"`
	Advice       PersonalTips `json:"personal_advice"`
	Partial      bool         `json:"partial"`
}

type Rating struct {
	Key     string `json:"key"`
	Aspect  string `json:"aspect"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

type JobMatch struct {
	Position string `json:"position"`
	Reason   string `json:"reason"`
}

type PersonalTips struct {
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
	JobSearch  string `json:"job_search"`
}

const defaultScore = 75

// aspek penilaian, urutannya sama dengan tabel di prompt
var ratingAspects = []struct {
	key   string
	label string
}{
	{"presentasi_format", "Presentasi & Format"},
	{"kejelasan_informasi", "Kejelasan Informasi"},
	{"relevansi_pengalaman", "Relevansi Pengalaman"},
	{"keseimbangan_konten", "Keseimbangan Konten"},
	{"penggunaan_kata_kunci", "Penggunaan Kata Kunci"},
	{"dampak_keseluruhan", "Dampak Keseluruhan"},
	{"kesesuaian_standar_industri", "Kesesuaian Standar Industri"},
}

var (
	rxOverall  = regexp.MustCompile(`(?i)skor\s+keseluruhan\s*:?\s*\**\s*\[?\s*(\d{1,3})\s*\]?\s*/\s*100`)
	rxTableRow = regexp.MustCompile(`^\|\s*([^|]+?)\s*\|\s*\[?(\d{1,3})\]?\s*(?:/\s*100)?\s*\|\s*([^|]*?)\s*\|?\s*$`)
	rxJob      = regexp.MustCompile(`^[-*]\s+\*\*(.+?)\*\*\s*(?:✅)?\s*[:\-–]?\s*(.*)$`)
	rxHeading  = regexp.MustCompile(`^(#{2,3})\s+(.*)$`)
	rxKeyClean = regexp.MustCompile(`[^a-z0-9_]`)
)

// ParseReport reads the sections the advice prompt asks for out of markdown.
func ParseReport(markdown string) Report {
	rep := Report{OverallScore: defaultScore}
	found := 0

	if m := rxOverall.FindStringSubmatch(markdown); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n <= 100 {
			rep.OverallScore = n
			found++
		}
	}

	rows := map[string]Rating{}
	sections := map[string][]string{}
	current := ""
	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimSpace(raw)
		if h := rxHeading.FindStringSubmatch(line); h != nil {
			current = sectionOf(h[2])
			continue
		}
		if m := rxTableRow.FindStringSubmatch(line); m != nil {
			score, err := strconv.Atoi(m[2])
			if err != nil || score > 100 {
				continue
			}
			key := ratingKey(m[1])
			rows[key] = Rating{Key: key, Aspect: m[1], Score: score, Comment: m[3]}
			continue
		}
		if current == "" || line == "" {
			continue
		}
		sections[current] = append(sections[current], line)
	}

	for _, a := range ratingAspects {
		if r, ok := rows[a.key]; ok {
			rep.Ratings = append(rep.Ratings, r)
			found++
			continue
		}
		rep.Ratings = append(rep.Ratings, Rating{
			Key:     a.key,
			Aspect:  a.label,
			Score:   defaultScore,
			Comment: "Penilaian untuk " + a.label,
		})
	}

	for _, line := range sections["jobs"] {
		if m := rxJob.FindStringSubmatch(line); m != nil {
			rep.JobMatches = append(rep.JobMatches, JobMatch{
				Position: strings.TrimSpace(m[1]),
				Reason:   strings.TrimSpace(m[2]),
			})
		}
	}
	if len(rep.JobMatches) > 0 {
		found++
	}

	rep.Advice = PersonalTips{
		Strengths:  joinOr(sections["strengths"], "CV menunjukkan beberapa kekuatan yang dapat dimanfaatkan dalam pencarian kerja"),
		Weaknesses: joinOr(sections["weaknesses"], "Terdapat beberapa area yang dapat ditingkatkan untuk memaksimalkan peluang kerja"),
		JobSearch:  joinOr(sections["tips"], "Sesuaikan CV dengan posisi yang dilamar dan gunakan jaringan profesional untuk mendapatkan referensi"),
	}
	for _, k := range []string{"strengths", "weaknesses", "tips"} {
		if len(sections[k]) > 0 {
			found++
		}
	}

	rep.Partial = found < 1+len(ratingAspects)+4
	return rep
}

func sectionOf(heading string) string {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "pekerjaan yang cocok"):
		return "jobs"
	case strings.Contains(h, "kekuatan"):
		return "strengths"
	case strings.Contains(h, "kelemahan"):
		return "weaknesses"
	case strings.Contains(h, "tips"):
		return "tips"
	default:
		return ""
	}
}

func ratingKey(aspect string) string {
	k := strings.ToLower(strings.TrimSpace(aspect))
	k = strings.ReplaceAll(k, "&", "")
	k = strings.Join(strings.Fields(k), "_")
	return rxKeyClean.ReplaceAllString(k, "")
}

func joinOr(lines []string, def string) string {
	if len(lines) == 0 {
		return def
	}
	return strings.Join(lines, " ")
}
