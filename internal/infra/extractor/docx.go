package extractor

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	rxParagraphEnd = regexp.MustCompile(`</w:p>`)
	rxBreak        = regexp.MustCompile(`<w:(?:br|cr)\s*/>`)
	rxTab          = regexp.MustCompile(`<w:tab\s*/>`)
	rxTag          = regexp.MustCompile(`<[^>]+>`)
)

// extractDOCX returns the paragraph text of word/document.xml.
func extractDOCX(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	return paragraphText(doc.Editable().GetContent()), nil
}

// paragraphText reduces WordprocessingML to text, one line per paragraph.
func paragraphText(xml string) string {
	s := rxParagraphEnd.ReplaceAllString(xml, "\n")
	s = rxBreak.ReplaceAllString(s, "\n")
	s = rxTab.ReplaceAllString(s, "\t")
	s = rxTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimLeft(s, "\r\n")
}
