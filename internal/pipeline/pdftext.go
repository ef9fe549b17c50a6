package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ExtractPDFText returns the plain text of every readable page of a judgment
// attachment, pages separated by a blank line.
func ExtractPDFText(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		plain, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if plain = strings.TrimSpace(plain); plain != "" {
			pages = append(pages, plain)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}
