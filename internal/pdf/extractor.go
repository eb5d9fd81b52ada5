package pdf

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/ptmai/recallify/internal/errs"
	"github.com/rs/zerolog/log"
)

// Metadata holds the document information read from the PDF info dictionary.
type Metadata struct {
	Title       *string
	Author      *string
	CreatedDate *time.Time
	NumPages    int
}

// Result is the output of one extraction run. Content holds the text of the
// extracted pages joined by a blank line, in ascending page order.
type Result struct {
	Content        string
	PagesExtracted []int
	Metadata       Metadata
}

// Extractor reads text and metadata from PDF files. It is stateless and
// performs no writes.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract pulls the text of the requested pages (1-indexed; nil means all)
// plus document metadata from the PDF at filePath.
func (e *Extractor) Extract(filePath string, pages []int) (result *Result, err error) {
	if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
		return nil, fmt.Errorf("%w: PDF file not found: %s", errs.ErrNotFound, filePath)
	}

	// The underlying parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: failed to decode %s: %v", errs.ErrExtraction, filePath, r)
		}
	}()

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", errs.ErrExtraction, filePath, err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	selected, err := selectPages(pages, totalPages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrExtraction, err)
	}

	texts := make([]string, 0, len(selected))
	for _, pageNum := range selected {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, textErr := page.GetPlainText(nil)
		if textErr != nil {
			log.Warn().Err(textErr).Int("page", pageNum).Str("file", filePath).Msg("Page text extraction failed, treating page as empty")
			texts = append(texts, "")
			continue
		}
		texts = append(texts, strings.TrimSpace(text))
	}

	return &Result{
		Content:        strings.Join(texts, "\n\n"),
		PagesExtracted: selected,
		Metadata:       readMetadata(reader, totalPages),
	}, nil
}

// selectPages resolves the requested page set against the document size.
// Out-of-range numbers are dropped; the result is deduplicated and ascending
// regardless of input order. An all-invalid request is an error.
func selectPages(pages []int, totalPages int) ([]int, error) {
	if len(pages) == 0 {
		all := make([]int, totalPages)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	seen := make(map[int]bool)
	var selected []int
	for _, p := range pages {
		if p < 1 || p > totalPages || seen[p] {
			continue
		}
		seen[p] = true
		selected = append(selected, p)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no valid pages specified, document has %d pages", totalPages)
	}
	sort.Ints(selected)
	return selected, nil
}

func readMetadata(reader *pdf.Reader, totalPages int) Metadata {
	meta := Metadata{NumPages: totalPages}

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}
	if title := info.Key("Title").RawString(); title != "" {
		meta.Title = &title
	}
	if author := info.Key("Author").RawString(); author != "" {
		meta.Author = &author
	}
	if created := parsePDFDate(info.Key("CreationDate").RawString()); created != nil {
		meta.CreatedDate = created
	}
	return meta
}

// parsePDFDate decodes the "D:YYYYMMDDHHMMSS" encoding used in PDF info
// dictionaries. Anything unparseable yields nil rather than an error.
func parsePDFDate(raw string) *time.Time {
	s := strings.TrimPrefix(raw, "D:")
	if len(s) < 14 {
		return nil
	}
	s = s[:14]

	fields := make([]int, 0, 6)
	for _, span := range [][2]int{{0, 4}, {4, 6}, {6, 8}, {8, 10}, {10, 12}, {12, 14}} {
		n, err := strconv.Atoi(s[span[0]:span[1]])
		if err != nil {
			return nil
		}
		fields = append(fields, n)
	}

	t := time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], 0, time.UTC)
	if t.Year() != fields[0] || int(t.Month()) != fields[1] || t.Day() != fields[2] {
		// time.Date normalizes out-of-range components; reject those.
		return nil
	}
	return &t
}
