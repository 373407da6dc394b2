package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/models"
)

// ocrFallbackThreshold is the minimum number of non-whitespace characters a
// native PDF text layer must yield before OCR is skipped.
const ocrFallbackThreshold = 100

// ExtractorService converts uploaded files into normalized plain text.
type ExtractorService interface {
	Extract(filename string, content []byte) (*models.NormalizedDocument, error)
}

type extractorService struct {
	ocr    OCRService
	logger *zap.Logger
}

func NewExtractorService(ocr OCRService, logger *zap.Logger) ExtractorService {
	return &extractorService{ocr: ocr, logger: logger}
}

func (s *extractorService) Extract(filename string, content []byte) (*models.NormalizedDocument, error) {
	if len(content) == 0 {
		return nil, models.ErrEmptyInput
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return s.extractPDF(content)
	case ".docx":
		return s.extractDOCX(content)
	case ".txt":
		return s.extractTXT(content)
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func (s *extractorService) extractPDF(content []byte) (*models.NormalizedDocument, error) {
	text, pages, err := readPDFText(content)
	if err != nil {
		s.logger.Warn("pdf text layer unreadable, trying ocr", zap.Error(err))
		text, pages = "", 0
	}

	// OCR failures are swallowed: the native text, even when empty, still
	// produces a document.
	if strippedLen(text) < ocrFallbackThreshold && s.ocr != nil {
		ocrText, ocrErr := s.ocr.Recognize(content)
		if ocrErr != nil {
			s.logger.Warn("ocr fallback failed", zap.Error(ocrErr))
		} else if strippedLen(ocrText) > strippedLen(text) {
			text = ocrText
		}
	}

	return &models.NormalizedDocument{
		Text:      normalizeText(text),
		Format:    models.FormatPDF,
		PageCount: pages,
	}, nil
}

func readPDFText(content []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), pages, nil
}

// docx XML structure, paragraphs inside the body first, then tables. Word
// stores the main content in word/document.xml.
type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
	Tables     []docxTable     `xml:"tbl"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Texts []string `xml:"t"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paragraphs []docxParagraph `xml:"p"`
}

func (p docxParagraph) text() string {
	var sb strings.Builder
	for _, run := range p.Runs {
		for _, t := range run.Texts {
			sb.WriteString(t)
		}
	}
	return sb.String()
}

func (s *extractorService) extractDOCX(content []byte) (*models.NormalizedDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid DOCX archive", models.ErrDecode)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open document.xml: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read document.xml: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return nil, fmt.Errorf("%w: missing word/document.xml", models.ErrDecode)
	}

	var doc docxDocument
	if err := xml.Unmarshal(docXML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document.xml: %w", err)
	}

	lines := []string{}
	for _, p := range doc.Body.Paragraphs {
		if t := p.text(); strings.TrimSpace(t) != "" {
			lines = append(lines, t)
		}
	}
	// Table cells are space-joined within a row, one line per row.
	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			cells := []string{}
			for _, cell := range row.Cells {
				parts := []string{}
				for _, p := range cell.Paragraphs {
					if t := p.text(); strings.TrimSpace(t) != "" {
						parts = append(parts, t)
					}
				}
				if len(parts) > 0 {
					cells = append(cells, strings.Join(parts, "\n"))
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " "))
			}
		}
	}

	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no extractable text in DOCX", models.ErrDecode)
	}

	return &models.NormalizedDocument{
		Text:      normalizeText(text),
		Format:    models.FormatDOCX,
		PageCount: len(lines),
	}, nil
}

func (s *extractorService) extractTXT(content []byte) (*models.NormalizedDocument, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: invalid UTF-8", models.ErrDecode)
	}

	// Plain text passes through verbatim, no normalization.
	text := string(content)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: file contains no text", models.ErrDecode)
	}

	return &models.NormalizedDocument{
		Text:      text,
		Format:    models.FormatTXT,
		PageCount: len(strings.Split(text, "\n")),
	}, nil
}

// normalizeText strips carriage returns and trailing whitespace per line.
// Applied to PDF and DOCX output only; TXT content stays verbatim.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func strippedLen(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			n++
		}
	}
	return n
}
