package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/models"
)

type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) Recognize(_ []byte) (string, error) {
	return f.text, f.err
}

func TestExtract_TXT(t *testing.T) {
	svc := NewExtractorService(nil, zap.NewNop())

	// Plain text must round-trip byte for byte, carriage returns and
	// trailing whitespace included.
	input := "John Smith\r\nPython developer  \r\n"
	doc, err := svc.Extract("cv.txt", []byte(input))

	require.NoError(t, err)
	assert.Equal(t, models.FormatTXT, doc.Format)
	assert.Equal(t, input, doc.Text)
}

func TestExtract_TXT_InvalidUTF8(t *testing.T) {
	svc := NewExtractorService(nil, zap.NewNop())

	_, err := svc.Extract("cv.txt", []byte{0xff, 0xfe, 0x41})

	assert.ErrorIs(t, err, models.ErrDecode)
}

func TestExtract_EmptyInput(t *testing.T) {
	svc := NewExtractorService(nil, zap.NewNop())

	_, err := svc.Extract("cv.pdf", nil)

	assert.ErrorIs(t, err, models.ErrEmptyInput)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	svc := NewExtractorService(nil, zap.NewNop())

	_, err := svc.Extract("cv.rtf", []byte("content"))

	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestExtract_ExtensionCaseInsensitive(t *testing.T) {
	svc := NewExtractorService(nil, zap.NewNop())

	doc, err := svc.Extract("CV.TXT", []byte("Jane Doe\nDesigner"))

	require.NoError(t, err)
	assert.Equal(t, models.FormatTXT, doc.Format)
}

func TestExtract_DOCX(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>John Smith</w:t></w:r></w:p>
    <w:p><w:r><w:t>Python </w:t></w:r><w:r><w:t>developer</w:t></w:r></w:p>
    <w:p><w:r><w:t></w:t></w:r></w:p>
    <w:tbl>
      <w:tr><w:tc><w:p><w:r><w:t>Skills: AWS</w:t></w:r></w:p></w:tc></w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>John</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

	svc := NewExtractorService(nil, zap.NewNop())

	doc, err := svc.Extract("cv.docx", buildDOCX(t, documentXML))

	require.NoError(t, err)
	assert.Equal(t, models.FormatDOCX, doc.Format)
	// Paragraphs first, then one line per table row with cells space-joined.
	assert.Equal(t, "John Smith\nPython developer\nSkills: AWS\nName John", doc.Text)
	assert.Equal(t, 4, doc.PageCount)
}

func TestExtract_DOCX_NotAZip(t *testing.T) {
	svc := NewExtractorService(nil, zap.NewNop())

	_, err := svc.Extract("cv.docx", []byte("plain text pretending to be docx"))

	assert.ErrorIs(t, err, models.ErrDecode)
}

func TestExtract_DOCX_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	svc := NewExtractorService(nil, zap.NewNop())

	_, err = svc.Extract("cv.docx", buf.Bytes())

	assert.ErrorIs(t, err, models.ErrDecode)
}

func TestExtractPDF_OCRFallback(t *testing.T) {
	// Not a parseable PDF, so the native pass yields nothing and the OCR
	// result wins.
	ocr := &fakeOCR{text: "Scanned CV text recognized by OCR engine, well over the length threshold for sure"}
	svc := &extractorService{ocr: ocr, logger: zap.NewNop()}

	doc, err := svc.extractPDF([]byte("%PDF-1.4 garbage"))

	require.NoError(t, err)
	assert.Equal(t, models.FormatPDF, doc.Format)
	assert.Contains(t, doc.Text, "Scanned CV text")
}

func TestExtractPDF_OCRFailureKeepsEmptyText(t *testing.T) {
	ocr := &fakeOCR{err: errors.New("tesseract not installed")}
	svc := &extractorService{ocr: ocr, logger: zap.NewNop()}

	doc, err := svc.extractPDF([]byte("%PDF-1.4 garbage"))

	require.NoError(t, err)
	assert.Equal(t, models.FormatPDF, doc.Format)
	assert.Empty(t, doc.Text)
}

func TestExtractPDF_NoOCRService(t *testing.T) {
	svc := &extractorService{ocr: nil, logger: zap.NewNop()}

	doc, err := svc.extractPDF([]byte("%PDF-1.4 garbage"))

	require.NoError(t, err)
	assert.Empty(t, doc.Text)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a\nb\nc", normalizeText("a \r\nb\t\rc\n\n"))
}

func TestStrippedLen(t *testing.T) {
	assert.Equal(t, 0, strippedLen(" \n\t\r "))
	assert.Equal(t, 5, strippedLen(" ab c\nd e "))
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
