package services

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// OCRService recognizes text in scanned PDFs. Implementations may require
// native dependencies, so the extractor treats a nil service as "OCR
// unavailable" rather than an error.
type OCRService interface {
	Recognize(pdfContent []byte) (string, error)
}

type ocrService struct {
	logger *zap.Logger
}

func NewOCRService(logger *zap.Logger) OCRService {
	return &ocrService{logger: logger}
}

// Recognize rasterizes each page, converts it to grayscale and runs
// Tesseract over the result. Pages that fail to render or recognize are
// skipped so one bad page does not lose the rest of the document.
func (s *ocrService) Recognize(pdfContent []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfContent)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF for OCR: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			s.logger.Warn("failed to rasterize page", zap.Int("page", i), zap.Error(err))
			continue
		}

		encoded, err := encodeGrayPNG(img)
		if err != nil {
			s.logger.Warn("failed to encode page image", zap.Int("page", i), zap.Error(err))
			continue
		}

		if err := client.SetImageFromBytes(encoded); err != nil {
			s.logger.Warn("failed to load page into tesseract", zap.Int("page", i), zap.Error(err))
			continue
		}
		text, err := client.Text()
		if err != nil {
			s.logger.Warn("tesseract failed on page", zap.Int("page", i), zap.Error(err))
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// encodeGrayPNG converts the page image to grayscale before recognition.
// Tesseract is noticeably more accurate on gray input than on raw RGB scans.
func encodeGrayPNG(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
