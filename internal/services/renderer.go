package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/manojthapa/neuroarc/internal/models"
)

// RendererService turns a tailored CV into a downloadable PDF.
type RendererService interface {
	Render(cv *models.TailoredCV) ([]byte, error)
}

type rendererService struct{}

func NewRendererService() RendererService {
	return &rendererService{}
}

// Page geometry in points. A4 with 0.4 inch margins on every side.
const (
	pageMargin    = 28.8
	bodyFontSize  = 10
	bodyLineH     = 12
	bulletIndent  = 12
	sectionFontSz = 12
	titleFontSize = 24
)

type flowableKind int

const (
	flowTitle flowableKind = iota
	flowContact
	flowSection
	flowParagraph
	flowBullet
	flowSplitRow
	flowSpacer
)

// flowable is one renderable unit. Building the full list before touching
// the PDF keeps section ordering and omission logic separately testable
// from the drawing code.
type flowable struct {
	kind  flowableKind
	text  string
	right string  // split rows only
	style string  // "B", "I" or "" for the left/main text
	gap   float64 // spacers only
}

func (s *rendererService) Render(cv *models.TailoredCV) ([]byte, error) {
	flowables := buildFlowables(cv)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	usable := pageW - 2*pageMargin

	for _, f := range flowables {
		switch f.kind {
		case flowTitle:
			pdf.SetFont("Times", "B", titleFontSize)
			pdf.CellFormat(usable, 28, tr(f.text), "", 1, "C", false, 0, "")
			pdf.Ln(4)
		case flowContact:
			pdf.SetFont("Times", "", bodyFontSize)
			pdf.CellFormat(usable, bodyLineH, tr(f.text), "", 1, "C", false, 0, "")
		case flowSection:
			pdf.SetFont("Times", "B", sectionFontSz)
			pdf.CellFormat(usable, 14, tr(strings.ToUpper(f.text)), "", 1, "L", false, 0, "")
			y := pdf.GetY()
			pdf.SetLineWidth(0.5)
			pdf.Line(pageMargin, y, pageMargin+usable, y)
			pdf.Ln(4)
		case flowParagraph:
			pdf.SetFont("Times", f.style, bodyFontSize)
			pdf.MultiCell(usable, bodyLineH, tr(f.text), "", "L", false)
		case flowBullet:
			pdf.SetFont("Times", "", bodyFontSize)
			pdf.SetX(pageMargin + bulletIndent)
			pdf.MultiCell(usable-bulletIndent, bodyLineH, tr("- "+f.text), "", "L", false)
		case flowSplitRow:
			pdf.SetFont("Times", f.style, bodyFontSize)
			pdf.CellFormat(usable*0.75, bodyLineH, tr(f.text), "", 0, "L", false, 0, "")
			pdf.SetFont("Times", "", bodyFontSize)
			pdf.CellFormat(usable*0.25, bodyLineH, tr(f.right), "", 1, "R", false, 0, "")
		case flowSpacer:
			pdf.Ln(f.gap)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// buildFlowables lays out the CV in standard order. Sections without content
// are omitted entirely, and trailing spacers are dropped so a full last
// section cannot push an empty page.
func buildFlowables(cv *models.TailoredCV) []flowable {
	var out []flowable

	section := func(title string) {
		out = append(out, flowable{kind: flowSection, text: title})
	}
	spacer := func(gap float64) {
		out = append(out, flowable{kind: flowSpacer, gap: gap})
	}

	if cv.Header.Name != "" {
		out = append(out, flowable{kind: flowTitle, text: cv.Header.Name})

		parts := []string{}
		if cv.Header.Email != "" {
			parts = append(parts, cv.Header.Email)
		}
		if cv.Header.Phone != "" {
			parts = append(parts, cv.Header.Phone)
		}
		if cv.Header.Location != "" {
			parts = append(parts, cv.Header.Location)
		}
		if cv.Header.LinkedIn != "" {
			parts = append(parts, "LinkedIn")
		}
		if cv.Header.GitHub != "" {
			parts = append(parts, "GitHub")
		}
		out = append(out, flowable{kind: flowContact, text: strings.Join(parts, "  |  ")})
		spacer(8)
	}

	if cv.Summary != "" {
		section("Professional Summary")
		out = append(out, flowable{kind: flowParagraph, text: cv.Summary})
		spacer(6)
	}

	if len(cv.Education) > 0 {
		section("Education")
		for _, edu := range cv.Education {
			inst := edu.Institution
			if edu.Location != "" {
				inst += ", " + edu.Location
			}
			out = append(out, flowable{kind: flowParagraph, text: inst, style: "B"})
			out = append(out, flowable{kind: flowSplitRow, text: edu.Degree, right: edu.Dates, style: "I"})
			spacer(6)
		}
	}

	if len(cv.Skills) > 0 {
		section("Core Competencies")
		for _, category := range sortedKeys(cv.Skills) {
			list := cv.Skills[category]
			if len(list) == 0 {
				continue
			}
			label := titleCase(strings.ReplaceAll(category, "_", " "))
			out = append(out, flowable{
				kind: flowParagraph,
				text: fmt.Sprintf("%s: %s", label, strings.Join(list, ", ")),
			})
		}
		spacer(6)
	}

	if len(cv.Experience) > 0 {
		section("Professional Experience")
		for _, job := range cv.Experience {
			out = append(out, flowable{kind: flowSplitRow, text: job.Title, right: job.Dates, style: "B"})
			company := job.Company
			if job.Location != "" {
				company += " | " + job.Location
			}
			out = append(out, flowable{kind: flowParagraph, text: company})
			for _, bullet := range job.Bullets {
				out = append(out, flowable{kind: flowBullet, text: bullet})
			}
			spacer(8)
		}
	}

	if len(cv.Projects) > 0 {
		section("Projects")
		for _, proj := range cv.Projects {
			name := proj.Name
			if proj.Technologies != "" {
				name += " | " + proj.Technologies
			}
			out = append(out, flowable{kind: flowSplitRow, text: name, right: proj.Dates, style: "B"})
			if proj.Description != "" {
				out = append(out, flowable{kind: flowBullet, text: proj.Description})
			}
			spacer(4)
		}
	}

	if len(cv.Certifications) > 0 {
		section("Certifications & Licenses")
		for _, cert := range cv.Certifications {
			if cert.Plain {
				out = append(out, flowable{kind: flowBullet, text: cert.Name})
				continue
			}
			left := cert.Name
			if cert.Issuer != "" {
				left += " - " + cert.Issuer
			}
			out = append(out, flowable{kind: flowSplitRow, text: left, right: cert.Year})
		}
		spacer(4)
	}

	for _, title := range sortedSectionKeys(cv.AdditionalSections) {
		content := cv.AdditionalSections[title]
		section(title)
		if content.IsList() {
			for _, item := range content.Items {
				out = append(out, flowable{kind: flowBullet, text: item})
			}
		} else {
			out = append(out, flowable{kind: flowParagraph, text: content.Text})
		}
		spacer(4)
	}

	for len(out) > 0 && out[len(out)-1].kind == flowSpacer {
		out = out[:len(out)-1]
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSectionKeys(m map[string]models.SectionContent) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
