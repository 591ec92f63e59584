// Package report renders compliance decisions as PDF documents for
// auditors and applicants.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fairlens/fairlens/internal/domain"
)

// Layout constants in millimeters for an A4 portrait page with 20mm
// margins.
const (
	contentWidth = 170.0
	lineHeight   = 7.0
	headerHeight = 8.0
)

// PDFGenerator renders decisions into multi-section PDF reports. The
// zero value is ready to use.
type PDFGenerator struct {
	titleCaser cases.Caser
}

// NewPDFGenerator creates a report generator.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{titleCaser: cases.Title(language.English)}
}

// Generate renders the decision as a PDF document and returns its
// bytes.
func (g *PDFGenerator) Generate(decision domain.Decision) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	g.writeHeader(pdf, decision)
	g.writeExecutiveSummary(pdf, decision)
	g.writeTrustFactors(pdf, decision)
	g.writeRequirements(pdf, decision)
	g.writeRemediation(pdf, decision)
	g.writeFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) writeHeader(pdf *fpdf.Fpdf, decision domain.Decision) {
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(102, 16, 242)
	pdf.Cell(contentWidth, 10, "Compliance Decision Report")
	pdf.Ln(14)
	pdf.SetTextColor(0, 0, 0)

	details := [][2]string{
		{"Report Date:", time.Now().UTC().Format("January 2, 2006")},
		{"Application ID:", decision.ApplicationID},
		{"Regulatory Framework:", decision.Framework},
		{"Decision ID:", decision.ID},
		{"Decision Time:", decision.CreatedAt.UTC().Format(time.RFC3339)},
	}

	pdf.SetFont("Arial", "", 10)
	for _, row := range details {
		pdf.SetFillColor(230, 230, 250)
		pdf.CellFormat(55, lineHeight, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(contentWidth-55, lineHeight, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (g *PDFGenerator) writeExecutiveSummary(pdf *fpdf.Fpdf, decision domain.Decision) {
	g.sectionTitle(pdf, "Executive Summary")

	pdf.SetFont("Arial", "B", 11)
	if decision.Compliance.Compliant {
		pdf.SetTextColor(0, 128, 0)
		pdf.Cell(contentWidth, lineHeight, "Compliance Status: COMPLIANT")
	} else {
		pdf.SetTextColor(200, 0, 0)
		pdf.Cell(contentWidth, lineHeight, "Compliance Status: NON-COMPLIANT")
	}
	pdf.Ln(lineHeight)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(contentWidth, lineHeight,
		fmt.Sprintf("Overall Compliance Score: %.1f%% (%d of %d requirements met)",
			decision.Compliance.CompliancePercentage,
			decision.Compliance.CompliantCount,
			decision.Compliance.TotalCount))
	pdf.Ln(lineHeight)
	pdf.Cell(contentWidth, lineHeight,
		fmt.Sprintf("Overall Trust Score: %.1f/100", decision.Trust.OverallScore))
	pdf.Ln(lineHeight + 4)
}

func (g *PDFGenerator) writeTrustFactors(pdf *fpdf.Fpdf, decision domain.Decision) {
	g.sectionTitle(pdf, "Trust Factor Analysis")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 250)
	pdf.CellFormat(70, headerHeight, "Trust Factor", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, headerHeight, "Score", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, headerHeight, "Weight", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, headerHeight, "Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, factor := range sortedFactors(decision.Trust) {
		pdf.CellFormat(70, lineHeight, factor.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, lineHeight, fmt.Sprintf("%.1f", factor.Score), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, lineHeight, fmt.Sprintf("%.1f", factor.Weight), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, lineHeight, truncate(factor.Explanation.Summary, 28), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(contentWidth, lineHeight, "Detailed Analysis")
	pdf.Ln(lineHeight)
	pdf.SetFont("Arial", "", 9)
	for _, factor := range sortedFactors(decision.Trust) {
		pdf.SetFont("Arial", "B", 9)
		pdf.Cell(contentWidth, 6, factor.Name)
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 9)
		components := make([]string, 0, len(factor.Explanation.Components))
		for name, score := range factor.Explanation.Components {
			components = append(components, fmt.Sprintf("%s %.1f", g.titleCaser.String(strings.ReplaceAll(name, "_", " ")), score))
		}
		sort.Strings(components)
		pdf.MultiCell(contentWidth, 5,
			fmt.Sprintf("%s Components: %s.", factor.Explanation.Summary, strings.Join(components, ", ")),
			"", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(2)
}

func (g *PDFGenerator) writeRequirements(pdf *fpdf.Fpdf, decision domain.Decision) {
	g.sectionTitle(pdf, "Regulatory Alignment")

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(contentWidth, lineHeight, fmt.Sprintf("Framework: %s", decision.Framework))
	pdf.Ln(lineHeight + 1)

	results := decision.Compliance.Requirements
	if len(results) == 0 {
		pdf.Cell(contentWidth, lineHeight, "No regulatory requirement data available.")
		pdf.Ln(lineHeight + 4)
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 250)
	pdf.CellFormat(30, headerHeight, "Requirement", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, headerHeight, "Score", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, headerHeight, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(85, headerHeight, "Description", "1", 1, "L", true, 0, "")

	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	pdf.SetFont("Arial", "", 9)
	for _, id := range ids {
		result := results[id]
		pdf.CellFormat(30, lineHeight, result.RequirementID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, lineHeight, fmt.Sprintf("%.1f", result.Score), "1", 0, "C", false, 0, "")
		if result.Compliant {
			pdf.SetTextColor(0, 128, 0)
			pdf.CellFormat(30, lineHeight, "Compliant", "1", 0, "C", false, 0, "")
		} else {
			pdf.SetTextColor(200, 0, 0)
			pdf.CellFormat(30, lineHeight, "Non-Compliant", "1", 0, "C", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(85, lineHeight, truncate(result.Description, 60), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *PDFGenerator) writeRemediation(pdf *fpdf.Fpdf, decision domain.Decision) {
	g.sectionTitle(pdf, "Recommendations")

	remediation := decision.Compliance.Remediation
	if remediation == nil {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(contentWidth, lineHeight, "All requirements met. No remediation required.")
		pdf.Ln(lineHeight + 4)
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(contentWidth, lineHeight,
		fmt.Sprintf("%s (%s, scored %.1f) [HIGH]",
			g.titleCaser.String(remediation.Priority.Category),
			remediation.Priority.ID,
			remediation.Priority.Score))
	pdf.Ln(lineHeight)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(contentWidth, 5, remediation.Suggestion, "", "L", false)
	pdf.Ln(2)

	for _, shortfall := range remediation.Additional {
		pdf.MultiCell(contentWidth, 5,
			fmt.Sprintf("Also address %s (%s, scored %.1f): %s",
				shortfall.ID,
				g.titleCaser.String(shortfall.Category),
				shortfall.Score,
				shortfall.Description),
			"", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(3)
}

func (g *PDFGenerator) writeFooter(pdf *fpdf.Fpdf) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(contentWidth, 5,
		fmt.Sprintf("Generated by FairLens Compliance System on %s",
			time.Now().UTC().Format("2006-01-02 15:04:05")))
	pdf.SetTextColor(0, 0, 0)
}

func (g *PDFGenerator) sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(102, 16, 242)
	pdf.Cell(contentWidth, 9, title)
	pdf.Ln(10)
	pdf.SetTextColor(0, 0, 0)
}

// sortedFactors returns factor scores ordered by factor ID for a stable
// report layout.
func sortedFactors(trust domain.TrustReport) []domain.FactorScore {
	factors := make([]domain.FactorScore, 0, len(trust.Factors))
	for _, factor := range trust.Factors {
		factors = append(factors, factor)
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].FactorID < factors[j].FactorID })
	return factors
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}
