package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/studentres/resources-api/internal/models"
)

// PDFExporter renders generated question papers as printable PDFs.
type PDFExporter struct{}

// NewPDFExporter constructs a PDFExporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// QuestionPaper renders the paper with one block per question followed by an
// answer key on the last page.
func (e *PDFExporter) QuestionPaper(paper models.GeneratedPaper) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Question Paper: %s", paper.Subject), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	subtitle := fmt.Sprintf("Difficulty: %s", strings.Title(paper.Difficulty))
	if paper.Topic != "" {
		subtitle = fmt.Sprintf("Topic: %s  |  %s", paper.Topic, subtitle)
	}
	pdf.CellFormat(0, 8, subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	optionLabels := []string{"A", "B", "C", "D"}
	for i, q := range paper.Questions {
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(0, 7, fmt.Sprintf("Q%d. %s", i+1, q.Question), "", "L", false)

		pdf.SetFont("Arial", "", 11)
		for j, opt := range q.Options {
			label := fmt.Sprintf("%d", j+1)
			if j < len(optionLabels) {
				label = optionLabels[j]
			}
			pdf.MultiCell(0, 6, fmt.Sprintf("   %s) %s", label, opt), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Answer Key", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for i, q := range paper.Questions {
		answer := "?"
		if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(optionLabels) {
			answer = optionLabels[q.CorrectAnswer]
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("Q%d: %s", i+1, answer), "", "L", false)
		if q.Explanation != "" {
			pdf.SetFont("Arial", "I", 10)
			pdf.MultiCell(0, 5, "   "+q.Explanation, "", "L", false)
			pdf.SetFont("Arial", "", 11)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render question paper pdf: %w", err)
	}
	return buf.Bytes(), nil
}
