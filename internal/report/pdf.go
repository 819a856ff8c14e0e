// Package report renders finished-session feedback as a PDF and mails
// it to the candidate.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/prepdesk/prepdesk/internal/interview"
)

// Report carries everything needed to render one feedback document.
type Report struct {
	CandidateName string
	Category      interview.Pool
	Difficulty    interview.Difficulty
	CompletedAt   time.Time
	Transcript    []interview.QAPair
	Feedback      *interview.Feedback
}

// RenderPDF renders the report as a PDF document.
func RenderPDF(r Report) ([]byte, error) {
	if r.Feedback == nil {
		return nil, fmt.Errorf("render report: nil feedback")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Interview Feedback Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Candidate: %s", r.CandidateName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Category: %s    Difficulty: %s", r.Category, r.Difficulty), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Completed: %s", r.CompletedAt.Format("2 January 2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, fmt.Sprintf("Overall Score: %.1f / 10", r.Feedback.OverallScore))
	bodyText(pdf, r.Feedback.Summary)

	if len(r.Feedback.Strengths) > 0 {
		sectionTitle(pdf, "Strengths")
		bulletList(pdf, r.Feedback.Strengths)
	}
	if len(r.Feedback.Improvements) > 0 {
		sectionTitle(pdf, "Areas for Improvement")
		bulletList(pdf, r.Feedback.Improvements)
	}

	if len(r.Feedback.Detailed) > 0 {
		sectionTitle(pdf, "Question Breakdown")
		for i, d := range r.Feedback.Detailed {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 5.5, fmt.Sprintf("Q%d (%.1f/10): %s", i+1, d.Score, d.Question), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, d.Evaluation, "", "L", false)
			pdf.Ln(2)
		}
	} else if len(r.Transcript) > 0 {
		sectionTitle(pdf, "Transcript")
		for i, qa := range r.Transcript {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 5.5, fmt.Sprintf("Q%d: %s", i+1, qa.Question), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, qa.Answer, "", "L", false)
			pdf.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func bodyText(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5.5, strings.TrimSpace(text), "", "L", false)
	pdf.Ln(1)
}

func bulletList(pdf *fpdf.Fpdf, items []string) {
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.MultiCell(0, 5.5, "- "+strings.TrimSpace(item), "", "L", false)
	}
	pdf.Ln(1)
}
