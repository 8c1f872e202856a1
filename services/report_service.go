package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/anjiri1684/aptitude_quiz/utils"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

//go:embed templates/quiz_report.html
var reportFS embed.FS

var reportTemplate = template.Must(template.ParseFS(reportFS, "templates/quiz_report.html"))

// PDFRenderer prints an HTML document to PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

type ReportStore interface {
	FindQuizForAdministrator(ctx context.Context, administratorID, quizID uuid.UUID) (models.Quiz, error)
	ListResults(ctx context.Context, quizID uuid.UUID) ([]models.Result, error)
}

type reportRow struct {
	Name       string
	Email      string
	Attempted  int
	Correct    int
	Percentage float64
}

type reportData struct {
	Title         string
	Date          string
	QuestionCount int
	Rows          []reportRow
}

type ReportService struct {
	store    ReportStore
	renderer PDFRenderer
}

func NewReportService(store ReportStore, renderer PDFRenderer) *ReportService {
	return &ReportService{store: store, renderer: renderer}
}

func (s *ReportService) QuizReportHTML(ctx context.Context, p models.Principal, quizID uuid.UUID) (string, error) {
	quiz, err := s.store.FindQuizForAdministrator(ctx, p.AdministratorID, quizID)
	if err != nil {
		return "", err
	}
	results, err := s.store.ListResults(ctx, quiz.ID)
	if err != nil {
		return "", err
	}

	data := reportData{
		Title:         quiz.Title,
		Date:          utils.FormatQuizDate(quiz.Date),
		QuestionCount: len(quiz.Questions),
	}
	for _, r := range results {
		row := reportRow{Attempted: r.QuestionsAttempted, Correct: r.CorrectAnswers}
		if r.Participant != nil {
			row.Name = r.Participant.Name
			row.Email = r.Participant.Email
		}
		if data.QuestionCount > 0 {
			row.Percentage = float64(r.CorrectAnswers) * 100 / float64(data.QuestionCount)
		}
		data.Rows = append(data.Rows, row)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func (s *ReportService) QuizReportPDF(ctx context.Context, p models.Principal, quizID uuid.UUID) ([]byte, error) {
	html, err := s.QuizReportHTML(ctx, p, quizID)
	if err != nil {
		return nil, err
	}
	if s.renderer == nil {
		return nil, fmt.Errorf("no pdf renderer configured")
	}
	return s.renderer.RenderPDF(ctx, html)
}

// ChromePDFRenderer drives a headless Chrome through chromedp.
type ChromePDFRenderer struct{}

func (ChromePDFRenderer) RenderPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print report pdf: %w", err)
	}
	return pdfBuffer, nil
}
