package report

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"stockAnalyzer/internal/analytics"
)

const dateLayout = "2006-01-02"

// StockReport is everything needed to lay out one stock's page.
type StockReport struct {
	Ranking     int
	Ticker      string
	Score       float64
	Description string
	ChartPNG    []byte
	Stats       analytics.DrawdownStats
}

// Builder renders the analysis PDF: a cover page followed by one page per
// stock with its description, chart, and drawdown statistics.
type Builder struct {
	title string
}

func NewBuilder(title string) *Builder {
	return &Builder{title: title}
}

// Build renders the document and returns the PDF bytes.
func (b *Builder) Build(stocks []StockReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)

	// Page numbers count from the first content page; the cover has none.
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()-1), "", 0, "C", false, 0, "")
	})

	b.addCoverPage(pdf, len(stocks))
	for _, stock := range stocks {
		if err := addStockPage(pdf, stock); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the document into a file.
func (b *Builder) WriteFile(path string, stocks []StockReport) error {
	data, err := b.Build(stocks)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (b *Builder) addCoverPage(pdf *fpdf.Fpdf, numReports int) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 40)
	pdf.Ln(60)
	pdf.CellFormat(0, 20, b.title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 20)
	pdf.CellFormat(0, 20, "Top Stock Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 12)
	pdf.CellFormat(0, 15, "Generated on: "+time.Now().Format("January 02, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(20)

	pdf.SetFont("Helvetica", "", 12)
	summary := fmt.Sprintf("This document provides a detailed analysis of the top %d performing stocks.", numReports)
	pdf.CellFormat(0, 10, summary, "", 1, "C", false, 0, "")
}

func addStockPage(pdf *fpdf.Fpdf, stock StockReport) error {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	heading := fmt.Sprintf("#%d %s", stock.Ranking, strings.ToUpper(stock.Ticker))
	pdf.CellFormat(0, 10, heading, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Score: %.4f", stock.Score), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, stripHTML(stock.Description), "", "L", false)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Risk profile", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, statsText(stock.Stats), "", "L", false)
	pdf.Ln(3)

	if len(stock.ChartPNG) > 0 {
		name := "chart-" + strings.ToUpper(stock.Ticker)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(stock.ChartPNG))
		// Full content width, height scaled to keep the aspect ratio.
		pdf.ImageOptions(name, 10, pdf.GetY(), 190, 0, true, opts, 0, "")
	}
	if pdf.Err() {
		return fmt.Errorf("failed to lay out page for %s: %v", stock.Ticker, pdf.Error())
	}
	return nil
}

func statsText(stats analytics.DrawdownStats) string {
	lines := []string{
		fmt.Sprintf("Max drawdown: %.2f%%", stats.MaxDrawdown*100),
		fmt.Sprintf("Peak: %s at %.2f", stats.PeakDate.Format(dateLayout), stats.PeakValue),
		fmt.Sprintf("Trough: %s", stats.MaxDrawdownDate.Format(dateLayout)),
	}
	if stats.RecoveryDate != nil {
		days := int(stats.RecoveryDate.Sub(stats.PeakDate).Hours() / 24)
		lines = append(lines, fmt.Sprintf("Recovered: %s (%d days)", stats.RecoveryDate.Format(dateLayout), days))
	} else {
		lines = append(lines, "Recovered: not yet recovered")
	}
	return strings.Join(lines, "\n")
}

var (
	reBreakTags = regexp.MustCompile(`(?i)</p>|</li>|</ul>|<br\s*/?>`)
	reListItem  = regexp.MustCompile(`(?i)<li>`)
	reAnyTag    = regexp.MustCompile(`<[^>]+>`)
	reBlank     = regexp.MustCompile(`\n{3,}`)
)

// stripHTML flattens the limited HTML the description prompt allows
// (<p> <b> <ul> <li> <br>) into plain text lines for MultiCell.
func stripHTML(s string) string {
	s = reBreakTags.ReplaceAllString(s, "\n")
	s = reListItem.ReplaceAllString(s, "- ")
	s = reAnyTag.ReplaceAllString(s, "")
	s = reBlank.ReplaceAllString(s, "\n\n")
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
