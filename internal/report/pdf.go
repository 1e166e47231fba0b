package report

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the Markdown report of r into a simple A4 PDF. Headings
// and list lines are laid out individually; long values wrap.
func WritePDF(outPath string, r Result, o Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("digitruns "+displayInput(r.Input), true)
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(Markdown(r, o)))
	// a single huge number can exceed the default line limit
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		switch {
		case s == "":
			pdf.Ln(4)
		case s == "---":
			pdf.Ln(2)
		case strings.HasPrefix(s, "# "):
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 8, strings.TrimPrefix(s, "# "), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
		default:
			s = strings.ReplaceAll(s, "`", "")
			s = strings.Trim(s, "_")
			// core fonts are cp1252; drop the middle dot separator
			s = strings.ReplaceAll(s, " · ", " | ")
			pdf.MultiCell(0, 5, s, "", "L", false)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(outPath)
}
