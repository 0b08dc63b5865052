package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/report"
	"github.com/colegioelo/estoque/internal/stock"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=export
type Reports interface {
	Current(ctx context.Context) (*report.Report, error)
}

// Service renders the current report as a workbook or a plain-text briefing.
type Service struct {
	cat     *catalog.Catalog
	reports Reports
}

func NewService(cat *catalog.Catalog, reports Reports) *Service {
	return &Service{cat: cat, reports: reports}
}

// Workbook writes the stock workbook of the current report to w and returns
// the file name it should be served under.
func (s *Service) Workbook(ctx context.Context, w io.Writer, filter stock.Filter) (string, error) {
	r, err := s.reports.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("get report: %w", err)
	}

	f, err := NewWorkbook(s.cat, r, filter)
	if err != nil {
		return "", fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}

	return Filename(r), nil
}

// Export saves the workbook of the current report into outputDir and returns its path.
func (s *Service) Export(ctx context.Context, outputDir string) (string, error) {
	r, err := s.reports.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("get report: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	f, err := NewWorkbook(s.cat, r, stock.Filter{})
	if err != nil {
		return "", fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	path := filepath.Join(outputDir, Filename(r))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	return path, nil
}

// Briefing returns the plain-text briefing of the current report.
func (s *Service) Briefing(ctx context.Context) (string, error) {
	r, err := s.reports.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("get report: %w", err)
	}

	return BriefingText(r), nil
}

// Filename names a workbook after the extraction it was built from.
func Filename(r *report.Report) string {
	return fmt.Sprintf("estoque_%s.xlsx", r.TakenAt.Format("20060102_1504"))
}

// BriefingText renders one block per unit with its sold totals and findings.
func BriefingText(r *report.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Extraction %s, %d records", r.TakenAt.Format("02/01/2006 15:04"), r.Records)
	if r.Injected > 0 {
		fmt.Fprintf(&sb, " (+%d open enrollments)", r.Injected)
	}

	sb.WriteString("\n")

	for _, ub := range r.Briefing {
		fmt.Fprintf(&sb, "\n%s (%s): %s\n", ub.Name, ub.Unit, ub.Status)

		sold := make([]string, 0, len(catalog.Lines))
		for _, line := range catalog.Lines {
			sold = append(sold, fmt.Sprintf("%s %d", line, ub.Sold[line]))
		}

		fmt.Fprintf(&sb, "  sold: %s\n", strings.Join(sold, " | "))

		if len(ub.Findings) == 0 {
			sb.WriteString("  * nothing pending\n")
		}

		for _, f := range ub.Findings {
			fmt.Fprintf(&sb, "  * %s\n", f.Message)
		}
	}

	if !r.Passed() {
		sb.WriteString("\nconsistency audit failed, see /api/v1/audit/runs\n")
	}

	return sb.String()
}
