package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/report"
	"github.com/colegioelo/estoque/internal/stock"
)

// Sheet names, in workbook order.
const (
	SheetStock    = "Estoque"
	SheetProducts = "Produtos"
	SheetAlerts   = "Alertas"
	SheetPhysical = "Auditoria física"
	SheetBriefing = "Resumo"
	SheetUngraded = "Sem série"
)

var bandFill = map[stock.Band]string{
	stock.BandShortage: "#F8D7DA",
	stock.BandLow:      "#FFF3CD",
	stock.BandOK:       "#D4EDDA",
}

var bandLabel = map[stock.Band]string{
	stock.BandShortage: "Falta",
	stock.BandLow:      "Baixo",
	stock.BandOK:       "OK",
}

type workbook struct {
	f      *excelize.File
	cat    *catalog.Catalog
	header int
	bands  map[stock.Band]int
}

// NewWorkbook renders a report as a spreadsheet. The filter narrows the stock
// sheet only; every other sheet covers the whole network.
func NewWorkbook(cat *catalog.Catalog, r *report.Report, filter stock.Filter) (*excelize.File, error) {
	wb := &workbook{f: excelize.NewFile(), cat: cat, bands: make(map[stock.Band]int)}

	if err := wb.styles(); err != nil {
		wb.f.Close()
		return nil, err
	}

	steps := []func() error{
		func() error { return wb.stock(filter.Apply(r.Balances)) },
		func() error { return wb.products(r.Products()) },
		func() error { return wb.alerts(stock.Alerts(r.Balances)) },
		func() error { return wb.physical(r.Physical) },
		func() error { return wb.briefing(r.Briefing) },
		func() error { return wb.ungraded(r) },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			wb.f.Close()
			return nil, err
		}
	}

	// The stock sheet took over the default sheet at index 0.
	wb.f.SetActiveSheet(0)

	return wb.f, nil
}

func (wb *workbook) styles() error {
	id, err := wb.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	wb.header = id

	for band, color := range bandFill {
		id, err := wb.f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("create %s style: %w", band, err)
		}

		wb.bands[band] = id
	}

	return nil
}

// sheet creates name with a bold, frozen header row and writes rows under it.
func (wb *workbook) sheet(name string, headers []string, rows [][]any) error {
	if name == SheetStock {
		if err := wb.f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else if _, err := wb.f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}

	if err := wb.f.SetSheetRow(name, "A1", &head); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}

	if err := wb.f.SetRowStyle(name, 1, 1, wb.header); err != nil {
		return fmt.Errorf("style %s header: %w", name, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := wb.f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", name, i+2, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}

	if err := wb.f.SetColWidth(name, "A", last, 14); err != nil {
		return fmt.Errorf("size %s columns: %w", name, err)
	}

	return wb.f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// paintBand fills column col of each row with the color of its band.
func (wb *workbook) paintBand(name string, col int, bands []stock.Band) error {
	for i, band := range bands {
		cell, err := excelize.CoordinatesToCellName(col, i+2)
		if err != nil {
			return err
		}

		if err := wb.f.SetCellStyle(name, cell, cell, wb.bands[band]); err != nil {
			return fmt.Errorf("style %s: %w", cell, err)
		}
	}

	return nil
}

func (wb *workbook) unitName(u catalog.Unit) string {
	if info, ok := wb.cat.Unit(u); ok {
		return info.Name
	}

	return string(u)
}

func (wb *workbook) stock(bs []stock.Balance) error {
	headers := []string{
		"Unidade", "Código", "Produto", "Linha", "Segmento", "Série",
		"Pedido inicial", "Pedido complementar", "Pedido total",
		"Enviado", "Vendido", "Ajuste", "Saldo", "Venda líquida", "Situação",
	}

	rows := make([][]any, 0, len(bs))
	bands := make([]stock.Band, 0, len(bs))

	for _, b := range bs {
		rows = append(rows, []any{
			wb.unitName(b.Unit), b.ProductCode, b.ProductName, string(b.Line), b.Segment, b.Grade,
			b.OrderedInitial, b.OrderedSupplemental, b.OrderedTotal,
			b.Shipped, b.Sold, b.Adjustment, b.Balance, b.NetSold, bandLabel[b.Band],
		})
		bands = append(bands, b.Band)
	}

	if err := wb.sheet(SheetStock, headers, rows); err != nil {
		return err
	}

	if len(rows) > 0 {
		if err := wb.f.AutoFilter(SheetStock, fmt.Sprintf("A1:O%d", len(rows)+1), nil); err != nil {
			return fmt.Errorf("filter stock sheet: %w", err)
		}
	}

	return wb.paintBand(SheetStock, 13, bands)
}

func (wb *workbook) products(ps []stock.ProductSummary) error {
	headers := []string{
		"Código", "Produto", "Linha", "Segmento", "Série", "Pedido total",
		"Enviado", "Vendido", "Ajuste", "Venda líquida", "Saldo", "Saldo do pedido",
	}

	rows := make([][]any, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []any{
			p.ProductCode, p.ProductName, string(p.Line), p.Segment, p.Grade, p.OrderedTotal,
			p.Totals.Shipped, p.Totals.Sold, p.Totals.Adjustment, p.Totals.NetSold, p.Totals.Balance,
			p.OrderRemaining,
		})
	}

	return wb.sheet(SheetProducts, headers, rows)
}

func (wb *workbook) alerts(bs []stock.Balance) error {
	headers := []string{"Unidade", "Código", "Produto", "Segmento", "Série", "Saldo", "Situação"}

	rows := make([][]any, 0, len(bs))
	bands := make([]stock.Band, 0, len(bs))

	for _, b := range bs {
		rows = append(rows, []any{
			wb.unitName(b.Unit), b.ProductCode, b.ProductName, b.Segment, b.Grade, b.Balance, bandLabel[b.Band],
		})
		bands = append(bands, b.Band)
	}

	if err := wb.sheet(SheetAlerts, headers, rows); err != nil {
		return err
	}

	return wb.paintBand(SheetAlerts, 6, bands)
}

func (wb *workbook) physical(ds []stock.PhysicalDiff) error {
	headers := []string{
		"Unidade", "Código", "Segmento", "Série", "Enviado", "Vendido",
		"Teórico", "Físico", "Diferença", "Contagem",
	}

	rows := make([][]any, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []any{
			wb.unitName(d.Unit), d.ProductCode, d.Segment, d.Grade, d.Shipped, d.Sold,
			d.Theoretical, d.Physical, d.Difference, d.ObservedOn.Format("02/01/2006"),
		})
	}

	return wb.sheet(SheetPhysical, headers, rows)
}

func (wb *workbook) briefing(ubs []stock.UnitBriefing) error {
	headers := []string{"Unidade", "Status", "Ocorrência", "Código", "Mensagem"}

	var rows [][]any

	for _, ub := range ubs {
		if len(ub.Findings) == 0 {
			rows = append(rows, []any{ub.Name, string(ub.Status)})
			continue
		}

		for _, f := range ub.Findings {
			rows = append(rows, []any{ub.Name, string(ub.Status), string(f.Kind), f.ProductCode, f.Message})
		}
	}

	return wb.sheet(SheetBriefing, headers, rows)
}

func (wb *workbook) ungraded(r *report.Report) error {
	headers := []string{"Unidade", "Matrícula", "Aluno", "Turma"}

	unresolved := r.Unresolved()

	rows := make([][]any, 0, len(unresolved))
	for _, res := range unresolved {
		rows = append(rows, []any{wb.unitName(res.Key.Unit), res.Key.StudentID, res.StudentName, res.ClassSection})
	}

	return wb.sheet(SheetUngraded, headers, rows)
}
