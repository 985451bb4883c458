package infra

// pdf.go — Daily closing report rendered with go-pdf/fpdf.
// One A5 page: totals table, balance line, and the recharge ledger.
// The output file is saved to storagePath/cierre_{fecha}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ReporteCierre is the snapshot the PDF is rendered from.
type ReporteCierre struct {
	CajaID   string
	Fecha    string
	Desvio   decimal.Decimal
	Resumen  dto.ResumenCaja
	Recargas []dto.RecargaResponse
}

// GenerateReporteCierrePDF writes the closing report and returns its path.
func GenerateReporteCierrePDF(rep ReporteCierre, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("cierre_%s.pdf", rep.Fecha))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Papelería — Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, rep.Fecha, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	labelW := contentW * 0.6
	valueW := contentW * 0.4

	row := func(label string, value decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, "$"+value.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Resumen ──────────────────────────────────────────────────────────────
	r := rep.Resumen
	row("Saldo inicial", r.SaldoInicial, false)
	row("Ventas del día", r.TotalVentas, false)
	row("  Productos", r.VentasProductos, false)
	row("  Servicios", r.VentasServicios, false)
	row("  Sublimación", r.VentasSublimacion, false)
	row("Gastos del día", r.TotalGastos.Neg(), false)
	row("Recargas", r.TotalRecargas.Neg(), false)

	pdf.Ln(1)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(1)

	row("Saldo esperado", r.SaldoActual, true)
	if r.SaldoCierre != nil {
		row("Saldo declarado", *r.SaldoCierre, true)
		row("Desvío", rep.Desvio, true)
	}

	// ── Recargas ─────────────────────────────────────────────────────────────
	if len(rep.Recargas) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "Recargas del día", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		for _, rec := range rep.Recargas {
			desc := rec.Descripcion
			if len(desc) > 40 {
				desc = desc[:39] + "…"
			}
			pdf.CellFormat(labelW, 5, desc, "", 0, "L", false, 0, "")
			pdf.CellFormat(valueW, 5, "-$"+rec.Monto.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
