package worker

// cierre_worker.go
// Renders the daily closing report as a PDF and hands it to the email queue.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Josechaparro09/Papeleria-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

type CierreWorker struct {
	dispatcher  *Dispatcher
	storagePath string
	reporteTo   string
}

func NewCierreWorker(dispatcher *Dispatcher, storagePath, reporteTo string) *CierreWorker {
	return &CierreWorker{dispatcher: dispatcher, storagePath: storagePath, reporteTo: reporteTo}
}

// Process generates the PDF and enqueues the email. The payload is a frozen
// snapshot, so a retry re-renders the same numbers.
func (w *CierreWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload CierreJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cierre_worker: invalid payload")
		return
	}

	pdfPath, err := infra.GenerateReporteCierrePDF(infra.ReporteCierre{
		CajaID:   payload.CajaID,
		Fecha:    payload.Fecha,
		Desvio:   payload.Desvio,
		Resumen:  payload.Resumen,
		Recargas: payload.Recargas,
	}, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("caja_id", payload.CajaID).Msg("cierre_worker: pdf generation failed")
		return
	}

	if w.reporteTo == "" {
		log.Warn().Str("caja_id", payload.CajaID).Msg("cierre_worker: REPORTE_EMAIL not set — report kept on disk only")
		return
	}

	err = w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: w.reporteTo,
		Subject: fmt.Sprintf("Cierre de caja %s", payload.Fecha),
		Body: fmt.Sprintf(
			"Caja del %s cerrada.\nSaldo esperado: $%s\nSaldo declarado: $%s\nDesvío: $%s\n",
			payload.Fecha,
			payload.Resumen.SaldoActual.StringFixed(2),
			saldoCierreStr(payload),
			payload.Desvio.StringFixed(2),
		),
		PDFPath: pdfPath,
	})
	if err != nil {
		log.Error().Err(err).Str("caja_id", payload.CajaID).Msg("cierre_worker: failed to enqueue email")
	}
}

func saldoCierreStr(p CierreJobPayload) string {
	if p.Resumen.SaldoCierre == nil {
		return "—"
	}
	return p.Resumen.SaldoCierre.StringFixed(2)
}
