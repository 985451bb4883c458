package worker

// recordatorio_cron.go
// Nightly check: if today's register is still open near closing time, nudge
// the configured report address. Runs in the business timezone so "today"
// matches the caja's day boundary.

import (
	"context"
	"errors"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// recordatorioSpec fires at 21:55 local, shortly before the shop closes.
const recordatorioSpec = "55 21 * * *"

// StartRecordatorioCron schedules the unclosed-register reminder and returns
// the running scheduler so the caller can Stop() it on shutdown.
func StartRecordatorioCron(cajas repository.CajaRepository, dispatcher *Dispatcher, reporteTo string, loc *time.Location) *cron.Cron {
	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc(recordatorioSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		now := time.Now().In(loc)
		hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

		caja, err := cajas.FindCajaPorFecha(ctx, hoy)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Error().Err(err).Msg("recordatorio: caja lookup failed")
			}
			return
		}
		if !caja.Abierta() {
			return
		}

		log.Warn().Str("caja_id", caja.ID.String()).Msg("recordatorio: la caja de hoy sigue abierta")
		if reporteTo == "" {
			return
		}
		err = dispatcher.EnqueueEmail(ctx, EmailJobPayload{
			ToEmail: reporteTo,
			Subject: "Recordatorio: caja sin cerrar",
			Body:    "La caja del " + hoy.Format("2006-01-02") + " sigue abierta. Recuerde realizar el cierre.",
		})
		if err != nil {
			log.Error().Err(err).Msg("recordatorio: enqueue failed")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("recordatorio: invalid cron spec")
		return c
	}

	c.Start()
	log.Info().Str("spec", recordatorioSpec).Msg("recordatorio cron started")
	return c
}
