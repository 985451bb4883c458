package worker

// email_worker.go
// Sends queued mail through the SMTP circuit breaker. A send that keeps
// failing is retried up to maxEmailAttempts and then parked in the DLQ.

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Josechaparro09/Papeleria-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

const maxEmailAttempts = 3

type EmailWorker struct {
	mailer     *infra.Mailer
	cb         *infra.CircuitBreaker
	dispatcher *Dispatcher
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, dispatcher *Dispatcher) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, dispatcher: dispatcher}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	err := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err == nil {
		log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email_worker: sent")
		return
	}

	payload.Attempts++
	if errors.Is(err, infra.ErrCircuitOpen) {
		log.Warn().Int("attempts", payload.Attempts).Msg("email_worker: smtp circuit open")
	} else {
		log.Error().Err(err).Int("attempts", payload.Attempts).Str("to", payload.ToEmail).Msg("email_worker: send failed")
	}

	if payload.Attempts >= maxEmailAttempts {
		data, _ := json.Marshal(payload)
		SendToDLQ(ctx, w.dispatcher.rdb, QueueEmail, "email", data, err.Error(), payload.Attempts)
		return
	}
	if rerr := w.dispatcher.EnqueueEmail(ctx, payload); rerr != nil {
		log.Error().Err(rerr).Msg("email_worker: requeue failed")
	}
}
