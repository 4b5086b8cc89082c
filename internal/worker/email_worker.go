package worker

// email_worker.go
// Processes email jobs from QueueEmail. The main producer is the register
// close flow, which mails the day's summary to administration.

import (
	"context"
	"encoding/json"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/infra"

	"github.com/rs/zerolog/log"
)

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email, with an attachment when the job carries a PDF path.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient, skipping")
		return
	}

	if err := w.mailer.Enviar(payload.To, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.To).Msg("email_worker: email sent")
}
