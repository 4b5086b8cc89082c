package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibo. Renders the sale as a thermal
// print job (via the printer agent) or as a PDF on disk, depending on what
// the checkout station asked for. Retries transient printer failures with
// exponential backoff.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/infra"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/recibo"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ReciboWorker struct {
	transacaoRepo repository.TransacaoRepository
	usuarioRepo   repository.UsuarioRepository
	printer       *infra.PrinterClient
	storagePath   string
}

func NewReciboWorker(
	transacaoRepo repository.TransacaoRepository,
	usuarioRepo repository.UsuarioRepository,
	printer *infra.PrinterClient,
	storagePath string,
) *ReciboWorker {
	return &ReciboWorker{
		transacaoRepo: transacaoRepo,
		usuarioRepo:   usuarioRepo,
		printer:       printer,
		storagePath:   storagePath,
	}
}

// Process renders and delivers one receipt. Everything here is best-effort:
// the sale is already committed, a failed print never rolls it back.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReciboPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return
	}

	transacaoID, err := uuid.Parse(payload.TransacaoID)
	if err != nil {
		log.Error().Str("transacao_id", payload.TransacaoID).Msg("recibo_worker: invalid transacao_id")
		return
	}

	transacao, err := w.transacaoRepo.FindByIDComItens(ctx, transacaoID)
	if err != nil {
		log.Error().Err(err).Str("transacao_id", payload.TransacaoID).Msg("recibo_worker: transacao not found")
		return
	}

	r := &recibo.Recibo{
		Transacao: transacao,
		EmitidoEm: transacao.CreatedAt,
	}
	if transacao.Observacao != nil {
		r.Observacao = *transacao.Observacao
	}

	metodo, metodo2 := "", ""
	if transacao.MetodoPagamento != nil {
		metodo = transacao.MetodoPagamento.Descricao
	}
	if transacao.MetodoPagamento2 != nil {
		metodo2 = transacao.MetodoPagamento2.Descricao
	}
	r.Pagamento = recibo.DescreverPagamento(metodo, metodo2,
		transacao.PagamentoMisto, transacao.ValorPago, transacao.ValorPagoSecundario)

	if operador, err := w.usuarioRepo.FindByIDComEmpresa(ctx, transacao.UsuarioID); err == nil {
		r.Operador = operador.Nome
		r.Empresa = operador.Empresa
	}

	if payload.ImpressoraTermica {
		w.imprimir(ctx, r, payload.TransacaoID)
		return
	}

	path, err := recibo.GerarPDF(r, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("transacao_id", payload.TransacaoID).Msg("recibo_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", path).Str("transacao_id", payload.TransacaoID).Msg("recibo_worker: PDF generated")
}

func (w *ReciboWorker) imprimir(ctx context.Context, r *recibo.Recibo, transacaoID string) {
	job := infra.PrintJob{
		TransacaoID: transacaoID,
		Conteudo:    r.Texto(),
		Copias:      1,
	}
	err := withRetry(ctx, 3, func(attempt int) error {
		_, err := w.printer.Imprimir(ctx, job)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("transacao_id", transacaoID).
				Msg("recibo_worker: print attempt failed, retrying")
		}
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("transacao_id", transacaoID).Msg("recibo_worker: print failed after all retries")
		return
	}
	log.Info().Str("transacao_id", transacaoID).Msg("recibo_worker: receipt printed")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
