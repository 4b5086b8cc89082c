package service

import (
	"context"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apperror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/dto"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendaService orchestrates a sale or a cancellation across the register and
// the stock ledger as one atomic unit. State machine per transaction:
// ativa → cancelada, terminal, no other transitions.
type VendaService interface {
	RegistrarVenda(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVendaRequest) (*dto.TransacaoResponse, error)
	CancelarVenda(ctx context.Context, transacaoID, usuarioID uuid.UUID) (*dto.TransacaoResponse, error)
}

type vendaService struct {
	repo       repository.TransacaoRepository
	caixaRepo  repository.CaixaRepository
	estoque    EstoqueService
	dispatcher *worker.Dispatcher
	agora      func() time.Time
}

func NewVendaService(
	repo repository.TransacaoRepository,
	caixaRepo repository.CaixaRepository,
	estoque EstoqueService,
	dispatcher *worker.Dispatcher,
) VendaService {
	return &vendaService{
		repo:       repo,
		caixaRepo:  caixaRepo,
		estoque:    estoque,
		dispatcher: dispatcher,
		agora:      time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// wrapProcessing keeps classified domain errors (Conflict/NotFound/Validation)
// intact and wraps everything else as a generic processing failure with the
// original cause preserved for logs.
func wrapProcessing(msg string, err error) error {
	if apperror.IsDomain(err) {
		return err
	}
	return apperror.Processing(msg, err)
}

// ── RegistrarVenda ────────────────────────────────────────────────────────────
// Atomic scope per sale:
//  1. increment register total;
//  2. insert transaction (ativa) with the payment breakdown as given;
//  3. one ledger saída per line (row-locked check-and-apply);
//  4. one line item per product referencing the resulting stock record.
// Any failure rolls the whole scope back. The receipt job is dispatched only
// after commit and is best-effort: printing failures never invalidate a sale.

func (s *vendaService) RegistrarVenda(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVendaRequest) (*dto.TransacaoResponse, error) {
	caixaID, err := uuid.Parse(req.CaixaID)
	if err != nil || usuarioID == uuid.Nil || len(req.Itens) == 0 {
		return nil, apperror.Validation("Dados não informados")
	}
	metodoID, err := uuid.Parse(req.MetodoPagamentoID)
	if err != nil {
		return nil, apperror.Validation("Método de pagamento inválido")
	}
	var metodo2ID *uuid.UUID
	if req.MetodoPagamento2ID != nil {
		id, err := uuid.Parse(*req.MetodoPagamento2ID)
		if err != nil {
			return nil, apperror.Validation("Método de pagamento secundário inválido")
		}
		metodo2ID = &id
	}

	caixa, err := s.caixaRepo.FindAbertoPorIDEUsuario(ctx, caixaID, usuarioID)
	if err != nil || caixa == nil {
		return nil, apperror.NotFound("Nenhum caixa aberto para este operador")
	}
	// Stale-open-register guard: a register left open from a previous day
	// cannot take new sales.
	if !caixa.AbertoNoDia(s.agora()) {
		return nil, apperror.NotFound("Feche o caixa do dia anterior antes de registrar vendas")
	}

	transacao := model.Transacao{
		CaixaID:             caixa.ID,
		UsuarioID:           usuarioID,
		MetodoPagamentoID:   metodoID,
		MetodoPagamento2ID:  metodo2ID,
		PagamentoMisto:      req.PagamentoMisto,
		ValorTotal:          req.ValorTotal,
		ValorPago:           req.ValorPago,
		ValorPagoSecundario: req.ValorPagoSecundario,
		Observacao:          req.Observacao,
		NomeCliente:         req.NomeCliente,
		Status:              model.TransacaoAtiva,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.caixaRepo.SomarValorTotalTx(tx, caixa.ID, req.ValorTotal); err != nil {
			return err
		}
		if err := s.repo.CreateTx(tx, &transacao); err != nil {
			return err
		}

		for _, item := range req.Itens {
			produtoID, err := uuid.Parse(item.ProdutoID)
			if err != nil {
				return apperror.Validation("Produto inválido")
			}
			valor := item.ValorUnitario
			estoque, err := s.estoque.MovimentarTx(ctx, tx, MovimentoInput{
				ProdutoID:         produtoID,
				Quantidade:        item.Quantidade,
				TipoMovimento:     model.MovimentoSaida,
				ValorUnitario:     &valor,
				UsuarioID:         usuarioID,
				MetodoPagamentoID: &metodoID,
			})
			if err != nil {
				return err
			}

			itemTransacao := model.ItemTransacao{
				TransacaoID:   transacao.ID,
				ProdutoID:     produtoID,
				EstoqueID:     estoque.ID,
				Quantidade:    item.Quantidade,
				ValorUnitario: item.ValorUnitario,
				Status:        model.TransacaoAtiva,
			}
			if err := s.repo.CreateItemTx(tx, &itemTransacao); err != nil {
				return err
			}
			transacao.Itens = append(transacao.Itens, itemTransacao)
		}
		return nil
	})
	if txErr != nil {
		return nil, wrapProcessing("Falha ao processar a venda", txErr)
	}

	// Receipt generation is a collaborator side effect outside the atomic
	// core — fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecibo(ctx, worker.ReciboPayload{
			TransacaoID:       transacao.ID.String(),
			ImpressoraTermica: req.ImpressoraTermica,
		})
	}

	return transacaoToResponse(&transacao), nil
}

// ── CancelarVenda ─────────────────────────────────────────────────────────────
// Symmetric reverse of a sale: restores register total and stock while
// preserving the audit trail — the original saída row is never touched, the
// reversal is a fresh entrada appended to the ledger. Not idempotent: a
// second cancellation of the same transaction fails with Conflict.

func (s *vendaService) CancelarVenda(ctx context.Context, transacaoID, usuarioID uuid.UUID) (*dto.TransacaoResponse, error) {
	if transacaoID == uuid.Nil || usuarioID == uuid.Nil {
		return nil, apperror.Validation("Dados não informados")
	}

	transacao, err := s.repo.FindByIDComItens(ctx, transacaoID)
	if err != nil || transacao == nil || transacao.UsuarioID != usuarioID {
		return nil, apperror.NotFound("Transação não encontrada para este operador")
	}
	if transacao.Status != model.TransacaoAtiva {
		return nil, apperror.Conflict("Transação já cancelada")
	}

	// A sale cannot be reversed once its register is closed.
	caixa, err := s.caixaRepo.FindAbertoPorIDEUsuario(ctx, transacao.CaixaID, usuarioID)
	if err != nil || caixa == nil {
		return nil, apperror.NotFound("Nenhum caixa aberto para este operador")
	}

	canceladoEm := s.agora()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.caixaRepo.SomarValorTotalTx(tx, caixa.ID, transacao.ValorTotal.Neg()); err != nil {
			return err
		}

		for _, item := range transacao.Itens {
			valor := item.ValorUnitario
			if _, err := s.estoque.MovimentarTx(ctx, tx, MovimentoInput{
				ProdutoID:         item.ProdutoID,
				Quantidade:        item.Quantidade,
				TipoMovimento:     model.MovimentoEntrada,
				ValorUnitario:     &valor,
				UsuarioID:         usuarioID,
				MetodoPagamentoID: &transacao.MetodoPagamentoID,
			}); err != nil {
				return err
			}
		}

		if err := s.repo.CancelarItensTx(tx, transacao.ID); err != nil {
			return err
		}

		transacao.Status = model.TransacaoCancelada
		transacao.UsuarioCancelouID = &usuarioID
		transacao.CanceladoEm = &canceladoEm
		return s.repo.UpdateTx(tx, transacao)
	})
	if txErr != nil {
		return nil, wrapProcessing("Falha ao cancelar a venda", txErr)
	}

	for i := range transacao.Itens {
		transacao.Itens[i].Status = model.TransacaoCancelada
	}
	return transacaoToResponse(transacao), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func transacaoToResponse(t *model.Transacao) *dto.TransacaoResponse {
	itens := make([]dto.ItemTransacaoResponse, 0, len(t.Itens))
	for i := range t.Itens {
		item := &t.Itens[i]
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		itens = append(itens, dto.ItemTransacaoResponse{
			ID:            item.ID.String(),
			ProdutoID:     item.ProdutoID.String(),
			Produto:       nome,
			EstoqueID:     item.EstoqueID.String(),
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			Status:        item.Status,
		})
	}

	resp := &dto.TransacaoResponse{
		ID:                  t.ID.String(),
		CaixaID:             t.CaixaID.String(),
		UsuarioID:           t.UsuarioID.String(),
		MetodoPagamentoID:   t.MetodoPagamentoID.String(),
		PagamentoMisto:      t.PagamentoMisto,
		ValorTotal:          t.ValorTotal,
		ValorPago:           t.ValorPago,
		ValorPagoSecundario: t.ValorPagoSecundario,
		Observacao:          t.Observacao,
		NomeCliente:         t.NomeCliente,
		Status:              t.Status,
		Itens:               itens,
		CreatedAt:           t.CreatedAt.Format(time.RFC3339),
	}
	if t.MetodoPagamento2ID != nil {
		id := t.MetodoPagamento2ID.String()
		resp.MetodoPagamento2ID = &id
	}
	if t.UsuarioCancelouID != nil {
		id := t.UsuarioCancelouID.String()
		resp.UsuarioCancelouID = &id
	}
	if t.CanceladoEm != nil {
		ts := t.CanceladoEm.Format(time.RFC3339)
		resp.CanceladoEm = &ts
	}
	return resp
}
