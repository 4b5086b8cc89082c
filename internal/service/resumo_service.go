package service

import (
	"context"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apperror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/dto"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/recibo"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ResumoService produces the cash-out reports. Read-only over registers and
// transactions, never mutates anything.
type ResumoService interface {
	// ResumoDoCaixa reports one register: active transactions only, with
	// payment totals split by principal/secundário and mixed-sale counters.
	ResumoDoCaixa(ctx context.Context, caixaID, usuarioID uuid.UUID) (*dto.ResumoCaixaResponse, error)
	// ResumoGeral walks every register. A register whose transactions fail to
	// load is skipped with a warning instead of failing the whole report.
	ResumoGeral(ctx context.Context) (*dto.ResumoGeralResponse, error)
}

type resumoService struct {
	caixaRepo     repository.CaixaRepository
	transacaoRepo repository.TransacaoRepository
	log           zerolog.Logger
}

func NewResumoService(caixaRepo repository.CaixaRepository, transacaoRepo repository.TransacaoRepository, log zerolog.Logger) ResumoService {
	return &resumoService{caixaRepo: caixaRepo, transacaoRepo: transacaoRepo, log: log}
}

// ── ResumoDoCaixa ─────────────────────────────────────────────────────────────

func (s *resumoService) ResumoDoCaixa(ctx context.Context, caixaID, usuarioID uuid.UUID) (*dto.ResumoCaixaResponse, error) {
	caixa, err := s.caixaRepo.FindByID(ctx, caixaID)
	if err != nil || caixa == nil || caixa.UsuarioID != usuarioID {
		return nil, apperror.NotFound("Caixa não encontrado para este operador")
	}

	transacoes, err := s.transacaoRepo.ListPorCaixa(ctx, caixaID)
	if err != nil {
		return nil, apperror.Processing("Falha ao carregar as transações do caixa", err)
	}

	resp := &dto.ResumoCaixaResponse{
		CaixaID:             caixa.ID.String(),
		TotalRecebido:       decimal.Zero,
		TotalPagoPrincipal:  decimal.Zero,
		TotalPagoSecundario: decimal.Zero,
		ValorMisto:          decimal.Zero,
		Transacoes:          []dto.TransacaoResumoResponse{},
	}

	for i := range transacoes {
		t := &transacoes[i]
		// Cancelled sales are excluded entirely from the daily closing view.
		if t.Status != model.TransacaoAtiva {
			continue
		}
		resp.TotalRecebido = resp.TotalRecebido.Add(t.ValorTotal)
		resp.TotalPagoPrincipal = resp.TotalPagoPrincipal.Add(t.ValorPago)
		resp.TotalPagoSecundario = resp.TotalPagoSecundario.Add(t.ValorPagoSecundario)
		if t.PagamentoMisto {
			resp.VendasMistas++
			resp.ValorMisto = resp.ValorMisto.Add(t.ValorTotal)
		}
		resp.Transacoes = append(resp.Transacoes, transacaoResumo(t))
	}
	return resp, nil
}

// ── ResumoGeral ───────────────────────────────────────────────────────────────

func (s *resumoService) ResumoGeral(ctx context.Context) (*dto.ResumoGeralResponse, error) {
	caixas, err := s.caixaRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Processing("Falha ao listar os caixas", err)
	}

	resp := &dto.ResumoGeralResponse{Caixas: []dto.ResumoGeralItem{}}
	for i := range caixas {
		c := &caixas[i]
		transacoes, err := s.transacaoRepo.ListPorCaixa(ctx, c.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("caixa_id", c.ID.String()).
				Msg("resumo geral: caixa ignorado")
			continue
		}

		item := dto.ResumoGeralItem{
			CaixaID:        c.ID.String(),
			Status:         c.Status,
			AbertoEm:       c.AbertoEm.Format(time.RFC3339),
			ValorTotal:     decimal.Zero,
			ValorCancelado: decimal.Zero,
			Transacoes:     []dto.TransacaoResumoResponse{},
		}
		for j := range transacoes {
			t := &transacoes[j]
			if t.Status == model.TransacaoAtiva {
				item.ValorTotal = item.ValorTotal.Add(t.ValorTotal)
			} else {
				item.ValorCancelado = item.ValorCancelado.Add(t.ValorTotal)
			}
			for k := range t.Itens {
				item.TotalItens += t.Itens[k].Quantidade
			}
			item.Transacoes = append(item.Transacoes, transacaoResumo(t))
		}
		resp.Caixas = append(resp.Caixas, item)
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func transacaoResumo(t *model.Transacao) dto.TransacaoResumoResponse {
	itens := make([]dto.ItemResumoResponse, 0, len(t.Itens))
	for i := range t.Itens {
		item := &t.Itens[i]
		nome, categoria := "", ""
		if item.Produto != nil {
			nome = item.Produto.Nome
			if item.Produto.Categoria != nil {
				categoria = item.Produto.Categoria.Descricao
			}
		}
		itens = append(itens, dto.ItemResumoResponse{
			Produto:       nome,
			Categoria:     categoria,
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			ValorTotal:    item.ValorUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade))),
		})
	}

	metodo, metodo2 := "", ""
	if t.MetodoPagamento != nil {
		metodo = t.MetodoPagamento.Descricao
	}
	if t.MetodoPagamento2 != nil {
		metodo2 = t.MetodoPagamento2.Descricao
	}

	return dto.TransacaoResumoResponse{
		TransacaoID: t.ID.String(),
		ValorTotal:  t.ValorTotal,
		Pagamento:   recibo.DescreverPagamento(metodo, metodo2, t.PagamentoMisto, t.ValorPago, t.ValorPagoSecundario),
		Status:      t.Status,
		Itens:       itens,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}
