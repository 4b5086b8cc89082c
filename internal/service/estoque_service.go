package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apperror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/dto"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovimentoInput carries one quantity-affecting event into the ledger.
// ValorUnitario nil means "use the product's configured price".
type MovimentoInput struct {
	ProdutoID         uuid.UUID
	Quantidade        int
	TipoMovimento     string // model.MovimentoEntrada | model.MovimentoSaida
	ValorUnitario     *decimal.Decimal
	UsuarioID         uuid.UUID
	MetodoPagamentoID *uuid.UUID
}

// EstoqueService owns current on-hand quantity per product and the immutable
// movement log. Quantity is only ever changed by appending a movement.
type EstoqueService interface {
	// Movimentar applies one movement inside its own transaction.
	Movimentar(ctx context.Context, in MovimentoInput) (*model.Estoque, error)
	// MovimentarTx applies one movement inside a caller-owned transaction —
	// this is the entry point the sale processor uses, once per line item.
	MovimentarTx(ctx context.Context, tx *gorm.DB, in MovimentoInput) (*model.Estoque, error)
	// ListarMovimentacoes returns the record's movements most-recent-first,
	// with direction labels and pack/unit decomposition. Read-only.
	ListarMovimentacoes(ctx context.Context, estoqueID uuid.UUID) ([]dto.MovimentacaoResponse, error)
	ListarEstoques(ctx context.Context) ([]dto.EstoqueResponse, error)
}

type estoqueService struct {
	repo        repository.EstoqueRepository
	produtoRepo repository.ProdutoRepository
}

func NewEstoqueService(repo repository.EstoqueRepository, produtoRepo repository.ProdutoRepository) EstoqueService {
	return &estoqueService{repo: repo, produtoRepo: produtoRepo}
}

// ── Movimentar ────────────────────────────────────────────────────────────────

func (s *estoqueService) Movimentar(ctx context.Context, in MovimentoInput) (*model.Estoque, error) {
	var estoque *model.Estoque
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var txErr error
		estoque, txErr = s.MovimentarTx(ctx, tx, in)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return estoque, nil
}

func (s *estoqueService) MovimentarTx(ctx context.Context, tx *gorm.DB, in MovimentoInput) (*model.Estoque, error) {
	if in.Quantidade <= 0 {
		return nil, apperror.Validation("Quantidade é obrigatória")
	}
	if in.TipoMovimento != model.MovimentoEntrada && in.TipoMovimento != model.MovimentoSaida {
		return nil, apperror.Validation("Tipo de movimento inválido")
	}

	estoque, err := s.resolverEstoqueTx(tx, in.ProdutoID)
	if err != nil {
		return nil, err
	}

	valorUnitario, err := s.resolverValorUnitarioTx(tx, in)
	if err != nil {
		return nil, err
	}

	// Check-then-decrement runs against a row locked FOR UPDATE (see
	// FindAtivoPorProdutoTx), so the quantity read here cannot go stale
	// under a concurrent saída.
	if in.TipoMovimento == model.MovimentoSaida && in.Quantidade > estoque.Quantidade {
		return nil, apperror.Conflict(fmt.Sprintf(
			"Estoque insuficiente. Quantidade disponível: %d", estoque.Quantidade))
	}

	quantidadeDecimal := decimal.NewFromInt(int64(in.Quantidade))
	mov := &model.EstoqueMovimentacao{
		EstoqueID:         estoque.ID,
		TipoMovimento:     in.TipoMovimento,
		Quantidade:        in.Quantidade,
		ValorUnitario:     valorUnitario,
		ValorTotal:        valorUnitario.Mul(quantidadeDecimal),
		UsuarioID:         in.UsuarioID,
		MetodoPagamentoID: in.MetodoPagamentoID,
	}
	if err := s.repo.CreateMovimentacaoTx(tx, mov); err != nil {
		return nil, apperror.Processing("Falha ao registrar a movimentação de estoque", err)
	}

	novaQuantidade := estoque.Quantidade + in.Quantidade
	if in.TipoMovimento == model.MovimentoSaida {
		novaQuantidade = estoque.Quantidade - in.Quantidade
	}
	if err := s.repo.AtualizarQuantidadeTx(tx, estoque.ID, novaQuantidade); err != nil {
		return nil, apperror.Processing("Falha ao atualizar o estoque", err)
	}
	estoque.Quantidade = novaQuantidade
	return estoque, nil
}

// resolverEstoqueTx loads the product's active stock record, auto-creating a
// zero-quantity baseline when none exists yet (see DESIGN.md — the divergent
// legacy behavior was resolved in favor of auto-vivification).
func (s *estoqueService) resolverEstoqueTx(tx *gorm.DB, produtoID uuid.UUID) (*model.Estoque, error) {
	estoque, err := s.repo.FindAtivoPorProdutoTx(tx, produtoID, true)
	if err == nil && estoque != nil {
		return estoque, nil
	}

	estoque = &model.Estoque{
		ProdutoID:  produtoID,
		Quantidade: 0,
		Status:     model.EstoqueAtivo,
	}
	if err := s.repo.CreateTx(tx, estoque); err != nil {
		return nil, apperror.Processing("Falha ao criar o registro de estoque", err)
	}
	return estoque, nil
}

// resolverValorUnitarioTx applies the price precedence: caller-supplied price
// first, then the product's configured default; neither available is a
// validation failure — prices are never invented.
func (s *estoqueService) resolverValorUnitarioTx(tx *gorm.DB, in MovimentoInput) (decimal.Decimal, error) {
	if in.ValorUnitario != nil && !in.ValorUnitario.IsZero() {
		return *in.ValorUnitario, nil
	}
	produto, err := s.produtoRepo.FindByIDTx(tx, in.ProdutoID)
	if err == nil && produto != nil && !produto.ValorUnitario.IsZero() {
		return produto.ValorUnitario, nil
	}
	return decimal.Zero, apperror.Validation("Valor unitário é obrigatório")
}

// ── ListarMovimentacoes ───────────────────────────────────────────────────────

func (s *estoqueService) ListarMovimentacoes(ctx context.Context, estoqueID uuid.UUID) ([]dto.MovimentacaoResponse, error) {
	estoque, err := s.repo.FindByIDComProduto(ctx, estoqueID)
	if err != nil || estoque == nil {
		return nil, apperror.NotFound("Estoque não encontrado")
	}

	movs, err := s.repo.ListMovimentacoes(ctx, estoqueID)
	if err != nil {
		return nil, apperror.Processing("Falha ao listar as movimentações", err)
	}

	out := make([]dto.MovimentacaoResponse, 0, len(movs))
	for i := range movs {
		m := &movs[i]
		fardos, unidades := 0, m.Quantidade
		valorAtual := decimal.Zero
		if estoque.Produto != nil {
			fardos, unidades = estoque.Produto.DecomporQuantidade(m.Quantidade)
			valorAtual = estoque.Produto.ValorUnitario
		}
		resp := dto.MovimentacaoResponse{
			ID:                 m.ID.String(),
			TipoMovimento:      m.TipoMovimento,
			Rotulo:             m.RotuloTipo(),
			Quantidade:         m.Quantidade,
			Fardos:             fardos,
			Unidades:           unidades,
			ValorUnitario:      m.ValorUnitario,
			ValorUnitarioAtual: valorAtual,
			ValorTotal:         m.ValorTotal,
			UsuarioID:          m.UsuarioID.String(),
			CreatedAt:          m.CreatedAt.Format(time.RFC3339),
		}
		if m.MetodoPagamentoID != nil {
			id := m.MetodoPagamentoID.String()
			resp.MetodoPagamentoID = &id
		}
		out = append(out, resp)
	}
	return out, nil
}

// ── ListarEstoques ────────────────────────────────────────────────────────────

func (s *estoqueService) ListarEstoques(ctx context.Context) ([]dto.EstoqueResponse, error) {
	estoques, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Processing("Falha ao listar o estoque", err)
	}
	out := make([]dto.EstoqueResponse, 0, len(estoques))
	for i := range estoques {
		e := &estoques[i]
		nome := ""
		if e.Produto != nil {
			nome = e.Produto.Nome
		}
		out = append(out, dto.EstoqueResponse{
			ID:         e.ID.String(),
			ProdutoID:  e.ProdutoID.String(),
			Produto:    nome,
			Quantidade: e.Quantidade,
			Status:     e.Status,
		})
	}
	return out, nil
}
