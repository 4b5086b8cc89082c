package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apperror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/dto"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/recibo"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CaixaService owns the daily register lifecycle of one operator.
type CaixaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID) (*dto.CaixaResponse, error)
	Fechar(ctx context.Context, usuarioID uuid.UUID) (*dto.FecharCaixaResponse, error)
	// VerificarEstado resolves which of the four register states applies,
	// driving the frontend decision between retomar / abrir novo / bloqueado.
	// Performs no mutation.
	VerificarEstado(ctx context.Context, usuarioID uuid.UUID) (*dto.CaixaResponse, error)
	FindAtivoPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*dto.CaixaResponse, error)
}

type caixaService struct {
	repo       repository.CaixaRepository
	resumo     ResumoService
	dispatcher *worker.Dispatcher
	adminEmail string
	agora      func() time.Time
}

func NewCaixaService(repo repository.CaixaRepository, resumo ResumoService, dispatcher *worker.Dispatcher, adminEmail string) CaixaService {
	return &caixaService{
		repo:       repo,
		resumo:     resumo,
		dispatcher: dispatcher,
		adminEmail: adminEmail,
		agora:      time.Now,
	}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *caixaService) Abrir(ctx context.Context, usuarioID uuid.UUID) (*dto.CaixaResponse, error) {
	if usuarioID == uuid.Nil {
		return nil, apperror.Validation("Usuário não informado")
	}

	agora := s.agora()
	// A register left open from a previous day blocks opening a new one, same
	// conflict VerificarEstado reports — never let it fall through to the
	// partial unique index as a processing failure.
	if aberto, err := s.repo.FindAbertoPorUsuario(ctx, usuarioID); err == nil && aberto != nil {
		if !aberto.AbertoNoDia(agora) {
			return nil, apperror.ConflictCode(apperror.CodigoCaixaAnteriorAberto,
				"Feche o caixa do dia anterior antes de abrir um novo")
		}
		return nil, apperror.Conflict("Já existe um caixa aberto hoje para este operador")
	}
	if hoje, err := s.repo.FindPorUsuarioNoDia(ctx, usuarioID, agora); err == nil && hoje != nil {
		return nil, apperror.Conflict("O caixa de hoje já foi fechado, procure a administração")
	}

	caixa := &model.Caixa{
		UsuarioID:  usuarioID,
		Status:     model.CaixaAberto,
		ValorTotal: decimal.Zero,
		AbertoEm:   agora,
	}
	if err := s.repo.Create(ctx, caixa); err != nil {
		return nil, apperror.Processing("Falha ao abrir o caixa", err)
	}
	return caixaToResponse(caixa), nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────

func (s *caixaService) Fechar(ctx context.Context, usuarioID uuid.UUID) (*dto.FecharCaixaResponse, error) {
	if usuarioID == uuid.Nil {
		return nil, apperror.Validation("Usuário não informado")
	}

	caixa, err := s.repo.FindAbertoPorUsuario(ctx, usuarioID)
	if err != nil || caixa == nil {
		return nil, apperror.NotFound("Nenhum caixa aberto para este operador")
	}

	fechadoEm := s.agora()
	caixa.Status = model.CaixaFechado
	caixa.FechadoEm = &fechadoEm
	if err := s.repo.Update(ctx, caixa); err != nil {
		return nil, apperror.Processing("Falha ao fechar o caixa", err)
	}

	// Closing summary mail to administration — best-effort side effect,
	// a broken mailer never blocks the close.
	s.enviarResumoFechamento(ctx, caixa, fechadoEm)

	return &dto.FecharCaixaResponse{
		CaixaID:   caixa.ID.String(),
		AbertoEm:  caixa.AbertoEm.Format(time.RFC3339),
		FechadoEm: fechadoEm.Format(time.RFC3339),
	}, nil
}

func (s *caixaService) enviarResumoFechamento(ctx context.Context, caixa *model.Caixa, fechadoEm time.Time) {
	if s.dispatcher == nil || s.resumo == nil || s.adminEmail == "" {
		return
	}
	r, err := s.resumo.ResumoDoCaixa(ctx, caixa.ID, caixa.UsuarioID)
	if err != nil {
		return
	}
	body := fmt.Sprintf(
		"Caixa %s fechado em %s.\n\nTotal recebido: %s\nVendas ativas: %d\nVendas mistas: %d (%s)\n",
		caixa.ID, fechadoEm.Format("02/01/2006 15:04"),
		recibo.FormatarBRL(r.TotalRecebido), len(r.Transacoes),
		r.VendasMistas, recibo.FormatarBRL(r.ValorMisto))
	_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailPayload{
		To:      s.adminEmail,
		Subject: "Fechamento de caixa " + fechadoEm.Format("02/01/2006"),
		Body:    body,
	})
}

// ── VerificarEstado ───────────────────────────────────────────────────────────
// Precedence order matters:
//  1. an open register from a previous day blocks everything (codigo 1);
//  2. today's open register is returned for resumption;
//  3. today's closed register blocks a re-open (codigo 2);
//  4. otherwise there is no register today.

func (s *caixaService) VerificarEstado(ctx context.Context, usuarioID uuid.UUID) (*dto.CaixaResponse, error) {
	if usuarioID == uuid.Nil {
		return nil, apperror.Validation("Usuário não informado")
	}

	agora := s.agora()

	if aberto, err := s.repo.FindAbertoPorUsuario(ctx, usuarioID); err == nil && aberto != nil {
		if !aberto.AbertoNoDia(agora) {
			return nil, apperror.ConflictCode(apperror.CodigoCaixaAnteriorAberto,
				"Feche o caixa do dia anterior antes de continuar")
		}
		return caixaToResponse(aberto), nil
	}

	if hoje, err := s.repo.FindPorUsuarioNoDia(ctx, usuarioID, agora); err == nil && hoje != nil {
		if hoje.Status == model.CaixaFechado {
			return nil, apperror.ConflictCode(apperror.CodigoCaixaHojeFechado,
				"O caixa de hoje já foi fechado")
		}
	}

	return nil, apperror.NotFound("Nenhum caixa para o dia de hoje")
}

// ── FindAtivoPorUsuario ───────────────────────────────────────────────────────

func (s *caixaService) FindAtivoPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*dto.CaixaResponse, error) {
	caixa, err := s.repo.FindAbertoPorUsuario(ctx, usuarioID)
	if err != nil || caixa == nil {
		return nil, apperror.NotFound("Nenhum caixa aberto para este operador")
	}
	return caixaToResponse(caixa), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func caixaToResponse(c *model.Caixa) *dto.CaixaResponse {
	resp := &dto.CaixaResponse{
		ID:         c.ID.String(),
		UsuarioID:  c.UsuarioID.String(),
		Status:     c.Status,
		ValorTotal: c.ValorTotal,
		AbertoEm:   c.AbertoEm.Format(time.RFC3339),
	}
	if c.FechadoEm != nil {
		t := c.FechadoEm.Format(time.RFC3339)
		resp.FechadoEm = &t
	}
	return resp
}
