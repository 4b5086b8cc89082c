package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apperror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/dto"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const precoCacheTTL = 5 * time.Minute

// ProdutoService is the master-data surface: product CRUD plus the catalog
// lookups (categorias, marcas, unidades, métodos de pagamento) the frontend
// needs to assemble a sale.
type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error

	// ConsultarPreco answers the price-check station, cached in Redis so the
	// hot path skips Postgres.
	ConsultarPreco(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)

	ListarCategorias(ctx context.Context) ([]dto.CatalogoResponse, error)
	ListarMarcas(ctx context.Context) ([]dto.CatalogoResponse, error)
	ListarUnidades(ctx context.Context) ([]dto.CatalogoResponse, error)
	ListarMetodosPagamento(ctx context.Context) ([]dto.CatalogoResponse, error)
}

type produtoService struct {
	repo     repository.ProdutoRepository
	catalogo repository.CatalogoRepository
	rdb      *redis.Client
}

func NewProdutoService(repo repository.ProdutoRepository, catalogo repository.CatalogoRepository, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, catalogo: catalogo, rdb: rdb}
}

// ── CRUD ──────────────────────────────────────────────────────────────────────

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, apperror.Validation("Categoria inválida")
	}
	unidadeID, err := uuid.Parse(req.UnidadeID)
	if err != nil {
		return nil, apperror.Validation("Unidade inválida")
	}
	var marcaID *uuid.UUID
	if req.MarcaID != nil {
		id, err := uuid.Parse(*req.MarcaID)
		if err != nil {
			return nil, apperror.Validation("Marca inválida")
		}
		marcaID = &id
	}

	multiplo := req.MultiploVendas
	if multiplo < 1 {
		multiplo = 1
	}
	produto := &model.Produto{
		Nome:           req.Nome,
		Descricao:      req.Descricao,
		CategoriaID:    categoriaID,
		MarcaID:        marcaID,
		UnidadeID:      unidadeID,
		ValorUnitario:  req.ValorUnitario,
		MultiploVendas: multiplo,
		Ativo:          true,
	}
	if err := s.repo.Create(ctx, produto); err != nil {
		return nil, apperror.Processing("Falha ao criar o produto", err)
	}
	return s.ObterPorID(ctx, produto.ID)
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.FindByID(ctx, id)
	if err != nil || produto == nil {
		return nil, apperror.NotFound("Produto não encontrado")
	}
	return produtoToResponse(produto), nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Processing("Falha ao listar os produtos", err)
	}
	data := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		data = append(data, *produtoToResponse(&produtos[i]))
	}
	return &dto.ProdutoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.FindByID(ctx, id)
	if err != nil || produto == nil {
		return nil, apperror.NotFound("Produto não encontrado")
	}

	if req.Nome != nil {
		produto.Nome = *req.Nome
	}
	if req.Descricao != nil {
		produto.Descricao = req.Descricao
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apperror.Validation("Categoria inválida")
		}
		produto.CategoriaID = cid
	}
	if req.MarcaID != nil {
		mid, err := uuid.Parse(*req.MarcaID)
		if err != nil {
			return nil, apperror.Validation("Marca inválida")
		}
		produto.MarcaID = &mid
	}
	if req.UnidadeID != nil {
		uid, err := uuid.Parse(*req.UnidadeID)
		if err != nil {
			return nil, apperror.Validation("Unidade inválida")
		}
		produto.UnidadeID = uid
	}
	if req.ValorUnitario != nil {
		produto.ValorUnitario = *req.ValorUnitario
	}
	if req.MultiploVendas != nil && *req.MultiploVendas >= 1 {
		produto.MultiploVendas = *req.MultiploVendas
	}

	if err := s.repo.Update(ctx, produto); err != nil {
		return nil, apperror.Processing("Falha ao atualizar o produto", err)
	}
	s.invalidarPreco(ctx, id)
	return s.ObterPorID(ctx, id)
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperror.NotFound("Produto não encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apperror.Processing("Falha ao desativar o produto", err)
	}
	s.invalidarPreco(ctx, id)
	return nil
}

// ── Price check ───────────────────────────────────────────────────────────────

func precoCacheKey(id uuid.UUID) string { return "preco:" + id.String() }

func (s *produtoService) ConsultarPreco(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, precoCacheKey(id)).Bytes(); err == nil {
			var resp dto.ProdutoResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.ObterPorID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, precoCacheKey(id), payload, precoCacheTTL)
		}
	}
	return resp, nil
}

func (s *produtoService) invalidarPreco(ctx context.Context, id uuid.UUID) {
	if s.rdb != nil {
		s.rdb.Del(ctx, precoCacheKey(id))
	}
}

// ── Catalog lookups ───────────────────────────────────────────────────────────

func (s *produtoService) ListarCategorias(ctx context.Context) ([]dto.CatalogoResponse, error) {
	categorias, err := s.catalogo.ListCategorias(ctx)
	if err != nil {
		return nil, apperror.Processing("Falha ao listar as categorias", err)
	}
	out := make([]dto.CatalogoResponse, 0, len(categorias))
	for _, c := range categorias {
		out = append(out, dto.CatalogoResponse{ID: c.ID.String(), Descricao: c.Descricao, Ativo: c.Ativo})
	}
	return out, nil
}

func (s *produtoService) ListarMarcas(ctx context.Context) ([]dto.CatalogoResponse, error) {
	marcas, err := s.catalogo.ListMarcas(ctx)
	if err != nil {
		return nil, apperror.Processing("Falha ao listar as marcas", err)
	}
	out := make([]dto.CatalogoResponse, 0, len(marcas))
	for _, m := range marcas {
		out = append(out, dto.CatalogoResponse{ID: m.ID.String(), Descricao: m.Descricao, Ativo: m.Ativo})
	}
	return out, nil
}

func (s *produtoService) ListarUnidades(ctx context.Context) ([]dto.CatalogoResponse, error) {
	unidades, err := s.catalogo.ListUnidades(ctx)
	if err != nil {
		return nil, apperror.Processing("Falha ao listar as unidades", err)
	}
	out := make([]dto.CatalogoResponse, 0, len(unidades))
	for _, u := range unidades {
		out = append(out, dto.CatalogoResponse{ID: u.ID.String(), Descricao: u.Descricao, Ativo: u.Ativo})
	}
	return out, nil
}

func (s *produtoService) ListarMetodosPagamento(ctx context.Context) ([]dto.CatalogoResponse, error) {
	metodos, err := s.catalogo.ListMetodosPagamento(ctx)
	if err != nil {
		return nil, apperror.Processing("Falha ao listar os métodos de pagamento", err)
	}
	out := make([]dto.CatalogoResponse, 0, len(metodos))
	for _, m := range metodos {
		out = append(out, dto.CatalogoResponse{ID: m.ID.String(), Descricao: m.Descricao, Ativo: m.Ativo})
	}
	return out, nil
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	resp := &dto.ProdutoResponse{
		ID:             p.ID.String(),
		Nome:           p.Nome,
		Descricao:      p.Descricao,
		ValorUnitario:  p.ValorUnitario,
		MultiploVendas: p.MultiploVendas,
		Ativo:          p.Ativo,
	}
	if p.Categoria != nil {
		resp.Categoria = p.Categoria.Descricao
	}
	if p.Marca != nil {
		resp.Marca = p.Marca.Descricao
	}
	if p.Unidade != nil {
		resp.Unidade = p.Unidade.Descricao
	}
	return resp
}
