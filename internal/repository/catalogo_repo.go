package repository

import (
	"context"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository groups the plain master-data lookups: categorias,
// marcas, unidades and métodos de pagamento. These carry no invariants of
// their own — they are display/reference data for the core.
type CatalogoRepository interface {
	ListCategorias(ctx context.Context) ([]model.Categoria, error)
	CreateCategoria(ctx context.Context, c *model.Categoria) error

	ListMarcas(ctx context.Context) ([]model.Marca, error)
	CreateMarca(ctx context.Context, m *model.Marca) error

	ListUnidades(ctx context.Context) ([]model.Unidade, error)
	CreateUnidade(ctx context.Context, u *model.Unidade) error

	ListMetodosPagamento(ctx context.Context) ([]model.MetodoPagamento, error)
	FindMetodoPagamento(ctx context.Context, id uuid.UUID) (*model.MetodoPagamento, error)
	CreateMetodoPagamento(ctx context.Context, m *model.MetodoPagamento) error
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) ListCategorias(ctx context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	err := r.db.WithContext(ctx).Where("ativo = true").Order("descricao ASC").Find(&out).Error
	return out, err
}

func (r *catalogoRepo) CreateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepo) ListMarcas(ctx context.Context) ([]model.Marca, error) {
	var out []model.Marca
	err := r.db.WithContext(ctx).Where("ativo = true").Order("descricao ASC").Find(&out).Error
	return out, err
}

func (r *catalogoRepo) CreateMarca(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *catalogoRepo) ListUnidades(ctx context.Context) ([]model.Unidade, error) {
	var out []model.Unidade
	err := r.db.WithContext(ctx).Where("ativo = true").Order("descricao ASC").Find(&out).Error
	return out, err
}

func (r *catalogoRepo) CreateUnidade(ctx context.Context, u *model.Unidade) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *catalogoRepo) ListMetodosPagamento(ctx context.Context) ([]model.MetodoPagamento, error) {
	var out []model.MetodoPagamento
	err := r.db.WithContext(ctx).Where("ativo = true").Order("descricao ASC").Find(&out).Error
	return out, err
}

func (r *catalogoRepo) FindMetodoPagamento(ctx context.Context, id uuid.UUID) (*model.MetodoPagamento, error) {
	var m model.MetodoPagamento
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *catalogoRepo) CreateMetodoPagamento(ctx context.Context, m *model.MetodoPagamento) error {
	return r.db.WithContext(ctx).Create(m).Error
}
