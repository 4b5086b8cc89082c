package handler

import (
	"net/http"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apierror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/dto"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/middleware"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

// Movimentar godoc
// @Summary Registra uma entrada ou saída manual de estoque
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimentarEstoqueRequest true "Movimento"
// @Success 200 {object} dto.EstoqueResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/estoque/movimentar [post]
func (h *EstoqueHandler) Movimentar(c *gin.Context) {
	var req dto.MovimentarEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := middleware.OperadorID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Produto inválido"))
		return
	}

	in := service.MovimentoInput{
		ProdutoID:     produtoID,
		Quantidade:    req.Quantidade,
		TipoMovimento: req.TipoMovimento,
		ValorUnitario: req.ValorUnitario,
		UsuarioID:     usuarioID,
	}
	if req.MetodoPagamentoID != nil {
		if id, err := uuid.Parse(*req.MetodoPagamentoID); err == nil {
			in.MetodoPagamentoID = &id
		}
	}

	estoque, err := h.svc.Movimentar(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.EstoqueResponse{
		ID:         estoque.ID.String(),
		ProdutoID:  estoque.ProdutoID.String(),
		Quantidade: estoque.Quantidade,
		Status:     estoque.Status,
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista os registros de estoque com o produto associado
// @Tags estoque
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EstoqueResponse
// @Router /v1/estoque [get]
func (h *EstoqueHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarEstoques(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimentacoes godoc
// @Summary Lista as movimentações de um registro de estoque
// @Tags estoque
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do estoque"
// @Success 200 {array} dto.MovimentacaoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/estoque/{id}/movimentacoes [get]
func (h *EstoqueHandler) Movimentacoes(c *gin.Context) {
	estoqueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ListarMovimentacoes(c.Request.Context(), estoqueID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
