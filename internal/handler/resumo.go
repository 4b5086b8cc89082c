package handler

import (
	"net/http"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apierror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/middleware"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResumoHandler struct{ svc service.ResumoService }

func NewResumoHandler(svc service.ResumoService) *ResumoHandler { return &ResumoHandler{svc: svc} }

// ResumoDoCaixa godoc
// @Summary Resumo de fechamento de um caixa (somente transações ativas)
// @Tags resumo
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do caixa"
// @Success 200 {object} dto.ResumoCaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/resumo/caixa/{id} [get]
func (h *ResumoHandler) ResumoDoCaixa(c *gin.Context) {
	caixaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	usuarioID, ok := middleware.OperadorID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}
	resp, err := h.svc.ResumoDoCaixa(c.Request.Context(), caixaID, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumoGeral godoc
// @Summary Resumo consolidado de todos os caixas (ativas e canceladas)
// @Tags resumo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumoGeralResponse
// @Router /v1/resumo/geral [get]
func (h *ResumoHandler) ResumoGeral(c *gin.Context) {
	resp, err := h.svc.ResumoGeral(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
