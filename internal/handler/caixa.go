package handler

import (
	"net/http"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apierror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/middleware"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/service"

	"github.com/gin-gonic/gin"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre o caixa do dia para o operador autenticado
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.CaixaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	usuarioID, ok := middleware.OperadorID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha o caixa aberto do operador autenticado
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.FecharCaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	usuarioID, ok := middleware.OperadorID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerificarEstado godoc
// @Summary Resolve o estado do caixa do dia para o operador
// @Description Retorna o caixa aberto de hoje, ou um conflito com código 1
// @Description (caixa de dia anterior aberto) / 2 (caixa de hoje já fechado).
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CaixaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/estado [get]
func (h *CaixaHandler) VerificarEstado(c *gin.Context) {
	usuarioID, ok := middleware.OperadorID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}
	resp, err := h.svc.VerificarEstado(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ativo godoc
// @Summary Retorna o caixa atualmente aberto do operador
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixa/ativo [get]
func (h *CaixaHandler) Ativo(c *gin.Context) {
	usuarioID, ok := middleware.OperadorID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}
	resp, err := h.svc.FindAtivoPorUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
