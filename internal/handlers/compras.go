package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RicardoFM1/Backend-CafeFila/internal/models"
	"github.com/RicardoFM1/Backend-CafeFila/internal/response"
	"github.com/RicardoFM1/Backend-CafeFila/internal/storage"

	"github.com/gin-gonic/gin"
)

// Os horários das compras seguem o fuso da cafeteria.
var fusoSaoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.Local
	}
	return loc
}()

func agoraSaoPaulo() time.Time {
	return time.Now().In(fusoSaoPaulo)
}

type ComprarRequest struct {
	UsuarioID  uint   `json:"usuario_id" binding:"required"`
	Item       string `json:"item" binding:"required,oneof=cafe filtro"`
	Quantidade int    `json:"quantidade" binding:"required,gte=1"`
}

type AtualizarCompraRequest struct {
	Item       *string `json:"item" binding:"omitempty,oneof=cafe filtro"`
	Quantidade *int    `json:"quantidade" binding:"omitempty,gte=1"`
}

// CompraAgrupada é uma linha de exibição que funde as compras simultâneas de
// um usuário (mesmo minuto) em uma descrição única com o total somado.
type CompraAgrupada struct {
	UsuarioID  uint      `json:"usuario_id"`
	Email      string    `json:"email"`
	Descricao  string    `json:"descricao"`
	Total      int       `json:"total"`
	DataCompra time.Time `json:"data_compra"`
}

// @Summary		Listagem de compras
// @Description	Lista o histórico de compras, do mais recente para o mais antigo. Aceita filtros por usuário, item (parcial), tipo (exato) e intervalo de datas; agrupar=true funde compras do mesmo usuário no mesmo minuto.
// @Tags			compras
// @Produce		json
// @Security		BearerAuth
// @Param			usuario_id	query		string					false	"Filtra pelo ID do usuário"
// @Param			item		query		string					false	"Filtra por trecho do nome do item"
// @Param			tipo		query		string					false	"Filtra pelo tipo exato: cafe ou filtro"
// @Param			data_inicio	query		string					false	"Data inicial (YYYY-MM-DD)"
// @Param			data_fim	query		string					false	"Data final, inclusiva (YYYY-MM-DD)"
// @Param			agrupar		query		string					false	"true para agrupar por usuário e minuto"
// @Success		200			{array}		models.Compra			"Compras encontradas"
// @Failure		400			{object}	response.ErrorResponse	"Datas inválidas (VALIDATION_ERROR)"
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/compras [get]
func ListarCompras(c *gin.Context) {
	query := storage.DB.Preload("Usuario").Preload("AlteradoPor")

	if usuarioID := c.Query("usuario_id"); usuarioID != "" {
		query = query.Where("usuario_id = ?", usuarioID)
	}

	if item := c.Query("item"); item != "" {
		query = query.Where("item LIKE ?", "%"+item+"%")
	}

	if tipo := c.Query("tipo"); tipo == "cafe" || tipo == "filtro" {
		query = query.Where("item = ?", tipo)
	}

	dataInicio := c.Query("data_inicio")
	dataFim := c.Query("data_fim")
	if dataInicio != "" && dataFim != "" {
		inicio, err1 := time.ParseInLocation("2006-01-02", dataInicio, fusoSaoPaulo)
		fim, err2 := time.ParseInLocation("2006-01-02", dataFim, fusoSaoPaulo)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Datas inválidas. Use o formato YYYY-MM-DD.",
			})
			return
		}
		// O dia final entra inteiro no intervalo.
		query = query.Where("data_compra BETWEEN ? AND ?", inicio, fim.Add(24*time.Hour-time.Second))
	}

	var compras []models.Compra
	if err := query.Order("data_compra DESC").Find(&compras).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao listar as compras.",
			Details: err.Error(),
		})
		return
	}

	if c.Query("agrupar") == "true" {
		c.JSON(http.StatusOK, agruparCompras(compras))
		return
	}

	c.JSON(http.StatusOK, compras)
}

// agruparCompras funde, apenas na exibição, as compras de um mesmo usuário
// registradas no mesmo minuto (café + filtro de uma conclusão de fila viram
// uma linha só). O armazenamento continua com um registro por item.
func agruparCompras(compras []models.Compra) []CompraAgrupada {
	type chave struct {
		usuarioID uint
		minuto    time.Time
	}

	agrupadas := make([]CompraAgrupada, 0, len(compras))
	indice := make(map[chave]int)

	for _, compra := range compras {
		k := chave{compra.UsuarioID, compra.DataCompra.Truncate(time.Minute)}
		if i, ok := indice[k]; ok {
			agrupadas[i].Descricao += " + " + fmt.Sprintf("%s (%d)", compra.Item, compra.Quantidade)
			agrupadas[i].Total += compra.Quantidade
			continue
		}
		indice[k] = len(agrupadas)
		agrupadas = append(agrupadas, CompraAgrupada{
			UsuarioID:  compra.UsuarioID,
			Email:      compra.Usuario.Email,
			Descricao:  fmt.Sprintf("%s (%d)", compra.Item, compra.Quantidade),
			Total:      compra.Quantidade,
			DataCompra: compra.DataCompra,
		})
	}

	return agrupadas
}

// @Summary		Compra direta
// @Description	Registra uma compra imediatamente, sem passar pela fila
// @Tags			compras
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			compra	body		ComprarRequest			true	"Dados da compra"
// @Success		201		{object}	map[string]interface{}	"Compra registrada"
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Usuário não encontrado (USER_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/compras [post]
func Comprar(c *gin.Context) {
	var req ComprarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados.",
			Details: err.Error(),
		})
		return
	}

	var usuario models.Usuario
	if err := storage.DB.First(&usuario, req.UsuarioID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Usuário não encontrado.",
		})
		return
	}

	compra := models.Compra{
		UsuarioID:  req.UsuarioID,
		Item:       strings.ToLower(req.Item),
		Quantidade: req.Quantidade,
		DataCompra: agoraSaoPaulo(),
	}

	if err := storage.DB.Create(&compra).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao efetuar compra.",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Compra efetuada com sucesso!",
		"compra":  compra,
	})
}

// @Summary		Correção de compra
// @Description	Admin corrige item e/ou quantidade de um registro de compra; a correção fica carimbada com o autor e o horário
// @Tags			compras
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id		path		string					true	"ID do registro de compra"
// @Param			dados	body		AtualizarCompraRequest	true	"Campos a corrigir"
// @Success		200		{object}	map[string]interface{}	"Compra atualizada"
// @Failure		400		{object}	response.ErrorResponse	"Erro de validação (VALIDATION_ERROR)"
// @Failure		403		{object}	response.ErrorResponse	"Apenas administradores (FORBIDDEN)"
// @Failure		404		{object}	response.ErrorResponse	"Compra não encontrada (PURCHASE_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/compras/{id} [patch]
func AtualizarCompra(c *gin.Context) {
	usuarioLogado, err := usuarioAtual(c)
	if err != nil || !usuarioLogado.Admin {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "Acesso negado. Apenas administradores podem editar compras.",
		})
		return
	}

	var compra models.Compra
	if err := storage.DB.First(&compra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "PURCHASE_NOT_FOUND",
			Message: "Compra não encontrada.",
		})
		return
	}

	var req AtualizarCompraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados.",
			Details: err.Error(),
		})
		return
	}

	if req.Item != nil {
		compra.Item = *req.Item
	}
	if req.Quantidade != nil {
		compra.Quantidade = *req.Quantidade
	}

	agora := agoraSaoPaulo()
	compra.UltimaAlteracaoPor = &usuarioLogado.ID
	compra.UltimaAlteracaoEm = &agora

	if err := storage.DB.Save(&compra).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao atualizar compra.",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Compra atualizada com sucesso.",
		"data":    compra,
	})
}
