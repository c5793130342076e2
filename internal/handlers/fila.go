package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/RicardoFM1/Backend-CafeFila/internal/models"
	"github.com/RicardoFM1/Backend-CafeFila/internal/response"
	"github.com/RicardoFM1/Backend-CafeFila/internal/storage"
	"github.com/RicardoFM1/Backend-CafeFila/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Erros de negócio da fila. Qualquer um deles aborta a transação inteira:
// nem compras parciais nem renumeração pela metade.
var (
	errJaNaFila      = errors.New("usuário já está na fila")
	errNaoEstaNaFila = errors.New("usuário não encontrado na fila")
	errNaoEhPrimeiro = errors.New("apenas o primeiro da fila pode concluir")
	errFiltroSemCafe = errors.New("filtro exige café pendente")
)

// travarFila serializa a transação atual com os demais mutadores da fila e
// carrega todos os slots ativos. Dois callers concorrentes nunca calculam a
// mesma "próxima posição" nem compactam duas vezes: o segundo espera o commit
// do primeiro. O lock é liberado junto com a transação.
func travarFila(tx *gorm.DB) ([]models.Fila, error) {
	if err := storage.LockFila(tx); err != nil {
		return nil, err
	}
	var fila []models.Fila
	err := tx.Order("posicao ASC").Find(&fila).Error
	return fila, err
}

func ultimaPosicao(fila []models.Fila) int {
	max := 0
	for _, e := range fila {
		if e.Posicao > max {
			max = e.Posicao
		}
	}
	return max
}

// @Summary		Listagem da fila
// @Description	Lista a fila do café ordenada por posição, com os dados do usuário de cada slot
// @Tags			fila
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Fila				"Fila ordenada por posição"
// @Failure		500	{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/fila [get]
func ListarFila(c *gin.Context) {
	var fila []models.Fila
	if err := storage.DB.
		Preload("Usuario").
		Order("posicao ASC").
		Find(&fila).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao listar a fila.",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, fila)
}

// @Summary		Slot por posição
// @Tags			fila
// @Produce		json
// @Security		BearerAuth
// @Param			pos	path		string					true	"Posição na fila (1 = primeiro)"
// @Success		200	{object}	models.Fila				"Slot encontrado"
// @Failure		400	{object}	response.ErrorResponse	"Posição inválida (INVALID_POSITION)"
// @Failure		404	{object}	response.ErrorResponse	"Nenhum slot nesta posição (POSITION_NOT_FOUND)"
// @Router			/fila/{pos} [get]
func BuscarPorPosicao(c *gin.Context) {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil || pos < 1 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_POSITION",
			Message: "Posição inválida.",
		})
		return
	}

	var entrada models.Fila
	if err := storage.DB.Preload("Usuario").Where("posicao = ?", pos).First(&entrada).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "POSITION_NOT_FOUND",
			Message: "Nenhum usuário nesta posição da fila.",
		})
		return
	}

	c.JSON(http.StatusOK, entrada)
}

// @Summary		Entrar na fila
// @Description	Adiciona o usuário autenticado ao final da fila com os pedidos zerados
// @Tags			fila
// @Produce		json
// @Security		BearerAuth
// @Success		201	{object}	map[string]interface{}	"Entrada criada no final da fila"
// @Failure		409	{object}	response.ErrorResponse	"Usuário já está na fila (ALREADY_IN_QUEUE)"
// @Failure		500	{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/fila/entrar [post]
func EntrarNaFila(c *gin.Context) {
	userID := c.GetUint("userID")

	var entrada models.Fila
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		fila, err := travarFila(tx)
		if err != nil {
			return err
		}

		for _, e := range fila {
			if e.UsuarioID == userID {
				return errJaNaFila
			}
		}

		entrada = models.Fila{
			UsuarioID: userID,
			Posicao:   ultimaPosicao(fila) + 1,
		}
		return tx.Create(&entrada).Error
	})

	if errors.Is(err, errJaNaFila) {
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "ALREADY_IN_QUEUE",
			Message: "Usuário já está na fila.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao entrar na fila.",
			Details: err.Error(),
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: "usuario_entrou",
		Data: map[string]interface{}{
			"usuario_id": userID,
			"posicao":    entrada.Posicao,
		},
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuário adicionado à fila com sucesso!",
		"dados":   entrada,
	})
}

// @Summary		Adicionar item ao pedido
// @Description	Incrementa em 1 o item pendente do usuário autenticado; se ele ainda não está na fila, entra no final com o item iniciado em 1
// @Tags			fila
// @Produce		json
// @Security		BearerAuth
// @Param			item_type	path		string					true	"Tipo do item: cafe ou filtro"
// @Success		200			{object}	map[string]interface{}	"Item incrementado no slot existente"
// @Success		201			{object}	map[string]interface{}	"Usuário entrou na fila e o item foi iniciado"
// @Failure		400			{object}	response.ErrorResponse	"Tipo de item inválido (INVALID_ITEM_TYPE)"
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/fila/adicionar_pedido/{item_type} [patch]
func AdicionarPedido(c *gin.Context) {
	itemType := c.Param("item_type")
	if itemType != "cafe" && itemType != "filtro" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_ITEM_TYPE",
			Message: "Tipo de item inválido. Use \"cafe\" ou \"filtro\".",
		})
		return
	}

	userID := c.GetUint("userID")

	var entrada models.Fila
	criado := false
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		fila, err := travarFila(tx)
		if err != nil {
			return err
		}

		for _, e := range fila {
			if e.UsuarioID == userID {
				entrada = e
				if itemType == "cafe" {
					entrada.Cafe++
				} else {
					entrada.Filtro++
				}
				return tx.Save(&entrada).Error
			}
		}

		// Entrada implícita: o pedido cria o slot no final da fila.
		criado = true
		entrada = models.Fila{
			UsuarioID: userID,
			Posicao:   ultimaPosicao(fila) + 1,
		}
		if itemType == "cafe" {
			entrada.Cafe = 1
		} else {
			entrada.Filtro = 1
		}
		return tx.Create(&entrada).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao adicionar item ao pedido.",
			Details: err.Error(),
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: "pedido_atualizado",
		Data: map[string]interface{}{
			"usuario_id": userID,
			"cafe":       entrada.Cafe,
			"filtro":     entrada.Filtro,
		},
	})

	if criado {
		c.JSON(http.StatusCreated, gin.H{
			"message": "Usuário adicionado à fila e item \"" + itemType + "\" adicionado ao pedido com sucesso!",
			"dados":   entrada,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item \"" + itemType + "\" adicionado ao pedido com sucesso!",
		"dados":   entrada,
	})
}

type AtualizarQuantidadeRequest struct {
	Tipo       string `json:"tipo" binding:"required,oneof=cafe filtro"`
	Quantidade *int   `json:"quantidade" binding:"required,gte=0"`
}

// @Summary		Atualizar quantidade de um item
// @Description	Define a quantidade pendente do item para o usuário autenticado; cria o slot no final da fila se necessário. Filtro só pode ser definido com café pendente.
// @Tags			fila
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			dados	body		AtualizarQuantidadeRequest	true	"Tipo e nova quantidade"
// @Success		200		{object}	map[string]interface{}		"Quantidade atualizada"
// @Failure		400		{object}	response.ErrorResponse		"Erro de validação (VALIDATION_ERROR) ou filtro sem café (FILTER_REQUIRES_COFFEE)"
// @Failure		500		{object}	response.ErrorResponse		"Erro do servidor (DB_ERROR)"
// @Router			/fila/atualizar_quantidade [patch]
func AtualizarQuantidade(c *gin.Context) {
	var req AtualizarQuantidadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados.",
			Details: err.Error(),
		})
		return
	}

	userID := c.GetUint("userID")
	quantidade := *req.Quantidade

	var entrada models.Fila
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		fila, err := travarFila(tx)
		if err != nil {
			return err
		}

		existente := false
		for _, e := range fila {
			if e.UsuarioID == userID {
				entrada = e
				existente = true
				break
			}
		}
		if !existente {
			entrada = models.Fila{
				UsuarioID: userID,
				Posicao:   ultimaPosicao(fila) + 1,
			}
		}

		// Regra de negócio: só se carrega filtro quando há café pendente.
		if req.Tipo == "filtro" && quantidade > 0 && entrada.Cafe <= 0 {
			return errFiltroSemCafe
		}

		if existente {
			atual := entrada.Cafe
			if req.Tipo == "filtro" {
				atual = entrada.Filtro
			}
			if atual == quantidade {
				// Idempotente: valor igual não gera escrita nem novo updated_at.
				return nil
			}
		}

		if req.Tipo == "cafe" {
			entrada.Cafe = quantidade
		} else {
			entrada.Filtro = quantidade
		}
		return tx.Save(&entrada).Error
	})

	if errors.Is(err, errFiltroSemCafe) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "FILTER_REQUIRES_COFFEE",
			Message: "Adicione Café antes de adicionar Filtro.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao atualizar a quantidade.",
			Details: err.Error(),
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: "pedido_atualizado",
		Data: map[string]interface{}{
			"usuario_id": userID,
			"cafe":       entrada.Cafe,
			"filtro":     entrada.Filtro,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Quantidade de %s atualizada para %d com sucesso!", req.Tipo, quantidade),
		"item":    entrada,
	})
}

// @Summary		Mover usuário para a segunda posição
// @Description	Admin move um usuário da fila para logo atrás de quem está sendo atendido. O primeiro da fila nunca é deslocado.
// @Tags			fila
// @Produce		json
// @Security		BearerAuth
// @Param			usuario_id	path		string					true	"ID do usuário a mover"
// @Success		200			{object}	map[string]interface{}	"Usuário movido, ou já estava na primeira/segunda posição"
// @Failure		400			{object}	response.ErrorResponse	"ID inválido (VALIDATION_ERROR)"
// @Failure		403			{object}	response.ErrorResponse	"Apenas administradores (FORBIDDEN)"
// @Failure		404			{object}	response.ErrorResponse	"Usuário não está na fila (NOT_IN_QUEUE)"
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/fila/mover_proximo/{usuario_id} [patch]
func MoverParaProximo(c *gin.Context) {
	usuarioLogado, err := usuarioAtual(c)
	if err != nil || !usuarioLogado.Admin {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "Acesso negado. Apenas administradores podem mover usuários na fila.",
		})
		return
	}

	usuarioID, err := strconv.Atoi(c.Param("usuario_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "ID de usuário inválido.",
		})
		return
	}

	jaNoTopo := false
	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		fila, err := travarFila(tx)
		if err != nil {
			return err
		}

		var mover *models.Fila
		for i := range fila {
			if fila[i].UsuarioID == uint(usuarioID) {
				mover = &fila[i]
				break
			}
		}
		if mover == nil {
			return errNaoEstaNaFila
		}

		if mover.Posicao <= 2 {
			jaNoTopo = true
			return nil
		}

		// Abre espaço na segunda posição sem tocar em quem está sendo atendido.
		if err := tx.Model(&models.Fila{}).
			Where("posicao BETWEEN ? AND ?", 2, mover.Posicao-1).
			UpdateColumn("posicao", gorm.Expr("posicao + 1")).Error; err != nil {
			return err
		}

		return tx.Model(mover).UpdateColumn("posicao", 2).Error
	})

	if errors.Is(err, errNaoEstaNaFila) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_IN_QUEUE",
			Message: "Usuário não encontrado na fila.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao mover usuário para a segunda posição.",
			Details: err.Error(),
		})
		return
	}

	if jaNoTopo {
		c.JSON(http.StatusOK, gin.H{
			"message": "Usuário já está na primeira ou segunda posição da fila. Nenhuma ação necessária.",
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: "fila_movida",
		Data: map[string]interface{}{
			"usuario_id":   usuarioID,
			"nova_posicao": 2,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"message":      "Usuário movido para a segunda posição da fila com sucesso!",
		"usuario_id":   usuarioID,
		"nova_posicao": 2,
	})
}

// @Summary		Concluir compra e voltar para o final
// @Description	Converte os itens pendentes do primeiro da fila em registros de compra, fecha o buraco na fila e recoloca o usuário no final com os pedidos zerados. Tudo em uma única transação.
// @Tags			fila
// @Produce		json
// @Security		BearerAuth
// @Param			usuario_id	path		string					true	"ID do usuário que está sendo atendido"
// @Success		200			{object}	map[string]interface{}	"Compra concluída e usuário recolocado no final"
// @Failure		400			{object}	response.ErrorResponse	"ID inválido (VALIDATION_ERROR)"
// @Failure		403			{object}	response.ErrorResponse	"Usuário não é o primeiro da fila (NOT_FIRST)"
// @Failure		404			{object}	response.ErrorResponse	"Usuário não está na fila (NOT_IN_QUEUE)"
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/fila/concluir/{usuario_id} [post]
func ConcluirCompra(c *gin.Context) {
	usuarioID, err := strconv.Atoi(c.Param("usuario_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "ID de usuário inválido.",
		})
		return
	}

	var novaEntrada models.Fila
	itensComprados := map[string]int{}
	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		fila, err := travarFila(tx)
		if err != nil {
			return err
		}

		var entrada *models.Fila
		for i := range fila {
			if fila[i].UsuarioID == uint(usuarioID) {
				entrada = &fila[i]
				break
			}
		}
		if entrada == nil {
			return errNaoEstaNaFila
		}

		if entrada.Posicao != 1 {
			return errNaoEhPrimeiro
		}

		agora := agoraSaoPaulo()
		if entrada.Cafe > 0 {
			compra := models.Compra{
				UsuarioID:  entrada.UsuarioID,
				Item:       "cafe",
				Quantidade: entrada.Cafe,
				DataCompra: agora,
			}
			if err := tx.Create(&compra).Error; err != nil {
				return err
			}
			itensComprados["cafe"] = entrada.Cafe
		}
		if entrada.Filtro > 0 {
			compra := models.Compra{
				UsuarioID:  entrada.UsuarioID,
				Item:       "filtro",
				Quantidade: entrada.Filtro,
				DataCompra: agora,
			}
			if err := tx.Create(&compra).Error; err != nil {
				return err
			}
			itensComprados["filtro"] = entrada.Filtro
		}

		posicaoRemovida := entrada.Posicao

		// Remoção física: o índice único de usuario_id precisa liberar a vaga
		// para o slot renascer zerado no final da fila.
		if err := tx.Unscoped().Delete(entrada).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Fila{}).
			Where("posicao > ?", posicaoRemovida).
			UpdateColumn("posicao", gorm.Expr("posicao - 1")).Error; err != nil {
			return err
		}

		novaEntrada = models.Fila{
			UsuarioID: uint(usuarioID),
			Posicao:   len(fila),
		}
		return tx.Create(&novaEntrada).Error
	})

	if errors.Is(err, errNaoEstaNaFila) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_IN_QUEUE",
			Message: "Usuário não encontrado na fila.",
		})
		return
	}
	if errors.Is(err, errNaoEhPrimeiro) {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "NOT_FIRST",
			Message: "Apenas o primeiro da fila pode concluir a compra.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao concluir compra.",
			Details: err.Error(),
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: "compra_concluida",
		Data: map[string]interface{}{
			"usuario_id":   usuarioID,
			"nova_posicao": novaEntrada.Posicao,
			"itens":        itensComprados,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"message":      "Compra concluída e usuário movido para o final da fila!",
		"nova_posicao": novaEntrada.Posicao,
		"dados":        novaEntrada,
	})
}

// @Summary		Sair da fila
// @Description	Remove o usuário da fila e compacta as posições de quem estava atrás
// @Tags			fila
// @Produce		json
// @Security		BearerAuth
// @Param			usuario_id	path		string						true	"ID do usuário"
// @Success		200			{object}	response.SuccessResponse	"Usuário removido da fila"
// @Failure		400			{object}	response.ErrorResponse		"ID inválido (VALIDATION_ERROR)"
// @Failure		404			{object}	response.ErrorResponse		"Usuário não está na fila (NOT_IN_QUEUE)"
// @Failure		500			{object}	response.ErrorResponse		"Erro do servidor (DB_ERROR)"
// @Router			/fila/sair/{usuario_id} [delete]
func SairDaFila(c *gin.Context) {
	usuarioID, err := strconv.Atoi(c.Param("usuario_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "ID de usuário inválido.",
		})
		return
	}

	posicaoRemovida := 0
	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		fila, err := travarFila(tx)
		if err != nil {
			return err
		}

		var entrada *models.Fila
		for i := range fila {
			if fila[i].UsuarioID == uint(usuarioID) {
				entrada = &fila[i]
				break
			}
		}
		if entrada == nil {
			return errNaoEstaNaFila
		}

		posicaoRemovida = entrada.Posicao
		if err := tx.Unscoped().Delete(entrada).Error; err != nil {
			return err
		}

		return tx.Model(&models.Fila{}).
			Where("posicao > ?", posicaoRemovida).
			UpdateColumn("posicao", gorm.Expr("posicao - 1")).Error
	})

	if errors.Is(err, errNaoEstaNaFila) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_IN_QUEUE",
			Message: "Usuário não encontrado na fila.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao remover usuário da fila.",
			Details: err.Error(),
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: "usuario_saiu",
		Data: map[string]interface{}{
			"usuario_id":       usuarioID,
			"posicao_removida": posicaoRemovida,
		},
	})

	c.JSON(http.StatusOK, gin.H{"message": "Usuário removido da fila com sucesso!"})
}
