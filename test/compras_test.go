package test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/RicardoFM1/Backend-CafeFila/internal/models"
	"github.com/RicardoFM1/Backend-CafeFila/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// criarCompra insere um registro de compra direto no banco de teste.
func criarCompra(t *testing.T, usuario models.Usuario, item string, quantidade int, data time.Time) models.Compra {
	t.Helper()
	compra := models.Compra{
		UsuarioID:  usuario.ID,
		Item:       item,
		Quantidade: quantidade,
		DataCompra: data,
	}
	require.NoError(t, storage.DB.Create(&compra).Error, "Erro ao criar compra de teste")
	return compra
}

func TestComprarDireto(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	ana := criarUsuario(t, emailUnico("ana"), false)

	status, body := requisicao(t, ts, http.MethodPost, "/compras", ana.ID,
		map[string]interface{}{"usuario_id": ana.ID, "item": "cafe", "quantidade": 2})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Compra efetuada com sucesso!", body["message"])
	compra := body["compra"].(map[string]interface{})
	assert.Equal(t, float64(2), compra["quantidade"])

	// Item fora do catálogo: rejeitado na validação.
	status, body = requisicao(t, ts, http.MethodPost, "/compras", ana.ID,
		map[string]interface{}{"usuario_id": ana.ID, "item": "leite", "quantidade": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	// Quantidade zero também.
	status, _ = requisicao(t, ts, http.MethodPost, "/compras", ana.ID,
		map[string]interface{}{"usuario_id": ana.ID, "item": "cafe", "quantidade": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	// Usuário inexistente: 404.
	status, body = requisicao(t, ts, http.MethodPost, "/compras", ana.ID,
		map[string]interface{}{"usuario_id": 9999, "item": "cafe", "quantidade": 1})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", body["code"])
}

func TestListarComprasComFiltros(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	ana := criarUsuario(t, emailUnico("ana"), false)
	bia := criarUsuario(t, emailUnico("bia"), false)

	ontem := time.Now().AddDate(0, 0, -1)
	semanaPassada := time.Now().AddDate(0, 0, -7)
	criarCompra(t, ana, "cafe", 2, ontem)
	criarCompra(t, ana, "filtro", 1, ontem)
	criarCompra(t, bia, "cafe", 3, semanaPassada)

	// Sem filtros: tudo, do mais recente para o mais antigo.
	status, lista := requisicaoLista(t, ts, "/compras", ana.ID)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, lista, 3)
	assert.Equal(t, float64(bia.ID), lista[2]["usuario_id"], "A compra mais antiga deve vir por último")

	// Filtro por usuário.
	status, lista = requisicaoLista(t, ts, fmt.Sprintf("/compras?usuario_id=%d", bia.ID), ana.ID)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, lista, 1)
	assert.Equal(t, float64(3), lista[0]["quantidade"])

	// Tipo exato.
	status, lista = requisicaoLista(t, ts, "/compras?tipo=filtro", ana.ID)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, lista, 1)
	assert.Equal(t, "filtro", lista[0]["item"])

	// Trecho do nome do item.
	status, lista = requisicaoLista(t, ts, "/compras?item=caf", ana.ID)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, lista, 2)

	// Intervalo de datas inclui o dia final inteiro. As datas do filtro são
	// interpretadas no fuso da cafeteria.
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	inicio := ontem.In(saoPaulo).Format("2006-01-02")
	fim := ontem.In(saoPaulo).Format("2006-01-02")
	status, lista = requisicaoLista(t, ts, fmt.Sprintf("/compras?data_inicio=%s&data_fim=%s", inicio, fim), ana.ID)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, lista, 2, "O intervalo de um único dia deve trazer as compras daquele dia inteiro")

	// Datas mal formadas: 400.
	status, body := requisicao(t, ts, http.MethodGet, "/compras?data_inicio=13-11-2025&data_fim=14-11-2025", ana.ID, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestListarComprasAgrupadas(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	ana := criarUsuario(t, emailUnico("ana"), false)

	// Café e filtro da mesma conclusão compartilham o minuto.
	momento := time.Now().Add(-time.Hour).Truncate(time.Minute).Add(10 * time.Second)
	criarCompra(t, ana, "cafe", 2, momento)
	criarCompra(t, ana, "filtro", 1, momento)
	criarCompra(t, ana, "cafe", 5, momento.Add(-30*time.Minute))

	status, lista := requisicaoLista(t, ts, "/compras?agrupar=true", ana.ID)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, lista, 2, "Compras do mesmo usuário no mesmo minuto viram uma linha só")

	primeira := lista[0]
	assert.Equal(t, float64(3), primeira["total"], "O total da linha agrupada soma as quantidades")
	assert.Contains(t, primeira["descricao"], "cafe (2)")
	assert.Contains(t, primeira["descricao"], "filtro (1)")
	assert.Equal(t, ana.Email, primeira["email"])

	segunda := lista[1]
	assert.Equal(t, "cafe (5)", segunda["descricao"])
}

func TestAtualizarCompraSomenteAdmin(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	admin := criarUsuario(t, emailUnico("admin"), true)
	ana := criarUsuario(t, emailUnico("ana"), false)
	compra := criarCompra(t, ana, "cafe", 2, time.Now())

	// Não-admin: 403 e registro intacto.
	status, body := requisicao(t, ts, http.MethodPatch, fmt.Sprintf("/compras/%d", compra.ID), ana.ID,
		map[string]interface{}{"quantidade": 10})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	// Registro inexistente: 404.
	status, body = requisicao(t, ts, http.MethodPatch, "/compras/9999", admin.ID,
		map[string]interface{}{"quantidade": 10})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PURCHASE_NOT_FOUND", body["code"])

	// Admin corrige e a correção fica carimbada.
	status, body = requisicao(t, ts, http.MethodPatch, fmt.Sprintf("/compras/%d", compra.ID), admin.ID,
		map[string]interface{}{"item": "filtro", "quantidade": 4})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Compra atualizada com sucesso.", body["message"])

	var corrigida models.Compra
	require.NoError(t, storage.DB.First(&corrigida, compra.ID).Error)
	assert.Equal(t, "filtro", corrigida.Item)
	assert.Equal(t, 4, corrigida.Quantidade)
	require.NotNil(t, corrigida.UltimaAlteracaoPor)
	assert.Equal(t, admin.ID, *corrigida.UltimaAlteracaoPor)
	assert.NotNil(t, corrigida.UltimaAlteracaoEm)
}
