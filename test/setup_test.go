package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/RicardoFM1/Backend-CafeFila/internal/handlers"
	"github.com/RicardoFM1/Backend-CafeFila/internal/models"
	"github.com/RicardoFM1/Backend-CafeFila/internal/storage"
	"github.com/RicardoFM1/Backend-CafeFila/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

// AuthMiddlewareTest substitui a validação de token nos testes: o ID do
// usuário autenticado vem do header X-Test-UserID.
func AuthMiddlewareTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.Request.Header.Get("X-Test-UserID")
		if userIDStr == "" {
			c.Set("userID", uint(1))
		} else {
			id, err := strconv.Atoi(userIDStr)
			if err != nil {
				c.Set("userID", uint(1))
			} else {
				c.Set("userID", uint(id))
			}
		}
		c.Next()
	}
}

var hubOnce sync.Once

func setupTestServer() *httptest.Server {
	key := os.Getenv("ENV_CHECK")
	if key == "" {
		fmt.Println("Carregando .env")
		err := godotenv.Load("../.env")
		if err != nil {
			log.Fatal("Erro ao carregar o .env")
		}
	}

	storage.ConnectTestingDatabase()

	if err := storage.DB.AutoMigrate(&models.Usuario{}, &models.Fila{}, &models.Compra{}); err != nil {
		log.Fatal("Erro na migração... ", err.Error())
	}

	storage.DB.Exec("TRUNCATE TABLE usuarios, fila, compras RESTART IDENTITY CASCADE;")

	hubOnce.Do(func() {
		go ws.HubInstance.Run()
	})

	r := gin.Default()

	usuarios := r.Group("/usuarios")
	{
		usuarios.POST("", handlers.CriarUsuario)
		usuarios.POST("/login", handlers.Login)
	}

	usuariosAuth := r.Group("/usuarios", AuthMiddlewareTest())
	{
		usuariosAuth.GET("", handlers.ListarUsuarios)
		usuariosAuth.GET("/me", handlers.Me)
		usuariosAuth.GET("/filtro", handlers.BuscarUsuarioPorEmail)
		usuariosAuth.GET("/:id", handlers.BuscarUsuarioPorID)
		usuariosAuth.PATCH("/:id", handlers.AtualizarUsuario)
	}

	fila := r.Group("/fila", AuthMiddlewareTest())
	{
		fila.GET("", handlers.ListarFila)
		fila.GET("/ws", ws.FilaWebSocketHandler)
		fila.GET("/:pos", handlers.BuscarPorPosicao)
		fila.POST("/entrar", handlers.EntrarNaFila)
		fila.POST("/concluir/:usuario_id", handlers.ConcluirCompra)
		fila.DELETE("/sair/:usuario_id", handlers.SairDaFila)
		fila.PATCH("/atualizar_quantidade", handlers.AtualizarQuantidade)
		fila.PATCH("/adicionar_pedido/:item_type", handlers.AdicionarPedido)
		fila.PATCH("/mover_proximo/:usuario_id", handlers.MoverParaProximo)
	}

	compras := r.Group("/compras", AuthMiddlewareTest())
	{
		compras.GET("", handlers.ListarCompras)
		compras.POST("", handlers.Comprar)
		compras.PATCH("/:id", handlers.AtualizarCompra)
	}

	return httptest.NewServer(r)
}

// criarUsuario insere um usuário direto no banco de teste.
func criarUsuario(t *testing.T, email string, admin bool) models.Usuario {
	t.Helper()
	usuario := models.Usuario{
		Email:  email,
		Senha:  "hash-de-teste",
		Admin:  admin,
		Status: "ativo",
	}
	require.NoError(t, storage.DB.Create(&usuario).Error, "Erro ao criar usuário de teste")
	return usuario
}

func emailUnico(prefixo string) string {
	return fmt.Sprintf("%s_%d@example.com", prefixo, time.Now().UnixNano())
}

// requisicao dispara uma requisição autenticada como userID e devolve o
// status HTTP e o corpo decodificado.
func requisicao(t *testing.T, ts *httptest.Server, method, path string, userID uint, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err, "Erro ao serializar o corpo da requisição")
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err, "Erro ao montar a requisição")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", userID))
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Erro ao executar a requisição")
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Erro ao ler a resposta")

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded), "Erro ao decodificar a resposta")
	}
	return res.StatusCode, decoded
}

// requisicaoLista é a variante para respostas que são arrays JSON.
func requisicaoLista(t *testing.T, ts *httptest.Server, path string, userID uint) (int, []map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err, "Erro ao montar a requisição")
	if userID != 0 {
		req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", userID))
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Erro ao executar a requisição")
	defer res.Body.Close()

	var decoded []map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded), "Erro ao decodificar a lista")
	return res.StatusCode, decoded
}

// posicoesDaFila lê a fila direto do banco, ordenada por posição.
func posicoesDaFila(t *testing.T) []models.Fila {
	t.Helper()
	var fila []models.Fila
	require.NoError(t, storage.DB.Order("posicao ASC").Find(&fila).Error)
	return fila
}

// verificarPosicoesDensas garante o invariante central: posições 1..N sem
// buracos nem duplicatas.
func verificarPosicoesDensas(t *testing.T) {
	t.Helper()
	fila := posicoesDaFila(t)
	for i, entrada := range fila {
		require.Equal(t, i+1, entrada.Posicao, "Posições da fila deixaram de ser densas")
	}
}
