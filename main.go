package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/RicardoFM1/Backend-CafeFila/docs"
	"github.com/RicardoFM1/Backend-CafeFila/internal/auth"
	"github.com/RicardoFM1/Backend-CafeFila/internal/handlers"
	"github.com/RicardoFM1/Backend-CafeFila/internal/models"
	"github.com/RicardoFM1/Backend-CafeFila/internal/storage"
	"github.com/RicardoFM1/Backend-CafeFila/internal/tasks"
	"github.com/RicardoFM1/Backend-CafeFila/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Fila do Café
// @Description				Fila da sala do café: pedidos pendentes, compras e histórico
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHECK")
	if key == "" {
		fmt.Println("Carregando .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Erro ao carregar o .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.Usuario{}, &models.Fila{}, &models.Compra{}); err != nil {
		log.Fatal("Erro na migração... ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	usuarios := r.Group("/usuarios")
	{
		usuarios.POST("", handlers.CriarUsuario)
		usuarios.POST("/login", handlers.Login)
	}

	usuariosAuth := r.Group("/usuarios", auth.AuthMiddleware())
	{
		usuariosAuth.GET("", handlers.ListarUsuarios)
		usuariosAuth.GET("/me", handlers.Me)
		usuariosAuth.GET("/filtro", handlers.BuscarUsuarioPorEmail)
		usuariosAuth.GET("/:id", handlers.BuscarUsuarioPorID)
		usuariosAuth.PATCH("/:id", handlers.AtualizarUsuario)
	}

	fila := r.Group("/fila", auth.AuthMiddleware())
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

	compras := r.Group("/compras", auth.AuthMiddleware())
	{
		compras.GET("", handlers.ListarCompras)
		compras.POST("", handlers.Comprar)
		compras.PATCH("/:id", handlers.AtualizarCompra)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Erro ao iniciar o servidor...", err.Error())
	}
}
