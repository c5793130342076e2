package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/RicardoFM1/Backend-CafeFila/internal/models"
	"github.com/RicardoFM1/Backend-CafeFila/internal/response"
	"github.com/RicardoFM1/Backend-CafeFila/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var AccessSecret = []byte(os.Getenv("JWT_ACCESS_SECRET"))

var ctx = context.Background()

const usuariosCacheKey = "usuarios_all"

type CriarUsuarioRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Senha  string `json:"senha" binding:"required,min=6"`
	Admin  bool   `json:"admin"`
	Status string `json:"status"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

type AtualizarUsuarioRequest struct {
	Email  *string `json:"email" binding:"omitempty,email"`
	Senha  *string `json:"senha" binding:"omitempty,min=6"`
	Admin  *bool   `json:"admin"`
	Status *string `json:"status"`
}

// usuarioAtual carrega o usuário autenticado injetado pelo middleware.
func usuarioAtual(c *gin.Context) (models.Usuario, error) {
	var usuario models.Usuario
	err := storage.DB.First(&usuario, c.GetUint("userID")).Error
	return usuario, err
}

func invalidarCacheUsuarios() {
	if storage.RedisClient != nil {
		storage.RedisClient.Del(ctx, usuariosCacheKey)
	}
}

// @Summary		Criação de usuário
// @Description	Cria um novo usuário com senha criptografada
// @Tags			usuarios
// @Accept			json
// @Produce		json
// @Param			usuario	body		CriarUsuarioRequest			true	"Dados do usuário"
// @Success		201		{object}	response.SuccessResponse	"Usuário criado com sucesso"
// @Failure		400		{object}	response.ErrorResponse		"Erro de validação (VALIDATION_ERROR) ou email já cadastrado (EMAIL_EXISTS)"
// @Failure		500		{object}	response.ErrorResponse		"Erro do servidor (PASSWORD_HASH_ERROR, DB_ERROR)"
// @Router			/usuarios [post]
func CriarUsuario(c *gin.Context) {
	var req CriarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados.",
			Details: err.Error(),
		})
		return
	}

	var existente models.Usuario
	if err := storage.DB.Where("email = ?", req.Email).First(&existente).Error; err == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "EMAIL_EXISTS",
			Message: "Já existe um usuário com este email.",
		})
		return
	}

	senhaHash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "PASSWORD_HASH_ERROR",
			Message: "Erro ao criptografar a senha.",
		})
		return
	}

	status := req.Status
	if status == "" {
		status = "ativo"
	}

	usuario := models.Usuario{
		Email:  req.Email,
		Senha:  string(senhaHash),
		Admin:  req.Admin,
		Status: status,
	}

	if err := storage.DB.Create(&usuario).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao criar usuário.",
			Details: err.Error(),
		})
		return
	}

	invalidarCacheUsuarios()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuário criado com sucesso!",
		"usuario": usuario,
	})
}

// @Summary		Login
// @Description	Autentica o usuário e emite o token de acesso
// @Tags			usuarios
// @Accept			json
// @Produce		json
// @Param			credenciais	body		LoginRequest			true	"Credenciais"
// @Success		200			{object}	response.TokenResponse	"Login realizado com sucesso"
// @Failure		400			{object}	response.ErrorResponse	"Erro de validação dos dados (VALIDATION_ERROR)"
// @Failure		401			{object}	response.ErrorResponse	"Credenciais inválidas (INVALID_CREDENTIALS)"
// @Failure		500			{object}	response.ErrorResponse	"Erro do servidor (TOKEN_GENERATION_ERROR)"
// @Router			/usuarios/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados.",
			Details: err.Error(),
		})
		return
	}

	var usuario models.Usuario
	if err := storage.DB.Where("email = ?", req.Email).First(&usuario).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Credenciais inválidas.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(req.Senha)); err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Credenciais inválidas.",
		})
		return
	}

	token, err := gerarToken(usuario.ID, time.Hour*24, AccessSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "Erro ao gerar o token de acesso.",
		})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:   token,
		Message: "Login realizado com sucesso!",
	})
}

func gerarToken(userID uint, duration time.Duration, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// @Summary		Usuário autenticado
// @Description	Retorna a identidade do usuário dono do token
// @Tags			usuarios
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	map[string]interface{}	"Identidade do usuário"
// @Failure		404	{object}	response.ErrorResponse	"Usuário não encontrado (USER_NOT_FOUND)"
// @Router			/usuarios/me [get]
func Me(c *gin.Context) {
	usuario, err := usuarioAtual(c)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Usuário não encontrado.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     usuario.ID,
		"email":  usuario.Email,
		"admin":  usuario.Admin,
		"status": usuario.Status,
	})
}

// @Summary		Listagem de usuários
// @Description	Lista todos os usuários, com cache em Redis
// @Tags			usuarios
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Usuario			"Lista de usuários"
// @Failure		500	{object}	response.ErrorResponse	"Erro do servidor (DB_ERROR)"
// @Router			/usuarios [get]
func ListarUsuarios(c *gin.Context) {
	if storage.RedisClient != nil {
		cached, err := storage.RedisClient.Get(ctx, usuariosCacheKey).Result()
		if err == nil && cached != "" {
			var usuarios []models.Usuario
			if err := json.Unmarshal([]byte(cached), &usuarios); err == nil {
				c.JSON(http.StatusOK, usuarios)
				return
			}
		}
	}

	var usuarios []models.Usuario
	if err := storage.DB.Find(&usuarios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao listar usuários.",
			Details: err.Error(),
		})
		return
	}

	if storage.RedisClient != nil {
		if payload, err := json.Marshal(usuarios); err == nil {
			storage.RedisClient.Set(ctx, usuariosCacheKey, payload, 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, usuarios)
}

// @Summary		Busca de usuário por email
// @Description	Busca um usuário pelo email exato informado na query string
// @Tags			usuarios
// @Produce		json
// @Security		BearerAuth
// @Param			email	query		string					true	"Email do usuário"
// @Success		200		{object}	models.Usuario			"Usuário encontrado"
// @Failure		400		{object}	response.ErrorResponse	"Parâmetro email ausente (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Usuário não encontrado (USER_NOT_FOUND)"
// @Router			/usuarios/filtro [get]
func BuscarUsuarioPorEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Parâmetro \"email\" é obrigatório na query string.",
		})
		return
	}

	var usuario models.Usuario
	if err := storage.DB.Where("email = ?", email).First(&usuario).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Usuário não encontrado.",
		})
		return
	}

	c.JSON(http.StatusOK, usuario)
}

// @Summary		Busca de usuário por ID
// @Tags			usuarios
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		string					true	"ID do usuário"
// @Success		200	{object}	models.Usuario			"Usuário encontrado"
// @Failure		404	{object}	response.ErrorResponse	"Usuário não encontrado (USER_NOT_FOUND)"
// @Router			/usuarios/{id} [get]
func BuscarUsuarioPorID(c *gin.Context) {
	var usuario models.Usuario
	if err := storage.DB.First(&usuario, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Usuário não encontrado.",
		})
		return
	}

	c.JSON(http.StatusOK, usuario)
}

// @Summary		Atualização de usuário
// @Description	Atualiza os dados do próprio usuário; admin pode atualizar qualquer um e alterar admin/status
// @Tags			usuarios
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id		path		string						true	"ID do usuário"
// @Param			dados	body		AtualizarUsuarioRequest		true	"Campos a atualizar"
// @Success		200		{object}	response.SuccessResponse	"Usuário atualizado com sucesso"
// @Failure		400		{object}	response.ErrorResponse		"Erro de validação (VALIDATION_ERROR) ou email em uso (EMAIL_EXISTS)"
// @Failure		403		{object}	response.ErrorResponse		"Sem permissão (FORBIDDEN)"
// @Failure		404		{object}	response.ErrorResponse		"Usuário não encontrado (USER_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse		"Erro do servidor (DB_ERROR)"
// @Router			/usuarios/{id} [patch]
func AtualizarUsuario(c *gin.Context) {
	usuarioLogado, err := usuarioAtual(c)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Usuário não encontrado.",
		})
		return
	}

	var usuario models.Usuario
	if err := storage.DB.First(&usuario, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Usuário não encontrado!",
		})
		return
	}

	if usuarioLogado.ID != usuario.ID && !usuarioLogado.Admin {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "Você não tem permissão para atualizar este usuário.",
		})
		return
	}

	var req AtualizarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Erro de validação dos dados.",
			Details: err.Error(),
		})
		return
	}

	if req.Email != nil && *req.Email != usuario.Email {
		var outro models.Usuario
		if err := storage.DB.Where("email = ? AND id <> ?", *req.Email, usuario.ID).First(&outro).Error; err == nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "EMAIL_EXISTS",
				Message: "E-mail já está sendo usado por outro usuário!",
			})
			return
		}
		usuario.Email = *req.Email
	}

	if req.Senha != nil && *req.Senha != "" {
		senhaHash, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "PASSWORD_HASH_ERROR",
				Message: "Erro ao criptografar a senha.",
			})
			return
		}
		usuario.Senha = string(senhaHash)
	}

	// Somente admin pode alterar flag de admin e status
	if usuarioLogado.Admin {
		if req.Admin != nil {
			usuario.Admin = *req.Admin
		}
		if req.Status != nil {
			usuario.Status = *req.Status
		}
	}

	if err := storage.DB.Save(&usuario).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Erro ao atualizar usuário.",
			Details: err.Error(),
		})
		return
	}

	invalidarCacheUsuarios()

	c.JSON(http.StatusOK, gin.H{
		"message": "Usuário atualizado com sucesso!",
		"usuario": usuario,
	})
}
