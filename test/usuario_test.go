package test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/RicardoFM1/Backend-CafeFila/internal/models"
	"github.com/RicardoFM1/Backend-CafeFila/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriarUsuarioELogin(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	email := emailUnico("ricardo")

	status, body := requisicao(t, ts, http.MethodPost, "/usuarios", 0,
		map[string]interface{}{"email": email, "senha": "segredo123"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Usuário criado com sucesso!", body["message"])
	usuario := body["usuario"].(map[string]interface{})
	assert.Equal(t, "ativo", usuario["status"], "Status padrão deve ser ativo")
	assert.Equal(t, false, usuario["admin"])
	_, temSenha := usuario["senha"]
	assert.False(t, temSenha, "A senha nunca aparece na resposta")

	// Email duplicado: 400.
	status, body = requisicao(t, ts, http.MethodPost, "/usuarios", 0,
		map[string]interface{}{"email": email, "senha": "outrasenha"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMAIL_EXISTS", body["code"])

	// Login com a senha certa.
	status, body = requisicao(t, ts, http.MethodPost, "/usuarios/login", 0,
		map[string]interface{}{"email": email, "senha": "segredo123"})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"], "O login deve emitir um token")

	// Senha errada: 401.
	status, body = requisicao(t, ts, http.MethodPost, "/usuarios/login", 0,
		map[string]interface{}{"email": email, "senha": "errada123"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
}

func TestMeEBuscas(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	ana := criarUsuario(t, emailUnico("ana"), false)

	status, body := requisicao(t, ts, http.MethodGet, "/usuarios/me", ana.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(ana.ID), body["id"])
	assert.Equal(t, ana.Email, body["email"])
	assert.Equal(t, false, body["admin"])
	assert.Equal(t, "ativo", body["status"])

	status, body = requisicao(t, ts, http.MethodGet, fmt.Sprintf("/usuarios/%d", ana.ID), ana.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, ana.Email, body["email"])

	status, body = requisicao(t, ts, http.MethodGet, "/usuarios/filtro?email="+ana.Email, ana.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(ana.ID), body["id"])

	status, body = requisicao(t, ts, http.MethodGet, "/usuarios/filtro", ana.ID, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	status, body = requisicao(t, ts, http.MethodGet, "/usuarios/9999", ana.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", body["code"])
}

func TestAtualizarUsuarioPermissoes(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	admin := criarUsuario(t, emailUnico("admin"), true)
	ana := criarUsuario(t, emailUnico("ana"), false)
	bia := criarUsuario(t, emailUnico("bia"), false)

	// Ana não atualiza Bia.
	status, body := requisicao(t, ts, http.MethodPatch, fmt.Sprintf("/usuarios/%d", bia.ID), ana.ID,
		map[string]interface{}{"status": "inativo"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	// Ana atualiza o próprio email, mas a tentativa de virar admin é ignorada.
	novoEmail := emailUnico("ana_novo")
	status, _ = requisicao(t, ts, http.MethodPatch, fmt.Sprintf("/usuarios/%d", ana.ID), ana.ID,
		map[string]interface{}{"email": novoEmail, "admin": true})
	require.Equal(t, http.StatusOK, status)

	var atualizada models.Usuario
	require.NoError(t, storage.DB.First(&atualizada, ana.ID).Error)
	assert.Equal(t, novoEmail, atualizada.Email)
	assert.False(t, atualizada.Admin, "Não-admin não pode se promover")

	// Email já em uso por outra conta: 400.
	status, body = requisicao(t, ts, http.MethodPatch, fmt.Sprintf("/usuarios/%d", ana.ID), ana.ID,
		map[string]interface{}{"email": bia.Email})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMAIL_EXISTS", body["code"])

	// Admin altera status e flag de admin de qualquer usuário.
	status, _ = requisicao(t, ts, http.MethodPatch, fmt.Sprintf("/usuarios/%d", bia.ID), admin.ID,
		map[string]interface{}{"status": "inativo", "admin": true})
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, storage.DB.First(&atualizada, bia.ID).Error)
	assert.Equal(t, "inativo", atualizada.Status)
	assert.True(t, atualizada.Admin)
}

func TestListarUsuarios(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	ana := criarUsuario(t, emailUnico("ana"), false)
	criarUsuario(t, emailUnico("bia"), false)

	status, lista := requisicaoLista(t, ts, "/usuarios", ana.ID)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, lista, 2)
}
