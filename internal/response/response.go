package response

// SuccessResponse representa uma resposta de sucesso da API
type SuccessResponse struct {
	Message string `json:"message" example:"Operação realizada com sucesso!"`
}

// ErrorResponse representa uma resposta de erro da API
type ErrorResponse struct {
	// Código do erro para tratamento programático
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Mensagem legível descrevendo o erro
	// example: Erro de validação dos dados
	Message string `json:"message"`

	// Detalhes adicionais sobre o erro (opcional)
	// example: o campo email deve ser um endereço válido
	Details string `json:"details,omitempty"`
}

// TokenResponse representa a resposta do login com o token de acesso
type TokenResponse struct {
	// JWT para acesso aos endpoints protegidos
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	Token string `json:"token"`

	Message string `json:"message"`
}
