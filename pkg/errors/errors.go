package errors

import "fmt"

var (
	// JWT e tokens
	ErrInvalidSigningMethod = fmt.Errorf("método de assinatura do token inválido")
	ErrInvalidToken         = fmt.Errorf("token inválido")
	ErrTokenExpired         = fmt.Errorf("token expirado")
	ErrTokenNotYetValid     = fmt.Errorf("token ainda não é válido")
	ErrTokenIsNotRefresh    = fmt.Errorf("o token não é um refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("o token não é um access token")

	// Autenticação / autorização
	ErrEmptyAuthHeader    = fmt.Errorf("cabeçalho de autorização ausente")
	ErrInvalidAuthHeader  = fmt.Errorf("formato inválido do cabeçalho de autorização")
	ErrInvalidCredentials = fmt.Errorf("credenciais inválidas")
	ErrUnauthorized       = fmt.Errorf("não autenticado")
	ErrForbidden          = fmt.Errorf("acesso negado")
	ErrUserNotApproved    = fmt.Errorf("cadastro ainda não aprovado por um administrador")

	// Contexto
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID não encontrado no contexto da requisição")

	// Taxonomia de domínio
	ErrNotFound        = fmt.Errorf("registro não encontrado")
	ErrBadRequest      = fmt.Errorf("requisição inválida")
	ErrDuplicateCode   = fmt.Errorf("já existe um equipamento com este código")
	ErrHasDependencies = fmt.Errorf("registro possui vínculos e não pode ser removido")
	ErrInternalServer  = fmt.Errorf("erro interno do servidor")
)

// HttpError é o envelope que a camada de API converte em resposta JSON.
// Code é o status HTTP, Message é o texto para o usuário, Err é a causa
// técnica (vai só para o log) e Details carrega informação por campo.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// InvalidInputError sinaliza entrada malformada detectada na camada de serviço
// (a validação estrutural dos DTOs acontece antes, no validator).
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
