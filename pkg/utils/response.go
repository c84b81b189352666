package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// sentinelStatus mapeia cada membro da taxonomia de erros para um status HTTP fixo.
var sentinelStatus = map[error]int{
	apperrors.ErrNotFound:         http.StatusNotFound,
	apperrors.ErrForbidden:        http.StatusForbidden,
	apperrors.ErrUnauthorized:     http.StatusUnauthorized,
	apperrors.ErrDuplicateCode:    http.StatusConflict,
	apperrors.ErrHasDependencies:  http.StatusConflict,
	apperrors.ErrBadRequest:       http.StatusBadRequest,
	apperrors.ErrInvalidToken:     http.StatusUnauthorized,
	apperrors.ErrTokenExpired:     http.StatusUnauthorized,
	apperrors.ErrTokenIsNotAccess: http.StatusUnauthorized,
	apperrors.ErrTokenIsNotRefresh: http.StatusUnauthorized,
	apperrors.ErrEmptyAuthHeader:  http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader: http.StatusUnauthorized,
	apperrors.ErrInvalidCredentials: http.StatusUnauthorized,
	apperrors.ErrUserNotApproved:  http.StatusForbidden,
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	withPagination, _ := strconv.ParseBool(ctx.QueryParam("withPagination"))
	if withPagination && len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = int((total[0] + uint64(filter.Limit) - 1) / uint64(filter.Limit))
		}
		pagination := map[string]interface{}{
			"total_count": total[0],
			"page":        filter.Page,
			"limit":       filter.Limit,
			"total_pages": totalPages,
		}
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

// ErrorResponse converte qualquer erro da aplicação na resposta JSON padrão.
// A ordem importa: HttpError explícito > erros de validação > sentinelas da
// taxonomia > erro genérico 500.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("Erro HTTP",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := map[string]string{}
		var msgs []string
		for _, e := range validationErrors {
			details[e.Field()] = e.Tag()
			msgs = append(msgs, fmt.Sprintf("campo '%s' falhou na regra '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Erro de validação: " + strings.Join(msgs, "; "),
			"body":    details,
		})
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": invalidInput.Message,
		})
	}

	for sentinel, code := range sentinelStatus {
		if errors.Is(err, sentinel) {
			return c.JSON(code, map[string]interface{}{
				"status":  false,
				"message": sentinel.Error(),
			})
		}
	}

	logger.Error("Erro inesperado", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Erro interno do servidor",
	})
}
