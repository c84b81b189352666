package main

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/routes"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/config"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/customvalidator"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/database/postgresql"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	applogger "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/logger"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/service"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	cfg := config.New()

	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("pânico capturado",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Erro interno do servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("falha ao registrar regras de validação", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	if err := postgresql.RunMigrations(cfg.Postgres.DSN, "migrations"); err != nil {
		logger.Fatal("falha ao aplicar migrações", zap.Error(err))
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("não foi possível conectar ao Redis",
			zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	routes.InitRouter(e, dbConn, redisClient, jwtSvc, logger, cfg)

	logger.Info("servidor iniciado", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("falha ao iniciar o servidor", zap.Error(err))
	}
}
