package routes

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/controllers"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/services"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/config"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/filestorage"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/middleware"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: montando rotas")

	api := e.Group("/api")

	// componentes compartilhados
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	authPermissionService := services.NewAuthPermissionService(cacheRepo, logger, cfg.Auth.RolePermissionsCacheTTL)

	// A tabela de permissões vive no binário; um cache de um deploy anterior
	// poderia servir um mapa antigo até expirar o TTL.
	for _, role := range authz.Roles() {
		if err := authPermissionService.InvalidateRolePermissionsCache(context.Background(), role); err != nil {
			logger.Warn("não foi possível limpar o cache de permissões no boot", zap.String("role", role))
		}
	}

	authMW := middleware.NewAuthMiddleware(jwtSvc, authPermissionService, logger)
	gate := authz.NewGatekeeper()
	txManager := repositories.NewTxManager(dbConn)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		logger.Fatal("não foi possível criar o armazenamento de arquivos", zap.Error(err))
	}

	// repositórios
	userRepo := repositories.NewUserRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	recordRepo := repositories.NewCalibrationRecordRepository(dbConn)
	ruleRepo := repositories.NewCalibrationRuleRepository(dbConn)
	typeRepo := repositories.NewEquipmentTypeRepository(dbConn)
	sectorRepo := repositories.NewSectorRepository(dbConn)
	supplierRepo := repositories.NewSupplierRepository(dbConn)
	quoteRepo := repositories.NewQuoteRepository(dbConn)
	auditRepo := repositories.NewAuditRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)

	// serviços
	auditService := services.NewAuditService(auditRepo, logger)
	authService := services.NewAuthService(userRepo, jwtSvc, cfg.Auth.CreatorUserID, logger)
	userService := services.NewUserService(userRepo, auditService, gate, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, ruleRepo, auditService, gate, logger)
	calibrationService := services.NewCalibrationService(txManager, equipmentRepo, recordRepo, ruleRepo, auditService, gate, logger)
	typeService := services.NewEquipmentTypeService(typeRepo, auditService, gate, logger)
	ruleService := services.NewCalibrationRuleService(ruleRepo, auditService, gate, logger)
	sectorService := services.NewSectorService(sectorRepo, auditService, gate, logger)
	supplierService := services.NewSupplierService(supplierRepo, auditService, gate, logger)
	quoteService := services.NewQuoteService(txManager, quoteRepo, supplierRepo, auditService, gate, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, gate, logger)
	reportService := services.NewReportService(equipmentRepo, gate, logger)

	// controllers
	authController := controllers.NewAuthController(authService, logger)
	userController := controllers.NewUserController(userService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)
	calibrationController := controllers.NewCalibrationController(calibrationService, logger)
	typeController := controllers.NewEquipmentTypeController(typeService, logger)
	ruleController := controllers.NewCalibrationRuleController(ruleService, logger)
	sectorController := controllers.NewSectorController(sectorService, logger)
	supplierController := controllers.NewSupplierController(supplierService, logger)
	quoteController := controllers.NewQuoteController(quoteService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)
	reportController := controllers.NewReportController(reportService, logger)
	uploadController := controllers.NewUploadController(fileStorage, cfg.Upload, logger)
	auditController := controllers.NewAuditController(auditService, logger)

	// anexos servidos estaticamente
	e.Static("/uploads", cfg.Upload.BasePath)

	runAuthRouter(api, authController)

	secureGroup := api.Group("", authMW.Auth)
	runEquipmentRouter(secureGroup, equipmentController, calibrationController, auditController)
	runCalibrationRouter(secureGroup, calibrationController)
	runEquipmentTypeRouter(secureGroup, typeController)
	runCalibrationRuleRouter(secureGroup, ruleController)
	runSectorRouter(secureGroup, sectorController)
	runSupplierRouter(secureGroup, supplierController)
	runQuoteRouter(secureGroup, quoteController)
	runUserRouter(secureGroup, userController)
	runDashboardRouter(secureGroup, dashboardController)
	runReportRouter(secureGroup, reportController)
	runUploadRouter(secureGroup, uploadController)

	logger.Info("InitRouter: rotas montadas")
}
