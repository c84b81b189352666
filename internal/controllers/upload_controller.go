package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/config"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/filestorage"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

// uploadPrefixes são os contextos de upload aceitos e o subdiretório de cada um.
var uploadPrefixes = map[string]string{
	"certificates": "certificates",
	"equipments":   "equipments",
}

type UploadController struct {
	fileStorage filestorage.FileStorageInterface
	uploadCfg   config.UploadConfig
	logger      *zap.Logger
}

func NewUploadController(storage filestorage.FileStorageInterface, uploadCfg config.UploadConfig, logger *zap.Logger) *UploadController {
	return &UploadController{fileStorage: storage, uploadCfg: uploadCfg, logger: logger}
}

// Upload salva o anexo (certificado em PDF, foto do equipamento) e devolve a
// chave a ser gravada no registro correspondente.
func (c *UploadController) Upload(ctx echo.Context) error {
	uploadContext := ctx.Param("context")
	prefix, ok := uploadPrefixes[uploadContext]
	if !ok {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Contexto de upload desconhecido",
				apperrors.ErrBadRequest,
				map[string]interface{}{"context": uploadContext},
			),
			c.logger,
		)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Nenhum arquivo foi enviado", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}

	if fileHeader.Size > c.uploadCfg.MaxSizeMB*1024*1024 {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Arquivo excede o tamanho máximo permitido",
				apperrors.ErrBadRequest,
				map[string]interface{}{"max_size_mb": c.uploadCfg.MaxSizeMB},
			),
			c.logger,
		)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !c.extAllowed(ext) {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Extensão de arquivo não permitida",
				apperrors.ErrBadRequest,
				map[string]interface{}{"ext": ext},
			),
			c.logger,
		)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Falha ao processar o arquivo", err, nil),
			c.logger,
		)
	}
	defer src.Close()

	key, err := c.fileStorage.Save(src, fileHeader.Filename, prefix)
	if err != nil {
		c.logger.Error("Upload: falha ao salvar arquivo", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Falha ao salvar o arquivo", err, nil),
			c.logger,
		)
	}

	response := map[string]interface{}{
		"url": "/uploads/" + key,
		"key": key,
	}
	return utils.SuccessResponse(ctx, response, "Arquivo enviado com sucesso", http.StatusOK)
}

func (c *UploadController) extAllowed(ext string) bool {
	for _, allowed := range c.uploadCfg.AllowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}
