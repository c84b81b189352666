package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/calibration"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
)

const auditEntityCalibration = "calibration_record"

type CalibrationServiceInterface interface {
	GetHistory(ctx context.Context, equipmentID uint64) ([]dto.CalibrationRecordDTO, error)
	RecordCalibration(ctx context.Context, equipmentID uint64, payload dto.CreateCalibrationRecordDTO) (*dto.CalibrationRecordDTO, error)
	DeleteCalibrationRecord(ctx context.Context, recordID uint64) error
}

type CalibrationService struct {
	txManager     repositories.TxManagerInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	recordRepo    repositories.CalibrationRecordRepositoryInterface
	ruleRepo      repositories.CalibrationRuleRepositoryInterface
	auditService  AuditServiceInterface
	gate          *authz.Gatekeeper
	logger        *zap.Logger
	now           func() time.Time
}

func NewCalibrationService(
	txManager repositories.TxManagerInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	recordRepo repositories.CalibrationRecordRepositoryInterface,
	ruleRepo repositories.CalibrationRuleRepositoryInterface,
	auditService AuditServiceInterface,
	gate *authz.Gatekeeper,
	logger *zap.Logger,
) *CalibrationService {
	return &CalibrationService{
		txManager:     txManager,
		equipmentRepo: equipmentRepo,
		recordRepo:    recordRepo,
		ruleRepo:      ruleRepo,
		auditService:  auditService,
		gate:          gate,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *CalibrationService) GetHistory(ctx context.Context, equipmentID uint64) ([]dto.CalibrationRecordDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.EquipmentsView); err != nil {
		return nil, err
	}

	if _, err := s.equipmentRepo.FindByID(ctx, equipmentID); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CalibrationRecordDTO, 0, len(records))
	for i := range records {
		out = append(out, mapCalibrationRecord(&records[i]))
	}
	return out, nil
}

// RecordCalibration insere o laudo e atualiza o estado derivado do
// equipamento na mesma transação. O registro mais recente POR DATA DE
// CALIBRAÇÃO comanda o estado do pai: lançar um laudo retroativo não
// rebaixa o equipamento se existir laudo mais novo.
func (s *CalibrationService) RecordCalibration(ctx context.Context, equipmentID uint64, payload dto.CreateCalibrationRecordDTO) (*dto.CalibrationRecordDTO, error) {
	if _, err := requirePermission(ctx, s.gate, authz.CalibrationsCreate); err != nil {
		return nil, err
	}

	calibrationDate, err := time.Parse(dto.DateLayout, payload.CalibrationDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("data de calibração inválida, use o formato AAAA-MM-DD")
	}
	if calibrationDate.After(s.now()) {
		return nil, apperrors.NewInvalidInputError("data de calibração não pode estar no futuro")
	}

	eq, err := s.equipmentRepo.FindByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	rec := &entities.CalibrationRecord{
		EquipmentID:       equipmentID,
		CalibrationDate:   calibrationDate,
		CertificateNumber: payload.CertificateNumber,
		PerformedBy:       payload.PerformedBy,
		Notes:             payload.Notes,
		MeasuredError:     payload.MeasuredError,
		Uncertainty:       payload.Uncertainty,
		Status:            payload.Status,
		AttachmentKey:     payload.AttachmentKey,
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.recordRepo.InsertTx(ctx, tx, rec)
		if err != nil {
			return err
		}
		rec.ID = id
		return s.recomputeInTx(ctx, tx, eq)
	})
	if err != nil {
		s.logger.Error("falha ao registrar calibração",
			zap.Uint64("equipmentId", equipmentID), zap.Error(err))
		return nil, err
	}

	s.auditService.Record(ctx, entities.AuditCreate, auditEntityCalibration, rec.ID, map[string]interface{}{
		"equipment_id":     equipmentID,
		"calibration_date": payload.CalibrationDate,
	})

	created, err := s.recordRepo.FindByID(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	out := mapCalibrationRecord(created)
	return &out, nil
}

// DeleteCalibrationRecord remove o laudo e recalcula o pai a partir do que
// sobrou do histórico; sem histórico o equipamento volta a REFERENCIA.
func (s *CalibrationService) DeleteCalibrationRecord(ctx context.Context, recordID uint64) error {
	if _, err := requirePermission(ctx, s.gate, authz.CalibrationsDelete); err != nil {
		return err
	}

	rec, err := s.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		return err
	}
	eq, err := s.equipmentRepo.FindByID(ctx, rec.EquipmentID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.recordRepo.DeleteTx(ctx, tx, recordID); err != nil {
			return err
		}
		return s.recomputeInTx(ctx, tx, eq)
	})
	if err != nil {
		s.logger.Error("falha ao remover registro de calibração",
			zap.Uint64("recordId", recordID), zap.Error(err))
		return err
	}

	s.auditService.Record(ctx, entities.AuditDelete, auditEntityCalibration, recordID, map[string]interface{}{
		"equipment_id": rec.EquipmentID,
	})
	return nil
}

// recomputeInTx deriva o novo estado do equipamento a partir do registro
// mais recente por data, dentro da transação que alterou o histórico.
// Equipamento DESATIVADO não é tocado.
func (s *CalibrationService) recomputeInTx(ctx context.Context, tx pgx.Tx, eq *entities.Equipment) error {
	if eq.Status == entities.StatusDesativado {
		return nil
	}

	latest, err := s.recordRepo.LatestByDateTx(ctx, tx, eq.ID)
	if err != nil {
		return err
	}

	var lastDate *time.Time
	var lastCertificate *string
	if latest != nil {
		lastDate = &latest.CalibrationDate
		lastCertificate = latest.CertificateNumber
	}

	rule, err := s.ruleRepo.FindByEquipmentType(ctx, eq.EquipmentTypeID)
	if err != nil {
		return err
	}
	result := calibration.ComputeStatus(s.now(), lastDate, rule)

	return s.equipmentRepo.UpdateDerivedStateTx(ctx, tx, eq.ID, lastDate, lastCertificate, result.DueDate, result.Status)
}
