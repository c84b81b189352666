package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

type calibrationFixture struct {
	svc     *CalibrationService
	tx      *mockTxManager
	eqRepo  *mockEquipmentRepo
	recRepo *mockRecordRepo
	audit   *mockAuditService
}

func newCalibrationFixture(eqRepo *mockEquipmentRepo, recRepo *mockRecordRepo, ruleRepo *mockRuleRepo) *calibrationFixture {
	tx := &mockTxManager{}
	audit := &mockAuditService{}
	svc := NewCalibrationService(tx, eqRepo, recRepo, ruleRepo, audit, authz.NewGatekeeper(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }
	return &calibrationFixture{svc: svc, tx: tx, eqRepo: eqRepo, recRepo: recRepo, audit: audit}
}

func equipamentoAtivo() *entities.Equipment {
	return &entities.Equipment{
		ID:              10,
		Code:            "SUB-010",
		Name:            "Manômetro",
		EquipmentTypeID: 3,
		Status:          entities.StatusReferencia,
	}
}

func TestRecordCalibration_InsereERecalculaPeloMaisRecentePorData(t *testing.T) {
	newest := &entities.CalibrationRecord{
		ID:                4,
		EquipmentID:       10,
		CalibrationDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CertificateNumber: utils.StringPtr("CERT-2025-044"),
	}
	eqRepo := &mockEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return equipamentoAtivo(), nil
		},
	}
	recRepo := &mockRecordRepo{
		// O histórico já tem um laudo mais novo que o lançado agora.
		latestTxFn: func(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.CalibrationRecord, error) {
			return newest, nil
		},
		findByIDFn: func(ctx context.Context, id uint64) (*entities.CalibrationRecord, error) {
			return &entities.CalibrationRecord{
				ID: id, EquipmentID: 10,
				CalibrationDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	ruleRepo := &mockRuleRepo{
		findByTypeFn: func(ctx context.Context, typeID uint64) (*entities.CalibrationRule, error) {
			return &entities.CalibrationRule{IntervalMonths: 12, WarnDays: 30}, nil
		},
	}
	f := newCalibrationFixture(eqRepo, recRepo, ruleRepo)

	out, err := f.svc.RecordCalibration(ctxWithRole(authz.RoleQualidade, 2, nil), 10, dto.CreateCalibrationRecordDTO{
		CalibrationDate: "2025-02-01",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 1, f.tx.runs)
	assert.Equal(t, 1, f.recRepo.insertCalls)
	assert.Equal(t, 1, f.eqRepo.derivedStateCalls)

	// O laudo retroativo não rebaixa o pai: o estado vem do mais recente.
	require.NotNil(t, f.eqRepo.lastDerivedLastDate)
	assert.Equal(t, newest.CalibrationDate, *f.eqRepo.lastDerivedLastDate)
	assert.Equal(t, "CERT-2025-044", *f.eqRepo.lastDerivedLastCert)
	assert.Equal(t, entities.StatusCalibrado, f.eqRepo.lastDerivedStatus)
	require.NotNil(t, f.eqRepo.lastDerivedDueDate)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *f.eqRepo.lastDerivedDueDate)

	assert.Contains(t, f.audit.entries, "CREATE:calibration_record")
}

func TestRecordCalibration_DataFuturaRejeitada(t *testing.T) {
	eqRepo := &mockEquipmentRepo{}
	recRepo := &mockRecordRepo{}
	f := newCalibrationFixture(eqRepo, recRepo, &mockRuleRepo{})

	_, err := f.svc.RecordCalibration(ctxWithRole(authz.RoleQualidade, 2, nil), 10, dto.CreateCalibrationRecordDTO{
		CalibrationDate: "2030-01-01",
	})
	require.Error(t, err)
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
	assert.Zero(t, f.tx.runs)
	assert.Zero(t, recRepo.insertCalls)
}

func TestRecordCalibration_DataInvalidaRejeitada(t *testing.T) {
	f := newCalibrationFixture(&mockEquipmentRepo{}, &mockRecordRepo{}, &mockRuleRepo{})

	_, err := f.svc.RecordCalibration(ctxWithRole(authz.RoleQualidade, 2, nil), 10, dto.CreateCalibrationRecordDTO{
		CalibrationDate: "15/06/2025",
	})
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestRecordCalibration_ViewerNaoPode(t *testing.T) {
	f := newCalibrationFixture(&mockEquipmentRepo{}, &mockRecordRepo{}, &mockRuleRepo{})

	_, err := f.svc.RecordCalibration(ctxWithRole(authz.RoleViewer, 9, nil), 10, dto.CreateCalibrationRecordDTO{
		CalibrationDate: "2025-06-01",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Zero(t, f.tx.runs)
}

func TestDeleteCalibrationRecord_UltimoLaudoVoltaParaReferencia(t *testing.T) {
	eqRepo := &mockEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			eq := equipamentoAtivo()
			eq.Status = entities.StatusCalibrado
			last := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
			eq.LastCalibrationDate = &last
			return eq, nil
		},
	}
	recRepo := &mockRecordRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.CalibrationRecord, error) {
			return &entities.CalibrationRecord{ID: id, EquipmentID: 10}, nil
		},
		// Depois da remoção não sobra histórico.
		latestTxFn: func(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.CalibrationRecord, error) {
			return nil, nil
		},
	}
	ruleRepo := &mockRuleRepo{
		findByTypeFn: func(ctx context.Context, typeID uint64) (*entities.CalibrationRule, error) {
			return &entities.CalibrationRule{IntervalMonths: 12, WarnDays: 30}, nil
		},
	}
	f := newCalibrationFixture(eqRepo, recRepo, ruleRepo)

	err := f.svc.DeleteCalibrationRecord(ctxWithRole(authz.RoleAdmin, 1, nil), 4)
	require.NoError(t, err)

	assert.Equal(t, 1, f.recRepo.deleteCalls)
	assert.Equal(t, 1, f.eqRepo.derivedStateCalls)
	assert.Equal(t, entities.StatusReferencia, f.eqRepo.lastDerivedStatus)
	assert.Nil(t, f.eqRepo.lastDerivedLastDate)
	assert.Nil(t, f.eqRepo.lastDerivedDueDate)
	assert.Contains(t, f.audit.entries, "DELETE:calibration_record")
}

func TestDeleteCalibrationRecord_DesativadoNaoEhTocado(t *testing.T) {
	eqRepo := &mockEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			eq := equipamentoAtivo()
			eq.Status = entities.StatusDesativado
			return eq, nil
		},
	}
	recRepo := &mockRecordRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.CalibrationRecord, error) {
			return &entities.CalibrationRecord{ID: id, EquipmentID: 10}, nil
		},
	}
	f := newCalibrationFixture(eqRepo, recRepo, &mockRuleRepo{})

	err := f.svc.DeleteCalibrationRecord(ctxWithRole(authz.RoleAdmin, 1, nil), 4)
	require.NoError(t, err)

	// O histórico muda, mas o estado derivado do desativado fica como está.
	assert.Equal(t, 1, f.recRepo.deleteCalls)
	assert.Zero(t, f.eqRepo.derivedStateCalls)
}

func TestGetHistory_EquipamentoInexistente(t *testing.T) {
	eqRepo := &mockEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	f := newCalibrationFixture(eqRepo, &mockRecordRepo{}, &mockRuleRepo{})

	_, err := f.svc.GetHistory(ctxWithRole(authz.RoleViewer, 9, nil), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
