package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	apperrors "github.com/wFerrazdev/gestao-calibracao-sub000/pkg/errors"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

func newEquipmentService(eqRepo *mockEquipmentRepo, ruleRepo *mockRuleRepo) (*EquipmentService, *mockAuditService) {
	audit := &mockAuditService{}
	svc := NewEquipmentService(eqRepo, ruleRepo, audit, authz.NewGatekeeper(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }
	return svc, audit
}

func TestCreateEquipment_SemHistoricoNasceReferencia(t *testing.T) {
	var created *entities.Equipment
	eqRepo := &mockEquipmentRepo{
		createFn: func(ctx context.Context, eq *entities.Equipment) (uint64, error) {
			created = eq
			return 7, nil
		},
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return created, nil
		},
	}
	ruleRepo := &mockRuleRepo{
		findByTypeFn: func(ctx context.Context, typeID uint64) (*entities.CalibrationRule, error) {
			return &entities.CalibrationRule{IntervalMonths: 12, WarnDays: 30}, nil
		},
	}
	svc, audit := newEquipmentService(eqRepo, ruleRepo)

	out, err := svc.CreateEquipment(ctxWithRole(authz.RoleQualidade, 2, nil), dto.CreateEquipmentDTO{
		Code:            "SUB-001",
		Name:            "Paquímetro digital",
		EquipmentTypeID: 3,
	})
	require.NoError(t, err)

	// Mesmo com regra cadastrada: sem histórico, é item de referência.
	assert.Equal(t, entities.StatusReferencia, out.Status)
	assert.Nil(t, out.DueDate)
	assert.Equal(t, entities.UsageInStock, created.UsageStatus)
	assert.Contains(t, audit.entries, "CREATE:equipment")
}

func TestCreateEquipment_ComHistoricoSemRegraEhVencido(t *testing.T) {
	var created *entities.Equipment
	eqRepo := &mockEquipmentRepo{
		createFn: func(ctx context.Context, eq *entities.Equipment) (uint64, error) {
			created = eq
			return 7, nil
		},
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return created, nil
		},
	}
	ruleRepo := &mockRuleRepo{} // tipo sem regra
	svc, _ := newEquipmentService(eqRepo, ruleRepo)

	last := "2025-01-10"
	out, err := svc.CreateEquipment(ctxWithRole(authz.RoleQualidade, 2, nil), dto.CreateEquipmentDTO{
		Code:                "SUB-002",
		Name:                "Micrômetro",
		EquipmentTypeID:     3,
		LastCalibrationDate: &last,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusVencido, out.Status)
	assert.Nil(t, out.DueDate)
}

func TestCreateEquipment_ComRegraCalculaVencimento(t *testing.T) {
	var created *entities.Equipment
	eqRepo := &mockEquipmentRepo{
		createFn: func(ctx context.Context, eq *entities.Equipment) (uint64, error) {
			created = eq
			return 7, nil
		},
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return created, nil
		},
	}
	ruleRepo := &mockRuleRepo{
		findByTypeFn: func(ctx context.Context, typeID uint64) (*entities.CalibrationRule, error) {
			return &entities.CalibrationRule{IntervalMonths: 12, WarnDays: 30}, nil
		},
	}
	svc, _ := newEquipmentService(eqRepo, ruleRepo)

	last := "2025-01-10"
	sectorID := uint64(4)
	out, err := svc.CreateEquipment(ctxWithRole(authz.RoleQualidade, 2, nil), dto.CreateEquipmentDTO{
		Code:                "SUB-003",
		Name:                "Balança analítica",
		EquipmentTypeID:     3,
		SectorID:            &sectorID,
		LastCalibrationDate: &last,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCalibrado, out.Status)
	require.NotNil(t, out.DueDate)
	assert.Equal(t, "2026-01-10", *out.DueDate)
	assert.Equal(t, entities.UsageInUse, created.UsageStatus)
}

func TestCreateEquipment_SemPermissaoNadaPersiste(t *testing.T) {
	eqRepo := &mockEquipmentRepo{
		createFn: func(ctx context.Context, eq *entities.Equipment) (uint64, error) {
			t.Fatal("Create não deveria ser chamado sem permissão")
			return 0, nil
		},
	}
	svc, _ := newEquipmentService(eqRepo, &mockRuleRepo{})

	_, err := svc.CreateEquipment(ctxWithRole(authz.RoleViewer, 9, nil), dto.CreateEquipmentDTO{
		Code: "SUB-004", Name: "Trena", EquipmentTypeID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateEquipment_CodigoDuplicadoViraConflito(t *testing.T) {
	eqRepo := &mockEquipmentRepo{
		createFn: func(ctx context.Context, eq *entities.Equipment) (uint64, error) {
			return 0, apperrors.ErrDuplicateCode
		},
	}
	svc, _ := newEquipmentService(eqRepo, &mockRuleRepo{})

	_, err := svc.CreateEquipment(ctxWithRole(authz.RoleAdmin, 1, nil), dto.CreateEquipmentDTO{
		Code: "SUB-001", Name: "Paquímetro", EquipmentTypeID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCode)
}

func TestGetEquipments_ProducaoRecebeEscopoDoProprioSetor(t *testing.T) {
	eqRepo := &mockEquipmentRepo{}
	svc, _ := newEquipmentService(eqRepo, &mockRuleRepo{})

	sectorID := uint64(5)
	_, _, err := svc.GetEquipments(ctxWithRole(authz.RoleProducao, 3, &sectorID), types.Filter{})
	require.NoError(t, err)

	require.True(t, eqRepo.lastSectorScopeSeen)
	require.NotNil(t, eqRepo.lastSectorScope)
	assert.Equal(t, sectorID, *eqRepo.lastSectorScope)
}

func TestGetEquipments_AdminNaoTemEscopo(t *testing.T) {
	eqRepo := &mockEquipmentRepo{}
	svc, _ := newEquipmentService(eqRepo, &mockRuleRepo{})

	sectorID := uint64(5)
	_, _, err := svc.GetEquipments(ctxWithRole(authz.RoleAdmin, 1, &sectorID), types.Filter{})
	require.NoError(t, err)
	assert.Nil(t, eqRepo.lastSectorScope)
}

func TestGetStock_ForcaFiltroDeEstoque(t *testing.T) {
	var gotFilter types.Filter
	eqRepo := &mockEquipmentRepo{
		listFn: func(ctx context.Context, filter types.Filter, scope *uint64) ([]entities.Equipment, uint64, error) {
			gotFilter = filter
			return nil, 0, nil
		},
	}
	svc, _ := newEquipmentService(eqRepo, &mockRuleRepo{})

	_, _, err := svc.GetStock(ctxWithRole(authz.RoleAdmin, 1, nil), types.Filter{
		Filter: map[string]interface{}{"usage_status": entities.UsageInUse},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.UsageInStock, gotFilter.Filter["usage_status"])
}

func TestFindEquipment_ProducaoNaoEnxergaOutroSetor(t *testing.T) {
	otherSector := uint64(8)
	eqRepo := &mockEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return &entities.Equipment{ID: id, SectorID: &otherSector, Status: entities.StatusCalibrado}, nil
		},
	}
	svc, _ := newEquipmentService(eqRepo, &mockRuleRepo{})

	mySector := uint64(5)
	_, err := svc.FindEquipment(ctxWithRole(authz.RoleProducao, 3, &mySector), 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateEquipment_DesativadoNaoRecalcula(t *testing.T) {
	last := datePtr(2024, time.January, 10)
	var saved *entities.Equipment
	eqRepo := &mockEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			if saved != nil {
				return saved, nil
			}
			return &entities.Equipment{
				ID: 10, Code: "SUB-010", Name: "Manômetro",
				EquipmentTypeID:     3,
				Status:              entities.StatusDesativado,
				LastCalibrationDate: last,
			}, nil
		},
		updateFn: func(ctx context.Context, eq *entities.Equipment) error {
			saved = eq
			return nil
		},
	}
	ruleRepo := &mockRuleRepo{
		findByTypeFn: func(ctx context.Context, typeID uint64) (*entities.CalibrationRule, error) {
			t.Fatal("regra não deveria ser consultada para equipamento desativado")
			return nil, nil
		},
	}
	svc, _ := newEquipmentService(eqRepo, ruleRepo)

	newType := uint64(9)
	out, err := svc.UpdateEquipment(ctxWithRole(authz.RoleAdmin, 1, nil), 10, dto.UpdateEquipmentDTO{
		EquipmentTypeID: &newType,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusDesativado, out.Status)
}

func TestUpdateEquipment_TrocaDeTipoRecalcula(t *testing.T) {
	last := datePtr(2025, time.January, 10)
	var saved *entities.Equipment
	eqRepo := &mockEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			if saved != nil {
				return saved, nil
			}
			return &entities.Equipment{
				ID: 10, Code: "SUB-010", Name: "Manômetro",
				EquipmentTypeID:     3,
				Status:              entities.StatusCalibrado,
				LastCalibrationDate: last,
			}, nil
		},
		updateFn: func(ctx context.Context, eq *entities.Equipment) error {
			saved = eq
			return nil
		},
	}
	ruleRepo := &mockRuleRepo{
		findByTypeFn: func(ctx context.Context, typeID uint64) (*entities.CalibrationRule, error) {
			// O novo tipo não tem regra: classificação conservadora.
			return nil, nil
		},
	}
	svc, _ := newEquipmentService(eqRepo, ruleRepo)

	newType := uint64(9)
	out, err := svc.UpdateEquipment(ctxWithRole(authz.RoleAdmin, 1, nil), 10, dto.UpdateEquipmentDTO{
		EquipmentTypeID: &newType,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusVencido, out.Status)
}

func TestUpdateUsageState_EstoqueZeraSetor(t *testing.T) {
	var gotSector *uint64
	var gotUsage string
	eqRepo := &mockEquipmentRepo{
		updateUsageFn: func(ctx context.Context, id uint64, usageStatus string, sectorID *uint64, location *string) error {
			gotUsage = usageStatus
			gotSector = sectorID
			return nil
		},
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return &entities.Equipment{ID: id, UsageStatus: entities.UsageInStock}, nil
		},
	}
	svc, _ := newEquipmentService(eqRepo, &mockRuleRepo{})

	sectorID := uint64(4)
	_, err := svc.UpdateUsageState(ctxWithRole(authz.RoleAdmin, 1, nil), 10, dto.UpdateUsageStateDTO{
		UsageStatus: entities.UsageInStock,
		SectorID:    &sectorID, // ignorado: estoque central não tem setor
		Location:    utils.StringPtr("Armário B3"),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.UsageInStock, gotUsage)
	assert.Nil(t, gotSector)
}
