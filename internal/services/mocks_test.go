package services

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/contextkeys"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"
)

// Dublês de repositório usados pelos testes de serviço. Cada campo func
// permite programar o comportamento por teste; chamada sem programação
// devolve zero values.

type mockEquipmentRepo struct {
	listFn               func(ctx context.Context, filter types.Filter, sectorScope *uint64) ([]entities.Equipment, uint64, error)
	findByIDFn           func(ctx context.Context, id uint64) (*entities.Equipment, error)
	createFn             func(ctx context.Context, eq *entities.Equipment) (uint64, error)
	updateFn             func(ctx context.Context, eq *entities.Equipment) error
	updateDerivedFn      func(ctx context.Context, tx pgx.Tx, id uint64, lastCalibrationDate *time.Time, lastCertificateNumber *string, dueDate *time.Time, status string) error
	updateUsageFn        func(ctx context.Context, id uint64, usageStatus string, sectorID *uint64, location *string) error
	deleteFn             func(ctx context.Context, id uint64) error
	lastSectorScope      *uint64
	lastSectorScopeSeen  bool
	derivedStateCalls    int
	lastDerivedStatus    string
	lastDerivedDueDate   *time.Time
	lastDerivedLastDate  *time.Time
	lastDerivedLastCert  *string
}

func (m *mockEquipmentRepo) List(ctx context.Context, filter types.Filter, sectorScope *uint64) ([]entities.Equipment, uint64, error) {
	m.lastSectorScope = sectorScope
	m.lastSectorScopeSeen = true
	if m.listFn != nil {
		return m.listFn(ctx, filter, sectorScope)
	}
	return nil, 0, nil
}

func (m *mockEquipmentRepo) FindByID(ctx context.Context, id uint64) (*entities.Equipment, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockEquipmentRepo) Create(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, eq)
	}
	return 1, nil
}

func (m *mockEquipmentRepo) Update(ctx context.Context, eq *entities.Equipment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, eq)
	}
	return nil
}

func (m *mockEquipmentRepo) UpdateDerivedStateTx(ctx context.Context, tx pgx.Tx, id uint64, lastCalibrationDate *time.Time, lastCertificateNumber *string, dueDate *time.Time, status string) error {
	m.derivedStateCalls++
	m.lastDerivedLastDate = lastCalibrationDate
	m.lastDerivedLastCert = lastCertificateNumber
	m.lastDerivedDueDate = dueDate
	m.lastDerivedStatus = status
	if m.updateDerivedFn != nil {
		return m.updateDerivedFn(ctx, tx, id, lastCalibrationDate, lastCertificateNumber, dueDate, status)
	}
	return nil
}

func (m *mockEquipmentRepo) UpdateUsageState(ctx context.Context, id uint64, usageStatus string, sectorID *uint64, location *string) error {
	if m.updateUsageFn != nil {
		return m.updateUsageFn(ctx, id, usageStatus, sectorID, location)
	}
	return nil
}

func (m *mockEquipmentRepo) Delete(ctx context.Context, id uint64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockRuleRepo struct {
	findByTypeFn func(ctx context.Context, equipmentTypeID uint64) (*entities.CalibrationRule, error)
}

func (m *mockRuleRepo) List(ctx context.Context) ([]entities.CalibrationRule, error) { return nil, nil }
func (m *mockRuleRepo) FindByID(ctx context.Context, id uint64) (*entities.CalibrationRule, error) {
	return nil, nil
}
func (m *mockRuleRepo) FindByEquipmentType(ctx context.Context, equipmentTypeID uint64) (*entities.CalibrationRule, error) {
	if m.findByTypeFn != nil {
		return m.findByTypeFn(ctx, equipmentTypeID)
	}
	return nil, nil
}
func (m *mockRuleRepo) Create(ctx context.Context, rule *entities.CalibrationRule) (uint64, error) {
	return 0, nil
}
func (m *mockRuleRepo) Update(ctx context.Context, id uint64, intervalMonths, warnDays int) error {
	return nil
}
func (m *mockRuleRepo) Delete(ctx context.Context, id uint64) error { return nil }

type mockRecordRepo struct {
	findByIDFn  func(ctx context.Context, id uint64) (*entities.CalibrationRecord, error)
	listFn      func(ctx context.Context, equipmentID uint64) ([]entities.CalibrationRecord, error)
	insertTxFn  func(ctx context.Context, tx pgx.Tx, rec *entities.CalibrationRecord) (uint64, error)
	deleteTxFn  func(ctx context.Context, tx pgx.Tx, id uint64) error
	latestTxFn  func(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.CalibrationRecord, error)
	insertCalls int
	deleteCalls int
}

func (m *mockRecordRepo) FindByID(ctx context.Context, id uint64) (*entities.CalibrationRecord, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRecordRepo) ListByEquipment(ctx context.Context, equipmentID uint64) ([]entities.CalibrationRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, equipmentID)
	}
	return nil, nil
}

func (m *mockRecordRepo) InsertTx(ctx context.Context, tx pgx.Tx, rec *entities.CalibrationRecord) (uint64, error) {
	m.insertCalls++
	if m.insertTxFn != nil {
		return m.insertTxFn(ctx, tx, rec)
	}
	return 1, nil
}

func (m *mockRecordRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	m.deleteCalls++
	if m.deleteTxFn != nil {
		return m.deleteTxFn(ctx, tx, id)
	}
	return nil
}

func (m *mockRecordRepo) LatestByDateTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.CalibrationRecord, error) {
	if m.latestTxFn != nil {
		return m.latestTxFn(ctx, tx, equipmentID)
	}
	return nil, nil
}

// mockTxManager executa a função imediatamente, sem transação real; os
// repositórios dublês ignoram o tx.
type mockTxManager struct {
	runs int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.runs++
	return fn(nil)
}

type mockAuditService struct {
	entries []string
}

func (m *mockAuditService) Record(ctx context.Context, action, entityType string, entityID uint64, metadata map[string]interface{}) {
	m.entries = append(m.entries, action+":"+entityType)
}

func (m *mockAuditService) ListByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.AuditLog, error) {
	return nil, nil
}

type mockDashboardRepo struct {
	statusCounts []types.DashboardStatusCount
	sectorCounts []types.DashboardSectorCounts
	monthly      []types.DashboardMonthCount
	approved     int64
	rejected     int64
	approvalErr  error
	upcoming     []types.DashboardUpcomingItem

	lastSecurity sq.Sqlizer
}

func (m *mockDashboardRepo) GetStatusCounts(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardStatusCount, error) {
	m.lastSecurity = securityCondition
	return m.statusCounts, nil
}

func (m *mockDashboardRepo) GetSectorCounts(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardSectorCounts, error) {
	return m.sectorCounts, nil
}

func (m *mockDashboardRepo) GetMonthlyCalibrations(ctx context.Context, securityCondition sq.Sqlizer, since time.Time) ([]types.DashboardMonthCount, error) {
	return m.monthly, nil
}

func (m *mockDashboardRepo) GetApprovalCounts(ctx context.Context, securityCondition sq.Sqlizer, since time.Time) (int64, int64, error) {
	return m.approved, m.rejected, m.approvalErr
}

func (m *mockDashboardRepo) GetUpcomingDue(ctx context.Context, securityCondition sq.Sqlizer, limit uint64) ([]types.DashboardUpcomingItem, error) {
	return m.upcoming, nil
}

// ctxWithRole monta um contexto como o middleware de autenticação faria.
func ctxWithRole(role string, userID uint64, sectorID *uint64) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
	ctx = context.WithValue(ctx, contextkeys.UserSectorIDKey, sectorID)
	ctx = context.WithValue(ctx, contextkeys.UserPermissionsMapKey, authz.PermissionsForRole(role))
	return ctx
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
