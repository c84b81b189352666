package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"
)

type DashboardRepositoryInterface interface {
	GetStatusCounts(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardStatusCount, error)
	GetSectorCounts(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardSectorCounts, error)
	GetMonthlyCalibrations(ctx context.Context, securityCondition sq.Sqlizer, since time.Time) ([]types.DashboardMonthCount, error)
	GetApprovalCounts(ctx context.Context, securityCondition sq.Sqlizer, since time.Time) (approved, rejected int64, err error)
	GetUpcomingDue(ctx context.Context, securityCondition sq.Sqlizer, limit uint64) ([]types.DashboardUpcomingItem, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// applySecurity injeta o predicado de escopo de setor. A condição chega
// pronta do serviço e entra ANTES de qualquer agregação.
func applySecurity(b sq.SelectBuilder, securityCondition sq.Sqlizer) sq.SelectBuilder {
	if securityCondition != nil {
		return b.Where(securityCondition)
	}
	return b
}

func statusCountsQuery(securityCondition sq.Sqlizer) sq.SelectBuilder {
	b := sq.Select("e.status", "COUNT(*)").
		From(equipmentTable + " e").
		Where(sq.NotEq{"e.status": entities.StatusDesativado}).
		GroupBy("e.status")
	return applySecurity(b, securityCondition)
}

// GetStatusCounts conta equipamentos por status. Desativados ficam de fora:
// o painel enxerga só o parque ativo, como as demais visões.
func (r *DashboardRepository) GetStatusCounts(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardStatusCount, error) {
	sqlStr, args, err := statusCountsQuery(securityCondition).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []types.DashboardStatusCount
	for rows.Next() {
		var c types.DashboardStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func sectorCountsQuery(securityCondition sq.Sqlizer) sq.SelectBuilder {
	b := sq.Select(
		"e.sector_id",
		"COALESCE(s.name, 'Estoque')",
		"COUNT(*)",
		"COUNT(CASE WHEN e.status = '"+entities.StatusCalibrado+"' THEN 1 END)",
		"COUNT(CASE WHEN e.status = '"+entities.StatusReferencia+"' THEN 1 END)",
	).
		From(equipmentTable+" e").
		LeftJoin(sectorTable+" s ON s.id = e.sector_id").
		Where(sq.NotEq{"e.status": entities.StatusDesativado}).
		GroupBy("e.sector_id", "s.name").
		OrderBy("s.name NULLS LAST")
	return applySecurity(b, securityCondition)
}

// GetSectorCounts devolve as contagens brutas por setor. Equipamentos em
// estoque (sector_id nulo) entram como uma linha sintética com SectorID nulo.
func (r *DashboardRepository) GetSectorCounts(ctx context.Context, securityCondition sq.Sqlizer) ([]types.DashboardSectorCounts, error) {
	sqlStr, args, err := sectorCountsQuery(securityCondition).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []types.DashboardSectorCounts
	for rows.Next() {
		var c types.DashboardSectorCounts
		if err := rows.Scan(&c.SectorID, &c.SectorName, &c.Total, &c.Calibrated, &c.Reference); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func monthlyCalibrationsQuery(securityCondition sq.Sqlizer, since time.Time) sq.SelectBuilder {
	b := sq.Select(
		"date_trunc('month', c.calibration_date)",
		"COUNT(*)",
	).
		From(calibrationRecordTable+" c").
		Join(equipmentTable+" e ON e.id = c.equipment_id").
		Where(sq.GtOrEq{"c.calibration_date": since}).
		GroupBy("date_trunc('month', c.calibration_date)").
		OrderBy("date_trunc('month', c.calibration_date)")
	return applySecurity(b, securityCondition)
}

// GetMonthlyCalibrations conta laudos por mês de calibração a partir de
// "since". Meses sem laudo não aparecem: o serviço densifica a série.
func (r *DashboardRepository) GetMonthlyCalibrations(ctx context.Context, securityCondition sq.Sqlizer, since time.Time) ([]types.DashboardMonthCount, error) {
	sqlStr, args, err := monthlyCalibrationsQuery(securityCondition, since).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []types.DashboardMonthCount
	for rows.Next() {
		var b types.DashboardMonthCount
		if err := rows.Scan(&b.Month, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func approvalCountsQuery(securityCondition sq.Sqlizer, since time.Time) sq.SelectBuilder {
	b := sq.Select(
		"COUNT(CASE WHEN c.status = '"+entities.RecordApproved+"' THEN 1 END)",
		"COUNT(CASE WHEN c.status = '"+entities.RecordRejected+"' THEN 1 END)",
	).
		From(calibrationRecordTable+" c").
		Join(equipmentTable+" e ON e.id = c.equipment_id").
		Where(sq.GtOrEq{"c.calibration_date": since})
	return applySecurity(b, securityCondition)
}

func (r *DashboardRepository) GetApprovalCounts(ctx context.Context, securityCondition sq.Sqlizer, since time.Time) (int64, int64, error) {
	sqlStr, args, err := approvalCountsQuery(securityCondition, since).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, 0, err
	}

	var approved, rejected int64
	err = r.storage.QueryRow(ctx, sqlStr, args...).Scan(&approved, &rejected)
	return approved, rejected, err
}

func upcomingDueQuery(securityCondition sq.Sqlizer, limit uint64) sq.SelectBuilder {
	b := sq.Select("e.id", "e.code", "e.name", "s.name", "e.due_date", "e.status").
		From(equipmentTable+" e").
		LeftJoin(sectorTable+" s ON s.id = e.sector_id").
		Where(sq.Eq{"e.status": []string{entities.StatusCalibrado, entities.StatusIraVencer}}).
		Where("e.due_date IS NOT NULL").
		OrderBy("e.due_date ASC", "e.code ASC").
		Limit(limit)
	return applySecurity(b, securityCondition)
}

// GetUpcomingDue lista os próximos vencimentos: só CALIBRADO e IRA_VENCER
// têm data de vencimento relevante.
func (r *DashboardRepository) GetUpcomingDue(ctx context.Context, securityCondition sq.Sqlizer, limit uint64) ([]types.DashboardUpcomingItem, error) {
	sqlStr, args, err := upcomingDueQuery(securityCondition, limit).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.DashboardUpcomingItem
	for rows.Next() {
		var item types.DashboardUpcomingItem
		if err := rows.Scan(&item.EquipmentID, &item.Code, &item.Name, &item.SectorName, &item.DueDate, &item.Status); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
