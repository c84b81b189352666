package services

import (
	"context"
	"math"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/dto"
	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/repositories"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/types"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/utils"
)

const upcomingDueLimit = 10

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	gate          *authz.Gatekeeper
	logger        *zap.Logger
	now           func() time.Time
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	gate *authz.Gatekeeper,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		gate:          gate,
		logger:        logger,
		now:           time.Now,
	}
}

// GetDashboard monta o painel inteiro a partir do status já persistido nos
// equipamentos; nada é recalculado na leitura. Para papéis com escopo de
// setor o predicado de segurança entra antes de qualquer agregação.
func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	perms, err := requirePermission(ctx, s.gate, authz.DashboardView)
	if err != nil {
		return nil, err
	}

	var securityCondition sq.Sqlizer
	if scope := s.gate.SectorScope(perms, utils.GetSectorIDFromCtx(ctx)); scope != nil {
		securityCondition = sq.Eq{"e.sector_id": *scope}
	}

	since := monthStart(s.now()).AddDate(0, -11, 0)

	// As cinco leituras são independentes; disparamos em paralelo.
	var (
		wg           sync.WaitGroup
		statusCounts []types.DashboardStatusCount
		sectorCounts []types.DashboardSectorCounts
		monthly      []types.DashboardMonthCount
		approved     int64
		rejected     int64
		upcoming     []types.DashboardUpcomingItem

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) { statusCounts, err = s.dashboardRepo.GetStatusCounts(ctx, securityCondition); return })
	addTask(func() (err error) { sectorCounts, err = s.dashboardRepo.GetSectorCounts(ctx, securityCondition); return })
	addTask(func() (err error) { monthly, err = s.dashboardRepo.GetMonthlyCalibrations(ctx, securityCondition, since); return })
	addTask(func() (err error) { approved, rejected, err = s.dashboardRepo.GetApprovalCounts(ctx, securityCondition, since); return })
	addTask(func() (err error) { upcoming, err = s.dashboardRepo.GetUpcomingDue(ctx, securityCondition, upcomingDueLimit); return })

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("falha ao montar o dashboard", zap.Error(errs[0]))
		return nil, errs[0]
	}

	return &dto.DashboardDTO{
		StatusCounts:  statusCounts,
		SectorHealth:  computeSectorHealth(sectorCounts),
		ByMonth:       denseMonths(monthly, since, 12),
		ApprovalStats: approvalStats(approved, rejected),
		UpcomingDue:   upcoming,
	}, nil
}

// computeSectorHealth transforma contagens brutas no índice de saúde
// round(100 * calibrados / total). No balde sintético de estoque (setor
// nulo) os itens de referência saem do denominador: padrão sem histórico
// não penaliza a saúde do estoque.
func computeSectorHealth(counts []types.DashboardSectorCounts) []types.DashboardSectorHealth {
	out := make([]types.DashboardSectorHealth, 0, len(counts))
	for _, c := range counts {
		total := c.Total
		if c.SectorID == nil {
			total -= c.Reference
		}

		h := types.DashboardSectorHealth{
			SectorID:   c.SectorID,
			SectorName: c.SectorName,
			Total:      total,
			Calibrated: c.Calibrated,
		}
		if total > 0 {
			h.Score = int(math.Round(100 * float64(c.Calibrated) / float64(total)))
		}
		out = append(out, h)
	}
	return out
}

// denseMonths devolve a série com exatamente `months` baldes consecutivos a
// partir de `since`, preenchendo com zero os meses sem laudo.
func denseMonths(sparse []types.DashboardMonthCount, since time.Time, months int) []types.DashboardMonthCount {
	byMonth := make(map[time.Time]int64, len(sparse))
	for _, b := range sparse {
		byMonth[monthStart(b.Month)] = b.Count
	}

	out := make([]types.DashboardMonthCount, 0, months)
	for i := 0; i < months; i++ {
		m := since.AddDate(0, i, 0)
		out = append(out, types.DashboardMonthCount{Month: m, Count: byMonth[m]})
	}
	return out
}

func approvalStats(approved, rejected int64) types.DashboardApprovalStats {
	stats := types.DashboardApprovalStats{Approved: approved, Rejected: rejected}
	if total := approved + rejected; total > 0 {
		stats.Rate = 100 * float64(approved) / float64(total)
	}
	return stats
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
