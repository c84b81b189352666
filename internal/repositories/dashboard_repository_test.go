package repositories

import (
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/entities"
)

// As consultas do dashboard são montadas com squirrel e só tocam o banco em
// produção. Estes testes renderizam cada builder e conferem toda coluna
// referenciada contra a migração, para que um nome de coluna errado quebre
// aqui e não em runtime.

var qualifiedColumnRe = regexp.MustCompile(`\b(e|c|s)\.([a-z_]+)`)

var aliasTables = map[string]string{
	"e": "equipments",
	"c": "calibration_records",
	"s": "sectors",
}

func loadSchema(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../migrations/00001_init.sql")
	require.NoError(t, err)
	return string(data)
}

// tableDDL recorta o corpo do CREATE TABLE da tabela pedida.
func tableDDL(t *testing.T, schema, table string) string {
	t.Helper()
	marker := "CREATE TABLE " + table + " ("
	start := strings.Index(schema, marker)
	require.NotEqual(t, -1, start, "tabela %s ausente na migração", table)
	body := schema[start+len(marker):]
	end := strings.Index(body, ");")
	require.NotEqual(t, -1, end)
	return body[:end]
}

func columnDefined(ddl, column string) bool {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(column) + `\s`)
	return re.MatchString(ddl)
}

func TestDashboardQueries_ColunasExistemNoSchema(t *testing.T) {
	schema := loadSchema(t)
	since := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	scope := sq.Eq{"e.sector_id": uint64(5)}

	queries := map[string]sq.SelectBuilder{
		"statusCounts":        statusCountsQuery(scope),
		"sectorCounts":        sectorCountsQuery(scope),
		"monthlyCalibrations": monthlyCalibrationsQuery(scope, since),
		"approvalCounts":      approvalCountsQuery(scope, since),
		"upcomingDue":         upcomingDueQuery(scope, 10),
	}

	for name, b := range queries {
		t.Run(name, func(t *testing.T) {
			sqlStr, _, err := b.PlaceholderFormat(sq.Dollar).ToSql()
			require.NoError(t, err)

			refs := qualifiedColumnRe.FindAllStringSubmatch(sqlStr, -1)
			require.NotEmpty(t, refs)

			for _, ref := range refs {
				table := aliasTables[ref[1]]
				ddl := tableDDL(t, schema, table)
				assert.True(t, columnDefined(ddl, ref[2]),
					"coluna %s.%s não existe em %s: %s", ref[1], ref[2], table, sqlStr)
			}
		})
	}
}

func TestStatusCountsQuery_PainelSoEnxergaParqueAtivo(t *testing.T) {
	sqlStr, args, err := statusCountsQuery(nil).PlaceholderFormat(sq.Dollar).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "e.status <> $1")
	assert.Equal(t, []interface{}{entities.StatusDesativado}, args)
}

func TestApprovalCountsQuery_ContaPeloStatusDoLaudo(t *testing.T) {
	since := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	sqlStr, args, err := approvalCountsQuery(nil, since).PlaceholderFormat(sq.Dollar).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "CASE WHEN c.status = 'APPROVED' THEN 1 END")
	assert.Contains(t, sqlStr, "CASE WHEN c.status = 'REJECTED' THEN 1 END")
	assert.Contains(t, sqlStr, "c.calibration_date >= $1")
	assert.Equal(t, []interface{}{since}, args)
}
