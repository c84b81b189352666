package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsForRole(t *testing.T) {
	criador := PermissionsForRole(RoleCriador)
	assert.True(t, criador[Superuser])

	admin := PermissionsForRole(RoleAdmin)
	assert.False(t, admin[Superuser])
	assert.True(t, admin[EquipmentsDelete])
	assert.True(t, admin[UsersManage])
	assert.False(t, admin[ScopeOwnSector])

	producao := PermissionsForRole(RoleProducao)
	assert.True(t, producao[ScopeOwnSector])
	assert.True(t, producao[CalibrationsCreate])
	assert.False(t, producao[EquipmentsCreate])
	assert.False(t, producao[CalibrationsDelete])

	viewer := PermissionsForRole(RoleViewer)
	assert.True(t, viewer[EquipmentsView])
	assert.False(t, viewer[CalibrationsCreate])

	desconhecido := PermissionsForRole("PAPEL_QUE_NAO_EXISTE")
	assert.Empty(t, desconhecido)
}

func TestGatekeeperCan(t *testing.T) {
	g := NewGatekeeper()

	assert.True(t, g.Can(PermissionsForRole(RoleCriador), EquipmentsDelete),
		"superusuário passa em qualquer capacidade")
	assert.True(t, g.Can(PermissionsForRole(RoleQualidade), CalibrationsCreate))
	assert.False(t, g.Can(PermissionsForRole(RoleViewer), EquipmentsUpdate))
	assert.False(t, g.Can(nil, EquipmentsView), "mapa nulo nega tudo")
}

func TestGatekeeperSectorScope(t *testing.T) {
	g := NewGatekeeper()
	sector := uint64(7)

	scope := g.SectorScope(PermissionsForRole(RoleProducao), &sector)
	assert.NotNil(t, scope)
	assert.Equal(t, uint64(7), *scope)

	assert.Nil(t, g.SectorScope(PermissionsForRole(RoleAdmin), &sector),
		"admin não é restringido por setor")
	assert.Nil(t, g.SectorScope(PermissionsForRole(RoleCriador), &sector))
	assert.Nil(t, g.SectorScope(PermissionsForRole(RoleProducao), nil),
		"produção sem setor atribuído não enxerga nada de setor algum")
}
