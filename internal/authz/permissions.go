package authz

// Papéis reconhecidos pelo sistema. CRIADOR é o superusuário; PRODUCAO é
// sempre limitado ao próprio setor.
const (
	RoleCriador   = "CRIADOR"
	RoleAdmin     = "ADMIN"
	RoleQualidade = "QUALIDADE"
	RoleProducao  = "PRODUCAO"
	RoleViewer    = "VIEWER"
)

// Permissões (capacidades). A autorização decide por capacidade, nunca por
// comparação direta de papel ou de identidade, para que as regras sejam
// testáveis sem acoplamento a ambiente.
const (
	// Global
	Superuser = "superuser"

	// Equipamentos
	EquipmentsView   = "equipments:view"
	EquipmentsCreate = "equipments:create"
	EquipmentsUpdate = "equipments:update"
	EquipmentsDelete = "equipments:delete"

	// Calibrações
	CalibrationsCreate = "calibrations:create"
	CalibrationsDelete = "calibrations:delete"

	// Cadastros (setores, tipos, regras)
	CatalogsView   = "catalogs:view"
	CatalogsManage = "catalogs:manage"

	// Fornecedores e orçamentos
	SuppliersManage = "suppliers:manage"
	QuotesManage    = "quotes:manage"

	// Usuários
	UsersManage = "users:manage"

	// Leitura agregada
	DashboardView = "dashboard:view"
	ReportsExport = "reports:export"

	// Modificador de escopo: restringe toda leitura/escrita ao setor do ator
	ScopeOwnSector = "scope:own-sector"
)

// rolePermissions define o conjunto de capacidades de cada papel.
var rolePermissions = map[string][]string{
	RoleCriador: {Superuser},
	RoleAdmin: {
		EquipmentsView, EquipmentsCreate, EquipmentsUpdate, EquipmentsDelete,
		CalibrationsCreate, CalibrationsDelete,
		CatalogsView, CatalogsManage,
		SuppliersManage, QuotesManage,
		UsersManage,
		DashboardView, ReportsExport,
	},
	RoleQualidade: {
		EquipmentsView, EquipmentsCreate, EquipmentsUpdate,
		CalibrationsCreate, CalibrationsDelete,
		CatalogsView, CatalogsManage,
		SuppliersManage, QuotesManage,
		DashboardView, ReportsExport,
	},
	RoleProducao: {
		EquipmentsView,
		CalibrationsCreate,
		CatalogsView,
		DashboardView,
		ScopeOwnSector,
	},
	RoleViewer: {
		EquipmentsView,
		CatalogsView,
		DashboardView,
	},
}

// PermissionsForRole devolve o mapa de capacidades do papel. Papel
// desconhecido recebe mapa vazio (nega tudo).
func PermissionsForRole(role string) map[string]bool {
	perms := map[string]bool{}
	for _, p := range rolePermissions[role] {
		perms[p] = true
	}
	return perms
}

func KnownRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// Roles devolve todos os papéis conhecidos.
func Roles() []string {
	roles := make([]string, 0, len(rolePermissions))
	for role := range rolePermissions {
		roles = append(roles, role)
	}
	return roles
}
