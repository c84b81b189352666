package authz

// Gatekeeper concentra as decisões de autorização sobre um mapa de
// capacidades já resolvido para o ator.
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Can responde se o ator tem a capacidade pedida. Superuser passa sempre.
func (g *Gatekeeper) Can(perms map[string]bool, permission string) bool {
	if perms[Superuser] {
		return true
	}
	return perms[permission]
}

// SectorScope devolve o setor ao qual toda consulta do ator deve ser
// restringida, ou nil quando não há restrição. A restrição vale para quem
// carrega o modificador ScopeOwnSector (papel de produção) e é aplicada
// ANTES de qualquer agregação ou listagem, ignorando o que vier na query.
func (g *Gatekeeper) SectorScope(perms map[string]bool, actorSectorID *uint64) *uint64 {
	if perms[Superuser] {
		return nil
	}
	if perms[ScopeOwnSector] {
		return actorSectorID
	}
	return nil
}
