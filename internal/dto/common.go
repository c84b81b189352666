package dto

type ShortSectorDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortEquipmentTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortSupplierDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// DateLayout é o formato de data (sem hora) aceito em toda a API.
const DateLayout = "2006-01-02"
