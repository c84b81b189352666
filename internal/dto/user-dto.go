package dto

type UserDTO struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	Sector    *ShortSectorDTO `json:"sector"`
	Approved  bool            `json:"approved"`
	CreatedAt string          `json:"created_at"`
}

type RegisterUserDTO struct {
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	SectorID *uint64 `json:"sector_id"`
}

type UpdateUserDTO struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=120"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN QUALIDADE PRODUCAO VIEWER"`
	SectorID *uint64 `json:"sector_id"`
	Approved *bool   `json:"approved"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}
