package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Usuario      struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Nome     string `json:"nome"`
		Perfil   string `json:"perfil"`
	} `json:"usuario"`
}
