package model

type User struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Sport     string `json:"sport,omitempty"`
	Role      string `json:"role,omitempty"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse User

type GetMeRequest struct{}

type GetMeResponse User

type AccessTokenClaims struct {
	ID   string `mapstructure:"id" json:"id"`
	Name string `mapstructure:"name" json:"name"`
	Role string `mapstructure:"role" json:"role"`
}
