package entity

type User struct {
	Base
	Name      string `gorm:"unique"`
	AvatarURL string
	Sport     string
	Role      string `gorm:"default:USER"`
}

const (
	AdminRole = "ADMIN"
	UserRole  = "USER"
)
