package models

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User is an account row. PasswordHash stays empty for federated identities;
// ExternalID/ExternalProvider stay empty for password accounts. Accounts are
// never deleted, only blocked.
type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"default:''"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'user'"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`

	ExternalID       string `gorm:"index;default:''"`
	ExternalProvider string `gorm:"default:''"`
	AvatarURL        string `gorm:"default:''"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
