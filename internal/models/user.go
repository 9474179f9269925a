package models

// User is a registered account. The username is the primary key.
type User struct {
	Username   string     `json:"username" gorm:"primaryKey;type:varchar(20)"`
	Password   string     `json:"-" gorm:"type:text;not null"` // bcrypt hash, never plaintext
	Email      string     `json:"email" gorm:"type:varchar(50);not null"`
	FirstName  string     `json:"first_name" gorm:"type:varchar(30);not null"`
	LastName   string     `json:"last_name" gorm:"type:varchar(30);not null"`
	SessionKey string     `json:"-" gorm:"type:varchar(36);not null;default:''"` // new for every registration
	Feedback   []Feedback `json:"feedback,omitempty" gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
}
