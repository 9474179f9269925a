package models

import "time"

// Feedback is a short note owned by exactly one user.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"type:varchar(100);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Username  string    `json:"username" gorm:"type:varchar(20);not null;index"`
	User      *User     `json:"-" gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the singular table name used by the schema.
func (Feedback) TableName() string {
	return "feedback"
}
