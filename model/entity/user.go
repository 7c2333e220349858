package entity

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	UserID      uint           `gorm:"column:user_id;primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"column:name;type:varchar(64);not null" json:"name" mapstructure:"name"`
	Email       string         `gorm:"column:email;type:varchar(128);uniqueIndex;not null" json:"email" mapstructure:"email"`
	Phone       *string        `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty" mapstructure:"phone"`
	IsActive    int16          `gorm:"column:is_active;not null;default:1" json:"is_active" mapstructure:"is_active"`
	Avatar      *string        `gorm:"column:avatar;type:varchar(255)" json:"avatar,omitempty"`
	Preferences datatypes.JSON `gorm:"column:preferences" json:"preferences,omitempty" mapstructure:"-"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
