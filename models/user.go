package models

import (
	"time"
)

type User struct {
	UserID      int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	EmployeeID  string     `gorm:"column:employee_id;unique" json:"employee_id"`
	PhoneNumber string     `gorm:"column:phone_number" json:"phone_number"`
	Password    string     `gorm:"column:password" json:"-"`
	CreateAt    time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}
