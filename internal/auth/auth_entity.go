package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	Email      string    `gorm:"column:email;uniqueIndex"`
	Password   string    `gorm:"column:password;not null"`
	Name       string    `gorm:"column:name"`
	Role       string    `gorm:"column:role;type:varchar(30);default:EMPLOYEE"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
