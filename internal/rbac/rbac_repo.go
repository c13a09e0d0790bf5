package rbac

import (
	"context"

	"gorm.io/gorm"
)

type EmployeeRole struct {
	EmployeeID string
	RoleID     string
}

type RolePermission struct {
	RoleID   string
	Resource string
	Action   string
}

type Role struct {
	ID   string `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (Role) TableName() string {
	return "roles"
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRoles() ([]EmployeeRole, error)
	GetRolePermissions() ([]RolePermission, error)
	ListRoles(ctx context.Context) ([]Role, error)
	AssignRole(ctx context.Context, employeeID, roleID string) error
	RevokeRole(ctx context.Context, employeeID, roleID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEmployeeRoles() ([]EmployeeRole, error) {
	var rows []EmployeeRole
	err := r.db.
		Table("employee_roles").
		Select("employee_id::text AS employee_id, role_id::text AS role_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) GetRolePermissions() ([]RolePermission, error) {
	var rows []RolePermission
	err := r.db.
		Table("role_permissions").
		Select("role_id::text AS role_id, resource, action").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).Find(&roles).Error
	return roles, err
}

func (r *repository) AssignRole(ctx context.Context, employeeID, roleID string) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO employee_roles (employee_id, role_id, created_at)
		VALUES (?, ?, now())
		ON CONFLICT (employee_id, role_id) DO NOTHING
	`, employeeID, roleID).Error
}

func (r *repository) RevokeRole(ctx context.Context, employeeID, roleID string) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM employee_roles WHERE employee_id = ? AND role_id = ?
	`, employeeID, roleID).Error
}
