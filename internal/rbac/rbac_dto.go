package rbac

type EnforceRequest struct {
	EmployeeID string
	Resource   string
	Action     string
}

type AssignRoleRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	RoleID     string `json:"role_id" binding:"required"`
}

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
