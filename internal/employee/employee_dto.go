package employee

type CreateEmployeeRequest struct {
	EmployeeNumber string   `json:"employee_number"`
	FullName       string   `json:"full_name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	HireDate       string   `json:"hire_date" binding:"required"`
	DailyHourCap   *float64 `json:"daily_hour_cap" binding:"omitempty,gt=0"`
	WeeklyHourCap  *float64 `json:"weekly_hour_cap" binding:"omitempty,gt=0"`
}

type UpdateEmployeeRequest struct {
	FullName      *string  `json:"full_name"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	DailyHourCap  *float64 `json:"daily_hour_cap" binding:"omitempty,gt=0"`
	WeeklyHourCap *float64 `json:"weekly_hour_cap" binding:"omitempty,gt=0"`
	Status        *string  `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE"`
}

type SetPinRequest struct {
	Pin string `json:"pin" binding:"required,min=4,max=6,numeric"`
}

type EmployeeResponse struct {
	ID             string   `json:"id"`
	EmployeeNumber string   `json:"employee_number"`
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	HasPin         bool     `json:"has_pin"`
	LastStationID  *string  `json:"last_station_id,omitempty"`
	DailyHourCap   *float64 `json:"daily_hour_cap,omitempty"`
	WeeklyHourCap  *float64 `json:"weekly_hour_cap,omitempty"`
	Status         string   `json:"status"`
	HireDate       string   `json:"hire_date"`
}
