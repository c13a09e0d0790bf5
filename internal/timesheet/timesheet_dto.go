package timesheet

type DailySummary struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	WorkMinutes  float64 `json:"work_minutes"`
	BreakMinutes float64 `json:"break_minutes"`
	NetMinutes   float64 `json:"net_minutes"`
	OpenSession  bool    `json:"open_session"`
}

type WeeklySummary struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	WeekStart    string  `json:"week_start"`
	WorkMinutes  float64 `json:"work_minutes"`
	BreakMinutes float64 `json:"break_minutes"`
	NetMinutes   float64 `json:"net_minutes"`
}
