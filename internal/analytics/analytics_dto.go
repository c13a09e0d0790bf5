package analytics

type StationHours struct {
	StationID   string  `json:"station_id"`
	StationName string  `json:"station_name"`
	Zone        string  `json:"zone,omitempty"`
	Hours       float64 `json:"hours"`
}

type ZoneHours struct {
	Zone  string  `json:"zone"`
	Hours float64 `json:"hours"`
}

type DayHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type Snapshot struct {
	GeneratedAt    string         `json:"generated_at"`
	From           string         `json:"from"`
	To             string         `json:"to"`
	ActiveNow      int64          `json:"active_now"`
	Headcount      int64          `json:"headcount"`
	HoursByStation []StationHours `json:"hours_by_station"`
	HoursByZone    []ZoneHours    `json:"hours_by_zone"`
	HoursByDay     []DayHours     `json:"hours_by_day"`
}

type CorrectionStat struct {
	Date   string `json:"date"`
	Action string `json:"action"`
	Count  int64  `json:"count"`
}
