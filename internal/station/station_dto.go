package station

type CreateStationRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required,oneof=PICKING PACKING RECEIVING SHIPPING RETURNS"`
	Zone     string `json:"zone"`
	Capacity int    `json:"capacity" binding:"omitempty,gt=0"`
}

type UpdateStationRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category" binding:"omitempty,oneof=PICKING PACKING RECEIVING SHIPPING RETURNS"`
	Zone     *string `json:"zone"`
	Capacity *int    `json:"capacity" binding:"omitempty,gt=0"`
	Active   *bool   `json:"active"`
}

type StationResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Zone     string `json:"zone,omitempty"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}
