package booking

type AvailabilityInput struct {
	ShopID    uint
	StaffID   uint
	ServiceID uint
	Date      string // YYYY-MM-DD
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
