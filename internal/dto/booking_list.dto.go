package dto

type BookingListDTO struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	DurationMin  int    `json:"duration_min"`
	Status       string `json:"status"`
	CustomerName string `json:"customer_name"`
	ServiceName  string `json:"service_name"`
	Notes        string `json:"notes"`
}
