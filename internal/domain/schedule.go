package domain

import "time"

// WeeklySchedule is a recurring (bike, weekday) template used to generate
// weekly maintenance events. DayOfWeek is ISO numbering: 1 = Monday through
// 7 = Sunday.
type WeeklySchedule struct {
	ID        int32     `json:"id"`
	BikeID    int32     `json:"bike_id"`
	DayOfWeek int32     `json:"day_of_week"`
	Active    bool      `json:"active"`
	CreatedOn time.Time `json:"created_on"`

	BikeBrand        string `json:"bike_brand,omitempty"`
	BikeModel        string `json:"bike_model,omitempty"`
	BikeSerialNumber string `json:"bike_serial_number,omitempty"`
}
