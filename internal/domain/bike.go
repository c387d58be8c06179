package domain

import "time"

type BikeStatus string

const (
	BikeStatusInStock     BikeStatus = "in_stock"
	BikeStatusRented      BikeStatus = "rented"
	BikeStatusInRepair    BikeStatus = "in_repair"
	BikeStatusReserved    BikeStatus = "reserved"
	BikeStatusSold        BikeStatus = "sold"
	BikeStatusStolen      BikeStatus = "stolen"
	BikeStatusNotReturned BikeStatus = "not_returned"
)

func (s BikeStatus) Valid() bool {
	switch s {
	case BikeStatusInStock, BikeStatusRented, BikeStatusInRepair,
		BikeStatusReserved, BikeStatusSold, BikeStatusStolen, BikeStatusNotReturned:
		return true
	}
	return false
}

type Bike struct {
	ID           int32      `json:"id"`
	Brand        string     `json:"brand"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serial_number"`
	FrameSize    string     `json:"frame_size"`
	Color        string     `json:"color"`
	Year         int32      `json:"year"`
	PriceCents   int32      `json:"price_cents"`
	Status       BikeStatus `json:"status"`
	Notes        string     `json:"notes"`
	CreatedOn    time.Time  `json:"created_on"`
	UpdatedOn    time.Time  `json:"updated_on"`
}
