package domain

import "time"

type Part struct {
	ID               int32     `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Manufacturer     string    `json:"manufacturer"`
	UnitPriceCents   int32     `json:"unit_price_cents"`
	StockQuantity    int32     `json:"stock_quantity"`
	MinStockQuantity int32     `json:"min_stock_quantity"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
}

// PartUsage records a quantity of one part consumed or needed by one
// maintenance event. UnitPriceCents is a snapshot captured from the catalog
// when the usage is recorded, so historical repair cost survives later price
// changes.
type PartUsage struct {
	ID             int32     `json:"id"`
	EventID        int32     `json:"event_id"`
	PartID         int32     `json:"part_id"`
	UsedQuantity   int32     `json:"used_quantity"`
	NeededQuantity int32     `json:"needed_quantity"`
	UnitPriceCents int32     `json:"unit_price_cents"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`

	PartName string `json:"part_name,omitempty"`
}
