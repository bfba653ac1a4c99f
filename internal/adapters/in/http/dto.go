package http

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/shelf"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/model/userblock"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request bodies.

type Address struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	Line       string `json:"line"`
	PostalCode string `json:"postal_code"`
	Recipient  string `json:"recipient"`
}

type Item struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weight_grams"`
	LengthCm    int    `json:"length_cm"`
	WidthCm     int    `json:"width_cm"`
	HeightCm    int    `json:"height_cm"`
}

type NewOrder struct {
	OwnerID             *openapi_types.UUID `json:"owner_id,omitempty"`
	Origin              Address             `json:"origin"`
	Destination         Address             `json:"destination"`
	DestinationBranchID openapi_types.UUID  `json:"destination_branch_id"`
	Fulfillment         string              `json:"fulfillment"`
	Items               []Item              `json:"items"`
}

type OrderPatch struct {
	Destination *Address `json:"destination,omitempty"`
	Fulfillment *string  `json:"fulfillment,omitempty"`
	Items       []Item   `json:"items,omitempty"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type CombineRequest struct {
	OrderIDs []openapi_types.UUID `json:"order_ids"`
}

type BranchInput struct {
	Title   string  `json:"title"`
	Country string  `json:"country"`
	Address Address `json:"address"`
}

type FlightInput struct {
	Number             string             `json:"number"`
	DepartureDate      openapi_types.Date `json:"departure_date"`
	OriginCountry      string             `json:"origin_country"`
	DestinationCountry string             `json:"destination_country"`
	BranchID           openapi_types.UUID `json:"branch_id"`
	AirWaybills        []string           `json:"air_waybills"`
}

type BagInput struct {
	Label          string             `json:"label"`
	BranchID       openapi_types.UUID `json:"branch_id"`
	MaxWeightGrams int                `json:"max_weight_grams"`
}

type BagOrderInput struct {
	OrderID openapi_types.UUID `json:"order_id"`
}

type BagFlightInput struct {
	FlightID openapi_types.UUID `json:"flight_id"`
}

type ShelfInput struct {
	OrderID   openapi_types.UUID `json:"order_id"`
	ShelfCode string             `json:"shelf_code"`
}

type BlockInput struct {
	UserID openapi_types.UUID `json:"user_id"`
	Reason string             `json:"reason"`
}

func (a Address) toDomain() (kernel.Address, error) {
	country, err := kernel.ParseCountry(a.Country)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(country, a.City, a.Line, a.PostalCode, a.Recipient)
}

func toItems(in []Item) ([]order.Item, error) {
	items := make([]order.Item, 0, len(in))
	var problems []error
	for _, it := range in {
		item, err := order.NewItem(it.Description, it.Quantity, it.WeightGrams, order.Dimensions{
			LengthCm: it.LengthCm,
			WidthCm:  it.WidthCm,
			HeightCm: it.HeightCm,
		})
		if err != nil {
			problems = append(problems, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return items, nil
}

func toUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toDay(d openapi_types.Date) kernel.Day {
	return kernel.NewDay(d.Year(), d.Month(), d.Day())
}

func toOptionalDay(d *openapi_types.Date) *kernel.Day {
	if d == nil {
		return nil
	}
	day := toDay(*d)
	return &day
}

func (f FlightInput) toSchedule() (flight.Schedule, error) {
	originCountry, err := kernel.ParseCountry(f.OriginCountry)
	if err != nil {
		return flight.Schedule{}, err
	}
	destinationCountry, err := kernel.ParseCountry(f.DestinationCountry)
	if err != nil {
		return flight.Schedule{}, err
	}
	branchID, err := toUUID(f.BranchID)
	if err != nil {
		return flight.Schedule{}, err
	}
	return flight.Schedule{
		Number:             f.Number,
		DepartureDate:      toDay(f.DepartureDate),
		OriginCountry:      originCountry,
		DestinationCountry: destinationCountry,
		BranchID:           branchID,
		AirWaybills:        f.AirWaybills,
	}, nil
}

// Response bodies.

type envelope struct {
	Data any `json:"data"`
}

type OrderResponse struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"owner_id"`
	Status              string    `json:"status"`
	Origin              Address   `json:"origin"`
	Destination         Address   `json:"destination"`
	DestinationBranchID string    `json:"destination_branch_id"`
	Fulfillment         string    `json:"fulfillment"`
	Items               []Item    `json:"items"`
	TotalWeightGrams    int       `json:"total_weight_grams"`
	CombinedShipmentID  *string   `json:"combined_shipment_id"`
	CreatedAt           time.Time `json:"created_at"`
	StatusChangedAt     time.Time `json:"status_changed_at"`
	Version             int64     `json:"version"`
}

type CombinedShipmentResponse struct {
	ID                  string          `json:"id"`
	CreatedBy           string          `json:"created_by"`
	CreatedAt           time.Time       `json:"created_at"`
	Status              string          `json:"status"`
	DestinationBranchID *string         `json:"destination_branch_id"`
	TotalWeightGrams    int             `json:"total_weight_grams"`
	Members             []OrderResponse `json:"members"`
}

type BranchResponse struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Country string  `json:"country"`
	Address Address `json:"address"`
}

type FlightResponse struct {
	ID                 string    `json:"id"`
	Number             string    `json:"number"`
	DepartureDate      string    `json:"departure_date"`
	OriginCountry      string    `json:"origin_country"`
	DestinationCountry string    `json:"destination_country"`
	BranchID           string    `json:"branch_id"`
	AirWaybills        []string  `json:"air_waybills"`
	CreatedAt          time.Time `json:"created_at"`
}

type BagResponse struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	BranchID       string    `json:"branch_id"`
	MaxWeightGrams int       `json:"max_weight_grams"`
	LoadGrams      int       `json:"load_grams"`
	FlightID       *string   `json:"flight_id"`
	OrderIDs       []string  `json:"order_ids"`
	CreatedAt      time.Time `json:"created_at"`
}

type ShelfPlacementResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	BranchID  string    `json:"branch_id"`
	ShelfCode string    `json:"shelf_code"`
	PlacedBy  string    `json:"placed_by"`
	PlacedAt  time.Time `json:"placed_at"`
}

type UserBlockResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BlockedBy string    `json:"blocked_by"`
	Reason    string    `json:"reason"`
	BlockedAt time.Time `json:"blocked_at"`
}

func addressFrom(a kernel.Address) Address {
	return Address{
		Country:    a.Country().String(),
		City:       a.City(),
		Line:       a.Line(),
		PostalCode: a.PostalCode(),
		Recipient:  a.Recipient(),
	}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func orderFrom(o *order.Order) OrderResponse {
	items := make([]Item, 0, len(o.Items()))
	for _, it := range o.Items() {
		d := it.Dimensions()
		items = append(items, Item{
			Description: it.Description(),
			Quantity:    it.Quantity(),
			WeightGrams: it.WeightGrams(),
			LengthCm:    d.LengthCm,
			WidthCm:     d.WidthCm,
			HeightCm:    d.HeightCm,
		})
	}
	return OrderResponse{
		ID:                  o.ID().String(),
		OwnerID:             o.OwnerID().String(),
		Status:              o.Status().String(),
		Origin:              addressFrom(o.Origin()),
		Destination:         addressFrom(o.Destination()),
		DestinationBranchID: o.DestinationBranchID().String(),
		Fulfillment:         o.Fulfillment().String(),
		Items:               items,
		TotalWeightGrams:    o.TotalWeightGrams(),
		CombinedShipmentID:  optionalID(o.CombinedShipmentID()),
		CreatedAt:           o.CreatedAt().UTC(),
		StatusChangedAt:     o.StatusChangedAt().UTC(),
		Version:             o.Version(),
	}
}

func ordersFrom(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderFrom(o))
	}
	return out
}

func shipmentFrom(v shipment.View) CombinedShipmentResponse {
	return CombinedShipmentResponse{
		ID:                  v.Shipment.ID().String(),
		CreatedBy:           v.Shipment.CreatedBy().String(),
		CreatedAt:           v.Shipment.CreatedAt().UTC(),
		Status:              v.Status.String(),
		DestinationBranchID: optionalID(v.DestinationBranchID()),
		TotalWeightGrams:    v.TotalWeightGrams(),
		Members:             ordersFrom(v.Members),
	}
}

func branchFrom(b *branch.Branch) BranchResponse {
	return BranchResponse{
		ID:      b.ID().String(),
		Title:   b.Title(),
		Country: b.Country().String(),
		Address: addressFrom(b.Address()),
	}
}

func flightFrom(f *flight.Flight) FlightResponse {
	return FlightResponse{
		ID:                 f.ID().String(),
		Number:             f.Number(),
		DepartureDate:      f.DepartureDate().String(),
		OriginCountry:      f.OriginCountry().String(),
		DestinationCountry: f.DestinationCountry().String(),
		BranchID:           f.BranchID().String(),
		AirWaybills:        f.AirWaybills(),
		CreatedAt:          f.CreatedAt().UTC(),
	}
}

func bagFrom(b *bag.Bag) BagResponse {
	ids := make([]string, 0, len(b.OrderIDs()))
	for _, id := range b.OrderIDs() {
		ids = append(ids, id.String())
	}
	return BagResponse{
		ID:             b.ID().String(),
		Label:          b.Label(),
		BranchID:       b.BranchID().String(),
		MaxWeightGrams: b.MaxWeightGrams(),
		LoadGrams:      b.LoadGrams(),
		FlightID:       optionalID(b.FlightID()),
		OrderIDs:       ids,
		CreatedAt:      b.CreatedAt().UTC(),
	}
}

func placementFrom(p *shelf.Placement) ShelfPlacementResponse {
	return ShelfPlacementResponse{
		ID:        p.ID().String(),
		OrderID:   p.OrderID().String(),
		BranchID:  p.BranchID().String(),
		ShelfCode: p.ShelfCode(),
		PlacedBy:  p.PlacedBy().String(),
		PlacedAt:  p.PlacedAt().UTC(),
	}
}

func blockFrom(b *userblock.Block) UserBlockResponse {
	return UserBlockResponse{
		ID:        b.ID().String(),
		UserID:    b.UserID().String(),
		BlockedBy: b.BlockedBy().String(),
		Reason:    b.Reason(),
		BlockedAt: b.BlockedAt().UTC(),
	}
}
