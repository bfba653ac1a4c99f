package report

import (
	"sort"
	"time"

	"forwarding/internal/core/domain/model/kernel"
)

// Result is the outcome of running one report kind.
type Result struct {
	Kind        Kind      `json:"kind"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	GeneratedAt time.Time `json:"generated_at"`
	Data        any       `json:"data"`
}

func NewResult(kind Kind, w Window, generatedAt time.Time, data any) Result {
	return Result{
		Kind:        kind,
		From:        w.Days.From().String(),
		To:          w.Days.To().String(),
		GeneratedAt: generatedAt.UTC(),
		Data:        data,
	}
}

type SummaryReport struct {
	OrdersCreated            int64            `json:"orders_created"`
	CombinedShipmentsCreated int64            `json:"combined_shipments_created"`
	OrdersByStatus           map[string]int64 `json:"orders_by_status"`
}

type FlightManifest struct {
	FlightID           kernel.UUID `json:"flight_id"`
	Number             string      `json:"number"`
	DepartureDate      string      `json:"departure_date"`
	OriginCountry      string      `json:"origin_country"`
	DestinationCountry string      `json:"destination_country"`
	AirWaybills        []string    `json:"air_waybills"`
	BagCount           int         `json:"bag_count"`
	OrderCount         int         `json:"order_count"`
	TotalWeightGrams   int         `json:"total_weight_grams"`
}

type FlightsReport struct {
	Count   int              `json:"count"`
	Flights []FlightManifest `json:"flights"`
}

type BranchCount struct {
	BranchID    kernel.UUID `json:"branch_id"`
	BranchTitle string      `json:"branch_title"`
	Count       int         `json:"count"`
}

type BagsReport struct {
	Count            int           `json:"count"`
	TotalWeightGrams int           `json:"total_weight_grams"`
	LoadedOnFlights  int           `json:"loaded_on_flights"`
	ByBranch         []BranchCount `json:"by_branch"`
}

type FulfillmentReport struct {
	Fulfillment string            `json:"fulfillment"`
	Count       int               `json:"count"`
	ByBranch    []BranchCount     `json:"by_branch"`
	Orders      []HandedOverOrder `json:"orders"`
}

type ShelfHistoryReport struct {
	Count      int           `json:"count"`
	ByBranch   []BranchCount `json:"by_branch"`
	Placements []ShelfRow    `json:"placements"`
}

type BlockedUsersReport struct {
	Count  int        `json:"count"`
	Blocks []BlockRow `json:"blocks"`
}

// BuildFlights turns flight legs into per-flight manifests, earliest first.
func BuildFlights(legs []FlightLeg) FlightsReport {
	out := FlightsReport{Flights: make([]FlightManifest, 0, len(legs))}
	for _, leg := range legs {
		m := FlightManifest{
			FlightID:           leg.FlightID,
			Number:             leg.Number,
			DepartureDate:      leg.DepartureDate.String(),
			OriginCountry:      leg.OriginCountry.String(),
			DestinationCountry: leg.DestinationCountry.String(),
			AirWaybills:        leg.AirWaybills,
			BagCount:           len(leg.Bags),
		}
		for _, b := range leg.Bags {
			m.OrderCount += b.OrderCount
			m.TotalWeightGrams += b.WeightGrams
		}
		out.Flights = append(out.Flights, m)
	}
	sort.SliceStable(out.Flights, func(i, j int) bool {
		if out.Flights[i].DepartureDate != out.Flights[j].DepartureDate {
			return out.Flights[i].DepartureDate < out.Flights[j].DepartureDate
		}
		return out.Flights[i].Number < out.Flights[j].Number
	})
	out.Count = len(out.Flights)
	return out
}

func BuildBags(rows []BagRow) BagsReport {
	out := BagsReport{Count: len(rows)}
	counter := newBranchCounter()
	for _, r := range rows {
		out.TotalWeightGrams += r.WeightGrams
		if r.FlightID != nil {
			out.LoadedOnFlights++
		}
		counter.add(r.BranchID, r.BranchTitle)
	}
	out.ByBranch = counter.result()
	return out
}

func BuildFulfillment(kind Kind, rows []HandedOverOrder) FulfillmentReport {
	out := FulfillmentReport{Fulfillment: string(kind), Count: len(rows), Orders: rows}
	if out.Orders == nil {
		out.Orders = []HandedOverOrder{}
	}
	counter := newBranchCounter()
	for _, r := range rows {
		counter.add(r.BranchID, r.BranchTitle)
	}
	out.ByBranch = counter.result()
	return out
}

func BuildShelfHistory(rows []ShelfRow) ShelfHistoryReport {
	out := ShelfHistoryReport{Count: len(rows), Placements: rows}
	if out.Placements == nil {
		out.Placements = []ShelfRow{}
	}
	counter := newBranchCounter()
	for _, r := range rows {
		counter.add(r.BranchID, r.BranchTitle)
	}
	out.ByBranch = counter.result()
	return out
}

func BuildBlockedUsers(rows []BlockRow) BlockedUsersReport {
	if rows == nil {
		rows = []BlockRow{}
	}
	return BlockedUsersReport{Count: len(rows), Blocks: rows}
}

type branchCounter struct {
	order  []kernel.UUID
	counts map[kernel.UUID]*BranchCount
}

func newBranchCounter() *branchCounter {
	return &branchCounter{counts: make(map[kernel.UUID]*BranchCount)}
}

func (c *branchCounter) add(id kernel.UUID, title string) {
	bc, ok := c.counts[id]
	if !ok {
		bc = &BranchCount{BranchID: id, BranchTitle: title}
		c.counts[id] = bc
		c.order = append(c.order, id)
	}
	bc.Count++
}

// result lists branches by descending count, then title.
func (c *branchCounter) result() []BranchCount {
	out := make([]BranchCount, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.counts[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].BranchTitle < out[j].BranchTitle
	})
	return out
}
