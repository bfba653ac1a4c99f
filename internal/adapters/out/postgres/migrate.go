package postgres

import (
	"forwarding/internal/adapters/out/postgres/bagrepo"
	"forwarding/internal/adapters/out/postgres/branchrepo"
	"forwarding/internal/adapters/out/postgres/flightrepo"
	"forwarding/internal/adapters/out/postgres/orderrepo"
	"forwarding/internal/adapters/out/postgres/shelfrepo"
	"forwarding/internal/adapters/out/postgres/shipmentrepo"
	"forwarding/internal/adapters/out/postgres/userblockrepo"

	"gorm.io/gorm"
)

// Models lists every persisted table in creation order.
func Models() []any {
	return []any{
		&branchrepo.BranchDTO{},
		&orderrepo.OrderDTO{},
		&shipmentrepo.ShipmentDTO{},
		&flightrepo.FlightDTO{},
		&bagrepo.BagDTO{},
		&bagrepo.BagContentDTO{},
		&shelfrepo.PlacementDTO{},
		&userblockrepo.BlockDTO{},
	}
}

// Tables lists the table names behind Models, for truncation in tests.
func Tables() []string {
	return []string{
		"branches", "orders", "combined_shipments", "flights",
		"bags", "bag_orders", "shelf_placements", "user_blocks",
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
