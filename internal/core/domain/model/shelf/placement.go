package shelf

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	ErrPlacementIsNotConstructed = errors.New("Placement must be created via NewPlacement constructor")

	shelfCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{0,15}$`)
)

// Placement records that a parcel awaiting pickup was put on a shelf.
// Placements are append-only history.
type Placement struct {
	id        kernel.UUID
	orderID   kernel.UUID
	branchID  kernel.UUID
	shelfCode string
	placedAt  time.Time
	placedBy  kernel.UUID

	isConstructed bool
}

func NewPlacement(id, orderID, branchID kernel.UUID, shelfCode string, placedBy kernel.UUID, placedAt time.Time) (*Placement, error) {
	p := &Placement{placedAt: placedAt.UTC(), isConstructed: true}

	code := strings.ToUpper(strings.TrimSpace(shelfCode))
	var codeErr error
	if !shelfCodePattern.MatchString(code) {
		codeErr = errs.NewValueIsInvalidErrorWithCause("shelf_code", fmt.Errorf("%q is not a shelf code", shelfCode))
	}

	if err := errors.Join(
		id.Validate(),
		required("order_id", orderID),
		required("branch_id", branchID),
		required("placed_by", placedBy),
		codeErr,
	); err != nil {
		return nil, err
	}

	p.id, p.orderID, p.branchID, p.placedBy, p.shelfCode = id, orderID, branchID, placedBy, code
	return p, nil
}

func (p *Placement) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPlacementIsNotConstructed
	}
	return nil
}

func (p *Placement) ID() kernel.UUID       { return p.id }
func (p *Placement) OrderID() kernel.UUID  { return p.orderID }
func (p *Placement) BranchID() kernel.UUID { return p.branchID }
func (p *Placement) ShelfCode() string     { return p.shelfCode }
func (p *Placement) PlacedAt() time.Time   { return p.placedAt }
func (p *Placement) PlacedBy() kernel.UUID { return p.placedBy }

func required(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
