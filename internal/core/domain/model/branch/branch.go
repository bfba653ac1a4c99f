package branch

import (
	"errors"
	"fmt"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

const maxTitleLength = 120

var ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

// Branch is a physical location where parcels are received, bagged or
// handed over.
type Branch struct {
	id      kernel.UUID
	title   string
	country kernel.Country
	address kernel.Address

	isConstructed bool
}

// NewBranch creates a branch. The address must lie in the branch country.
func NewBranch(id kernel.UUID, title string, country kernel.Country, address kernel.Address) (*Branch, error) {
	b := &Branch{isConstructed: true}

	if err := errors.Join(b.setID(id), b.setTitle(title), b.setLocation(country, address)); err != nil {
		return nil, err
	}
	return b, nil
}

func RestoreBranch(id kernel.UUID, title string, country kernel.Country, address kernel.Address) (*Branch, error) {
	return NewBranch(id, title, country, address)
}

func (b *Branch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBranchIsNotConstructed
	}
	return nil
}

func (b *Branch) IsEqual(other *Branch) bool {
	return other != nil && b.id.IsEqual(other.id)
}

func (b *Branch) ID() kernel.UUID         { return b.id }
func (b *Branch) Title() string           { return b.title }
func (b *Branch) Country() kernel.Country { return b.country }
func (b *Branch) Address() kernel.Address { return b.address }

// Edit replaces the branch attributes atomically: on error nothing changes.
func (b *Branch) Edit(title string, country kernel.Country, address kernel.Address) error {
	edited := *b
	if err := errors.Join(edited.setTitle(title), edited.setLocation(country, address)); err != nil {
		return err
	}
	*b = edited
	return nil
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if len(title) > maxTitleLength {
		return errs.NewValueIsOutOfRangeError("title length", len(title), 1, maxTitleLength)
	}
	b.title = title
	return nil
}

func (b *Branch) setLocation(country kernel.Country, address kernel.Address) error {
	if err := errors.Join(country.Validate(), address.Validate()); err != nil {
		return err
	}
	if address.Country() != country {
		return errs.NewValueIsInvalidErrorWithCause(
			"address",
			fmt.Errorf("address country %s differs from branch country %s", address.Country(), country),
		)
	}
	b.country = country
	b.address = address
	return nil
}
