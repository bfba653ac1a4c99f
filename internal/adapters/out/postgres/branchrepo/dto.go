// Package branchrepo persists the branch directory.
package branchrepo

import (
	"forwarding/internal/adapters/out/postgres/orderrepo"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BranchDTO struct {
	ID      uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Title   string               `gorm:"type:varchar(120);not null"`
	Country string               `gorm:"type:varchar(2);not null;index"`
	Address orderrepo.AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
}

func (BranchDTO) TableName() string {
	return "branches"
}

func fromDomain(b *branch.Branch) BranchDTO {
	return BranchDTO{
		ID:      b.ID().Bytes(),
		Title:   b.Title(),
		Country: b.Country().String(),
		Address: orderrepo.AddressFromDomain(b.Address()),
	}
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	address, err := dto.Address.ToDomain()
	if err != nil {
		return nil, err
	}
	return branch.RestoreBranch(id, dto.Title, kernel.Country(dto.Country), address)
}
