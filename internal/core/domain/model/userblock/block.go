package userblock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

const maxReasonLength = 500

var ErrBlockIsNotConstructed = errors.New("Block must be created via NewBlock constructor")

// Block is the event of a super user blocking a customer account.
type Block struct {
	id        kernel.UUID
	userID    kernel.UUID
	blockedBy kernel.UUID
	reason    string
	blockedAt time.Time

	isConstructed bool
}

func NewBlock(id, userID, blockedBy kernel.UUID, reason string, blockedAt time.Time) (*Block, error) {
	reason = strings.TrimSpace(reason)

	var problems []error
	problems = append(problems, id.Validate())
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user_id", err))
	}
	if err := blockedBy.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("blocked_by", err))
	}
	if userID.Validate() == nil && userID.IsEqual(blockedBy) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("user_id", fmt.Errorf("cannot block yourself")))
	}
	if reason == "" {
		problems = append(problems, errs.NewValueIsRequiredError("reason"))
	} else if len(reason) > maxReasonLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("reason length", len(reason), 1, maxReasonLength))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Block{
		id:            id,
		userID:        userID,
		blockedBy:     blockedBy,
		reason:        reason,
		blockedAt:     blockedAt.UTC(),
		isConstructed: true,
	}, nil
}

func (b *Block) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBlockIsNotConstructed
	}
	return nil
}

func (b *Block) ID() kernel.UUID        { return b.id }
func (b *Block) UserID() kernel.UUID    { return b.userID }
func (b *Block) BlockedBy() kernel.UUID { return b.blockedBy }
func (b *Block) Reason() string         { return b.reason }
func (b *Block) BlockedAt() time.Time   { return b.blockedAt }
