package report

import (
	"fmt"
	"strings"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/pkg/errs"
)

// Kind is one of the closed set of report views.
type Kind string

const (
	Flights      Kind = "flights"
	Bags         Kind = "bags"
	SelfService  Kind = "self_service"
	Delivery     Kind = "delivery"
	WalkInPickup Kind = "walk_in_pickup"
	ShelfHistory Kind = "shelf_history"
	Summary      Kind = "summary"
	BlockedUsers Kind = "blocked_users"
)

func Kinds() []Kind {
	return []Kind{Flights, Bags, SelfService, Delivery, WalkInPickup, ShelfHistory, Summary, BlockedUsers}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) Validate() error {
	for _, known := range Kinds() {
		if k == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("report kind", fmt.Errorf("%q is not a report kind", string(k)))
}

func (k Kind) String() string {
	return string(k)
}

// RequiredAction is the capability needed to run the report.
func (k Kind) RequiredAction() access.Action {
	if k == BlockedUsers {
		return access.RunBlockedUsersReport
	}
	return access.RunReport
}
