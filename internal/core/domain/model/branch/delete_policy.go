package branch

import (
	"fmt"
	"strings"

	"forwarding/internal/pkg/errs"
)

// DeletePolicy decides whether a branch that is still referenced may be removed.
type DeletePolicy string

const (
	// RestrictDelete refuses deletion while live orders or bags reference the branch.
	RestrictDelete DeletePolicy = "restrict"
	// UnrestrictedDelete removes the branch without referential checks.
	UnrestrictedDelete DeletePolicy = "unrestricted"
)

func ParseDeletePolicy(s string) (DeletePolicy, error) {
	p := DeletePolicy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case RestrictDelete, UnrestrictedDelete:
		return p, nil
	case "":
		return RestrictDelete, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("branch delete policy", fmt.Errorf("%q is not supported", s))
	}
}

// References counts what still points at a branch.
type References struct {
	LiveOrders int64
	Bags       int64
}

func (r References) Any() bool {
	return r.LiveOrders > 0 || r.Bags > 0
}

// CheckDelete applies the policy to the current references.
func (p DeletePolicy) CheckDelete(b *Branch, refs References) error {
	if p == UnrestrictedDelete || !refs.Any() {
		return nil
	}
	return errs.NewConflictError("branch", b.ID(),
		fmt.Sprintf("referenced by %d live orders and %d bags", refs.LiveOrders, refs.Bags))
}
