package validation

import (
	"fmt"
	"math"

	"github.com/propoffice/Property-Office-Backend/internal/model"
)

// ShareTolerance is the accepted deviation of a property's ownership
// share sum from 100%.
const ShareTolerance = 0.01

// ValidateOwnerShares checks that an owner set is non-empty, references
// valid user IDs, has positive shares and sums to 100% within tolerance.
func ValidateOwnerShares(owners []model.OwnerShare) error {
	if len(owners) == 0 {
		return &Error{Fields: map[string]string{"owners": "at least one owner is required"}}
	}

	total := 0.0
	for _, o := range owners {
		if err := ValidateUUID(o.UserID); err != nil {
			return &Error{Fields: map[string]string{"owners": err.Error()}}
		}
		if o.SharePct <= 0 || o.SharePct > 100 {
			return &Error{Fields: map[string]string{
				"owners": fmt.Sprintf("share %.2f for user %s is outside (0, 100]", o.SharePct, o.UserID),
			}}
		}
		total += o.SharePct
	}

	if math.Abs(total-100) > ShareTolerance {
		return &Error{Fields: map[string]string{
			"owners": fmt.Sprintf("shares sum to %.2f, expected 100", total),
		}}
	}

	return nil
}
