package service

import (
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/repository"
)

// ScopeResolver determines which properties a caller may see.
//
// Privileged roles start from the full property set; the owner role
// starts from the properties in which the caller holds an ownership row.
// Optional owner and property filters intersect with that base set. An
// empty result is a valid outcome and never an error: downstream
// aggregation returns zeroed output for it.
type ScopeResolver struct {
	propertyRepo *repository.PropertyRepository
}

// NewScopeResolver creates a new ScopeResolver with the provided repository.
func NewScopeResolver(propertyRepo *repository.PropertyRepository) *ScopeResolver {
	return &ScopeResolver{propertyRepo: propertyRepo}
}

// Scope is the resolved visible property set for one request, with the
// full ownership rows of every visible property.
type Scope struct {
	Properties []model.Property
	Ownerships map[string][]model.Ownership
}

// PropertyIDs returns the visible property identifiers in listing order.
func (s Scope) PropertyIDs() []string {
	ids := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		ids[i] = p.ID
	}
	return ids
}

// ShareOf returns the percentage of a property attributable to a user,
// or 0 when the user holds no ownership row for it (not an error).
func (s Scope) ShareOf(propertyID, userID string) float64 {
	for _, o := range s.Ownerships[propertyID] {
		if o.UserID == userID {
			return o.SharePct
		}
	}
	return 0
}

// Resolve computes the visible property set for a caller.
//
// The owner and property filters narrow which properties are visible;
// they never change whose ownership share downstream computations apply.
// A nonexistent ID in either filter simply matches nothing.
func (r *ScopeResolver) Resolve(caller model.Caller, owners, properties []string) (Scope, error) {
	filter := model.ScopeFilter{
		Owners:     owners,
		Properties: properties,
	}

	if !caller.Role.Privileged() {
		filter.CallerID = caller.ID
	}

	visible, ownerships, err := r.propertyRepo.GetVisibleProperties(filter)
	if err != nil {
		return Scope{}, err
	}

	return Scope{Properties: visible, Ownerships: ownerships}, nil
}
