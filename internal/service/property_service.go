package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/repository"
	"github.com/propoffice/Property-Office-Backend/internal/validation"
)

// PropertyService handles property CRUD, the owner-set replace write and
// portfolio statistics.
type PropertyService struct {
	scopeResolver *ScopeResolver
	propertyRepo  *repository.PropertyRepository
	userRepo      *repository.UserRepository
}

// NewPropertyService creates a new PropertyService with the provided dependencies.
func NewPropertyService(
	scopeResolver *ScopeResolver,
	propertyRepo *repository.PropertyRepository,
	userRepo *repository.UserRepository,
) *PropertyService {
	return &PropertyService{
		scopeResolver: scopeResolver,
		propertyRepo:  propertyRepo,
		userRepo:      userRepo,
	}
}

// ListProperties retrieves the caller's visible properties with their
// owner sets (names included).
func (s *PropertyService) ListProperties(owners, properties []string, caller model.Caller) ([]model.PropertyWithOwners, error) {
	scope, err := s.scopeResolver.Resolve(caller, owners, properties)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible properties: %w", err)
	}

	result := make([]model.PropertyWithOwners, 0, len(scope.Properties))
	for _, p := range scope.Properties {
		propertyOwners, err := s.propertyRepo.GetPropertyOwners(p.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, model.PropertyWithOwners{
			Property: p,
			Owners:   propertyOwners,
		})
	}

	return result, nil
}

// CreateProperty validates the owner set (shares must sum to 100±0.01 and
// reference existing users) and creates the property with its ownerships
// in one transaction.
func (s *PropertyService) CreateProperty(p model.Property, owners []model.OwnerShare) (model.Property, error) {
	if err := validation.ValidateOwnerShares(owners); err != nil {
		return model.Property{}, err
	}

	if err := s.checkOwnersExist(owners); err != nil {
		return model.Property{}, err
	}

	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.propertyRepo.CreateProperty(p, owners); err != nil {
		return model.Property{}, err
	}

	return p, nil
}

// UpdateProperty updates a property's fields and, when owners is non-nil,
// replaces the whole owner set after validating it. The replace runs
// delete-then-insert inside one transaction, so concurrent readers see
// either the old or the new set.
func (s *PropertyService) UpdateProperty(p model.Property, owners []model.OwnerShare) error {
	if owners != nil {
		if err := validation.ValidateOwnerShares(owners); err != nil {
			return err
		}
		if err := s.checkOwnersExist(owners); err != nil {
			return err
		}
	}

	return s.propertyRepo.UpdateProperty(p, owners)
}

// DeleteProperty removes a property and its dependent rows.
func (s *PropertyService) DeleteProperty(propertyID string) error {
	return s.propertyRepo.DeleteProperty(propertyID)
}

// GetPropertyStats summarizes the caller's visible portfolio. Privileged
// callers see whole-property figures; owner-role callers see area and
// expected income scaled by their own share per property.
func (s *PropertyService) GetPropertyStats(owners, properties []string, caller model.Caller) (model.PropertyStats, error) {
	scope, err := s.scopeResolver.Resolve(caller, owners, properties)
	if err != nil {
		return model.PropertyStats{}, fmt.Errorf("failed to resolve visible properties: %w", err)
	}

	var stats model.PropertyStats
	stats.TotalProperties = len(scope.Properties)

	for _, p := range scope.Properties {
		factor := 1.0
		if !caller.Role.Privileged() {
			factor = scope.ShareOf(p.ID, caller.ID) / 100
		}

		stats.TotalArea += p.AreaSqm * factor
		stats.ExpectedMonthlyIncome += p.RentRateUSD * factor

		if len(scope.Ownerships[p.ID]) > 1 {
			stats.MultiOwnerProperties++
		}
	}

	stats.TotalArea = round(stats.TotalArea)
	stats.ExpectedMonthlyIncome = round(stats.ExpectedMonthlyIncome)
	if stats.TotalArea > 0 {
		stats.AverageRatePerSqm = round(stats.ExpectedMonthlyIncome / stats.TotalArea)
	}

	return stats, nil
}

func (s *PropertyService) checkOwnersExist(owners []model.OwnerShare) error {
	for _, o := range owners {
		if _, err := s.userRepo.GetUserOnID(o.UserID); err != nil {
			return err
		}
	}
	return nil
}
