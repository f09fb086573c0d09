package service_test

import (
	"errors"
	"testing"

	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/testutil"
	"github.com/propoffice/Property-Office-Backend/internal/validation"
)

// TestPropertyService_CreateProperty tests property creation with owners.
//
// WHY: A property whose shares do not sum to 100% makes the per-owner
// finance figures unreconcilable, so the write path must validate the
// whole owner set before anything is stored.
func TestPropertyService_CreateProperty(t *testing.T) {
	t.Run("creates property with a valid owner set", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)

		manager := testutil.CreateUser(t, db, model.RoleManager)
		a := testutil.CreateUser(t, db, model.RoleOwner)
		b := testutil.CreateUser(t, db, model.RoleOwner)

		// Execute
		created, err := svc.CreateProperty(model.Property{
			Name:        "Riverside Flat",
			Address:     "12 River Road",
			AreaSqm:     80,
			RentRateUSD: 1200,
		}, []model.OwnerShare{
			{UserID: a.ID, SharePct: 40},
			{UserID: b.ID, SharePct: 60},
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateProperty() returned unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Error("Expected generated property ID")
		}

		list, err := svc.ListProperties(nil, nil, testutil.Caller(manager))
		if err != nil {
			t.Fatalf("ListProperties() returned unexpected error: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("Expected 1 property, got %d", len(list))
		}
		if len(list[0].Owners) != 2 {
			t.Errorf("Expected 2 owners, got %d", len(list[0].Owners))
		}
	})

	t.Run("accepts share sums within rounding tolerance", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)

		a := testutil.CreateUser(t, db, model.RoleOwner)
		b := testutil.CreateUser(t, db, model.RoleOwner)

		// 50 + 49.995 = 99.995, inside the 0.01 tolerance.
		_, err := svc.CreateProperty(model.Property{
			Name: "Split", Address: "x", AreaSqm: 1, RentRateUSD: 1,
		}, []model.OwnerShare{
			{UserID: a.ID, SharePct: 50},
			{UserID: b.ID, SharePct: 49.995},
		})
		if err != nil {
			t.Fatalf("Expected 99.995 to pass tolerance, got error: %v", err)
		}
	})

	t.Run("rejects invalid owner sets", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)

		a := testutil.CreateUser(t, db, model.RoleOwner)

		property := model.Property{Name: "X", Address: "x", AreaSqm: 1, RentRateUSD: 1}

		cases := []struct {
			name   string
			owners []model.OwnerShare
		}{
			{"empty owner set", nil},
			{"shares sum below tolerance", []model.OwnerShare{{UserID: a.ID, SharePct: 99}}},
			{"zero share", []model.OwnerShare{{UserID: a.ID, SharePct: 0}, {UserID: a.ID, SharePct: 100}}},
			{"malformed user ID", []model.OwnerShare{{UserID: "not-a-uuid", SharePct: 100}}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.CreateProperty(property, tc.owners)

				var validationErr *validation.Error
				if !errors.As(err, &validationErr) {
					t.Fatalf("Expected validation error, got %v", err)
				}
			})
		}

		// Well-formed but nonexistent users are rejected too.
		_, err := svc.CreateProperty(property, []model.OwnerShare{
			{UserID: testutil.MakeID(), SharePct: 100},
		})
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

// TestPropertyService_UpdateProperty tests the replace-all owner write.
//
// WHY: Ownership updates replace the whole set in one transaction. A
// partial replace would leave a property with shares summing to
// something other than 100%.
func TestPropertyService_UpdateProperty(t *testing.T) {
	t.Run("replaces the entire owner set", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)

		manager := testutil.CreateUser(t, db, model.RoleManager)
		a := testutil.CreateUser(t, db, model.RoleOwner)
		b := testutil.CreateUser(t, db, model.RoleOwner)
		property := testutil.NewProperty().WithOwner(a.ID, 100).Build(t, db)

		// Execute: hand the property over to b entirely.
		property.Name = "Renamed"
		err := svc.UpdateProperty(property, []model.OwnerShare{
			{UserID: b.ID, SharePct: 100},
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateProperty() returned unexpected error: %v", err)
		}

		list, err := svc.ListProperties(nil, nil, testutil.Caller(manager))
		if err != nil {
			t.Fatalf("ListProperties() returned unexpected error: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("Expected 1 property, got %d", len(list))
		}
		if list[0].Name != "Renamed" {
			t.Errorf("Expected renamed property, got %s", list[0].Name)
		}
		if len(list[0].Owners) != 1 || list[0].Owners[0].UserID != b.ID {
			t.Errorf("Expected sole owner %s, got %+v", b.ID, list[0].Owners)
		}
	})

	t.Run("nil owner set leaves ownership untouched", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)

		manager := testutil.CreateUser(t, db, model.RoleManager)
		a := testutil.CreateUser(t, db, model.RoleOwner)
		property := testutil.NewProperty().WithOwner(a.ID, 100).Build(t, db)

		// Execute
		property.RentRateUSD = 2500
		if err := svc.UpdateProperty(property, nil); err != nil {
			t.Fatalf("UpdateProperty() returned unexpected error: %v", err)
		}

		// Assert
		list, err := svc.ListProperties(nil, nil, testutil.Caller(manager))
		if err != nil {
			t.Fatalf("ListProperties() returned unexpected error: %v", err)
		}
		if list[0].RentRateUSD != 2500 {
			t.Errorf("Expected rent rate 2500, got %v", list[0].RentRateUSD)
		}
		if len(list[0].Owners) != 1 || list[0].Owners[0].UserID != a.ID {
			t.Errorf("Expected ownership preserved for %s, got %+v", a.ID, list[0].Owners)
		}
	})

	t.Run("unknown property yields not found", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)

		// Execute
		err := svc.UpdateProperty(model.Property{
			ID: testutil.MakeID(), Name: "Ghost", Address: "x", AreaSqm: 1, RentRateUSD: 1,
		}, nil)

		// Assert
		if !errors.Is(err, apperrors.ErrPropertyNotFound) {
			t.Errorf("Expected ErrPropertyNotFound, got %v", err)
		}
	})
}

// TestPropertyService_DeleteProperty tests deletion with dependents.
//
// WHY: Deleting a property must take its ownership and finance rows with
// it; orphaned rows would keep feeding the aggregates of a property that
// no longer exists.
func TestPropertyService_DeleteProperty(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPropertyService(t, db)

	owner := testutil.CreateUser(t, db, model.RoleOwner)
	property := testutil.NewProperty().WithOwner(owner.ID, 100).Build(t, db)
	testutil.AddIncome(t, db, property.ID, 2024, 1, 1000)

	// Execute
	if err := svc.DeleteProperty(property.ID); err != nil {
		t.Fatalf("DeleteProperty() returned unexpected error: %v", err)
	}

	// Assert: cascade removed the dependent rows.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM income WHERE property_id = ?", property.ID).Scan(&count); err != nil {
		t.Fatalf("Failed to count income rows: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected income rows cascaded away, got %d", count)
	}

	if err := svc.DeleteProperty(property.ID); !errors.Is(err, apperrors.ErrPropertyNotFound) {
		t.Errorf("Expected ErrPropertyNotFound on second delete, got %v", err)
	}
}

// TestPropertyService_GetPropertyStats tests the portfolio tiles.
//
// WHY: Owner-role callers see area and expected income scaled by their
// own share; the privileged view shows whole-property figures. Both views
// come from the same computation and must not leak into each other.
func TestPropertyService_GetPropertyStats(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPropertyService(t, db)

	manager := testutil.CreateUser(t, db, model.RoleManager)
	owner := testutil.CreateUser(t, db, model.RoleOwner)
	other := testutil.CreateUser(t, db, model.RoleOwner)

	testutil.NewProperty().
		WithArea(100).
		WithRentRate(2000).
		WithOwner(owner.ID, 50).
		WithOwner(other.ID, 50).
		Build(t, db)
	testutil.NewProperty().
		WithArea(60).
		WithRentRate(1000).
		WithOwner(other.ID, 100).
		Build(t, db)

	t.Run("privileged caller sees whole-property figures", func(t *testing.T) {
		stats, err := svc.GetPropertyStats(nil, nil, testutil.Caller(manager))
		if err != nil {
			t.Fatalf("GetPropertyStats() returned unexpected error: %v", err)
		}

		if stats.TotalProperties != 2 {
			t.Errorf("Expected 2 properties, got %d", stats.TotalProperties)
		}
		if stats.TotalArea != 160 {
			t.Errorf("Expected total area 160, got %v", stats.TotalArea)
		}
		if stats.ExpectedMonthlyIncome != 3000 {
			t.Errorf("Expected monthly income 3000, got %v", stats.ExpectedMonthlyIncome)
		}
		if stats.MultiOwnerProperties != 1 {
			t.Errorf("Expected 1 multi-owner property, got %d", stats.MultiOwnerProperties)
		}
		if stats.AverageRatePerSqm != 18.75 {
			t.Errorf("Expected average rate 18.75, got %v", stats.AverageRatePerSqm)
		}
	})

	t.Run("owner caller sees share-scaled figures", func(t *testing.T) {
		stats, err := svc.GetPropertyStats(nil, nil, testutil.Caller(owner))
		if err != nil {
			t.Fatalf("GetPropertyStats() returned unexpected error: %v", err)
		}

		if stats.TotalProperties != 1 {
			t.Errorf("Expected 1 visible property, got %d", stats.TotalProperties)
		}
		if stats.TotalArea != 50 {
			t.Errorf("Expected share-scaled area 50, got %v", stats.TotalArea)
		}
		if stats.ExpectedMonthlyIncome != 1000 {
			t.Errorf("Expected share-scaled income 1000, got %v", stats.ExpectedMonthlyIncome)
		}
	})
}
