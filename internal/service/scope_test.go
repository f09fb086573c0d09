package service_test

import (
	"testing"

	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/testutil"
)

// TestScopeResolver_Resolve tests visibility resolution per role.
//
// WHY: Every read path starts from the resolved scope. A scope that leaks
// a property to the wrong owner leaks another owner's finances; a scope
// that drops a property silently understates the portfolio.
func TestScopeResolver_Resolve(t *testing.T) {
	t.Run("privileged roles see all properties", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		resolver := testutil.NewTestScopeResolver(t, db)

		admin := testutil.CreateUser(t, db, model.RoleAdmin)
		owner := testutil.CreateUser(t, db, model.RoleOwner)
		testutil.NewProperty().WithOwner(owner.ID, 100).Build(t, db)
		testutil.NewProperty().Build(t, db) // no owners at all

		// Execute
		scope, err := resolver.Resolve(testutil.Caller(admin), nil, nil)

		// Assert
		if err != nil {
			t.Fatalf("Resolve() returned unexpected error: %v", err)
		}
		if len(scope.Properties) != 2 {
			t.Errorf("Expected 2 visible properties, got %d", len(scope.Properties))
		}
	})

	t.Run("owner role sees only owned properties", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		resolver := testutil.NewTestScopeResolver(t, db)

		owner := testutil.CreateUser(t, db, model.RoleOwner)
		other := testutil.CreateUser(t, db, model.RoleOwner)
		mine := testutil.NewProperty().WithOwner(owner.ID, 100).Build(t, db)
		testutil.NewProperty().WithOwner(other.ID, 100).Build(t, db)

		// Execute
		scope, err := resolver.Resolve(testutil.Caller(owner), nil, nil)

		// Assert
		if err != nil {
			t.Fatalf("Resolve() returned unexpected error: %v", err)
		}
		if len(scope.Properties) != 1 {
			t.Fatalf("Expected 1 visible property, got %d", len(scope.Properties))
		}
		if scope.Properties[0].ID != mine.ID {
			t.Errorf("Expected property %s, got %s", mine.ID, scope.Properties[0].ID)
		}
	})

	t.Run("filters intersect with the role base set", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		resolver := testutil.NewTestScopeResolver(t, db)

		manager := testutil.CreateUser(t, db, model.RoleManager)
		owner := testutil.CreateUser(t, db, model.RoleOwner)
		owned := testutil.NewProperty().WithOwner(owner.ID, 100).Build(t, db)
		unowned := testutil.NewProperty().Build(t, db)

		// Owners filter keeps only properties that user owns.
		scope, err := resolver.Resolve(testutil.Caller(manager), []string{owner.ID}, nil)
		if err != nil {
			t.Fatalf("Resolve() returned unexpected error: %v", err)
		}
		if len(scope.Properties) != 1 || scope.Properties[0].ID != owned.ID {
			t.Errorf("Expected only property %s for owners filter, got %v", owned.ID, scope.PropertyIDs())
		}

		// Property filter keeps only the named properties.
		scope, err = resolver.Resolve(testutil.Caller(manager), nil, []string{unowned.ID})
		if err != nil {
			t.Fatalf("Resolve() returned unexpected error: %v", err)
		}
		if len(scope.Properties) != 1 || scope.Properties[0].ID != unowned.ID {
			t.Errorf("Expected only property %s for property filter, got %v", unowned.ID, scope.PropertyIDs())
		}

		// Both filters together intersect down to nothing here.
		scope, err = resolver.Resolve(testutil.Caller(manager), []string{owner.ID}, []string{unowned.ID})
		if err != nil {
			t.Fatalf("Resolve() returned unexpected error: %v", err)
		}
		if len(scope.Properties) != 0 {
			t.Errorf("Expected empty intersection, got %v", scope.PropertyIDs())
		}
	})

	t.Run("unknown filter IDs match nothing without error", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		resolver := testutil.NewTestScopeResolver(t, db)

		manager := testutil.CreateUser(t, db, model.RoleManager)
		testutil.NewProperty().Build(t, db)

		// Execute
		scope, err := resolver.Resolve(testutil.Caller(manager), nil, []string{testutil.MakeID()})

		// Assert
		if err != nil {
			t.Fatalf("Resolve() returned unexpected error: %v", err)
		}
		if len(scope.Properties) != 0 {
			t.Errorf("Expected empty scope for unknown ID, got %d properties", len(scope.Properties))
		}
	})
}

// TestScope_ShareOf tests ownership share lookup.
//
// WHY: ShareOf returning 0 for an absent row (instead of an error) is what
// lets the aggregator zero out figures for properties a caller can see but
// holds no stake in.
func TestScope_ShareOf(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	resolver := testutil.NewTestScopeResolver(t, db)

	admin := testutil.CreateUser(t, db, model.RoleAdmin)
	owner := testutil.CreateUser(t, db, model.RoleOwner)
	property := testutil.NewProperty().WithOwner(owner.ID, 62.5).Build(t, db)

	scope, err := resolver.Resolve(testutil.Caller(admin), nil, nil)
	if err != nil {
		t.Fatalf("Resolve() returned unexpected error: %v", err)
	}

	// Assert
	if got := scope.ShareOf(property.ID, owner.ID); got != 62.5 {
		t.Errorf("Expected share 62.5, got %v", got)
	}
	if got := scope.ShareOf(property.ID, admin.ID); got != 0 {
		t.Errorf("Expected share 0 for non-owner, got %v", got)
	}
	if got := scope.ShareOf(testutil.MakeID(), owner.ID); got != 0 {
		t.Errorf("Expected share 0 for unknown property, got %v", got)
	}
}
