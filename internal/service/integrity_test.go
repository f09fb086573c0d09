package service_test

import (
	"testing"

	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/testutil"
)

// TestIntegrityService_AuditOwnershipShares tests the scheduled share audit.
//
// WHY: Share sums are validated only when the owner set is written. The
// audit is the safety net against drift introduced outside that path, so
// it must flag exactly the properties outside tolerance.
func TestIntegrityService_AuditOwnershipShares(t *testing.T) {
	t.Run("flags properties whose shares drift from 100", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestIntegrityService(t, db)

		a := testutil.CreateUser(t, db, model.RoleOwner)
		b := testutil.CreateUser(t, db, model.RoleOwner)

		testutil.NewProperty().WithOwner(a.ID, 50).WithOwner(b.ID, 50).Build(t, db)
		drifted := testutil.NewProperty().WithOwner(a.ID, 50).WithOwner(b.ID, 40).Build(t, db)

		// Execute
		violations, err := svc.AuditOwnershipShares()

		// Assert
		if err != nil {
			t.Fatalf("AuditOwnershipShares() returned unexpected error: %v", err)
		}
		if len(violations) != 1 {
			t.Fatalf("Expected 1 violation, got %d", len(violations))
		}
		if violations[0].PropertyID != drifted.ID {
			t.Errorf("Expected violation on %s, got %s", drifted.ID, violations[0].PropertyID)
		}
		if violations[0].ShareSum != 90 {
			t.Errorf("Expected share sum 90, got %v", violations[0].ShareSum)
		}
	})

	t.Run("tolerates rounding-level deviation", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestIntegrityService(t, db)

		a := testutil.CreateUser(t, db, model.RoleOwner)
		b := testutil.CreateUser(t, db, model.RoleOwner)

		// 99.995 deviates by half the tolerance.
		testutil.NewProperty().
			WithOwner(a.ID, 50).
			WithOwner(b.ID, 49.995).
			Build(t, db)

		// Execute
		violations, err := svc.AuditOwnershipShares()

		// Assert
		if err != nil {
			t.Fatalf("AuditOwnershipShares() returned unexpected error: %v", err)
		}
		if len(violations) != 0 {
			t.Errorf("Expected no violations, got %+v", violations)
		}
	})
}
