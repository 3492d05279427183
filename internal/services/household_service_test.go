package services

import (
	"testing"

	"gorm.io/gorm"

	"hearth/internal/hlock"
	"hearth/internal/models"
	"hearth/internal/testutil"
)

// testEnv bundles the shared plumbing every service test needs.
type testEnv struct {
	db    *gorm.DB
	locks *hlock.Registry
	ticks TickSource
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return &testEnv{
		db:    db,
		locks: hlock.NewRegistry(),
		ticks: testutil.FixedTick(1000),
	}
}

func newHouseholdService(t *testing.T) (HouseholdServicer, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewHouseholdService(env.db, env.locks, env.ticks), env
}

func TestCreateHousehold(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)

	household, err := svc.CreateHousehold(creator.ID, "Maple Street")
	testutil.AssertNoError(t, err)

	if household.ID == 0 {
		t.Fatal("expected a nonzero household ID")
	}
	if !household.Active {
		t.Error("expected new household to be active")
	}
	if household.CreatorID != creator.ID {
		t.Errorf("expected creator %s, got %s", creator.ID, household.CreatorID)
	}

	members, err := svc.GetMembers(household.ID)
	testutil.AssertNoError(t, err)
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].UserID != creator.ID || members[0].AllocationBPS != 10000 {
		t.Errorf("expected creator with 10000 bps, got %s with %d", members[0].UserID, members[0].AllocationBPS)
	}

	var counter models.HouseholdCounter
	if err := env.db.First(&counter, "household_id = ?", household.ID).Error; err != nil {
		t.Fatalf("expected counter row: %v", err)
	}
	if counter.NextExpenseID != 1 || counter.NextSettlementID != 1 {
		t.Errorf("expected counters at 1, got %d/%d", counter.NextExpenseID, counter.NextSettlementID)
	}
}

func TestCreateHouseholdIDsIncrease(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)

	first, err := svc.CreateHousehold(creator.ID, "First")
	testutil.AssertNoError(t, err)
	second, err := svc.CreateHousehold(creator.ID, "Second")
	testutil.AssertNoError(t, err)

	if second.ID <= first.ID {
		t.Errorf("expected increasing IDs, got %d then %d", first.ID, second.ID)
	}
}

func TestAddMember(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)
	other := testutil.CreateTestUser(t, env.db)

	household, err := svc.CreateHousehold(creator.ID, "Flat 4b")
	testutil.AssertNoError(t, err)

	member, err := svc.AddMember(creator.ID, household.ID, other.ID)
	testutil.AssertNoError(t, err)
	if member.AllocationBPS != 5000 {
		t.Errorf("expected new member weight 5000, got %d", member.AllocationBPS)
	}

	// Existing members keep the weights they had when they joined.
	members, err := svc.GetMembers(household.ID)
	testutil.AssertNoError(t, err)
	byUser := map[string]models.HouseholdMember{}
	for _, m := range members {
		byUser[m.UserID] = m
	}
	if byUser[creator.ID].AllocationBPS != 10000 {
		t.Errorf("expected creator weight unchanged at 10000, got %d", byUser[creator.ID].AllocationBPS)
	}
}

func TestAddMemberThirdGetsFloorWeight(t *testing.T) {
	svc, env := newHouseholdService(t)
	users := testutil.CreateTestUsers(t, env.db, 3)

	household, err := svc.CreateHousehold(users[0].ID, "Trio")
	testutil.AssertNoError(t, err)
	_, err = svc.AddMember(users[0].ID, household.ID, users[1].ID)
	testutil.AssertNoError(t, err)

	third, err := svc.AddMember(users[0].ID, household.ID, users[2].ID)
	testutil.AssertNoError(t, err)
	if third.AllocationBPS != 3333 {
		t.Errorf("expected 3333 bps for third member, got %d", third.AllocationBPS)
	}
}

func TestAddMemberOnlyCreator(t *testing.T) {
	svc, env := newHouseholdService(t)
	users := testutil.CreateTestUsers(t, env.db, 3)

	household, err := svc.CreateHousehold(users[0].ID, "Strict")
	testutil.AssertNoError(t, err)
	_, err = svc.AddMember(users[0].ID, household.ID, users[1].ID)
	testutil.AssertNoError(t, err)

	_, err = svc.AddMember(users[1].ID, household.ID, users[2].ID)
	testutil.AssertAppError(t, err, "NOT_AUTHORIZED")
}

func TestAddMemberAlreadyMember(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)
	other := testutil.CreateTestUser(t, env.db)

	household, err := svc.CreateHousehold(creator.ID, "Dupes")
	testutil.AssertNoError(t, err)
	_, err = svc.AddMember(creator.ID, household.ID, other.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.AddMember(creator.ID, household.ID, other.ID)
	testutil.AssertAppError(t, err, "ALREADY_MEMBER")

	_, err = svc.AddMember(creator.ID, household.ID, creator.ID)
	testutil.AssertAppError(t, err, "ALREADY_MEMBER")
}

func TestAddMemberCapacity(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)

	household, err := svc.CreateHousehold(creator.ID, "Full House")
	testutil.AssertNoError(t, err)

	for i := 0; i < models.MaxHouseholdMembers-1; i++ {
		u := testutil.CreateTestUser(t, env.db)
		_, err := svc.AddMember(creator.ID, household.ID, u.ID)
		testutil.AssertNoError(t, err)
	}

	extra := testutil.CreateTestUser(t, env.db)
	_, err = svc.AddMember(creator.ID, household.ID, extra.ID)
	testutil.AssertAppError(t, err, "CAPACITY_EXCEEDED")
}

func TestAddMemberUnknownHousehold(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)

	_, err := svc.AddMember(creator.ID, 9999, creator.ID)
	testutil.AssertAppError(t, err, "HOUSEHOLD_NOT_FOUND")
}

func TestRemoveAndReactivateMember(t *testing.T) {
	svc, env := newHouseholdService(t)
	users := testutil.CreateTestUsers(t, env.db, 3)

	household, err := svc.CreateHousehold(users[0].ID, "Revolving Door")
	testutil.AssertNoError(t, err)
	_, err = svc.AddMember(users[0].ID, household.ID, users[1].ID)
	testutil.AssertNoError(t, err)
	_, err = svc.AddMember(users[0].ID, household.ID, users[2].ID)
	testutil.AssertNoError(t, err)

	err = svc.RemoveMember(users[0].ID, household.ID, users[1].ID)
	testutil.AssertNoError(t, err)

	if _, err := svc.GetActiveMember(household.ID, users[1].ID); err == nil {
		t.Fatal("expected removed member to no longer be active")
	}

	// Rejoining reactivates the same row with a fresh equal weight.
	member, err := svc.AddMember(users[0].ID, household.ID, users[1].ID)
	testutil.AssertNoError(t, err)
	if !member.Active {
		t.Error("expected reactivated member to be active")
	}
	if member.AllocationBPS != 3333 {
		t.Errorf("expected fresh weight 3333, got %d", member.AllocationBPS)
	}
}

func TestRemoveMemberCreatorForbidden(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)

	household, err := svc.CreateHousehold(creator.ID, "Solo")
	testutil.AssertNoError(t, err)

	err = svc.RemoveMember(creator.ID, household.ID, creator.ID)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestUpdateMemberAllocation(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)
	other := testutil.CreateTestUser(t, env.db)

	household, err := svc.CreateHousehold(creator.ID, "Weighted")
	testutil.AssertNoError(t, err)
	_, err = svc.AddMember(creator.ID, household.ID, other.ID)
	testutil.AssertNoError(t, err)

	member, err := svc.UpdateMemberAllocation(creator.ID, household.ID, other.ID, 7500)
	testutil.AssertNoError(t, err)
	if member.AllocationBPS != 7500 {
		t.Errorf("expected 7500 bps, got %d", member.AllocationBPS)
	}

	// Peers are not rebalanced.
	peer, err := svc.GetActiveMember(household.ID, creator.ID)
	testutil.AssertNoError(t, err)
	if peer.AllocationBPS != 10000 {
		t.Errorf("expected creator weight untouched, got %d", peer.AllocationBPS)
	}

	_, err = svc.UpdateMemberAllocation(creator.ID, household.ID, other.ID, 10001)
	testutil.AssertAppError(t, err, "INVALID_ALLOCATION")

	_, err = svc.UpdateMemberAllocation(other.ID, household.ID, creator.ID, 100)
	testutil.AssertAppError(t, err, "NOT_AUTHORIZED")
}

func TestDeactivateHousehold(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)
	other := testutil.CreateTestUser(t, env.db)

	household, err := svc.CreateHousehold(creator.ID, "Winding Down")
	testutil.AssertNoError(t, err)

	err = svc.DeactivateHousehold(other.ID, household.ID)
	testutil.AssertAppError(t, err, "NOT_AUTHORIZED")

	err = svc.DeactivateHousehold(creator.ID, household.ID)
	testutil.AssertNoError(t, err)

	// Reads keep working, mutations are rejected.
	got, err := svc.GetHousehold(household.ID)
	testutil.AssertNoError(t, err)
	if got.Active {
		t.Error("expected household to be inactive")
	}
	_, err = svc.AddMember(creator.ID, household.ID, other.ID)
	testutil.AssertAppError(t, err, "HOUSEHOLD_INACTIVE")
}

func TestCreateHouseholdValidation(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)

	cases := []struct {
		name      string
		creatorID string
		household string
	}{
		{"empty name", creator.ID, ""},
		{"empty creator", "", "No Owner"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateHousehold(tc.creatorID, tc.household)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		})
	}
}

func TestHouseholdExists(t *testing.T) {
	svc, env := newHouseholdService(t)
	creator := testutil.CreateTestUser(t, env.db)

	household, err := svc.CreateHousehold(creator.ID, "Here")
	testutil.AssertNoError(t, err)

	for _, tc := range []struct {
		id   uint
		want bool
	}{
		{household.ID, true},
		{household.ID + 1000, false},
	} {
		got, err := svc.HouseholdExists(tc.id)
		testutil.AssertNoError(t, err)
		if got != tc.want {
			t.Errorf("HouseholdExists(%d) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestGetMembersIncludesRemoved(t *testing.T) {
	svc, env := newHouseholdService(t)
	users := testutil.CreateTestUsers(t, env.db, 2)

	household, err := svc.CreateHousehold(users[0].ID, "History")
	testutil.AssertNoError(t, err)
	_, err = svc.AddMember(users[0].ID, household.ID, users[1].ID)
	testutil.AssertNoError(t, err)
	err = svc.RemoveMember(users[0].ID, household.ID, users[1].ID)
	testutil.AssertNoError(t, err)

	members, err := svc.GetMembers(household.ID)
	testutil.AssertNoError(t, err)
	if len(members) != 2 {
		t.Fatalf("expected removed member to stay in the list, got %d members", len(members))
	}
	for i, m := range members {
		if m.Position != i {
			t.Errorf("expected position %d at index %d, got %d", i, i, m.Position)
		}
	}
}

func TestMembershipIsPerHousehold(t *testing.T) {
	svc, env := newHouseholdService(t)
	users := testutil.CreateTestUsers(t, env.db, 2)

	first, err := svc.CreateHousehold(users[0].ID, "First")
	testutil.AssertNoError(t, err)
	second, err := svc.CreateHousehold(users[1].ID, "Second")
	testutil.AssertNoError(t, err)

	_, err = svc.GetActiveMember(first.ID, users[1].ID)
	testutil.AssertAppError(t, err, "USER_NOT_IN_HOUSEHOLD")
	_, err = svc.GetActiveMember(second.ID, users[0].ID)
	testutil.AssertAppError(t, err, "USER_NOT_IN_HOUSEHOLD")
}
