package services

import (
	"testing"

	"hearth/internal/testutil"
)

func TestCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	households := NewHouseholdService(env.db, env.locks, env.ticks)
	svc := NewCategoryService(env.db)

	creator := testutil.CreateTestUser(t, env.db)
	other := testutil.CreateTestUser(t, env.db)
	household, err := households.CreateHousehold(creator.ID, "Tagged")
	testutil.AssertNoError(t, err)

	_, err = svc.CreateCategory(other.ID, household.ID, "Food", "", "")
	testutil.AssertAppError(t, err, "NOT_AUTHORIZED")

	category, err := svc.CreateCategory(creator.ID, household.ID, "Food", "🍕", "#aa0000")
	testutil.AssertNoError(t, err)
	if category.ID == "" {
		t.Fatal("expected category to get an ID")
	}

	got, err := svc.GetCategoryByID(household.ID, category.ID)
	testutil.AssertNoError(t, err)
	if got.Name != "Food" {
		t.Errorf("expected Food, got %q", got.Name)
	}

	list, err := svc.GetHouseholdCategories(household.ID)
	testutil.AssertNoError(t, err)
	if len(list) != 1 {
		t.Fatalf("expected 1 category, got %d", len(list))
	}

	err = svc.DeleteCategory(other.ID, household.ID, category.ID)
	testutil.AssertAppError(t, err, "NOT_AUTHORIZED")
	err = svc.DeleteCategory(creator.ID, household.ID, category.ID)
	testutil.AssertNoError(t, err)
	_, err = svc.GetCategoryByID(household.ID, category.ID)
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestCategoryScopedToHousehold(t *testing.T) {
	env := newTestEnv(t)
	households := NewHouseholdService(env.db, env.locks, env.ticks)
	svc := NewCategoryService(env.db)

	creator := testutil.CreateTestUser(t, env.db)
	first, err := households.CreateHousehold(creator.ID, "First")
	testutil.AssertNoError(t, err)
	second, err := households.CreateHousehold(creator.ID, "Second")
	testutil.AssertNoError(t, err)

	category, err := svc.CreateCategory(creator.ID, first.ID, "Food", "", "")
	testutil.AssertNoError(t, err)

	_, err = svc.GetCategoryByID(second.ID, category.ID)
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestCreateCategoryRequiresName(t *testing.T) {
	env := newTestEnv(t)
	households := NewHouseholdService(env.db, env.locks, env.ticks)
	svc := NewCategoryService(env.db)

	creator := testutil.CreateTestUser(t, env.db)
	household, err := households.CreateHousehold(creator.ID, "Unnamed")
	testutil.AssertNoError(t, err)

	_, err = svc.CreateCategory(creator.ID, household.ID, "", "", "")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
