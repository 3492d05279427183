package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

// TestLedgerFlow walks the full loop: create a household, add members,
// post an equal-split expense, read balances, settle part of a debt, and
// attach an external payment reference.
func TestLedgerFlow(t *testing.T) {
	app := setupApp(t)

	aliceToken, aliceID := app.registerUser(t, "alice@flow.test", "supersecret")
	bobToken, bobID := app.registerUser(t, "bob@flow.test", "supersecret")
	_, carolID := app.registerUser(t, "carol@flow.test", "supersecret")

	hid := app.createHousehold(t, aliceToken, "Flow House")
	app.addMember(t, aliceToken, hid, bobID)
	app.addMember(t, aliceToken, hid, carolID)

	// Alice posts 300 split equally among three members.
	body := fmt.Sprintf(`{"name":"groceries","amount":300,"payer_id":%q,"type":"one_time","allocation_type":"equal"}`, aliceID)
	rec := app.request("POST", fmt.Sprintf("/api/v1/households/%.0f/expenses", hid), body, aliceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("post expense failed: %d %s", rec.Code, rec.Body.String())
	}
	expense := parseJSON(t, rec)
	if expense["expense_id"].(float64) != 1 {
		t.Errorf("expected first expense ID 1, got %v", expense["expense_id"])
	}

	// Bob owes Alice 100.
	path := fmt.Sprintf("/api/v1/households/%.0f/balance?from=%s&to=%s", hid, bobID, aliceID)
	rec = app.request("GET", path, "", bobToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("get balance failed: %d %s", rec.Code, rec.Body.String())
	}
	if amount := parseJSON(t, rec)["amount"].(float64); amount != 100 {
		t.Errorf("expected bob to owe 100, got %v", amount)
	}

	// Bob settles 60 of it.
	body = fmt.Sprintf(`{"to_user_id":%q,"amount":60}`, aliceID)
	rec = app.request("POST", fmt.Sprintf("/api/v1/households/%.0f/settlements", hid), body, bobToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("settle failed: %d %s", rec.Code, rec.Body.String())
	}
	settlement := parseJSON(t, rec)
	settlementID := settlement["settlement_id"].(float64)
	if settlementID != 1 {
		t.Errorf("expected first settlement ID 1, got %v", settlementID)
	}

	// Overpaying the remaining 40 fails with INSUFFICIENT_FUNDS.
	body = fmt.Sprintf(`{"to_user_id":%q,"amount":100}`, aliceID)
	rec = app.request("POST", fmt.Sprintf("/api/v1/households/%.0f/settlements", hid), body, bobToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 overpaying, got %d %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INSUFFICIENT_FUNDS" {
		t.Errorf("expected INSUFFICIENT_FUNDS, got %s", code)
	}

	rec = app.request("GET", path, "", bobToken)
	if amount := parseJSON(t, rec)["amount"].(float64); amount != 40 {
		t.Errorf("expected 40 outstanding after failed overpay, got %v", amount)
	}

	// Bob attaches an external payment reference, once.
	ref := strings.Repeat("ab", 32)
	body = fmt.Sprintf(`{"tx_reference":%q}`, ref)
	refPath := fmt.Sprintf("/api/v1/households/%.0f/settlements/%.0f/reference", hid, settlementID)
	rec = app.request("PUT", refPath, body, bobToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("attach reference failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("PUT", refPath, body, bobToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 re-attaching a reference, got %d", rec.Code)
	}

	// Alice cannot attach a reference to Bob's settlement.
	rec = app.request("PUT", refPath, body, aliceToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-payer, got %d", rec.Code)
	}
}

func TestExpenseValidationOverHTTP(t *testing.T) {
	app := setupApp(t)

	aliceToken, aliceID := app.registerUser(t, "a@val.test", "supersecret")
	_, bobID := app.registerUser(t, "b@val.test", "supersecret")
	hid := app.createHousehold(t, aliceToken, "Validation House")
	app.addMember(t, aliceToken, hid, bobID)

	path := fmt.Sprintf("/api/v1/households/%.0f/expenses", hid)

	// Custom allocations that do not sum to 10000 are rejected.
	body := fmt.Sprintf(`{"name":"rent","amount":1000,"payer_id":%q,"type":"one_time","allocation_type":"custom","custom_allocations":{%q:5000,%q:4000}}`,
		aliceID, aliceID, bobID)
	rec := app.request("POST", path, body, aliceToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad allocation sum, got %d %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INVALID_ALLOCATION" {
		t.Errorf("expected INVALID_ALLOCATION, got %s", code)
	}

	// Unknown expense type is caught by request binding.
	body = fmt.Sprintf(`{"name":"odd","amount":100,"payer_id":%q,"type":"weekly","allocation_type":"equal"}`, aliceID)
	rec = app.request("POST", path, body, aliceToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}

	// A failed posting never consumes an expense ID.
	body = fmt.Sprintf(`{"name":"ok","amount":100,"payer_id":%q,"type":"one_time","allocation_type":"equal"}`, aliceID)
	rec = app.request("POST", path, body, aliceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("post expense failed: %d %s", rec.Code, rec.Body.String())
	}
	if id := parseJSON(t, rec)["expense_id"].(float64); id != 1 {
		t.Errorf("expected expense ID 1 after failed attempts, got %v", id)
	}
}

func TestHouseholdIsolationOverHTTP(t *testing.T) {
	app := setupApp(t)

	aliceToken, aliceID := app.registerUser(t, "a@iso.test", "supersecret")
	bobToken, bobID := app.registerUser(t, "b@iso.test", "supersecret")

	aliceHouse := app.createHousehold(t, aliceToken, "Alice House")
	bobHouse := app.createHousehold(t, bobToken, "Bob House")

	// Bob cannot post into Alice's household.
	body := fmt.Sprintf(`{"name":"sneaky","amount":100,"payer_id":%q,"type":"one_time","allocation_type":"equal"}`, bobID)
	rec := app.request("POST", fmt.Sprintf("/api/v1/households/%.0f/expenses", aliceHouse), body, bobToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-member posting, got %d %s", rec.Code, rec.Body.String())
	}

	// Bob cannot read Alice's ledger either.
	rec = app.request("GET", fmt.Sprintf("/api/v1/households/%.0f/balances", aliceHouse), "", bobToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-member reading balances, got %d %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "USER_NOT_IN_HOUSEHOLD" {
		t.Errorf("expected USER_NOT_IN_HOUSEHOLD, got %s", code)
	}

	// Only the creator manages membership.
	rec = app.request("POST", fmt.Sprintf("/api/v1/households/%.0f/members", bobHouse),
		fmt.Sprintf(`{"user_id":%q}`, aliceID), aliceToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-creator adding member, got %d", rec.Code)
	}
}

func TestCategoryFlow(t *testing.T) {
	app := setupApp(t)

	token, userID := app.registerUser(t, "a@cat.test", "supersecret")
	hid := app.createHousehold(t, token, "Categorized")

	rec := app.request("POST", fmt.Sprintf("/api/v1/households/%.0f/categories", hid),
		`{"name":"Food","color":"#ff8800"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	categoryID := parseJSON(t, rec)["id"].(string)

	body := fmt.Sprintf(`{"name":"pizza","amount":120,"payer_id":%q,"type":"one_time","allocation_type":"equal","category_id":%q}`,
		userID, categoryID)
	rec = app.request("POST", fmt.Sprintf("/api/v1/households/%.0f/expenses", hid), body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("post categorized expense failed: %d %s", rec.Code, rec.Body.String())
	}
	if got := parseJSON(t, rec)["category_id"].(string); got != categoryID {
		t.Errorf("expected category %s on expense, got %s", categoryID, got)
	}
}
