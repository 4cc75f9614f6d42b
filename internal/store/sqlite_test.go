package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/salesadmin/internal/core"
	_ "github.com/JonMunkholm/salesadmin/internal/core/tables"
	"github.com/JonMunkholm/salesadmin/internal/migrations"
	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// Test Helpers
// =============================================================================

// newTestGateway opens a migrated in-memory database.
func newTestGateway(t *testing.T) *SQLiteGateway {
	t.Helper()
	ctx := context.Background()

	gw, err := OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { gw.Close() })

	runner, err := migrations.NewSQLite(gw.DB())
	if err != nil {
		t.Fatalf("migrations.NewSQLite() error = %v", err)
	}
	if err := runner.Up(); err != nil {
		t.Fatalf("Up() error = %v", err)
	}
	return gw
}

func newTestService(t *testing.T) (*core.Service, *SQLiteGateway) {
	t.Helper()
	gw := newTestGateway(t)
	svc := core.NewService(Instrument(gw), core.ServiceConfig{
		BcryptCost: bcrypt.MinCost,
		Audit:      core.AuditFunc(func(context.Context, core.AuditEntry) {}),
	})
	return svc, gw
}

func mustExec(t *testing.T, gw *SQLiteGateway, query string, args ...any) {
	t.Helper()
	if _, err := gw.DB().Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func seedCustomers(t *testing.T, gw *SQLiteGateway, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		mustExec(t, gw, `INSERT INTO "customers" ("customerNumber", "customerName", "contactLastName",
			"contactFirstName", "phone", "addressLine1", "city", "country", "creditLimit")
			VALUES (?, ?, 'Last', 'First', '555-0100', '1 Main St', 'Nantes', 'France', 1000.50)`,
			100+i, fmt.Sprintf("Customer %02d", i))
	}
}

func seedOffices(t *testing.T, gw *SQLiteGateway) {
	t.Helper()
	offices := []struct{ code, city, state, country string }{
		{"1", "San Francisco", "CA", "USA"},
		{"2", "Boston", "MA", "USA"},
		{"3", "NYC", "NY", "USA"},
		{"4", "Paris", "", "France"},
	}
	for _, o := range offices {
		mustExec(t, gw, `INSERT INTO "offices" ("officeCode", "city", "phone", "addressLine1", "state",
			"country", "postalCode", "territory") VALUES (?, ?, '+1 555', '100 Market', ?, ?, '94080', 'NA')`,
			o.code, o.city, o.state, o.country)
	}
}

func seedEmployees(t *testing.T, gw *SQLiteGateway) {
	t.Helper()
	employees := []struct {
		number            int
		last, office, job string
	}{
		{1002, "Murphy", "1", "President"},
		{1056, "Patterson", "1", "VP Sales"},
		{1188, "Firrelli", "2", "Sales Rep"},
		{1216, "Boston", "1", "Sales Rep"},
		{1286, "Tseng", "3", "Sales Rep"},
	}
	for _, e := range employees {
		mustExec(t, gw, `INSERT INTO "employees" ("employeeNumber", "lastName", "firstName", "extension",
			"email", "officeCode", "jobTitle") VALUES (?, ?, 'Jo', 'x5800', 'jo@classicmodelcars.com', ?, ?)`,
			e.number, e.last, e.office, e.job)
	}
}

// =============================================================================
// Pager Tests
// =============================================================================

func TestList_Pagination(t *testing.T) {
	svc, gw := newTestService(t)
	seedCustomers(t, gw, 45)
	ctx := context.Background()

	tests := []struct {
		page        int
		wantRecords int
	}{
		{1, 20},
		{2, 20},
		{3, 5},
		{4, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			page, err := svc.List(ctx, "customers", core.ListRequest{Page: tt.page, Limit: 20})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(page.Records) != tt.wantRecords {
				t.Errorf("len(Records) = %d, want %d", len(page.Records), tt.wantRecords)
			}
			if page.TotalRecords != 45 {
				t.Errorf("TotalRecords = %d, want 45", page.TotalRecords)
			}
			if page.TotalPages != 3 {
				t.Errorf("TotalPages = %d, want 3", page.TotalPages)
			}
			if page.Records == nil {
				t.Error("Records = nil, want empty slice")
			}
		})
	}
}

func TestList_PartitionCoversEveryRow(t *testing.T) {
	svc, gw := newTestService(t)
	seedCustomers(t, gw, 45)
	ctx := context.Background()

	seen := make(map[any]bool)
	for page := 1; page <= 7; page++ {
		p, err := svc.List(ctx, "customers", core.ListRequest{Page: page, Limit: 7, OrderType: "asc"})
		if err != nil {
			t.Fatalf("List(page %d) error = %v", page, err)
		}
		for _, r := range p.Records {
			key := r["customernumber"]
			if seen[key] {
				t.Errorf("customer %v returned twice", key)
			}
			seen[key] = true
		}
	}
	if len(seen) != 45 {
		t.Errorf("distinct rows = %d, want 45", len(seen))
	}
}

func TestList_DefaultOrderIsKeyDescending(t *testing.T) {
	svc, gw := newTestService(t)
	seedCustomers(t, gw, 3)

	page, err := svc.List(context.Background(), "customers", core.ListRequest{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := page.Records[0]["customernumber"]; got != int64(103) {
		t.Errorf("first customernumber = %v, want 103", got)
	}
}

// =============================================================================
// Query Builder Tests
// =============================================================================

func TestList_FieldFilterWithSearch(t *testing.T) {
	svc, gw := newTestService(t)
	seedOffices(t, gw)
	seedEmployees(t, gw)
	ctx := context.Background()

	page, err := svc.List(ctx, "employees", core.ListRequest{
		FieldName:  "officecode",
		FieldValue: "1",
		Search:     "Boston",
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.TotalRecords != 1 {
		t.Fatalf("TotalRecords = %d, want 1", page.TotalRecords)
	}
	if got := page.Records[0]["lastname"]; got != "Boston" {
		t.Errorf("lastname = %v, want Boston", got)
	}
}

func TestList_SearchIsCaseInsensitive(t *testing.T) {
	svc, gw := newTestService(t)
	seedOffices(t, gw)

	page, err := svc.List(context.Background(), "offices", core.ListRequest{Search: "boston"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.TotalRecords != 1 {
		t.Errorf("TotalRecords = %d, want 1", page.TotalRecords)
	}
}

func TestList_EmptySearchMatchesFilterOnly(t *testing.T) {
	svc, gw := newTestService(t)
	seedOffices(t, gw)
	seedEmployees(t, gw)

	page, err := svc.List(context.Background(), "employees", core.ListRequest{
		FieldName:  "officecode",
		FieldValue: "1",
		Search:     "   ",
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", page.TotalRecords)
	}
}

func TestList_UnknownFieldIsValidationFailure(t *testing.T) {
	svc, gw := newTestService(t)
	seedOffices(t, gw)

	_, err := svc.List(context.Background(), "offices", core.ListRequest{
		FieldName:  `city"; DROP TABLE offices; --`,
		FieldValue: "x",
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("List() error = %v, want ErrValidation", err)
	}

	n, err := gw.Count(context.Background(), "offices", nil)
	if err != nil || n != 4 {
		t.Errorf("Count() = %d, %v; want 4, nil", n, err)
	}
}

func TestList_UnknownEntity(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.List(context.Background(), "invoices", core.ListRequest{})
	if !errors.Is(err, core.ErrUnknownEntity) {
		t.Errorf("List() error = %v, want ErrUnknownEntity", err)
	}
}

// =============================================================================
// Adjacent-Record Locator Tests
// =============================================================================

func TestView_AdjacentKeys(t *testing.T) {
	svc, gw := newTestService(t)
	seedOffices(t, gw)
	ctx := context.Background()

	tests := []struct {
		recid    string
		wantNext any
		wantPrev any
	}{
		{"1", "2", nil},
		{"2", "3", "1"},
		{"4", nil, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.recid, func(t *testing.T) {
			view, err := svc.View(ctx, "offices", tt.recid)
			if err != nil {
				t.Fatalf("View() error = %v", err)
			}
			if view.Record["officecode"] != tt.recid {
				t.Errorf("officecode = %v, want %s", view.Record["officecode"], tt.recid)
			}
			if view.Adjacent.Next != tt.wantNext {
				t.Errorf("Next = %v, want %v", view.Adjacent.Next, tt.wantNext)
			}
			if view.Adjacent.Previous != tt.wantPrev {
				t.Errorf("Previous = %v, want %v", view.Adjacent.Previous, tt.wantPrev)
			}
		})
	}
}

func TestView_NotFound(t *testing.T) {
	svc, gw := newTestService(t)
	seedOffices(t, gw)

	_, err := svc.View(context.Background(), "offices", "99")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("View() error = %v, want ErrNotFound", err)
	}
}

// =============================================================================
// Mutation Tests
// =============================================================================

func TestDelete_MixedKeys(t *testing.T) {
	svc, gw := newTestService(t)
	seedCustomers(t, gw, 5)
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, "customers", "101, 103,999")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(deleted) != 2 {
		t.Errorf("deleted = %v, want 2 keys", deleted)
	}

	n, _ := gw.Count(ctx, "customers", nil)
	if n != 3 {
		t.Errorf("remaining = %d, want 3", n)
	}

	deleted, err = svc.Delete(ctx, "customers", "101,103")
	if err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if len(deleted) != 0 {
		t.Errorf("second delete = %v, want none", deleted)
	}
}

func TestAdd_HashesPasswordAndHidesIt(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	row, err := svc.Add(ctx, "user_seg", core.Input{
		"usuario":          "ana",
		"password":         "s3cret",
		"confirm_password": "s3cret",
		"email":            "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, ok := row["password"]; ok {
		t.Error("returned row exposes password")
	}
	if row["id"] != int64(1) {
		t.Errorf("id = %v, want 1", row["id"])
	}

	var stored string
	if err := gw.DB().QueryRow(`SELECT "password" FROM "user_seg" WHERE "id" = 1`).Scan(&stored); err != nil {
		t.Fatalf("read password: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("s3cret")); err != nil {
		t.Errorf("stored password is not a bcrypt hash of the input: %v", err)
	}
}

func TestAdd_PasswordMismatchNeverReachesStore(t *testing.T) {
	svc, gw := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "user_seg", core.Input{
		"usuario":          "ana",
		"password":         "one",
		"confirm_password": "two",
		"email":            "ana@example.com",
	})
	var verrs core.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Add() error = %v, want ValidationErrors", err)
	}

	n, _ := gw.Count(ctx, "user_seg", nil)
	if n != 0 {
		t.Errorf("user_seg rows = %d, want 0", n)
	}
}

func TestEdit_UpdatesAndReturnsRecord(t *testing.T) {
	svc, gw := newTestService(t)
	seedOffices(t, gw)

	row, err := svc.Edit(context.Background(), "offices", "2", core.Input{"city": "Cambridge"})
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if row["city"] != "Cambridge" {
		t.Errorf("city = %v, want Cambridge", row["city"])
	}
}

func TestEdit_MissingRecord(t *testing.T) {
	svc, gw := newTestService(t)
	seedOffices(t, gw)

	_, err := svc.Edit(context.Background(), "offices", "99", core.Input{"city": "Cambridge"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Edit() error = %v, want ErrNotFound", err)
	}
}

func TestAdd_DateRoundTrip(t *testing.T) {
	svc, gw := newTestService(t)
	seedCustomers(t, gw, 1)
	ctx := context.Background()

	_, err := svc.Add(ctx, "orders", core.Input{
		"ordernumber":    "10100",
		"orderdate":      "2003-01-06",
		"requireddate":   "01/13/2003",
		"status":         "Shipped",
		"customernumber": "101",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	page, err := svc.List(ctx, "orders", core.ListRequest{FieldName: "requireddate", FieldValue: "2003-01-13"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.TotalRecords != 1 {
		t.Errorf("TotalRecords = %d, want 1", page.TotalRecords)
	}
}

// =============================================================================
// Option List Tests
// =============================================================================

func TestOptions(t *testing.T) {
	svc, gw := newTestService(t)
	seedOffices(t, gw)
	seedEmployees(t, gw)

	opts, err := svc.Options(context.Background(), "salesrepemployeenumber_option_list")
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if len(opts) != 5 {
		t.Fatalf("len(opts) = %d, want 5", len(opts))
	}
	if opts[0].Label != "Boston" {
		t.Errorf("first label = %v, want Boston", opts[0].Label)
	}

	if _, err := svc.Options(context.Background(), "nope_option_list"); !errors.Is(err, core.ErrUnknownOptionList) {
		t.Errorf("Options(unknown) error = %v, want ErrUnknownOptionList", err)
	}
}
