package tables

import "github.com/JonMunkholm/salesadmin/internal/core"

func init() {
	registerCustomers()
	registerEmployees()
	registerOffices()
}

func registerCustomers() {
	core.Register(core.Entity{
		Name:       "customers",
		Table:      "customers",
		Label:      "Customers",
		PrimaryKey: []string{"customernumber"},
		RecordKey:  "customernumber",
		Fields: []core.FieldSpec{
			{Name: "customernumber", Column: "customerNumber", Type: core.FieldInteger, Required: true, Numeric: true},
			{Name: "customername", Column: "customerName", Type: core.FieldText, Required: true},
			{Name: "contactlastname", Column: "contactLastName", Type: core.FieldText, Required: true},
			{Name: "contactfirstname", Column: "contactFirstName", Type: core.FieldText, Required: true},
			{Name: "phone", Column: "phone", Type: core.FieldText, Required: true},
			{Name: "addressline1", Column: "addressLine1", Type: core.FieldText, Required: true},
			{Name: "addressline2", Column: "addressLine2", Type: core.FieldText},
			{Name: "city", Column: "city", Type: core.FieldText, Required: true},
			{Name: "state", Column: "state", Type: core.FieldText},
			{Name: "postalcode", Column: "postalCode", Type: core.FieldText},
			{Name: "country", Column: "country", Type: core.FieldText, Required: true},
			{Name: "salesrepemployeenumber", Column: "salesRepEmployeeNumber", Type: core.FieldInteger, Numeric: true},
			{Name: "creditlimit", Column: "creditLimit", Type: core.FieldDecimal, Numeric: true},
		},
		SearchColumns: []string{
			"customerName", "contactLastName", "contactFirstName", "phone",
			"addressLine1", "addressLine2", "city", "state", "postalCode", "country",
		},
	})
}

func registerEmployees() {
	core.Register(core.Entity{
		Name:       "employees",
		Table:      "employees",
		Label:      "Employees",
		PrimaryKey: []string{"employeenumber"},
		RecordKey:  "employeenumber",
		Fields: []core.FieldSpec{
			{Name: "employeenumber", Column: "employeeNumber", Type: core.FieldInteger, Required: true, Numeric: true},
			{Name: "lastname", Column: "lastName", Type: core.FieldText, Required: true},
			{Name: "firstname", Column: "firstName", Type: core.FieldText, Required: true},
			{Name: "extension", Column: "extension", Type: core.FieldText, Required: true},
			{Name: "email", Column: "email", Type: core.FieldText, Required: true, Email: true},
			{Name: "officecode", Column: "officeCode", Type: core.FieldText, Required: true},
			{Name: "reportsto", Column: "reportsTo", Type: core.FieldInteger, Numeric: true},
			{Name: "jobtitle", Column: "jobTitle", Type: core.FieldText, Required: true},
		},
		SearchColumns: []string{"lastName", "firstName", "extension", "email", "officeCode", "jobTitle"},
	})
}

func registerOffices() {
	core.Register(core.Entity{
		Name:       "offices",
		Table:      "offices",
		Label:      "Offices",
		PrimaryKey: []string{"officecode"},
		RecordKey:  "officecode",
		Fields: []core.FieldSpec{
			{Name: "officecode", Column: "officeCode", Type: core.FieldText, Required: true},
			{Name: "city", Column: "city", Type: core.FieldText, Required: true},
			{Name: "phone", Column: "phone", Type: core.FieldText, Required: true},
			{Name: "addressline1", Column: "addressLine1", Type: core.FieldText, Required: true},
			{Name: "addressline2", Column: "addressLine2", Type: core.FieldText},
			{Name: "state", Column: "state", Type: core.FieldText},
			{Name: "country", Column: "country", Type: core.FieldText, Required: true},
			{Name: "postalcode", Column: "postalCode", Type: core.FieldText, Required: true},
			{Name: "territory", Column: "territory", Type: core.FieldText, Required: true},
		},
		SearchColumns: []string{
			"officeCode", "city", "phone", "addressLine1", "addressLine2",
			"state", "country", "postalCode", "territory",
		},
	})
}
