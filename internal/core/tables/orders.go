package tables

import "github.com/JonMunkholm/salesadmin/internal/core"

func init() {
	registerOrders()
	registerOrderDetails()
	registerPayments()
}

func registerOrders() {
	core.Register(core.Entity{
		Name:       "orders",
		Table:      "orders",
		Label:      "Orders",
		PrimaryKey: []string{"ordernumber"},
		RecordKey:  "ordernumber",
		Fields: []core.FieldSpec{
			{Name: "ordernumber", Column: "orderNumber", Type: core.FieldInteger, Required: true, Numeric: true},
			{Name: "orderdate", Column: "orderDate", Type: core.FieldDate, Required: true},
			{Name: "requireddate", Column: "requiredDate", Type: core.FieldDate, Required: true},
			{Name: "shippeddate", Column: "shippedDate", Type: core.FieldDate},
			{Name: "status", Column: "status", Type: core.FieldText, Required: true},
			{Name: "comments", Column: "comments", Type: core.FieldText},
			{Name: "customernumber", Column: "customerNumber", Type: core.FieldInteger, Required: true, Numeric: true},
		},
		SearchColumns: []string{"status", "comments"},
	})
}

// Order lines are addressed by product code alone, so view, edit and
// delete by recid act on every line of that product.
func registerOrderDetails() {
	core.Register(core.Entity{
		Name:       "orderdetails",
		Table:      "orderdetails",
		Label:      "Order Details",
		PrimaryKey: []string{"ordernumber", "productcode"},
		RecordKey:  "productcode",
		Fields: []core.FieldSpec{
			{Name: "ordernumber", Column: "orderNumber", Type: core.FieldInteger, Required: true, Numeric: true},
			{Name: "productcode", Column: "productCode", Type: core.FieldText, Required: true},
			{Name: "quantityordered", Column: "quantityOrdered", Type: core.FieldInteger, Required: true, Numeric: true},
			{Name: "priceeach", Column: "priceEach", Type: core.FieldDecimal, Required: true, Numeric: true},
			{Name: "orderlinenumber", Column: "orderLineNumber", Type: core.FieldInteger, Required: true, Numeric: true},
		},
		SearchColumns: []string{"productCode"},
	})
}

func registerPayments() {
	core.Register(core.Entity{
		Name:       "payments",
		Table:      "payments",
		Label:      "Payments",
		PrimaryKey: []string{"customernumber", "checknumber"},
		RecordKey:  "checknumber",
		Fields: []core.FieldSpec{
			{Name: "customernumber", Column: "customerNumber", Type: core.FieldInteger, Required: true, Numeric: true},
			{Name: "checknumber", Column: "checkNumber", Type: core.FieldText, Required: true},
			{Name: "paymentdate", Column: "paymentDate", Type: core.FieldDate, Required: true},
			{Name: "amount", Column: "amount", Type: core.FieldDecimal, Required: true, Numeric: true},
		},
		SearchColumns: []string{"checkNumber"},
	})
}
