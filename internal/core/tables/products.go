package tables

import "github.com/JonMunkholm/salesadmin/internal/core"

func init() {
	registerProductLines()
	registerProducts()
}

func registerProductLines() {
	core.Register(core.Entity{
		Name:       "productlines",
		Table:      "productlines",
		Label:      "Product Lines",
		PrimaryKey: []string{"productline"},
		RecordKey:  "productline",
		Fields: []core.FieldSpec{
			{Name: "productline", Column: "productLine", Type: core.FieldText, Required: true},
			{Name: "textdescription", Column: "textDescription", Type: core.FieldText},
			{Name: "htmldescription", Column: "htmlDescription", Type: core.FieldText},
			{Name: "image", Column: "image", Type: core.FieldText},
		},
		SearchColumns: []string{"productLine", "textDescription", "htmlDescription"},
	})
}

func registerProducts() {
	core.Register(core.Entity{
		Name:       "products",
		Table:      "products",
		Label:      "Products",
		PrimaryKey: []string{"productcode"},
		RecordKey:  "productcode",
		Fields: []core.FieldSpec{
			{Name: "productcode", Column: "productCode", Type: core.FieldText, Required: true},
			{Name: "productname", Column: "productName", Type: core.FieldText, Required: true},
			{Name: "productline", Column: "productLine", Type: core.FieldText, Required: true},
			{Name: "productscale", Column: "productScale", Type: core.FieldText, Required: true},
			{Name: "productvendor", Column: "productVendor", Type: core.FieldText, Required: true},
			{Name: "productdescription", Column: "productDescription", Type: core.FieldText, Required: true},
			{Name: "quantityinstock", Column: "quantityInStock", Type: core.FieldInteger, Required: true, Numeric: true},
			{Name: "buyprice", Column: "buyPrice", Type: core.FieldDecimal, Required: true, Numeric: true},
			{Name: "msrp", Column: "MSRP", Type: core.FieldDecimal, Required: true, Numeric: true},
		},
		SearchColumns: []string{
			"productCode", "productName", "productLine",
			"productScale", "productVendor", "productDescription",
		},
	})
}
