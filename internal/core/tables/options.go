package tables

import "github.com/JonMunkholm/salesadmin/internal/core"

func init() {
	for _, src := range []core.OptionSource{
		{Name: "salesrepemployeenumber_option_list", Table: "employees", Value: "employeeNumber", Label: "lastName"},
		{Name: "officecode_option_list", Table: "offices", Value: "officeCode", Label: "officeCode"},
		{Name: "ordernumber_option_list", Table: "orders", Value: "orderNumber", Label: "orderNumber"},
		{Name: "productcode_option_list", Table: "products", Value: "productCode", Label: "productName"},
		{Name: "customernumber_option_list", Table: "customers", Value: "customerNumber", Label: "customerName"},
		{Name: "productline_option_list", Table: "productlines", Value: "productLine", Label: "productLine"},
	} {
		core.RegisterOptions(src)
	}
}
