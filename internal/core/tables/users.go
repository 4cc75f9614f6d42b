package tables

import "github.com/JonMunkholm/salesadmin/internal/core"

func init() {
	registerUserSeg()
}

// The password column is searchable but never projected. It holds a
// bcrypt hash, so search only matches against hash text.
func registerUserSeg() {
	core.Register(core.Entity{
		Name:       "user_seg",
		Table:      "user_seg",
		Label:      "Users",
		PrimaryKey: []string{"id"},
		RecordKey:  "id",
		Fields: []core.FieldSpec{
			{Name: "id", Column: "id", Type: core.FieldInteger, AutoIncrement: true},
			{Name: "usuario", Column: "usuario", Type: core.FieldText, Required: true},
			{Name: "password", Column: "password", Type: core.FieldText, Required: true, WriteOnly: true, Hashed: true},
			{Name: "email", Column: "email", Type: core.FieldText, Required: true, Email: true},
			{Name: "foto", Column: "foto", Type: core.FieldText},
		},
		SearchColumns: []string{"usuario", "password", "email", "foto"},
		Confirmations: []core.Confirmation{
			{Field: "confirm_password", Matches: "password", Message: "Passwords do not match"},
		},
	})
}
