// Package core provides the list, view and mutation logic shared by every
// managed entity of the sales admin.
//
// The package has no transport or storage dependencies. Handlers, the CLI
// and tests drive it through [Service]; the store is reached through the
// [Gateway] interface.
//
// # Architecture
//
//   - Entities: one [Entity] descriptor per table, registered at init time.
//     Descriptors are data; no entity has code of its own.
//   - Field Resolver: [Entity.Resolve] returns the ordered projection for a
//     [FieldContext] (list, view, edit, export).
//   - Query Builder: [BuildListPlan] turns a [ListRequest] into a
//     store-agnostic [QueryPlan] with an AND of the field filter and an OR
//     of LIKE comparisons over the search columns.
//   - Pager: [Pager.Paginate] counts, then fetches one window.
//   - Locator: [Locator.Adjacent] finds the neighbouring record keys.
//   - Service: validation, conversion, hashing and auditing around the above.
//
// # Entity Registry
//
// Entities are registered with [Register], usually from an init function:
//
//	core.Register(core.Entity{
//	    Name:       "offices",
//	    Table:      "offices",
//	    Label:      "Offices",
//	    PrimaryKey: []string{"officecode"},
//	    RecordKey:  "officecode",
//	    Fields: []core.FieldSpec{
//	        {Name: "officecode", Column: "officeCode", Type: core.FieldText, Required: true},
//	        {Name: "city", Column: "city", Type: core.FieldText, Required: true},
//	    },
//	    SearchColumns: []string{"officeCode", "city"},
//	})
//
// # Errors
//
// Every operation returns one of three error kinds, matched with errors.Is:
//
//   - [ErrValidation]: input rejected before any store access; the concrete
//     value is [ValidationErrors].
//   - [ErrNotFound]: a keyed lookup matched nothing.
//   - [ErrQuery]: the store failed; the concrete value is *[QueryError].
//
// [MapError] converts any of them to a [UserMessage] with a support code.
package core
