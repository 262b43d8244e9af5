// Package refdata serves the reference lists the registration form is
// built from: titles, blood groups, areas, consultants and so on. Every
// list rides the same storage; what differs per type is the field names its
// rows carry on the wire.
package refdata

// RefValue is one reference-data row.
type RefValue struct {
	ID      int    `db:"id"`
	RefType string `db:"ref_type"`
	ItemID  int    `db:"item_id"`
	Name    string `db:"name"`
	Active  bool   `db:"active"`
}
