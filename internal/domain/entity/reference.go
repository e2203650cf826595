package entity

// RefKind entidad referenciada por clave foránea cuya existencia se verifica antes de escribir.
type RefKind string

const (
	RefCustomer  RefKind = "customer"
	RefStaff     RefKind = "staff"
	RefInventory RefKind = "inventory"
	RefLanguage  RefKind = "language"
	RefRental    RefKind = "rental"
)
