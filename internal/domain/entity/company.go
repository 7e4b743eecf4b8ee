package entity

import "time"

// Company representa una organización/tenant del sistema. Todos los usuarios
// y gastos pertenecen a una Company; al eliminarla se eliminan en cascada.
type Company struct {
	ID        string
	Name      string // único a nivel global
	Currency  string // código ISO 4217, por defecto USD
	CreatedAt time.Time
}

// DefaultCurrency moneda por defecto para empresas nuevas.
const DefaultCurrency = "USD"
