package entity

import "time"

// User representa un usuario del sistema. Se crea en la primera sincronización
// con el proveedor de identidad; Subject es la clave inmutable de identidad.
type User struct {
	ID        string
	Subject   string // sub del proveedor de identidad (único)
	Email     string
	Name      string
	ImageURL  string
	CreatedAt time.Time
}
