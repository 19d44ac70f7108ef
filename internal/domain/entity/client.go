package entity

import (
	"strings"
	"time"
)

// Address dirección estructurada de un cliente. Cada parte es opcional;
// las partes en blanco se guardan vacías.
type Address struct {
	StreetName   string
	BuildingName string
	UnitNumber   string
	PostalCode   string
}

// Normalize recorta espacios en cada parte (una parte en blanco queda ausente).
func (a Address) Normalize() Address {
	return Address{
		StreetName:   strings.TrimSpace(a.StreetName),
		BuildingName: strings.TrimSpace(a.BuildingName),
		UnitNumber:   strings.TrimSpace(a.UnitNumber),
		PostalCode:   strings.TrimSpace(a.PostalCode),
	}
}

// IsEmpty indica si ninguna parte de la dirección tiene contenido.
func (a Address) IsEmpty() bool {
	n := a.Normalize()
	return n.StreetName == "" && n.BuildingName == "" && n.UnitNumber == "" && n.PostalCode == ""
}

// Lines devuelve la dirección en líneas imprimibles:
// calle / "edificio, Unit n" / "Postal Code p".
func (a Address) Lines() []string {
	n := a.Normalize()
	var lines []string
	if n.StreetName != "" {
		lines = append(lines, n.StreetName)
	}
	var buildingUnit []string
	if n.BuildingName != "" {
		buildingUnit = append(buildingUnit, n.BuildingName)
	}
	if n.UnitNumber != "" {
		buildingUnit = append(buildingUnit, "Unit "+n.UnitNumber)
	}
	if len(buildingUnit) > 0 {
		lines = append(lines, strings.Join(buildingUnit, ", "))
	}
	if n.PostalCode != "" {
		lines = append(lines, "Postal Code "+n.PostalCode)
	}
	return lines
}

// Client representa un cliente del usuario (a quien se factura).
type Client struct {
	ID            string
	UserID        string
	Name          string
	Email         string
	Address       Address
	ContactPerson string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
