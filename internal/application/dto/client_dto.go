package dto

// AddressDTO dirección estructurada; cada parte es opcional.
type AddressDTO struct {
	StreetName   string `json:"street_name,omitempty"`
	BuildingName string `json:"building_name,omitempty"`
	UnitNumber   string `json:"unit_number,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
}

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name          string      `json:"name"`
	Email         string      `json:"email,omitempty"`
	Address       *AddressDTO `json:"address,omitempty"`
	ContactPerson string      `json:"contact_person,omitempty"`
}

// UpdateClientRequest body para PUT /api/clients/:id. Solo se modifican los
// campos presentes; una dirección presente reemplaza a la anterior completa.
type UpdateClientRequest struct {
	Name          *string     `json:"name,omitempty"`
	Email         *string     `json:"email,omitempty"`
	Address       *AddressDTO `json:"address,omitempty"`
	ContactPerson *string     `json:"contact_person,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Name          string      `json:"name"`
	Email         string      `json:"email,omitempty"`
	Address       *AddressDTO `json:"address,omitempty"`
	AddressLines  []string    `json:"address_lines,omitempty"`
	ContactPerson string      `json:"contact_person,omitempty"`
	CreatedAt     int64       `json:"created_at"`
	UpdatedAt     int64       `json:"updated_at"`
}
