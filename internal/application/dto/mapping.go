package dto

import "github.com/jhoicas/invoicething/internal/domain/entity"

// NewUserResponse mapea entity.User a su DTO.
func NewUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Subject:   u.Subject,
		Email:     u.Email,
		Name:      u.Name,
		ImageURL:  u.ImageURL,
		CreatedAt: Millis(u.CreatedAt),
	}
}

// NewClientResponse mapea entity.Client a su DTO (nil si c es nil).
func NewClientResponse(c *entity.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	resp := &ClientResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		Name:          c.Name,
		Email:         c.Email,
		ContactPerson: c.ContactPerson,
		CreatedAt:     Millis(c.CreatedAt),
		UpdatedAt:     Millis(c.UpdatedAt),
	}
	if !c.Address.IsEmpty() {
		a := c.Address.Normalize()
		resp.Address = &AddressDTO{
			StreetName:   a.StreetName,
			BuildingName: a.BuildingName,
			UnitNumber:   a.UnitNumber,
			PostalCode:   a.PostalCode,
		}
		resp.AddressLines = a.Lines()
	}
	return resp
}

// ToAddress convierte el DTO a la dirección de dominio normalizada.
func (a *AddressDTO) ToAddress() entity.Address {
	if a == nil {
		return entity.Address{}
	}
	return entity.Address{
		StreetName:   a.StreetName,
		BuildingName: a.BuildingName,
		UnitNumber:   a.UnitNumber,
		PostalCode:   a.PostalCode,
	}.Normalize()
}

// NewSettingsResponse mapea entity.Settings a su DTO.
func NewSettingsResponse(s *entity.Settings) *SettingsResponse {
	return &SettingsResponse{
		ID:                  s.ID,
		InvoicePrefix:       s.InvoicePrefix,
		InvoiceNumberStart:  s.InvoiceNumberStart,
		DueDateDays:         s.DueDateDays,
		TaxRate:             s.TaxRate,
		PaymentInstructions: s.PaymentInstructions,
		RoundingEnabled:     s.RoundingEnabled,
		RoundingIncrement:   s.RoundingIncrement,
		CreatedAt:           Millis(s.CreatedAt),
		UpdatedAt:           Millis(s.UpdatedAt),
	}
}

// NewInvoiceResponse mapea la cabecera de la factura y su cliente (puede ser nil).
func NewInvoiceResponse(inv *entity.Invoice, client *entity.Client) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:            inv.ID,
		UserID:        inv.UserID,
		ClientID:      inv.ClientID,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     Millis(inv.IssueDate),
		DueDate:       Millis(inv.DueDate),
		Status:        string(inv.Status),
		TaxRate:       inv.TaxRate,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Notes:         inv.Notes,
		CreatedAt:     Millis(inv.CreatedAt),
		UpdatedAt:     Millis(inv.UpdatedAt),
		Client:        NewClientResponse(client),
	}
	if !inv.RoundingAdjustment.IsZero() {
		adj := inv.RoundingAdjustment
		resp.RoundingAdjustment = &adj
	}
	return resp
}

// WithChildren agrega líneas y gastos (ya ordenados) a la respuesta.
func (r *InvoiceResponse) WithChildren(items []*entity.LineItem, claims []*entity.Claim) *InvoiceResponse {
	r.LineItems = make([]LineItemResponse, 0, len(items))
	for _, li := range items {
		r.LineItems = append(r.LineItems, LineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.Total,
			Order:       li.Order,
		})
	}
	r.Claims = make([]ClaimResponse, 0, len(claims))
	for _, c := range claims {
		r.Claims = append(r.Claims, ClaimResponse{
			ID:           c.ID,
			Description:  c.Description,
			Amount:       c.Amount,
			Date:         Millis(c.Date),
			Order:        c.Order,
			AttachmentID: c.AttachmentID,
		})
	}
	return r
}
