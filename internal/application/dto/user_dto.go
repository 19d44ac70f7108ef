package dto

// SyncUserRequest body opcional de POST /api/users/sync. Los campos presentes
// reemplazan a los del token (p. ej. un nombre editado en el perfil).
type SyncUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// UserResponse usuario en respuestas.
type UserResponse struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedAt int64  `json:"created_at"`
}
