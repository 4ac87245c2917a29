package dto

type UserResponse struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
	CreatedAt  string `json:"created_at"`
}
