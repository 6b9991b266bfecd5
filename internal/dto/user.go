package dto

// UserResponse public view of a user
type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TechnicianResponse entry of the assignee picker
type TechnicianResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
