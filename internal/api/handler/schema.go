package handler

// --- Request / Response types ---

type registerRequest struct {
	Username  string `json:"username"   validate:"required,min=1,max=50"`
	Email     string `json:"email"      validate:"omitempty,email"`
	FirstName string `json:"first_name" validate:"max=50"`
	LastName  string `json:"last_name"  validate:"max=50"`
	Password  string `json:"password"   validate:"required,min=6"`
	Role      string `json:"role"       validate:"omitempty,oneof=user admin"`
}

// loginRequest accepts both a JSON body and an OAuth2 password form.
type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type changePasswordRequest struct {
	Password    string `json:"password"     validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

type todoRequest struct {
	Title       string `json:"title"       validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=3,max=100"`
	Priority    int    `json:"priority"    validate:"gte=1,lte=5"`
	Complete    bool   `json:"complete"`
}

type todoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	OwnerID     int64  `json:"owner_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
