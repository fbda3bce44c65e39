package accounts

// User is the short user record returned by register and login.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Role     string `json:"role,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Address  string `json:"address,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse holds the JWT pair.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// RefreshResponse carries a new access token. Refresh is set only when the
// backend rotates refresh tokens.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Profile is the current user's full record. Money and rate fields are
// decimal strings.
type Profile struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	Nickname        string `json:"nickname"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Role            string `json:"role"`
	CreditScore     int    `json:"credit_score"`
	Balance         string `json:"balance"`
	TradeCount      int    `json:"trade_count"`
	GoodRate        string `json:"good_rate"`
	IsEmailVerified bool   `json:"is_email_verified"`
	IsPhoneVerified bool   `json:"is_phone_verified"`
}

// ProfileUpdate is a partial update; nil fields are left unchanged. A
// non-empty Password changes the password.
type ProfileUpdate struct {
	Nickname *string `json:"nickname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Password *string `json:"password,omitempty"`
}

// AdminUser is a user as seen through the admin directory.
type AdminUser struct {
	Profile
	IsActive   bool   `json:"is_active"`
	IsStaff    bool   `json:"is_staff"`
	DateJoined string `json:"date_joined"`
	LastLogin  string `json:"last_login,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// AdminUserWrite is the body of admin create and update calls. On update only
// non-nil fields are sent.
type AdminUserWrite struct {
	Username    *string `json:"username,omitempty"`
	Password    *string `json:"password,omitempty"`
	Nickname    *string `json:"nickname,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Role        *string `json:"role,omitempty"`
	CreditScore *int    `json:"credit_score,omitempty"`
	Balance     *string `json:"balance,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
