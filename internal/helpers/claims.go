package helpers

type EnhancedClaims struct {
	*CustomClaims
	UserID    string `json:"id"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// IsAdminIdentity compares the logged-in identity against the configured
// admin email/username. This is a presentation-layer check only; the data
// layer enforces no roles.
func (ec *EnhancedClaims) IsAdminIdentity(adminEmail, adminUsername string) bool {
	if adminEmail != "" && ec.Email == adminEmail {
		return true
	}
	if adminUsername != "" && ec.Username == adminUsername {
		return true
	}
	return false
}

func (ec *EnhancedClaims) IsOwner(userID string) bool {
	return ec.UserID == userID
}
