package usecases

// AdminPolicy decides who may run admin-only bot actions
type AdminPolicy struct {
	adminUserID string
}

func NewAdminPolicy(adminUserID string) AdminPolicy {
	return AdminPolicy{adminUserID: adminUserID}
}

// IsAdmin is false for everyone when no admin is configured.
func (p AdminPolicy) IsAdmin(chatUserID string) bool {
	return p.adminUserID != "" && chatUserID == p.adminUserID
}

// UserID is the configured admin chat user, possibly empty.
func (p AdminPolicy) UserID() string {
	return p.adminUserID
}
