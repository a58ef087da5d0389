package auth

import (
	"sort"

	appctx "invacc/internal/core/context"
	"invacc/internal/core/types"
)

// Permission codes checked by the HTTP layer.
const (
	PermDocumentRead      = "document:read"
	PermRuleRead          = "rule:read"
	PermRuleWrite         = "rule:write"
	PermConversionExecute = "conversion:execute"
	PermJournalRead       = "journal:read"
	PermJournalWrite      = "journal:write"
	PermJournalApprove    = "journal:approve"
	PermLogRead           = "log:read"
)

// rolePermissions is the built-in role matrix. Admins bypass it.
var rolePermissions = map[string][]string{
	appctx.RoleFinancialManager: {
		PermDocumentRead, PermRuleRead, PermRuleWrite, PermConversionExecute,
		PermJournalRead, PermJournalWrite, PermJournalApprove, PermLogRead,
	},
	appctx.RoleAccountant: {
		PermDocumentRead, PermRuleRead, PermConversionExecute,
		PermJournalRead, PermJournalWrite,
	},
	appctx.RoleStorekeeper: {
		PermDocumentRead,
	},
}

// PermissionsFor returns the union of permissions granted by roles, sorted.
func PermissionsFor(roles ...string) []string {
	set := make(map[string]struct{})
	for _, r := range roles {
		for _, p := range rolePermissions[r] {
			set[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// User is a known application user.
type User struct {
	ID       string
	Username string
	Name     string
	Role     string
	// WarehouseID is set for storekeepers only.
	WarehouseID types.Code
}

// IsAdmin reports whether the user bypasses permission checks.
func (u *User) IsAdmin() bool {
	return u.Role == appctx.RoleAdmin
}

// UserContext builds the request identity carried in tokens.
func (u *User) UserContext() appctx.UserContext {
	uc := appctx.UserContext{
		UserID:      u.ID,
		Name:        u.Name,
		Roles:       []string{u.Role},
		Permissions: PermissionsFor(u.Role),
		IsAdmin:     u.IsAdmin(),
	}
	if u.Role == appctx.RoleStorekeeper {
		uc.WarehouseID = u.WarehouseID
	}
	return uc
}

// DefaultUsers are the built-in accounts used for local development.
func DefaultUsers() []User {
	return []User{
		{ID: "1", Username: "admin", Name: "مدیر سیستم", Role: appctx.RoleAdmin},
		{ID: "2", Username: "f_manager", Name: "آقای حسینی", Role: appctx.RoleFinancialManager},
		{ID: "3", Username: "accountant", Name: "خانم محمدی", Role: appctx.RoleAccountant},
		{ID: "4", Username: "storekeeper_1000", Name: "علی اکبری", Role: appctx.RoleStorekeeper, WarehouseID: "1000"},
		{ID: "5", Username: "storekeeper_1001", Name: "رضا قاسمی", Role: appctx.RoleStorekeeper, WarehouseID: "1001"},
	}
}
