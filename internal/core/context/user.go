// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"invacc/internal/core/types"
)

// Role names issued in tokens.
const (
	RoleAdmin            = "admin"
	RoleFinancialManager = "financial_manager"
	RoleAccountant       = "accountant"
	RoleStorekeeper      = "storekeeper"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID      string
	Name        string
	Roles       []string
	Permissions []string
	IsAdmin     bool
	// WarehouseID restricts a storekeeper to a single warehouse. Empty means unrestricted.
	WarehouseID types.Code
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetUserName returns the display name from context or "system".
func GetUserName(ctx context.Context) string {
	if u := GetUser(ctx); u != nil && u.Name != "" {
		return u.Name
	}
	return "system"
}

// HasRole checks if user has specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// WarehouseScope returns the warehouse a storekeeper is confined to.
// ok is false when the user may see every warehouse.
func WarehouseScope(ctx context.Context) (types.Code, bool) {
	u := GetUser(ctx)
	if u == nil || u.IsAdmin || u.WarehouseID.IsEmpty() || !HasRole(ctx, RoleStorekeeper) {
		return "", false
	}
	return u.WarehouseID, true
}

// HasWarehouseAccess checks if user may act on documents of the warehouse.
func HasWarehouseAccess(ctx context.Context, warehouseID types.Code) bool {
	scope, restricted := WarehouseScope(ctx)
	return !restricted || scope == warehouseID
}
