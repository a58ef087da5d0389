package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarehouseScope(t *testing.T) {
	ctx := context.Background()
	_, restricted := WarehouseScope(ctx)
	assert.False(t, restricted, "anonymous context is not scoped")

	keeper := WithUser(ctx, &UserContext{UserID: "u4", Roles: []string{RoleStorekeeper}, WarehouseID: "1000"})
	scope, restricted := WarehouseScope(keeper)
	assert.True(t, restricted)
	assert.Equal(t, "1000", scope.String())
	assert.True(t, HasWarehouseAccess(keeper, "1000"))
	assert.False(t, HasWarehouseAccess(keeper, "1001"))

	admin := WithUser(ctx, &UserContext{UserID: "u1", IsAdmin: true, WarehouseID: "1000"})
	assert.True(t, HasWarehouseAccess(admin, "1001"))

	accountant := WithUser(ctx, &UserContext{UserID: "u3", Roles: []string{RoleAccountant}, WarehouseID: "1000"})
	assert.False(t, HasRole(accountant, RoleStorekeeper))
	assert.True(t, HasWarehouseAccess(accountant, "1001"), "only storekeepers are confined")
}

func TestGetUserName_DefaultsToSystem(t *testing.T) {
	assert.Equal(t, "system", GetUserName(context.Background()))

	ctx := WithUser(context.Background(), &UserContext{Name: "مدیر مالی"})
	assert.Equal(t, "مدیر مالی", GetUserName(ctx))
}

func TestTraceContext(t *testing.T) {
	tc := NewTraceContext()
	ctx := WithTrace(context.Background(), tc)

	assert.Equal(t, tc.TraceID, GetTraceID(ctx))
	assert.Equal(t, tc.RequestID, GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}
