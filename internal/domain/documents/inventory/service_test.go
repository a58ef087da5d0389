package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invacc/internal/core/apperror"
	appctx "invacc/internal/core/context"
	"invacc/internal/core/types"
	"invacc/internal/domain"
)

type fakeRepo struct {
	docs       []Document
	lastFilter ListFilter
}

func (r *fakeRepo) ListDocuments(_ context.Context, f ListFilter) (domain.ListResult[Document], error) {
	r.lastFilter = f
	var out []Document
	for i := range r.docs {
		if f.Matches(&r.docs[i]) {
			out = append(out, r.docs[i])
		}
	}
	return domain.Paginate(out, f.ListFilter), nil
}

func (r *fakeRepo) GetDocument(_ context.Context, id string) (Document, error) {
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return Document{}, apperror.NewNotFound("inventory_document", id)
}

func newRepo() *fakeRepo {
	return &fakeRepo{docs: []Document{
		{ID: "a", DocNo: "14030001", Date: "1403/01/10", WarehouseID: "1000", DocTypeCode: "40", Status: StatusReadyForConversion},
		{ID: "b", DocNo: "14030002", Date: "1403/02/10", WarehouseID: "1001", DocTypeCode: "10", Status: StatusIssued},
		{ID: "c", DocNo: "14020003", Date: "1402/12/01", WarehouseID: "1000", DocTypeCode: "10", Status: StatusPartiallySettled},
	}}
}

func storekeeper(warehouse types.Code) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "u1", Roles: []string{appctx.RoleStorekeeper}, WarehouseID: warehouse,
	})
}

func TestService_List_StorekeeperScope(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo)

	res, err := svc.List(storekeeper("1000"), ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalCount)
	assert.Equal(t, types.Code("1000"), repo.lastFilter.WarehouseID)

	res, err = svc.List(storekeeper("1000"), ListFilter{WarehouseID: "1001"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestService_List_Filters(t *testing.T) {
	svc := NewService(newRepo())
	ctx := context.Background()
	issued := StatusIssued

	res, err := svc.List(ctx, ListFilter{Year: "1403"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalCount)

	res, err = svc.List(ctx, ListFilter{Status: &issued})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "b", res.Items[0].ID)

	res, err = svc.List(ctx, ListFilter{ListFilter: domain.ListFilter{Search: "1402"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "c", res.Items[0].ID)
}

func TestService_Get_HidesOtherWarehouses(t *testing.T) {
	svc := NewService(newRepo())

	_, err := svc.Get(storekeeper("1000"), "b")
	assert.True(t, apperror.IsNotFound(err))

	doc, err := svc.Get(storekeeper("1001"), "b")
	require.NoError(t, err)
	assert.Equal(t, "14030002", doc.DocNo)
}
