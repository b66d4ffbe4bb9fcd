package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/furnistore/internal/domain/furniture"
)

type fakeOrderRepo struct {
	records   []Record
	saveCalls int
	loadErr   error
	saveErr   error
}

func (r *fakeOrderRepo) LoadAll(ctx context.Context) ([]Record, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.records, nil
}

func (r *fakeOrderRepo) SaveAll(ctx context.Context, records []Record) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saveCalls++
	r.records = records
	return nil
}

func makeOrder(t *testing.T, userID string) *Order {
	t.Helper()
	chair, err := furniture.NewChair("wood", 100, "")
	require.NoError(t, err)
	require.NoError(t, chair.SetID("c1"))
	o, err := NewOrder(userID, []furniture.Item{{Furniture: chair, Quantity: 1}}, 118, PaymentCreditCard, "地址")
	require.NoError(t, err)
	return o
}

// TestHistoryAppend 追加订单与写穿
func TestHistoryAppend(t *testing.T) {
	repo := &fakeOrderRepo{}
	h := NewHistory(repo)
	ctx := context.Background()

	o1 := makeOrder(t, "u1")
	o2 := makeOrder(t, "u2")
	require.NoError(t, h.Append(ctx, o1))
	require.NoError(t, h.Append(ctx, o2))

	assert.Len(t, h.All(), 2)
	assert.Equal(t, 2, repo.saveCalls, "每次追加写穿一次")

	rec, found := h.Get(o1.ID())
	require.True(t, found)
	assert.Equal(t, "u1", rec.UserID)

	_, found = h.Get("no-such-order")
	assert.False(t, found)
}

// TestHistoryForUser 按用户过滤
func TestHistoryForUser(t *testing.T) {
	repo := &fakeOrderRepo{}
	h := NewHistory(repo)
	ctx := context.Background()

	require.NoError(t, h.Append(ctx, makeOrder(t, "u1")))
	require.NoError(t, h.Append(ctx, makeOrder(t, "u2")))
	require.NoError(t, h.Append(ctx, makeOrder(t, "u1")))

	assert.Len(t, h.ForUser("u1"), 2)
	assert.Len(t, h.ForUser("u2"), 1)
	assert.Empty(t, h.ForUser("u3"))
}

// TestHistoryAppendRollback 写穿失败时内存回退
func TestHistoryAppendRollback(t *testing.T) {
	repo := &fakeOrderRepo{saveErr: errors.New("disk full")}
	h := NewHistory(repo)

	err := h.Append(context.Background(), makeOrder(t, "u1"))
	require.Error(t, err)
	assert.Empty(t, h.All(), "持久化失败后内存中也不保留该订单")
}

// TestHistoryDiscard 结算补偿撤单
func TestHistoryDiscard(t *testing.T) {
	repo := &fakeOrderRepo{}
	h := NewHistory(repo)
	ctx := context.Background()

	o := makeOrder(t, "u1")
	require.NoError(t, h.Append(ctx, o))
	require.NoError(t, h.Discard(ctx, o.ID()))

	assert.Empty(t, h.All())
	_, found := h.Get(o.ID())
	assert.False(t, found)

	assert.NoError(t, h.Discard(ctx, "no-such-order"), "撤销不存在的订单是空操作")
}

// TestHistoryLoad 装载与坏记录跳过
func TestHistoryLoad(t *testing.T) {
	repo := &fakeOrderRepo{records: []Record{
		{OrderID: "ORD1", UserID: "u1", Date: "2026-08-21T10:00:00Z", TotalPrice: 118},
		{OrderID: "", UserID: "u1"},
		{OrderID: "ORD2", UserID: ""},
		{OrderID: "ORD3", UserID: "u2", Date: "2026-08-21T11:00:00Z", TotalPrice: 236},
	}}
	h := NewHistory(repo)

	require.NoError(t, h.Load(context.Background()))
	assert.Len(t, h.All(), 2, "缺ID的记录被跳过")

	_, found := h.Get("ORD3")
	assert.True(t, found)
}

// TestHistoryLoadFailure 持久层整体失败时装载报错
func TestHistoryLoadFailure(t *testing.T) {
	repo := &fakeOrderRepo{loadErr: errors.New("connection refused")}
	h := NewHistory(repo)
	assert.Error(t, h.Load(context.Background()))
}
