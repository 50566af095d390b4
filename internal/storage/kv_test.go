package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestKV_SetGet(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, KeyAuthToken, "tok-123"))

	got, err := kv.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got)
}

func TestKV_Set_ReplacesExisting(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, KeyAuthToken, "first"))
	require.NoError(t, kv.Set(ctx, KeyAuthToken, "second"))

	got, err := kv.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestKV_Get_MissingKey(t *testing.T) {
	kv := openTestKV(t)

	_, err := kv.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestKV_Delete(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, KeyWishlist, "[]"))
	require.NoError(t, kv.Delete(ctx, KeyWishlist))

	_, err := kv.Get(ctx, KeyWishlist)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestKV_Delete_AbsentKeyIsNoop(t *testing.T) {
	kv := openTestKV(t)
	assert.NoError(t, kv.Delete(context.Background(), "never-set"))
}

func TestKV_JSONRoundTrip(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	type line struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}

	in := []line{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}}
	require.NoError(t, kv.SetJSON(ctx, KeyCartItems, in))

	var out []line
	require.NoError(t, kv.GetJSON(ctx, KeyCartItems, &out))
	assert.Equal(t, in, out)
}

func TestKV_GetJSON_MalformedValue(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, KeyCartItems, "{not json"))

	var out []string
	err := kv.GetJSON(ctx, KeyCartItems, &out)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}

func TestKV_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	kv, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, KeyAuthToken, "persisted"))
	require.NoError(t, kv.Close())

	kv2, err := Open(dir)
	require.NoError(t, err)
	defer kv2.Close()

	got, err := kv2.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}
