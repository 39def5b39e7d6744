package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	kiwiredis "github.com/ikkim/kiwimarket-backend/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressService_SavedAddresses(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewAddressService(env.addresses, env.fullAddresses, nil)
	home := env.createAddress(t, 1817, "1129010100", "성북구", "성북동")
	env.createAddress(t, 1818, "1129010200", "성북구", "성북동1가")
	user := env.createUser(t, "01012345678", "키위")

	require.NoError(t, svc.AddAddress(user.ID, home.Code))
	require.NoError(t, svc.AddAddress(user.ID, "1129010200"))
	assert.ErrorIs(t, svc.AddAddress(user.ID, "0000000000"), ErrAddressNotFound)

	saved, err := svc.SelectAddresses(user.ID)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, SavedAddress{ID: saved[0].ID, UserID: user.ID, AddressCode: "1129010100", AddressName: "성북동"}, saved[0])
	assert.Equal(t, "성북동1가", saved[1].AddressName)

	require.NoError(t, svc.RemoveAddress(user.ID, home.Code))
	require.NoError(t, svc.RemoveAddress(user.ID, home.Code))
	assert.ErrorIs(t, svc.RemoveAddress(user.ID, "0000000000"), ErrAddressNotFound)

	saved, err = svc.SelectAddresses(user.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "1129010200", saved[0].AddressCode)
}

func TestAddressService_NearAddresses(t *testing.T) {
	env := setupTestEnv(t)
	cache := newMemoryCache()
	svc := NewAddressService(env.addresses, env.fullAddresses, cache)
	env.createAddress(t, 1817, "1129010100", "성북구", "성북동")
	env.createAddress(t, 1818, "1129010200", "성북구", "성북동1가")
	env.createAddress(t, 1, "1111010100", "종로구", "청운동")

	near, err := svc.NearAddresses(context.Background(), "1129010100")
	require.NoError(t, err)
	require.Len(t, near, 2)
	assert.Equal(t, "성북구 성북동", near[0].Address)
	assert.Equal(t, "1129010200", near[1].Code)
	assert.Contains(t, cache.entries, "11290")

	// 캐시 적중 시 DB를 다시 읽지 않는다
	env.createAddress(t, 1819, "1129010300", "성북구", "돈암동")
	cached, err := svc.NearAddresses(context.Background(), "1129099999")
	require.NoError(t, err)
	assert.Len(t, cached, 2)

	short, err := NewAddressService(env.addresses, env.fullAddresses, nil).NearAddresses(context.Background(), "111")
	require.NoError(t, err)
	assert.Len(t, short, 1)
}

func TestAddressService_NearAddressesWithRedis(t *testing.T) {
	env := setupTestEnv(t)
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := NewAddressService(env.addresses, env.fullAddresses, kiwiredis.NewCache(client, "near_address", time.Hour))
	env.createAddress(t, 1817, "1129010100", "성북구", "성북동")

	first, err := svc.NearAddresses(context.Background(), "1129010100")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, mr.Exists("near_address:11290"))

	second, err := svc.NearAddresses(context.Background(), "1129010100")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
