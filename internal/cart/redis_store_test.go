package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dfquintero/sportstore-gateway/internal/cart"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cartTTL = 30 * 24 * time.Hour

func TestRedisStoreLoad(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := cart.NewRedisStore(client, "cart:", cartTTL)

		entries := []models.CartEntry{{
			Product:  models.Product{ID: "1", Name: "Balón"},
			Variant:  models.Variant{SKU: "BAL-5", SalePrice: 89000},
			Quantity: 2,
		}}
		data, err := json.Marshal(entries)
		require.NoError(t, err)

		mock.ExpectGet("cart:sess-1").SetVal(string(data))

		// Act
		loaded, err := store.Load(context.Background(), "sess-1")

		// Assert
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "BAL-5", loaded[0].Variant.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Key Is An Empty Cart", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := cart.NewRedisStore(client, "cart:", cartTTL)

		mock.ExpectGet("cart:sess-1").RedisNil()

		// Act
		loaded, err := store.Load(context.Background(), "sess-1")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, loaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Corrupt Snapshot Is Discarded", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := cart.NewRedisStore(client, "cart:", cartTTL)

		mock.ExpectGet("cart:sess-1").SetVal(`{not json`)

		// Act
		loaded, err := store.Load(context.Background(), "sess-1")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, loaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := cart.NewRedisStore(client, "cart:", cartTTL)

		mock.ExpectGet("cart:sess-1").SetErr(errors.New("connection refused"))

		// Act
		_, err := store.Load(context.Background(), "sess-1")

		// Assert
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreSave(t *testing.T) {
	t.Run("Success - Writes With TTL", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := cart.NewRedisStore(client, "cart:", cartTTL)

		entries := []models.CartEntry{{
			Product:  models.Product{ID: "1"},
			Variant:  models.Variant{SKU: "A"},
			Quantity: 1,
		}}
		data, err := json.Marshal(entries)
		require.NoError(t, err)

		mock.ExpectSet("cart:sess-1", data, cartTTL).SetVal("OK")

		// Act & Assert
		require.NoError(t, store.Save(context.Background(), "sess-1", entries))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nil Entries Persist As Empty Array", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := cart.NewRedisStore(client, "cart:", cartTTL)

		mock.ExpectSet("cart:sess-1", []byte(`[]`), cartTTL).SetVal("OK")

		// Act & Assert
		require.NoError(t, store.Save(context.Background(), "sess-1", nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := cart.NewRedisStore(client, "cart:", cartTTL)

		mock.ExpectSet("cart:sess-1", []byte(`[]`), cartTTL).SetErr(errors.New("readonly replica"))

		// Act & Assert
		require.Error(t, store.Save(context.Background(), "sess-1", nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreDelete(t *testing.T) {
	// Arrange
	client, mock := redismock.NewClientMock()
	store := cart.NewRedisStore(client, "cart:", cartTTL)

	mock.ExpectDel("cart:sess-1").SetVal(1)

	// Act & Assert
	require.NoError(t, store.Delete(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
