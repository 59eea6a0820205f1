package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dfquintero/sportstore-gateway/internal/cart"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreLoad(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		entries := []models.CartEntry{{
			Product:  models.Product{ID: "1", Name: "Balón"},
			Variant:  models.Variant{SKU: "BAL-5", SalePrice: 89000},
			Quantity: 2,
		}}
		itemsJSON, err := json.Marshal(entries)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT items\s+FROM carts\s+WHERE session_key = \$1`).
			WithArgs("sess-1").
			WillReturnRows(sqlmock.NewRows([]string{"items"}).AddRow(itemsJSON))

		store := cart.NewPostgresStore(db)

		// Act
		loaded, err := store.Load(context.Background(), "sess-1")

		// Assert
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "BAL-5", loaded[0].Variant.SKU)
		assert.Equal(t, 2, loaded[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Row Is An Empty Cart", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT items\s+FROM carts`).
			WithArgs("sess-1").
			WillReturnRows(sqlmock.NewRows([]string{"items"}))

		store := cart.NewPostgresStore(db)

		// Act
		loaded, err := store.Load(context.Background(), "sess-1")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, loaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Corrupt Snapshot Is Discarded", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT items\s+FROM carts`).
			WithArgs("sess-1").
			WillReturnRows(sqlmock.NewRows([]string{"items"}).AddRow([]byte(`{not json`)))

		store := cart.NewPostgresStore(db)

		// Act
		loaded, err := store.Load(context.Background(), "sess-1")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, loaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Query Error", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT items\s+FROM carts`).
			WithArgs("sess-1").
			WillReturnError(errors.New("connection reset"))

		store := cart.NewPostgresStore(db)

		// Act
		_, err = store.Load(context.Background(), "sess-1")

		// Assert
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStoreSave(t *testing.T) {
	t.Run("Success - Upserts The Snapshot", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		entries := []models.CartEntry{{
			Product:  models.Product{ID: "1"},
			Variant:  models.Variant{SKU: "A"},
			Quantity: 1,
		}}
		itemsJSON, err := json.Marshal(entries)
		require.NoError(t, err)

		mock.ExpectExec(`(?s)INSERT INTO carts.*ON CONFLICT \(session_key\)`).
			WithArgs("sess-1", itemsJSON, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		store := cart.NewPostgresStore(db)

		// Act & Assert
		require.NoError(t, store.Save(context.Background(), "sess-1", entries))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nil Entries Persist As Empty Array", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO carts`).
			WithArgs("sess-1", []byte(`[]`), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		store := cart.NewPostgresStore(db)

		// Act & Assert
		require.NoError(t, store.Save(context.Background(), "sess-1", nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Exec Error", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO carts`).
			WillReturnError(errors.New("disk full"))

		store := cart.NewPostgresStore(db)

		// Act & Assert
		require.Error(t, store.Save(context.Background(), "sess-1", nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStoreDelete(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM carts\s+WHERE session_key = \$1`).
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := cart.NewPostgresStore(db)

	// Act & Assert
	require.NoError(t, store.Delete(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
