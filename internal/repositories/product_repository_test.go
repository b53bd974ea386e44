package repositories_test

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"productapi/internal/apperrors"
	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// backends lists both repository implementations so every contract test
// below runs against each of them. Identical observable behavior across
// the two is the core property of the dual-backend design.
var backends = []struct {
	name string
	new  func(db *gorm.DB) repositories.ProductRepository
}{
	{"gorm", func(db *gorm.DB) repositories.ProductRepository { return repositories.NewGORMProductRepository(db) }},
	{"template", func(db *gorm.DB) repositories.ProductRepository { return repositories.NewTemplateProductRepository(db) }},
}

var testDBCounter atomic.Int64

// setupTestDB opens a fresh in-memory SQLite database per test. Each
// database gets a unique name so shared-cache connections from the pool
// see the same data without leaking state between tests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func createInput(name, description string, price float64) models.ProductCreate {
	return models.ProductCreate{Name: name, Description: description, Price: floatPtr(price)}
}

func TestProductRepository_CreateGetRoundTrip(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			repo := backend.new(setupTestDB(t))

			created, err := repo.Create(createInput("Laptop", "High performance laptop", 1200.00))
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.Equal(t, "Laptop", created.Name)
			assert.Equal(t, "High performance laptop", created.Description)
			assert.Equal(t, 1200.00, created.Price)

			fetched, err := repo.Get(created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, fetched)
		})
	}
}

func TestProductRepository_ListPagination(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			repo := backend.new(setupTestDB(t))

			for _, name := range []string{"A", "B", "C"} {
				_, err := repo.Create(createInput(name, "", 10.0))
				require.NoError(t, err)
			}

			firstPage, err := repo.List(0, 2)
			require.NoError(t, err)
			require.Len(t, firstPage, 2)
			assert.Equal(t, "A", firstPage[0].Name)
			assert.Equal(t, "B", firstPage[1].Name)

			secondPage, err := repo.List(2, 2)
			require.NoError(t, err)
			require.Len(t, secondPage, 1)
			assert.Equal(t, "C", secondPage[0].Name)

			pastEnd, err := repo.List(10, 2)
			require.NoError(t, err)
			assert.Empty(t, pastEnd)
		})
	}
}

func TestProductRepository_ListRejectsNegativeBounds(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			repo := backend.new(setupTestDB(t))

			_, err := repo.List(-1, 10)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

			_, err = repo.List(0, -1)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
}

func TestProductRepository_UpdatePartialMerge(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			repo := backend.new(setupTestDB(t))

			created, err := repo.Create(createInput("Keyboard", "Mechanical keyboard", 75.00))
			require.NoError(t, err)

			// Only price supplied: name and description must survive.
			updated, err := repo.Update(created.ID, models.ProductUpdate{Price: floatPtr(60.00)})
			require.NoError(t, err)
			assert.Equal(t, "Keyboard", updated.Name)
			assert.Equal(t, "Mechanical keyboard", updated.Description)
			assert.Equal(t, 60.00, updated.Price)

			// Description explicitly set to empty is a clear, not an omission.
			updated, err = repo.Update(created.ID, models.ProductUpdate{Description: strPtr("")})
			require.NoError(t, err)
			assert.Equal(t, "Keyboard", updated.Name)
			assert.Equal(t, "", updated.Description)
			assert.Equal(t, 60.00, updated.Price)

			fetched, err := repo.Get(created.ID)
			require.NoError(t, err)
			assert.Equal(t, updated, fetched)
		})
	}
}

func TestProductRepository_UpdateEmptyPatch(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			repo := backend.new(setupTestDB(t))

			created, err := repo.Create(createInput("Mouse", "Wireless mouse", 25.00))
			require.NoError(t, err)

			updated, err := repo.Update(created.ID, models.ProductUpdate{})
			require.NoError(t, err)
			assert.Equal(t, created, updated)
		})
	}
}

func TestProductRepository_MissingID(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			repo := backend.new(setupTestDB(t))

			_, err := repo.Get(99)
			assert.ErrorIs(t, err, apperrors.ErrNotFound)

			_, err = repo.Update(99, models.ProductUpdate{Name: strPtr("Ghost")})
			assert.ErrorIs(t, err, apperrors.ErrNotFound)

			_, err = repo.Delete(99)
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
		})
	}
}

func TestProductRepository_DeleteReturnsPriorState(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			repo := backend.new(setupTestDB(t))

			created, err := repo.Create(createInput("Monitor", "27 inch monitor", 200.00))
			require.NoError(t, err)

			deleted, err := repo.Delete(created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, deleted)

			_, err = repo.Get(created.ID)
			assert.ErrorIs(t, err, apperrors.ErrNotFound)

			// Deleting again reports absence, never silent success.
			_, err = repo.Delete(created.ID)
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
		})
	}
}

func TestProductRepository_FindByName(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			repo := backend.new(setupTestDB(t))

			created, err := repo.Create(createInput("Laptop", "", 1200.00))
			require.NoError(t, err)

			found, err := repo.FindByName("Laptop")
			require.NoError(t, err)
			assert.Equal(t, created, found)

			// Exact match only; SQLite TEXT comparison is case-sensitive.
			_, err = repo.FindByName("laptop")
			assert.ErrorIs(t, err, apperrors.ErrNotFound)

			_, err = repo.FindByName("Desktop")
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
		})
	}
}

// TestProductRepository_BackendParity drives both backends through an
// identical operation sequence on separate databases and asserts the
// observable results match entity for entity and error kind for error kind.
func TestProductRepository_BackendParity(t *testing.T) {
	type outcome struct {
		products []models.Product
		entities []*models.Product
		errs     []error
	}

	run := func(repo repositories.ProductRepository) outcome {
		var out outcome
		record := func(p *models.Product, err error) {
			out.entities = append(out.entities, p)
			out.errs = append(out.errs, err)
		}

		record(repo.Create(createInput("Laptop", "High performance laptop", 1200.00)))
		record(repo.Create(createInput("Keyboard", "Mechanical keyboard", 75.00)))
		record(repo.Create(createInput("Mouse", "", 25.00)))
		record(repo.Update(2, models.ProductUpdate{Price: floatPtr(80.00), Description: strPtr("")}))
		record(repo.Delete(1))
		record(repo.Get(1))
		record(repo.Update(99, models.ProductUpdate{Name: strPtr("Ghost")}))
		record(repo.FindByName("Mouse"))

		products, err := repo.List(0, 10)
		out.errs = append(out.errs, err)
		out.products = products
		return out
	}

	gormOut := run(repositories.NewGORMProductRepository(setupTestDB(t)))
	templateOut := run(repositories.NewTemplateProductRepository(setupTestDB(t)))

	require.Equal(t, len(gormOut.errs), len(templateOut.errs))
	for i := range gormOut.errs {
		if gormOut.errs[i] == nil {
			assert.NoError(t, templateOut.errs[i], "step %d", i)
			continue
		}
		// Same error kind, not necessarily the same message.
		for _, kind := range []error{apperrors.ErrNotFound, apperrors.ErrInvalidArgument, apperrors.ErrStorageUnavailable} {
			assert.Equal(t, errors.Is(gormOut.errs[i], kind), errors.Is(templateOut.errs[i], kind), "step %d kind %v", i, kind)
		}
	}
	assert.Equal(t, gormOut.entities, templateOut.entities)
	assert.Equal(t, gormOut.products, templateOut.products)
}
