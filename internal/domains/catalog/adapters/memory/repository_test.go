package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/domain"
	"github.com/johithjpr-lab/ecommerce-platform/internal/domains/catalog/ports"
)

func seedProduct(t *testing.T, repo *Repository, inventory int) *domain.Product {
	t.Helper()
	product, err := repo.Save(context.Background(), &domain.Product{
		Name:      "Aurora Buds Pro",
		Price:     decimal.RequireFromString("500.00"),
		Inventory: inventory,
		Active:    true,
	})
	require.NoError(t, err)
	return product
}

func TestDecrement_Conditional(t *testing.T) {
	repo := NewRepository()
	product := seedProduct(t, repo, 5)

	require.NoError(t, repo.Decrement(context.Background(), product.ID, 3))

	err := repo.Decrement(context.Background(), product.ID, 3)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	updated, err := repo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, updated.Inventory, "failed decrement leaves the counter untouched")
}

func TestDecrement_RejectsBadInput(t *testing.T) {
	repo := NewRepository()
	product := seedProduct(t, repo, 5)

	require.ErrorIs(t, repo.Decrement(context.Background(), product.ID, 0), domain.ErrInvalidQuantity)

	other := seedProduct(t, repo, 5)
	require.NoError(t, repo.Decrement(context.Background(), other.ID, 5))
}

func TestDecrement_ConcurrentBuyersNeverOversell(t *testing.T) {
	repo := NewRepository()
	product := seedProduct(t, repo, 10)

	var wg sync.WaitGroup
	successes := make(chan struct{}, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Decrement(context.Background(), product.ID, 1); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	require.Equal(t, 10, count)

	updated, err := repo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, 0, updated.Inventory)
}

func TestList_ActiveOnly(t *testing.T) {
	repo := NewRepository()
	seedProduct(t, repo, 5)
	_, err := repo.Save(context.Background(), &domain.Product{
		Name:  "Retired Gadget",
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	active, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, active, 1)

	all, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
