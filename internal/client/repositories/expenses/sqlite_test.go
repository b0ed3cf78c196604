package expenses_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/client/client"
	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestExpenseCache_ReplaceAllAndGetAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	repos, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	items := []*models.Expense{
		{ID: "srv-1", Description: "groceries", Amount: decimal.RequireFromString("42.50"),
			Category: "food", SpentBy: "alice", SpentAt: now, CreatedAt: now},
		{ID: "srv-2", Description: "refunded jacket", Amount: decimal.RequireFromString("30"),
			Category: "clothes", SpentBy: "bob", SpentAt: now, Refund: true,
			ReceiptKey: "receipts/2025/09/01/abc", CreatedAt: now},
	}
	require.NoError(t, repos.Expenses.ReplaceAll(ctx, items))

	// the cache is durable: reopen the file and read it back
	require.NoError(t, repos.Close())
	repos, err = client.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer repos.Close()

	got, err := repos.Expenses.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[string]*models.Expense{got[0].ID: got[0], got[1].ID: got[1]}
	first := byID["srv-1"]
	require.NotNil(t, first)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, "alice", first.SpentBy)
	assert.False(t, first.Refund)

	second := byID["srv-2"]
	require.NotNil(t, second)
	assert.True(t, second.Refund)
	assert.Equal(t, "receipts/2025/09/01/abc", second.ReceiptKey)

	// ReplaceAll swaps the whole snapshot
	require.NoError(t, repos.Expenses.ReplaceAll(ctx, items[:1]))
	got, err = repos.Expenses.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
