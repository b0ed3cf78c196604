package queue_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/client/client"
	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openRepos(t *testing.T, path string) *client.Repositories {
	t.Helper()
	repos, err := client.InitDatabase(context.Background(), path)
	require.NoError(t, err)
	return repos
}

func mutation(kind models.MutationKind, table, targetID string, payload []byte) *models.QueuedMutation {
	return &models.QueuedMutation{
		Kind:       kind,
		Table:      table,
		TargetID:   targetID,
		Payload:    payload,
		EnqueuedAt: time.Now().UTC(),
	}
}

func TestQueue_EnqueueAssignsAscendingSeq(t *testing.T) {
	repos := openRepos(t, filepath.Join(t.TempDir(), "test.db"))
	defer repos.Close()
	ctx := context.Background()

	m1 := mutation(models.MutationAdd, common.TableExpenses, "local-1", []byte(`{"a":1}`))
	m2 := mutation(models.MutationUpdate, common.TableExpenses, "local-1", []byte(`{"a":2}`))
	require.NoError(t, repos.Queue.Enqueue(ctx, m1))
	require.NoError(t, repos.Queue.Enqueue(ctx, m2))

	assert.Greater(t, m2.Seq, m1.Seq)
}

func TestQueue_DrainInOrderFiltersByTable(t *testing.T) {
	repos := openRepos(t, filepath.Join(t.TempDir(), "test.db"))
	defer repos.Close()
	ctx := context.Background()

	require.NoError(t, repos.Queue.Enqueue(ctx, mutation(models.MutationAdd, common.TableExpenses, "local-1", []byte(`{}`))))
	require.NoError(t, repos.Queue.Enqueue(ctx, mutation(models.MutationAdd, common.TableReminders, "local-2", []byte(`{}`))))
	require.NoError(t, repos.Queue.Enqueue(ctx, mutation(models.MutationUpdate, common.TableExpenses, "local-1", []byte(`{}`))))

	muts, err := repos.Queue.DrainInOrder(ctx, common.TableExpenses)
	require.NoError(t, err)
	require.Len(t, muts, 2)
	assert.Equal(t, models.MutationAdd, muts[0].Kind)
	assert.Equal(t, models.MutationUpdate, muts[1].Kind)
	assert.Less(t, muts[0].Seq, muts[1].Seq)
}

func TestQueue_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	repos := openRepos(t, path)
	require.NoError(t, repos.Queue.Enqueue(ctx, mutation(models.MutationAdd, common.TableExpenses, "local-1", []byte(`{"amount":"42"}`))))
	require.NoError(t, repos.Queue.Enqueue(ctx, mutation(models.MutationDelete, common.TableExpenses, "srv-9", nil)))
	require.NoError(t, repos.Close())

	reopened := openRepos(t, path)
	defer reopened.Close()

	muts, err := reopened.Queue.DrainInOrder(ctx, common.TableExpenses)
	require.NoError(t, err)
	require.Len(t, muts, 2, "queued mutations survive a restart")
	assert.Equal(t, models.MutationAdd, muts[0].Kind)
	assert.Equal(t, []byte(`{"amount":"42"}`), []byte(muts[0].Payload))
	assert.Equal(t, models.MutationDelete, muts[1].Kind)
	assert.Empty(t, muts[1].Payload)
}

func TestQueue_RemoveIsExact(t *testing.T) {
	repos := openRepos(t, filepath.Join(t.TempDir(), "test.db"))
	defer repos.Close()
	ctx := context.Background()

	m := mutation(models.MutationAdd, common.TableExpenses, "local-1", []byte(`{}`))
	require.NoError(t, repos.Queue.Enqueue(ctx, m))

	require.NoError(t, repos.Queue.Remove(ctx, m.Seq))
	assert.Error(t, repos.Queue.Remove(ctx, m.Seq), "removing twice must fail")

	n, err := repos.Queue.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQueue_RemoveForTargetCompacts(t *testing.T) {
	repos := openRepos(t, filepath.Join(t.TempDir(), "test.db"))
	defer repos.Close()
	ctx := context.Background()

	require.NoError(t, repos.Queue.Enqueue(ctx, mutation(models.MutationAdd, common.TableExpenses, "local-1", []byte(`{}`))))
	require.NoError(t, repos.Queue.Enqueue(ctx, mutation(models.MutationUpdate, common.TableExpenses, "local-1", []byte(`{}`))))
	require.NoError(t, repos.Queue.Enqueue(ctx, mutation(models.MutationAdd, common.TableExpenses, "local-2", []byte(`{}`))))

	removed, err := repos.Queue.RemoveForTarget(ctx, common.TableExpenses, "local-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	muts, err := repos.Queue.DrainInOrder(ctx, common.TableExpenses)
	require.NoError(t, err)
	require.Len(t, muts, 1)
	assert.Equal(t, "local-2", muts[0].TargetID)
}
