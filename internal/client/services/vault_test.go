package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/client/vault"
	"github.com/rishank14/serenityspace-cli/internal/common"
)

type noopNotifier struct{}

func (noopNotifier) EntryDelivered(models.VaultEntry) {}

type countingNotifier struct {
	mu sync.Mutex
	n  int
}

func (c *countingNotifier) EntryDelivered(models.VaultEntry) {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *countingNotifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func newVaultService(t *testing.T, client *fakeClient) (*vaultService, *vault.Reconciler) {
	t.Helper()
	rec := vault.NewReconciler(client, noopNotifier{}, testLogger())
	svc := NewVaultService(client, signedInSession("u1"), rec, "", time.Minute, testLogger()).(*vaultService)
	return svc, rec
}

func TestVaultService_CreateRejectsNonFutureTime(t *testing.T) {
	svc, _ := newVaultService(t, &fakeClient{})
	base := time.Date(2026, 3, 1, 10, 30, 45, 0, time.UTC)
	svc.now = func() time.Time { return base }

	cases := []struct {
		name      string
		deliverAt time.Time
		wantErr   error
	}{
		{name: "past", deliverAt: base.Add(-time.Hour), wantErr: common.ErrDeliverAtNotFuture},
		{name: "start of current minute", deliverAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), wantErr: common.ErrDeliverAtNotFuture},
		{name: "next minute", deliverAt: time.Date(2026, 3, 1, 10, 31, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc.client = &fakeClient{
				createVaultFunc: func(ctx context.Context, message string, deliverAt time.Time) (models.VaultEntry, error) {
					return models.VaultEntry{ID: "v1", Message: message, DeliverAt: deliverAt}, nil
				},
			}
			_, err := svc.Create(context.Background(), "future me", tc.deliverAt)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVaultService_CreateRejectsEmptyMessage(t *testing.T) {
	svc, _ := newVaultService(t, &fakeClient{})
	_, err := svc.Create(context.Background(), "   ", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestVaultService_CreateFeedsReconciler(t *testing.T) {
	deliverAt := time.Now().Add(2 * time.Hour)
	client := &fakeClient{
		createVaultFunc: func(ctx context.Context, message string, deliverAt time.Time) (models.VaultEntry, error) {
			return models.VaultEntry{ID: "v1", Message: message, DeliverAt: deliverAt}, nil
		},
	}
	svc, rec := newVaultService(t, client)

	entry, err := svc.Create(context.Background(), "hold on", deliverAt)
	require.NoError(t, err)
	assert.Equal(t, "v1", entry.ID)

	upcoming, delivered, _ := rec.Snapshot()
	require.Len(t, upcoming, 1)
	assert.Empty(t, delivered)
	assert.Equal(t, "v1", upcoming[0].ID)
}

func TestVaultService_DeleteKeepsLocalStateOnRemoteFailure(t *testing.T) {
	client := &fakeClient{
		deleteVaultFunc: func(ctx context.Context, id string) error { return common.ErrorInternal },
	}
	svc, rec := newVaultService(t, client)
	rec.OnFormSubmitSuccess(models.VaultEntry{ID: "v1", Message: "m", DeliverAt: time.Now().Add(time.Hour)})

	err := svc.Delete(context.Background(), "v1")
	require.Error(t, err)

	upcoming, _, _ := rec.Snapshot()
	assert.Len(t, upcoming, 1)
}

func TestVaultService_DeleteRemovesLocally(t *testing.T) {
	client := &fakeClient{
		deleteVaultFunc: func(ctx context.Context, id string) error { return nil },
	}
	svc, rec := newVaultService(t, client)
	rec.OnFormSubmitSuccess(models.VaultEntry{ID: "v1", Message: "m", DeliverAt: time.Now().Add(time.Hour)})

	require.NoError(t, svc.Delete(context.Background(), "v1"))

	upcoming, delivered, _ := rec.Snapshot()
	assert.Empty(t, upcoming)
	assert.Empty(t, delivered)
}

func TestVaultService_RefreshUsesSessionUser(t *testing.T) {
	var gotUser string
	client := &fakeClient{
		upcomingFunc: func(ctx context.Context, userID string) ([]models.VaultEntry, error) {
			gotUser = userID
			return nil, nil
		},
		deliveredFunc: func(ctx context.Context, userID string) ([]models.VaultEntry, error) {
			return nil, nil
		},
	}
	svc, _ := newVaultService(t, client)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, "u1", gotUser)
}

func TestVaultService_StartRequiresSignIn(t *testing.T) {
	client := &fakeClient{}
	rec := vault.NewReconciler(client, noopNotifier{}, testLogger())
	svc := NewVaultService(client, nil, rec, "", time.Minute, testLogger())

	// Replace the nil session with an empty one.
	svc.(*vaultService).session = signedOutSession()

	_, err := svc.Start(context.Background())
	assert.ErrorIs(t, err, common.ErrNotSignedIn)
}

func TestVaultService_StartRunsSweepUntilStopped(t *testing.T) {
	notifier := &countingNotifier{}
	client := &fakeClient{}
	rec := vault.NewReconciler(client, notifier, testLogger())
	rec.OnFormSubmitSuccess(models.VaultEntry{ID: "v1", Message: "m", DeliverAt: time.Now().Add(5 * time.Millisecond)})

	svc := NewVaultService(client, signedInSession("u1"), rec, "", 20*time.Millisecond, testLogger())

	stop, err := svc.Start(context.Background())
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return notifier.count() == 1 },
		2*time.Second, 10*time.Millisecond)

	stop()

	_, delivered, _ := rec.Snapshot()
	require.Len(t, delivered, 1)
	assert.Equal(t, "v1", delivered[0].ID)
}
