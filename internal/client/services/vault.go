package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rishank14/serenityspace-cli/internal/client/api"
	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/client/session"
	"github.com/rishank14/serenityspace-cli/internal/client/vault"
	"github.com/rishank14/serenityspace-cli/internal/common"
	"github.com/rishank14/serenityspace-cli/internal/logging"
)

// VaultService fronts the message vault: remote CRUD plus the local
// reconciler that keeps the upcoming/delivered partition current.
type VaultService interface {
	// Refresh replaces local state with a fresh bulk fetch.
	Refresh(ctx context.Context) error
	Create(ctx context.Context, message string, deliverAt time.Time) (models.VaultEntry, error)
	Update(ctx context.Context, id, message string, deliverAt time.Time) (models.VaultEntry, error)
	Delete(ctx context.Context, id string) error
	Snapshot() (upcoming, delivered []models.VaultEntry, highlighted map[string]bool)
	// Start launches the background sweep and the push subscriber. The
	// returned stop function cancels both and blocks until they exit.
	Start(ctx context.Context) (stop func(), err error)
}

type vaultService struct {
	client        api.Client
	session       *session.Session
	reconciler    *vault.Reconciler
	wsURL         string
	sweepInterval time.Duration
	log           logging.Logger
	now           func() time.Time
}

func NewVaultService(client api.Client, sess *session.Session, rec *vault.Reconciler,
	wsURL string, sweepInterval time.Duration, log logging.Logger) VaultService {
	if sweepInterval <= 0 {
		sweepInterval = vault.DefaultSweepInterval
	}
	return &vaultService{
		client:        client,
		session:       sess,
		reconciler:    rec,
		wsURL:         wsURL,
		sweepInterval: sweepInterval,
		log:           log.With("component", "vault-service"),
		now:           time.Now,
	}
}

func (s *vaultService) Refresh(ctx context.Context) error {
	return s.reconciler.LoadInitial(ctx, s.session.UserID())
}

// validateDeliverAt enforces the scheduling rule at minute precision: the
// current minute (and everything before it) is rejected, the next minute on
// is accepted.
func (s *vaultService) validateDeliverAt(deliverAt time.Time) error {
	if !deliverAt.After(s.now().Truncate(time.Minute)) {
		return common.ErrDeliverAtNotFuture
	}
	return nil
}

func (s *vaultService) Create(ctx context.Context, message string, deliverAt time.Time) (models.VaultEntry, error) {
	if strings.TrimSpace(message) == "" {
		return models.VaultEntry{}, ErrEmptyMessage
	}
	if err := s.validateDeliverAt(deliverAt); err != nil {
		return models.VaultEntry{}, err
	}

	entry, err := s.client.CreateVault(ctx, message, deliverAt)
	if err != nil {
		return models.VaultEntry{}, err
	}
	s.reconciler.OnFormSubmitSuccess(entry)
	return entry, nil
}

func (s *vaultService) Update(ctx context.Context, id, message string, deliverAt time.Time) (models.VaultEntry, error) {
	if strings.TrimSpace(message) == "" {
		return models.VaultEntry{}, ErrEmptyMessage
	}
	if err := s.validateDeliverAt(deliverAt); err != nil {
		return models.VaultEntry{}, err
	}

	entry, err := s.client.UpdateVault(ctx, id, message, deliverAt)
	if err != nil {
		return models.VaultEntry{}, err
	}
	s.reconciler.OnFormSubmitSuccess(entry)
	return entry, nil
}

// Delete removes the entry on the server first; local state is only touched
// once the remote delete succeeded.
func (s *vaultService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteVault(ctx, id); err != nil {
		return err
	}
	s.reconciler.Delete(id)
	return nil
}

func (s *vaultService) Snapshot() (upcoming, delivered []models.VaultEntry, highlighted map[string]bool) {
	return s.reconciler.Snapshot()
}

func (s *vaultService) Start(ctx context.Context) (func(), error) {
	userID := s.session.UserID()
	if userID == "" {
		return nil, common.ErrNotSignedIn
	}

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.reconciler.Run(runCtx, s.sweepInterval)
	}()

	if s.wsURL != "" {
		sub := vault.NewSubscriber(s.wsURL, userID, s.reconciler, s.log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub.Run(runCtx)
		}()
	}

	return func() {
		cancel()
		wg.Wait()
	}, nil
}
