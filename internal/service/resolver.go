package service

import (
	"context"

	"finsight/internal/models"
	"finsight/internal/txfilter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mode is the outcome of the data-source decision. LiveEmpty is deliberately
// distinct from Demo: a live user with no rows sees "no transactions yet",
// never synthetic data.
type Mode int

const (
	ModeDemo Mode = iota
	ModeLiveWithData
	ModeLiveEmpty
)

func (m Mode) String() string {
	switch m {
	case ModeLiveWithData:
		return "live"
	case ModeLiveEmpty:
		return "live_empty"
	default:
		return "demo"
	}
}

// TransactionStore is the persistent-store collaborator boundary.
type TransactionStore interface {
	CountAll(ctx context.Context) (int, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int, error)
	Find(ctx context.Context, userID uuid.UUID, f txfilter.Filter) (int, []models.Transaction, error)
}

// PreferenceStore reads the per-user persisted demo/live preference.
type PreferenceStore interface {
	DemoPreference(ctx context.Context, userID uuid.UUID) (models.DemoPreference, error)
}

// UserDirectory locates a data-owning user when no session is available.
type UserDirectory interface {
	AnyWithData(ctx context.Context) (*models.User, error)
}

// SessionProvider resolves the current user, returning nil without error
// when no session exists.
type SessionProvider interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// BankDataProvider is the external aggregation collaborator. SyncAll is
// idempotent; its errors are never fatal here.
type BankDataProvider interface {
	SyncAll(ctx context.Context, userID uuid.UUID) error
}

type ResolverConfig struct {
	ForceDemo          bool
	CredentialsPresent bool
}

// ModeResolver owns the ordered decision table choosing between the
// synthetic dataset and the live store.
type ModeResolver struct {
	cfg      ResolverConfig
	store    TransactionStore
	prefs    PreferenceStore
	users    UserDirectory
	session  SessionProvider
	provider BankDataProvider
	logger   *zap.Logger
}

func NewModeResolver(
	cfg ResolverConfig,
	store TransactionStore,
	prefs PreferenceStore,
	users UserDirectory,
	session SessionProvider,
	provider BankDataProvider,
	logger *zap.Logger,
) *ModeResolver {
	return &ModeResolver{
		cfg:      cfg,
		store:    store,
		prefs:    prefs,
		users:    users,
		session:  session,
		provider: provider,
		logger:   logger,
	}
}

// Resolve walks the precedence order:
//
//  1. deployment force-demo flag
//  2. missing or placeholder provider credentials
//  3. the user's persisted preference, when set
//  4. real rows existing anywhere in the store
//  5. no resolvable session
//  6. live, with a one-shot sync when the user has zero rows
//
// Collaborator failures degrade to "zero rows" / "no user"; they never
// surface as errors and never silently substitute demo data on a live path.
func (r *ModeResolver) Resolve(ctx context.Context) (Mode, *models.User) {
	if r.cfg.ForceDemo {
		return ModeDemo, nil
	}
	if !r.cfg.CredentialsPresent {
		return ModeDemo, nil
	}

	user, err := r.session.CurrentUser(ctx)
	if err != nil {
		r.logger.Warn("Session lookup failed", zap.Error(err))
		user = nil
	}

	if user != nil {
		pref, err := r.prefs.DemoPreference(ctx, user.ID)
		if err != nil {
			r.logger.Warn("Could not read demo preference", zap.Error(err))
			pref = models.DemoPreferenceUnset
		}
		switch pref {
		case models.DemoPreferenceDemo:
			return ModeDemo, user
		case models.DemoPreferenceLive:
			return r.resolveLive(ctx, user)
		}
	}

	storeCount, err := r.store.CountAll(ctx)
	if err != nil {
		r.logger.Warn("Could not probe store for real data", zap.Error(err))
		storeCount = 0
	}
	if storeCount > 0 {
		if user == nil {
			// Rows exist but no session: serve the data-owning user rather
			// than fabricating a dataset.
			owner, err := r.users.AnyWithData(ctx)
			if err != nil || owner == nil {
				if err != nil {
					r.logger.Warn("Could not find data-owning user", zap.Error(err))
				}
				return ModeDemo, nil
			}
			user = owner
		}
		return r.resolveLive(ctx, user)
	}

	if user == nil {
		return ModeDemo, nil
	}
	return r.resolveLive(ctx, user)
}

// resolveLive distinguishes LiveWithData from LiveEmpty, attempting one
// synchronization round trip before concluding the user has no rows.
func (r *ModeResolver) resolveLive(ctx context.Context, user *models.User) (Mode, *models.User) {
	count, err := r.store.CountForUser(ctx, user.ID)
	if err != nil {
		r.logger.Warn("Could not count user transactions", zap.Error(err))
		count = 0
	}
	if count > 0 {
		return ModeLiveWithData, user
	}

	if err := r.provider.SyncAll(ctx, user.ID); err != nil {
		r.logger.Warn("Provider sync failed, treating as zero rows",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	count, err = r.store.CountForUser(ctx, user.ID)
	if err != nil {
		r.logger.Warn("Recount after sync failed", zap.Error(err))
		count = 0
	}
	if count == 0 {
		return ModeLiveEmpty, user
	}
	return ModeLiveWithData, user
}
