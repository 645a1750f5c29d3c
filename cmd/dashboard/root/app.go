package root

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/client/api"
	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/client/mutation"
	"github.com/productivity-app/backend/internal/client/query"
	"github.com/productivity-app/backend/internal/client/session"
	"github.com/productivity-app/backend/internal/client/ui"
	"github.com/productivity-app/backend/internal/infra/logger"
)

// SessionExpiredMessage is shown when the server rejects the stored token.
const SessionExpiredMessage = "Session expired. Please log in again."

var errNotLoggedIn = errors.New("not logged in: run `dashboard login` first")

// app is the client stack one command runs against.
type app struct {
	session     *session.Session
	client      *api.Client
	cache       *query.Cache
	goals       query.Typed[[]model.Goal]
	checkpoints query.Typed[[]model.Checkpoint]
	buddies     query.Typed[[]model.BuddyRequest]
	mutations   *mutation.Orchestrator
	notifier    *ui.Notifier
}

func openApp(cmd *cobra.Command, cfg *config.Config, opts *globalOptions) (*app, func(), error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log, err := logger.Init(cmd.ErrOrStderr(), logger.Options{
		Development: true,
		Level:       level,
		SentryDSN:   cfg.Sentry.DSN,
	})
	if err != nil {
		return nil, nil, err
	}

	sess, err := session.New(session.NewFileStore(opts.sessionFile))
	if err != nil {
		return nil, nil, err
	}
	client, err := api.NewClient(api.Config{
		BaseURL: opts.apiURL,
		Timeout: cfg.Client.RequestTimeout,
		Logger:  log,
	}, sess)
	if err != nil {
		return nil, nil, err
	}

	cache := query.New(query.WithStaleTime(cfg.Client.StaleTime), query.WithLogger(log))
	notifier := ui.NewNotifier(cmd.OutOrStdout())
	confirmer := ui.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	if opts.yes {
		confirmer.AssumeYes()
	}

	unsubscribe := sess.OnInvalidate(func() {
		notifier.Error(SessionExpiredMessage)
	})

	return &app{
		session:     sess,
		client:      client,
		cache:       cache,
		goals:       query.NewTyped[[]model.Goal](cache),
		checkpoints: query.NewTyped[[]model.Checkpoint](cache),
		buddies:     query.NewTyped[[]model.BuddyRequest](cache),
		mutations:   mutation.New(mutation.ServicesFor(client), cache, notifier, confirmer),
		notifier:    notifier,
	}, func() {
		unsubscribe()
		logger.Flush()
	}, nil
}

// withApp wraps a command body that needs the client stack.
func withApp(cfg *config.Config, opts *globalOptions, run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd, cfg, opts)
		if err != nil {
			return err
		}
		defer cleanup()
		return run(cmd, a, args)
	}
}

func (a *app) userID() (uuid.UUID, error) {
	id, ok := a.session.UserID()
	if !ok || !a.session.Authenticated() {
		return uuid.Nil, errNotLoggedIn
	}
	return id, nil
}

func goalsKey(userID uuid.UUID) query.Key {
	return query.Key{Family: query.Goals, Scope: userID.String()}
}

func checkpointsKey(goalID uuid.UUID) query.Key {
	scope := "all"
	if goalID != uuid.Nil {
		scope = goalID.String()
	}
	return query.Key{Family: query.Checkpoints, Scope: scope}
}

func buddiesKey(userID uuid.UUID) query.Key {
	return query.Key{Family: query.BuddyRequests, Scope: userID.String()}
}

func (a *app) fetchGoals(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	snap, err := a.goals.Fetch(ctx, goalsKey(userID), func(ctx context.Context) ([]model.Goal, error) {
		return a.client.Goals().ListByUser(ctx, userID)
	})
	return snap.Data, err
}

func (a *app) fetchCheckpoints(ctx context.Context, goalID uuid.UUID) ([]model.Checkpoint, error) {
	snap, err := a.checkpoints.Fetch(ctx, checkpointsKey(goalID), func(ctx context.Context) ([]model.Checkpoint, error) {
		return a.client.Checkpoints().List(ctx, goalID)
	})
	return snap.Data, err
}

func (a *app) fetchBuddyRequests(ctx context.Context, userID uuid.UUID) ([]model.BuddyRequest, error) {
	snap, err := a.buddies.Fetch(ctx, buddiesKey(userID), func(ctx context.Context) ([]model.BuddyRequest, error) {
		return a.client.Buddies().List(ctx)
	})
	return snap.Data, err
}

// overview is everything the dashboard screen shows.
type overview struct {
	goals       []model.Goal
	checkpoints []model.Checkpoint
	requests    []model.BuddyRequest
}

func (a *app) fetchOverview(ctx context.Context, userID uuid.UUID) (*overview, error) {
	var o overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		o.goals, err = a.fetchGoals(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		o.checkpoints, err = a.fetchCheckpoints(ctx, uuid.Nil)
		return err
	})
	g.Go(func() error {
		var err error
		o.requests, err = a.fetchBuddyRequests(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}

// parseID parses a uuid argument, naming it in the error.
func parseID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name + ": " + value)
	}
	return id, nil
}
