package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrajpatel/book-keeper/internal/config"
	"github.com/vrajpatel/book-keeper/internal/database"
	"github.com/vrajpatel/book-keeper/internal/database/books"
	"github.com/vrajpatel/book-keeper/internal/database/settings"
	"github.com/vrajpatel/book-keeper/internal/prefs"
	"github.com/vrajpatel/book-keeper/internal/remote"
	"github.com/vrajpatel/book-keeper/internal/shelves"
)

type syncFixture struct {
	scheduler *CatalogSyncScheduler
	repo      *books.Repository
	registry  *shelves.Registry
	userPrefs prefs.Store
	pushed    *pushRecorder
}

// pushRecorder counts the form posts the stand-in service receives.
type pushRecorder struct {
	mu      sync.Mutex
	shelves []string
	titles  []string
}

func (p *pushRecorder) record(r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch r.PostFormValue("tag") {
	case "add-shelf":
		p.shelves = append(p.shelves, r.PostFormValue("shelf"))
	case "add-book":
		p.titles = append(p.titles, r.PostFormValue("title"))
	}
}

func setupSyncTest(t *testing.T, cfg config.Remote) (*syncFixture, func()) {
	t.Helper()

	recorder := &pushRecorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		recorder.record(r)
		w.Write([]byte(`{"error": false}`))
	}))

	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	settingsRepo := settings.NewRepository(db.DB)
	viewPrefs := prefs.New(settingsRepo, prefs.GroupShelves)
	userPrefs := prefs.New(settingsRepo, prefs.GroupUser)
	repo := books.NewRepository(db.DB)
	registry := shelves.NewRegistry(viewPrefs)

	fixture := &syncFixture{
		scheduler: NewCatalogSyncScheduler(repo, registry, userPrefs, remote.NewClient(server.URL), cfg),
		repo:      repo,
		registry:  registry,
		userPrefs: userPrefs,
		pushed:    recorder,
	}
	cleanup := func() {
		server.Close()
		db.Close()
		os.Remove(dbPath)
	}
	return fixture, cleanup
}

func TestStart(t *testing.T) {
	t.Run("disabled sync never starts the cron", func(t *testing.T) {
		fixture, cleanup := setupSyncTest(t, config.Remote{SyncEnabled: false})
		defer cleanup()

		require.NoError(t, fixture.scheduler.Start(context.Background()))
		assert.False(t, fixture.scheduler.IsRunning())
		assert.Nil(t, fixture.scheduler.NextRunTime())
	})

	t.Run("enabled sync schedules the next run", func(t *testing.T) {
		fixture, cleanup := setupSyncTest(t, config.Remote{SyncEnabled: true, SyncSchedule: "0 * * * *"})
		defer cleanup()

		require.NoError(t, fixture.scheduler.Start(context.Background()))
		defer fixture.scheduler.Stop()

		assert.True(t, fixture.scheduler.IsRunning())
		assert.NotNil(t, fixture.scheduler.NextRunTime())
	})

	t.Run("a bad schedule is an error", func(t *testing.T) {
		fixture, cleanup := setupSyncTest(t, config.Remote{SyncEnabled: true, SyncSchedule: "not a schedule"})
		defer cleanup()

		err := fixture.scheduler.Start(context.Background())
		assert.Error(t, err)
		assert.False(t, fixture.scheduler.IsRunning())
	})

	t.Run("cancelling the context stops the scheduler", func(t *testing.T) {
		fixture, cleanup := setupSyncTest(t, config.Remote{SyncEnabled: true, SyncSchedule: "0 * * * *"})
		defer cleanup()

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, fixture.scheduler.Start(ctx))
		require.True(t, fixture.scheduler.IsRunning())

		cancel()
		assert.Eventually(t, func() bool {
			return !fixture.scheduler.IsRunning()
		}, 2*time.Second, 10*time.Millisecond)
	})
}

func TestRunSync(t *testing.T) {
	t.Run("skips when nobody is signed in", func(t *testing.T) {
		fixture, cleanup := setupSyncTest(t, config.Remote{})
		defer cleanup()

		_, err := fixture.repo.Add("Dune", "Frank Herbert", "SciFi", true)
		require.NoError(t, err)

		fixture.scheduler.runSync()
		assert.Empty(t, fixture.pushed.titles)
		assert.Empty(t, fixture.pushed.shelves)
	})

	t.Run("pushes every shelf and book for the signed-in user", func(t *testing.T) {
		fixture, cleanup := setupSyncTest(t, config.Remote{})
		defer cleanup()

		require.NoError(t, fixture.userPrefs.PutInt(prefs.KeyUserID, 7))
		require.NoError(t, fixture.registry.Add("SciFi"))
		_, err := fixture.repo.Add("Dune", "Frank Herbert", "SciFi", true)
		require.NoError(t, err)
		_, err = fixture.repo.Add("Hatchet", "Gary Paulsen", "Default", false)
		require.NoError(t, err)

		fixture.scheduler.runSync()
		assert.ElementsMatch(t, []string{"Default", "SciFi"}, fixture.pushed.shelves)
		assert.ElementsMatch(t, []string{"Dune", "Hatchet"}, fixture.pushed.titles)
	})
}
