package loginsession_test

import (
	"sync"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/server/loginsession"
	"github.com/stretchr/testify/require"
)

func fixedNow(t *testing.T, now time.Time) {
	t.Helper()
	loginsession.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { loginsession.NowTimeFunc = time.Now })
}

func TestUpsertGetDelete(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	repo := loginsession.NewInMemoryLoginSessionRepo()
	require.NoError(t, repo.Upsert("s-1", loginsession.Session{UserID: "u-1", AccessToken: "a", ExpiresAt: now.Add(time.Hour)}))

	got, err := repo.Get("s-1")
	require.NoError(t, err)
	require.Equal(t, "s-1", got.ID)
	require.Equal(t, "u-1", got.UserID)

	require.NoError(t, repo.Delete("s-1"))
	_, err = repo.Get("s-1")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	require.NoError(t, repo.Delete("s-1"), "deleting twice is fine")
}

func TestEmptySessionID(t *testing.T) {
	repo := loginsession.NewInMemoryLoginSessionRepo()
	require.Error(t, repo.Upsert("", loginsession.Session{}))
	_, err := repo.Get("")
	require.Error(t, err)
	require.Error(t, repo.Delete(""))
}

func TestExpiredSessions(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	repo := loginsession.NewInMemoryLoginSessionRepo()
	require.NoError(t, repo.Upsert("old", loginsession.Session{ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Upsert("edge", loginsession.Session{ExpiresAt: now}))
	require.NoError(t, repo.Upsert("fresh", loginsession.Session{ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Upsert("forever", loginsession.Session{}))

	_, err := repo.Get("old")
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	_, err = repo.Get("old")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound, "expired session is removed on read")

	removed, err := repo.DeleteExpired()
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = repo.Get("fresh")
	require.NoError(t, err)
	_, err = repo.Get("forever")
	require.NoError(t, err)
}

func TestUpdateAccessToken(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	fixedNow(t, now)
	exp := now.Add(15 * time.Minute)

	repo := loginsession.NewInMemoryLoginSessionRepo()
	require.NoError(t, repo.Upsert("s-1", loginsession.Session{UserID: "u-1", AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(time.Hour)}))

	require.NoError(t, repo.UpdateAccessToken("s-1", "b", exp))
	got, err := repo.Get("s-1")
	require.NoError(t, err)
	require.Equal(t, "b", got.AccessToken)
	require.Equal(t, "r", got.RefreshToken)
	require.True(t, exp.Equal(got.AccessExpiresAt))

	require.NoError(t, repo.Delete("s-1"))
	require.ErrorIs(t, repo.UpdateAccessToken("s-1", "c", exp), apperrors.ErrSessionNotFound)
	_, err = repo.Get("s-1")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound, "a deleted session is not recreated")

	require.NoError(t, repo.Upsert("old", loginsession.Session{ExpiresAt: now.Add(-time.Minute)}))
	require.ErrorIs(t, repo.UpdateAccessToken("old", "c", exp), apperrors.ErrSessionExpired)

	require.Error(t, repo.UpdateAccessToken("", "c", exp))
}

func TestGatewaySession(t *testing.T) {
	s := loginsession.Session{UserID: "u-1", Email: "a@example.com", AccessToken: "a", RefreshToken: "r"}
	gs := s.GatewaySession()
	require.Equal(t, "u-1", gs.UserID)
	require.Equal(t, "a", gs.AccessToken)
	require.Equal(t, "r", gs.RefreshToken)
}

func TestConcurrentAccess(t *testing.T) {
	repo := loginsession.NewInMemoryLoginSessionRepo()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			_ = repo.Upsert(id, loginsession.Session{UserID: id})
			_, _ = repo.Get(id)
			_, _ = repo.DeleteExpired()
		}(i)
	}
	wg.Wait()
}
