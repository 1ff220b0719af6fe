package session

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Ron-Caster/POP-Messenger/internal/config"
	"github.com/Ron-Caster/POP-Messenger/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func testContext(t *testing.T, cookies []*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		c.Request.AddCookie(ck)
	}
	return c, w
}

func TestIssueAndCurrent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := require.New(t)

	auth, err := New(newTestDB(t), "secret", "pop_session", 1)
	req.NoError(err)

	c, w := testContext(t, nil)
	req.NoError(auth.Issue(c, "alice"))
	cookies := w.Result().Cookies()
	req.NotEmpty(cookies)

	c2, _ := testContext(t, cookies)
	name, err := auth.Current(c2)
	req.NoError(err)
	req.Equal("alice", name)
}

func TestCurrentWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	auth, err := New(newTestDB(t), "secret", "pop_session", 1)
	require.NoError(t, err)

	c, _ := testContext(t, nil)
	_, err = auth.Current(c)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCurrentRejectsForgedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := require.New(t)

	db := newTestDB(t)
	auth, err := New(db, "secret", "pop_session", 1)
	req.NoError(err)

	// token signed under a different secret must be rejected even though
	// it points at a real session row
	other, err := New(db, "other-secret", "pop_session", 1)
	req.NoError(err)

	c, w := testContext(t, nil)
	req.NoError(other.Issue(c, "alice"))
	forged := w.Result().Cookies()

	c2, _ := testContext(t, forged)
	_, err = auth.Current(c2)
	req.ErrorIs(err, ErrUnauthenticated)
}

func TestRevokeIsIdempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := require.New(t)

	auth, err := New(newTestDB(t), "secret", "pop_session", 1)
	req.NoError(err)

	c, w := testContext(t, nil)
	req.NoError(auth.Issue(c, "alice"))
	cookies := w.Result().Cookies()

	c2, _ := testContext(t, cookies)
	auth.Revoke(c2)

	c3, _ := testContext(t, cookies)
	_, err = auth.Current(c3)
	req.ErrorIs(err, ErrUnauthenticated)

	// revoking again, or with no cookie at all, is a no-op
	c4, _ := testContext(t, cookies)
	auth.Revoke(c4)
	c5, _ := testContext(t, nil)
	auth.Revoke(c5)
}

func TestMultipleSessionsPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := require.New(t)

	auth, err := New(newTestDB(t), "secret", "pop_session", 1)
	req.NoError(err)

	// two devices, two independent sessions
	cA, wA := testContext(t, nil)
	req.NoError(auth.Issue(cA, "alice"))
	cB, wB := testContext(t, nil)
	req.NoError(auth.Issue(cB, "alice"))

	// revoking one leaves the other live
	c, _ := testContext(t, wA.Result().Cookies())
	auth.Revoke(c)

	c2, _ := testContext(t, wB.Result().Cookies())
	name, err := auth.Current(c2)
	req.NoError(err)
	req.Equal("alice", name)
}
