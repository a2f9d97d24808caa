package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// harness wires a Server against an in-memory database and a miniredis
// instance. The cache client is package-global, so harness-based tests must
// not run in parallel.
type harness struct {
	t   *testing.T
	srv *Server
	app *fiber.App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.OpenTestDB(t)

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rc)
	t.Cleanup(func() {
		cache.SetClient(nil)
		rc.Close()
	})

	cfg := &config.Config{
		JWTSecret:            "inkwell-test-secret-not-for-production",
		Port:                 "0",
		Env:                  "test",
		PageSize:             10,
		FeedCacheTTLSeconds:  20,
		ImageUploadDir:       t.TempDir(),
		ImageMaxUploadSizeMB: 5,
	}
	middleware.InitMiddleware(cfg)

	srv := NewServerWithDeps(cfg, db, rc)
	return &harness{t: t, srv: srv, app: srv.App(), db: db, mr: mr}
}

func (h *harness) user(username string) *models.User {
	h.t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(h.t, h.db.Create(user).Error)
	return user
}

func (h *harness) group(slug string) *models.Group {
	h.t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(h.t, h.db.Create(group).Error)
	return group
}

func (h *harness) post(authorID uint, text string, createdAt time.Time) *models.Post {
	h.t.Helper()
	post := &models.Post{Text: text, AuthorID: authorID, CreatedAt: createdAt}
	require.NoError(h.t, h.db.Create(post).Error)
	return post
}

func (h *harness) token(userID uint) string {
	h.t.Helper()
	token, err := h.srv.generateToken(userID)
	require.NoError(h.t, err)
	return token
}

func (h *harness) do(req *http.Request, token string) *http.Response {
	h.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	return resp
}

func (h *harness) get(path, token string) *http.Response {
	return h.do(httptest.NewRequest(fiber.MethodGet, path, nil), token)
}

func (h *harness) postForm(path, token string, form url.Values) *http.Response {
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return h.do(req, token)
}

func (h *harness) postMultipart(path, token string, fields map[string]string, fileName string, file []byte) *http.Response {
	h.t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(h.t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(h.t, err)
		_, err = fw.Write(file)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return h.do(req, token)
}

func newCookieRequest(t *testing.T, path, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest), "body: %s", body)
}
