package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "social/internal/adapters/http"
	"social/internal/adapters/http/request"
	"social/internal/adapters/http/response"
	"social/internal/adapters/http/validator"
	"social/internal/adapters/memory"
	"social/internal/application/account"
	"social/internal/application/post"
	"social/internal/application/upload"
	"social/internal/config"
	"social/internal/core/auth"
	"social/internal/domain"
	"social/internal/event"
	"social/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memStorage struct {
	objects map[string][]byte
	fail    bool
}

func (s *memStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if s.fail {
		return "", io.ErrUnexpectedEOF
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.objects[key] = b
	return "https://cdn.test/" + key, nil
}

type app struct {
	handler       http.Handler
	core          *auth.Service
	storage       *memStorage
	confirmations map[string]string
}

func newApp(t *testing.T) *app {
	t.Helper()

	cfg := &config.Config{
		AllowedOrigins: []string{"*"},
		PublicBaseURL:  "http://test",
		UploadMaxBytes: 1 << 10,
	}
	log := logger.Discard()
	bus := event.New(log)

	users := memory.NewUserRepository()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost, 2)
	codec, err := auth.NewTokenCodec("test-secret", "HS256")
	require.NoError(t, err)
	core := auth.NewService(users, hasher, codec, log)

	a := &app{
		core:          core,
		storage:       &memStorage{objects: map[string][]byte{}},
		confirmations: map[string]string{},
	}
	bus.Subscribe(domain.TopicUserRegistered, func(e any) {
		evt := e.(domain.EventUserRegistered)
		a.confirmations[evt.Email] = strings.TrimPrefix(evt.ConfirmationURL, "http://test")
	})

	accountSvc := account.NewService(users, core, hasher, bus, log, cfg.PublicBaseURL)
	postSvc := post.NewService(memory.NewPostRepository(), bus)
	uploadSvc := upload.NewService(a.storage, log)

	d := request.NewJSONDecoder()
	w := response.NewJSONWriter(log)
	v := validator.New()

	a.handler = httpadapter.NewRouter(cfg, log, &httpadapter.RouterDeps{
		Health:        httpadapter.NewHealthHandler(w),
		Auth:          httpadapter.NewAuthHandler(accountSvc, log, d, w, v),
		Account:       httpadapter.NewAccountHandler(accountSvc, log, d, w, v),
		Post:          httpadapter.NewPostHandler(postSvc, log, d, w, v),
		Upload:        httpadapter.NewUploadHandler(uploadSvc, log, w, cfg.UploadMaxBytes),
		Authenticator: core,
		Writer:        w,
	})
	return a
}

type envelope struct {
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    *domain.ListMeta  `json:"meta"`
	Errors  map[string]string `json:"errors"`
}

func (a *app) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

// login registers, confirms and signs in a user, returning an access token.
func (a *app) login(t *testing.T, email string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": "pw123456"}

	rec, _ := a.do(t, http.MethodPost, "/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = a.do(t, http.MethodGet, a.confirmations[email], "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(t, http.MethodPost, "/token", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	var tok domain.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func TestHealthcheck(t *testing.T) {
	a := newApp(t)
	rec, _ := a.do(t, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRegisterConfirmToken(t *testing.T) {
	a := newApp(t)
	creds := map[string]string{"email": "bob@x.com", "password": "pw123456"}

	rec, env := a.do(t, http.MethodPost, "/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User created. Please confirm your email", env.Message)
	assert.NotContains(t, string(env.Data), "password")

	rec, env = a.do(t, http.MethodPost, "/register", "", creds)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "A user with that email already registered", env.Message)

	rec, env = a.do(t, http.MethodPost, "/token", "", creds)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User has not confirmed email", env.Message)

	rec, env = a.do(t, http.MethodGet, "/confirm/invalid_token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", env.Message)

	rec, env = a.do(t, http.MethodGet, a.confirmations["bob@x.com"], "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User confirmed.", env.Message)

	rec, env = a.do(t, http.MethodPost, "/token", "", map[string]string{"email": "bob@x.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", env.Message)

	rec, _ = a.do(t, http.MethodPost, "/token", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	assert.NotContains(t, body, "data")
}

func TestRegister_Validation(t *testing.T) {
	a := newApp(t)

	rec, env := a.do(t, http.MethodPost, "/register", "", map[string]string{"email": "nope", "password": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	a := newApp(t)
	token := a.login(t, "alice@example.com")

	rec, env := a.do(t, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me domain.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "alice@example.com", me.Email)
	assert.True(t, me.IsActive)

	rec, env = a.do(t, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", env.Message)

	confirmation, err := a.core.IssueConfirmationToken("alice@example.com")
	require.NoError(t, err)
	rec, env = a.do(t, http.MethodGet, "/me", confirmation, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has incorrect type, expected 'access'", env.Message)
}

func TestChangePassword(t *testing.T) {
	a := newApp(t)
	token := a.login(t, "alice@example.com")

	rec, _ := a.do(t, http.MethodPut, "/me/password", token, map[string]string{
		"current_password":      "wrong-pass",
		"password":              "new-password",
		"password_confirmation": "new-password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = a.do(t, http.MethodPut, "/me/password", token, map[string]string{
		"current_password":      "pw123456",
		"password":              "new-password",
		"password_confirmation": "new-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(t, http.MethodPost, "/token", "", map[string]string{"email": "alice@example.com", "password": "new-password"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostsCommentsLikes(t *testing.T) {
	a := newApp(t)
	token := a.login(t, "alice@example.com")

	rec, _ := a.do(t, http.MethodPost, "/post", "", map[string]string{"body": "anon"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := a.do(t, http.MethodPost, "/post", token, map[string]string{"body": "Test Post"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p domain.Post
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Test Post", p.Body)

	rec, _ = a.do(t, http.MethodPost, "/post", token, map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = a.do(t, http.MethodPost, "/comment", token, map[string]any{"body": "Nice", "post_id": p.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = a.do(t, http.MethodPost, "/comment", token, map[string]any{"body": "Nice", "post_id": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post with id 999 not found", env.Message)

	rec, _ = a.do(t, http.MethodPost, "/like", token, map[string]any{"post_id": p.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = a.do(t, http.MethodPost, "/like", token, map[string]any{"post_id": p.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = a.do(t, http.MethodPost, "/like", token, map[string]any{"post_id": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = a.do(t, http.MethodGet, "/post/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var full domain.PostWithComments
	require.NoError(t, json.Unmarshal(env.Data, &full))
	assert.EqualValues(t, 1, full.Post.Likes)
	require.Len(t, full.Comments, 1)
	assert.Equal(t, "Nice", full.Comments[0].Body)

	rec, env = a.do(t, http.MethodGet, "/post/1/comment", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []domain.Comment
	require.NoError(t, json.Unmarshal(env.Data, &comments))
	assert.Len(t, comments, 1)

	rec, env = a.do(t, http.MethodGet, "/post/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post with id 999 not found", env.Message)

	rec, env = a.do(t, http.MethodGet, "/post/998/comment", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post with id 998 not found", env.Message)
	rec, _ = a.do(t, http.MethodGet, "/post/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostList(t *testing.T) {
	a := newApp(t)
	token := a.login(t, "alice@example.com")

	for _, body := range []string{"one", "two", "three"} {
		rec, _ := a.do(t, http.MethodPost, "/post", token, map[string]string{"body": body})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec, _ := a.do(t, http.MethodPost, "/like", token, map[string]any{"post_id": 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	bodies := func(env envelope) []string {
		var posts []domain.Post
		require.NoError(t, json.Unmarshal(env.Data, &posts))
		out := make([]string, 0, len(posts))
		for _, p := range posts {
			out = append(out, p.Body)
		}
		return out
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"three", "two", "one"}},
		{"?sorting=new", []string{"three", "two", "one"}},
		{"?sorting=old", []string{"one", "two", "three"}},
		{"?sorting=most_likes", []string{"two", "three", "one"}},
	}
	for _, tt := range tests {
		rec, env := a.do(t, http.MethodGet, "/post"+tt.query, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, tt.query)
		assert.Equal(t, tt.want, bodies(env), tt.query)
	}

	rec, env := a.do(t, http.MethodGet, "/post?paginate=true&limit=2&page=2&sorting=old", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"three"}, bodies(env))
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.LastPage)

	rec, _ = a.do(t, http.MethodGet, "/post?sorting=wrong", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, query := range []string{
		"?paginate=true&page=922337203685477582&limit=10",
		"?paginate=true&page=9223372036854775807&limit=1000000",
	} {
		rec, env = a.do(t, http.MethodGet, "/post"+query, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, query)
		assert.Empty(t, bodies(env), query)
		require.NotNil(t, env.Meta, query)
		assert.EqualValues(t, 3, env.Meta.Total, query)
	}
}

func multipartBody(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	a := newApp(t)
	token := a.login(t, "alice@example.com")

	send := func(field string, content []byte) (*httptest.ResponseRecorder, envelope) {
		body, ct := multipartBody(t, field, "myfile.txt", content)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		a.handler.ServeHTTP(rec, req)

		var env envelope
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
		return rec, env
	}

	rec, env := send("file", []byte("hello"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "myfile.txt uploaded successfully", env.Message)
	var f domain.UploadedFile
	require.NoError(t, json.Unmarshal(env.Data, &f))
	assert.Equal(t, "https://cdn.test/"+f.Key, f.URL)
	assert.Equal(t, []byte("hello"), a.storage.objects[f.Key])

	rec, _ = send("other", []byte("hello"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = send("file", bytes.Repeat([]byte("x"), 4<<10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	a.storage.fail = true
	rec, env = send("file", []byte("hello"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "There was an error uploading the file.", env.Message)
}
