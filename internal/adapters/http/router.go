package http

import (
	"net/http"
	"time"

	"social/internal/adapters/http/middleware"
	"social/internal/adapters/http/response"
	"social/internal/adapters/ws"
	"social/internal/config"
	"social/internal/core/auth"
	"social/internal/logger"
)

type RouterDeps struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Account *AccountHandler
	Post    *PostHandler
	Upload  *UploadHandler
	WsFeed  *ws.Handler

	Authenticator auth.Authenticator
	Writer        response.ResponseWriter
}

func NewRouter(cfg *config.Config, log logger.Logger, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.RequestLogger(log))
	globalMw.Use(middleware.Recover(log))
	globalMw.Use(middleware.CORS(cfg))

	userStack := middleware.New()
	userStack.Use(middleware.Bearer(deps.Authenticator, deps.Writer, log))

	mux.HandleFunc("GET /healthcheck", deps.Health.Check)

	mux.HandleFunc("POST /register", deps.Auth.Register)
	mux.HandleFunc("GET /confirm/{token}", deps.Auth.Confirm)
	mux.HandleFunc("POST /token", deps.Auth.Token)

	mux.Handle("GET /me", userStack.Then(http.HandlerFunc(deps.Account.Me)))
	mux.Handle("PUT /me/password", userStack.Then(http.HandlerFunc(deps.Account.Password)))

	mux.HandleFunc("GET /post", deps.Post.Index)
	mux.HandleFunc("GET /post/{id}", deps.Post.Show)
	mux.HandleFunc("GET /post/{id}/comment", deps.Post.Comments)
	mux.Handle("POST /post", userStack.Then(http.HandlerFunc(deps.Post.Store)))
	mux.Handle("POST /comment", userStack.Then(http.HandlerFunc(deps.Post.StoreComment)))
	mux.Handle("POST /like", userStack.Then(http.HandlerFunc(deps.Post.Like)))

	mux.Handle("POST /upload", userStack.Then(http.HandlerFunc(deps.Upload.Store)))

	if deps.WsFeed != nil {
		mux.HandleFunc("GET /ws/feed", deps.WsFeed.Serve)
	}

	return globalMw.Apply(mux)
}

func NewServer(handler http.Handler, address string) *http.Server {
	return &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
