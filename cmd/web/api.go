package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"fintalkweb/internal/auth"
	"fintalkweb/internal/backend"
	"fintalkweb/internal/domain/subscription"
	"fintalkweb/internal/ratelimiter"
)

type application struct {
	config        config
	logger        *zap.SugaredLogger
	api           *backend.Client
	cld           *cloudinary.Cloudinary
	unsubTokens   *subscription.TokenCodec
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr            string
	env             string
	apiURL          string
	externalURL     string
	frontendURL     string
	auth            authConfig
	unsubscribeSalt string
	rateLimiter     ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}
type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}
type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Post("/subscriptions", app.subscribeHandler)
		r.Get("/subscriptions/unsubscribe/{token}", app.unsubscribeHandler)
		r.Get("/users", app.searchUsersHandler)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/follow", app.followStatusHandler)
			r.Put("/follow", app.followUserHandler)
			r.Put("/unfollow", app.unfollowUserHandler)
			r.Get("/followers", app.listFollowersHandler)
			r.Get("/following", app.listFollowingHandler)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.getProfileHandler)
			r.Patch("/", app.updateProfileHandler)
			r.Post("/avatar", app.uploadAvatarHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/roles", app.listRolesHandler)
			r.Route("/users/{userID}/roles", func(r chi.Router) {
				r.Get("/", app.listUserRolesHandler)
				r.Post("/", app.assignRoleHandler)
				r.Delete("/{roleID}", app.revokeRoleHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
