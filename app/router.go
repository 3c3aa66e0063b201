// Package app wires the HTTP surface together
package app

import (
	"fmt"
	"time"

	"myannime/catalog-api/app/anime"
	"myannime/catalog-api/app/episode"
	"myannime/catalog-api/app/genre"
	"myannime/catalog-api/app/image"
	"myannime/catalog-api/app/operators"
	"myannime/catalog-api/app/root"
	"myannime/catalog-api/app/user"
	"myannime/catalog-api/aws"
	"myannime/catalog-api/db"
	"myannime/catalog-api/internal"
	"myannime/catalog-api/internal/service"
	"myannime/catalog-api/internal/store"
	"myannime/catalog-api/pkg/middleware"
	"myannime/catalog-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

// TODO: use redis
var cacheStore = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	d := &internal.Deps{
		DB:     conn,
		Argon:  security.NewArgon(),
		Issuer: security.NewTokenIssuer([]byte(viper.GetString("security.jwt_secret"))),
		Users:  store.NewUserStore(conn),
		Admins: store.NewAdminStore(conn),
		Tokens: store.NewTokenStore(conn),
	}

	d.Auth = service.NewAuthService(d.Users, d.Admins, d.Tokens, d.Argon, d.Issuer)
	d.Accounts = service.NewAccountService(conn, d.Users, d.Tokens, d.Argon, service.NewSMTPMailer())

	if viper.GetBool("aws.enabled") {
		s3, err := aws.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		d.S3 = s3
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	rateLimit := viper.GetInt("security.rate_limit")

	auth := middleware.NewAuthMiddleware(d.Issuer)
	editor := middleware.RequireEditor()
	god := middleware.RequireGod()
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
		TTL:               time.Minute,
	})

	m := router.Group("/v1", rateLimiter)
	{
		// HEAD /v1/heartbeat			-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	u := m.Group("/user", middleware.BodySizeLimiter(1<<20))
	{
		// POST /v1/user/register		-> Registers an account and mails an activation link
		u.POST("/register", func(c *gin.Context) { user.Register(c, d) })

		// POST /v1/user/login			-> Logs in an activated account
		u.POST("/login", func(c *gin.Context) { user.Login(c, d) })

		// POST /v1/user/refresh		-> Exchanges a refresh token for a new session
		u.POST("/refresh", func(c *gin.Context) { user.Refresh(c, d) })

		// GET /v1/user/activate		-> Consumes an activation link
		u.GET("/activate", func(c *gin.Context) { user.Activate(c, d) })

		// POST /v1/user/resend_activation_email
		u.POST("/resend_activation_email", func(c *gin.Context) { user.ResendActivation(c, d) })

		// POST /v1/user/send_password_reset_email
		u.POST("/send_password_reset_email", func(c *gin.Context) { user.RequestPasswordReset(c, d) })

		// POST /v1/user/reset_password		-> Completes a password reset with a mailed token
		u.POST("/reset_password", func(c *gin.Context) { user.ResetPassword(c, d) })

		// PUT /v1/user/update_password		-> Changes the password of a logged in user
		u.PUT("/update_password", auth, func(c *gin.Context) { user.UpdatePassword(c, d) })

		// GET /v1/user/info			-> Returns the profile and saved animes
		u.GET("/info", auth, func(c *gin.Context) { user.Info(c, d) })

		// POST /v1/user/save_anime		-> Adds an anime to the user's list
		u.POST("/save_anime", auth, func(c *gin.Context) { user.SaveAnime(c, d) })

		// DELETE /v1/user/save_anime		-> Removes an anime from the user's list
		u.DELETE("/save_anime", auth, func(c *gin.Context) { user.RemoveAnime(c, d) })

		// GET /v1/user/confirm_status/:username -> Activation history, staff only
		u.GET("/confirm_status/:username", auth, editor, func(c *gin.Context) { user.ConfirmStatus(c, d) })
	}

	o := m.Group("/operators", middleware.BodySizeLimiter(1<<20))
	{
		// POST /v1/operators/request_token	-> Logs in an operator
		o.POST("/request_token", func(c *gin.Context) { operators.RequestToken(c, d) })

		// GET /v1/operators/admin/:id		-> Returns an operator, self or God
		o.GET("/admin/:id", auth, editor, func(c *gin.Context) { operators.Fetch(c, d) })

		// POST /v1/operators/admin		-> Creates an operator, God only
		o.POST("/admin", auth, god, func(c *gin.Context) { operators.Create(c, d) })

		// PUT /v1/operators/admin		-> Updates an operator
		o.PUT("/admin", auth, editor, func(c *gin.Context) { operators.Update(c, d) })

		// DELETE /v1/operators/admin		-> Deletes an operator
		o.DELETE("/admin", auth, editor, func(c *gin.Context) { operators.Delete(c, d) })
	}

	{
		// GET /v1/animes			-> Paged catalog listing
		m.GET("/animes", cacheFor(15), func(c *gin.Context) { anime.List(c, d) })

		// GET /v1/anime/:id			-> Full anime with episodes and genres
		m.GET("/anime/:id", cacheFor(30), func(c *gin.Context) { anime.Fetch(c, d) })

		// GET /v1/episode/:id
		m.GET("/episode/:id", cacheFor(30), func(c *gin.Context) { episode.Fetch(c, d) })

		// GET /v1/genres
		m.GET("/genres", cacheFor(60), func(c *gin.Context) { genre.List(c, d) })

		// GET /v1/genre/:name
		m.GET("/genre/:name", cacheFor(60), func(c *gin.Context) { genre.Fetch(c, d) })

		// POST /v1/create/anime		-> Staff mutations below
		m.POST("/create/anime", auth, editor, func(c *gin.Context) { anime.Create(c, d) })

		// PUT /v1/edit/anime/:id
		m.PUT("/edit/anime/:id", auth, editor, func(c *gin.Context) { anime.Edit(c, d) })

		// POST /v1/create/episode
		m.POST("/create/episode", auth, editor, func(c *gin.Context) { episode.Create(c, d) })

		// PUT /v1/edit/episode/:id
		m.PUT("/edit/episode/:id", auth, editor, func(c *gin.Context) { episode.Edit(c, d) })

		// POST /v1/upload/image		-> Poster uploads to the bucket
		m.POST("/upload/image", auth, editor, func(c *gin.Context) { image.Upload(c, d) })
	}

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if err := cfg.Level.UnmarshalText([]byte(viper.GetString("app.log_level"))); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}
