package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"

	"github.com/edustack/academy-idm/pkg/account"
	accountapi "github.com/edustack/academy-idm/pkg/account/api"
	"github.com/edustack/academy-idm/pkg/accountid"
	"github.com/edustack/academy-idm/pkg/errors"
	"github.com/edustack/academy-idm/pkg/notification"
	"github.com/edustack/academy-idm/pkg/password"
	"github.com/edustack/academy-idm/pkg/ratelimit"
	"github.com/edustack/academy-idm/pkg/role"
	roleapi "github.com/edustack/academy-idm/pkg/role/api"
	"github.com/edustack/academy-idm/pkg/token"
)

type IdmDbConfig struct {
	Host     string `env:"IDM_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"IDM_PG_PORT" env-default:"5432"`
	Database string `env:"IDM_PG_DATABASE" env-default:"idm_db"`
	User     string `env:"IDM_PG_USER" env-default:"idm"`
	Password string `env:"IDM_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"IDM_PG_SCHEMA" env-default:"public"`
}

func (d IdmDbConfig) toDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

type JwtConfig struct {
	Secret            string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Issuer            string `env:"JWT_ISSUER" env-default:"academy-idm"`
	Audience          string `env:"JWT_AUDIENCE" env-default:"academy"`
	AccessTokenExpiry string `env:"ACCESS_TOKEN_EXPIRY" env-default:"15m"`
}

type EmailConfig struct {
	Enabled  bool   `env:"EMAIL_ENABLED" env-default:"false"`
	Host     string `env:"EMAIL_HOST" env-default:"localhost"`
	Port     uint16 `env:"EMAIL_PORT" env-default:"1025"`
	Username string `env:"EMAIL_USERNAME"`
	Password string `env:"EMAIL_PASSWORD"`
	From     string `env:"EMAIL_FROM" env-default:"noreply@campus.edu"`
	TLS      bool   `env:"EMAIL_TLS" env-default:"false"`
}

type Config struct {
	IdmDbConfig IdmDbConfig
	JwtConfig   JwtConfig
	EmailConfig EmailConfig
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	// Load .env file if present (before reading environment variables)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Error("Failed to load .env file", "err", err)
			os.Exit(-1)
		}
	}

	config := Config{}
	cleanenv.ReadEnv(&config)

	pool, err := pgxpool.New(context.Background(), config.IdmDbConfig.toDatabaseURL())
	if err != nil {
		slog.Error("Failed creating dbpool", "db", config.IdmDbConfig.Database,
			"host", config.IdmDbConfig.Host, "port", config.IdmDbConfig.Port)
		os.Exit(-1)
	}

	roleRepo := role.NewPostgresRoleRepository(pool)
	roleService := role.NewRoleService(roleRepo)
	if err := roleService.EnsureBuiltinRoles(context.Background()); err != nil {
		slog.Error("Failed to ensure builtin roles", "err", err)
		os.Exit(-1)
	}

	accountRepo := account.NewPostgresAccountRepository(pool)
	allocator := accountid.NewAllocator(accountRepo)
	hasher := password.NewArgon2Hasher()

	var opts []account.AccountServiceOption
	if config.EmailConfig.Enabled {
		notifier, err := notification.NewEmailNotifier(notification.SMTPConfig{
			Host:     config.EmailConfig.Host,
			Port:     int(config.EmailConfig.Port),
			Username: config.EmailConfig.Username,
			Password: config.EmailConfig.Password,
			From:     config.EmailConfig.From,
			TLS:      config.EmailConfig.TLS,
		})
		if err != nil {
			slog.Error("Failed to initialize email notifier", "err", err)
			os.Exit(-1)
		}
		opts = append(opts, account.WithNotifier(notifier))
	}

	accountService := account.NewAccountService(accountRepo, roleService, hasher, allocator, opts...)

	accessTokenExpiry, err := time.ParseDuration(config.JwtConfig.AccessTokenExpiry)
	if err != nil {
		slog.Error("Failed to parse access token expiry", "err", err)
		os.Exit(-1)
	}
	tokenGenerator := token.NewJwtTokenGenerator(config.JwtConfig.Secret,
		config.JwtConfig.Issuer, config.JwtConfig.Audience)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	// Throttle credential guessing: 10 attempts burst per client, 10/min refill
	loginLimiter := ratelimit.NewLimiter(10, 10.0, time.Hour)
	server.R.With(ratelimit.PerClient(loginLimiter)).
		Post("/api/idm/auth/login", loginHandler(accountService, tokenGenerator, accessTokenExpiry, loginLimiter))

	hmacAuth := jwtauth.New("HS256", []byte(config.JwtConfig.Secret), nil)
	server.R.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(hmacAuth))
		r.Use(jwtauth.Authenticator(hmacAuth))
		r.Mount("/api/idm/roles", roleapi.Handler(roleapi.NewHandle(roleService)))
		r.Mount("/api/idm/accounts", accountapi.Handler(accountapi.NewHandle(accountService)))
	})

	server.Run()
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string              `json:"access_token"`
	ExpiresAt   time.Time           `json:"expires_at"`
	Account     *account.ProfileDTO `json:"account"`
}

// loginHandler authenticates and issues the bearer token artifact. Unknown
// usernames and credential mismatches are presented uniformly here to avoid
// user enumeration; the service keeps them distinct.
func loginHandler(accounts *account.AccountService, generator token.TokenGenerator, expiry time.Duration, limiter *ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"message": "invalid request body"})
			return
		}
		if req.Username == "" || req.Password == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"message": "username and password are required"})
			return
		}

		acct, err := accounts.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			switch errors.GetCode(err) {
			case errors.ErrCodeAccountNotFound, errors.ErrCodeInvalidCredentials:
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"message": "invalid credentials"})
			default:
				slog.Error("Login failed", "username", req.Username, "err", err)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"message": "login failed"})
			}
			return
		}

		kind, err := acct.Role.Kind()
		if err != nil {
			slog.Error("Account role has no kind", "role", acct.Role.Name, "err", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"message": "login failed"})
			return
		}

		tokenStr, expiresAt, err := generator.GenerateToken(acct.ID, expiry, map[string]interface{}{
			"username":   acct.Username,
			"email":      acct.Email,
			"role":       acct.Role.Name,
			"role_level": kind.Level,
		})
		if err != nil {
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"message": "login failed"})
			return
		}

		limiter.Reset(ratelimit.ClientKey(r))
		render.JSON(w, r, loginResponse{
			AccessToken: tokenStr,
			ExpiresAt:   expiresAt,
			Account:     account.ToProfileDTO(&acct),
		})
	}
}
