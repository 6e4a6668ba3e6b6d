package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/service"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/pkg/httpx"
	"github.com/cartloop/storefront-auth/pkg/slogx"

	_ "github.com/cartloop/storefront-auth/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	gate         *Gate
	cookies      CookiePolicy
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	TokenService    *service.TokenService
	SignupService   *service.SignupService
	PasswordService *service.PasswordService
	UserService     *service.UserService
}

func NewRouter(
	tokens *service.TokenService,
	cookies CookiePolicy,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		gate:         &Gate{Tokens: tokens, Cookies: cookies},
		cookies:      cookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		TokenService: tokens,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront Auth API
//	@version		0.1.0
//	@description	Authentication and session-renewal service for the storefront. Issues HS256-signed
//	@description	access and refresh tokens under independent secrets, with OTP-verified signup and
//	@description	password reset, brute-force lockout, and transparent in-flight token renewal via the
//	@description	X-New-Access-Token response header.
//
//	@contact.name				Cartloop Platform Team
//	@contact.url				https://github.com/cartloop/storefront-auth
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	signupHandler := &SignupHandler{SignupService: r.SignupService, Cookies: r.cookies}

	// POST /signup - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /v1/signup",
		httpx.Chain(http.HandlerFunc(signupHandler.HandleSignup),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /verify-otp - strict rate limit by IP (code guessing)
	r.Mux.Handle("POST /v1/verify-otp",
		httpx.Chain(http.HandlerFunc(signupHandler.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP (credential guessing)
	loginHandler := &LoginHandler{TokenService: r.TokenService, Cookies: r.cookies}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/refresh - moderate rate limit (renewal churn is normal)
	refreshHandler := &RefreshHandler{TokenService: r.TokenService, Cookies: r.cookies}
	r.Mux.Handle("GET /v1/auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /logout - lenient, it only clears a cookie
	logoutHandler := &LogoutHandler{Cookies: r.cookies}
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	passwordHandler := &PasswordHandler{PasswordService: r.PasswordService}

	// POST /sendotp - strict rate limit by IP (email bombing / enumeration)
	r.Mux.Handle("POST /v1/sendotp",
		httpx.Chain(http.HandlerFunc(passwordHandler.HandleSendOTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// PUT /resetpassword - strict rate limit by IP (code guessing)
	r.Mux.Handle("PUT /v1/resetpassword",
		httpx.Chain(http.HandlerFunc(passwordHandler.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	meHandler := &MeHandler{UserService: r.UserService}

	// GET /me - any authenticated user, lenient rate limit by user
	r.Mux.Handle("GET /v1/me",
		httpx.Chain(meHandler,
			r.gate.Require(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// PUT /changepassword - any authenticated user, moderate limit
	passwordHandler := &PasswordHandler{PasswordService: r.PasswordService}
	r.Mux.Handle("PUT /v1/changepassword",
		httpx.Chain(http.HandlerFunc(passwordHandler.HandleChange),
			r.gate.Require(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	usersHandler := &UsersHandler{UserService: r.UserService}

	// GET /users - admin or superadmin
	r.Mux.Handle("GET /v1/users",
		httpx.Chain(http.HandlerFunc(usersHandler.HandleList),
			r.gate.Require(domain.RoleAdmin, domain.RoleSuperAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// PUT /users/{id}/role - superadmin only
	r.Mux.Handle("PUT /v1/users/{id}/role",
		httpx.Chain(http.HandlerFunc(usersHandler.HandleUpdateRole),
			r.gate.Require(domain.RoleSuperAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
