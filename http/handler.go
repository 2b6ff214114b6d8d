package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sagarc03/apitour"
)

// CORSConfig configures the optional CORS middleware.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	// Pagination is shared by every pagination route. Nil uses a cap of 50.
	Pagination      *apitour.PaginationResolver
	Token           apitour.TokenChecker
	TokenHeader     string
	RedirectURL     string
	CatFile         string
	MaxUploadMemory int64
	CORS            CORSConfig
}

// Handler serves the tour endpoints.
type Handler struct {
	config   HandlerConfig
	static   apitour.StaticStore
	resolver *apitour.Resolver
}

// NewHandler creates a new Handler. static may be nil, in which case GET /cat
// answers 404.
func NewHandler(config *HandlerConfig, static apitour.StaticStore) *Handler {
	cfg := *config
	if cfg.Pagination == nil {
		cfg.Pagination, _ = apitour.NewPaginationResolver(50)
	}
	if cfg.TokenHeader == "" {
		cfg.TokenHeader = apitour.DefaultTokenHeader
	}

	return &Handler{
		config: cfg,
		static: static,
		resolver: apitour.NewResolver(
			apitour.WithPathParam(chi.URLParam),
			apitour.WithMaxMemory(cfg.MaxUploadMemory),
		),
	}
}

// Router returns an http.Handler with every route registered.
func (h *Handler) Router() http.Handler {
	return h.mux()
}

// RouteInfo is one registered method and pattern.
type RouteInfo struct {
	Method  string
	Pattern string
}

// Routes lists the registered routes in registration order of chi's tree.
func (h *Handler) Routes() ([]RouteInfo, error) {
	var routes []RouteInfo
	err := chi.Walk(h.mux(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, RouteInfo{Method: method, Pattern: route})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk routes: %w", err)
	}
	return routes, nil
}

func (h *Handler) mux() *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestID, AccessLog, middleware.Recoverer)
	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleMethodNotAllowed)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Get("/", h.bind(helloParams, h.handleHello))
	r.Get("/index", h.handleIndex)

	r.Get("/users", h.bind(listUsersParams, h.handleListUsers))
	r.Get("/users/{id}", h.bind(userIDParams, h.handleGetUser))
	r.Post("/users", h.bind(createUserParams, h.handleCreateUser))
	r.Post("/users/form", h.bind(createUserFormParams, h.handleCreateUserForm))
	r.Get("/licence-plates/{licence}", h.bind(licenceParams, h.handleLicencePlate))

	r.Post("/file", h.bind(uploadFileParams, h.handleUploadFile))
	r.Post("/files", h.bind(uploadFilesParams, h.handleUploadFiles))

	r.Post("/password-match", h.bind(passwordParams, h.handlePasswordMatch))

	r.Get("/html", h.handleHTML)
	r.Get("/text", h.handleText)
	r.Get("/xml", h.handleXML)
	r.Get("/redirect", h.handleRedirect)
	r.Get("/cat", h.handleCat)

	r.Get("/paginacao", h.handlePagination)
	r.Get("/paginacao-nova", h.handleSharedPagination)
	r.Get("/paginacao-metodo-um", h.handleSkipLimit)
	r.Get("/paginacao-metodo-dois", h.handlePageSize)

	r.Group(func(r chi.Router) {
		r.Use(TokenMiddleware(h.config.Token, h.config.TokenHeader))
		r.Get("/rota-protegida", h.handleProtected)
	})

	return r
}

// paramHandler receives the values resolved from a route's parameter specs.
type paramHandler func(w http.ResponseWriter, r *http.Request, vals apitour.Values)

// bind resolves specs before calling fn. Specs are checked once here, at
// registration, and a malformed table panics like an invalid chi pattern does.
func (h *Handler) bind(specs []apitour.ParameterSpec, fn paramHandler) http.HandlerFunc {
	if err := apitour.ValidateSpecs(specs); err != nil {
		panic(fmt.Sprintf("apitour: invalid route parameters: %v", err))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		vals, err := h.resolver.ResolveAll(r, specs)
		if err != nil {
			HandleError(w, err)
			return
		}
		fn(w, r, vals)
	}
}
