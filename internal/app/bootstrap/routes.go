// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/chapterhub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/chapterhub/internal/app/features/errors"
	featuregatesfeature "github.com/dalemusser/chapterhub/internal/app/features/featuregates"
	healthfeature "github.com/dalemusser/chapterhub/internal/app/features/health"
	homefeature "github.com/dalemusser/chapterhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/chapterhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/chapterhub/internal/app/features/logout"
	offeringsfeature "github.com/dalemusser/chapterhub/internal/app/features/offerings"
	trainingfeature "github.com/dalemusser/chapterhub/internal/app/features/training"
	"github.com/dalemusser/chapterhub/internal/app/policy/featuregate"
	"github.com/dalemusser/chapterhub/internal/app/policy/readiness"
	templatestore "github.com/dalemusser/chapterhub/internal/app/store/classtemplates"
	rulestore "github.com/dalemusser/chapterhub/internal/app/store/featuregates"
	grantstore "github.com/dalemusser/chapterhub/internal/app/store/grants"
	interviewstore "github.com/dalemusser/chapterhub/internal/app/store/interviews"
	offeringstore "github.com/dalemusser/chapterhub/internal/app/store/offerings"
	trainingstore "github.com/dalemusser/chapterhub/internal/app/store/training"
	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/pagecache"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. ChapterHub initializes the template
// engine, applies session and CSRF middleware, builds the policy engines,
// and mounts feature routers for every application area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data on each request so role changes and disabled
	// accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.ChapterHubMongoDatabase))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	db := deps.ChapterHubMongoDatabase

	pageCache := pagecache.New(appCfg.PageCacheSize, appCfg.PageCacheTTL, logger)
	readinessEngine := buildReadinessEngine(db, logger)
	gateEngine := &featuregate.Engine{
		Rules: rulestore.New(db),
		Users: userstore.New(db),
		Log:   logger,
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrf.Secure(secure), csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.ChapterHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages.
	homeHandler := homefeature.NewHandler(db, pageCache, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication.
	loginHandler := loginfeature.NewHandler(db, sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages.
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	// Role-based dashboards.
	dashboardHandler := dashboardfeature.NewHandler(db, readinessEngine, gateEngine, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Instructor offerings and the publish gate.
	offeringsHandler := offeringsfeature.NewHandler(db, readinessEngine, pageCache, logger)
	r.Mount("/offerings", offeringsfeature.Routes(offeringsHandler, sessionMgr))

	// Instructor training catalog and progress.
	trainingHandler := trainingfeature.NewHandler(db, logger)
	r.Mount("/training", trainingfeature.Routes(trainingHandler, sessionMgr))

	// Feature gate administration.
	featuregatesHandler := featuregatesfeature.NewHandler(db, pageCache, logger)
	r.Mount("/featuregates", featuregatesfeature.Routes(featuregatesHandler, sessionMgr))

	return r, nil
}

func buildReadinessEngine(db *mongo.Database, logger *zap.Logger) *readiness.Engine {
	return &readiness.Engine{
		Modules:     trainingstore.NewModules(db),
		Assignments: trainingstore.NewAssignments(db),
		Interviews:  interviewstore.New(db),
		Offerings:   offeringstore.New(db),
		Templates:   templatestore.New(db),
		Explicit:    grantstore.NewPermissions(db),
		Legacy:      grantstore.NewLegacy(db),
		Toggles:     readiness.EnvToggles{},
		Log:         logger,
	}
}
