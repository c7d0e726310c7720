package routes

import (
	"net/http"

	"github.com/gamectrl/storefront/app/configs"
	"github.com/gamectrl/storefront/app/handlers"
	adminhandlers "github.com/gamectrl/storefront/app/handlers/admin"
	"github.com/gamectrl/storefront/app/middlewares"
	"github.com/gamectrl/storefront/app/repositories"
	"github.com/gamectrl/storefront/app/services"
	"github.com/gamectrl/storefront/app/utils/renderer"
	"github.com/gamectrl/storefront/app/utils/sessions"
	"github.com/gamectrl/storefront/app/validators"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV, sessionKeys *configs.SessionKeys) http.Handler {
	render := renderer.New()
	validate := validator.New()

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	ctrlRepo := repositories.NewControllerRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)

	cartValidator := validators.NewCartValidator(configs.LoadCartLimits(), env.AllowedHosts)
	cartSvc := services.NewCartService(db, cartRepo, cartItemRepo, ctrlRepo, cartValidator)

	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)

	productHandler := handlers.NewProductHandler(ctrlRepo, categoryRepo, render)
	cartHandler := handlers.NewCartHandler(cartSvc, cartValidator, render)
	authHandler := handlers.NewAuthHandler(render, userRepo, sessionStore, validate)
	healthHandler := handlers.NewHealthHandler(db, render)
	dashboardHandler := adminhandlers.NewDashboardHandler(ctrlRepo, render)
	catalogAdminHandler := adminhandlers.NewCatalogAdminHandler(ctrlRepo, categoryRepo, render, validate)

	router := mux.NewRouter()

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.MethodOverrideMiddleware)
	router.Use(middlewares.UserSessionMiddleware(sessionStore, userRepo))
	router.Use(middlewares.CartCountMiddleware(cartRepo))

	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	router.PathPrefix("/media/").Handler(
		http.StripPrefix("/media/", http.FileServer(http.Dir("media"))))

	router.HandleFunc("/", productHandler.Home).Methods("GET")
	router.HandleFunc("/category/{slug}", productHandler.CategoryDetail).Methods("GET")
	router.HandleFunc("/controller/{slug}", productHandler.ControllerDetail).Methods("GET")
	router.HandleFunc("/health", healthHandler.Check).Methods("GET")

	router.HandleFunc("/login", authHandler.LoginGetHandler).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPostHandler).Methods("POST")
	router.HandleFunc("/register", authHandler.RegisterGetHandler).Methods("GET")
	router.HandleFunc("/register", authHandler.RegisterPostHandler).Methods("POST")
	router.HandleFunc("/logout", authHandler.LogoutHandler).Methods("POST")

	cartRouter := router.PathPrefix("/cart").Subrouter()
	cartRouter.Use(middlewares.RequireLoginMiddleware)
	cartRouter.HandleFunc("", cartHandler.GetCart).Methods("GET")
	cartRouter.HandleFunc("/add", cartHandler.AddItem).Methods("POST")
	cartRouter.HandleFunc("/update", cartHandler.UpdateItem).Methods("POST")
	cartRouter.HandleFunc("/count", cartHandler.GetCartCount).Methods("GET")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware)
	adminRouter.HandleFunc("", dashboardHandler.Dashboard).Methods("GET")
	adminRouter.HandleFunc("/controllers", catalogAdminHandler.ListControllers).Methods("GET")
	adminRouter.HandleFunc("/controllers", catalogAdminHandler.CreateController).Methods("POST")
	adminRouter.HandleFunc("/controllers/update", catalogAdminHandler.UpdateController).Methods("POST")
	adminRouter.HandleFunc("/categories", catalogAdminHandler.CreateCategory).Methods("POST")

	csrfKey := []byte(env.CSRFKey)
	if len(csrfKey) == 0 {
		csrfKey = sessionKeys.AuthKey[:32]
	}
	csrfMiddleware := csrf.Protect(csrfKey, csrf.Secure(env.AppEnv == "production"))

	return csrfMiddleware(router)
}
