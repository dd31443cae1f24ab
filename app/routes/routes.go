package routes

import (
	"encoding/json"
	"net/http"

	"folio/app/controllers"
	"folio/app/middleware"
	"folio/app/services"
	"folio/app/views"

	"github.com/gorilla/mux"
)

// Deps is everything the router wires together.
type Deps struct {
	Catalog        *services.CatalogService
	Contact        *services.ContactService
	Views          *views.Views
	Site           views.Site
	AllowedOrigins []string
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Deps) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	pageController := controllers.NewPageController(deps.Catalog, deps.Views, deps.Site)
	contactController := controllers.NewContactController(deps.Contact, deps.Views, deps.Site)
	apiController := controllers.NewAPIController(deps.Catalog)

	// Serve embedded static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(views.Static()))))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Web routes
	router.HandleFunc("/", pageController.Home).Methods("GET")

	router.HandleFunc("/project", pageController.Project).Methods("GET")
	router.HandleFunc("/projects/open/{id}", pageController.OpenProject).Methods("GET")
	router.HandleFunc("/projects/{id}", pageController.Project).Methods("GET")

	router.HandleFunc("/post", pageController.Post).Methods("GET")
	router.HandleFunc("/blog/open/{id}", pageController.OpenPost).Methods("GET")
	router.HandleFunc("/blog/{id}", pageController.Post).Methods("GET")

	router.HandleFunc("/contact", contactController.New).Methods("GET")
	router.HandleFunc("/contact", contactController.Create).Methods("POST")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.CORS(deps.AllowedOrigins))

	api.HandleFunc("/projects", apiController.Projects).Methods("GET", "OPTIONS")
	api.HandleFunc("/projects/{id}", apiController.Project).Methods("GET", "OPTIONS")
	api.HandleFunc("/blogs", apiController.Blogs).Methods("GET", "OPTIONS")
	api.HandleFunc("/blogs/{id}", apiController.Blog).Methods("GET", "OPTIONS")

	router.NotFoundHandler = middleware.RequestID(middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.IsAPI(r.URL.Path) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		pageController.NotFound(w, r)
	})))

	return router
}
