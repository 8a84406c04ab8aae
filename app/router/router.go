package router

import (
	"net/http"
	"strings"

	"keypad-studio/app/controller"
)

type Controllers struct {
	Configurator *controller.ConfiguratorController
	SavedDesign  *controller.SavedDesignController
	Export       *controller.ExportController
	IconAsset    *controller.IconAssetController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Configurator sessions
	http.HandleFunc("/configurator/sessions", controllers.Configurator.CreateSession)
	http.HandleFunc("/configurator/sessions/", controllers.Configurator.Dispatch)

	// Saved designs
	http.HandleFunc("/designs", controllers.SavedDesign.Collection)
	http.HandleFunc("/designs/", controllers.SavedDesign.ByID)

	// Export: POST /orders/{code}/export
	http.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/export") {
			controllers.Export.Export(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Render page fetched back by the headless rendering collaborator
	http.HandleFunc("/exports/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/render") {
			controllers.Export.Render(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Icon asset admin routes
	http.HandleFunc("/admin/icon-assets/load", controllers.IconAsset.LoadAssets)
	http.HandleFunc("/admin/icon-assets/pending", controllers.IconAsset.GetPending)
	http.HandleFunc("/admin/icon-assets/pending/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/image") {
			controllers.IconAsset.GetOptimizedImage(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Shell artwork for previews
	http.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}
