package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"etherlink/interfaces/http/rest/handlers"
)

// Handlers groups the v1 endpoint handlers
type Handlers struct {
	Runes   *handlers.RuneHandler
	Tasks   *handlers.TaskHandler
	Synth   *handlers.SynthHandler
	Desktop *handlers.DesktopHandler
	Events  *handlers.EventsHandler
}

// NewRouter creates the v1 API router
func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(versionHeaders)

	// Helix Nexus
	r.Route("/runes", func(r chi.Router) {
		r.Get("/", h.Runes.ListRunes)
		r.Post("/", h.Runes.CreateRune)
		r.Get("/tags", h.Runes.ListTags)
		r.Get("/export", h.Runes.ExportRunes)
		r.Delete("/{id}", h.Runes.DeleteRune)
	})

	// Arcane Scheduler
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.Tasks.ListTasks)
		r.Post("/", h.Tasks.CreateTask)
		r.Get("/summary", h.Tasks.Summary)
		r.Post("/{id}/toggle", h.Tasks.ToggleTask)
		r.Delete("/{id}", h.Tasks.DeleteTask)
	})

	// Mana Synth
	r.Route("/synth", func(r chi.Router) {
		r.Get("/", h.Synth.GetSynth)
		r.Post("/palettes", h.Synth.SavePalette)
		r.Delete("/palettes/{index}", h.Synth.DeletePalette)
		r.Put("/notes", h.Synth.SaveNotes)
		r.Post("/conversions", h.Synth.RecordConversion)
		r.Get("/convert", h.Synth.Convert)
		r.Get("/units", h.Synth.ListUnits)
	})

	r.Get("/insights", h.Desktop.Insights)
	r.Post("/terminal", h.Desktop.Cast)
	r.Get("/grimoire/{page}", h.Desktop.GrimoirePage)
	r.Get("/events", h.Events.Stream)

	return r
}

// versionHeaders adds API version headers to responses
func versionHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Version", "v1")
		next.ServeHTTP(w, r)
	})
}
