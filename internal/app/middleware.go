package app

import (
	"net/http"
	"time"

	"github.com/dailyplanner/planner/internal/config"
	"github.com/dailyplanner/planner/pkg/labels"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Request logging
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			log.WithFields(log.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"duration": time.Since(start),
			}).Debug("Handled request")
		})
	})

	// Negotiate the label pack from the lang query parameter or Accept-Language
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			l := deps.Labels
			if lang := req.URL.Query().Get("lang"); lang != "" {
				l = negotiated(labels.ForLanguage(lang), deps.LabelOverride)
			} else if header := req.Header.Get("Accept-Language"); header != "" {
				l = negotiated(labels.FromAcceptLanguage(header), deps.LabelOverride)
			}
			log.Tracef("Using labels for %s", l.Locale.Tag)
			next.ServeHTTP(w, req.WithContext(labels.WithLabels(req.Context(), l)))
		})
	})
}

func negotiated(base labels.Labels, overrides map[string]string) labels.Labels {
	merged, err := labels.Merge(base, overrides)
	if err != nil {
		log.Tracef("label overrides: %v", err)
	}
	return merged
}
