package router

import (
	"net/http"
	"os"
	"strings"

	"oakfield-backend/app/controller"
)

type Controllers struct {
	Development *controller.DevelopmentController
	HouseType   *controller.HouseTypeController
	Option      *controller.OptionController
	Bundle      *controller.BundleController
	BundleRule  *controller.BundleRuleController
	Basket      *controller.BasketController
	Analytics   *controller.AnalyticsController
	Chat        *controller.ChatController
	Strategist  *controller.StrategistController
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

// requireAPIKey checks the X-API-Key header when API_KEY is configured.
// With no API_KEY set the API is open, which is how local development runs.
func requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != apiKey {
			http.Error(w, "Invalid or missing API key", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint stays open for health checks
	http.HandleFunc("/ping", pingHandler)

	// Developments routes
	http.HandleFunc("/api/v1/oakfield/developments", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Development.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Development.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/oakfield/developments/", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		devCode := strings.TrimPrefix(r.URL.Path, "/api/v1/oakfield/developments/")
		if devCode == "" || strings.Contains(devCode, "/") {
			http.Error(w, "invalid path format", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			controllers.Development.Get(w, r, devCode)
		case http.MethodPut:
			controllers.Development.Update(w, r, devCode)
		case http.MethodDelete:
			controllers.Development.Delete(w, r, devCode)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// House types routes
	http.HandleFunc("/api/v1/oakfield/house-types", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.HouseType.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.HouseType.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/oakfield/house-types/", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/v1/oakfield/house-types/")
		if id == "" || strings.Contains(id, "/") {
			http.Error(w, "invalid path format", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			controllers.HouseType.Get(w, r, id)
		case http.MethodPut:
			controllers.HouseType.Update(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Options routes
	http.HandleFunc("/api/v1/oakfield/options", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Option.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Option.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/oakfield/options/", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		optionCode := strings.TrimPrefix(r.URL.Path, "/api/v1/oakfield/options/")
		if optionCode == "" || strings.Contains(optionCode, "/") {
			http.Error(w, "invalid path format", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			controllers.Option.Get(w, r, optionCode)
		case http.MethodPut:
			controllers.Option.Update(w, r, optionCode)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Bundles routes
	http.HandleFunc("/api/v1/oakfield/bundles", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Bundle.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Bundle.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/oakfield/bundles/", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		bundleCode := strings.TrimPrefix(r.URL.Path, "/api/v1/oakfield/bundles/")
		if bundleCode == "" || strings.Contains(bundleCode, "/") {
			http.Error(w, "invalid path format", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			controllers.Bundle.Get(w, r, bundleCode)
		case http.MethodPut:
			controllers.Bundle.Update(w, r, bundleCode)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Bundle rules routes
	http.HandleFunc("/api/v1/oakfield/bundle-rules", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.BundleRule.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.BundleRule.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/oakfield/bundle-rules/", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/v1/oakfield/bundle-rules/")
		if id == "" || strings.Contains(id, "/") {
			http.Error(w, "invalid path format", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			controllers.BundleRule.Get(w, r, id)
		case http.MethodPut:
			controllers.BundleRule.Update(w, r, id)
		case http.MethodDelete:
			controllers.BundleRule.Delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Baskets routes
	http.HandleFunc("/api/v1/oakfield/baskets", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Basket.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Basket.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Basket actions (eligibility and offer must be routed before the
	// generic /:ref handlers)
	http.HandleFunc("/api/v1/oakfield/baskets/", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/oakfield/baskets/")

		// GET /baskets/:ref/eligibility/:bundle_code
		if parts := strings.Split(path, "/eligibility/"); len(parts) == 2 {
			if r.Method != http.MethodGet {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			if parts[0] == "" || parts[1] == "" || strings.Contains(parts[1], "/") {
				http.Error(w, "invalid path format", http.StatusBadRequest)
				return
			}
			controllers.Basket.CheckEligibility(w, r, parts[0], parts[1])
			return
		}

		// POST /baskets/:id/offer
		if strings.HasSuffix(path, "/offer") {
			if r.Method != http.MethodPost {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			controllers.Basket.Offer(w, r, strings.TrimSuffix(path, "/offer"))
			return
		}

		if path == "" || strings.Contains(path, "/") {
			http.Error(w, "invalid path format", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			controllers.Basket.Get(w, r, path)
		case http.MethodPut:
			controllers.Basket.Update(w, r, path)
		case http.MethodDelete:
			controllers.Basket.Delete(w, r, path)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Analytics routes
	http.HandleFunc("/api/v1/oakfield/analytics/margin-summary", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		controllers.Analytics.MarginSummary(w, r)
	}))

	http.HandleFunc("/api/v1/oakfield/analytics/bundle-opportunities", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		controllers.Analytics.BundleOpportunities(w, r)
	}))

	// Strategist chat (stateless)
	http.HandleFunc("/api/v1/oakfield/strategist/chat", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		controllers.Strategist.Chat(w, r)
	}))

	// Chat session routes
	http.HandleFunc("/api/v1/chat/sessions", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Chat.ListSessions(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Chat.CreateSession(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/chat/sessions/", requireAPIKey(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/chat/sessions/")

		// GET/POST /chat/sessions/:id/messages
		if strings.HasSuffix(path, "/messages") {
			sessionID := strings.TrimSuffix(path, "/messages")
			if sessionID == "" || strings.Contains(sessionID, "/") {
				http.Error(w, "invalid path format", http.StatusBadRequest)
				return
			}
			if r.Method == http.MethodGet {
				controllers.Chat.ListMessages(w, r, sessionID)
			} else if r.Method == http.MethodPost {
				controllers.Chat.SendMessage(w, r, sessionID)
			} else {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		if path == "" || strings.Contains(path, "/") {
			http.Error(w, "invalid path format", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			controllers.Chat.GetSession(w, r, path)
		case http.MethodPut:
			controllers.Chat.RenameSession(w, r, path)
		case http.MethodDelete:
			controllers.Chat.DeleteSession(w, r, path)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
}
