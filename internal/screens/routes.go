package screens

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vistapra/content-hub-go/internal/api"
	"github.com/vistapra/content-hub-go/internal/apperrors"
	"github.com/vistapra/content-hub-go/internal/content"
)

// Notifier receives a callback after every successful write so connected
// viewers can refresh. A nil Notifier disables notifications.
type Notifier interface {
	ScreenUpdated(slug string)
}

// RegisterRoutes wires screen routes to the router.
func RegisterRoutes(router chi.Router, repo *Repository, notifier Notifier) {
	router.Method(http.MethodGet, "/v1/screens", api.Handler(listScreens(repo)))
	router.Method(http.MethodPost, "/v1/screens", api.Handler(createScreen(repo, notifier)))
	router.Method(http.MethodGet, "/v1/screens/{slug}", api.Handler(getScreen(repo)))
	router.Method(http.MethodPut, "/v1/screens/{slug}", api.Handler(replaceScreen(repo, notifier)))
	router.Method(http.MethodPost, "/v1/screens/{slug}/items", api.Handler(appendItem(repo, notifier)))
}

func listScreens(repo *Repository) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		screens, err := repo.List()
		if err != nil {
			return apperrors.NewInternalError("Failed to list screens")
		}

		formatted := make([]map[string]any, 0, len(screens))
		for _, screen := range screens {
			formatted = append(formatted, formatScreen(&screen))
		}

		return api.WriteList(w, "/v1/screens", formatted)
	}
}

func createScreen(repo *Repository, notifier Notifier) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		var input CreateScreenInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return apperrors.NewValidationError("invalid request body", nil)
		}

		if input.Slug == "" {
			return apperrors.NewValidationError("slug is required", nil)
		}

		existing, err := repo.GetBySlug(input.Slug)
		if err != nil {
			return apperrors.NewInternalError("Failed to create screen")
		}
		if existing != nil {
			return apperrors.NewValidationError("slug already exists", map[string]any{"slug": input.Slug})
		}

		screen, err := repo.Create(input)
		if err != nil {
			return apperrors.NewInternalError("Failed to create screen")
		}

		if notifier != nil {
			notifier.ScreenUpdated(screen.Slug)
		}
		return api.WriteResource(w, http.StatusCreated, formatScreen(screen))
	}
}

func getScreen(repo *Repository) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		slug := chi.URLParam(r, "slug")

		screen, err := repo.GetBySlug(slug)
		if err != nil {
			return apperrors.NewInternalError("Failed to get screen")
		}
		if screen == nil {
			return apperrors.NewScreenNotFound(slug)
		}

		return api.WriteResource(w, http.StatusOK, formatScreen(screen))
	}
}

func replaceScreen(repo *Repository, notifier Notifier) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		slug := chi.URLParam(r, "slug")

		var input ReplacePayloadInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return apperrors.NewValidationError("invalid request body", nil)
		}
		if input.Payload == nil {
			return apperrors.NewValidationError("payload is required", nil)
		}

		screen, err := repo.ReplacePayload(slug, input.Payload)
		if err != nil {
			return apperrors.NewInternalError("Failed to update screen")
		}
		if screen == nil {
			return apperrors.NewScreenNotFound(slug)
		}

		if notifier != nil {
			notifier.ScreenUpdated(slug)
		}
		return api.WriteResource(w, http.StatusOK, formatScreen(screen))
	}
}

func appendItem(repo *Repository, notifier Notifier) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		slug := chi.URLParam(r, "slug")

		var input AppendItemInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return apperrors.NewValidationError("invalid request body", nil)
		}
		if input.Item.Kind() != content.KindObject {
			return apperrors.NewValidationError("item must be an object", nil)
		}

		screen, err := repo.AppendItem(slug, input.ListKey, input.Item)
		if err != nil {
			if errors.Is(err, content.ErrListNotFound) {
				return apperrors.NewListNotFound(slug, input.ListKey)
			}
			return apperrors.NewInternalError("Failed to add item")
		}
		if screen == nil {
			return apperrors.NewScreenNotFound(slug)
		}

		if notifier != nil {
			notifier.ScreenUpdated(slug)
		}
		return api.WriteResource(w, http.StatusOK, formatScreen(screen))
	}
}

func formatScreen(screen *Screen) map[string]any {
	return map[string]any{
		"object":     api.ObjectScreen,
		"slug":       screen.Slug,
		"kind":       screen.Kind,
		"payload":    screen.Payload,
		"updated_at": api.RFC3339Millis(screen.UpdatedAt),
	}
}
