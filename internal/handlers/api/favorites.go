package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/utils/v2"

	"ghfavorites/internal/favorites"
	"ghfavorites/internal/models"
	"ghfavorites/internal/session"
	"ghfavorites/internal/validation"
)

// FavoritesHandler exposes the lookup cache as a JSON API.
type FavoritesHandler struct {
	session *session.Session
}

// NewFavoritesHandler creates a new API favorites handler.
func NewFavoritesHandler(sess *session.Session) *FavoritesHandler {
	return &FavoritesHandler{session: sess}
}

// handleParam reads and validates the :login route parameter.
// The value is copied out of the request buffer because the service keeps it.
func handleParam(c fiber.Ctx) (string, bool) {
	login := utils.CopyString(validation.NormalizeHandle(c.Params("login")))
	return login, validation.ValidateHandle(login)
}

// Resolve looks up a profile, serving a recent favorite from the store.
func (h *FavoritesHandler) Resolve(c fiber.Ctx) error {
	login, ok := handleParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid handle")
	}
	return h.resolve(c, login)
}

// SetSearch stores the pending search key.
func (h *FavoritesHandler) SetSearch(c fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	search := validation.NormalizeHandle(req.Search)
	if search != "" && !validation.ValidateHandle(search) {
		return jsonError(c, fiber.StatusBadRequest, "invalid handle")
	}

	h.session.Run(func(svc *favorites.Service) {
		svc.SetSearch(search)
	})
	return jsonSuccess(c, models.SearchRequest{Search: search})
}

// Search resolves the pending search key.
func (h *FavoritesHandler) Search(c fiber.Ctx) error {
	return h.resolve(c, "")
}

// resolve resolves login, or the pending search key when login is empty.
func (h *FavoritesHandler) resolve(c fiber.Ctx, login string) error {
	var rec *models.Record
	err := h.session.Do(func(svc *favorites.Service) error {
		key := login
		if key == "" {
			key = svc.Active().Search
		}
		found, err := svc.Resolve(c.Context(), key)
		if err != nil {
			return err
		}
		rec = found.Clone()
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return jsonSuccess(c, rec)
}

// Result returns the active result.
func (h *FavoritesHandler) Result(c fiber.Ctx) error {
	var resp models.ResultResponse
	h.session.Run(func(svc *favorites.Service) {
		active := svc.Active()
		resp.Error = active.ErrorMessage()
		resp.Search = active.Search
		if active.Record != nil {
			resp.Record = active.Record.Clone()
			resp.IsFavorite = svc.IsFavorite(active.Record.Login)
		}
	})
	return jsonSuccess(c, resp)
}

// List returns all stored favorites.
func (h *FavoritesHandler) List(c fiber.Ctx) error {
	var records []models.Record
	h.session.Run(func(svc *favorites.Service) {
		records = svc.Favorites()
	})
	return jsonSuccess(c, records)
}

// Check reports whether a handle is stored.
func (h *FavoritesHandler) Check(c fiber.Ctx) error {
	login, ok := handleParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid handle")
	}

	var favorite bool
	h.session.Run(func(svc *favorites.Service) {
		favorite = svc.IsFavorite(login)
	})
	return jsonSuccess(c, models.FavoriteResponse{Login: login, Favorite: favorite})
}

// Add stores the active result as a favorite.
func (h *FavoritesHandler) Add(c fiber.Ctx) error {
	var rec *models.Record
	err := h.session.Do(func(svc *favorites.Service) error {
		if err := svc.AddActive(c.Context()); err != nil {
			return err
		}
		rec = svc.Active().Record.Clone()
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   rec,
	})
}

// Show makes a stored favorite the active result.
func (h *FavoritesHandler) Show(c fiber.Ctx) error {
	login, ok := handleParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid handle")
	}

	var rec *models.Record
	err := h.session.Do(func(svc *favorites.Service) error {
		found, err := svc.ShowFavorite(login)
		if err != nil {
			return err
		}
		rec = found.Clone()
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return jsonSuccess(c, rec)
}

// Remove deletes a favorite. Removing an unknown handle succeeds.
func (h *FavoritesHandler) Remove(c fiber.Ctx) error {
	login, ok := handleParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid handle")
	}

	err := h.session.Do(func(svc *favorites.Service) error {
		return svc.RemoveFavorite(c.Context(), login)
	})
	if err != nil {
		return serviceError(c, err)
	}
	return jsonSuccess(c, models.FavoriteResponse{Login: login, Favorite: false})
}

// Register mounts the API routes on router.
func (h *FavoritesHandler) Register(router fiber.Router) {
	router.Get("/users/:login", h.Resolve)
	router.Put("/search", h.SetSearch)
	router.Post("/search", h.Search)
	router.Get("/result", h.Result)
	router.Get("/favorites", h.List)
	router.Post("/favorites", h.Add)
	router.Get("/favorites/:login", h.Check)
	router.Post("/favorites/:login/show", h.Show)
	router.Delete("/favorites/:login", h.Remove)
}
