package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/utils/v2"

	"ghfavorites/internal/favorites"
	"ghfavorites/internal/models"
	"ghfavorites/internal/session"
	"ghfavorites/internal/validation"
)

// PageHandler renders the search page and handles its form posts.
type PageHandler struct {
	session *session.Session
	title   string
}

// NewPageHandler creates a new page handler.
func NewPageHandler(sess *session.Session, title string) *PageHandler {
	return &PageHandler{session: sess, title: title}
}

// Index renders the active result and the favorites list.
func (h *PageHandler) Index(c fiber.Ctx) error {
	data := fiber.Map{
		"Title":       h.title,
		"IsFavorite":  false,
		"ActiveLogin": "",
	}
	h.session.Run(func(svc *favorites.Service) {
		active := svc.Active()
		if active.Record != nil {
			active.Record = active.Record.Clone()
			data["IsFavorite"] = svc.IsFavorite(active.Record.Login)
			data["ActiveLogin"] = active.Record.Login
		}
		data["Active"] = active
		data["Error"] = active.ErrorMessage()
		data["Favorites"] = svc.Favorites()
	})
	return c.Render("index", data)
}

// Search resolves the submitted handle and returns to the page.
// Lookup failures are shown on the page through the active result.
func (h *PageHandler) Search(c fiber.Ctx) error {
	search := utils.CopyString(validation.NormalizeHandle(c.FormValue("search")))
	if !validation.ValidateHandle(search) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid GitHub handle")
	}

	h.session.Run(func(svc *favorites.Service) {
		svc.SetSearch(search)
		if _, err := svc.Resolve(c.Context(), search); err != nil {
			slog.Debug("search failed", "login", search, "error", err)
		}
	})
	return c.Redirect().To("/")
}

// Add stores the active result as a favorite.
func (h *PageHandler) Add(c fiber.Ctx) error {
	err := h.session.Do(func(svc *favorites.Service) error {
		return svc.AddActive(c.Context())
	})
	if err != nil {
		if errors.Is(err, favorites.ErrNoActiveResult) {
			return fiber.NewError(fiber.StatusConflict, "Nothing to add")
		}
		return err
	}
	return c.Redirect().To("/")
}

// Remove deletes a favorite.
func (h *PageHandler) Remove(c fiber.Ctx) error {
	login := utils.CopyString(validation.NormalizeHandle(c.Params("login")))
	if !validation.ValidateHandle(login) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid GitHub handle")
	}

	err := h.session.Do(func(svc *favorites.Service) error {
		return svc.RemoveFavorite(c.Context(), login)
	})
	if err != nil {
		return err
	}
	return c.Redirect().To("/")
}

// Show makes a stored favorite the active result.
func (h *PageHandler) Show(c fiber.Ctx) error {
	login := utils.CopyString(validation.NormalizeHandle(c.Params("login")))

	var rec *models.Record
	err := h.session.Do(func(svc *favorites.Service) error {
		var err error
		rec, err = svc.ShowFavorite(login)
		return err
	})
	if err != nil || rec == nil {
		return fiber.NewError(fiber.StatusNotFound, "The favorite '"+login+"' does not exist.")
	}
	return c.Redirect().To("/")
}

// Register mounts the page routes on router.
func (h *PageHandler) Register(router fiber.Router) {
	router.Get("/", h.Index)
	router.Post("/search", h.Search)
	router.Post("/favorites", h.Add)
	router.Get("/favorites/:login", h.Show)
	router.Post("/favorites/:login/delete", h.Remove)
}
