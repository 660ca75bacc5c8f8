package favorites

import (
	"context"

	"ghfavorites/internal/models"
)

// Seed resolves each handle that is not yet a favorite and adds it.
// Failures are logged and skipped. The active result is reset afterwards.
func (s *Service) Seed(ctx context.Context, handles []string) int {
	added := 0
	for _, handle := range handles {
		if handle == "" || s.IsFavorite(handle) {
			continue
		}
		rec, err := s.Resolve(ctx, handle)
		if err != nil {
			s.logger.Warn("seed favorite skipped", "login", handle, "error", err)
			continue
		}
		if err := s.AddFavorite(ctx, rec); err != nil {
			s.logger.Warn("seed favorite not saved", "login", handle, "error", err)
			continue
		}
		added++
	}
	s.active = models.ActiveResult{}
	return added
}
