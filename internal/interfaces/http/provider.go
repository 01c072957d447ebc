package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
	"github.com/med-integems/lomemis-dashboard/internal/domain"
)

// SessionProvider hands out the viewer's live dashboard session, mounting one
// through the core API on first touch.
type SessionProvider struct {
	deps dashboard.Deps
	reg  *Registry
}

// NewSessionProvider builds the provider.
func NewSessionProvider(deps dashboard.Deps, reg *Registry) *SessionProvider {
	return &SessionProvider{deps: deps, reg: reg}
}

// Session returns the registered session for the authenticated viewer, or
// mounts a new one. Mount errors pass through untouched so the handler can
// map them; access denials carry their reason.
func (p *SessionProvider) Session(c *fiber.Ctx) (*dashboard.Session, error) {
	userID := GetUserID(c)
	if userID == 0 {
		return nil, fmt.Errorf("session: %w: no authenticated user", domain.ErrUnauthorized)
	}
	if s, ok := p.reg.Get(userID); ok {
		return s, nil
	}
	s, err := dashboard.Mount(c.UserContext(), p.deps)
	if err != nil {
		return nil, err
	}
	return p.reg.PutIfAbsent(userID, s), nil
}

// Drop forgets the viewer's session.
func (p *SessionProvider) Drop(userID int64) {
	p.reg.Delete(userID)
}
