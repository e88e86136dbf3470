// Package session carries the technician session in two plain cookies.
//
// The cookies are neither signed nor expiring and there is no CSRF
// protection: any client that sets authenticated=true passes the guard.
// This matches the console's trust model on a technician's own machine and
// must not be exposed on an untrusted network.
package session

import (
	"strconv"

	"go-desk/internal/auth"

	"github.com/gofiber/fiber/v2"
)

const (
	FlagCookie       = "authenticated"
	TechnicianCookie = "tecnico_id"

	technicianLocal = "technicianID"
)

// Insecure issues and reads the unsigned cookie pair.
type Insecure struct {
	LoginPath string
}

func NewInsecure(loginPath string) *Insecure {
	return &Insecure{LoginPath: loginPath}
}

func (s *Insecure) Issue(c *fiber.Ctx, sess auth.Session) {
	c.Cookie(&fiber.Cookie{Name: FlagCookie, Value: "true", Path: "/"})
	c.Cookie(&fiber.Cookie{Name: TechnicianCookie, Value: strconv.FormatUint(uint64(sess.TechnicianID), 10), Path: "/"})
}

// Read reports whether the request carries the authenticated flag. The
// technician id is best effort and zero when missing or unparseable.
func (s *Insecure) Read(c *fiber.Ctx) (auth.Session, bool) {
	if c.Cookies(FlagCookie) != "true" {
		return auth.Session{}, false
	}
	id, _ := strconv.ParseUint(c.Cookies(TechnicianCookie), 10, 64)
	return auth.Session{TechnicianID: uint(id)}, true
}

func (s *Insecure) Clear(c *fiber.Ctx) {
	c.ClearCookie(FlagCookie, TechnicianCookie)
}

// Guard redirects to the login page unless the flag cookie is present.
// It does not check that the technician still exists.
func (s *Insecure) Guard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := s.Read(c)
		if !ok {
			return c.Redirect(s.LoginPath)
		}
		c.Locals(technicianLocal, sess.TechnicianID)
		return c.Next()
	}
}

// TechnicianID returns the id stored by Guard.
func TechnicianID(c *fiber.Ctx) uint {
	id, _ := c.Locals(technicianLocal).(uint)
	return id
}
