// Package guard decides whether a view may be shown for the current session
// status.
package guard

import (
	"strings"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/session"
)

// Access is the level a route requires.
type Access int

const (
	Public Access = iota
	Protected
)

const (
	SignInPath  = "/"
	LandingPath = "/dashboard"
)

// Route paths of the admin views.
const (
	RouteDashboard        = "/dashboard"
	RouteAnalytics        = "/analytics"
	RouteUserDistribution = "/user-distribution"
	RouteWaitlist         = "/waitlist"
	RouteUsers            = "/users"
	RouteProfile          = "/profile"
)

// DefaultRoutes is the route table of the admin client.
func DefaultRoutes() map[string]Access {
	return map[string]Access{
		SignInPath:            Public,
		RouteDashboard:        Protected,
		RouteAnalytics:        Protected,
		RouteUserDistribution: Protected,
		RouteWaitlist:         Protected,
		RouteUsers:            Protected,
		RouteProfile:          Protected,
	}
}

type Outcome int

const (
	Render Outcome = iota
	Redirect
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Redirect:
		return "redirect"
	case NotFound:
		return "not_found"
	default:
		return "render"
	}
}

// Decision is the answer for one navigation. Target is set for Redirect.
type Decision struct {
	Outcome Outcome
	Target  string
}

type Guard struct {
	routes map[string]Access
}

// New builds a guard over routes; nil means DefaultRoutes.
func New(routes map[string]Access) *Guard {
	if routes == nil {
		routes = DefaultRoutes()
	}
	return &Guard{routes: routes}
}

// Normalize gives path a leading slash and no trailing one; "" is the sign-in path.
func Normalize(path string) string {
	if path == "" {
		return SignInPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = SignInPath
		}
	}
	return path
}

// Decide applies the access policy: protected views need an authenticated
// session, and the sign-in view forwards authenticated admins to the
// landing view.
func (g *Guard) Decide(path string, status session.Status) Decision {
	path = Normalize(path)
	access, ok := g.routes[path]
	if !ok {
		return Decision{Outcome: NotFound}
	}

	switch {
	case path == SignInPath && status == session.Authenticated:
		return Decision{Outcome: Redirect, Target: LandingPath}
	case access == Protected && status != session.Authenticated:
		return Decision{Outcome: Redirect, Target: SignInPath}
	default:
		return Decision{Outcome: Render}
	}
}
