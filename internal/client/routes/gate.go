// Package routes decides, for a session state and a route class,
// whether a surface renders or redirects. The gate is a pure function:
// it holds no state and identical inputs yield identical decisions.
package routes

import "stockpilot/internal/client/services"

// Known route paths of the UI surface.
const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
	PathGoodbye   = "/goodbye"
)

// Class partitions routes by the session they require.
type Class int

const (
	// ClassPublicOpen renders for everyone (landing, goodbye).
	ClassPublicOpen Class = iota
	// ClassPublicOnly renders only without a user (sign-in, register).
	ClassPublicOnly
	// ClassProtected requires an authenticated user.
	ClassProtected
	// ClassUnknown is any unrecognized path.
	ClassUnknown
)

// Classify maps a path to its route class.
func Classify(path string) Class {
	switch path {
	case PathRoot, PathGoodbye:
		return ClassPublicOpen
	case PathLogin, PathRegister:
		return ClassPublicOnly
	case PathDashboard:
		return ClassProtected
	default:
		return ClassUnknown
	}
}

// Action is what the surface should do with the route.
type Action int

const (
	// ActionRender shows the route's surface.
	ActionRender Action = iota
	// ActionPlaceholder shows nothing meaningful while the session is
	// still bootstrapping.
	ActionPlaceholder
	// ActionRedirect navigates to Target instead.
	ActionRedirect
)

// Decision is the gate's output. From is set on redirects to the login
// route and carries the originally requested location so it survives
// the round trip.
type Decision struct {
	Action Action
	Target string
	From   string
}

// AfterLogin resolves the post-login destination: the carried origin if
// there is one, the dashboard otherwise.
func AfterLogin(from string) string {
	if from == "" {
		return PathDashboard
	}
	return from
}

// Evaluate maps (session, route class, location) to a decision. The
// from argument is the carried origin when evaluating a public-only
// route (the login page received it via a redirect).
func Evaluate(session services.Session, class Class, location, from string) Decision {
	switch class {
	case ClassPublicOpen:
		return Decision{Action: ActionRender}

	case ClassPublicOnly:
		switch session.State {
		case services.SessionBootstrapping:
			return Decision{Action: ActionPlaceholder}
		case services.SessionAuthenticated:
			return Decision{Action: ActionRedirect, Target: AfterLogin(from)}
		default:
			return Decision{Action: ActionRender}
		}

	case ClassProtected:
		switch session.State {
		case services.SessionBootstrapping:
			return Decision{Action: ActionPlaceholder}
		case services.SessionAuthenticated:
			return Decision{Action: ActionRender}
		default:
			return Decision{Action: ActionRedirect, Target: PathLogin, From: location}
		}

	default:
		if session.State == services.SessionBootstrapping {
			return Decision{Action: ActionPlaceholder}
		}
		return Decision{Action: ActionRedirect, Target: PathRoot}
	}
}
