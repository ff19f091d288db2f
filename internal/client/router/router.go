// Package router decides which group of screens may be shown for a given
// session state, and where to send the user when the current screen is not
// allowed.
package router

import (
	"github.com/dmitrijs2005/gophgate/internal/client/models"
)

type Route string

const (
	RouteNone     Route = ""
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteHome     Route = "/home"
	RouteProfile  Route = "/profile"
)

type Group string

const (
	GroupNone Group = ""
	GroupAuth Group = "auth"
	GroupTabs Group = "tabs"
)

var groups = map[Route]Group{
	RouteLogin:    GroupAuth,
	RouteRegister: GroupAuth,
	RouteHome:     GroupTabs,
	RouteProfile:  GroupTabs,
}

// GroupOf returns the group a route belongs to, or GroupNone for unknown routes.
func GroupOf(r Route) Group {
	return groups[r]
}

type State int

const (
	StateInitializing State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// StateOf classifies a session snapshot.
func StateOf(st models.SessionState) State {
	switch {
	case st.Initializing:
		return StateInitializing
	case st.Authenticated():
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}

// Decision is what the navigator should do. Group is the group allowed in
// State; Redirect is empty when the current route may stay.
type Decision struct {
	State    State
	Group    Group
	Redirect Route
}

// Resolve is pure: while initializing nothing is shown and nothing moves; a
// signed-in user outside the tabs goes to /home; anybody else outside the
// auth screens goes to /login.
func Resolve(st models.SessionState, current Route) Decision {
	d := Decision{State: StateOf(st)}

	switch d.State {
	case StateAuthenticated:
		d.Group = GroupTabs
		if GroupOf(current) != GroupTabs {
			d.Redirect = RouteHome
		}
	case StateUnauthenticated:
		d.Group = GroupAuth
		if GroupOf(current) != GroupAuth {
			d.Redirect = RouteLogin
		}
	}

	return d
}
