// Package guard decides, per navigation, whether the current session may
// render a protected screen. The decision is a pure function over the
// session state so that every (loading, identity, profile, role)
// combination maps to exactly one outcome.
package guard

import "github.com/Karthikeya277/robot-lab-pass/internal/core/domain"

// Outcome is the result of evaluating a protected navigation.
type Outcome int

const (
	// Interstitial: session still resolving, render a wait state, no redirect.
	Interstitial Outcome = iota
	// RedirectAuth: no authenticated identity, send to the entry screen.
	RedirectAuth
	// RedirectCompleteProfile: identity exists but its profile is missing.
	RedirectCompleteProfile
	// RedirectUnauthorized: profile role is outside the route's allowed set.
	RedirectUnauthorized
	// Render: all checks passed, render the protected content.
	Render
)

// String returns the outcome name for logs and errors.
func (o Outcome) String() string {
	switch o {
	case Interstitial:
		return "interstitial"
	case RedirectAuth:
		return "redirect_auth"
	case RedirectCompleteProfile:
		return "redirect_complete_profile"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// State is the session snapshot a navigation is evaluated against.
// AllowedRoles empty means the route is open to any authenticated,
// profiled user.
type State struct {
	Loading      bool
	HasIdentity  bool
	HasProfile   bool
	Role         domain.Role
	AllowedRoles []domain.Role
}

// Evaluate applies the checks in fixed priority order. The ordering is
// load-bearing: an unauthenticated caller must always get RedirectAuth,
// never RedirectUnauthorized, so the existence of role-gated routes is
// not leaked before login.
func Evaluate(s State) Outcome {
	if s.Loading {
		return Interstitial
	}
	if !s.HasIdentity {
		return RedirectAuth
	}
	if !s.HasProfile {
		return RedirectCompleteProfile
	}
	if len(s.AllowedRoles) > 0 && !roleAllowed(s.Role, s.AllowedRoles) {
		return RedirectUnauthorized
	}
	return Render
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
