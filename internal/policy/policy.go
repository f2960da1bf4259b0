// Package policy decides, per navigation event, whether a visitor may land on
// a route. It is a pure function of (principal, path); the caller performs the
// actual redirect.
package policy

import (
	"strings"

	"github.com/google/uuid"

	"github.com/danielotieno/ledgerbook/internal/domain"
)

const (
	PathRoot           = "/"
	PathLogin          = "/login"
	PathSignup         = "/signup"
	PathForgotPassword = "/forgot-password"
	PathDashboard      = "/dashboard"
	PathAdmin          = "/admin"
	PathTransactions   = "/transactions"
)

type Action string

const (
	ActionAllow    Action = "allow"
	ActionRedirect Action = "redirect"

	// ActionPending means the principal's role is still being resolved. No
	// redirect may fire; the caller waits and re-evaluates.
	ActionPending Action = "pending"
)

type Decision struct {
	Action   Action
	Location string
}

// Principal is the authenticated identity the engine evaluates. A nil
// *Principal means anonymous. RolePending marks a principal whose role lookup
// has not completed yet; it is distinct from an empty Role, which means the
// lookup finished without yielding admin (the safe default).
type Principal struct {
	UID         uuid.UUID
	Role        domain.Role
	RolePending bool
}

var allow = Decision{Action: ActionAllow}

func redirectTo(path string) Decision {
	return Decision{Action: ActionRedirect, Location: path}
}

// Decide evaluates the navigation rules in tie-break order:
//
//  1. role resolution pending: no decision
//  2. anonymous: public and auth-entry paths allowed, everything else to /login
//  3. authenticated on a public or auth-entry path: to the role's home
//  4. admin: admin and record areas allowed, everything else to admin home
//  5. user: own record area only, everything else to the own-record path
//
// Unknown paths for an authenticated non-admin fall through to the own-record
// redirect: deny by default.
func Decide(p *Principal, path string) Decision {
	if p != nil && p.RolePending {
		return Decision{Action: ActionPending}
	}

	if p == nil {
		if isPublic(path) || isAuthEntry(path) {
			return allow
		}
		return redirectTo(PathLogin)
	}

	if isPublic(path) || isAuthEntry(path) {
		return redirectTo(HomePath(p))
	}

	if p.Role == domain.RoleAdmin {
		if inAdminArea(path) || inRecordArea(path) {
			return allow
		}
		return redirectTo(PathAdmin)
	}

	// Non-admin, including a principal whose role lookup failed. A failed
	// lookup must never grant admin.
	if path == PathDashboard {
		return allow
	}
	if owner, ok := transactionsOwner(path); ok && owner == p.UID {
		return allow
	}
	return redirectTo(OwnRecordPath(p.UID))
}

// HomePath is where a principal lands after authenticating: admins on the
// admin console, users on their own transaction record.
func HomePath(p *Principal) string {
	if p.Role == domain.RoleAdmin {
		return PathAdmin
	}
	return OwnRecordPath(p.UID)
}

func OwnRecordPath(uid uuid.UUID) string {
	return PathTransactions + "/" + uid.String()
}

func isPublic(path string) bool {
	return path == PathRoot
}

func isAuthEntry(path string) bool {
	switch path {
	case PathLogin, PathSignup, PathForgotPassword:
		return true
	}
	return false
}

func inAdminArea(path string) bool {
	return path == PathAdmin || strings.HasPrefix(path, PathAdmin+"/")
}

func inRecordArea(path string) bool {
	if path == PathDashboard {
		return true
	}
	return path == PathTransactions || strings.HasPrefix(path, PathTransactions+"/")
}

// transactionsOwner extracts the uid a record-viewing path references.
func transactionsOwner(path string) (uuid.UUID, bool) {
	rest, found := strings.CutPrefix(path, PathTransactions+"/")
	if !found || rest == "" || strings.Contains(rest, "/") {
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(rest)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}
