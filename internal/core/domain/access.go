package domain

import "errors"

var ErrForbidden = errors.New("access forbidden")
var ErrUnauthorized = errors.New("missing or invalid authentication")

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role string
}

// CanAccess decides whether the actor may touch a resource whose owning
// client record carries ownerUserID and assignedCPAID. Rules, first match
// wins:
//
//  1. ADMIN may access everything.
//  2. CPA may access cases assigned to them.
//  3. CLIENT may access their own case.
//  4. Everything else is denied.
//
// The same predicate covers clients, tasks, documents and messages; children
// inherit the owner/assignee of their client case.
func (a Actor) CanAccess(ownerUserID, assignedCPAID string) bool {
	if a.ID == "" {
		return false
	}
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleCPA:
		return assignedCPAID == a.ID
	case RoleClient:
		return ownerUserID == a.ID
	}
	return false
}

// AccessScope is the query-filter form of CanAccess used for collection
// reads. Empty fields mean "no restriction"; Deny short-circuits to an empty
// result set.
type AccessScope struct {
	OwnerUserID   string
	AssignedCPAID string
	Deny          bool
}

// Scope derives the list filter for the actor's role. Filtering a collection
// with the returned scope selects exactly the items CanAccess would permit;
// actors CanAccess always denies (no identity, unrecognized role) get a
// scope that matches nothing.
func (a Actor) Scope() AccessScope {
	if a.ID == "" {
		return AccessScope{Deny: true}
	}
	switch a.Role {
	case RoleAdmin:
		return AccessScope{}
	case RoleCPA:
		return AccessScope{AssignedCPAID: a.ID}
	case RoleClient:
		return AccessScope{OwnerUserID: a.ID}
	}
	return AccessScope{Deny: true}
}

// Matches reports whether a case with the given owner/assignee falls inside
// the scope.
func (s AccessScope) Matches(ownerUserID, assignedCPAID string) bool {
	if s.Deny {
		return false
	}
	if s.OwnerUserID != "" && s.OwnerUserID != ownerUserID {
		return false
	}
	if s.AssignedCPAID != "" && s.AssignedCPAID != assignedCPAID {
		return false
	}
	return true
}

// Restricted reports whether the scope excludes anything at all.
func (s AccessScope) Restricted() bool {
	return s.Deny || s.OwnerUserID != "" || s.AssignedCPAID != ""
}
