package domain

import (
	"encoding/json"
	"sort"
)

// Group is a permission group the principal belongs to. Order of membership
// is preserved as returned by the API.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Principal is the authenticated user as returned by GET /api/auth/me/.
// It is replaced wholesale on every session refresh and cleared on logout;
// no other component mutates it.
type Principal struct {
	ID          int64         `json:"id"`
	DisplayName string        `json:"displayName"`
	LoginName   string        `json:"loginName"`
	Email       string        `json:"email"`
	Permissions PermissionSet `json:"permissions"`
	Groups      []Group       `json:"groups"`
}

// Label returns the name to show in the top bar.
func (p Principal) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.LoginName != "" {
		return p.LoginName
	}
	return "unknown"
}

// PermissionSet is the principal's granted permission strings.
type PermissionSet map[string]struct{}

// Has reports whether the set contains the exact permission string.
func (s PermissionSet) Has(perm string) bool {
	_, ok := s[perm]
	return ok
}

// HasAny reports whether the set contains at least one of the given
// permissions. An empty list is vacuously satisfied (no gate).
func (s PermissionSet) HasAny(perms ...string) bool {
	if len(perms) == 0 {
		return true
	}
	for _, p := range perms {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts the API's JSON array of permission strings.
func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	set := make(PermissionSet, len(list))
	for _, p := range list {
		set[p] = struct{}{}
	}
	*s = set
	return nil
}

// MarshalJSON renders the set back to a JSON array (test fixtures, CLI output).
func (s PermissionSet) MarshalJSON() ([]byte, error) {
	list := make([]string, 0, len(s))
	for p := range s {
		list = append(list, p)
	}
	sort.Strings(list)
	return json.Marshal(list)
}
