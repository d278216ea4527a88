// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"slices"
	"strings"
)

// Action is a named permission type granted to a token hash by the server
// (e.g. "view", "update", "manage", "delete").
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionCreate Action = "create"
	ActionManage Action = "manage"
	ActionDelete Action = "delete"
	ActionPush   Action = "push"
	ActionAuth   Action = "auth"

	// ActionCatchall marks a hash that still holds some capability the
	// server does not disclose by name. The server reports protected
	// actions as this value.
	ActionCatchall Action = "other"
)

// ParseAction normalizes a raw action name received from the server or the
// user. Names are trimmed and lower-cased; an empty name maps to
// [ActionCatchall].
func ParseAction(raw string) Action {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return ActionCatchall
	}
	return Action(name)
}

// IsCatchall reports whether a is the catch-all variant.
func (a Action) IsCatchall() bool {
	return a == ActionCatchall
}

// ActionSet is an unordered set of actions. A nil ActionSet inside a
// [VaultPatch] means "delete this hash".
type ActionSet map[Action]struct{}

// NewActionSet builds a set from the given actions.
func NewActionSet(actions ...Action) ActionSet {
	set := make(ActionSet, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// Has reports whether a is a member of s.
func (s ActionSet) Has(a Action) bool {
	_, ok := s[a]
	return ok
}

// Add inserts a into s. s must be non-nil.
func (s ActionSet) Add(a Action) {
	s[a] = struct{}{}
}

// Intersects reports whether s and other share at least one action.
func (s ActionSet) Intersects(other ActionSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for a := range small {
		if large.Has(a) {
			return true
		}
	}
	return false
}

// Intersection returns the actions present in both sets.
func (s ActionSet) Intersection(other ActionSet) ActionSet {
	out := make(ActionSet)
	for a := range s {
		if other.Has(a) {
			out.Add(a)
		}
	}
	return out
}

// Union returns a new set containing the actions of s and other.
func (s ActionSet) Union(other ActionSet) ActionSet {
	out := make(ActionSet, len(s)+len(other))
	for a := range s {
		out.Add(a)
	}
	for a := range other {
		out.Add(a)
	}
	return out
}

// Concrete returns s without the catch-all variant.
func (s ActionSet) Concrete() ActionSet {
	out := make(ActionSet, len(s))
	for a := range s {
		if !a.IsCatchall() {
			out.Add(a)
		}
	}
	return out
}

// Clone returns an independent copy of s. Cloning nil yields nil.
func (s ActionSet) Clone() ActionSet {
	if s == nil {
		return nil
	}
	out := make(ActionSet, len(s))
	for a := range s {
		out.Add(a)
	}
	return out
}

// Sorted returns the members of s in lexical order.
func (s ActionSet) Sorted() []Action {
	out := make([]Action, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted array so serialized vaults are
// stable across runs.
func (s ActionSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of action names. JSON null leaves the set
// nil.
func (s *ActionSet) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	set := make(ActionSet, len(raw))
	for _, name := range raw {
		set.Add(ParseAction(name))
	}
	*s = set
	return nil
}
