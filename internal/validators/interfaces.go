// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks auth requests, vaults, scopes and edited
// action mapper entries before the services act on them.
//
// Validation is keyed on the dynamic type of the value, and callers may
// name fields (FieldSecret, FieldScope, ...) to check only part of it.
// The service layer wraps each service with a validating decorator, so
// the inner implementations assume well-formed input.
package validators

import "context"

// Validator checks a vault model, optionally restricted to the named fields.
type Validator interface {
	// Validate returns ErrUnsupportedType for values it does not know.
	Validate(context.Context, any, ...string) error
}
