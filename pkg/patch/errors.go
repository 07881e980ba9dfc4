// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package patch

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// 🚨 Failure kinds. Every error returned by this module for a document wraps
// exactly one of these.
var (
	ErrRead        = errors.Base("reading document")
	ErrBackup      = errors.Base("writing backup")
	ErrNoMatch     = errors.Base("required rule did not match")
	ErrWrite       = errors.Base("writing document")
	ErrInvalidRule = errors.Base("invalid rule")
)

// Kind is a short tag naming the failure kind of err.
type Kind string

const (
	KindNone        Kind = ""
	KindRead        Kind = "read"
	KindBackup      Kind = "backup"
	KindNoMatch     Kind = "no-match"
	KindWrite       Kind = "write"
	KindInvalidRule Kind = "invalid-rule"
	KindCanceled    Kind = "canceled"
	KindUnknown     Kind = "unknown"
)

// KindOf classifies err into one of the known failure kinds.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrRead):
		return KindRead
	case errors.Is(err, ErrBackup):
		return KindBackup
	case errors.Is(err, ErrNoMatch):
		return KindNoMatch
	case errors.Is(err, ErrWrite):
		return KindWrite
	case errors.Is(err, ErrInvalidRule):
		return KindInvalidRule
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}
