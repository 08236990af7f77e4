// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

// Package scerror carries failures tagged with a domain and a numeric code,
// so callers can tell usage mistakes apart from broken caller contracts.
package scerror

import (
	"snapconfine/pkg/utils"

	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Error is a failure with a domain, a domain-specific code and a message
type Error struct {
	Domain string
	Code   int
	Msg    string
}

// New creates an error in domain with code and a printf-style message
func New(domain string, code int, format string, args ...interface{}) *Error {
	return &Error{
		Domain: domain,
		Code:   code,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return e.Msg
}

// Is matches another *Error with the same domain and code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Domain == t.Domain && e.Code == t.Code
}

// Forward stores err in *dst.
//
// A nil err leaves *dst alone and a nil dst discards err. When *dst already
// holds an error the two are chained, keeping the earlier one first.
func Forward(dst *error, err error) {
	if err == nil || dst == nil {
		return
	}
	if *dst == nil {
		*dst = err
		return
	}
	*dst = multierror.Append(*dst, err)
}

// Match reports whether err, or any error chained into it, is an *Error
// with the given domain and code.
func Match(err error, domain string, code int) bool {
	return errors.Is(err, &Error{Domain: domain, Code: code})
}

// DieOnError terminates the process when err is not nil
func DieOnError(err error) {
	if err == nil {
		return
	}
	var e *Error
	if errors.As(err, &e) {
		utils.Die("%s (domain %s, code %d)", e.Msg, e.Domain, e.Code)
	}
	utils.Die("%v", err)
}
