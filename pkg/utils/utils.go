// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"snapconfine/pkg/logger"

	"fmt"
	"os"
)

// exit is replaced in tests
var exit = os.Exit

// Die logs a message and terminates the process with status 1.
// It is reserved for programmer errors; user input errors are returned.
func Die(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	logger.Error("%s", message)
	exit(1)
	// unreachable unless exit is stubbed
	panic(message)
}

// ErrorHandler reports err with context on stderr and optionally exits with status 1
func ErrorHandler(context string, err error, fatal bool) {
	if err != nil {
		if context != "" {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", context, err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	} else if context != "" {
		fmt.Fprintf(os.Stderr, "error: %s\n", context)
	}

	if fatal {
		exit(1)
	}
}
