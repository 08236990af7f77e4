// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by credential helpers on platforms other than linux
var ErrUnsupported = errors.New("operation is only supported on linux")

// Credentials holds the real, effective and saved user and group ids of the process
type Credentials struct {
	RealUID, EffectiveUID, SavedUID int
	RealGID, EffectiveGID, SavedGID int
}

// IsPrivileged reports whether the process runs with an effective uid of root
func (c Credentials) IsPrivileged() bool {
	return c.EffectiveUID == 0
}

// IsSetuid reports whether privileges were gained through a setuid binary
func (c Credentials) IsSetuid() bool {
	return c.EffectiveUID != c.RealUID
}

// IsTrustedCaller reports whether the invoking user is root and no privilege
// was gained through a setuid or setgid binary. Only a trusted caller may
// select files through the environment.
func (c Credentials) IsTrustedCaller() bool {
	return c.RealUID == 0 && c.EffectiveUID == 0 && c.RealGID == c.EffectiveGID
}

func (c Credentials) String() string {
	return fmt.Sprintf("uid=%d/%d/%d gid=%d/%d/%d",
		c.RealUID, c.EffectiveUID, c.SavedUID,
		c.RealGID, c.EffectiveGID, c.SavedGID)
}
