// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux

package utils

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CurrentCredentials returns the credentials of the calling process
func CurrentCredentials() (Credentials, error) {
	ruid, euid, suid := unix.Getresuid()
	rgid, egid, sgid := unix.Getresgid()
	return Credentials{
		RealUID: ruid, EffectiveUID: euid, SavedUID: suid,
		RealGID: rgid, EffectiveGID: egid, SavedGID: sgid,
	}, nil
}

// SetDumpable toggles PR_SET_DUMPABLE for the calling process
func SetDumpable(dumpable bool) error {
	var value uintptr
	if dumpable {
		value = 1
	}
	if err := unix.Prctl(unix.PR_SET_DUMPABLE, value, 0, 0, 0); err != nil {
		return fmt.Errorf("cannot set dumpable flag: %w", err)
	}
	return nil
}

// IsDumpable reports the current PR_GET_DUMPABLE value
func IsDumpable() (bool, error) {
	value, err := unix.PrctlRetInt(unix.PR_GET_DUMPABLE, 0, 0, 0, 0)
	if err != nil {
		return false, fmt.Errorf("cannot query dumpable flag: %w", err)
	}
	return value != 0, nil
}

// CheckRootOwned fails unless f is owned by root and not writable by group or others
func CheckRootOwned(f *os.File) error {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return fmt.Errorf("cannot stat %s: %w", f.Name(), err)
	}
	if st.Uid != 0 {
		return fmt.Errorf("%s is not owned by root", f.Name())
	}
	if st.Mode&(unix.S_IWGRP|unix.S_IWOTH) != 0 {
		return fmt.Errorf("%s is writable by group or others", f.Name())
	}
	return nil
}
