// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux

package utils

import "os"

func CurrentCredentials() (Credentials, error) { return Credentials{}, ErrUnsupported }

func SetDumpable(bool) error { return ErrUnsupported }

func IsDumpable() (bool, error) { return false, ErrUnsupported }

func CheckRootOwned(*os.File) error { return ErrUnsupported }
