// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

// Package cli parses the snap-confine command line.
//
// The accepted forms are:
//
//	snap-confine [--classic] [--base <snap-name>] <security-tag> <executable> [extra-args...]
//	snap-confine --version
//
// Option switches are only recognised before the first positional argument.
// Anything after the executable is left for the caller.
package cli

import (
	"snapconfine/pkg/logging"
	"snapconfine/pkg/scerror"
	"snapconfine/pkg/utils"

	"strings"
)

// Domain is the error domain of every error returned by this package
const Domain = "args"

// ErrUsage is the error code of usage errors. Broken caller contracts use code 0.
const ErrUsage = 1

// Usage is the banner embedded in every usage error
const Usage = "Usage: snap-confine [--classic] [--base <snap-name>] <security-tag> <executable>\n" +
	"       snap-confine --version"

// die is replaced in tests
var die = utils.Die

// ParsedArgs is the result of a successful parse
type ParsedArgs struct {
	// The security tag that the application is intended to run with
	securityTag string
	// The executable that should be invoked
	executable string
	// Name of the base snap, nil unless --base was given
	baseSnap *string

	isVersionQuery       bool
	isClassicConfinement bool
}

func usageError(format string, args ...interface{}) *scerror.Error {
	return scerror.New(Domain, ErrUsage, Usage+"\n\n"+format, args...)
}

// Parse parses argv, where argv[0] is the program name.
//
// On success it returns the parsed arguments and the unconsumed remainder,
// which always starts with argv[0]. argv itself is not modified.
func Parse(argv []string) (*ParsedArgs, []string, error) {
	vector := make([]*string, len(argv))
	for i := range argv {
		vector[i] = &argv[i]
	}

	args, consumed, err := parse(vector)
	if err != nil {
		return nil, nil, err
	}

	rest := make([]string, 0, len(argv)-consumed)
	rest = append(rest, argv[0])
	rest = append(rest, argv[consumed+1:]...)
	return args, rest, nil
}

// ParseVector parses the first *argc entries of *argv in place.
//
// On success the entries consumed by parsing are removed: slot 0 is kept,
// the unconsumed arguments are shifted down behind it, the first unused slot
// is set to nil and *argc is reduced accordingly. On failure nil is returned,
// the vector is left alone and the error is forwarded to errp, which may be nil.
func ParseVector(argc *int, argv *[]*string, errp *error) *ParsedArgs {
	if argc == nil || argv == nil {
		scerror.Forward(errp, scerror.New(Domain, 0, "cannot parse arguments, argc or argv is nil"))
		return nil
	}

	count := *argc
	vector := *argv
	if count == 0 || vector == nil {
		scerror.Forward(errp, scerror.New(Domain, 0, "cannot parse arguments, argc is zero or argv is nil"))
		return nil
	}
	if count < 0 || count > len(vector) {
		scerror.Forward(errp, scerror.New(Domain, 0,
			"cannot parse arguments, argc %d is out of range for argv of length %d", count, len(vector)))
		return nil
	}

	args, consumed, err := parse(vector[:count])
	if err != nil {
		scerror.Forward(errp, err)
		return nil
	}

	// "shift" the vector left, except for slot 0, to drop what was consumed
	i := 1
	for ; consumed+i < count; i++ {
		vector[i] = vector[consumed+i]
	}
	vector[i] = nil

	*argc = count - consumed
	return args
}

// parse scans argv and returns the index at which scanning stopped.
func parse(argv []*string) (args *ParsedArgs, optind int, err error) {
	log := logging.ArgsLogger

	defer func() {
		if err != nil {
			Release(&args)
			log.Debug("cannot parse arguments: %v", err)
		}
	}()

	argc := len(argv)
	if argc == 0 {
		return nil, 0, scerror.New(Domain, 0, "cannot parse arguments, argc is zero or argv is nil")
	}
	for i, arg := range argv {
		if arg == nil {
			return nil, 0, scerror.New(Domain, 0, "cannot parse arguments, argument at index %d is nil", i)
		}
	}

	args = &ParsedArgs{}

	// Option switches. The first token without the switch prefix ends this
	// loop so that switches and positional arguments cannot be mixed.
	for optind = 1; optind < argc; optind++ {
		arg := *argv[optind]
		if !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "--version":
			args.isVersionQuery = true
			log.Trace("version query at index %d", optind)
			return args, optind, nil
		case "--classic":
			args.isClassicConfinement = true
		case "--base":
			if optind+1 >= argc {
				return args, optind, usageError("the --base option requires an argument")
			}
			if args.baseSnap != nil {
				return args, optind, usageError("the --base option can be used only once")
			}
			base := strings.Clone(*argv[optind+1])
			args.baseSnap = &base
			optind++
		default:
			return args, optind, usageError("unrecognized command line option: %s", arg)
		}
	}

	// Positional arguments, continuing where the switches stopped.
	haveTag, haveExecutable := false, false
	for ; optind < argc; optind++ {
		if !haveTag {
			args.securityTag = strings.Clone(*argv[optind])
			haveTag = true
			continue
		}
		args.executable = strings.Clone(*argv[optind])
		haveExecutable = true
		// anything after the executable belongs to the caller
		break
	}

	if !haveTag {
		return args, optind, usageError("application or hook security tag was not provided")
	}
	if !haveExecutable {
		return args, optind, usageError("executable name was not provided")
	}

	log.Trace("security tag %q, executable %q, consumed %d of %d arguments", args.securityTag, args.executable, optind, argc)
	return args, optind, nil
}

// Release clears *p and sets it to nil. It is a no-op when p or *p is nil.
func Release(p **ParsedArgs) {
	if p == nil || *p == nil {
		return
	}
	args := *p
	args.securityTag = ""
	args.executable = ""
	args.baseSnap = nil
	*p = nil
}

// IsVersionQuery reports whether --version was given
func (a *ParsedArgs) IsVersionQuery() bool {
	if a == nil {
		die("cannot obtain version query flag from nil argument parser")
	}
	return a.isVersionQuery
}

// IsClassicConfinement reports whether --classic was given
func (a *ParsedArgs) IsClassicConfinement() bool {
	if a == nil {
		die("cannot obtain classic confinement flag from nil argument parser")
	}
	return a.isClassicConfinement
}

// SecurityTag returns the first positional argument
func (a *ParsedArgs) SecurityTag() string {
	if a == nil {
		die("cannot obtain security tag from nil argument parser")
	}
	return a.securityTag
}

// Executable returns the second positional argument
func (a *ParsedArgs) Executable() string {
	if a == nil {
		die("cannot obtain executable from nil argument parser")
	}
	return a.executable
}

// BaseSnap returns the value of --base and whether it was given
func (a *ParsedArgs) BaseSnap() (string, bool) {
	if a == nil {
		die("cannot obtain base snap name from nil argument parser")
	}
	if a.baseSnap == nil {
		return "", false
	}
	return *a.baseSnap, true
}
