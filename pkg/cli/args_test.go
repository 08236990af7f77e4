// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"snapconfine/pkg/scerror"

	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"
)

func vectorOf(args ...string) []*string {
	// one extra slot, like the terminating NULL of a C argv
	v := make([]*string, len(args)+1)
	for i := range args {
		s := args[i]
		v[i] = &s
	}
	return v
}

func valuesOf(v []*string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, *v[i])
	}
	return out
}

func TestParseSecurityTagAndExecutable(t *testing.T) {
	args, rest, err := Parse([]string{"snap-confine", "snap.app.cmd", "/usr/lib/snapd/snap-exec"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := args.SecurityTag(); got != "snap.app.cmd" {
		t.Errorf("security tag: got %q", got)
	}
	if got := args.Executable(); got != "/usr/lib/snapd/snap-exec" {
		t.Errorf("executable: got %q", got)
	}
	if base, ok := args.BaseSnap(); ok {
		t.Errorf("unexpected base snap %q", base)
	}
	if args.IsVersionQuery() || args.IsClassicConfinement() {
		t.Error("unexpected flags set")
	}
	if diff, equal := messagediff.PrettyDiff([]string{"snap-confine"}, rest); !equal {
		t.Errorf("remainder differs:\n%s", diff)
	}
}

func TestParseKeepsExtraArguments(t *testing.T) {
	argv := []string{"snap-confine", "tag", "exe", "extra1", "extra2"}
	args, rest, err := Parse(argv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.SecurityTag() != "tag" || args.Executable() != "exe" {
		t.Errorf("got tag %q exe %q", args.SecurityTag(), args.Executable())
	}
	if diff, equal := messagediff.PrettyDiff([]string{"snap-confine", "extra1", "extra2"}, rest); !equal {
		t.Errorf("remainder differs:\n%s", diff)
	}
	if diff, equal := messagediff.PrettyDiff([]string{"snap-confine", "tag", "exe", "extra1", "extra2"}, argv); !equal {
		t.Errorf("input was modified:\n%s", diff)
	}
}

func TestParseSwitches(t *testing.T) {
	tests := []struct {
		argv    []string
		classic bool
		base    string
		hasBase bool
		rest    []string
		text    string
	}{
		{[]string{"sc", "--classic", "tag", "exe"}, true, "", false, []string{"sc"}, "classic"},
		{[]string{"sc", "--base", "core18", "tag", "exe"}, false, "core18", true, []string{"sc"}, "base"},
		{[]string{"sc", "--classic", "--base", "core20", "tag", "exe", "x"}, true, "core20", true, []string{"sc", "x"}, "classic and base"},
		{[]string{"sc", "--base", "core", "--classic", "tag", "exe"}, true, "core", true, []string{"sc"}, "base then classic"},
		{[]string{"sc", "--base", "--classic", "tag", "exe"}, false, "--classic", true, []string{"sc"}, "base value looks like a switch"},
		{[]string{"sc", "--base", "", "tag", "exe"}, false, "", true, []string{"sc"}, "empty base value"},
		{[]string{"sc", "--classic", "--classic", "tag", "exe"}, true, "", false, []string{"sc"}, "classic twice"},
		{[]string{"sc", "tag", "exe", "--classic"}, false, "", false, []string{"sc", "--classic"}, "switch after positionals"},
		{[]string{"sc", "tag", "--classic"}, false, "", false, []string{"sc"}, "switch-looking executable"},
	}

	for _, test := range tests {
		args, rest, err := Parse(test.argv)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.text, err)
			continue
		}
		if args.IsClassicConfinement() != test.classic {
			t.Errorf("%s: classic = %v", test.text, args.IsClassicConfinement())
		}
		base, ok := args.BaseSnap()
		if ok != test.hasBase || base != test.base {
			t.Errorf("%s: base = %q, %v", test.text, base, ok)
		}
		if diff, equal := messagediff.PrettyDiff(test.rest, rest); !equal {
			t.Errorf("%s: remainder differs:\n%s", test.text, diff)
		}
	}
}

func TestParseSwitchLookingExecutable(t *testing.T) {
	args, _, err := Parse([]string{"sc", "tag", "--classic"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Executable() != "--classic" || args.IsClassicConfinement() {
		t.Errorf("executable %q, classic %v", args.Executable(), args.IsClassicConfinement())
	}
}

func TestParseEmptyPositionals(t *testing.T) {
	args, _, err := Parse([]string{"sc", "", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.SecurityTag() != "" || args.Executable() != "" {
		t.Errorf("got tag %q exe %q", args.SecurityTag(), args.Executable())
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		argv []string
		rest []string
	}{
		{[]string{"sc", "--version"}, []string{"sc"}},
		{[]string{"sc", "--version", "tag", "exe"}, []string{"sc", "tag", "exe"}},
		{[]string{"sc", "--version", "--frobnicate"}, []string{"sc", "--frobnicate"}},
		{[]string{"sc", "--classic", "--version", "--base"}, []string{"sc", "--base"}},
		{[]string{"sc", "--base", "core", "--version"}, []string{"sc"}},
	}

	for _, test := range tests {
		args, rest, err := Parse(test.argv)
		if err != nil {
			t.Errorf("%v: unexpected error: %v", test.argv, err)
			continue
		}
		if !args.IsVersionQuery() {
			t.Errorf("%v: not a version query", test.argv)
		}
		if args.SecurityTag() != "" || args.Executable() != "" {
			t.Errorf("%v: positionals were examined", test.argv)
		}
		if diff, equal := messagediff.PrettyDiff(test.rest, rest); !equal {
			t.Errorf("%v: remainder differs:\n%s", test.argv, diff)
		}
	}
}

func TestParseUsageErrors(t *testing.T) {
	tests := []struct {
		argv      []string
		complaint string
	}{
		{[]string{"sc"}, "application or hook security tag was not provided"},
		{[]string{"sc", "tag"}, "executable name was not provided"},
		{[]string{"sc", "--classic"}, "application or hook security tag was not provided"},
		{[]string{"sc", "--base"}, "the --base option requires an argument"},
		{[]string{"sc", "--base", "core"}, "application or hook security tag was not provided"},
		{[]string{"sc", "--base", "core18", "--base", "core20", "tag", "exe"}, "the --base option can be used only once"},
		{[]string{"sc", "--base", "core18", "--base"}, "the --base option requires an argument"},
		{[]string{"sc", "--frobnicate", "tag", "exe"}, "unrecognized command line option: --frobnicate"},
		{[]string{"sc", "-", "tag", "exe"}, "unrecognized command line option: -"},
		{[]string{"sc", "--ver", "tag", "exe"}, "unrecognized command line option: --ver"},
		{[]string{"sc", "--base=core", "tag", "exe"}, "unrecognized command line option: --base=core"},
		{[]string{"sc", "-cv", "tag", "exe"}, "unrecognized command line option: -cv"},
	}

	for _, test := range tests {
		args, rest, err := Parse(test.argv)
		if err == nil {
			t.Errorf("%v: expected an error", test.argv)
			continue
		}
		if args != nil || rest != nil {
			t.Errorf("%v: partial result returned", test.argv)
		}
		if !scerror.Match(err, Domain, ErrUsage) {
			t.Errorf("%v: not a usage error: %#v", test.argv, err)
		}
		want := Usage + "\n\n" + test.complaint
		if err.Error() != want {
			t.Errorf("%v: got message %q, want %q", test.argv, err.Error(), want)
		}
	}
}

func TestUsageBanner(t *testing.T) {
	_, _, err := Parse([]string{"sc"})
	lines := strings.Split(err.Error(), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "Usage: snap-confine [--classic] [--base <snap-name>] <security-tag> <executable>" {
		t.Errorf("first banner line: %q", lines[0])
	}
	if lines[1] != "       snap-confine --version" {
		t.Errorf("second banner line: %q", lines[1])
	}
	if lines[2] != "" {
		t.Errorf("missing blank line: %q", lines[2])
	}
}

func TestParseEmptyVector(t *testing.T) {
	_, _, err := Parse(nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !scerror.Match(err, Domain, 0) {
		t.Errorf("not a contract error: %#v", err)
	}
	if err.Error() != "cannot parse arguments, argc is zero or argv is nil" {
		t.Errorf("got %q", err.Error())
	}
}

func TestParseVectorShift(t *testing.T) {
	tests := []struct {
		args []string
		argc int
		rest []string
	}{
		{[]string{"sc", "tag", "exe"}, 1, []string{"sc"}},
		{[]string{"sc", "tag", "exe", "extra1", "extra2"}, 3, []string{"sc", "extra1", "extra2"}},
		{[]string{"sc", "--classic", "--base", "core", "tag", "exe", "-x"}, 2, []string{"sc", "-x"}},
		{[]string{"sc", "--version"}, 1, []string{"sc"}},
		{[]string{"sc", "--version", "a", "b"}, 3, []string{"sc", "a", "b"}},
	}

	for _, test := range tests {
		argc := len(test.args)
		argv := vectorOf(test.args...)
		var err error

		args := ParseVector(&argc, &argv, &err)
		if err != nil || args == nil {
			t.Errorf("%v: unexpected failure: %v", test.args, err)
			continue
		}
		if argc != test.argc {
			t.Errorf("%v: argc = %d, want %d", test.args, argc, test.argc)
			continue
		}
		if diff, equal := messagediff.PrettyDiff(test.rest, valuesOf(argv, argc)); !equal {
			t.Errorf("%v: vector differs:\n%s", test.args, diff)
		}
		if argv[argc] != nil {
			t.Errorf("%v: slot %d not terminated", test.args, argc)
		}
	}
}

func TestParseVectorWithoutTerminatorSlot(t *testing.T) {
	s := []string{"sc", "tag", "exe"}
	argv := []*string{&s[0], &s[1], &s[2]}
	argc := 3

	args := ParseVector(&argc, &argv, nil)
	if args == nil {
		t.Fatal("unexpected failure")
	}
	if argc != 1 || argv[0] != &s[0] || argv[1] != nil {
		t.Errorf("argc %d, argv %v", argc, argv)
	}
}

func TestParseVectorLeavesVectorOnFailure(t *testing.T) {
	argc := 3
	argv := vectorOf("sc", "--frobnicate", "tag")
	before := append([]*string(nil), argv...)
	var err error

	if args := ParseVector(&argc, &argv, &err); args != nil {
		t.Fatal("expected nil result")
	}
	if !scerror.Match(err, Domain, ErrUsage) {
		t.Errorf("not a usage error: %v", err)
	}
	if argc != 3 {
		t.Errorf("argc changed to %d", argc)
	}
	for i := range before {
		if argv[i] != before[i] {
			t.Errorf("slot %d changed", i)
		}
	}
}

func TestParseVectorContractViolations(t *testing.T) {
	zero := 0
	three := 3
	two := 2
	five := 5
	minus := -1
	good := vectorOf("sc", "tag", "exe")
	var nilVector []*string
	holey := vectorOf("sc", "tag", "exe")
	holey[1] = nil
	holeAtZero := vectorOf("sc", "--frobnicate")
	holeAtZero[0] = nil

	tests := []struct {
		argc *int
		argv *[]*string
		msg  string
	}{
		{nil, &good, "cannot parse arguments, argc or argv is nil"},
		{&three, nil, "cannot parse arguments, argc or argv is nil"},
		{&zero, &good, "cannot parse arguments, argc is zero or argv is nil"},
		{&three, &nilVector, "cannot parse arguments, argc is zero or argv is nil"},
		{&minus, &good, "cannot parse arguments, argc -1 is out of range for argv of length 4"},
		{&five, &good, "cannot parse arguments, argc 5 is out of range for argv of length 4"},
		{&three, &holey, "cannot parse arguments, argument at index 1 is nil"},
		{&two, &holeAtZero, "cannot parse arguments, argument at index 0 is nil"},
	}

	for i, test := range tests {
		var err error
		if args := ParseVector(test.argc, test.argv, &err); args != nil {
			t.Errorf("case %d: expected nil result", i)
		}
		if !scerror.Match(err, Domain, 0) {
			t.Errorf("case %d: not a contract error: %v", i, err)
			continue
		}
		if err.Error() != test.msg {
			t.Errorf("case %d: got %q, want %q", i, err.Error(), test.msg)
		}
	}
}

func TestParseVectorNilSlotBeyondArgcIsIgnored(t *testing.T) {
	argv := vectorOf("sc", "tag", "exe", "extra")
	argv[3] = nil
	argc := 3

	if args := ParseVector(&argc, &argv, nil); args == nil {
		t.Fatal("unexpected failure")
	}
}

func TestParseVectorNilErrorSink(t *testing.T) {
	argc := 1
	argv := vectorOf("sc")
	if args := ParseVector(&argc, &argv, nil); args != nil {
		t.Fatal("expected nil result")
	}
}

func TestParseVectorChainsErrors(t *testing.T) {
	earlier := errors.New("earlier failure")
	err := earlier

	argc := 2
	argv := vectorOf("sc", "tag")
	ParseVector(&argc, &argv, &err)

	if !errors.Is(err, earlier) {
		t.Errorf("earlier error lost: %v", err)
	}
	if !scerror.Match(err, Domain, ErrUsage) {
		t.Errorf("usage error not chained: %v", err)
	}
}

func TestRelease(t *testing.T) {
	args, _, err := Parse([]string{"sc", "--base", "core", "tag", "exe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alias := args

	Release(&args)
	if args != nil {
		t.Fatal("handle not cleared")
	}
	if alias.securityTag != "" || alias.executable != "" || alias.baseSnap != nil {
		t.Error("fields not released")
	}

	Release(&args)
	Release(nil)
}

type dieCalled string

func expectDie(t *testing.T, want string, fn func()) {
	t.Helper()
	saved := die
	die = func(format string, args ...interface{}) {
		panic(dieCalled(fmt.Sprintf(format, args...)))
	}
	defer func() { die = saved }()

	defer func() {
		r := recover()
		msg, ok := r.(dieCalled)
		if !ok {
			t.Errorf("expected die, recovered %v", r)
			return
		}
		if string(msg) != want {
			t.Errorf("die message %q, want %q", msg, want)
		}
	}()
	fn()
}

func TestAccessorsDieOnNil(t *testing.T) {
	var args *ParsedArgs

	expectDie(t, "cannot obtain version query flag from nil argument parser", func() { args.IsVersionQuery() })
	expectDie(t, "cannot obtain classic confinement flag from nil argument parser", func() { args.IsClassicConfinement() })
	expectDie(t, "cannot obtain security tag from nil argument parser", func() { args.SecurityTag() })
	expectDie(t, "cannot obtain executable from nil argument parser", func() { args.Executable() })
	expectDie(t, "cannot obtain base snap name from nil argument parser", func() { args.BaseSnap() })
}

func TestParseCopiesStrings(t *testing.T) {
	argv := []string{"sc", "--base", "core", "tag", "exe"}
	args, _, err := Parse(argv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	argv[2], argv[3], argv[4] = "x", "y", "z"

	base, _ := args.BaseSnap()
	if base != "core" || args.SecurityTag() != "tag" || args.Executable() != "exe" {
		t.Errorf("result aliases the input: %q %q %q", base, args.SecurityTag(), args.Executable())
	}
}
