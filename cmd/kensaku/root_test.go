package main

import (
	"errors"
	"testing"
)

func TestResolveRoot(t *testing.T) {
	if got, err := resolveRoot([]string{"/data"}); err != nil || got != "/data" {
		t.Errorf("resolveRoot(arg) = %q, %v", got, err)
	}

	t.Setenv(rootPathEnv, "/from-env")
	if got, err := resolveRoot(nil); err != nil || got != "/from-env" {
		t.Errorf("resolveRoot(env) = %q, %v", got, err)
	}
	// The positional argument wins over the environment.
	if got, _ := resolveRoot([]string{"/data"}); got != "/data" {
		t.Errorf("resolveRoot(arg over env) = %q", got)
	}

	t.Setenv(rootPathEnv, "")
	if _, err := resolveRoot(nil); !errors.Is(err, errNoRoot) {
		t.Errorf("resolveRoot(nothing) err = %v, want errNoRoot", err)
	}
}
