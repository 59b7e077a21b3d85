package main

import (
	"context"
	"strings"
	"testing"
)

func TestRunMain_Version(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil, nil)

	if code := runMain([]string{"version"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stdout.String(), "md2pdf-server "+Version) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunMain_UnknownCommand(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(nil, nil)

	if code := runMain([]string{"convert"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Unknown command: convert") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunMain_Help(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"help"}, "Commands:"},
		{[]string{"--help"}, "Commands:"},
		{[]string{"help", "serve"}, "--max-concurrent"},
		{[]string{"help", "doctor"}, "--json"},
		{[]string{"help", "config"}, "effective"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()
			env, stdout, _ := testEnv(nil, nil)
			if code := runMain(tt.args, env); code != ExitSuccess {
				t.Fatalf("exit code = %d, want 0", code)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, stdout.String())
			}
		})
	}
}

func TestRunMain_DefaultsToServe(t *testing.T) {
	t.Parallel()

	tests := [][]string{nil, {"--addr", ":0"}, {"serve"}}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Parallel()
			env, _, _ := testEnv(nil, nil)
			served := false
			env.Serve = func(ctx context.Context, srv runner) error {
				served = true
				return nil
			}
			if code := runMain(args, env); code != ExitSuccess {
				t.Fatalf("exit code = %d, want 0", code)
			}
			if !served {
				t.Error("serve command did not start the server")
			}
		})
	}
}
