package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

const helperEnv = "CFIMP_IMPORTER_HELPER"

// TestHelperProcess stands in for the Contentful CLI. It prints its
// arguments and exits with the status in CFIMP_IMPORTER_EXIT.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	fmt.Fprint(os.Stdout, strings.Join(args, " "))

	code, _ := strconv.Atoi(os.Getenv("CFIMP_IMPORTER_EXIT"))
	os.Exit(code)
}

func helperCommand(exitCode int) (*Command, *bytes.Buffer) {
	var out bytes.Buffer
	return &Command{
		Program:     os.Args[0],
		Prefix:      []string{"-test.run=TestHelperProcess", "--"},
		Space:       "sp1",
		Environment: "master",
		ContentFile: "import.json",
		Stdout:      &out,
		Stderr:      &bytes.Buffer{},
		Env: append(os.Environ(),
			helperEnv+"=1",
			"CFIMP_IMPORTER_EXIT="+strconv.Itoa(exitCode)),
	}, &out
}

func TestCommand_Args(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  []string
	}{
		{
			name: "no token",
			want: []string{"space", "import", "--environment-id", "dev", "--space-id", "sp1", "--content-file", "f.json"},
		},
		{
			name:  "plain token",
			token: "abc",
			want:  []string{"space", "import", "--environment-id", "dev", "--space-id", "sp1", "--content-file", "f.json", "--management-token", "abc"},
		},
		{
			name:  "flag form",
			token: "--management-token xyz",
			want:  []string{"space", "import", "--environment-id", "dev", "--space-id", "sp1", "--content-file", "f.json", "--management-token", "xyz"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCommand("", "sp1", "dev", "f.json", tt.token)
			if c.Program != DefaultProgram {
				t.Errorf("Program = %q, want %q", c.Program, DefaultProgram)
			}
			if got := c.Args(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCommand_Prefix(t *testing.T) {
	c := NewCommand("npx contentful", "sp1", "master", "f.json", "secret")
	if c.Program != "npx" || !reflect.DeepEqual(c.Prefix, []string{"contentful"}) {
		t.Errorf("Program/Prefix = %q/%q", c.Program, c.Prefix)
	}
	if s := c.String(); strings.Contains(s, "secret") || !strings.HasPrefix(s, "npx contentful space import") {
		t.Errorf("String() = %q", s)
	}
}

func TestCommand_Run(t *testing.T) {
	c, out := helperCommand(0)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "space import --environment-id master --space-id sp1 --content-file import.json"
	if got := out.String(); got != want {
		t.Errorf("importer saw %q, want %q", got, want)
	}
}

func TestCommand_RunFailure(t *testing.T) {
	c, _ := helperCommand(3)
	err := c.Run(context.Background())

	var ece *ExternalCommandError
	if !errors.As(err, &ece) {
		t.Fatalf("Run() error = %v, want ExternalCommandError", err)
	}
	if ece.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", ece.ExitCode)
	}
}

func TestCommand_RunMissingProgram(t *testing.T) {
	c := NewCommand("cfimp-no-such-importer-binary", "sp1", "master", "f.json", "")
	err := c.Run(context.Background())

	var ece *ExternalCommandError
	if !errors.As(err, &ece) {
		t.Fatalf("Run() error = %v, want ExternalCommandError", err)
	}
	if ece.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", ece.ExitCode)
	}
}
