package browser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quillhq/quill/internal/generator"
	"github.com/quillhq/quill/internal/output"
)

type fakeRunner struct {
	calls  [][]string
	result generator.Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (generator.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.result, f.err
}

func (f *fakeRunner) RunAttached(_ context.Context, name string, args ...string) (int, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return 0, f.err
}

func TestOpenPerPlatform(t *testing.T) {
	const url = "http://localhost:4000/"

	tests := []struct {
		goos string
		want string
	}{
		{"linux", "xdg-open " + url},
		{"freebsd", "xdg-open " + url},
		{"darwin", "open " + url},
		{"windows", "cmd /c start  " + url},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			f := &fakeRunner{}
			o := &Opener{runner: f, goos: tt.goos}
			if err := o.Open(context.Background(), url); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if len(f.calls) != 1 {
				t.Fatalf("calls = %d, want 1", len(f.calls))
			}
			if got := strings.Join(f.calls[0], " "); got != tt.want {
				t.Errorf("command = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenHandlerMissing(t *testing.T) {
	f := &fakeRunner{err: errors.New("exec: \"xdg-open\": executable file not found in $PATH")}
	o := &Opener{runner: f, goos: "linux"}

	err := o.Open(context.Background(), "http://localhost:4000/")
	if err == nil {
		t.Fatal("Open() expected error, got nil")
	}
	if code := output.GetExitCode(err); code != output.ExitExternalToolError {
		t.Errorf("exit code = %d, want %d", code, output.ExitExternalToolError)
	}
}

func TestOpenHandlerFails(t *testing.T) {
	f := &fakeRunner{result: generator.Result{ExitCode: 1}}
	o := &Opener{runner: f, goos: "linux"}

	err := o.Open(context.Background(), "http://localhost:4000/")
	if err == nil {
		t.Fatal("Open() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "http://localhost:4000/") {
		t.Errorf("error does not name the url: %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	o := New(nil)
	if o.runner == nil {
		t.Fatal("New(nil) left runner unset")
	}
	if o.goos == "" {
		t.Fatal("New(nil) left goos unset")
	}
}
