package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

func TestRun_CancelledContextStopsScan(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("foo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newCommand().Run(ctx, []string{"keyscan", "--root", dir, "--keywords", "foo", "--format", "json"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRootFlagDefault(t *testing.T) {
	for _, f := range newCommand().Flags {
		if f.Names()[0] != "root" {
			continue
		}
		if got := f.(*cli.StringFlag).Value; got != "./" {
			t.Fatalf("root default = %q, want ./", got)
		}
		return
	}
	t.Fatal("root flag not found")
}
