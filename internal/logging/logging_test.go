package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestComponentField(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := Component(New(&buf, zerolog.InfoLevel), "planner")
	log.Info().Str("item", "sword").Msg("item chosen")
	log.Debug().Msg("dropped")

	out := buf.String()
	for _, want := range []string{`"component":"planner"`, `"item":"sword"`, `"message":"item chosen"`, `"time":`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %q", want, out)
		}
	}
	if strings.Contains(out, "dropped") {
		t.Fatalf("debug record should be filtered at info level")
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "planner.log")
	log, closer, err := Open(path, "debug")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Debug().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(blob), `"message":"hello"`) {
		t.Fatalf("unexpected log content: %q", blob)
	}
}

func TestOpenRejectsLevel(t *testing.T) {
	t.Parallel()

	if _, _, err := Open("", "shout"); err == nil {
		t.Fatalf("expected invalid level error")
	}
}
