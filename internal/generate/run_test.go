package generate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antithesishq/promptgen/internal/config"
	"github.com/antithesishq/promptgen/internal/gentest"
	"github.com/antithesishq/promptgen/internal/sink"
	"go.akshayshah.org/attest"
)

func TestRunnerRun(t *testing.T) {
	lib := t.TempDir()
	attest.Ok(t, os.WriteFile(filepath.Join(lib, "color.txt"), []byte("red\nblue\n"), 0o644))
	attest.Ok(t, os.WriteFile(filepath.Join(lib, "shape.txt"), []byte("circle\n"), 0o644))
	attest.Ok(t, os.WriteFile(filepath.Join(lib, "empty.txt"), nil, 0o644))
	listFile := filepath.Join(t.TempDir(), "lists.yaml")
	attest.Ok(t, os.WriteFile(listFile, []byte("shape: [square]\n"), 0o644))

	out := t.TempDir()
	cfg := config.Default()
	cfg.Template = "a {color} {shape}, {material}"
	cfg.Count = 4
	cfg.ExhaustList = true // both colors come up before either repeats
	cfg.LibraryPath = lib
	cfg.Lists = listFile
	cfg.Seed = 17
	cfg.SaveToFilePath = out

	var echo bytes.Buffer
	s, err := NewSink(t.Context(), cfg)
	attest.Ok(t, err)
	r := &Runner{
		Config: cfg,
		Logger: gentest.NewLogger(t),
		Out:    &echo,
		Sink:   s,
	}
	res, err := r.Run(t.Context(), map[string][]string{"material": {"glass"}})
	attest.Ok(t, err)

	// The YAML file overrides the library's shape list.
	for _, text := range res.Prompts {
		attest.True(t, strings.Contains(text, "square"), attest.Sprintf("prompt %q", text))
		attest.True(t, strings.HasSuffix(text, ", glass"))
	}

	lines := strings.Split(strings.TrimSpace(echo.String()), "\n")
	attest.Equal(t, len(lines), 3)
	attest.Equal(t, lines[0], res.Last)
	attest.Equal(t, lines[1], "2 prompts generated")
	attest.True(t, strings.HasPrefix(lines[2], "Saved to "+filepath.Join(out, "prompts-")))

	saved, err := filepath.Glob(filepath.Join(out, "prompts-*.txt"))
	attest.Ok(t, err)
	attest.Equal(t, len(saved), 1)
	data, err := os.ReadFile(saved[0])
	attest.Ok(t, err)
	attest.Equal(t, string(data), strings.Join(res.Sorted(), "\n"))
}

func TestRunnerQuiet(t *testing.T) {
	cfg := config.Default()
	cfg.Template = "{x}"
	cfg.DefaultList = false
	cfg.Echo = false
	cfg.SaveToFile = false

	s, err := NewSink(t.Context(), cfg)
	attest.Ok(t, err)
	attest.True(t, s == nil)

	var echo bytes.Buffer
	r := &Runner{Config: cfg, Out: &echo, Rand: NewRand(3)}
	res, err := r.Run(t.Context(), map[string][]string{"x": {"only"}})
	attest.Ok(t, err)
	attest.Equal(t, res.Last, "only")
	attest.Zero(t, echo.Len())
}

func TestRunnerErrors(t *testing.T) {
	cfg := config.Default()
	r := &Runner{Config: cfg}
	_, err := r.Run(t.Context(), nil)
	attest.True(t, err != nil) // no template

	cfg.Template = "{x}"
	cfg.LibraryPath = filepath.Join(t.TempDir(), "missing")
	r = &Runner{Config: cfg}
	_, err = r.Run(t.Context(), nil)
	attest.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewSinkLocal(t *testing.T) {
	cfg := config.Default()
	cfg.SaveToFilePath = t.TempDir()
	s, err := NewSink(t.Context(), cfg)
	attest.Ok(t, err)
	f, ok := s.(*sink.File)
	attest.True(t, ok)
	attest.Equal(t, f.Dir, cfg.SaveToFilePath)
}

func TestRunnerRunValidates(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultList = false
	r := &Runner{Config: cfg, Logger: gentest.NewLogger(t)}
	_, err := r.Run(t.Context(), map[string][]string{"x": {"a"}})
	attest.True(t, err != nil && strings.Contains(err.Error(), "template is required"), attest.Sprintf("error %v", err))
}
