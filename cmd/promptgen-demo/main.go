// Command promptgen-demo generates a batch of game-asset prompts from a
// built-in set of lists.
package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/antithesishq/promptgen/internal/config"
	"github.com/antithesishq/promptgen/internal/generate"
)

const (
	template = "game asset of a {who} with {skin} skin, {art_by}, {my_styles}"
	count    = 10
	exhaust  = true
	library  = "library" // optional; built-in lists win on name collisions
)

func main() {
	logger := slog.Default()

	cfg := config.Default()
	cfg.Template = template
	cfg.Count = count
	cfg.ExhaustList = exhaust
	cfg.LibraryPath = library
	if _, err := os.Stat(library); err != nil {
		logger.Info("library not found, using built-in lists only", "path", library)
		cfg.DefaultList = false
	}

	ctx := context.Background()
	s, err := generate.NewSink(ctx, cfg)
	if err != nil {
		logger.Error("create sink failed", "err", err)
		os.Exit(1)
	}
	runner := &generate.Runner{
		Config: cfg,
		Logger: logger,
		Out:    os.Stdout,
		Sink:   s,
	}
	if _, err := runner.Run(ctx, demoLists()); err != nil {
		logger.Error("generate failed", "err", err)
		os.Exit(1)
	}
}

func demoLists() map[string][]string {
	return map[string][]string{
		"action": {
			"standing",
			"sitting",
			"laying",
			"walking",
			"running",
			"dancing",
			"playing",
		},
		"artist": {
			"Alphonse Mucha",
			"Moebius",
			"Hiroshi Yoshida",
			"Zdzislaw Beksinski",
		},
		"render": {
			"octane render",
			"unreal engine",
			"ray tracing",
			"volumetric fog",
		},
		"gallery": {
			"trending on artstation",
			"featured on behance",
		},
		"resolution": {
			"8k",
			"4k resolution",
			"highly detailed",
		},
		"detail": {
			"intricate",
			"sharp focus",
			"fine detail",
		},
		"lighting": {
			"rim lighting",
			"studio lighting",
			"golden hour",
		},
		"style": {
			"concept art",
			"digital painting",
			"isometric",
			"low poly",
			"cel shaded",
		},
		"color": {
			"pastel colors",
			"vibrant colors",
			"monochrome",
		},
		"medium": {
			"oil on canvas",
			"watercolor",
			"3d render",
		},
		"camera": {
			"35mm",
			"wide angle",
			"macro lens",
		},
		"amount": {
			strconv.Itoa(rand.IntN(11)),
		},
		"art_by": {
			"{artist} and {artist 1} and {artist 2}, cgsociety",
			"style of {art_by} and {artist 1}, {render ab1}, {gallery}, {render ab2}",
			"style of Greg Rutkowski and {artist 1}, cgsociety",
		},
		"my_styles": {
			"{resolution}, {render 1}, {detail 1}, {lighting}, {render 2}",
			"{style}, {style 1}, {color}, {style 2}, {medium}",
			"{style}, {style 1}, {camera}, {render 1}, {color}, {style 2}, {render 2}",
		},
		"skin": {
			"psychedelic",
			"iridescent",
			"almond",
			"honey",
			"gold",
			"chrome",
		},
		"who": {
			"dancer",
			"supermodel",
			"warrior",
			"cyborg",
			"sentient ai",
			"cybernetic",
		},
	}
}
