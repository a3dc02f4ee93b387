package proptest

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/antithesishq/promptgen/internal/generate"
	"github.com/antithesishq/promptgen/internal/gentest"
	"go.akshayshah.org/attest"
	"pgregory.net/rapid"
)

func TestWorkloads(t *testing.T) {
	logger := gentest.NewLogger(t)
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		w := GenWorkload(rand.New(rand.NewPCG(seed, seed)))
		res, err := RunWorkload(t.Context(), logger, w)
		if err != nil {
			rt.Fatalf("run workload %+v: %v", w, err)
		}
		if err := CheckWorkload(w, res); err != nil {
			rt.Fatal(err)
		}
	})
}

func TestWorkloadIsReproducible(t *testing.T) {
	logger := gentest.NewLogger(t)
	w := GenWorkload(rand.New(rand.NewPCG(10, 20)))
	first, err := RunWorkload(t.Context(), logger, w)
	attest.Ok(t, err)
	second, err := RunWorkload(t.Context(), logger, w)
	attest.Ok(t, err)
	attest.Equal(t, first.Prompts, second.Prompts)
}

func TestDraws(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		if err := CheckDraws(rand.New(rand.NewPCG(seed, seed))); err != nil {
			rt.Fatal(err)
		}
	})
}

func TestCheckWorkloadCatchesViolations(t *testing.T) {
	w := Workload{Seed: 1, Count: 2}
	res := &generate.Result{Prompts: map[string]string{"bogus": "acorn"}, Rounds: 2}
	err := CheckWorkload(w, res)
	perr := new(Error)
	attest.True(t, errors.As(err, &perr))
	attest.Equal(t, perr.Property, "idempotent")

	res = &generate.Result{Prompts: map[string]string{}, Rounds: 1}
	err = CheckWorkload(w, res)
	attest.True(t, errors.As(err, &perr))
	attest.Equal(t, perr.Property, "rounds")
}
