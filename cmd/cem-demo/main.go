// Command cem-demo runs one of the three bundled Cross-Entropy Method
// example problems and prints the terminal result.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/epfahl/go-cem/cem"
	"github.com/epfahl/go-cem/problems"
)

func main() {
	problem := flag.String("problem", "gaussian1d", "one of: gaussian1d, onemax, tsp")
	nSample := flag.Int("n-sample", 100, "samples per step")
	fElite := flag.Float64("f-elite", 0.1, "elite fraction")
	fInterp := flag.Float64("f-interp", 0.1, "smoothing weight on previous params")
	nStepMax := flag.Int("n-step-max", 100, "hard step cap")
	seed := flag.Uint64("seed", 0, "RNG seed (0 draws from OS entropy)")
	nBits := flag.Int("n-bits", 20, "OneMax bit count (onemax only)")
	nNodes := flag.Int("n-nodes", 10, "TSP ring size (tsp only)")
	flag.Parse()

	base := cem.Options{
		NSample: *nSample, FElite: *fElite, FInterp: *fInterp, NStepMax: *nStepMax, Seed: *seed,
	}

	var err error
	switch *problem {
	case "gaussian1d":
		err = run(problems.NewGaussian1D(), base)
	case "onemax":
		base.OtherOpts = problems.OneMaxOtherOpts{NBits: *nBits}
		err = run(problems.NewOneMax(), base)
	case "tsp":
		base.Mode = cem.Min
		err = run(problems.NewTSPRing(*nNodes, nil), base)
	default:
		log.Fatalf("unknown -problem %q", *problem)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func run[P, I any](prob *cem.Problem[P, I], opts cem.Options) error {
	res, err := cem.Search(prob, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	fmt.Fprintf(os.Stderr, "reason=%s n_steps=%d seed=%d\n", res.Reason, res.NSteps, res.Seed)
	return enc.Encode(struct {
		BestInstance I       `json:"best_instance"`
		BestScore    float64 `json:"best_score"`
		NSteps       int     `json:"n_steps"`
		Reason       string  `json:"reason"`
	}{res.BestInstance, res.BestScore, res.NSteps, res.Reason.String()})
}
