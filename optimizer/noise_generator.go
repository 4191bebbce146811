package optimizer

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"go.viam.com/mppi/models"
)

// NoiseGenerator produces the zero-mean Gaussian control perturbations added
// to the nominal sequence each iteration. Each optimizer owns its own
// generator seeded from the settings so runs are reproducible.
type NoiseGenerator struct {
	src    rand.Source
	noises *models.Tensor
	dists  []distuv.Normal
}

// NewNoiseGenerator constructs a generator with its own seeded source.
func NewNoiseGenerator(seed uint64) *NoiseGenerator {
	return &NoiseGenerator{src: rand.NewPCG(seed, seed+1)}
}

// Reset reallocates the noise buffer for the current batch, horizon, and
// holonomy, and rebinds the per-axis sampling distributions.
func (g *NoiseGenerator) Reset(s *models.OptimizerSettings, holonomic bool) {
	stds := []float64{s.SamplingStd.VX, s.SamplingStd.WZ}
	if holonomic {
		stds = []float64{s.SamplingStd.VX, s.SamplingStd.VY, s.SamplingStd.WZ}
	}
	g.noises = models.NewTensor(s.BatchSize, s.TimeSteps, len(stds))
	g.dists = make([]distuv.Normal, len(stds))
	for i, std := range stds {
		g.dists[i] = distuv.Normal{Mu: 0, Sigma: std, Src: g.src}
	}
}

// Generate fills and returns the (batch, steps, controlDim) perturbation
// tensor. The returned tensor is owned by the generator and overwritten by
// the next call.
func (g *NoiseGenerator) Generate() *models.Tensor {
	batch, steps, dim := g.noises.Shape()
	for b := 0; b < batch; b++ {
		for t := 0; t < steps; t++ {
			row := g.noises.Row(b, t)
			for d := 0; d < dim; d++ {
				row[d] = g.dists[d].Rand()
			}
		}
	}
	return g.noises
}
