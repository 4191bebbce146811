package optimizer

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/mppi/models"
)

func noiseSettings() *models.OptimizerSettings {
	return &models.OptimizerSettings{
		BatchSize:   100,
		TimeSteps:   10,
		SamplingStd: models.SamplingStd{VX: 0.2, VY: 0.15, WZ: 1.0},
	}
}

func TestNoiseGeneratorShape(t *testing.T) {
	gen := NewNoiseGenerator(42)
	gen.Reset(noiseSettings(), false)
	noises := gen.Generate()
	b, s, d := noises.Shape()
	test.That(t, b, test.ShouldEqual, 100)
	test.That(t, s, test.ShouldEqual, 10)
	test.That(t, d, test.ShouldEqual, 2)

	gen.Reset(noiseSettings(), true)
	_, _, d = gen.Generate().Shape()
	test.That(t, d, test.ShouldEqual, 3)
}

func TestNoiseGeneratorReproducible(t *testing.T) {
	genA := NewNoiseGenerator(7)
	genA.Reset(noiseSettings(), true)
	genB := NewNoiseGenerator(7)
	genB.Reset(noiseSettings(), true)

	a := genA.Generate()
	b := genB.Generate()
	test.That(t, a.Data(), test.ShouldResemble, b.Data())

	genC := NewNoiseGenerator(8)
	genC.Reset(noiseSettings(), true)
	c := genC.Generate()
	test.That(t, a.Data(), test.ShouldNotResemble, c.Data())
}

func TestNoiseGeneratorStatistics(t *testing.T) {
	gen := NewNoiseGenerator(1)
	gen.Reset(noiseSettings(), true)
	noises := gen.Generate()

	batch, steps, _ := noises.Shape()
	n := float64(batch * steps)
	for col, want := range []float64{0.2, 0.15, 1.0} {
		sum, sumSq := 0.0, 0.0
		for b := 0; b < batch; b++ {
			for s := 0; s < steps; s++ {
				v := noises.At(b, s, col)
				sum += v
				sumSq += v * v
			}
		}
		mean := sum / n
		std := math.Sqrt(sumSq/n - mean*mean)
		test.That(t, mean, test.ShouldAlmostEqual, 0, 0.1)
		test.That(t, std, test.ShouldAlmostEqual, want, want*0.15)
	}
}
