package optimizer

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/mppi/models"
)

func TestSavitzkyGolayPreservesConstantSequence(t *testing.T) {
	var cs models.ControlSequence
	cs.Idx.SetLayout(false)
	cs.Reset(15)
	for s := 0; s < 15; s++ {
		cs.Data.Set(s, cs.Idx.VX(), 0.3)
	}
	history := [2]models.Control{{VX: 0.3}, {VX: 0.3}}
	applySavitzkyGolay(&cs, history)
	for s := 0; s < 15; s++ {
		test.That(t, cs.Data.At(s, cs.Idx.VX()), test.ShouldAlmostEqual, 0.3, 1e-12)
	}
}

func TestSavitzkyGolayDampsSpike(t *testing.T) {
	var cs models.ControlSequence
	cs.Idx.SetLayout(false)
	cs.Reset(15)
	cs.Data.Set(7, cs.Idx.WZ(), 1.0)
	applySavitzkyGolay(&cs, [2]models.Control{})
	test.That(t, cs.Data.At(7, cs.Idx.WZ()), test.ShouldBeLessThan, 1.0)
	test.That(t, cs.Data.At(7, cs.Idx.WZ()), test.ShouldBeGreaterThan, 0.0)
	// neighbors pick up part of the spike
	test.That(t, cs.Data.At(6, cs.Idx.WZ()), test.ShouldNotEqual, 0.0)
}

func TestSavitzkyGolaySkipsShortSequences(t *testing.T) {
	var cs models.ControlSequence
	cs.Idx.SetLayout(false)
	cs.Reset(8)
	cs.Data.Set(3, cs.Idx.VX(), 1.0)
	applySavitzkyGolay(&cs, [2]models.Control{})
	test.That(t, cs.Data.At(3, cs.Idx.VX()), test.ShouldEqual, 1.0)
}
