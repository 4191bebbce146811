package models

import (
	"testing"

	"go.viam.com/test"
)

func TestStateIdxLayouts(t *testing.T) {
	var idx StateIdx

	idx.SetLayout(false)
	test.That(t, idx.IsHolonomic(), test.ShouldBeFalse)
	test.That(t, idx.Dim(), test.ShouldEqual, 5)
	test.That(t, idx.ControlDim(), test.ShouldEqual, 2)
	test.That(t, idx.CVY(), test.ShouldEqual, -1)
	test.That(t, idx.VY(), test.ShouldEqual, -1)
	test.That(t, idx.CBegin(), test.ShouldEqual, 0)
	test.That(t, idx.CEnd(), test.ShouldEqual, idx.VBegin())
	test.That(t, idx.DT(), test.ShouldEqual, 4)

	idx.SetLayout(true)
	test.That(t, idx.IsHolonomic(), test.ShouldBeTrue)
	test.That(t, idx.Dim(), test.ShouldEqual, 7)
	test.That(t, idx.ControlDim(), test.ShouldEqual, 3)
	test.That(t, idx.CVY(), test.ShouldEqual, 1)
	test.That(t, idx.VY(), test.ShouldEqual, 4)
	test.That(t, idx.VEnd()-idx.VBegin(), test.ShouldEqual, 3)
}

func TestStateReset(t *testing.T) {
	var state State
	state.Idx.SetLayout(true)
	state.Reset(10, 5)
	b, s, d := state.Data.Shape()
	test.That(t, b, test.ShouldEqual, 10)
	test.That(t, s, test.ShouldEqual, 5)
	test.That(t, d, test.ShouldEqual, 7)
}

func TestControlSequenceShift(t *testing.T) {
	var cs ControlSequence
	cs.Idx.SetLayout(false)
	cs.Reset(4)
	for i := 0; i < 4; i++ {
		cs.Data.Set(i, 0, float64(i))
		cs.Data.Set(i, 1, float64(i)*10)
	}
	cs.Shift()
	// rows rolled by one, last duplicated
	test.That(t, cs.Data.At(0, 0), test.ShouldEqual, 1.0)
	test.That(t, cs.Data.At(1, 0), test.ShouldEqual, 2.0)
	test.That(t, cs.Data.At(2, 0), test.ShouldEqual, 3.0)
	test.That(t, cs.Data.At(3, 0), test.ShouldEqual, 3.0)
	test.That(t, cs.Data.At(3, 1), test.ShouldEqual, 30.0)
}

func TestControlSequenceControlAt(t *testing.T) {
	var cs ControlSequence
	cs.Idx.SetLayout(true)
	cs.Reset(2)
	cs.Data.Set(1, 0, 0.1)
	cs.Data.Set(1, 1, 0.2)
	cs.Data.Set(1, 2, 0.3)
	ctrl := cs.ControlAt(1)
	test.That(t, ctrl.VX, test.ShouldEqual, 0.1)
	test.That(t, ctrl.VY, test.ShouldEqual, 0.2)
	test.That(t, ctrl.WZ, test.ShouldEqual, 0.3)
}
