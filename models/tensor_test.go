package models

import (
	"testing"

	"go.viam.com/test"
)

func TestTensorShapeAndIndexing(t *testing.T) {
	tensor := NewTensor(2, 3, 4)
	b, s, d := tensor.Shape()
	test.That(t, b, test.ShouldEqual, 2)
	test.That(t, s, test.ShouldEqual, 3)
	test.That(t, d, test.ShouldEqual, 4)

	tensor.Set(1, 2, 3, 7.5)
	test.That(t, tensor.At(1, 2, 3), test.ShouldEqual, 7.5)
	test.That(t, tensor.At(0, 0, 0), test.ShouldEqual, 0.0)
}

func TestTensorRowAliasesBuffer(t *testing.T) {
	tensor := NewTensor(2, 2, 3)
	row := tensor.Row(1, 1)
	test.That(t, len(row), test.ShouldEqual, 3)
	row[2] = -4.0
	test.That(t, tensor.At(1, 1, 2), test.ShouldEqual, -4.0)
}

func TestTensorFillCol(t *testing.T) {
	tensor := NewTensor(3, 4, 2)
	tensor.FillCol(1, 0.1)
	for b := 0; b < 3; b++ {
		for s := 0; s < 4; s++ {
			test.That(t, tensor.At(b, s, 1), test.ShouldEqual, 0.1)
			test.That(t, tensor.At(b, s, 0), test.ShouldEqual, 0.0)
		}
	}
}

func TestTensorClipCol(t *testing.T) {
	tensor := NewTensor(1, 3, 2)
	tensor.Set(0, 0, 0, -2.0)
	tensor.Set(0, 1, 0, 0.3)
	tensor.Set(0, 2, 0, 2.0)
	tensor.Set(0, 1, 1, 9.0)
	tensor.ClipCol(0, -0.5, 0.5)
	test.That(t, tensor.At(0, 0, 0), test.ShouldEqual, -0.5)
	test.That(t, tensor.At(0, 1, 0), test.ShouldEqual, 0.3)
	test.That(t, tensor.At(0, 2, 0), test.ShouldEqual, 0.5)
	// other columns untouched
	test.That(t, tensor.At(0, 1, 1), test.ShouldEqual, 9.0)
}
