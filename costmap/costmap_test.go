package costmap

import (
	"testing"

	"go.viam.com/test"
)

func TestWorldToMap(t *testing.T) {
	grid := NewCostmap2D(100, 50, 0.1, -5, -2.5, "odom", FreeSpace)

	mx, my, ok := grid.WorldToMap(-5, -2.5)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, mx, test.ShouldEqual, 0)
	test.That(t, my, test.ShouldEqual, 0)

	mx, my, ok = grid.WorldToMap(0, 0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, mx, test.ShouldEqual, 50)
	test.That(t, my, test.ShouldEqual, 25)

	_, _, ok = grid.WorldToMap(-5.01, 0)
	test.That(t, ok, test.ShouldBeFalse)
	_, _, ok = grid.WorldToMap(5.0, 0)
	test.That(t, ok, test.ShouldBeFalse)
	_, _, ok = grid.WorldToMap(0, 2.5)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestMapToWorldRoundTrip(t *testing.T) {
	grid := NewCostmap2D(20, 20, 0.25, 1, 1, "map", FreeSpace)
	wx, wy := grid.MapToWorld(3, 7)
	mx, my, ok := grid.WorldToMap(wx, wy)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, mx, test.ShouldEqual, 3)
	test.That(t, my, test.ShouldEqual, 7)
}

func TestAtWorld(t *testing.T) {
	grid := NewCostmap2D(10, 10, 0.5, 0, 0, "odom", FreeSpace)
	grid.SetCost(4, 4, LethalObstacle)

	cost, ok := grid.AtWorld(2.25, 2.25)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cost, test.ShouldEqual, LethalObstacle)

	cost, ok = grid.AtWorld(0.25, 0.25)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cost, test.ShouldEqual, FreeSpace)

	cost, ok = grid.AtWorld(-1, -1)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, cost, test.ShouldEqual, NoInformation)
}

func TestSetRectWorld(t *testing.T) {
	grid := NewCostmap2D(10, 10, 0.5, 0, 0, "odom", FreeSpace)
	grid.SetRectWorld(1, 1, 2, 2, LethalObstacle)

	cost, _ := grid.AtWorld(1.5, 1.5)
	test.That(t, cost, test.ShouldEqual, LethalObstacle)
	cost, _ = grid.AtWorld(4, 4)
	test.That(t, cost, test.ShouldEqual, FreeSpace)
	test.That(t, grid.FrameID(), test.ShouldEqual, "odom")
	test.That(t, grid.Resolution(), test.ShouldEqual, 0.5)
}
