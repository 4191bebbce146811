package optimizer

import "go.viam.com/mppi/models"

// savitzkyGolay holds the quadratic 5-point Savitzky-Golay coefficients.
var savitzkyGolay = [5]float64{-3.0 / 35.0, 12.0 / 35.0, 17.0 / 35.0, 12.0 / 35.0, -3.0 / 35.0}

// applySavitzkyGolay smooths each control channel of the refined sequence in
// place, seeding the leading window with the last two executed controls and
// padding the trailing window with the final row. Sequences shorter than 10
// steps are left untouched; there is too little signal to smooth.
func applySavitzkyGolay(cs *models.ControlSequence, history [2]models.Control) {
	steps, _ := cs.Data.Dims()
	if steps < 10 {
		return
	}

	channel := func(col int, hist0, hist1 float64) {
		extended := make([]float64, steps+4)
		extended[0] = hist0
		extended[1] = hist1
		for t := 0; t < steps; t++ {
			extended[t+2] = cs.Data.At(t, col)
		}
		extended[steps+2] = cs.Data.At(steps-1, col)
		extended[steps+3] = cs.Data.At(steps-1, col)

		for t := 0; t < steps; t++ {
			smoothed := 0.0
			for k := 0; k < 5; k++ {
				smoothed += extended[t+k] * savitzkyGolay[k]
			}
			cs.Data.Set(t, col, smoothed)
		}
	}

	channel(cs.Idx.VX(), history[0].VX, history[1].VX)
	channel(cs.Idx.WZ(), history[0].WZ, history[1].WZ)
	if cs.Idx.IsHolonomic() {
		channel(cs.Idx.VY(), history[0].VY, history[1].VY)
	}
}
