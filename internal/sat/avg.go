package sat

// ema is an exponential moving average. The first sample initializes it.
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (a *ema) add(x float64) {
	if !a.init {
		a.init = true
		a.value = x
		return
	}
	a.value = a.decay*a.value + x*(1-a.decay)
}

func (a *ema) val() float64 {
	return a.value
}
