package sat

// ema is an exponential moving average, used by the agility restart policy
// to track the rate of polarity flips on assignment (spec §4.4).
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

func (e *ema) val() float64 {
	return e.value
}
