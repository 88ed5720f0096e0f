package sample

// LHEWeight is the mean value of one alternative (LHE) weight slot.
type LHEWeight struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}
