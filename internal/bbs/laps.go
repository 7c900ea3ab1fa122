package bbs

import "math"

// LapResult is the splice outcome for one bar.
type LapResult struct {
	// SplicedLengthM is the steel consumed per bar: cutting length plus all laps.
	SplicedLengthM float64
	// LapLengthM is the overlap per splice. It is zero when no splice is needed.
	LapLengthM     float64
	SpliceCount    int
	StockLengthM   float64
}

// Spliced reports whether the bar exceeds one stock length.
func (r LapResult) Spliced() bool {
	return r.SpliceCount > 0
}

// ResolveLaps splices a bar longer than the effective stock length. The geometric cutting
// length is left untouched; laps only add to the consumed length.
func ResolveLaps(cuttingLengthM float64, item NormalizedItem) LapResult {
	stock := item.StockLengthM
	if stock <= 0 {
		stock = DefaultStockLengthM
	}
	res := LapResult{SplicedLengthM: cuttingLengthM, StockLengthM: stock}
	if cuttingLengthM <= stock {
		return res
	}

	res.SpliceCount = int(math.Ceil(cuttingLengthM/stock)) - 1
	if item.LapLengthM != nil {
		res.LapLengthM = *item.LapLengthM
	} else {
		res.LapLengthM = item.Table.Lap * item.DiameterM()
	}
	res.SplicedLengthM = cuttingLengthM + float64(res.SpliceCount)*res.LapLengthM
	return res
}
