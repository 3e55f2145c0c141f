package calculator

import (
	"fmt"
	"reflect"
	"testing"

	talib "github.com/markcheno/go-talib"

	"SignalScope/internal/model"
)

func TestOBV_Ramp(t *testing.T) {
	bars := rampBars(40)
	got := OBV(bars)
	if len(got) != 40 {
		t.Fatalf("expected 40 points, got %d", len(got))
	}
	if got[0].Value != 0 {
		t.Errorf("obv should seed at 0, got %f", got[0].Value)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Value <= got[i-1].Value {
			t.Fatalf("obv not strictly increasing at %d", i)
		}
	}
	assertClose(t, "final obv", got[39].Value, 39*1_000_000)
}

func TestOBV_MatchesTalibOffset(t *testing.T) {
	bars := wavyBars(60)
	vols := make([]float64, len(bars))
	for i, b := range bars {
		vols[i] = float64(b.Volume)
	}
	// talib seeds the running total with the first volume
	ref := talib.Obv(model.Closes(bars), vols)
	for i, p := range OBV(bars) {
		assertClose(t, fmt.Sprintf("obv[%d]", i), p.Value+vols[0], ref[i])
	}
}

func TestVWAP(t *testing.T) {
	bars := []model.Bar{
		{Date: baseDate, High: 12, Low: 8, Close: 10, Open: 10, Volume: 100},
		{Date: baseDate.AddDate(0, 0, 1), High: 22, Low: 18, Close: 20, Open: 20, Volume: 300},
		{Date: baseDate.AddDate(0, 0, 2), High: 31, Low: 29, Close: 30, Open: 30, Volume: 0},
	}
	got := VWAP(bars)
	assertClose(t, "vwap[0]", got[0].Value, 10)
	assertClose(t, "vwap[1]", got[1].Value, (10*100+20*300)/400.0)
	assertClose(t, "vwap[2]", got[2].Value, (10*100+20*300)/400.0)

	zero := VWAP([]model.Bar{{Date: baseDate, High: 12, Low: 8, Close: 10, Open: 10}})
	assertClose(t, "zero volume vwap", zero[0].Value, 10)
}

func TestFibonacciLevels(t *testing.T) {
	got := FibonacciLevels(barsFromCloses([]float64{120, 100, 150, 200, 180}))
	want := []model.FibLevel{
		{Label: "0%", Ratio: 0, Value: 100},
		{Label: "23.6%", Ratio: 0.236, Value: 123.6},
		{Label: "38.2%", Ratio: 0.382, Value: 138.2},
		{Label: "50%", Ratio: 0.5, Value: 150},
		{Label: "61.8%", Ratio: 0.618, Value: 161.8},
		{Label: "78.6%", Ratio: 0.786, Value: 178.6},
		{Label: "100%", Ratio: 1, Value: 200},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Label != w.Label || got[i].Ratio != w.Ratio {
			t.Errorf("level %d: got %s/%v, want %s/%v", i, got[i].Label, got[i].Ratio, w.Label, w.Ratio)
		}
		assertClose(t, w.Label, got[i].Value, w.Value)
	}
}

func TestPivotPoints(t *testing.T) {
	bars := []model.Bar{{Date: baseDate, Open: 100, High: 110, Low: 90, Close: 105, Volume: 1}}
	got := PivotPoints(bars)
	if got == nil {
		t.Fatal("expected pivot points")
	}
	p := 305.0 / 3
	assertClose(t, "pivot", got.Pivot, p)
	assertClose(t, "r1", got.R1, 2*p-90)
	assertClose(t, "s1", got.S1, 2*p-110)
	assertClose(t, "r2", got.R2, p+20)
	assertClose(t, "s2", got.S2, p-20)
	assertClose(t, "r3", got.R3, 110+2*(p-90))
	assertClose(t, "s3", got.S3, 90-2*(110-p))
	if !(got.S3 < got.S2 && got.S2 < got.S1 && got.S1 < got.Pivot && got.Pivot < got.R1 && got.R1 < got.R2 && got.R2 < got.R3) {
		t.Errorf("pivot levels out of order: %+v", got)
	}

	if PivotPoints(nil) != nil {
		t.Error("expected nil pivot for empty series")
	}
}

func TestSupportResistance(t *testing.T) {
	closes := []float64{100, 110, 95, 120, 90, 130, 85, 140, 92, 105, 96, 110.004,
		96.5, 108, 97, 107, 98, 106, 99, 104, 100, 103, 101, 102}
	bars := barsFromCloses(closes)

	got := SupportResistance(bars)
	if got == nil {
		t.Fatal("expected levels")
	}
	if want := []float64{106, 105, 104}; !reflect.DeepEqual(got.Resistances, want) {
		t.Errorf("resistances: got %v, want %v", got.Resistances, want)
	}
	if want := []float64{98, 99, 100}; !reflect.DeepEqual(got.Supports, want) {
		t.Errorf("supports: got %v, want %v", got.Supports, want)
	}
	if got.CurrentPrice != 102 {
		t.Errorf("current price: got %f, want 102", got.CurrentPrice)
	}
}

func TestSupportResistance_Bounds(t *testing.T) {
	bars := wavyBars(120)
	maxHigh, minLow := bars[0].High, bars[0].Low
	for _, b := range bars {
		if b.High > maxHigh {
			maxHigh = b.High
		}
		if b.Low < minLow {
			minLow = b.Low
		}
	}

	got := SupportResistance(bars)
	for i, r := range got.Resistances {
		if r > maxHigh+0.005 {
			t.Errorf("resistance %f above series max %f", r, maxHigh)
		}
		if i > 0 && r >= got.Resistances[i-1] {
			t.Errorf("resistances not strictly descending: %v", got.Resistances)
		}
	}
	for i, s := range got.Supports {
		if s < minLow-0.005 {
			t.Errorf("support %f below series min %f", s, minLow)
		}
		if i > 0 && s <= got.Supports[i-1] {
			t.Errorf("supports not strictly ascending: %v", got.Supports)
		}
	}
	if len(got.Resistances) > 3 || len(got.Supports) > 3 {
		t.Errorf("expected at most 3 levels per side, got %v / %v", got.Resistances, got.Supports)
	}
}

// Levels round half away from zero on the decimal value, so 101.005 becomes
// 101.01 even though 101.005*100 is just below 10100.5 as a float.
func TestSupportResistance_RoundsHalfUp(t *testing.T) {
	bars := constantBars(20, 100)
	bars[10].High = 101.005
	bars[12].Low = 98.995

	got := SupportResistance(bars)
	if want := []float64{101.01}; !reflect.DeepEqual(got.Resistances, want) {
		t.Errorf("resistances: got %v, want %v", got.Resistances, want)
	}
	if want := []float64{99}; !reflect.DeepEqual(got.Supports, want) {
		t.Errorf("supports: got %v, want %v", got.Supports, want)
	}
}

func TestSupportResistance_ShortSeries(t *testing.T) {
	if got := SupportResistance(wavyBars(19)); got != nil {
		t.Errorf("expected nil below 20 bars, got %+v", got)
	}
}

func TestShortSeries(t *testing.T) {
	bars := rampBars(5)
	if len(SMA(bars, 20)) != 0 || len(EMA(bars, 12)) != 0 || len(RSI(bars, 14)) != 0 ||
		len(Stochastic(bars, 14)) != 0 || len(CCI(bars, 20)) != 0 || len(ADX(bars, 14)) != 0 ||
		len(BollingerBands(bars, 20, 2)) != 0 || len(MACD(bars)) != 0 {
		t.Error("windowed indicators should be empty for 5 bars")
	}
	// cumulative indicators and last-bar levels have no lookback window
	if len(OBV(bars)) != 5 || len(VWAP(bars)) != 5 || len(FibonacciLevels(bars)) != 7 || PivotPoints(bars) == nil {
		t.Error("cumulative indicators should cover every bar")
	}
}
