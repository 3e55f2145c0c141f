package calculator

import (
	"fmt"
	"testing"

	talib "github.com/markcheno/go-talib"

	"SignalScope/internal/model"
)

func TestBollingerBands_MatchesTalib(t *testing.T) {
	bars := wavyBars(100)
	upper, middle, lower := talib.BBands(model.Closes(bars), 20, 2, 2, talib.SMA)

	got := BollingerBands(bars, 20, 2)
	if len(got) != 81 {
		t.Fatalf("expected 81 points, got %d", len(got))
	}
	for i, p := range got {
		assertClose(t, fmt.Sprintf("upper[%d]", i), p.Upper, upper[i+19])
		assertClose(t, fmt.Sprintf("middle[%d]", i), p.Middle, middle[i+19])
		assertClose(t, fmt.Sprintf("lower[%d]", i), p.Lower, lower[i+19])
		assertClose(t, fmt.Sprintf("bandwidth[%d]", i), p.Bandwidth, (p.Upper-p.Lower)/p.Middle)
		if p.Price != bars[i+19].Close {
			t.Errorf("price[%d]: got %f, want %f", i, p.Price, bars[i+19].Close)
		}
	}
}

func TestBollingerBands_Containment(t *testing.T) {
	for _, bars := range [][]model.Bar{wavyBars(120), rampBars(60), constantBars(30, 100)} {
		for _, p := range BollingerBands(bars, 20, 2) {
			if p.Lower > p.Middle || p.Middle > p.Upper {
				t.Fatalf("bands out of order: %+v", p)
			}
		}
	}
}

func TestBollingerBands_ConstantSeries(t *testing.T) {
	got := BollingerBands(constantBars(30, 100), 20, 2)
	if len(got) != 11 {
		t.Fatalf("expected 11 points, got %d", len(got))
	}
	for _, p := range got {
		assertClose(t, "middle", p.Middle, 100)
		assertClose(t, "bandwidth", p.Bandwidth, 0)
	}
}

func TestMACD_HistogramIdentity(t *testing.T) {
	got := MACD(wavyBars(120))
	if len(got) != 86 {
		t.Fatalf("expected 86 points, got %d", len(got))
	}
	for i, p := range got {
		assertClose(t, fmt.Sprintf("histogram[%d]", i), p.Histogram, p.MACD-p.Signal)
	}
}

func TestMACD_RampIsBullish(t *testing.T) {
	bars := rampBars(40)
	got := MACD(bars)
	if len(got) != 6 {
		t.Fatalf("expected 6 points, got %d", len(got))
	}
	if !got[0].Date.Equal(bars[34].Date) {
		t.Errorf("first point should be bar 34, got %v", got[0].Date)
	}
	for i, p := range got {
		if p.Histogram <= 0 {
			t.Errorf("histogram[%d] should be positive on a ramp, got %f", i, p.Histogram)
		}
		if i > 0 && p.MACD <= got[i-1].MACD {
			t.Errorf("macd line should rise on a ramp at %d", i)
		}
	}
}

func TestMACD_SignalWindow(t *testing.T) {
	bars := wavyBars(50)
	closes := model.Closes(bars)
	fast := emaSeries(closes, 12)
	slow := emaSeries(closes, 26)
	line := make([]float64, len(closes))
	for i := range line {
		line[i] = fast[i] - slow[i]
	}
	k := 0.2
	want := line[40]
	for j := 41; j <= 48; j++ {
		want = line[j]*k + want*(1-k)
	}

	got := MACD(bars)
	assertClose(t, "signal at bar 48", got[48-34].Signal, want)
}

func TestMACD_InsufficientData(t *testing.T) {
	if got := MACD(rampBars(34)); len(got) != 0 {
		t.Errorf("expected empty series, got %d points", len(got))
	}
}
