package projection

import (
	"fmt"
	"io"
)

// TraceSink receives per-year records as the engine computes them. The core
// never prints on its own; callers that want visibility inject a sink.
type TraceSink interface {
	YearProjected(rec YearRecord)
}

// NopSink discards all trace events.
type NopSink struct{}

func (NopSink) YearProjected(YearRecord) {}

// WriterSink prints one tagged line per projected year.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) YearProjected(rec YearRecord) {
	fmt.Fprintf(s.W, "[PROJECT] Y%d EBITDA=%.1f Interest=%.1f FCF=%.1f Paydown=%.1f Debt=%.1f Cash=%.1f\n",
		rec.Year, rec.EBITDA, rec.Interest, rec.FreeCashFlow, rec.DebtPaydown, rec.EndingDebt, rec.EndingCash)
}
