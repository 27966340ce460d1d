package ticketleap

import (
	"ticketleap-bulk/lib/restyutil"
	"ticketleap-bulk/lib/telemetry"
)

var tracer = telemetry.Tracer("ticketleap-bulk.lib.scrapers.ticketleap")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput turns on http transcripts for every client
// constructed afterwards.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
