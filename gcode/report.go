package gcode

import "log"

// ProcessingReport traces the decisions a single run of Process made. It
// is never persisted — it exists to drive the run's log output and give
// a caller a structured summary of what happened, the way the teacher's
// job history tracked a single print's metadata in memory before logging
// it (here scoped to one post-processing pass instead of one print job).
type ProcessingReport struct {
	InputLines  int
	OutputLines int

	ToolCount     int
	ToolsUsed     []int
	FirstTool     int
	HasToolchange bool

	ToolchangeCount int
	ShutoffCount    int
	StandbyCount    int
	PreheatCount    int

	Skipped bool
}

// Log writes the report as a sequence of Printf lines, matching the
// teacher's plain, one-fact-per-line logging style.
func (r *ProcessingReport) Log() {
	if r.Skipped {
		log.Printf("no toolchange in gcode, exiting now")
		return
	}
	log.Printf("read %d lines, %d tools configured, %d used: %v", r.InputLines, r.ToolCount, len(r.ToolsUsed), r.ToolsUsed)
	log.Printf("first tool %d, %d toolchange sections rewritten", r.FirstTool, r.ToolchangeCount)
	log.Printf("injected %d shutoff(s), %d standby drop(s), %d preheat(s)", r.ShutoffCount, r.StandbyCount, r.PreheatCount)
	log.Printf("wrote %d lines", r.OutputLines)
}
