package gcode

// serialize reassembles the fully rewritten file from its parts: the
// verbatim head, the linearized section list, and the three verbatim
// trailers in their original order, with a single blank line between
// each of these five parts (spec §4.13).
func serialize(parts preambleParts, list *sectionList) []string {
	out := make([]string, 0, len(parts.head)+len(parts.end)+len(parts.stats)+len(parts.config)+8)
	out = append(out, parts.head...)
	out = append(out, "")
	out = append(out, list.Linearize()...)
	out = append(out, "")
	out = append(out, parts.end...)
	out = append(out, "")
	out = append(out, parts.stats...)
	out = append(out, "")
	out = append(out, parts.config...)
	return out
}
