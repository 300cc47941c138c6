package gcode

import "strconv"

// findToolsUsed marks ToolUsed for every tool whose `T<digits>` token
// appears in lines at a word boundary. The original post-processor does
// a raw substring search for "T{n}", which admits false positives (e.g.
// a search for "T1" matching inside "T10", or inside a comment) —
// tightened here per spec §9/REDESIGN FLAGS to require that the `T` be
// preceded, and the digits run followed, by a character other than a
// letter, digit or underscore (or by line start/end). Tokens inside `;`
// comments still count.
func findToolsUsed(lines []string, tools []ToolConfig) {
	for _, line := range lines {
		for i := 0; i < len(line); i++ {
			if line[i] != 'T' {
				continue
			}
			if i > 0 && isTokenChar(line[i-1]) {
				continue
			}
			j := i + 1
			for j < len(line) && line[j] >= '0' && line[j] <= '9' {
				j++
			}
			if j == i+1 {
				continue // no digits after T
			}
			if j < len(line) && isTokenChar(line[j]) {
				continue
			}
			n, err := strconv.Atoi(line[i+1 : j])
			if err != nil {
				continue
			}
			if n >= 0 && n < len(tools) {
				tools[n].ToolUsed = true
			}
			i = j - 1
		}
	}
}

func isTokenChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
