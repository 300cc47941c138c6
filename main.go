package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goeland86/tcpost/gcode"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("No file path provided, exiting now.")
		os.Exit(1)
	}
	path := os.Args[1]
	log.Printf("path to file provided: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("FileReadError:%v\n", err)
		os.Exit(1)
	}

	out, report, err := gcode.Process(splitLines(string(data)))
	if err != nil {
		log.Fatalf("processing %s: %v", path, err)
	}
	report.Log()

	if report.Skipped {
		os.Exit(0)
	}

	if err := os.WriteFile(path, []byte(joinLines(out)), 0644); err != nil {
		log.Fatalf("writing %s: %v", path, err)
	}
}

// splitLines turns file content into the newline-free line slice the
// gcode package works on internally.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// joinLines is splitLines' inverse, restoring a single trailing newline.
func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
