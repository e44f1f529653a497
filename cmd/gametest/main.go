// Command gametest runs a batch of story files through the interpreter
// far enough to reach the first input prompt (or a crash) and records the
// outcome, the way a regression harness checks a whole story library at
// once rather than one file by hand.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"zmachine-go/zmachine"
	"zmachine-go/ztable"
)

// TestResult captures the outcome of running a single game.
type TestResult struct {
	Filename     string   `json:"filename"`
	Version      uint8    `json:"version"`
	Success      bool     `json:"success"`
	FirstScreen  []string `json:"first_screen,omitempty"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

func main() {
	storiesDir := flag.String("stories", "stories", "Directory containing Z-machine story files")
	outputDir := flag.String("output", "testdata", "Directory to write results to")
	singleGame := flag.String("game", "", "Test a single game file instead of all games")
	dumpObjects := flag.Bool("dump-objects", false, "Dump the abbreviation table alongside the single-game result")
	flag.Parse()

	if *singleGame != "" {
		runSingleGame(*singleGame, *dumpObjects)
		return
	}

	runAllGames(*storiesDir, *outputDir)
}

func runAllGames(storiesDir, outputDir string) {
	if _, err := os.Stat(storiesDir); os.IsNotExist(err) {
		fmt.Printf("Stories directory not found: %s\n", storiesDir)
		fmt.Println("Run 'go run ./cmd/scraper' first to download games.")
		os.Exit(1)
	}

	entries, err := os.ReadDir(storiesDir)
	if err != nil {
		fmt.Printf("Failed to read stories directory: %v\n", err)
		os.Exit(1)
	}

	var games []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".z1") || strings.HasSuffix(name, ".z2") ||
			strings.HasSuffix(name, ".z3") || strings.HasSuffix(name, ".z4") ||
			strings.HasSuffix(name, ".z5") || strings.HasSuffix(name, ".z6") ||
			strings.HasSuffix(name, ".z7") || strings.HasSuffix(name, ".z8") {
			games = append(games, filepath.Join(storiesDir, name))
		}
	}

	if len(games) == 0 {
		fmt.Printf("No game files found in %s\n", storiesDir)
		os.Exit(1)
	}

	fmt.Printf("Found %d games to test\n", len(games))

	var results []TestResult
	for i, gamePath := range games {
		filename := filepath.Base(gamePath)
		result := runGameTest(gamePath)
		results = append(results, result)

		status := "PASS"
		if !result.Success {
			status = "FAIL"
		}
		fmt.Printf("[%d/%d] %s %s\n", i+1, len(games), status, filename)
		if !result.Success && result.ErrorMessage != "" {
			fmt.Printf("        Error: %s\n", result.ErrorMessage)
		}
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	resultsPath := filepath.Join(outputDir, "test_results.json")
	resultsJSON, _ := json.MarshalIndent(results, "", "  ")
	if err := os.WriteFile(resultsPath, resultsJSON, 0644); err != nil {
		fmt.Printf("Failed to write results: %v\n", err)
	} else {
		fmt.Printf("\nResults written to %s\n", resultsPath)
	}

	passed, failed := 0, 0
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed++
		}
	}
	fmt.Printf("\n=== SUMMARY ===\nPassed: %d\nFailed: %d\nTotal: %d\n", passed, failed, len(results))
}

func runSingleGame(gamePath string, dumpObjects bool) {
	if _, err := os.Stat(gamePath); os.IsNotExist(err) {
		fmt.Printf("Game file not found: %s\n", gamePath)
		os.Exit(1)
	}

	result := runGameTest(gamePath)

	fmt.Printf("Game: %s\n", result.Filename)
	fmt.Printf("Version: %d\n", result.Version)
	fmt.Printf("Success: %v\n", result.Success)
	if result.ErrorMessage != "" {
		fmt.Printf("Error: %s\n", result.ErrorMessage)
	}
	fmt.Printf("First Screen:\n%s\n", strings.Join(result.FirstScreen, "\n"))

	if dumpObjects && result.Success {
		dumpAbbreviations(gamePath)
	}
}

// dumpAbbreviations renders the raw abbreviation table as a fixed-width
// grid, a quick way to eyeball whether a story's abbreviation pointers
// look sane without decoding every one of them.
func dumpAbbreviations(gamePath string) {
	storyBytes, err := os.ReadFile(gamePath)
	if err != nil {
		return
	}
	m := &zmachine.Machine{}
	if err := m.Load(storyBytes); err != nil {
		return
	}
	grid, err := ztable.PrintTable(m.MemoryForDebug(), m.AbbreviationTableAddr(), 8, 12, 0)
	if err != nil {
		fmt.Printf("dump-objects: %v\n", err)
		return
	}
	fmt.Println("=== abbreviation table (raw bytes) ===")
	fmt.Println(grid)
}

func runGameTest(gamePath string) (result TestResult) {
	filename := filepath.Base(gamePath)
	result.Filename = filename

	storyBytes, err := os.ReadFile(gamePath)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to read file: %v", err)
		return
	}
	if len(storyBytes) < 64 {
		result.ErrorMessage = "file too small to be a valid Z-machine file"
		return
	}
	result.Version = storyBytes[0]

	m := &zmachine.Machine{}
	if err := m.Load(storyBytes); err != nil {
		result.ErrorMessage = fmt.Sprintf("load failed: %v", err)
		return
	}

	state := m.Update()
	if state == zmachine.Crashed {
		lines := m.Transcript()
		if len(lines) > 0 {
			result.ErrorMessage = lines[len(lines)-1]
		} else {
			result.ErrorMessage = "crashed with no transcript"
		}
		return
	}

	result.Success = true
	result.FirstScreen = m.Transcript()
	return
}
