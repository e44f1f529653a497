// Command scraper populates the stories directory gametest reads from: it
// downloads every zcode game listed on ifarchive and rejects anything that
// doesn't load as a valid story before saving it, so a bad download or a
// non-story file never ends up silently poisoning a later batch run.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"zmachine-go/zmachine"
)

const indexURL = "https://www.ifarchive.org/indexes/if-archive/games/zcode/"
const outputDir = "stories"

type game struct {
	name string
	url  string
}

func main() {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	c := &http.Client{Timeout: 30 * time.Second}
	res, err := c.Get(indexURL)
	if err != nil {
		fmt.Printf("Failed to fetch index: %v\n", err)
		os.Exit(1)
	}
	defer res.Body.Close() // nolint:errcheck

	if res.StatusCode != 200 {
		fmt.Printf("Bad status code: %d\n", res.StatusCode)
		os.Exit(1)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		fmt.Printf("Failed to parse HTML: %v\n", err)
		os.Exit(1)
	}

	var games []game
	doc.Find("dl dt").Each(func(i int, s *goquery.Selection) {
		href, exists := s.Find("a").Attr("href")
		if !exists {
			return
		}
		match, _ := regexp.Match(`.*\.z[12345678]$`, []byte(href))
		if match {
			games = append(games, game{
				name: filepath.Base(href),
				url:  "https://www.ifarchive.org" + href,
			})
		}
	})

	fmt.Printf("Found %d games to download\n", len(games))

	downloaded, skipped, rejected, failed := 0, 0, 0, 0
	for i, g := range games {
		destPath := filepath.Join(outputDir, g.name)

		if _, err := os.Stat(destPath); err == nil {
			fmt.Printf("[%d/%d] Skipping %s (already exists)\n", i+1, len(games), g.name)
			skipped++
			continue
		}

		fmt.Printf("[%d/%d] Downloading %s... ", i+1, len(games), g.name)

		resp, err := c.Get(g.url)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			failed++
			continue
		}

		if resp.StatusCode != 200 {
			fmt.Printf("FAILED: status %d\n", resp.StatusCode)
			resp.Body.Close() // nolint:errcheck
			failed++
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close() // nolint:errcheck
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			failed++
			continue
		}

		m := &zmachine.Machine{}
		if err := m.Load(data); err != nil {
			fmt.Printf("REJECTED: %v\n", err)
			rejected++
			continue
		}

		if err := os.WriteFile(destPath, data, 0644); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			failed++
			continue
		}

		fmt.Printf("OK (%d bytes)\n", len(data))
		downloaded++

		time.Sleep(100 * time.Millisecond)
	}

	fmt.Printf("\nDone! Downloaded: %d, Skipped: %d, Rejected: %d, Failed: %d\n", downloaded, skipped, rejected, failed)

	manifestPath := filepath.Join(outputDir, "manifest.txt")
	var manifest strings.Builder
	for _, g := range games {
		manifest.WriteString(g.name + "\n")
	}
	os.WriteFile(manifestPath, []byte(manifest.String()), 0644) // nolint:errcheck
	fmt.Printf("Wrote manifest to %s\n", manifestPath)
}
