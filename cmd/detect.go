package cmd

import (
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/scaudit/scaudit-cli/internal/api"
	"github.com/scaudit/scaudit-cli/internal/findings"
	"github.com/scaudit/scaudit-cli/internal/history"
)

var (
	detectThreshold string
	detectMaxLength int
	detectHTMLOut   string
	detectNoHistory bool
)

var detectCmd = &cobra.Command{
	Use:   "detect [file|glob ...]",
	Short: "Detect vulnerabilities in smart-contract source",
	Long: `Submits contract source to the backend for vulnerability detection.

Sources can be files, doublestar globs (e.g. 'contracts/**/*.sol'), or
standard input when no argument is given. Each match is scanned in its
own request; results are printed per file, or written as an HTML report
with --html.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVarP(&detectThreshold, "threshold", "t", "", "detection threshold, 0..1 (default 0.5)")
	detectCmd.Flags().IntVar(&detectMaxLength, "max-length", 0, "tokenizer truncation limit (0 = server default)")
	detectCmd.Flags().StringVar(&detectHTMLOut, "html", "", "write an HTML report to this file instead of printing")
	detectCmd.Flags().BoolVar(&detectNoHistory, "no-history", false, "skip recording the scan locally")
	rootCmd.AddCommand(detectCmd)
}

// contractSource is one unit of text to scan.
type contractSource struct {
	Name string
	Text string
}

func runDetect(cmd *cobra.Command, args []string) error {
	sources, err := collectSources(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)
	threshold := parseThreshold(detectThreshold)

	var store *history.Store
	if !detectNoHistory {
		store, err = openHistory(cfg)
		if err != nil {
			diagLogger().Warn("scan history unavailable", "error", err)
		} else {
			defer store.Close()
		}
	}

	// The bar goes to stderr so it never mixes with results on stdout.
	var bar *progressbar.ProgressBar
	if len(sources) > 1 {
		bar = progressbar.NewOptions(len(sources),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Scanning contracts"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var htmlSections []string
	for i, src := range sources {
		resp, err := client.Predict(cmd.Context(), api.PredictRequest{
			Text:      src.Text,
			Threshold: threshold,
			MaxLength: detectMaxLength,
		})
		if err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) {
				return fmt.Errorf("detection failed for %s: %s", src.Name, apiErr.Message())
			}
			return fmt.Errorf("detection failed for %s: %w", src.Name, err)
		}

		if store != nil {
			scan := history.Scan{
				Source:    src.Name,
				Threshold: threshold,
				Labels:    resp.Labels,
				Probs:     resp.Probs,
			}
			if err := store.Record(cmd.Context(), scan); err != nil {
				diagLogger().Warn("recording scan failed", "source", src.Name, "error", err)
			}
		}

		if detectHTMLOut != "" {
			htmlSections = append(htmlSections, htmlSection(src.Name, resp.Labels))
		} else {
			if len(sources) > 1 {
				fmt.Printf("\n== %s ==\n", src.Name)
			}
			findings.WriteText(os.Stdout, resp.Labels)
		}

		if bar != nil {
			bar.Describe(src.Name)
			_ = bar.Set(i + 1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if detectHTMLOut != "" {
		report := htmlReport(htmlSections)
		if err := os.WriteFile(detectHTMLOut, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report written to %s\n", detectHTMLOut)
	}
	return nil
}

// collectSources resolves args into contract texts. No args means stdin.
// Every source must be non-empty after trimming; an empty one aborts the
// whole run before any request is made.
func collectSources(args []string) ([]contractSource, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return nil, fmt.Errorf("contract source is empty")
		}
		return []contractSource{{Name: "stdin", Text: string(data)}}, nil
	}

	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		paths = append(paths, matches...)
	}

	sources := make([]contractSource, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return nil, fmt.Errorf("%s is empty", p)
		}
		sources = append(sources, contractSource{Name: filepath.ToSlash(p), Text: string(data)})
	}
	return sources, nil
}

func htmlSection(name string, labels []string) string {
	var b strings.Builder
	b.WriteString("<h2>")
	b.WriteString(html.EscapeString(name))
	b.WriteString("</h2>\n")
	b.WriteString(findings.RenderHTML(labels))
	return b.String()
}

func htmlReport(sections []string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>SCAudit report</title></head><body>\n")
	b.WriteString("<h1>SCAudit report</h1>\n")
	for _, s := range sections {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}
