package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	mdfront "github.com/alnah/go-mdfront"
	"github.com/alnah/go-mdfront/internal/frontmatter"
)

// run processes every input in the selected mode with a bounded worker
// pool and reports the first class of failure as the exit code.
func run(flags *cliFlags, inputs []string) int {
	var opts []mdfront.Option
	if flags.config != "" {
		opts = append(opts, mdfront.WithConfigSource(mdfront.FileConfigSource{NameOrPath: flags.config}))
	}
	svc := mdfront.NewService(opts...)

	workers := resolveWorkers(flags.workers, len(inputs))
	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Processing %d file(s) with %d worker(s)\n", len(inputs), workers)
	}

	type outcome struct {
		path string
		err  error
	}

	results := make([]outcome, len(inputs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, path := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = outcome{path: path, err: processFile(flags, svc, path)}
		}()
	}
	wg.Wait()

	code := exitSuccess
	for _, res := range results {
		if res.err == nil {
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", res.path, res.err)
		var checkErr *selfTestError
		if errors.As(res.err, &checkErr) {
			if code == exitSuccess {
				code = exitFailed
			}
		} else {
			code = exitError
		}
	}
	return code
}

// selfTestError distinguishes a failed check from an operational error.
type selfTestError struct {
	failures []string
}

func (e *selfTestError) Error() string {
	return "self-test failed: " + strings.Join(e.failures, "; ")
}

// processFile runs one input through the selected mode and writes the
// result next to the input (or under --out).
func processFile(flags *cliFlags, svc *mdfront.Service, path string) error {
	ctx := context.Background()

	doc, err := svc.LoadAndSplit(path)
	if err != nil {
		return err
	}

	switch flags.mode {
	case modeParse:
		meta, err := frontmatter.Marshal(map[string]any(mdfront.Sanitize(doc.Metadata)))
		if err != nil {
			return err
		}
		return writeOutput(flags, path, ".meta.yaml", meta)

	case modeHTML:
		html, err := svc.RenderHTML(ctx, doc.FullText)
		if err != nil {
			return err
		}
		return writeOutput(flags, path, ".html", []byte(html))

	case modeCompile:
		res, err := svc.CompileProgram(ctx, doc.FullText, nil)
		if err != nil {
			return err
		}
		if flags.verbose {
			for _, d := range res.Diagnostics {
				fmt.Fprintf(os.Stderr, "%s: %s\n", path, d)
			}
		}
		return writeOutput(flags, path, ".mjs", []byte(res.Code))

	case modeCheck:
		html, runErr := svc.RenderHTML(ctx, doc.FullText)
		report := mdfront.RunSelfTest(doc.Metadata, html, runErr)
		if !report.Checked {
			if flags.verbose {
				fmt.Fprintf(os.Stderr, "%s: no expectations declared\n", path)
			}
			return nil
		}
		if !report.Passed() {
			return &selfTestError{failures: report.Failures}
		}
		if flags.verbose {
			fmt.Fprintf(os.Stderr, "%s: ok\n", path)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMode, flags.mode)
}

// writeOutput writes data to the input's name with ext substituted,
// optionally redirected into --out.
func writeOutput(flags *cliFlags, inputPath, ext string, data []byte) error {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ext
	dir := filepath.Dir(inputPath)
	if flags.outDir != "" {
		dir = flags.outDir
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	outPath := filepath.Join(dir, base)
	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("Created %s\n", outPath)
	return nil
}

// resolveWorkers bounds pool size to the input count, defaulting to the
// CPU count.
func resolveWorkers(requested, inputs int) int {
	n := requested
	if n < 1 {
		n = runtime.NumCPU()
	}
	if n > inputs {
		n = inputs
	}
	if n < 1 {
		n = 1
	}
	return n
}
