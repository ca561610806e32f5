package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	sourceHeader = "### SOURCE CODE ###\n\n"
	sourceFooter = "### SOURCE CODE END ###\n"
)

// formatListOnly renders the aggregated paths one per line, as given, in
// aggregator order. An empty selection yields an empty string.
func formatListOnly(files []string) string {
	var sb strings.Builder
	for _, path := range files {
		sb.WriteString(path)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// numberLines rewrites content so every line carries a right-aligned 1-based
// index. A trailing newline in the source does not produce a phantom final
// numbered empty line.
func numberLines(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		// CRLF content numbers as plain lines; the terminator is consumed.
		lines[i] = fmt.Sprintf("%4d | %s", i+1, strings.TrimSuffix(line, "\r"))
	}
	return strings.Join(lines, "\n")
}

// fenceTag returns the fence language tag for a path: the extension without
// its leading dot, or "txt" when the file has none.
func fenceTag(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return "txt"
	}
	return strings.TrimPrefix(ext, ".")
}

// formatOutput renders the selected files into the final output string. A
// file that cannot be read is skipped entirely, with a warning on the side
// channel; the run continues and the remaining files still render.
func formatOutput(files []string, cfg Config, logger *zap.Logger) string {
	if len(files) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(sourceHeader)

	rendered := 0
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("could not read file", zap.String("path", path), zap.Error(err))
			continue
		}
		// Lossy UTF-8: invalid bytes are dropped, never fatal.
		content := strings.ToValidUTF8(string(raw), "")

		if cfg.WithPaths {
			sb.WriteString("`" + path + "`\n")
		}
		if cfg.WithLineNumbers {
			content = numberLines(content)
		}

		sb.WriteString("```" + fenceTag(path) + "\n")
		sb.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			sb.WriteByte('\n')
		}
		sb.WriteString("```\n\n")
		rendered++
	}

	out := sb.String()
	if rendered > 0 {
		out = strings.TrimSuffix(out, "\n")
		out += "\n" + sourceFooter
	}
	return out
}
