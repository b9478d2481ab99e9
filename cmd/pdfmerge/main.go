package main

import (
	"os"
	"strings"

	"pdfmerge-cli/internal/cli"
)

func isPDFArg(s string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(s)), ".pdf")
}

func rewriteDirectEditArgs(argv []string) []string {
	// Convenience: `pdfmerge a.pdf b.pdf` works like `pdfmerge edit a.pdf b.pdf`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
	// before parsing. Persistent flags may come first, so look for the first
	// positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--format":    true,
		"--log-level": true,
		"--log-file":  true,
	}

	insertAt := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "edit")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isPDFArg(argv[i+1]) {
				return insertAt(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isPDFArg(a) {
			return insertAt(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectEditArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
