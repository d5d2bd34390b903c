package engine

import (
	"path"
	"strings"

	"github.com/samber/lo"
)

// Dependency, build and tooling directories skipped with default excludes.
var skipDirs = []string{
	"node_modules", "vendor", "target", "dist", "build", "out", "bin", "obj",
	".venv", "venv", "__pycache__", "coverage", ".idea", ".vscode",
}

// Binary formats, minified bundles and archives.
var skipSuffixes = []string{
	".min.js", ".map", ".lock",
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".ico", ".bmp",
	".pdf", ".zip", ".gz", ".tar", ".tgz", ".7z", ".xz",
	".jar", ".class", ".exe", ".dll", ".so", ".dylib", ".wasm", ".pyc",
	".parquet", ".avro", ".orc", ".sqlite", ".db",
	".woff", ".woff2", ".ttf", ".eot",
}

// Lockfiles and piiguard's own state. Baselines and audit logs only hold
// hashes, but vault files hold sealed originals and are never scanned.
var skipNames = []string{
	"package-lock.json", "pnpm-lock.yaml", "go.sum", ".ds_store",
	".piiguard.yml", ".piiguard.yaml", "piiguard.yml", "piiguard.yaml",
	".piiguardignore", "piiguard.baseline.json", ".piiguard_audit.jsonl",
	"vault.bin",
}

func isDefaultDirExcluded(name string) bool {
	return strings.HasPrefix(name, ".git") || lo.Contains(skipDirs, name)
}

func isDefaultFileExcluded(lowerRel string) bool {
	if lo.ContainsBy(skipSuffixes, func(s string) bool { return strings.HasSuffix(lowerRel, s) }) {
		return true
	}
	return lo.Contains(skipNames, path.Base(lowerRel))
}
