package embeddata

import (
	"embed"
	"io/fs"
)

//go:embed default.yaml report.md.tmpl
var embeddedFS embed.FS

// FS returns the embedded filesystem with access to default.yaml and report.md.tmpl.
func FS() fs.FS {
	return embeddedFS
}

// ReadDefaultScenario returns the contents of default.yaml.
func ReadDefaultScenario() ([]byte, error) {
	return embeddedFS.ReadFile("default.yaml")
}

// ReadReportTemplate returns the contents of report.md.tmpl.
func ReadReportTemplate() ([]byte, error) {
	return embeddedFS.ReadFile("report.md.tmpl")
}
