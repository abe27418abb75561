package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# textpulse configuration
version: "1.0"

# Remote text analysis service
service:
  # Base URL exposing GET /logs, POST /score and DELETE /clear
  endpoint: "http://127.0.0.1:5000"
  # Per-request timeout
  timeout: 30s

# Input limits
input:
  # Edits longer than this are rejected
  max_length: 1000
  # The character counter is highlighted above this length
  warn_length: 450

# Output formatting and display
output:
  # json|text|markdown|csv
  default_format: "text"
  # auto|always|never
  color_mode: "auto"
  verbose: false
  # default|high-contrast|minimal
  theme: "default"
  # Diagnostics file written while the terminal UI is running
  # (empty means $TMPDIR/textpulse.log)
  log_file: ""

# Exported trend charts
chart:
  width: 800
  height: 400
  # png|svg
  format: "png"

# Web dashboard
server:
  address: ":8080"
  # debug|release|test
  mode: "release"

# File watcher
watch:
  # raw scores each line as-is; auto|json|logfmt|text parse the line first
  format: "raw"
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
service:
  endpoint: "http://127.0.0.1:5000"
  timeout: 30s
output:
  default_format: "text"
`
}
