package playback

//go:generate go run github.com/dmarkham/enumer -type Format -trimprefix Format -transform lower -json -output format.gen.go

// Format selects an export renderer.
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
	FormatHTML
	FormatText
)

// mimeType returns the MIME type of the rendered payload.
func (f Format) mimeType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatHTML:
		return "text/html"
	case FormatText:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// extension returns the filename extension for the format.
func (f Format) extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatHTML:
		return "html"
	case FormatText:
		return "txt"
	default:
		return "bin"
	}
}
