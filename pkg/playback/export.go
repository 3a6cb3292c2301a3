package playback

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/identity"
)

// ErrUnsupportedFormat is returned when the requested export format is
// not one of the Format values.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportSession renders the session's full timeline in the requested
// format and returns the payload with a deterministic filename, MIME
// type, and size.
func (s *Service) ExportSession(ctx context.Context, id *identity.Identity, sessionID string, format Format) (*Export, error) {
	if !format.IsAFormat() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}

	timeline, err := s.GetPlaybackTimeline(ctx, id, sessionID)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch format {
	case FormatJSON:
		payload, err = renderJSON(timeline)
	case FormatCSV:
		payload, err = renderCSV(timeline)
	case FormatHTML:
		payload = renderHTML(timeline)
	case FormatText:
		payload = renderText(timeline)
	}
	if err != nil {
		return nil, err
	}

	export := &Export{
		SessionID: sessionID,
		Format:    format,
		Filename:  fmt.Sprintf("session-%s.%s", sessionID, format.extension()),
		MIMEType:  format.mimeType(),
		Payload:   payload,
		Size:      len(payload),
	}

	audit.Log(audit.ExportEvent{
		UserID:    id.UserID,
		ClientIP:  id.ClientIP(),
		SessionID: sessionID,
		Format:    format.String(),
		Filename:  export.Filename,
		SizeBytes: export.Size,
		Success:   true,
	})
	return export, nil
}

// renderJSON is the lossless renderer: the timeline marshals as-is.
func renderJSON(timeline *Timeline) ([]byte, error) {
	return json.MarshalIndent(timeline, "", "  ")
}

var csvHeader = []string{
	"sequence", "executed_at", "relative_ms", "command", "response",
	"error", "duration_ms", "success", "suspicious", "response_size",
}

func renderCSV(timeline *Timeline) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, entry := range timeline.Entries {
		record := []string{
			strconv.Itoa(entry.SequenceNumber),
			entry.AbsoluteTimestamp.Format(time.RFC3339),
			strconv.FormatInt(entry.RelativeTimestamp.Milliseconds(), 10),
			entry.CommandText,
			entry.ResponseText,
			entry.ErrorMessage,
			strconv.FormatInt(entry.ExecutionDuration.Milliseconds(), 10),
			strconv.FormatBool(entry.Success),
			strconv.FormatBool(entry.IsSuspicious),
			strconv.FormatInt(entry.ResponseSize, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderHTML(timeline *Timeline) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(fmt.Sprintf("<title>Session %s</title>\n", html.EscapeString(timeline.SessionID)))
	b.WriteString(`<style>
body { font-family: monospace; background: #1e1e1e; color: #d4d4d4; }
.command { margin: 8px 0; padding: 8px; border-left: 3px solid #4ec9b0; }
.command.error { border-left-color: #f44747; }
.command.suspicious { border-left-color: #dcdcaa; background: #332b00; }
.meta { color: #808080; font-size: 0.85em; }
.response { white-space: pre-wrap; color: #9cdcfe; }
.errmsg { color: #f44747; }
</style>
`)
	b.WriteString("</head>\n<body>\n")
	b.WriteString(fmt.Sprintf("<h1>Session %s</h1>\n", html.EscapeString(timeline.SessionID)))
	b.WriteString(fmt.Sprintf("<p class=\"meta\">account %s, user %s, started %s, duration %s, %d commands</p>\n",
		html.EscapeString(timeline.AccountID),
		html.EscapeString(timeline.UserID),
		timeline.StartedAt.Format(time.RFC3339),
		timeline.TotalDuration,
		len(timeline.Entries)))

	for _, entry := range timeline.Entries {
		class := "command"
		if !entry.Success {
			class += " error"
		}
		if entry.IsSuspicious {
			class += " suspicious"
		}
		b.WriteString(fmt.Sprintf("<div class=%q>\n", class))
		b.WriteString(fmt.Sprintf("<span class=\"meta\">#%d +%s (%s)</span>\n",
			entry.SequenceNumber, entry.RelativeTimestamp, entry.ExecutionDuration))
		b.WriteString(fmt.Sprintf("<div>%s</div>\n", html.EscapeString(entry.CommandText)))
		if entry.ResponseText != "" {
			b.WriteString(fmt.Sprintf("<div class=\"response\">%s</div>\n", html.EscapeString(entry.ResponseText)))
		}
		if entry.ErrorMessage != "" {
			b.WriteString(fmt.Sprintf("<div class=\"errmsg\">%s</div>\n", html.EscapeString(entry.ErrorMessage)))
		}
		if entry.SuspiciousReason != "" {
			b.WriteString(fmt.Sprintf("<div class=\"meta\">flagged: %s</div>\n", html.EscapeString(entry.SuspiciousReason)))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}

const textSectionDelimiter = "----------------------------------------"

func renderText(timeline *Timeline) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s\n", timeline.SessionID)
	fmt.Fprintf(&b, "Account: %s\n", timeline.AccountID)
	fmt.Fprintf(&b, "User: %s\n", timeline.UserID)
	fmt.Fprintf(&b, "Started: %s\n", timeline.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration: %s\n", timeline.TotalDuration)
	fmt.Fprintf(&b, "Commands: %d\n", len(timeline.Entries))

	for _, entry := range timeline.Entries {
		b.WriteString(textSectionDelimiter + "\n")
		status := "OK"
		if !entry.Success {
			status = "FAILED"
		}
		fmt.Fprintf(&b, "#%d +%s [%s] (%s)\n", entry.SequenceNumber,
			entry.RelativeTimestamp, status, entry.ExecutionDuration)
		fmt.Fprintf(&b, "$ %s\n", entry.CommandText)
		if entry.ResponseText != "" {
			b.WriteString(entry.ResponseText + "\n")
		}
		if entry.ErrorMessage != "" {
			fmt.Fprintf(&b, "ERROR: %s\n", entry.ErrorMessage)
		}
		if entry.IsSuspicious {
			fmt.Fprintf(&b, "SUSPICIOUS: %s\n", entry.SuspiciousReason)
		}
	}
	return []byte(b.String())
}
