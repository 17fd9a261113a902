package store

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/xeipuuv/gojsonschema"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// eventSchema validates dataset documents at the store boundary. Unknown
// event types, severities, and out-of-range scores are rejected here so the
// pipeline never sees them.
const eventSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "timestamp", "event_type", "source_ip", "destination_ip", "user", "severity", "country", "message", "risk_score", "bytes_sent", "bytes_received"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "timestamp": {"type": "string", "format": "date-time"},
      "event_type": {"type": "string", "enum": ["failed_login", "successful_login", "malware_detected", "firewall_block", "privilege_escalation", "data_exfiltration", "port_scan", "brute_force_attempt", "suspicious_connection"]},
      "source_ip": {"type": "string"},
      "destination_ip": {"type": "string"},
      "user": {"type": "string"},
      "severity": {"type": "string", "enum": ["critical", "high", "medium", "low"]},
      "country": {"type": "string", "minLength": 2, "maxLength": 2},
      "message": {"type": "string"},
      "risk_score": {"type": "integer", "minimum": 0, "maximum": 100},
      "bytes_sent": {"type": "integer", "minimum": 0},
      "bytes_received": {"type": "integer", "minimum": 0}
    }
  }
}`

// LoadDataset reads a JSON event dataset from disk, decompressing zstd
// snapshots (".zst" suffix) transparently, validates it against the event
// schema, and returns the decoded events.
func LoadDataset(path string, logger *slog.Logger) ([]model.SecurityEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd reader: %w", err)
		}
		defer dec.Close()
		reader = dec
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	events, err := DecodeDataset(data)
	if err != nil {
		return nil, err
	}

	logger.Info("Dataset loaded", "path", path, "events", len(events))
	return events, nil
}

// DecodeDataset validates and decodes a JSON event array.
func DecodeDataset(data []byte) ([]model.SecurityEvent, error) {
	schemaLoader := gojsonschema.NewStringLoader(eventSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate dataset: %w", err)
	}
	if !validation.Valid() {
		msgs := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("dataset failed schema validation: %s", strings.Join(msgs, "; "))
	}

	var events []model.SecurityEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	for i := range events {
		if err := events[i].Validate(); err != nil {
			return nil, fmt.Errorf("dataset event %d: %w", i, err)
		}
	}

	return events, nil
}

// WriteDataset serializes events to a JSON dataset file, zstd-compressing
// when the path carries a ".zst" suffix.
func WriteDataset(path string, events []model.SecurityEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	var writer io.Writer = f
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("failed to open zstd writer: %w", err)
		}
		defer enc.Close()
		writer = enc
	}

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}
