package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityEvent_RoundTrip(t *testing.T) {
	event := SecurityEvent{
		ID:            "evt-001",
		Timestamp:     time.Date(2026, 8, 20, 14, 30, 15, 0, time.UTC),
		EventType:     EventFailedLogin,
		SourceIP:      "182.162.10.20",
		DestinationIP: "192.168.1.5",
		User:          "admin",
		Severity:      SeverityHigh,
		Country:       "IN",
		Message:       "Failed authentication attempt for user admin from 182.162.10.20",
		RiskScore:     85,
		BytesSent:     1024,
		BytesReceived: 512,
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded SecurityEvent
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, event.ID, decoded.ID)
	assert.True(t, event.Timestamp.Equal(decoded.Timestamp))
	assert.Equal(t, event.EventType, decoded.EventType)
	assert.Equal(t, event.SourceIP, decoded.SourceIP)
	assert.Equal(t, event.DestinationIP, decoded.DestinationIP)
	assert.Equal(t, event.User, decoded.User)
	assert.Equal(t, event.Severity, decoded.Severity)
	assert.Equal(t, event.Country, decoded.Country)
	assert.Equal(t, event.Message, decoded.Message)
	assert.Equal(t, event.RiskScore, decoded.RiskScore)
	assert.Equal(t, event.BytesSent, decoded.BytesSent)
	assert.Equal(t, event.BytesReceived, decoded.BytesReceived)
}

func TestEventType_UnmarshalRejectsUnknown(t *testing.T) {
	var et EventType
	err := json.Unmarshal([]byte(`"disk_full"`), &et)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`"port_scan"`), &et))
	assert.Equal(t, EventPortScan, et)
}

func TestEnums_UnmarshalEscapedStrings(t *testing.T) {
	// JSON escapes inside the string decode to the same wire value.
	var s Severity
	require.NoError(t, json.Unmarshal([]byte("\"\\u0068igh\""), &s))
	assert.Equal(t, SeverityHigh, s)

	var et EventType
	require.NoError(t, json.Unmarshal([]byte("\"port\\u005fscan\""), &et))
	assert.Equal(t, EventPortScan, et)
}

func TestSeverity_UnmarshalRejectsUnknown(t *testing.T) {
	var s Severity
	err := json.Unmarshal([]byte(`"severe"`), &s)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`"critical"`), &s))
	assert.Equal(t, SeverityCritical, s)
}

func TestParseEventType(t *testing.T) {
	for _, et := range EventTypes {
		parsed, err := ParseEventType(string(et))
		require.NoError(t, err)
		assert.Equal(t, et, parsed)
	}

	_, err := ParseEventType("unknown")
	assert.Error(t, err)
}

func TestSecurityEvent_Validate(t *testing.T) {
	valid := SecurityEvent{
		ID:        "evt-001",
		Timestamp: time.Now().UTC(),
		EventType: EventMalwareDetected,
		Severity:  SeverityCritical,
		RiskScore: 95,
	}
	assert.NoError(t, valid.Validate())

	missingID := valid
	missingID.ID = ""
	assert.Error(t, missingID.Validate())

	badType := valid
	badType.EventType = "ransomware"
	assert.Error(t, badType.Validate())

	badScore := valid
	badScore.RiskScore = 101
	assert.Error(t, badScore.Validate())

	negativeBytes := valid
	negativeBytes.BytesSent = -1
	assert.Error(t, negativeBytes.Validate())
}

func TestDefaultTimeRange(t *testing.T) {
	tr := DefaultTimeRange()
	assert.Equal(t, UnitHours, tr.Unit)
	assert.Equal(t, 24, tr.Value)
}
