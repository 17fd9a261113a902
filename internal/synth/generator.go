package synth

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// Generator produces a synthetic security-event dataset with a realistic mix
// of normal activity and attack patterns. It is seeded so a dataset can be
// reproduced across restarts.
type Generator struct {
	rng  *rand.Rand
	now  time.Time
	span time.Duration

	users     []string
	countries []string
}

// attackRatio is the share of generated events that follow attack patterns.
const attackRatio = 0.3

// spanDays is how far back generated timestamps reach.
const spanDays = 30

var bruteForcePrefixes = []string{"182.162.", "194.153.", "203.113."}
var portScanPrefixes = []string{"198.51.", "203.0.", "192.0.2."}
var bruteForceTargets = []string{"admin", "root", "service-account"}
var exfilCountries = []string{"CN", "RU", "KR"}

// NewGenerator creates a seeded generator anchored at now.
func NewGenerator(seed int64, now time.Time) *Generator {
	rng := rand.New(rand.NewSource(seed))
	return &Generator{
		rng:       rng,
		now:       now.UTC(),
		span:      spanDays * 24 * time.Hour,
		users:     makeUsers(rng, 150),
		countries: []string{"US", "UK", "DE", "FR", "JP", "CN", "IN", "BR", "AU", "CA", "RU", "KR", "NL", "SG"},
	}
}

func makeUsers(rng *rand.Rand, count int) []string {
	first := []string{"john", "jane", "mike", "sara", "david", "lisa", "robert", "emily", "michael", "susan"}
	last := []string{"smith", "johnson", "williams", "brown", "jones", "miller", "davis", "garcia", "rodriguez", "wilson"}
	users := make([]string, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, fmt.Sprintf("%s.%s%d", first[rng.Intn(len(first))], last[rng.Intn(len(last))], i))
	}
	return users
}

// Generate produces count events: roughly 70% normal activity and 30% attack
// patterns, shuffled together.
func (g *Generator) Generate(count int) []model.SecurityEvent {
	normal := int(float64(count) * (1 - attackRatio))
	events := make([]model.SecurityEvent, 0, count)

	for i := 0; i < normal; i++ {
		events = append(events, g.normalEvent())
	}
	for i := normal; i < count; i++ {
		events = append(events, g.attackEvent())
	}

	g.rng.Shuffle(len(events), func(i, j int) {
		events[i], events[j] = events[j], events[i]
	})
	return events
}

// normalEvent models routine user activity: mostly successful logins with
// occasional user-error failures.
func (g *Generator) normalEvent() model.SecurityEvent {
	user := g.users[g.rng.Intn(len(g.users))]
	sourceIP := g.internalIP()

	if g.rng.Float64() < 0.8 {
		return g.build(model.EventSuccessfulLogin, model.SeverityLow, user, sourceIP, "",
			g.riskBetween(1, 30),
			fmt.Sprintf("Successful login for user %s from %s", user, sourceIP))
	}
	return g.build(model.EventFailedLogin, model.SeverityMedium, user, sourceIP, "",
		g.riskBetween(31, 60),
		fmt.Sprintf("Failed authentication attempt for user %s from %s", user, sourceIP))
}

func (g *Generator) attackEvent() model.SecurityEvent {
	switch g.rng.Intn(4) {
	case 0:
		return g.bruteForceEvent()
	case 1:
		return g.portScanEvent()
	case 2:
		return g.exfiltrationEvent()
	default:
		return g.genericAttackEvent()
	}
}

func (g *Generator) bruteForceEvent() model.SecurityEvent {
	prefix := bruteForcePrefixes[g.rng.Intn(len(bruteForcePrefixes))]
	sourceIP := fmt.Sprintf("%s%d.%d", prefix, g.rng.Intn(255)+1, g.rng.Intn(255)+1)
	user := bruteForceTargets[g.rng.Intn(len(bruteForceTargets))]
	return g.build(model.EventBruteForceAttempt, model.SeverityHigh, user, sourceIP, "",
		g.riskBetween(70, 95),
		fmt.Sprintf("Multiple failed login attempts from %s targeting user %s", sourceIP, user))
}

func (g *Generator) portScanEvent() model.SecurityEvent {
	prefix := portScanPrefixes[g.rng.Intn(len(portScanPrefixes))]
	sourceIP := fmt.Sprintf("%s%d.%d", prefix, g.rng.Intn(255)+1, g.rng.Intn(255)+1)
	return g.build(model.EventPortScan, model.SeverityMedium, "unknown", sourceIP, "",
		g.riskBetween(60, 80),
		fmt.Sprintf("Port scanning activity detected from %s", sourceIP))
}

func (g *Generator) exfiltrationEvent() model.SecurityEvent {
	country := exfilCountries[g.rng.Intn(len(exfilCountries))]
	user := g.users[g.rng.Intn(len(g.users))]
	ev := g.build(model.EventDataExfiltration, model.SeverityCritical, user, g.externalIP(), country,
		g.riskBetween(80, 100), "")
	ev.BytesSent = int64(g.rng.Intn(49_000_000) + 1_000_000)
	ev.Message = fmt.Sprintf("Large data transfer (%d bytes) detected from %s to %s", ev.BytesSent, ev.SourceIP, country)
	return ev
}

func (g *Generator) genericAttackEvent() model.SecurityEvent {
	user := g.users[g.rng.Intn(len(g.users))]
	sourceIP := g.externalIP()
	switch g.rng.Intn(4) {
	case 0:
		return g.build(model.EventMalwareDetected, model.SeverityCritical, user, sourceIP, "",
			g.riskBetween(85, 100),
			fmt.Sprintf("Potential malware activity detected from %s", sourceIP))
	case 1:
		return g.build(model.EventFirewallBlock, model.SeverityHigh, user, sourceIP, "",
			g.riskBetween(70, 90),
			fmt.Sprintf("Firewall blocked connection attempt from %s to port %d", sourceIP, g.rng.Intn(9000)+1000))
	case 2:
		return g.build(model.EventPrivilegeEscalation, model.SeverityHigh, user, sourceIP, "",
			g.riskBetween(75, 95),
			fmt.Sprintf("Privilege escalation attempt detected for user %s", user))
	default:
		return g.build(model.EventSuspiciousConnection, model.SeverityMedium, user, sourceIP, "",
			g.riskBetween(60, 80),
			fmt.Sprintf("Suspicious network connection from %s to internal resource", sourceIP))
	}
}

func (g *Generator) build(et model.EventType, sev model.Severity, user, sourceIP, country string, risk int, message string) model.SecurityEvent {
	if country == "" {
		country = g.countries[g.rng.Intn(len(g.countries))]
	}
	ts := g.now.Add(-time.Duration(g.rng.Int63n(int64(g.span))))
	return model.SecurityEvent{
		ID:            fmt.Sprintf("evt-%s", uuid.NewString()),
		Timestamp:     ts,
		EventType:     et,
		SourceIP:      sourceIP,
		DestinationIP: fmt.Sprintf("192.168.%d.%d", g.rng.Intn(255)+1, g.rng.Intn(254)+1),
		User:          user,
		Severity:      sev,
		Country:       country,
		Message:       message,
		RiskScore:     risk,
		BytesSent:     int64(g.rng.Intn(100_000)),
		BytesReceived: int64(g.rng.Intn(50_000)),
	}
}

func (g *Generator) riskBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) internalIP() string {
	return fmt.Sprintf("10.%d.%d.%d", g.rng.Intn(256), g.rng.Intn(256), g.rng.Intn(254)+1)
}

func (g *Generator) externalIP() string {
	return fmt.Sprintf("%d.%d.%d.%d", g.rng.Intn(223)+1, g.rng.Intn(256), g.rng.Intn(256), g.rng.Intn(254)+1)
}
