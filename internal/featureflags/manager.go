// Package featureflags evaluates the FEATURE_FLAGS setting, a comma separated
// list such as "live_feedback=on,object_storage_mirror=25%".
package featureflags

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
	"strings"
)

// Flags read by the application. They are always reported, even when the
// setting does not mention them.
const (
	LiveFeedback        = "live_feedback"
	ObjectStorageMirror = "object_storage_mirror"
)

var known = []string{LiveFeedback, ObjectStorageMirror}

// rule is one parsed flag. percent is 100 for "on" and 0 for "off" or any
// value that cannot be parsed.
type rule struct {
	raw     string
	percent int
}

func parseRule(value string) rule {
	r := rule{raw: value}
	switch value {
	case "on", "true", "1", "yes":
		r.percent = 100
	case "off", "false", "0", "no":
	default:
		if pct, err := strconv.Atoi(strings.TrimSuffix(value, "%")); err == nil && strings.HasSuffix(value, "%") {
			r.percent = min(max(pct, 0), 100)
		}
	}
	return r
}

// Manager holds the parsed flags. A nil Manager reports everything off.
type Manager struct {
	rules map[string]rule
}

// NewManager parses raw. Entries may use '=' or ':' and malformed entries
// are skipped.
func NewManager(raw string) *Manager {
	m := &Manager{rules: make(map[string]rule)}
	for _, entry := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			key, value, ok = strings.Cut(entry, ":")
		}
		key, value = normalize(key), normalize(value)
		if !ok || key == "" || value == "" {
			continue
		}
		m.rules[key] = parseRule(value)
	}
	return m
}

// IsSet reports whether name was configured at all.
func (m *Manager) IsSet(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.rules[normalize(name)]
	return ok
}

// Enabled evaluates name for userID. Partial rollouts hash the user into a
// stable bucket, so anonymous callers (userID 0) only see fully enabled flags.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	r, ok := m.rules[normalize(name)]
	switch {
	case !ok || r.percent <= 0:
		return false
	case r.percent >= 100:
		return true
	case userID == 0:
		return false
	}
	return bucket(normalize(name), userID) < r.percent
}

// Raw returns the configured values keyed by flag name.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string)
	if m == nil {
		return out
	}
	for name, r := range m.rules {
		out[name] = r.raw
	}
	return out
}

// Snapshot evaluates every configured and every known flag for userID.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(known))
	for _, name := range known {
		out[name] = m.Enabled(name, userID)
	}
	if m != nil {
		for name := range m.rules {
			out[name] = m.Enabled(name, userID)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func bucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], uint64(userID))
	_, _ = h.Write(id[:])
	return int(h.Sum32() % 100)
}
