package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabledValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0,g=yes,h=maybe,i=100%,j=0%,k=250%")

	tests := []struct {
		flag string
		want bool
	}{
		{"a", true}, {"b", false}, {"c", true}, {"d", false}, {"e", true},
		{"f", false}, {"g", true}, {"h", false}, {"i", true}, {"j", false},
		{"k", true}, {"missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Enabled(tt.flag, 1))
		})
	}
}

func TestPartialRollout(t *testing.T) {
	m := NewManager("canary=25%")

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", 42), "rollout is stable per user")
	}
	assert.False(t, m.Enabled("canary", 0), "anonymous callers are outside partial rollouts")

	enabled := 0
	for id := uint(1); id <= 1000; id++ {
		if m.Enabled("canary", id) {
			enabled++
		}
	}
	assert.InDelta(t, 250, enabled, 80)
}

func TestParsing(t *testing.T) {
	m := NewManager(" bad ,X=on, y = 20% ,z:off,=on,w= ")

	assert.Equal(t, map[string]string{"x": "on", "y": "20%", "z": "off"}, m.Raw())
	assert.True(t, m.IsSet("X"))
	assert.False(t, m.IsSet("w"))
	assert.True(t, m.Enabled("x", 0))
}

func TestSnapshotIncludesKnownFlags(t *testing.T) {
	snap := NewManager("extra=on").Snapshot(7)
	assert.Equal(t, map[string]bool{
		LiveFeedback:        false,
		ObjectStorageMirror: false,
		"extra":             true,
	}, snap)
}

func TestNilManager(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled(LiveFeedback, 1))
	assert.False(t, m.IsSet(LiveFeedback))
	assert.Empty(t, m.Raw())
	assert.Equal(t, map[string]bool{LiveFeedback: false, ObjectStorageMirror: false}, m.Snapshot(1))
}
