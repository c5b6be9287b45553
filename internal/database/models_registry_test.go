package database

import (
	"testing"

	modelspkg "elfatih/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_ParentsBeforeChildren(t *testing.T) {
	index := map[string]int{}
	for i, model := range PersistentModels() {
		switch model.(type) {
		case *modelspkg.User:
			index["user"] = i
		case *modelspkg.Post:
			index["post"] = i
		case *modelspkg.PostSection:
			index["section"] = i
		case *modelspkg.PostFeedback:
			index["feedback"] = i
		case *modelspkg.Device:
			index["device"] = i
		}
	}
	require.Len(t, index, 5)
	require.Less(t, index["post"], index["section"])
	require.Less(t, index["post"], index["feedback"])
	require.Less(t, index["user"], index["feedback"])
}
