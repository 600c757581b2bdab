package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParentJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Parent
	}{
		{"null is root", `null`, Root},
		{"zero number is root", `0`, Root},
		{"zero string is root", `"0"`, Root},
		{"empty string is root", `""`, Root},
		{"id", `"V1StGXR8_Z5jdHi6B-myT"`, ParentOf("V1StGXR8_Z5jdHi6B-myT")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Parent
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			require.Equal(t, tt.want, p)
		})
	}

	var p Parent
	require.Error(t, json.Unmarshal([]byte(`12`), &p))
}

func TestFileJSONRendersRootAsZero(t *testing.T) {
	f := File{ID: "abc", UserID: 7, Name: "a.txt", Type: KindFile, LocalPath: "/tmp/x"}

	out, err := json.Marshal(f)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	require.Equal(t, float64(0), m["parentId"])
	require.Equal(t, false, m["isPublic"])
	require.NotContains(t, m, "LocalPath")
	require.NotContains(t, m, "localPath")

	f.Parent = ParentOf("folder1")
	out, err = json.Marshal(f)
	require.NoError(t, err)
	require.Contains(t, string(out), `"parentId":"folder1"`)
}

func TestKind(t *testing.T) {
	require.True(t, KindImage.Valid())
	require.False(t, Kind("video").Valid())
	require.True(t, KindFolder.IsFolder())
	require.False(t, KindFile.IsFolder())
}
