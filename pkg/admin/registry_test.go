package admin

import (
	"sort"
	"strings"
	"testing"

	"github.com/quokkafs/quadm/pkg/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mixedCase upper-cases every other letter.
func mixedCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		if i%2 == 0 && 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func TestLookupCaseInsensitive(t *testing.T) {
	r := NewRegistry()

	for _, spec := range r.ListAll() {
		lower, ok := r.Lookup(strings.ToLower(spec.Key))
		require.True(t, ok, "lowercase lookup of %q", spec.Key)

		upper, ok := r.Lookup(strings.ToUpper(spec.Key))
		require.True(t, ok, "uppercase lookup of %q", spec.Key)

		mixed, ok := r.Lookup(mixedCase(spec.Key))
		require.True(t, ok, "mixed-case lookup of %q", spec.Key)

		assert.Equal(t, spec, lower)
		assert.Equal(t, spec, upper)
		assert.Equal(t, spec, mixed)
	}
}

func TestListAll(t *testing.T) {
	r := NewRegistry()
	specs := r.ListAll()
	require.Len(t, specs, 8)

	keys := make([]string, 0, len(specs))
	seen := make(map[string]bool)
	for _, spec := range specs {
		assert.False(t, seen[spec.Key], "duplicate key %q", spec.Key)
		seen[spec.Key] = true
		keys = append(keys, spec.Key)
	}
	assert.True(t, sort.StringsAreSorted(keys), "listing must be in lexical key order")
}

func TestCatalogContents(t *testing.T) {
	r := NewRegistry()

	expected := map[string]meta.Op{
		"check_leases":                    meta.OpCheckLeases,
		"recompute_dirsize":               meta.OpRecomputeDirsize,
		"dump_chunktoservermap":           meta.OpDumpChunkToServerMap,
		"dump_chunkreplicationcandidates": meta.OpDumpChunkReplicationCandidates,
		"open_files":                      meta.OpOpenFiles,
		"get_chunk_servers_counters":      meta.OpGetChunkServersCounters,
		"get_chunk_server_dirs_counters":  meta.OpGetChunkServerDirsCounters,
		"get_request_counters":            meta.OpGetRequestCounters,
	}

	ops := make(map[meta.Op]bool)
	for key, op := range expected {
		spec, ok := r.Lookup(key)
		require.True(t, ok, "missing catalog entry %q", key)
		assert.Equal(t, op, spec.Op)
		assert.Equal(t, key, NormalizeName(spec.DisplayName))
		assert.NotEmpty(t, spec.Description)
		assert.False(t, ops[spec.Op], "opcode %d mapped twice", spec.Op)
		ops[spec.Op] = true
	}
}

func TestDescribeOne(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, "open_files -- debug: list all chunk leases",
		r.DescribeOne("OPEN_FILES"))
	assert.Equal(t, "no such command: bogus", r.DescribeOne("bogus"))
}

func TestRenderListing(t *testing.T) {
	r := NewRegistry()
	listing := r.RenderListing()

	lines := strings.Split(strings.TrimRight(listing, "\n"), "\n")
	require.Len(t, lines, 8)
	for _, line := range lines {
		assert.Contains(t, line, " -- ")
		name := strings.SplitN(line, " -- ", 2)[0]
		assert.Len(t, name, r.MaxKeyLen(), "name field must be aligned: %q", line)
	}
	assert.Contains(t, lines[0], "check_leases")
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "open_files", NormalizeName("OPEN_FILES"))
	assert.Equal(t, "open_files", NormalizeName("Open_Files"))
	// Bytes outside 'A'..'Z' pass through unchanged.
	assert.Equal(t, "abc-123_é", NormalizeName("ABC-123_é"))
}
