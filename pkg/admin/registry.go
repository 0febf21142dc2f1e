// Package admin implements the quadm command catalog and the sequential
// dispatcher that executes admin commands against the meta server.
package admin

import (
	"fmt"
	"sort"

	"github.com/quokkafs/quadm/pkg/meta"
)

// CommandSpec describes one administrative command. Immutable once built.
type CommandSpec struct {
	// Key is the normalized (lowercase) command name used for lookup.
	Key string
	// DisplayName is the canonical name echoed in output and sent to the
	// meta server.
	DisplayName string
	// Op is the meta server operation code.
	Op meta.Op
	// Description is the human-readable help text.
	Description string
}

// catalog is the fixed set of admin commands. It is the single source for
// both the lookup table and the help listing.
var catalog = []CommandSpec{
	{
		DisplayName: "CHECK_LEASES",
		Op:          meta.OpCheckLeases,
		Description: "debug: run chunk leases check",
	},
	{
		DisplayName: "RECOMPUTE_DIRSIZE",
		Op:          meta.OpRecomputeDirsize,
		Description: "debug: recompute directories sizes",
	},
	{
		DisplayName: "DUMP_CHUNKTOSERVERMAP",
		Op:          meta.OpDumpChunkToServerMap,
		Description: "create chunk server to chunk id map file used by the" +
			" off line re-balance utility and layout emulator",
	},
	{
		DisplayName: "DUMP_CHUNKREPLICATIONCANDIDATES",
		Op:          meta.OpDumpChunkReplicationCandidates,
		Description: "debug: list content of the chunks re-replication and" +
			" recovery queues",
	},
	{
		DisplayName: "OPEN_FILES",
		Op:          meta.OpOpenFiles,
		Description: "debug: list all chunk leases",
	},
	{
		DisplayName: "GET_CHUNK_SERVERS_COUNTERS",
		Op:          meta.OpGetChunkServersCounters,
		Description: "stats: output chunk server counters",
	},
	{
		DisplayName: "GET_CHUNK_SERVER_DIRS_COUNTERS",
		Op:          meta.OpGetChunkServerDirsCounters,
		Description: "stats: output chunk directories counters",
	},
	{
		DisplayName: "GET_REQUEST_COUNTERS",
		Op:          meta.OpGetRequestCounters,
		Description: "stats: get meta server request counters",
	},
}

// Registry is the immutable lookup table over the command catalog. Build it
// once with NewRegistry and share it by reference; it is safe for concurrent
// readers.
type Registry struct {
	byKey     map[string]CommandSpec
	keys      []string // lexical order, for deterministic listing
	maxKeyLen int
}

// NewRegistry builds the registry from the fixed catalog.
func NewRegistry() *Registry {
	r := &Registry{byKey: make(map[string]CommandSpec, len(catalog))}
	for _, spec := range catalog {
		spec.Key = NormalizeName(spec.DisplayName)
		if _, dup := r.byKey[spec.Key]; dup {
			panic(fmt.Sprintf("admin: duplicate command key %q", spec.Key))
		}
		r.byKey[spec.Key] = spec
		r.keys = append(r.keys, spec.Key)
		if len(spec.Key) > r.maxKeyLen {
			r.maxKeyLen = len(spec.Key)
		}
	}
	sort.Strings(r.keys)
	return r
}

// NormalizeName lowercases ASCII letters only; bytes outside 'A'..'Z' pass
// through unchanged. Lookups always normalize, so command names are
// case-insensitive.
func NormalizeName(name string) string {
	b := []byte(name)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Lookup resolves a command name, case-insensitively.
func (r *Registry) Lookup(name string) (CommandSpec, bool) {
	spec, ok := r.byKey[NormalizeName(name)]
	return spec, ok
}

// ListAll returns every command spec in lexical key order.
func (r *Registry) ListAll() []CommandSpec {
	specs := make([]CommandSpec, 0, len(r.keys))
	for _, key := range r.keys {
		specs = append(specs, r.byKey[key])
	}
	return specs
}

// MaxKeyLen returns the length of the longest normalized command name.
func (r *Registry) MaxKeyLen() int {
	return r.maxKeyLen
}

// DescribeOne formats a single command as "<name> -- <description>", or a
// not-found message when the name does not resolve.
func (r *Registry) DescribeOne(name string) string {
	spec, ok := r.Lookup(name)
	if !ok {
		return fmt.Sprintf("no such command: %s", name)
	}
	return fmt.Sprintf("%s -- %s", spec.Key, spec.Description)
}

// RenderListing returns the help listing: one line per command, names
// right-aligned to the longest key, in lexical key order.
func (r *Registry) RenderListing() string {
	var out []byte
	for _, spec := range r.ListAll() {
		out = fmt.Appendf(out, "%*s -- %s\n", r.maxKeyLen, spec.Key, spec.Description)
	}
	return string(out)
}
