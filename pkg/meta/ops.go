// Package meta defines the operation records exchanged with the QuokkaFS
// meta server over its admin protocol.
package meta

import (
	"fmt"
	"net"
	"strconv"
)

// Op identifies an administrative operation on the meta server.
type Op int

// Administrative opcodes understood by the meta server.
const (
	OpCheckLeases Op = iota + 1
	OpRecomputeDirsize
	OpDumpChunkToServerMap
	OpDumpChunkReplicationCandidates
	OpOpenFiles
	OpGetChunkServersCounters
	OpGetChunkServerDirsCounters
	OpGetRequestCounters
)

// ServerLocation is the meta server admin endpoint. Immutable once built.
type ServerLocation struct {
	Host string
	Port int
}

// NewServerLocation builds a location from host and port.
func NewServerLocation(host string, port int) ServerLocation {
	return ServerLocation{Host: host, Port: port}
}

// IsValid reports whether the location names a usable endpoint.
func (l ServerLocation) IsValid() bool {
	return l.Host != "" && l.Port >= 0
}

// Addr returns the dialable host:port form.
func (l ServerLocation) Addr() string {
	return net.JoinHostPort(l.Host, strconv.Itoa(l.Port))
}

// String implements fmt.Stringer.
func (l ServerLocation) String() string {
	return l.Addr()
}

// MonOp is one monitoring/maintenance request and, after execution, its
// outcome. The request half (Op, Name) is set by the caller; the outcome
// half is filled in by the client and consumed immediately for display.
type MonOp struct {
	Op   Op
	Name string

	// Outcome of the remote call.
	Status        int
	StatusMsg     string
	ContentLength int
	Content       []byte
}

// NewMonOp builds a request record tagged with the given opcode and
// canonical display name.
func NewMonOp(op Op, name string) *MonOp {
	return &MonOp{Op: op, Name: name}
}

// Failed reports whether the executed operation came back with a failure
// status.
func (o *MonOp) Failed() bool {
	return o.Status < 0
}

// String implements fmt.Stringer for log output.
func (o *MonOp) String() string {
	return fmt.Sprintf("%s(%d)", o.Name, o.Op)
}
