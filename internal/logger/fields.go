package logger

import "log/slog"

// Standard field keys used across quadm log statements.
const (
	KeyHost      = "host"       // meta server host
	KeyPort      = "port"       // meta server admin port
	KeyCommand   = "command"    // admin command display name
	KeyOpcode    = "opcode"     // numeric operation code
	KeyCseq      = "cseq"       // request sequence number
	KeyStatus    = "status"     // meta server status code
	KeyStatusMsg = "status_msg" // server-provided status message
	KeyLength    = "length"     // response content length
	KeyError     = "error"      // error message
)

// Host returns a slog.Attr for the meta server host.
func Host(h string) slog.Attr {
	return slog.String(KeyHost, h)
}

// Port returns a slog.Attr for the meta server admin port.
func Port(p int) slog.Attr {
	return slog.Int(KeyPort, p)
}

// Command returns a slog.Attr for an admin command name.
func Command(name string) slog.Attr {
	return slog.String(KeyCommand, name)
}

// Opcode returns a slog.Attr for a numeric operation code.
func Opcode(op int) slog.Attr {
	return slog.Int(KeyOpcode, op)
}

// Cseq returns a slog.Attr for a request sequence number.
func Cseq(n int64) slog.Attr {
	return slog.Int64(KeyCseq, n)
}

// Status returns a slog.Attr for a meta server status code.
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// StatusMsg returns a slog.Attr for a server status message.
func StatusMsg(msg string) slog.Attr {
	return slog.String(KeyStatusMsg, msg)
}

// Length returns a slog.Attr for a response content length.
func Length(n int) slog.Attr {
	return slog.Int(KeyLength, n)
}

// Err returns a slog.Attr for an error, or the zero Attr for nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
