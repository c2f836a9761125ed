package shell

// BuiltinKind identifies a command that runs inside the shell process.
type BuiltinKind int

const (
	NotBuiltin BuiltinKind = iota
	BuiltinCd
	BuiltinClear
	BuiltinEcho
	BuiltinQuit
	BuiltinHelp
	BuiltinStartMonitor
	BuiltinStopMonitor
	BuiltinStatusMonitor
	BuiltinSearchConfig
)

var builtinNames = map[BuiltinKind]string{
	BuiltinCd:            "cd",
	BuiltinClear:         "clear",
	BuiltinEcho:          "echo",
	BuiltinQuit:          "quit",
	BuiltinHelp:          "help",
	BuiltinStartMonitor:  "start_monitor",
	BuiltinStopMonitor:   "stop_monitor",
	BuiltinStatusMonitor: "status_monitor",
	BuiltinSearchConfig:  "searchconfig",
}

var builtinsByName = func() map[string]BuiltinKind {
	out := make(map[string]BuiltinKind, len(builtinNames))
	for kind, name := range builtinNames {
		out[name] = kind
	}
	return out
}()

// String implements fmt.Stringer.
func (k BuiltinKind) String() string {
	if name, ok := builtinNames[k]; ok {
		return name
	}
	return "external"
}

// IsBuiltin returns true if k names a shell builtin.
func (k BuiltinKind) IsBuiltin() bool {
	_, ok := builtinNames[k]
	return ok
}

// LookupBuiltin resolves a command name to a builtin.
func LookupBuiltin(name string) (BuiltinKind, bool) {
	kind, ok := builtinsByName[name]
	return kind, ok
}

// Builtins lists every builtin in declaration order.
func Builtins() []BuiltinKind {
	var out []BuiltinKind
	for kind := BuiltinCd; kind <= BuiltinSearchConfig; kind++ {
		out = append(out, kind)
	}
	return out
}
