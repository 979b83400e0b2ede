package msg

// OutKind names an outward effect for the executor/renderer.
type OutKind string

const (
	OutExplore              OutKind = "Explore"
	OutRefresh              OutKind = "Refresh"
	OutClearScreen          OutKind = "ClearScreen"
	OutPrintResultAndQuit   OutKind = "PrintResultAndQuit"
	OutPrintAppStateAndQuit OutKind = "PrintAppStateAndQuit"
	OutDebug                OutKind = "Debug"
	OutCall                 OutKind = "Call"
)

// OutKinds lists every effect kind, in a stable order.
var OutKinds = []OutKind{
	OutExplore,
	OutRefresh,
	OutClearScreen,
	OutPrintResultAndQuit,
	OutPrintAppStateAndQuit,
	OutDebug,
	OutCall,
}

// Out is one externally observable instruction. Effects accumulate in FIFO
// order and are drained strictly in that order.
type Out struct {
	Kind    OutKind
	Path    string  // OutDebug
	Command Command // OutCall
}
