package runtime

// StmtResultKind tags the control signal produced by executing a statement.
type StmtResultKind int

const (
	ResultNone StmtResultKind = iota
	ResultValue
	ResultBreak
	ResultReturn
)

func (k StmtResultKind) String() string {
	switch k {
	case ResultNone:
		return "none"
	case ResultValue:
		return "value"
	case ResultBreak:
		return "break"
	case ResultReturn:
		return "return"
	default:
		return "unknown"
	}
}

// StmtResult is the outcome of executing one statement. Value is set for
// ResultValue, and optionally for ResultReturn (nil means a bare return).
type StmtResult struct {
	Kind  StmtResultKind
	Value Value
}

func NoneResult() StmtResult { return StmtResult{Kind: ResultNone} }

func ValueResult(v Value) StmtResult { return StmtResult{Kind: ResultValue, Value: v} }

func BreakResult() StmtResult { return StmtResult{Kind: ResultBreak} }

func ReturnResult(v Value) StmtResult { return StmtResult{Kind: ResultReturn, Value: v} }
