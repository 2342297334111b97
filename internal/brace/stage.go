package brace

// Stage tracks how far a complex statement has progressed while its
// entry sits on the paren stack.
type Stage uint8

const (
	StageNone      Stage = iota // not a complex statement
	StageParen1                 // expecting the opening paren
	StageOpParen1               // the paren is optional, a body may follow directly
	StageBrace2                 // expecting the body
	StageBraceDo                // expecting the body of a do
	StageWhile                  // expecting while after a do body
	StageWodParen               // expecting the paren of a while-of-do
	StageWodSemi                // expecting the semicolon after a while-of-do
	StageElse                   // an else may continue the statement
	StageElseIf                 // an if may chain onto the else
	StageCatch                  // a catch or finally may continue the statement
	StageCatchWhen              // a paren or when filter may follow the catch
)

var stageNames = map[Stage]string{
	StageNone:      "NONE",
	StageParen1:    "PAREN1",
	StageOpParen1:  "OP_PAREN1",
	StageBrace2:    "BRACE2",
	StageBraceDo:   "BRACE_DO",
	StageWhile:     "WHILE",
	StageWodParen:  "WOD_PAREN",
	StageWodSemi:   "WOD_SEMI",
	StageElse:      "ELSE",
	StageElseIf:    "ELSEIF",
	StageCatch:     "CATCH",
	StageCatchWhen: "CATCH_WHEN",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// patternClass says how a keyword opens a complex statement.
type patternClass uint8

const (
	patternNone          patternClass = iota
	patternBraced                     // body follows directly (do, try, finally)
	patternParenBraced                // paren then body (if, for, while, switch)
	patternOpParenBraced              // optional paren then body (version, D catch)
	patternElse                       // continues a closed if
)
