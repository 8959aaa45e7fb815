package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical. All of these are fatal: the lexer stops producing
	// tokens after reporting one.
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005
	LexMacroRecursion           Code = 1006

	// Resource analysis. These accumulate; the pass keeps walking.
	ResInfo             Code = 3000
	ResMapKindConflict  Code = 3001
	ResMapShapeConflict Code = 3002
	ResBadCallArg       Code = 3003

	// Configuration.
	CfgInfo            Code = 4000
	CfgUnknownVariable Code = 4001
	CfgInvalidType     Code = 4002
	CfgBadValue        Code = 4003
	CfgEnvOnly         Code = 4004

	// I/O and environment.
	IOInfo         Code = 5000
	IOFileNotFound Code = 5001
	IOReadFailed   Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInfo:                     "lexical note",
	LexUnknownChar:              "unrecognized character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed integer literal",
	LexBadEscape:                "invalid escape sequence",
	LexMacroRecursion:           "macro recursion limit reached",

	ResInfo:             "resource analysis note",
	ResMapKindConflict:  "conflicting aggregation functions for one map",
	ResMapShapeConflict: "conflicting aggregation arguments for one map",
	ResBadCallArg:       "unexpected aggregation call argument",

	CfgInfo:            "configuration note",
	CfgUnknownVariable: "unrecognized config variable",
	CfgInvalidType:     "config value has the wrong type",
	CfgBadValue:        "config value out of range",
	CfgEnvOnly:         "config variable is environment-only",

	IOInfo:         "I/O note",
	IOFileNotFound: "file not found",
	IOReadFailed:   "file read failed",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
