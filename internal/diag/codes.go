package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexTokenTooLong       Code = 1004
	LexInconsistentDedent Code = 1005
	LexUnmatchedBracket   Code = 1006
	LexUnclosedBracket    Code = 1007
	LexBadContinuation    Code = 1008
	LexBadEncoding        Code = 1009
	LexInconsistentTabs   Code = 1010

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectExpression   Code = 2002
	SynExpectColon        Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectIndent       Code = 2005
	SynUnexpectedIndent   Code = 2006
	SynExpectNewline      Code = 2007
	SynExpectRParen       Code = 2008
	SynExpectRBracket     Code = 2009
	SynExpectRBrace       Code = 2010
	SynExpectIn           Code = 2011
	SynInvalidDecorator   Code = 2012
	SynExpectImport       Code = 2013
	SynExpectBlock        Code = 2014
	SynUnexpectedEOF      Code = 2015
	SynInvalidAsync       Code = 2016
	SynExpectCaseBlock    Code = 2017
	SynExpectExceptClause Code = 2018
	SynInvalidTarget      Code = 2019
	SynInvalidSyntax      Code = 2020

	// Миграция
	MigInfo               Code = 3000
	MigCoroutineDecorator Code = 3001
	MigSuspendPoint       Code = 3002
	MigValueReturn        Code = 3003
	MigSpawnCall          Code = 3004
	MigUnfixable          Code = 3100
	MigInvalidOutput      Code = 3101

	// Ввод-вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOWriteError    Code = 4002

	// Конфигурация
	CfgInfo      Code = 5000
	CfgInvalid   Code = 5001
	CfgBadGlob   Code = 5002
	CfgBadMarker Code = 5003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		LexBadNumber:          "Malformed number literal",
		LexTokenTooLong:       "Token exceeds the maximum length",
		LexInconsistentDedent: "Unindent does not match any outer indentation level",
		LexUnmatchedBracket:   "Closing bracket does not match",
		LexUnclosedBracket:    "Bracket was never closed",
		LexBadContinuation:    "Unexpected character after line continuation",
		LexBadEncoding:        "Invalid UTF-8 in source",
		LexInconsistentTabs:   "Inconsistent use of tabs and spaces in indentation",

		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectExpression:   "Expected expression",
		SynExpectColon:        "Expected ':'",
		SynExpectIdentifier:   "Expected identifier",
		SynExpectIndent:       "Expected an indented block",
		SynUnexpectedIndent:   "Unexpected indent",
		SynExpectNewline:      "Expected end of statement",
		SynExpectRParen:       "Expected ')'",
		SynExpectRBracket:     "Expected ']'",
		SynExpectRBrace:       "Expected '}'",
		SynExpectIn:           "Expected 'in'",
		SynInvalidDecorator:   "Decorator must precede a function or class",
		SynExpectImport:       "Expected 'import'",
		SynExpectBlock:        "Expected a block",
		SynUnexpectedEOF:      "Unexpected end of file",
		SynInvalidAsync:       "'async' must precede def, for or with",
		SynExpectCaseBlock:    "Expected 'case' block",
		SynExpectExceptClause: "Expected 'except' or 'finally' block",
		SynInvalidTarget:      "Invalid assignment target",
		SynInvalidSyntax:      "Invalid syntax",

		MigInfo:               "Migration information",
		MigCoroutineDecorator: "Generator coroutine decorator",
		MigSuspendPoint:       "Generator suspension point",
		MigValueReturn:        "Coroutine value return",
		MigSpawnCall:          "Deprecated task spawn",
		MigUnfixable:          "Construct needs manual migration",
		MigInvalidOutput:      "Rewritten source does not parse",

		IOInfo:          "I/O information",
		IOLoadFileError: "Failed to load file",
		IOWriteError:    "Failed to write file",

		CfgInfo:      "Configuration information",
		CfgInvalid:   "Invalid configuration",
		CfgBadGlob:   "Invalid glob pattern",
		CfgBadMarker: "Invalid marker name",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MIG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
