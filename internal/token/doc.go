// Package token defines lexical token kinds and trivia for Python source.
// Invariants:
//   - Token.Text is the exact source slice; concatenating every token's
//     Leading trivia and Text, in order, reproduces the input byte for byte.
//   - NEWLINE ends a logical line; line breaks inside brackets, blank lines and
//     comment-only lines are trivia, never NEWLINE tokens.
//   - INDENT and DEDENT are zero-width and carry no trivia; the indentation
//     whitespace belongs to the Leading trivia of the line's first real token.
//   - EOF is zero-width; its Leading holds whatever trivia ends the file.
//   - Soft keywords (match, case, type, _) are lexed as Name.
package token
