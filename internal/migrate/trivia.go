package migrate

import "cocomig/internal/token"

// splitIndent splits leading trivia into everything up to and including the
// last line break, and the indentation that follows it.
func splitIndent(lead []token.Trivia) (head, indent []token.Trivia) {
	i := len(lead)
	for i > 0 && lead[i-1].Kind == token.TriviaSpace {
		i--
	}
	return lead[:i:i], lead[i:]
}

// lineComments returns the comments of a trailing-comment region such as the
// leading trivia of a NEWLINE token.
func lineComments(lead []token.Trivia) []token.Trivia {
	var out []token.Trivia
	for _, t := range lead {
		if t.Kind == token.TriviaComment {
			if len(out) > 0 {
				out = append(out, token.Space())
			}
			out = append(out, t)
		}
	}
	return out
}

// multiline reports whether trivia holds anything that must stay on its own line.
func multiline(lead []token.Trivia) bool {
	for _, t := range lead {
		switch t.Kind {
		case token.TriviaNewline, token.TriviaComment, token.TriviaContinuation:
			return true
		}
	}
	return false
}

func concat(parts ...[]token.Trivia) []token.Trivia {
	var out []token.Trivia
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
