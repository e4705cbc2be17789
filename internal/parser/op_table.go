package parser

import "cocomig/internal/token"

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все левоассоциативны,
// кроме '**', который разбирается отдельно в parsePower.
const (
	precBitwiseOr      = 1 // |
	precBitwiseXor     = 2 // ^
	precBitwiseAnd     = 3 // &
	precShift          = 4 // << >>
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / // % @
)

// getBinaryOperatorPrec возвращает приоритет оператора или -1.
func getBinaryOperatorPrec(kind token.Kind) int {
	switch kind {
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.SlashSlash, token.Percent, token.At:
		return precMultiplicative
	default:
		return -1
	}
}

// isCompareOp: одиночные операторы сравнения; 'not in' и 'is not' собираются в parseComparison.
func isCompareOp(kind token.Kind) bool {
	switch kind {
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.EqEq, token.BangEq,
		token.KwIn, token.KwIs:
		return true
	}
	return false
}
