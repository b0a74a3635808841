package ast

import "math/big"

// parseBOZ scans a BOZ literal of the form B'digits', O'digits',
// Z'digits' or X'digits' (single or double quotes) and returns the radix
// family tag and value.
//
// The closing quote must match the opening one and must be the last
// character of the literal. Anything else means the lexer let a
// malformed token through, which is fatal here.
func parseBOZ(text string) (BOZKind, *big.Int) {
	if len(text) < 4 {
		fatalf("malformed BOZ literal %q survived lexing", text)
	}
	var kind BOZKind
	radix := 0
	switch text[0] {
	case 'B', 'b':
		kind, radix = BOZBinary, 2
	case 'O', 'o':
		kind, radix = BOZOctal, 8
	case 'Z', 'z', 'X', 'x':
		kind, radix = BOZHexadecimal, 16
	default:
		fatalf("malformed BOZ literal %q survived lexing", text)
	}
	quote := text[1]
	if quote != '\'' && quote != '"' {
		fatalf("malformed BOZ literal %q survived lexing", text)
	}
	if text[len(text)-1] != quote {
		fatalf("unterminated BOZ literal %q survived lexing", text)
	}
	digits := text[2 : len(text)-1]
	v, ok := new(big.Int).SetString(digits, radix)
	if !ok || len(digits) == 0 || v.Sign() < 0 {
		fatalf("invalid digits in BOZ literal %q", text)
	}
	return kind, v
}
