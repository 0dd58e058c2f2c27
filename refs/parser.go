package refs

import (
	"github.com/classtree/classtree/errors"
)

// Parse parses input into a Token tree per the grammar in spec.md §4.1:
//
//	start      := item+
//	item       := reference | literal
//	reference  := "${" inner+ "}"
//	inner      := reference | ref_literal
//	literal    := chars not starting an unescaped "${"
//	ref_literal:= chars inside a reference, not "}" unless escaped
//
// Escapes: `\${` emits literal `${`; `\}` inside a reference emits
// literal `}`; `\\` immediately before `${` or `}` emits literal `\` and
// leaves the delimiter live. A bare `$` not followed by `{` is literal.
// Parse must consume the entire input or fail with a ParseError.
func Parse(input string) (*Token, error) {
	p := &parser{runes: []rune(input)}

	if len(p.runes) == 0 {
		return nil, errors.NewParseError(input, "empty input", 0)
	}

	tokens, err := p.parseSequence(false)
	if err != nil {
		return nil, err
	}

	if p.pos != len(p.runes) {
		return nil, errors.NewParseError(input, "unconsumed input remains", p.pos)
	}

	tokens = coalesceLiterals(tokens)
	if len(tokens) == 1 {
		return tokens[0], nil
	}
	return &Token{Kind: TokenCombined, Children: tokens}, nil
}

type parser struct {
	runes []rune
	pos   int
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.runes)
}

func (p *parser) current() rune {
	return p.runes[p.pos]
}

// matchesAt reports whether the literal rune sequence lit occurs
// starting at position pos.
func (p *parser) matchesAt(pos int, lit string) bool {
	litRunes := []rune(lit)
	if pos+len(litRunes) > len(p.runes) {
		return false
	}
	for i, r := range litRunes {
		if p.runes[pos+i] != r {
			return false
		}
	}
	return true
}

func (p *parser) matches(lit string) bool {
	return p.matchesAt(p.pos, lit)
}

// isDoubleEscapeAt reports whether the input at pos is `\\` immediately
// followed by a live `${` or `}` delimiter.
func (p *parser) isDoubleEscapeAt(pos int) bool {
	return p.matchesAt(pos, `\\`) && (p.matchesAt(pos+2, "${") || p.matchesAt(pos+2, "}"))
}

// parseSequence parses a run of items until end of input (inRef=false)
// or an unescaped closing `}` (inRef=true), consuming that `}`. A
// reference body with zero items (an immediate `}`) is a parse error,
// matching the grammar's `inner+` requirement.
func (p *parser) parseSequence(inRef bool) ([]*Token, error) {
	var tokens []*Token

	for {
		if p.atEnd() {
			if inRef {
				return nil, errors.NewParseError(string(p.runes), "unmatched ${: missing closing }", p.pos)
			}
			return tokens, nil
		}

		if inRef && p.current() == '}' {
			if len(tokens) == 0 {
				return nil, errors.NewParseError(string(p.runes), "empty reference body", p.pos)
			}
			p.pos++
			return tokens, nil
		}

		if p.isDoubleEscapeAt(p.pos) {
			p.pos += 2
			tokens = append(tokens, NewLiteralToken(`\`))
			continue
		}

		if p.matches(`\${`) {
			p.pos += 3
			tokens = append(tokens, NewLiteralToken("${"))
			continue
		}

		if inRef && p.matches(`\}`) {
			p.pos += 2
			tokens = append(tokens, NewLiteralToken("}"))
			continue
		}

		if p.matches("${") {
			p.pos += 2
			inner, err := p.parseSequence(true)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, &Token{Kind: TokenRef, Children: coalesceLiterals(inner)})
			continue
		}

		start := p.pos
		for !p.atEnd() {
			if inRef && p.current() == '}' {
				break
			}
			if p.matches("${") {
				break
			}
			if p.isDoubleEscapeAt(p.pos) {
				break
			}
			if p.matches(`\${`) {
				break
			}
			if inRef && p.matches(`\}`) {
				break
			}
			p.pos++
		}
		if p.pos == start {
			// Safety net: always make forward progress.
			p.pos++
		}
		tokens = append(tokens, NewLiteralToken(string(p.runes[start:p.pos])))
	}
}
