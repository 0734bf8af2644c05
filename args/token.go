package args

import (
	"go/scanner"
	"go/token"
	"strings"

	"github.com/m4gshm/restruct/diag"
)

type Kind int

const (
	Ident Kind = iota + 1
	Literal
	Punct
	Group
)

// Token is one directive argument token, a Group holds its bracketed body in Inner.
type Token struct {
	Kind  Kind
	Text  string
	Lit   token.Token
	Pos   token.Pos
	Inner Args
}

func (t Token) String() string {
	if t.Kind == Group {
		return t.Text + t.Inner.String() + closing[t.Text]
	}
	return t.Text
}

func (t Token) isPunct(p string) bool {
	return t.Kind == Punct && t.Text == p
}

func (t Token) isComma() bool {
	return t.isPunct(",")
}

var closing = map[string]string{"(": ")", "[": "]", "{": "}"}

// Parse tokenizes directive argument text. Token positions are offsets from base, or token.NoPos when base is not valid.
func Parse(src string, base token.Pos) (Args, error) {
	fileSet := token.NewFileSet()
	file := fileSet.AddFile("", fileSet.Base(), len(src))
	pos := func(p token.Pos) token.Pos {
		if !base.IsValid() || !p.IsValid() {
			return token.NoPos
		}
		return base + token.Pos(file.Offset(p))
	}

	var scanErr *diag.Error
	var s scanner.Scanner
	s.Init(file, []byte(src), func(p token.Position, msg string) {
		if scanErr == nil {
			scanErr = diag.Errorf(diag.MalformedArgument, pos(file.Pos(p.Offset)), "%s", msg)
		}
	}, 0)

	type frame struct {
		open   Token
		tokens Args
	}
	stack := []*frame{{}}
	for {
		p, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		} else if tok == token.SEMICOLON && lit == "\n" {
			//automatic semicolon
			continue
		}
		t := Token{Pos: pos(p)}
		switch {
		case tok == token.IDENT || tok.IsKeyword():
			t.Kind = Ident
			t.Text = tok.String()
			if tok == token.IDENT {
				t.Text = lit
			}
		case tok.IsLiteral():
			t.Kind = Literal
			t.Text = lit
			t.Lit = tok
		case tok == token.LPAREN || tok == token.LBRACK || tok == token.LBRACE:
			stack = append(stack, &frame{open: Token{Kind: Group, Text: tok.String(), Pos: t.Pos}})
			continue
		case tok == token.RPAREN || tok == token.RBRACK || tok == token.RBRACE:
			top := stack[len(stack)-1]
			if len(stack) == 1 || closing[top.open.Text] != tok.String() {
				return nil, diag.Errorf(diag.MalformedArgument, t.Pos, "unexpected `%s`", tok)
			}
			stack = stack[:len(stack)-1]
			group := top.open
			group.Inner = top.tokens
			parent := stack[len(stack)-1]
			parent.tokens = append(parent.tokens, group)
			continue
		case tok == token.ILLEGAL:
			if scanErr != nil {
				return nil, scanErr
			}
			return nil, diag.Errorf(diag.MalformedArgument, t.Pos, "illegal symbol `%s`", lit)
		default:
			t.Kind = Punct
			t.Text = tok.String()
		}
		top := stack[len(stack)-1]
		top.tokens = append(top.tokens, t)
	}
	if scanErr != nil {
		return nil, scanErr
	} else if len(stack) > 1 {
		open := stack[len(stack)-1].open
		return nil, diag.Errorf(diag.MalformedArgument, open.Pos, "unclosed `%s`", open.Text)
	}
	return stack[0].tokens, nil
}

func (a Args) String() string {
	var b strings.Builder
	for i, t := range a {
		prev := Token{}
		if i > 0 {
			prev = a[i-1]
		}
		if i > 0 && !t.isComma() && !t.isPunct(".") && !prev.isPunct(".") && !(t.Kind == Group && prev.Kind == Ident) {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}
