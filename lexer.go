package idl

type lexer struct {
	path      string
	data      []rune
	len       int
	pos       int
	startPos  int
	startLine int
	startCol  int

	line   int
	column int

	tokens []token
}

func lexFile(path string, data []byte) ([]token, error) {
	runes := []rune(string(data))
	s := &lexer{
		path:   path,
		data:   runes,
		len:    len(runes),
		line:   1,
		column: 1,
	}

	if err := s.scan(); err != nil {
		return nil, err
	}
	return s.tokens, nil
}

func (s *lexer) eof() bool {
	return s.pos >= s.len
}

func (s *lexer) peek() rune {
	if s.eof() {
		return 0
	}
	return s.data[s.pos]
}

func (s *lexer) peek1() rune {
	if s.pos+1 >= s.len {
		return 0
	}
	return s.data[s.pos+1]
}

func (s *lexer) mark() {
	s.startPos = s.pos
	s.startLine = s.line
	s.startCol = s.column
}

func (s *lexer) marked() string {
	return string(s.data[s.startPos:s.pos])
}

func (s *lexer) advance() rune {
	v := s.data[s.pos]
	s.pos++
	s.column++
	if v == '\n' {
		s.line++
		s.column = 1
	}
	return v
}

func (s *lexer) errorf(msg string, args ...interface{}) *Error {
	return newError(ErrLexical, s.path, s.startLine, msg, args...)
}

func (s *lexer) pushToken(t tokenType) {
	s.tokens = append(s.tokens, token{
		Type:   t,
		Value:  s.marked(),
		Pos:    s.startPos,
		Line:   s.startLine,
		Column: s.startCol,
	})
}

func (s *lexer) pushSimple(t tokenType) {
	s.mark()
	s.advance()
	s.pushToken(t)
}

func isAscii(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isAlpha(r rune) bool {
	return isAscii(r) || isDigit(r)
}

var simpleTokens = map[rune]tokenType{
	'=': tokenTypeEqual,
	';': tokenTypeSemi,
	':': tokenTypeColon,
	'(': tokenTypeLeftParen,
	')': tokenTypeRightParen,
	'{': tokenTypeLeftCurly,
	'}': tokenTypeRightCurly,
	'<': tokenTypeLeftAngled,
	'>': tokenTypeRightAngled,
	'[': tokenTypeLeftSquare,
	']': tokenTypeRightSquare,
	',': tokenTypeComma,
	'*': tokenTypeStar,
}

func (s *lexer) scan() error {
	for !s.eof() {
		p := s.peek()
		switch p {
		case ' ', '\n', '\t', '\r':
			s.advance()
		case '#':
			s.skipLineComment()
		case '/':
			s.mark()
			s.advance()
			switch s.peek() {
			case '/':
				s.skipLineComment()
			case '*':
				if err := s.skipBlockComment(); err != nil {
					return err
				}
			default:
				return s.errorf("unexpected '%c'", p)
			}
		case '"', '\'':
			if err := s.scanString(p); err != nil {
				return err
			}
		case '+', '-':
			if isDigit(s.peek1()) {
				s.scanNumber()
				continue
			}
			s.mark()
			return s.errorf("unexpected '%c'", p)
		default:
			if simple, ok := simpleTokens[p]; ok {
				s.pushSimple(simple)
			} else if isDigit(p) {
				s.scanNumber()
			} else if isAscii(p) {
				s.scanIdentifier()
			} else {
				s.mark()
				return s.errorf("unexpected '%c'", p)
			}
		}
	}
	s.mark()
	s.tokens = append(s.tokens, token{Type: tokenTypeEOF, Pos: s.startPos, Line: s.line, Column: s.column})
	return nil
}

func (s *lexer) skipLineComment() {
	for !s.eof() && s.peek() != '\n' {
		s.advance()
	}
}

func (s *lexer) skipBlockComment() error {
	s.advance() // consume *
	for !s.eof() {
		if s.peek() == '*' && s.peek1() == '/' {
			s.advance()
			s.advance()
			return nil
		}
		s.advance()
	}
	return s.errorf("unterminated block comment")
}

func (s *lexer) scanString(q rune) error {
	startPos := s.pos
	startLine := s.line
	startCol := s.column
	s.mark()
	s.advance() // consume first quote
	var data []rune
	escaping := false
	closed := false
	for !s.eof() {
		p := s.peek()
		if escaping {
			escaping = false
			if p == q {
				data = append(data, s.advance())
			} else {
				data = append(data, '\\', s.advance())
			}
			continue
		}
		if p == '\\' {
			escaping = true
			s.advance()
			continue
		}

		if p == '\n' {
			return s.errorf("invalid line break in string")
		}

		if p == q {
			s.advance()
			closed = true
			break
		}

		data = append(data, s.advance())
	}
	if !closed {
		return s.errorf("unterminated string")
	}

	s.tokens = append(s.tokens, token{
		Type:   tokenTypeString,
		Value:  string(data),
		Pos:    startPos,
		Line:   startLine,
		Column: startCol,
	})
	return nil
}

// scanNumber covers decimal and hex integers plus doubles with a fraction
// or exponent, with an optional leading sign. The raw text is kept; the
// parser converts with strconv.
func (s *lexer) scanNumber() {
	s.mark()
	if s.peek() == '+' || s.peek() == '-' {
		s.advance()
	}
	if s.peek() == '0' && s.peek1() == 'x' {
		s.advance() // consume 0
		s.advance() // consume x
		for isHex(s.peek()) {
			s.advance()
		}
		s.pushToken(tokenTypeInt)
		return
	}

	for isDigit(s.peek()) {
		s.advance()
	}

	double := false
	if s.peek() == '.' && isDigit(s.peek1()) {
		double = true
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		if isDigit(s.peek1()) || ((s.peek1() == '+' || s.peek1() == '-') && s.pos+2 < s.len && isDigit(s.data[s.pos+2])) {
			double = true
			s.advance()
			if s.peek() == '+' || s.peek() == '-' {
				s.advance()
			}
			for isDigit(s.peek()) {
				s.advance()
			}
		}
	}

	if double {
		s.pushToken(tokenTypeDouble)
	} else {
		s.pushToken(tokenTypeInt)
	}
}

// scanIdentifier accepts dots inside identifiers so dotted paths arrive at
// the parser as a single token.
func (s *lexer) scanIdentifier() {
	s.mark()
	for {
		p := s.peek()
		if isAlpha(p) {
			s.advance()
			continue
		}
		if p == '.' && isAlpha(s.peek1()) {
			s.advance()
			continue
		}
		break
	}
	s.pushToken(tokenTypeIdentifier)
}
