package lexmach

import (
	"testing"

	"github.com/npillmayer/parsergen"
	"github.com/npillmayer/parsergen/grammar"
	"github.com/npillmayer/parsergen/lr"
	"github.com/npillmayer/parsergen/lr/shiftreduce"
	"github.com/npillmayer/parsergen/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func makeAdapter(t *testing.T) *LMAdapter {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMUnconsumedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.scanner")
	defer teardown()
	//
	sc, err := makeAdapter(t).Scanner("1 $ 2")
	if err != nil {
		t.Fatal(err)
	}
	errcnt := 0
	sc.SetErrorHandler(func(error) { errcnt++ })
	count := 0
	for token := sc.NextToken(); token.TokType() != scanner.EOF; token = sc.NextToken() {
		count++
	}
	if count != 2 || errcnt == 0 {
		t.Errorf("expected 2 tokens and an error, have %d tokens and %d errors", count, errcnt)
	}
}

func TestLMParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsergen.scanner")
	defer teardown()
	//
	b := grammar.NewBuilder("Expressions")
	b.LHS("E").N("T").End()
	b.LHS("E").N("T").T("+").N("E").End()
	b.LHS("T").N("F").End()
	b.LHS("T").N("F").T("*").N("T").End()
	b.LHS("F").T("num").End()
	b.LHS("F").T("(").N("E").T(")").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	tables, err := lr.LALR1Tables(g)
	if err != nil {
		t.Fatal(err)
	}
	p := shiftreduce.NewParser(tables)
	sc, err := makeAdapter(t).Scanner("1 + (22 * 333)")
	if err != nil {
		t.Fatal(err)
	}
	var spans []parsergen.Span
	result, err := scanner.Parse(p.Runtime(), sc,
		scanner.MapTerminal(func(token parsergen.Token) grammar.Terminal {
			if token.TokType() == parsergen.TokType(tokenIds["NUM"]) {
				return "num"
			}
			return token.Lexeme()
		}),
		scanner.OnToken(func(pos int, token parsergen.Token) {
			spans = append(spans, token.Span())
		}))
	if err != nil {
		t.Fatal(err)
	}
	expected := "E(T(F(num)) + E(T(F(( E(T(F(num) * T(F(num)))) )))))"
	if s := result.(*parsergen.Node).String(); s != expected {
		t.Errorf("expected tree %s, have %s", expected, s)
	}
	if len(spans) != 7 || spans[3] != (parsergen.Span{5, 7}) {
		t.Errorf("expected token 22 to span (5…7), spans are %v", spans)
	}
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = scanner.Comment
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = scanner.String
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}
