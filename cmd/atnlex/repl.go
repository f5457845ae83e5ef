package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/atnlex/atn"
	"github.com/npillmayer/atnlex/lexer"
	"github.com/npillmayer/atnlex/scanner"
	"github.com/npillmayer/atnlex/scanner/lexmach"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// We provide a simple grammar as a default.
//
//  ID : [a-z]+ ;
//  WS : [ \n]+ -> channel(HIDDEN) ;
//
func makeSimpleLRGrammar() *atn.Builder {
	b := atn.NewBuilder("SimpleLR")
	b.Rule("ID", atn.Plus(atn.Range('a', 'z')))
	b.Rule("WS", atn.Plus(atn.Set(' ', '\n'))).Channel(atn.HiddenChannelName)
	return b
}

// main() starts an interactive CLI, where users may enter input to be
// tokenized.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	tablef := flag.String("table", "", "Load serialized lexer table")
	emitf := flag.String("emit", "", "Write serialized default table to file")
	dotf := flag.String("dot", "", "Write automaton in Graphviz format to file")
	inputf := flag.String("file", "", "Tokenize a file before going interactive")
	hidden := flag.Bool("hidden", false, "Show hidden tokens")
	oracle := flag.Bool("oracle", false, "Cross-check with lexmachine")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to atnlex")   // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	intp, err := setup(*tablef, *emitf, *dotf, *oracle)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(2)
	}
	tracer().SetTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	intp.atn.Dump()                             // only visible in debug mode
	intp.hidden = *hidden
	if *inputf != "" {
		input, err := os.ReadFile(*inputf)
		if err != nil {
			tracer().Errorf("Unable to open input file: %s", *inputf)
			os.Exit(2)
		}
		intp.Tokenize(*inputf, string(input))
	}
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		intp.Tokenize("args", input)
	}
	//
	// set up REPL
	repl, err := readline.New("atnlex> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	atn    *atn.ATN
	oracle *lexmach.LMAdapter // nil if not cross-checking
	hidden bool               // print hidden tokens
	repl   *readline.Instance
	lineno int
}

func setup(tablef, emitf, dotf string, oracle bool) (*Intp, error) {
	intp := &Intp{}
	if tablef != "" {
		data, err := os.ReadFile(tablef)
		if err != nil {
			return nil, fmt.Errorf("unable to read table (%w)", err)
		}
		if intp.atn, err = atn.DefaultRegistry().LoadBytes(data); err != nil {
			return nil, err
		}
		if oracle {
			pterm.Error.Println("Cannot cross-check a serialized table")
		}
	} else {
		b := makeSimpleLRGrammar()
		a, err := b.ATN()
		if err != nil {
			return nil, err
		}
		intp.atn = a
		if oracle {
			if intp.oracle, err = lexmach.NewLMAdapter(b); err != nil {
				return nil, err
			}
		}
	}
	if emitf != "" {
		data, err := atn.SerializeBytes(intp.atn)
		if err != nil {
			return nil, err
		}
		if err = os.WriteFile(emitf, data, 0644); err != nil {
			return nil, err
		}
		pterm.Info.Printf("Table written to %s\n", emitf)
	}
	if dotf != "" {
		f, err := os.Create(dotf)
		if err != nil {
			return nil, fmt.Errorf("file open error: %w", err)
		}
		defer f.Close()
		if err = atn.ToGraphViz(intp.atn, f); err != nil {
			return nil, err
		}
	}
	return intp, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or tokenizes a line of input.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit":
		return true
	case ":dump":
		level := tracer().GetTraceLevel()
		tracing.Select("atnlex.atn").SetTraceLevel(tracing.LevelDebug)
		intp.atn.Dump()
		tracing.Select("atnlex.atn").SetTraceLevel(level)
		return false
	}
	intp.lineno++
	intp.Tokenize(fmt.Sprintf("line %d", intp.lineno), line)
	return false
}

// Tokenize tokenizes an input and prints the tokens as a tree.
func (intp *Intp) Tokenize(source string, input string) {
	var opts []lexer.Option
	if !intp.hidden {
		opts = append(opts, lexer.OnlyChannel(atn.DefaultChannel))
	}
	errcnt := 0
	opts = append(opts, lexer.WithErrorHandler(func(err error) {
		errcnt++
		pterm.Error.Println(err.Error())
	}))
	lx := lexer.New(intp.atn, scanner.NewCursor(source, input), opts...)
	tokens, _ := lx.AllTokens()
	voc := intp.atn.Vocabulary()
	var ll pterm.LeveledList
	ll = append(ll, pterm.LeveledListItem{Level: 0, Text: source})
	line := 0
	for _, tok := range tokens {
		if tok.Line() != line {
			line = tok.Line()
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("line %d", line)})
		}
		ll = append(ll, pterm.LeveledListItem{Level: 2, Text: tok.Format(voc.Stringer())})
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
	if errcnt > 0 {
		tracer().Infof("%d lexical errors", errcnt)
	}
	if intp.oracle != nil {
		intp.crossCheck(input)
	}
}

// crossCheck tokenizes input with lexmachine and compares the result to
// the complete token stream of our lexer, including hidden tokens.
func (intp *Intp) crossCheck(input string) {
	sc, err := intp.oracle.Scanner(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	sc.SetErrorHandler(func(error) {})
	lx := lexer.New(intp.atn, scanner.NewCursor("oracle", input), lexer.WithErrorHandler(func(error) {}))
	tokens, _ := lx.AllTokens()
	i := 0
	for tok := sc.Next(); !tok.IsEOF(); tok = sc.Next() {
		if i >= len(tokens) || tok.String() != tokens[i].String() {
			pterm.Error.Printf("lexmachine differs at token %s\n", tok)
			return
		}
		i++
	}
	if i != len(tokens) {
		pterm.Error.Printf("lexmachine produced %d tokens instead of %d\n", i, len(tokens))
		return
	}
	pterm.Info.Println("lexmachine agrees")
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
