package atn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/atnlex"
)

// ErrInvalidGrammar is wrapped by all errors a Builder reports.
var ErrInvalidGrammar = errors.New("invalid lexer grammar")

// Builder is a builder type for lexer automata. Create one with NewBuilder.
//
// Rules are added in order of precedence: if two rules match input of the
// same length, the rule added first wins. Rules are added to the mode
// selected last by Mode(…), starting with the default mode.
type Builder struct {
	name      string
	channels  []string
	modes     []string
	mode      int               // current mode for new rules
	rules     []*RuleBuilder    // lexer rules in order of declaration
	fragments map[string]Expr   // fragment rules
	tokens    []string          // symbolic names, indexed by token type
	errs      *multierror.Error // errors collected while building
}

// NewBuilder creates a builder for an automaton with a given name.
// Channels DEFAULT_TOKEN_CHANNEL and HIDDEN and mode DEFAULT_MODE are predefined.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:      name,
		channels:  []string{DefaultChannelName, HiddenChannelName},
		modes:     []string{DefaultModeName},
		fragments: make(map[string]Expr),
		tokens:    []string{"<INVALID>"},
	}
}

func (b *Builder) errorf(format string, args ...interface{}) {
	err := fmt.Errorf("%w: %s", ErrInvalidGrammar, fmt.Sprintf(format, args...))
	b.errs = multierror.Append(b.errs, err)
}

// Channels declares additional token channels.
func (b *Builder) Channels(names ...string) *Builder {
	for _, name := range names {
		if indexOf(b.channels, name) >= 0 {
			b.errorf("duplicate channel %q", name)
			continue
		}
		b.channels = append(b.channels, name)
	}
	return b
}

// Tokens declares token types which are not produced by a rule of their own,
// but may be set by a type-action.
func (b *Builder) Tokens(names ...string) *Builder {
	for _, name := range names {
		if indexOf(b.tokens, name) >= 0 {
			b.errorf("duplicate token %q", name)
			continue
		}
		b.tokens = append(b.tokens, name)
	}
	return b
}

// Mode selects the mode for subsequent rules. Modes are created on first use.
func (b *Builder) Mode(name string) *Builder {
	m := indexOf(b.modes, name)
	if m < 0 {
		m = len(b.modes)
		b.modes = append(b.modes, name)
	}
	b.mode = m
	return b
}

// Fragment defines a named pattern which may be referenced from rules with Ref(name).
// Fragments do not produce tokens.
func (b *Builder) Fragment(name string, pattern Expr) *Builder {
	if _, exists := b.fragments[name]; exists {
		b.errorf("duplicate fragment %q", name)
		return b
	}
	b.fragments[name] = pattern
	return b
}

// Rule adds a lexer rule to the current mode. Each rule produces its own
// token type, assigned in order of declaration.
func (b *Builder) Rule(name string, pattern Expr) *RuleBuilder {
	rb := &RuleBuilder{
		b:       b,
		name:    name,
		mode:    b.mode,
		pattern: pattern,
	}
	if indexOf(b.tokens, name) >= 0 {
		b.errorf("duplicate rule or token %q", name)
	} else {
		b.tokens = append(b.tokens, name)
	}
	rb.tokenType = atnlex.TokType(indexOf(b.tokens, name))
	b.rules = append(b.rules, rb)
	return rb
}

// RuleBuilder is returned by Builder.Rule to attach lexer actions to a rule.
// Actions are executed in the order they are attached.
type RuleBuilder struct {
	b         *Builder
	name      string
	mode      int
	tokenType atnlex.TokType
	pattern   Expr
	actions   []ActionSpec
}

// ActionSpec is a lexer action with unresolved names.
type ActionSpec struct {
	Kind ActionKind
	Name string // channel, mode or token name
}

func (rb *RuleBuilder) action(kind ActionKind, name string) *RuleBuilder {
	rb.actions = append(rb.actions, ActionSpec{Kind: kind, Name: name})
	return rb
}

// Channel puts tokens matched by this rule on a channel.
func (rb *RuleBuilder) Channel(name string) *RuleBuilder {
	return rb.action(ChannelAction, name)
}

// Skip drops tokens matched by this rule.
func (rb *RuleBuilder) Skip() *RuleBuilder {
	return rb.action(SkipAction, "")
}

// More continues matching, keeping the text matched so far for the next token.
func (rb *RuleBuilder) More() *RuleBuilder {
	return rb.action(MoreAction, "")
}

// Type sets the type of tokens matched by this rule to the type of another
// rule or declared token.
func (rb *RuleBuilder) Type(name string) *RuleBuilder {
	return rb.action(TypeAction, name)
}

// Mode switches to another mode after this rule has matched.
func (rb *RuleBuilder) Mode(name string) *RuleBuilder {
	return rb.action(ModeAction, name)
}

// PushMode pushes the current mode and switches to another mode.
func (rb *RuleBuilder) PushMode(name string) *RuleBuilder {
	return rb.action(PushModeAction, name)
}

// PopMode returns to the mode pushed last.
func (rb *RuleBuilder) PopMode() *RuleBuilder {
	return rb.action(PopModeAction, "")
}

// RuleSpec describes a lexer rule as declared, with fragments inlined.
// It is intended for adapters to other lexer generators.
type RuleSpec struct {
	Name      string
	TokenType atnlex.TokType
	Mode      string
	Pattern   Expr
	Actions   []ActionSpec
}

// HasAction checks if a rule declares an action of a given kind.
func (spec RuleSpec) HasAction(kind ActionKind) bool {
	for _, a := range spec.Actions {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// RuleSpecs returns the rules declared so far, in order of precedence.
func (b *Builder) RuleSpecs() ([]RuleSpec, error) {
	specs := make([]RuleSpec, 0, len(b.rules))
	for _, rb := range b.rules {
		pattern, err := b.inline(rb.pattern, nil)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rb.name, err)
		}
		specs = append(specs, RuleSpec{
			Name:      rb.name,
			TokenType: rb.tokenType,
			Mode:      b.modes[rb.mode],
			Pattern:   pattern,
			Actions:   append([]ActionSpec(nil), rb.actions...),
		})
	}
	return specs, nil
}

// ATN constructs the automaton for all rules declared so far.
// It reports all grammar errors found.
func (b *Builder) ATN() (*ATN, error) {
	if err := b.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	if len(b.rules) == 0 {
		return nil, fmt.Errorf("%w: grammar %s has no rules", ErrInvalidGrammar, b.name)
	}
	a := &ATN{
		Name:         b.name,
		Channels:     append([]string(nil), b.channels...),
		TokenNames:   append([]string(nil), b.tokens...),
		MaxTokenType: atnlex.TokType(len(b.tokens) - 1),
	}
	c := &compiler{a: a}
	for _, name := range b.modes {
		start := c.newState(ModeStart, -1)
		a.Modes = append(a.Modes, Mode{Name: name, Start: start})
	}
	var errs *multierror.Error
	for i, rb := range b.rules {
		rule := Rule{
			Name:      rb.name,
			TokenType: rb.tokenType,
			Mode:      rb.mode,
		}
		pattern, err := b.inline(rb.pattern, nil)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("rule %s: %w", rb.name, err))
			continue
		}
		rule.Start = c.newState(RuleStart, i)
		rule.Stop = c.newState(RuleStop, i)
		exit, err := pattern.compile(c, rule.Start, i)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("rule %s: %w", rb.name, err))
			continue
		}
		c.edge(exit, EpsilonTo(rule.Stop))
		for _, spec := range rb.actions {
			action, err := b.resolve(spec, a)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("rule %s: %w", rb.name, err))
				continue
			}
			rule.Actions = append(rule.Actions, c.action(action))
		}
		a.Rules = append(a.Rules, rule)
		c.edge(a.Modes[rb.mode].Start, EpsilonTo(rule.Start))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	tracer().Infof("ATN %s: %d states for %d rules in %d modes", a.Name,
		len(a.States), len(a.Rules), len(a.Modes))
	return a, nil
}

func (b *Builder) resolve(spec ActionSpec, a *ATN) (Action, error) {
	action := Action{Kind: spec.Kind}
	var inx int
	switch spec.Kind {
	case ChannelAction:
		inx = indexOf(b.channels, spec.Name)
	case TypeAction:
		inx = indexOf(b.tokens, spec.Name)
		if inx == 0 {
			inx = -1
		}
	case ModeAction, PushModeAction:
		inx = indexOf(b.modes, spec.Name)
	default:
		return action, nil
	}
	if inx < 0 {
		return action, fmt.Errorf("%w: unknown %s target %q", ErrInvalidGrammar, spec.Kind, spec.Name)
	}
	action.Arg = inx
	return action, nil
}

// inline replaces fragment references by their patterns.
func (b *Builder) inline(e Expr, visiting []string) (Expr, error) {
	var err error
	inlineAll := func(es []Expr) ([]Expr, error) {
		out := make([]Expr, len(es))
		for i, x := range es {
			if out[i], err = b.inline(x, visiting); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	switch x := e.(type) {
	case refExpr:
		if indexOf(visiting, string(x)) >= 0 {
			return nil, fmt.Errorf("%w: recursive fragment %q", ErrInvalidGrammar, string(x))
		}
		f, ok := b.fragments[string(x)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown fragment %q", ErrInvalidGrammar, string(x))
		}
		return b.inline(f, append(visiting, string(x)))
	case seqExpr:
		es, err := inlineAll(x)
		return seqExpr(es), err
	case altExpr:
		es, err := inlineAll(x)
		return altExpr(es), err
	case repeatExpr:
		inner, err := b.inline(x.e, visiting)
		return repeatExpr{e: inner, op: x.op}, err
	case notExpr:
		inner, err := b.inline(x.e, visiting)
		return notExpr{e: inner}, err
	case nil:
		return nil, fmt.Errorf("%w: missing pattern", ErrInvalidGrammar)
	}
	return e, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// --- Compiling patterns ----------------------------------------------------

// compiler performs a Thompson construction of patterns into ATN states.
type compiler struct {
	a *ATN
}

func (c *compiler) newState(kind StateKind, rule int) int {
	id := len(c.a.States)
	c.a.States = append(c.a.States, &State{ID: id, Kind: kind, Rule: rule})
	return id
}

func (c *compiler) edge(from int, t Transition) {
	s := c.a.States[from]
	s.Transitions = append(s.Transitions, t)
}

// set returns the index of an interval set, adding it if not yet present.
func (c *compiler) set(set IntervalSet) int {
	for i, s := range c.a.Sets {
		if s.Equals(set) {
			return i
		}
	}
	c.a.Sets = append(c.a.Sets, set)
	return len(c.a.Sets) - 1
}

// action returns the index of an action, adding it if not yet present.
func (c *compiler) action(action Action) int {
	for i, a := range c.a.Actions {
		if a == action {
			return i
		}
	}
	c.a.Actions = append(c.a.Actions, action)
	return len(c.a.Actions) - 1
}

// --- Pattern expressions ---------------------------------------------------

// Expr is a pattern expression for lexer rules. Expressions are constructed
// with the functions of this package, e.g.:
//
//     Seq(Char('#'), Plus(Range('0', '9')))    // #[0-9]+
//
type Expr interface {
	// Regex renders the expression as a regular expression, in the syntax
	// understood by lexmachine. Non-ASCII characters are written verbatim.
	Regex() string
	compile(c *compiler, entry int, rule int) (int, error)
	atomic() bool
}

type charExpr rune
type litExpr string
type rangeExpr Interval
type anyExpr struct{}
type refExpr string
type seqExpr []Expr
type altExpr []Expr
type notExpr struct{ e Expr }

type setExpr struct {
	set     IntervalSet
	negated bool
}

type repeatOp byte

type repeatExpr struct {
	e  Expr
	op repeatOp // '*', '+' or '?'
}

// Char matches a single character.
func Char(r rune) Expr { return charExpr(r) }

// Lit matches a literal string. Lit("") matches the empty string.
func Lit(s string) Expr { return litExpr(s) }

// Range matches a character in [lo,hi].
func Range(lo, hi rune) Expr { return rangeExpr{Lo: lo, Hi: hi} }

// Set matches one of the given characters.
func Set(chars ...rune) Expr {
	ivs := make([]Interval, len(chars))
	for i, r := range chars {
		ivs[i] = Interval{r, r}
	}
	return setExpr{set: NewIntervalSet(ivs...)}
}

// Class matches a character in one of the given intervals.
func Class(ivs ...Interval) Expr {
	return setExpr{set: NewIntervalSet(ivs...)}
}

// Not matches any character not matched by e. e has to be a single
// character, a range or a set.
func Not(e Expr) Expr { return notExpr{e: e} }

// Any matches any character.
func Any() Expr { return anyExpr{} }

// Seq matches a sequence of patterns.
func Seq(es ...Expr) Expr { return seqExpr(es) }

// Alt matches one of a choice of patterns.
func Alt(es ...Expr) Expr { return altExpr(es) }

// Star matches e zero or more times.
func Star(e Expr) Expr { return repeatExpr{e: e, op: '*'} }

// Plus matches e one or more times.
func Plus(e Expr) Expr { return repeatExpr{e: e, op: '+'} }

// Opt matches e zero or one times.
func Opt(e Expr) Expr { return repeatExpr{e: e, op: '?'} }

// Ref references a fragment, declared with Builder.Fragment.
func Ref(name string) Expr { return refExpr(name) }

func (x charExpr) compile(c *compiler, entry int, rule int) (int, error) {
	exit := c.newState(BasicState, rule)
	c.edge(entry, AtomTo(exit, rune(x)))
	return exit, nil
}

func (x litExpr) compile(c *compiler, entry int, rule int) (int, error) {
	for _, r := range string(x) {
		entry, _ = charExpr(r).compile(c, entry, rule)
	}
	return entry, nil
}

func (x rangeExpr) compile(c *compiler, entry int, rule int) (int, error) {
	if x.Lo > x.Hi {
		return entry, fmt.Errorf("%w: empty range %q…%q", ErrInvalidGrammar, x.Lo, x.Hi)
	}
	exit := c.newState(BasicState, rule)
	if x.Lo == x.Hi {
		c.edge(entry, AtomTo(exit, x.Lo))
	} else {
		c.edge(entry, RangeTo(exit, x.Lo, x.Hi))
	}
	return exit, nil
}

func (x setExpr) compile(c *compiler, entry int, rule int) (int, error) {
	if len(x.set) == 0 {
		return entry, fmt.Errorf("%w: empty character set", ErrInvalidGrammar)
	}
	if len(x.set) == 1 && !x.negated {
		return rangeExpr(x.set[0]).compile(c, entry, rule)
	}
	exit := c.newState(BasicState, rule)
	kind := SetMatch
	if x.negated {
		kind = NotSet
	}
	c.edge(entry, Transition{Kind: kind, Target: exit, Set: c.set(x.set)})
	return exit, nil
}

func (x notExpr) compile(c *compiler, entry int, rule int) (int, error) {
	set, err := x.asSet()
	if err != nil {
		return entry, err
	}
	return set.compile(c, entry, rule)
}

func (x notExpr) asSet() (setExpr, error) {
	switch e := x.e.(type) {
	case charExpr:
		return setExpr{set: NewIntervalSet(Interval{rune(e), rune(e)}), negated: true}, nil
	case rangeExpr:
		return setExpr{set: NewIntervalSet(Interval(e)), negated: true}, nil
	case setExpr:
		return setExpr{set: e.set, negated: !e.negated}, nil
	}
	return setExpr{}, fmt.Errorf("%w: cannot negate %s", ErrInvalidGrammar, x.e.Regex())
}

func (x anyExpr) compile(c *compiler, entry int, rule int) (int, error) {
	exit := c.newState(BasicState, rule)
	c.edge(entry, Transition{Kind: Wildcard, Target: exit})
	return exit, nil
}

func (x refExpr) compile(c *compiler, entry int, rule int) (int, error) {
	return entry, fmt.Errorf("%w: unresolved fragment %q", ErrInvalidGrammar, string(x))
}

func (x seqExpr) compile(c *compiler, entry int, rule int) (int, error) {
	var err error
	for _, e := range x {
		if entry, err = e.compile(c, entry, rule); err != nil {
			return entry, err
		}
	}
	return entry, nil
}

func (x altExpr) compile(c *compiler, entry int, rule int) (int, error) {
	if len(x) == 0 {
		return entry, fmt.Errorf("%w: empty alternative", ErrInvalidGrammar)
	}
	exit := c.newState(BasicState, rule)
	for _, e := range x {
		branch := c.newState(BasicState, rule)
		c.edge(entry, EpsilonTo(branch))
		end, err := e.compile(c, branch, rule)
		if err != nil {
			return exit, err
		}
		c.edge(end, EpsilonTo(exit))
	}
	return exit, nil
}

func (x repeatExpr) compile(c *compiler, entry int, rule int) (int, error) {
	body := c.newState(BasicState, rule)
	c.edge(entry, EpsilonTo(body))
	end, err := x.e.compile(c, body, rule)
	if err != nil {
		return end, err
	}
	exit := c.newState(BasicState, rule)
	switch x.op {
	case '*':
		c.edge(end, EpsilonTo(body))
		c.edge(body, EpsilonTo(exit))
	case '+':
		c.edge(end, EpsilonTo(body))
	case '?':
		c.edge(body, EpsilonTo(exit))
	}
	c.edge(end, EpsilonTo(exit))
	return exit, nil
}

// --- Regex rendering -------------------------------------------------------

func (x charExpr) atomic() bool   { return true }
func (x litExpr) atomic() bool    { return len([]rune(string(x))) == 1 }
func (x rangeExpr) atomic() bool  { return true }
func (x setExpr) atomic() bool    { return true }
func (x notExpr) atomic() bool    { return true }
func (x anyExpr) atomic() bool    { return true }
func (x refExpr) atomic() bool    { return true }
func (x seqExpr) atomic() bool    { return len(x) == 1 && x[0].atomic() }
func (x altExpr) atomic() bool    { return true } // always parenthesized
func (x repeatExpr) atomic() bool { return false }

func (x charExpr) Regex() string { return regexChar(rune(x)) }

func (x litExpr) Regex() string {
	var b strings.Builder
	for _, r := range string(x) {
		b.WriteString(regexChar(r))
	}
	return b.String()
}

func (x rangeExpr) Regex() string {
	return "[" + classChar(x.Lo) + "-" + classChar(x.Hi) + "]"
}

func (x setExpr) Regex() string {
	var b strings.Builder
	b.WriteString("[")
	if x.negated {
		b.WriteString("^")
	}
	for _, iv := range x.set {
		b.WriteString(classChar(iv.Lo))
		if iv.Hi > iv.Lo {
			b.WriteString("-")
			b.WriteString(classChar(iv.Hi))
		}
	}
	b.WriteString("]")
	return b.String()
}

func (x notExpr) Regex() string {
	set, err := x.asSet()
	if err != nil {
		return "[^" + x.e.Regex() + "]"
	}
	return set.Regex()
}

func (x anyExpr) Regex() string { return "." }

func (x refExpr) Regex() string { return "{" + string(x) + "}" }

func (x seqExpr) Regex() string {
	var b strings.Builder
	for _, e := range x {
		b.WriteString(e.Regex())
	}
	return b.String()
}

func (x altExpr) Regex() string {
	alts := make([]string, len(x))
	for i, e := range x {
		alts[i] = e.Regex()
	}
	return "(" + strings.Join(alts, "|") + ")"
}

func (x repeatExpr) Regex() string {
	if x.e.atomic() {
		return x.e.Regex() + string(x.op)
	}
	return "(" + x.e.Regex() + ")" + string(x.op)
}

func regexChar(r rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case ' ', '_':
		return string(r)
	}
	if r < 0x80 && !isAlnum(r) {
		return `\` + string(r)
	}
	return string(r)
}

func classChar(r rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case ']', '[', '\\', '-', '^':
		return `\` + string(r)
	}
	return string(r)
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
