package nfa

import "github.com/rickm/regexcore/parser"

// patch records a pending transition: once the target state is known,
// patch() fills in the given slot of the given state.
//
//	slot 0 -> next (Consume, Epsilon)
//	slot 1 -> out1 (Split)
//	slot 2 -> out2 (Split)
type patch struct {
	id   StateID
	slot int
}

// frag is a partially built subgraph: start is its entry state, out is the
// list of dangling transitions that must be patched to whatever follows it.
type frag struct {
	start StateID
	out   []patch
}

type builder struct {
	states []State
}

// Build compiles ast into a Thompson construction NFA.
func Build(ast *parser.AstNode) (*NFA, error) {
	if ast == nil {
		return nil, &BuildError{Message: "nil AST"}
	}

	b := &builder{}
	f, err := b.build(ast)
	if err != nil {
		return nil, err
	}

	match := b.push(State{kind: StateMatch})
	b.patch(f.out, match)

	return &NFA{states: b.states, start: f.start}, nil
}

func (b *builder) push(s State) StateID {
	b.states = append(b.states, s)
	return StateID(len(b.states) - 1)
}

func (b *builder) patch(ps []patch, target StateID) {
	for _, p := range ps {
		switch p.slot {
		case 0:
			b.states[p.id].next = target
		case 1:
			b.states[p.id].out1 = target
		case 2:
			b.states[p.id].out2 = target
		}
	}
}

func (b *builder) addConsume(cond Cond) frag {
	id := b.push(State{kind: StateConsume, cond: cond, next: InvalidState})
	return frag{start: id, out: []patch{{id, 0}}}
}

func (b *builder) addEpsilon() frag {
	id := b.push(State{kind: StateEpsilon, next: InvalidState})
	return frag{start: id, out: []patch{{id, 0}}}
}

func (b *builder) addSplit() (StateID, patch, patch) {
	id := b.push(State{kind: StateSplit, out1: InvalidState, out2: InvalidState})
	return id, patch{id, 1}, patch{id, 2}
}

func (b *builder) build(node *parser.AstNode) (frag, error) {
	switch node.Kind {
	case parser.NLiteral:
		if node.Char == parser.EmptyRune {
			return b.addEpsilon(), nil
		}
		return b.addConsume(Cond{Kind: CondLiteral, Char: node.Char}), nil

	case parser.NEscaped:
		return b.addConsume(Cond{Kind: CondLiteral, Char: node.Char}), nil

	case parser.NTab:
		return b.addConsume(Cond{Kind: CondLiteral, Char: '\t'}), nil

	case parser.NWhitespace:
		return b.addConsume(Cond{Kind: CondWhitespace}), nil

	case parser.NAnyChar:
		return b.addConsume(Cond{Kind: CondAny}), nil

	case parser.NCharClass:
		return b.addConsume(Cond{Kind: CondClass, Set: node.CharSet}), nil

	case parser.NNegatedCharClass:
		return b.addConsume(Cond{Kind: CondNegatedClass, Set: node.CharSet}), nil

	case parser.NConcat:
		return b.buildConcat(node.Children)

	case parser.NAlternation:
		return b.buildAlternation(node.Children)

	case parser.NStar:
		return b.buildStar(node.Children[0])

	case parser.NPlus:
		return b.buildPlus(node.Children[0])

	case parser.NQuestion:
		return b.buildQuestion(node.Children[0])

	case parser.NGroup:
		return b.build(node.Children[0])

	default:
		return frag{}, &BuildError{Message: "unhandled AST node kind: " + node.Kind.String()}
	}
}

func (b *builder) buildConcat(children []*parser.AstNode) (frag, error) {
	first, err := b.build(children[0])
	if err != nil {
		return frag{}, err
	}
	result := first
	for _, child := range children[1:] {
		next, err := b.build(child)
		if err != nil {
			return frag{}, err
		}
		b.patch(result.out, next.start)
		result.out = next.out
	}
	return result, nil
}

func (b *builder) buildAlternation(children []*parser.AstNode) (frag, error) {
	frags := make([]frag, len(children))
	for i, child := range children {
		f, err := b.build(child)
		if err != nil {
			return frag{}, err
		}
		frags[i] = f
	}

	// Fold right-to-left: each split chooses between one branch and
	// everything folded so far.
	acc := frags[len(frags)-1]
	for i := len(frags) - 2; i >= 0; i-- {
		split, p1, p2 := b.addSplit()
		b.patch([]patch{p1}, frags[i].start)
		b.patch([]patch{p2}, acc.start)
		out := append(append([]patch{}, frags[i].out...), acc.out...)
		acc = frag{start: split, out: out}
	}
	return acc, nil
}

func (b *builder) buildStar(child *parser.AstNode) (frag, error) {
	inner, err := b.build(child)
	if err != nil {
		return frag{}, err
	}
	split, p1, p2 := b.addSplit()
	b.patch([]patch{p1}, inner.start)
	b.patch(inner.out, split)
	return frag{start: split, out: []patch{p2}}, nil
}

func (b *builder) buildPlus(child *parser.AstNode) (frag, error) {
	inner, err := b.build(child)
	if err != nil {
		return frag{}, err
	}
	split, p1, p2 := b.addSplit()
	b.patch([]patch{p1}, inner.start)
	b.patch(inner.out, split)
	return frag{start: inner.start, out: []patch{p2}}, nil
}

func (b *builder) buildQuestion(child *parser.AstNode) (frag, error) {
	inner, err := b.build(child)
	if err != nil {
		return frag{}, err
	}
	split, p1, p2 := b.addSplit()
	b.patch([]patch{p1}, inner.start)
	out := append(append([]patch{}, inner.out...), p2)
	return frag{start: split, out: out}, nil
}
