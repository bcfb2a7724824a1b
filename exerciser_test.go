package dat

import (
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/commands"
	"github.com/leanovate/gopter/gen"
	"github.com/stretchr/testify/assert"
)

// The DAT exerciser models Set against a reference multimap, and
// periodically compiles the accumulated Trie into a fresh DoubleArray,
// replaying every Get against both the reference and the compiled array.
// Unlike a mutable map, Get is only meaningful immediately after a
// compile: expected.compiled tracks whether the system's da reflects
// every Set applied so far.

const keyspace = 500

type xexpected struct {
	entries  map[string][]int
	compiled bool
}

type xsystem struct {
	tr       *Trie[int]
	da       *DoubleArray[int]
	cmdCount int
}

var testThingy *testing.T

var cmdCount = 0

type setCommand struct {
	key   int
	value int
}

func (c setCommand) Run(s commands.SystemUnderTest) commands.Result {
	sys := s.(*xsystem)
	if err := sys.tr.Set([]byte(strconv.Itoa(c.key)), c.value); err != nil {
		return err
	}
	sys.cmdCount++
	return nil
}

func (c setCommand) NextState(state commands.State) commands.State {
	s := state.(*xexpected)
	k := strconv.Itoa(c.key)
	s.entries[k] = append(s.entries[k], c.value)
	s.compiled = false
	return s
}

func (c setCommand) PreCondition(state commands.State) bool { return true }

func (c setCommand) PostCondition(state commands.State, result commands.Result) *gopter.PropResult {
	if result != nil {
		fmt.Printf("setCommandPostCondition: %v\n", result)
		return &gopter.PropResult{Status: gopter.PropFalse}
	}
	return &gopter.PropResult{Status: gopter.PropTrue}
}

func (c setCommand) String() string {
	return fmt.Sprintf("Set(%d,%d)", c.key, c.value)
}

var genSet = gen.Struct(reflect.TypeOf(&setCommand{}), map[string]gopter.Gen{
	"key":   gen.IntRange(0, keyspace),
	"value": gen.IntRange(0, 99_999),
}).Map(func(c setCommand) commands.Command { return c })

var CompileCommand = &commands.ProtoCommand{
	Name: "Compile",
	RunFunc: func(s commands.SystemUnderTest) commands.Result {
		sys := s.(*xsystem)
		da, err := sys.tr.ToDoubleArray()
		if err != nil {
			return err
		}
		sys.da = da
		sys.cmdCount++
		return nil
	},
	NextStateFunc: func(state commands.State) commands.State {
		state.(*xexpected).compiled = true
		return state
	},
	PreConditionFunc: func(state commands.State) bool { return true },
	PostConditionFunc: func(state commands.State, result commands.Result) *gopter.PropResult {
		if result != nil {
			fmt.Printf("compilePostCondition: %v\n", result)
			return &gopter.PropResult{Status: gopter.PropFalse}
		}
		return &gopter.PropResult{Status: gopter.PropTrue}
	},
}

type getCommand int

func (c getCommand) Run(s commands.SystemUnderTest) commands.Result {
	sys := s.(*xsystem)
	vs, err := sys.da.Get([]byte(strconv.Itoa(int(c))))
	sys.cmdCount++
	if err != nil {
		return err
	}
	return vs
}

func (c getCommand) NextState(state commands.State) commands.State { return state }

func (c getCommand) PreCondition(state commands.State) bool {
	return state.(*xexpected).compiled
}

func (c getCommand) PostCondition(state commands.State, result commands.Result) *gopter.PropResult {
	s := state.(*xexpected)
	want, present := s.entries[strconv.Itoa(int(c))]

	switch result := result.(type) {
	case error:
		if present {
			fmt.Printf("getCommandPostCondition: (key=%d) expected=%v got error %v\n", c, want, result)
			return &gopter.PropResult{Status: gopter.PropFalse}
		}
		return &gopter.PropResult{Status: gopter.PropTrue}
	}
	got, ok := result.([]int)
	if !ok {
		return &gopter.PropResult{Status: gopter.PropFalse}
	}
	if !present {
		fmt.Printf("getCommandPostCondition: (key=%d) expected=absent got=%v\n", c, got)
		return &gopter.PropResult{Status: gopter.PropFalse}
	}
	if !reflect.DeepEqual(want, got) {
		assert.Equal(testThingy, want, got)
		return &gopter.PropResult{Status: gopter.PropFalse}
	}
	return &gopter.PropResult{Status: gopter.PropTrue}
}

func (c getCommand) String() string {
	return fmt.Sprintf("Get(%d)", int(c))
}

var genGet = gen.IntRange(0, keyspace).Map(func(v int) commands.Command {
	return getCommand(v)
}).WithShrinker(func(v interface{}) gopter.Shrink {
	return gen.IntShrinker(int(v.(getCommand))).Map(func(v int) commands.Command {
		return getCommand(v)
	})
})

var datCommands = &commands.ProtoCommands{
	NewSystemUnderTestFunc: func(initialState commands.State) commands.SystemUnderTest {
		tr := NewTrie[int]()
		s := initialState.(*xexpected)
		for k, vs := range s.entries {
			kb := []byte(k)
			for _, v := range vs {
				if err := tr.Set(kb, v); err != nil {
					return err
				}
			}
		}
		var da *DoubleArray[int]
		if s.compiled {
			var err error
			da, err = tr.ToDoubleArray()
			if err != nil {
				return err
			}
		}
		return &xsystem{tr: tr, da: da}
	},
	DestroySystemUnderTestFunc: func(s commands.SystemUnderTest) {
		cmdCount += s.(*xsystem).cmdCount
	},
	InitialStateGen: gen.Const(&xexpected{entries: map[string][]int{}, compiled: false}),
	InitialPreConditionFunc: func(state commands.State) bool {
		_ = state.(*xexpected)
		return true
	},
	GenCommandFunc: func(state commands.State) gopter.Gen {
		return gen.Weighted(
			[]gen.WeightedGen{
				{Weight: 100, Gen: genSet},
				{Weight: 10, Gen: gen.Const(CompileCommand)},
				{Weight: 100, Gen: genGet},
			},
		)
	},
}

func TestExerciser(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	if !testing.Short() {
		parameters.MaxSize = 512
	}
	properties := gopter.NewProperties(parameters)
	properties.Property("dat exerciser", commands.Prop(datCommands))
	testThingy = t
	properties.TestingRun(t)
	testThingy = nil
	if !t.Failed() {
		fmt.Printf("successful commands: %d\n", cmdCount)
	}
}
