package bytecode

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestDisassembleArithmetic(t *testing.T) {
	code := mustCompile(t, "x = 2 + 3 * 4\nprint(x)\n")
	snaps.MatchSnapshot(t, Disassemble(code))
}

func TestDisassembleIfElif(t *testing.T) {
	code := mustCompile(t, "if x:\n    y = 1\nelif z:\n    y = 2\nelse:\n    y = 3\n")
	snaps.MatchSnapshot(t, Disassemble(code))
}

func TestDisassembleForElse(t *testing.T) {
	code := mustCompile(t, "for x in items:\n    print(x)\nelse:\n    print('done')\n")
	snaps.MatchSnapshot(t, Disassemble(code))
}

func TestDisassembleFunctionDef(t *testing.T) {
	code := mustCompile(t, "def add(a, b):\n    return a + b\n")
	snaps.MatchSnapshot(t, Disassemble(code))
}

func TestDisassembleChainedComparison(t *testing.T) {
	code := mustCompile(t, "ok = 1 < 2 < 3\n")
	snaps.MatchSnapshot(t, Disassemble(code))
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
