package migrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/diag"
	"cocomig/internal/migrate"
)

func migrateString(t *testing.T, src string) *migrate.Result {
	t.Helper()
	res, err := migrate.Migrate("tb.py", []byte(src))
	require.NoError(t, err)
	return res
}

func kindsOf(fs []migrate.Finding) []migrate.Kind {
	out := make([]migrate.Kind, len(fs))
	for i, f := range fs {
		out[i] = f.Kind
	}
	return out
}

func TestScenarioCoroutineToAsync(t *testing.T) {
	res := migrateString(t, "@cocotb.coroutine\ndef f(x):\n    yield Timer(10)\n")
	assert.Equal(t, "async def f(x):\n    await Timer(10)\n", string(res.Source))
	assert.True(t, res.Changed)
	assert.Equal(t, []migrate.Kind{migrate.DeprecatedCoroutineDecorator, migrate.DeprecatedSuspendExpression}, kindsOf(res.Findings))
	assert.Empty(t, res.Unfixable)

	dec := res.Findings[0]
	assert.Equal(t, "f", dec.Function)
	assert.EqualValues(t, 1, dec.Start.Line)
	assert.EqualValues(t, 1, dec.Start.Col)
	assert.EqualValues(t, 18, dec.End.Col)

	y := res.Findings[1]
	assert.EqualValues(t, 3, y.Start.Line)
	assert.EqualValues(t, 5, y.Start.Col)
}

func TestScenarioValueReturn(t *testing.T) {
	src := "@cocotb.coroutine\ndef f():\n    yield Timer(1)\n    ReturnValue(42)\n"
	res := migrateString(t, src)
	assert.Equal(t, "async def f():\n    await Timer(1)\n    return 42\n", string(res.Source))
	assert.Contains(t, kindsOf(res.Findings), migrate.DeprecatedValueReturn)
}

func TestScenarioSpawnAnywhere(t *testing.T) {
	src := "import cocotb\n\ndef helper():\n    cocotb.fork(task())\n\ncocotb.fork(other(1, 2))\n"
	res := migrateString(t, src)
	assert.Equal(t, "import cocotb\n\ndef helper():\n    cocotb.start_soon(task())\n\ncocotb.start_soon(other(1, 2))\n", string(res.Source))
	assert.Equal(t, []migrate.Kind{migrate.DeprecatedSpawnCall, migrate.DeprecatedSpawnCall}, kindsOf(res.Findings))
}

func TestScenarioNothingToDo(t *testing.T) {
	src := []byte("import cocotb\n\n\nasync def f(dut):\n    await Timer(1)  # fine\n")
	findings, err := migrate.Scan("tb.py", src)
	require.NoError(t, err)
	assert.Empty(t, findings)

	res, err := migrate.Migrate("tb.py", src)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Same(t, &src[0], &res.Source[0], "unchanged source must be returned as is")
}

func TestScenarioSyntaxError(t *testing.T) {
	src := []byte("@cocotb.coroutine\ndef f(:\n    yield Timer(1)\n")

	findings, err := migrate.Scan("bad.py", src)
	assert.Nil(t, findings)
	var pe *diag.ParseError
	require.True(t, errors.As(err, &pe))
	assert.EqualValues(t, 2, pe.Pos.Line)

	res, err := migrate.Migrate("bad.py", src)
	assert.Nil(t, res)
	require.True(t, errors.As(err, &pe))
}

func TestRaiseReturnValue(t *testing.T) {
	tests := []struct {
		name, in, out string
	}{
		{"raise", "    raise ReturnValue(x)\n", "    return x\n"},
		{"qualified", "    raise cocotb.result.ReturnValue(x + 1)\n", "    return x + 1\n"},
		{"no args", "    ReturnValue()\n", "    return\n"},
		{"retval keyword", "    ReturnValue(retval=5)\n", "    return 5\n"},
		{"trailing comma", "    ReturnValue(a,)\n", "    return a\n"},
		{"spaces", "    ReturnValue( a )\n", "    return a\n"},
		{"walrus", "    ReturnValue(y := 2)\n", "    return (y := 2)\n"},
		{"multiline", "    ReturnValue(\n        compute(a,\n                b)\n    )\n", "    return (\n        compute(a,\n                b)\n    )\n"},
		{"semicolon", "    x = 1; ReturnValue(x)\n", "    x = 1; return x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head := "import cocotb\n\n@cocotb.coroutine\ndef f(x, a, b):\n    yield Timer(1)\n"
			res := migrateString(t, head+tt.in)
			want := "import cocotb\n\nasync def f(x, a, b):\n    await Timer(1)\n" + tt.out
			assert.Equal(t, want, string(res.Source))
			assert.Empty(t, res.Unfixable)
		})
	}
}

func TestYieldOperands(t *testing.T) {
	tests := []struct {
		name, in, out string
	}{
		{"assignment", "    x = yield Timer(1)\n", "    x = await Timer(1)\n"},
		{"parenthesized", "    print((yield Edge(clk)))\n", "    print((await Edge(clk)))\n"},
		{"binary operand", "    x = yield a + b\n", "    x = await (a + b)\n"},
		{"name operand", "    yield trigger\n", "    await trigger\n"},
		{"comment kept", "    yield Timer(1)  # wait\n", "    await Timer(1)  # wait\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := migrateString(t, "@cocotb.coroutine\ndef f(a, b, clk):\n"+tt.in)
			assert.Equal(t, "async def f(a, b, clk):\n"+tt.out, string(res.Source))
		})
	}
}

func TestUnfixableSuspendsBlockConversion(t *testing.T) {
	for name, body := range map[string]string{
		"bare yield":   "    yield\n",
		"yield from":   "    yield from other()\n",
		"yield tuple":  "    yield a, b\n",
		"yield list":   "    yield [RisingEdge(clk), Timer(1)]\n",
		"paren tuple":  "    yield (a, b)\n",
		"yield set":    "    yield {a, b}\n",
		"two values":   "    ReturnValue(1, 2)\n",
		"star value":   "    ReturnValue(*xs)\n",
		"keyword name": "    ReturnValue(value=1)\n",
	} {
		t.Run(name, func(t *testing.T) {
			src := "@cocotb.coroutine\ndef f(a, b, clk, xs):\n    yield Timer(1)\n" + body
			res := migrateString(t, src)
			assert.False(t, res.Changed)
			assert.Equal(t, src, string(res.Source))
			assert.Empty(t, res.Findings)
			require.NotEmpty(t, res.Unfixable)

			dec := res.Unfixable[0]
			assert.Equal(t, migrate.DeprecatedCoroutineDecorator, dec.Kind)
			assert.Contains(t, dec.Reason, "'f' cannot be converted")
			assert.Contains(t, dec.Reason, "(line 4)")
			for _, f := range res.Unfixable {
				assert.True(t, f.Unfixable)
				assert.NotEmpty(t, f.Reason)
			}
		})
	}
}

func TestScopeGating(t *testing.T) {
	src := "def plain():\n    yield Timer(1)\n    ReturnValue(3)\n"
	res := migrateString(t, src)
	assert.Equal(t, src, string(res.Source))
	require.Len(t, res.Unfixable, 2)
	for _, f := range res.Unfixable {
		assert.Contains(t, f.Reason, "not inside a function decorated with '@cocotb.coroutine'")
		assert.Equal(t, "plain", f.Function)
	}
}

func TestNestedFunctionsAreIndependent(t *testing.T) {
	src := "import cocotb\n\n" +
		"@cocotb.coroutine\n" +
		"def outer():\n" +
		"    def inner():\n" +
		"        yield 1\n" +
		"    @cocotb.coroutine\n" +
		"    def deco():\n" +
		"        yield Timer(2)\n" +
		"    f = lambda: (yield)\n" +
		"    yield Timer(1)\n"
	want := "import cocotb\n\n" +
		"async def outer():\n" +
		"    def inner():\n" +
		"        yield 1\n" +
		"    async def deco():\n" +
		"        await Timer(2)\n" +
		"    f = lambda: (yield)\n" +
		"    await Timer(1)\n"
	res := migrateString(t, src)
	assert.Equal(t, want, string(res.Source))
	require.Len(t, res.Unfixable, 2)
	assert.Equal(t, "inner", res.Unfixable[0].Function)
	assert.Equal(t, "<lambda>", res.Unfixable[1].Function)
}

func TestAsyncGeneratorsAreNotReported(t *testing.T) {
	findings, err := migrate.Scan("tb.py", []byte("async def gen():\n    yield 1\n    yield\n"))
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestDecoratedAsyncFunctionKeepsAsync(t *testing.T) {
	res := migrateString(t, "import cocotb\n\n@cocotb.coroutine\nasync def f():\n    await Timer(1)\n")
	assert.Equal(t, "import cocotb\n\nasync def f():\n    await Timer(1)\n", string(res.Source))
}

func TestDecoratorTriviaSurvivesRemoval(t *testing.T) {
	src := "import cocotb\n\nclass T:\n" +
		"    # legacy\n" +
		"    @cocotb.coroutine  # v1\n" +
		"    @other\n" +
		"    def run(self):\n" +
		"        yield Timer(1)\n"
	want := "import cocotb\n\nclass T:\n" +
		"    # legacy\n" +
		"    # v1\n" +
		"    @other\n" +
		"    async def run(self):\n" +
		"        await Timer(1)\n"
	assert.Equal(t, want, string(migrateString(t, src).Source))
}

func TestDecoratorForms(t *testing.T) {
	tests := []struct {
		name, src string
		matched   bool
	}{
		{"qualified", "import cocotb\n@cocotb.coroutine\ndef f(): pass\n", true},
		{"call form", "import cocotb\n@cocotb.coroutine()\ndef f(): pass\n", true},
		{"decorators module", "import cocotb\n@cocotb.decorators.coroutine\ndef f(): pass\n", true},
		{"module alias", "import cocotb as cb\n@cb.coroutine\ndef f(): pass\n", true},
		{"imported name", "from cocotb import coroutine\n@coroutine\ndef f(): pass\n", true},
		{"imported alias", "from cocotb.decorators import coroutine as co\n@co\ndef f(): pass\n", true},
		{"star import", "from cocotb import *\n@coroutine\ndef f(): pass\n", true},
		{"unbound bare name", "@coroutine\ndef f(): pass\n", false},
		{"other module", "import asyncio\n@asyncio.coroutine\ndef f(): pass\n", false},
		{"nfkc", "import cocotb\n@cocotb.\uff43oroutine\ndef f(): pass\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings, err := migrate.Scan("tb.py", []byte(tt.src))
			require.NoError(t, err)
			if !tt.matched {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, migrate.DeprecatedCoroutineDecorator, findings[0].Kind)
			assert.False(t, findings[0].Unfixable)
		})
	}
}

func TestBareForkNeedsImport(t *testing.T) {
	findings, err := migrate.Scan("tb.py", []byte("fork(x)\n"))
	require.NoError(t, err)
	assert.Empty(t, findings, "an unbound fork is not the cocotb one")

	res := migrateString(t, "from cocotb import fork\n\nfork(x)\n")
	assert.False(t, res.Changed)
	require.Len(t, res.Unfixable, 1)
	assert.Contains(t, res.Unfixable[0].Reason, "no 'import cocotb'")

	res = migrateString(t, "import cocotb as cb\nfrom cocotb import fork as spawn\n\nh = spawn(coro())\n")
	assert.Equal(t, "import cocotb as cb\nfrom cocotb import fork as spawn\n\nh = cb.start_soon(coro())\n", string(res.Source))
}

func TestCustomMarkers(t *testing.T) {
	src := []byte("import pyuvm\n\n@pyuvm.coroutine\ndef f():\n    yield pyuvm.spawn(x)\n")
	res, err := migrate.Migrate("tb.py", src, migrate.WithMarkers(migrate.Markers{Module: "pyuvm", Fork: "spawn", StartSoon: "launch"}))
	require.NoError(t, err)
	assert.Equal(t, "import pyuvm\n\nasync def f():\n    await pyuvm.launch(x)\n", string(res.Source))
}

func TestCRLFAndBOM(t *testing.T) {
	res := migrateString(t, "\ufeff@cocotb.coroutine\r\ndef f():\r\n    yield Timer(1)\r\n")
	assert.Equal(t, "\ufeffasync def f():\r\n    await Timer(1)\r\n", string(res.Source))
}

func TestReporterReceivesFindings(t *testing.T) {
	bag := diag.NewBag(0)
	_, err := migrate.Scan("tb.py", []byte("def f():\n    yield x\ncocotb.fork(y)\n"), migrate.WithReporter(diag.BagReporter{Bag: bag}))
	require.NoError(t, err)
	require.Equal(t, 2, bag.Len())
	items := bag.Items()
	assert.Equal(t, diag.MigSuspendPoint, items[0].Code)
	assert.Equal(t, diag.SevError, items[0].Severity)
	assert.Equal(t, diag.MigSpawnCall, items[1].Code)
	assert.Equal(t, diag.SevWarning, items[1].Severity)
}
