package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mummyfmt/mummy"
)

func TestPrintValueRendersNestedStructure(t *testing.T) {
	v := mummy.NewList([]mummy.Value{
		mummy.NewInt(42),
		mummy.NewHash([]mummy.HashEntry{
			{Key: mummy.NewUtf8("k"), Value: mummy.NewBool(true)},
		}),
	})

	var buf bytes.Buffer
	printValue(&buf, v, 0)

	out := buf.String()
	for _, want := range []string{"List(2)", "Int(42)", "Hash(1)", `Utf8("k")`, "Bool(true)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestRunDecodesAndPrints(t *testing.T) {
	b, err := mummy.Dumps(mummy.NewInt(7), mummy.WithCompression(false))
	if err != nil {
		t.Fatalf("Dumps: %v", err)
	}

	dir := t.TempDir()
	path := dir + "/value.mummy"
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	var out bytes.Buffer
	if err := run(&out, zap.NewNop(), path); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Int(7)") {
		t.Errorf("output = %q, want it to contain Int(7)", out.String())
	}
}
