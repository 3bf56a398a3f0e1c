// Command cinitc is a small diagnostic tool for the initializer
// lowering in package cinit: given a scalar or array type declaration
// and an initializer expression, it prints the assignment list the
// library would emit. It is not a C compiler — declarations are a
// minimal stand-in the ctok/ctype/csym packages were built to drive,
// not the real declarator grammar.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/clarete/cinit"
	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/csym"
	"github.com/clarete/cinit/ctok"
	"github.com/clarete/cinit/ctype"
)

func main() {
	var (
		declPath = flag.String("decl", "", "Path to a declaration file: a type-spec line, then the initializer")
		static   = flag.Bool("static", false, "Treat the symbol as having static storage")
	)
	flag.Parse()

	if *declPath == "" {
		log.Fatal("Declaration file not informed (-decl)")
	}

	data, err := os.ReadFile(*declPath)
	if err != nil {
		log.Fatalf("Can't read declaration file: %s", err.Error())
	}

	typeLine, initText, err := splitDecl(string(data))
	if err != nil {
		log.Fatalf("Can't parse declaration: %s", err.Error())
	}

	symType, err := parseTypeSpec(typeLine)
	if err != nil {
		log.Fatalf("Can't parse type spec %q: %s", typeLine, err.Error())
	}

	linkage := csym.LinkNone
	if *static {
		linkage = csym.LinkInternal
	}
	sym := &csym.Symbol{Name: "value", Type: symType, Linkage: linkage}

	lex, err := ctok.NewLexer(initText)
	if err != nil {
		log.Fatalf("Can't tokenize initializer: %s", err.Error())
	}

	lowerer := cinit.NewLowerer(cir.NewContext(), lex, csym.NewTable(), nil)
	block, err := lowerer.Initializer(sym, &cir.Block{})
	if err != nil {
		log.Fatalf("Can't lower initializer: %s", err.Error())
	}

	for _, stmt := range block.Code {
		printStmt(stmt)
	}
}

func printStmt(s cir.Stmt) {
	kind := "assign"
	if s.Kind == cir.StmtCast {
		kind = "cast"
	}
	if s.Target.IsBitField() {
		fmt.Printf("%s value+%d[%d:+%d] = %s\n", kind, s.Target.Offset, s.Target.FieldOffset, s.Target.FieldWidth, s.Expr)
		return
	}
	fmt.Printf("%s value+%d = %s\n", kind, s.Target.Offset, s.Expr)
}

// splitDecl separates the declaration file's first line (the type
// spec) from the rest (the initializer text, which may itself span
// multiple lines).
func splitDecl(data string) (string, string, error) {
	nl := strings.IndexByte(data, '\n')
	if nl < 0 {
		return "", "", fmt.Errorf("declaration file must have a type-spec line followed by the initializer")
	}
	return strings.TrimSpace(data[:nl]), data[nl+1:], nil
}

// parseTypeSpec parses a minimal type grammar:
//
//	int | char | short | long
//	array <elem> <length>        (length may be `flexible`)
//
// This covers the scalar and array shapes a reader is most likely to
// want to poke at interactively; struct/union/bit-field shapes are
// exercised through the test suite instead, where literal *ctype.Type
// values are cheaper to construct directly than a textual grammar.
func parseTypeSpec(spec string) (*ctype.Type, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty type spec")
	}

	switch fields[0] {
	case "int":
		return ctype.NewScalar(ctype.Int), nil
	case "char":
		return ctype.NewScalar(ctype.Char), nil
	case "short":
		return ctype.NewScalar(ctype.Short), nil
	case "long":
		return ctype.NewScalar(ctype.Long), nil
	case "array":
		if len(fields) != 3 {
			return nil, fmt.Errorf("expected `array <elem> <length>`")
		}
		elem, err := parseTypeSpec(fields[1])
		if err != nil {
			return nil, err
		}
		if fields[2] == "flexible" {
			return ctype.NewArray(elem, ctype.FlexibleLength), nil
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("bad array length %q: %w", fields[2], err)
		}
		return ctype.NewArray(elem, n), nil
	default:
		return nil, fmt.Errorf("unknown type spec %q", fields[0])
	}
}
