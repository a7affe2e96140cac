package ast

import (
	"strings"
	"testing"

	"github.com/a2l-go/a2l/internal/errs"
)

func buildSampleProject() *Node {
	project := NewNode("PROJECT", errs.Position{File: "t.a2l", Line: 1})
	project.SetPositional("name", "TEST")
	project.SetPositional("long_identifier", "")

	header := NewNode("HEADER", errs.Position{File: "t.a2l", Line: 2})
	header.SetPositional("comment", "")
	header.SetSingleton("project_no", "_")
	project.SetSingleton("header", header)

	module := NewNode("MODULE", errs.Position{File: "t.a2l", Line: 5})
	module.SetPositional("name", "_")
	module.SetPositional("long_identifier", "")
	project.AppendRepeatable("module", module)

	return project
}

func TestNode_Attribute(t *testing.T) {
	project := buildSampleProject()
	if got := project.Attribute("name"); got != "TEST" {
		t.Fatalf("name = %v", got)
	}
	header, ok := project.Attribute("header").(*Node)
	if !ok || header.Kind != "HEADER" {
		t.Fatalf("header attribute = %v", project.Attribute("header"))
	}
	modules, ok := project.Attribute("module").([]*Node)
	if !ok || len(modules) != 1 {
		t.Fatalf("module attribute = %v", project.Attribute("module"))
	}

	empty := NewNode("HEADER", errs.Position{})
	if v := empty.Attribute("version"); v != nil {
		t.Fatalf("absent optional singleton should be nil, got %v", v)
	}
}

func TestNode_Properties(t *testing.T) {
	project := buildSampleProject()
	props := project.Properties()
	want := []string{"name", "long_identifier", "header", "module"}
	if len(props) != len(want) {
		t.Fatalf("Properties() = %v, want %v", props, want)
	}
	for i, p := range want {
		if props[i] != p {
			t.Fatalf("Properties()[%d] = %q, want %q", i, props[i], p)
		}
	}
}

func TestNode_ModuleDeclaresA2mlAndIfData(t *testing.T) {
	module := NewNode("MODULE", errs.Position{})
	props := module.Properties()
	found := map[string]bool{}
	for _, p := range props {
		found[p] = true
	}
	if !found["a2ml"] || !found["if_data"] {
		t.Fatalf("MODULE properties = %v, want a2ml and if_data declared", props)
	}
	if v := module.Attribute("a2ml"); v != nil {
		t.Fatalf("absent a2ml should be nil, got %v", v)
	}
	if d, ok := module.Attribute("if_data").([]IfData); !ok || len(d) != 0 {
		t.Fatalf("absent if_data should be an empty list, got %v", module.Attribute("if_data"))
	}
}

func TestAST_FindByKind(t *testing.T) {
	a := &AST{Project: buildSampleProject()}
	modules := a.FindByKind("MODULE")
	if len(modules) != 1 {
		t.Fatalf("FindByKind(MODULE) = %d nodes, want 1", len(modules))
	}
	if len(a.FindByKind("CHARACTERISTIC")) != 0 {
		t.Fatalf("FindByKind(CHARACTERISTIC) should be empty")
	}
}

func TestAST_Dump(t *testing.T) {
	a := &AST{Project: buildSampleProject()}
	got := a.Dump(2, "\n", " ")
	want := strings.Join([]string{
		`/begin PROJECT TEST ""`,
		`  /begin HEADER ""`,
		`    PROJECT_NO _`,
		`  /end HEADER`,
		`  /begin MODULE _ ""`,
		`  /end MODULE`,
		`/end PROJECT`,
	}, "\n")
	if got != want {
		t.Fatalf("Dump() =\n%s\nwant\n%s", got, want)
	}
}

func TestAST_Lines_StopsEarly(t *testing.T) {
	a := &AST{Project: buildSampleProject()}
	count := 0
	for range a.Lines() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected iteration to stop after 2 lines, got %d", count)
	}
}
