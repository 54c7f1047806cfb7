package bot

import (
	"testing"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
)

func TestParseSyntax(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind yaml.Kind
		wantErr  bool
	}{
		{"empty", "", yaml.MappingNode, false},
		{"blank", "   \n", yaml.MappingNode, false},
		{"comment only", "# nothing here", yaml.MappingNode, false},
		{"empty flow mapping", "{}", yaml.MappingNode, false},
		{"block mapping", "s: rabbit", yaml.MappingNode, false},
		{"flow mapping", "{r: 'blue ?berr(y|ies)'}", yaml.MappingNode, false},
		{"scalar", "rabbit", yaml.ScalarNode, false},
		{"sequence", "[a, b]", yaml.SequenceNode, false},
		{"malformed", "{a: [}", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseSyntax(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSyntax(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !mdwerror.HasCode(err, mdwerror.CodeInvalidSyntax) {
					t.Errorf("error code = %v, want %s", mdwerror.GetCode(err), mdwerror.CodeInvalidSyntax)
				}
				return
			}
			if node.Kind != tt.wantKind {
				t.Errorf("ParseSyntax(%q).Kind = %v, want %v", tt.input, node.Kind, tt.wantKind)
			}
		})
	}
}

func TestMappingValue(t *testing.T) {
	node, err := ParseSyntax("{r: foo, string: [a, b]}")
	if err != nil {
		t.Fatal(err)
	}

	v, ok := MappingValue(node, "regex", "r")
	if !ok || v.Value != "foo" {
		t.Errorf("MappingValue(regex|r) = %v, %v; want foo", v, ok)
	}

	if _, ok := MappingValue(node, "missing"); ok {
		t.Error("MappingValue(missing) found a value")
	}

	scalar, _ := ParseSyntax("foo")
	if _, ok := MappingValue(scalar, "foo"); ok {
		t.Error("MappingValue on a scalar should find nothing")
	}
}

func TestScalarList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"scalar", "rabbit", []string{"rabbit"}, false},
		{"sequence", "[rabbit, hole]", []string{"rabbit", "hole"}, false},
		{"nested sequence", "[rabbit, [hole]]", nil, true},
		{"mapping", "{a: b}", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseSyntax(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			got, err := ScalarList(node)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ScalarList() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ScalarList() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ScalarList()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}

	if got, err := ScalarList(nil); got != nil || err != nil {
		t.Errorf("ScalarList(nil) = %v, %v", got, err)
	}
}

func TestScalarValue(t *testing.T) {
	node, _ := ParseSyntax("abc")
	if v, err := ScalarValue(node); err != nil || v != "abc" {
		t.Errorf("ScalarValue() = %q, %v", v, err)
	}
	if _, err := ScalarValue(nil); err == nil {
		t.Error("ScalarValue(nil) should fail")
	}
}
