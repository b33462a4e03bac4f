package pattern

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/geometry"
)

func TestVertexJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Vertex
		wantErr bool
	}{
		{"two elements", `[1, 2]`, Vertex{X: 1, Y: 2}, false},
		{"four elements", `[1, 2, 3, 4]`, Vertex{X: 1, Y: 2, GroutAxisY: 3, GroutAxisX: 4}, false},
		{"three elements", `[1, 2, 3]`, Vertex{}, true},
		{"one element", `[1]`, Vertex{}, true},
		{"not an array", `{"x": 1}`, Vertex{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Vertex
			err := json.Unmarshal([]byte(tt.input), &v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && v != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, v, tt.want)
			}
		})
	}
}

func TestVertexMarshalJSON(t *testing.T) {
	data, _ := json.Marshal(Ring{V(1, 2), {X: 1, Y: 0, GroutAxisX: 1}})
	if got, want := string(data), `[[1,2],[1,0,0,1]]`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestProportionJSON(t *testing.T) {
	var p Proportion
	if err := json.Unmarshal([]byte(`[3, 2]`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Ratio() != 1.5 {
		t.Errorf("Ratio() = %v, want 1.5", p.Ratio())
	}
	for _, bad := range []string{`[1, 0]`, `[1]`, `[-1, 2]`} {
		if err := json.Unmarshal([]byte(bad), &p); err == nil {
			t.Errorf("Unmarshal(%s) succeeded, want error", bad)
		}
	}
}

func TestLoadFileJSON(t *testing.T) {
	cat, err := LoadFile("testdata/patterns.json")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cat.Scale != 0.2 || cat.MinimumTileLength != 50 {
		t.Errorf("scale/unit = %v/%v", cat.Scale, cat.MinimumTileLength)
	}
	if got := strings.Join(cat.Names(), ","); got != "Square Grid Pattern,Running Bond" {
		t.Errorf("Names() = %s", got)
	}

	d, err := cat.Lookup("Square Grid Pattern")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Connection[0]; got != (Vertex{X: 1, GroutAxisX: 1}) {
		t.Errorf("connection[0] = %+v", got)
	}
}

func TestLoadFileTOML(t *testing.T) {
	cat, err := LoadFile("testdata/patterns.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cat.Scale != 0.5 || cat.MinimumTileLength != 100 {
		t.Errorf("scale/unit = %v/%v", cat.Scale, cat.MinimumTileLength)
	}
	d, err := cat.Lookup("Square Grid Pattern")
	if err != nil {
		t.Fatal(err)
	}
	if d.Anchor == nil || *d.Anchor != V(0.5, 0.5) {
		t.Errorf("anchor = %v", d.Anchor)
	}
	if got := d.BoundingBox[2]; got != (Vertex{X: 1, Y: 1, GroutAxisX: 1, GroutAxisY: 1}) {
		t.Errorf("boundingBox[2] = %+v", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/nope.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad json", `{`},
		{"bad vertex", `{"patterns":[{"name":"x","tileProportion":[[1,1]],"patternVertices":[[0,0,1]]}]}`},
		{"no tiles", `{"patterns":[{"name":"x","tileProportion":[[1,1]],
			"patternVertices":[[0,0],[1,0],[1,1]],"boundingBox":[[0,0],[1,0],[1,1]],"connection":[[1,0]]}]}`},
		{"propIndices length", `{"patterns":[{"name":"x","tileProportion":[[1,1]],"propIndices":[[0,1]],
			"patternVertices":[[0,0],[1,0],[1,1]],"boundingBox":[[0,0],[1,0],[1,1]],"connection":[[1,0]],
			"tileVertices":[[[0,0],[1,0],[1,1]]]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidCatalog) {
				t.Errorf("Load error = %v, want INVALID_CATALOG", err)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	cat, err := LoadFile("testdata/patterns.json")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := cat.Resolve("Herringbone", 0); !errors.Is(err, errors.ErrCodePatternNotFound) {
		t.Errorf("unknown pattern: error = %v", err)
	}
	if _, err := cat.Resolve("Square Grid Pattern", 2); !errors.Is(err, errors.ErrCodeProportionNotFound) {
		t.Errorf("unknown proportion: error = %v", err)
	}
	if _, err := cat.Resolve("Square Grid Pattern", -1); !errors.Is(err, errors.ErrCodeProportionNotFound) {
		t.Errorf("negative proportion: error = %v", err)
	}
}

func TestTileTypes(t *testing.T) {
	cat, _ := LoadFile("testdata/patterns.json")

	r, err := cat.Resolve("Square Grid Pattern", 1)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(r.TileTypes) != "[1]" {
		t.Errorf("TileTypes = %v, want [1]", r.TileTypes)
	}

	bond, _ := cat.Lookup("Running Bond")
	if got := fmt.Sprint(bond.TileTypes(0)); got != "[3 3]" {
		t.Errorf("Running Bond TileTypes(0) = %s", got)
	}
	// no propIndices row for proportion 5: fall back to slot order
	if got := fmt.Sprint(bond.TileTypes(5)); got != "[0 1]" {
		t.Errorf("Running Bond TileTypes(5) = %s", got)
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name string
		v    Vertex
		prop Proportion
		p    Params
		want geometry.Point
	}{
		{"unit", V(1, 1), Proportion{1, 1}, Params{UnitLength: 50, Scale: 0.2}, geometry.Pt(10, 10)},
		{"proportion", V(1, 2), Proportion{3, 2}, Params{UnitLength: 100, Scale: 1}, geometry.Pt(150, 300)},
		{"grout x only", Vertex{X: 1, Y: 1, GroutAxisX: 1}, Proportion{1, 1}, Params{UnitLength: 50, GroutWidth: 2, Scale: 0.5}, geometry.Pt(26, 25)},
		{"grout both", Vertex{X: 0, Y: 1, GroutAxisX: 2, GroutAxisY: 1}, Proportion{1, 1}, Params{UnitLength: 10, GroutWidth: 3, Scale: 1}, geometry.Pt(6, 13)},
		{"negative vector", Vertex{X: -1, GroutAxisX: -1}, Proportion{1, 1}, Params{UnitLength: 10, GroutWidth: 1, Scale: 2}, geometry.Pt(-22, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(tt.v, tt.prop, tt.p)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Transform = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvedTransform(t *testing.T) {
	cat, _ := LoadFile("testdata/patterns.json")
	r, _ := cat.Resolve("Square Grid Pattern", 0)

	g := r.Transform(Params{UnitLength: 50, GroutWidth: 5, Scale: 0.2})

	if len(g.Tiles) != 1 || len(g.Connection) != 4 {
		t.Fatalf("tiles=%d connection=%d", len(g.Tiles), len(g.Connection))
	}
	// tile 10x10 px, group pitch 11 px with 1 px grout
	if g.Tiles[0][2] != geometry.Pt(10, 10) {
		t.Errorf("tile corner = %v", g.Tiles[0][2])
	}
	if g.Connection[0] != geometry.Pt(11, 0) || g.Connection[3] != geometry.Pt(0, -11) {
		t.Errorf("connection = %v", g.Connection)
	}
	if g.GroupSize() != geometry.Pt(11, 11) {
		t.Errorf("GroupSize() = %v", g.GroupSize())
	}
	if g.Anchor != (geometry.Point{}) {
		t.Errorf("Anchor = %v, want origin", g.Anchor)
	}
}

func ExampleTransform() {
	p := Params{UnitLength: 50, GroutWidth: 2, Scale: 0.5}
	fmt.Println(Transform(Vertex{X: 1, Y: 0, GroutAxisX: 1}, Proportion{Num: 2, Den: 1}, p))
	// Output: {51 0}
}
