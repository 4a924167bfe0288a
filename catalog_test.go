package optsync

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadCatalogFixture(t *testing.T) {
	file, err := os.Open(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer file.Close()

	catalog, err := LoadCatalog(file)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	if want := []string{"Column", "DataGrid", "Format", "Paging"}; !reflect.DeepEqual(catalog.Names(), want) {
		t.Fatalf("expected %v, got %v", want, catalog.Names())
	}
	column, ok := catalog.Type("Column")
	if !ok {
		t.Fatalf("expected Column type")
	}
	if column.OptionName != "columns" || !column.IsCollectionItem || column.DefaultsProps["defaultFilterValue"] != "filterValue" {
		t.Fatalf("unexpected column type %+v", column)
	}
	if len(column.TemplateProps) != 1 || column.TemplateProps[0].Render != "cellRender" {
		t.Fatalf("unexpected template props %+v", column.TemplateProps)
	}
	if format, _ := catalog.Type("Format"); format.OptionName != "Format" {
		t.Fatalf("expected option name to default to the component name, got %q", format.OptionName)
	}

	grid, _ := catalog.Type("DataGrid")
	m, _, _ := newTestManager(t, nil)
	m.RegisterTree(grid.ExpectedChildren,
		catalog.Node("Column", map[string]any{"dataField": "name"},
			catalog.Node("Format", map[string]any{"type": "fixed"}),
		),
		catalog.Node("Paging", map[string]any{"pageSize": 15}),
		catalog.Node("Unknown", map[string]any{"x": 1}),
	)

	got := normalizeJSON(t, m.GetNestedOptionsObjects(nil))
	want := normalizeJSON(t, map[string]any{
		"columns": []any{map[string]any{
			"dataField":    "name",
			"allowSorting": true,
			"format":       map[string]any{"precision": 2, "type": "fixed"},
		}},
		"paging": map[string]any{"pageSize": 15},
	})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestParseCatalogErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		expect string
	}{
		{name: "invalid yaml", source: "components: [", expect: "optsync: parse catalog"},
		{
			name:   "expected child without option name",
			source: "components:\n  Grid:\n    expectedChildren:\n      Column: {isCollectionItem: true}\n",
			expect: `expected child "Column" has no optionName`,
		},
		{
			name:   "template without option",
			source: "components:\n  Item:\n    templateProps:\n      - render: render\n",
			expect: `template prop 0 has no tmplOption`,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.source))
			if err == nil || !strings.Contains(err.Error(), tc.expect) {
				t.Fatalf("expected error containing %q, got %v", tc.expect, err)
			}
		})
	}
}

func TestParseCatalogEmptyComponent(t *testing.T) {
	catalog, err := ParseCatalog([]byte("components:\n  Toolbar:\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	toolbar, ok := catalog.Type("Toolbar")
	if !ok || toolbar.OptionName != "Toolbar" {
		t.Fatalf("expected Toolbar defaulted, got %+v", toolbar)
	}
}

func TestParseCatalogTOML(t *testing.T) {
	source := `
[components.Column]
optionName = "columns"
isCollectionItem = true
predefinedProps = { allowSorting = true }

[[components.Column.templateProps]]
tmplOption = "cellTemplate"
render = "cellRender"
component = "cellComponent"

[components.Column.expectedChildren.Format]
optionName = "format"

[components.Lookup]
`
	catalog, err := ParseCatalogTOML([]byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	column, ok := catalog.Type("Column")
	if !ok || column.OptionName != "columns" || !column.IsCollectionItem {
		t.Fatalf("unexpected column %+v", column)
	}
	if column.PredefinedProps["allowSorting"] != true || column.ExpectedChildren["Format"].OptionName != "format" {
		t.Fatalf("unexpected column metadata %+v", column)
	}
	if len(column.TemplateProps) != 1 || column.TemplateProps[0].TmplOption != "cellTemplate" {
		t.Fatalf("unexpected template props %+v", column.TemplateProps)
	}
	if lookup, ok := catalog.Type("Lookup"); !ok || lookup.OptionName != "Lookup" {
		t.Fatalf("expected empty table defaulted, got %+v", lookup)
	}

	if _, err := ParseCatalogTOML([]byte("[components")); err == nil || !strings.Contains(err.Error(), "optsync: parse catalog") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
