package coco

import (
	"encoding/json"
	"testing"
)

// decodeJSON parses a JSON literal into the generic form Validate expects.
func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		t.Fatalf("bad test literal: %v", err)
	}
	return doc
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{
			"empty sections",
			`{"images":[],"annotations":[],"categories":[]}`,
			true,
		},
		{
			"minimal complete dataset",
			`{
				"images":[{"id":1,"file_name":"a.jpg","width":10,"height":10}],
				"annotations":[{"id":1,"image_id":1,"category_id":1,"bbox":[0,0,5,5]}],
				"categories":[{"id":1,"name":"cat"}]
			}`,
			true,
		},
		{
			"missing images section",
			`{"annotations":[],"categories":[]}`,
			false,
		},
		{
			"missing annotations section",
			`{"images":[],"categories":[]}`,
			false,
		},
		{
			"missing categories section",
			`{"images":[],"annotations":[]}`,
			false,
		},
		{
			"section is not an array",
			`{"images":{},"annotations":[],"categories":[]}`,
			false,
		},
		{
			"image missing file_name",
			`{
				"images":[{"id":1,"width":10,"height":10}],
				"annotations":[],
				"categories":[]
			}`,
			false,
		},
		{
			"annotation missing bbox",
			`{
				"images":[],
				"annotations":[{"id":1,"image_id":1,"category_id":1}],
				"categories":[]
			}`,
			false,
		},
		{
			"category missing name",
			`{
				"images":[],
				"annotations":[],
				"categories":[{"id":1}]
			}`,
			false,
		},
		{
			"record is not an object",
			`{"images":[42],"annotations":[],"categories":[]}`,
			false,
		},
		{
			"document is an array",
			`[1,2,3]`,
			false,
		},
		{
			"document is a scalar",
			`"hello"`,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decodeJSON(t, tt.json)
			if got := Validate(doc); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate_NilInput(t *testing.T) {
	if Validate(nil) {
		t.Error("Validate(nil) = true, want false")
	}
}

func TestValidate_ExtraKeysIgnored(t *testing.T) {
	doc := decodeJSON(t, `{
		"info":{"year":2020},
		"licenses":[],
		"images":[],
		"annotations":[],
		"categories":[]
	}`)
	if !Validate(doc) {
		t.Error("extra top-level keys should not fail validation")
	}
}
