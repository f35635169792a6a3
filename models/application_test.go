package models

import (
	"encoding/json"
	"testing"
)

func TestFieldListMarshalPreservesOrder(t *testing.T) {
	list := FieldList{
		{Key: "zebra", Value: "1"},
		{Key: "alpha", Value: "2"},
		{Key: "middle", Value: "3"},
	}

	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `{"zebra":"1","alpha":"2","middle":"3"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestFieldListUnmarshalObjectAndArray(t *testing.T) {
	cases := []string{
		`{"applicant_name":"John","dob":"03-05-1990"}`,
		`[{"key":"applicant_name","value":"John"},{"key":"dob","value":"03-05-1990"}]`,
	}

	for _, input := range cases {
		var list FieldList
		if err := json.Unmarshal([]byte(input), &list); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", input, err)
		}
		if len(list) != 2 || list[0].Key != "applicant_name" || list[1].Key != "dob" {
			t.Errorf("Unmarshal(%s) = %+v", input, list)
		}
		if v, _ := list.Get("dob"); v != "03-05-1990" {
			t.Errorf("dob = %q", v)
		}
	}
}

func TestFieldListScanValueRoundTrip(t *testing.T) {
	original := FieldList{
		{Key: "applicant_name", Value: "John"},
		{Key: "email_id", Value: "john@example.org"},
	}

	stored, err := original.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var restored FieldList
	if err := restored.Scan(stored); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(restored) != len(original) {
		t.Fatalf("restored %d fields, want %d", len(restored), len(original))
	}
	for i := range original {
		if restored[i] != original[i] {
			t.Errorf("field %d = %+v, want %+v", i, restored[i], original[i])
		}
	}
}

func TestFieldListGet(t *testing.T) {
	list := FieldList{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}

	if v, ok := list.Get("b"); !ok || v != "2" {
		t.Errorf("b = (%q, %v), want (2, true)", v, ok)
	}
	if _, ok := list.Get("missing"); ok {
		t.Error("missing key reported present")
	}
}

func TestDocumentListScanValueRoundTrip(t *testing.T) {
	original := DocumentList{
		{Name: "Passport Photo", Path: "uploads/passport_photo-1.png"},
	}

	stored, err := original.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var restored DocumentList
	if err := restored.Scan(stored); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(restored) != 1 || restored[0] != original[0] {
		t.Errorf("restored %+v, want %+v", restored, original)
	}
}
