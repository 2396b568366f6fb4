package util

import (
	"reflect"
	"testing"
)

func TestParseMembersTrimsAndDedupes(t *testing.T) {
	got := ParseMembers(" Ana, Luis ,, ana,  Eva   Maria ")
	want := []string{"Ana", "Luis", "Eva Maria"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseMembers() = %v, want %v", got, want)
	}
}

func TestMembersJSONRoundTrip(t *testing.T) {
	members := []string{"Ana", "Luis", "Eva"}
	got, err := JSONToMembers(MembersToJSON(members))
	if err != nil {
		t.Fatalf("JSONToMembers failed: %v", err)
	}
	if !reflect.DeepEqual(got, members) {
		t.Fatalf("JSONToMembers(MembersToJSON()) = %v, want %v", got, members)
	}
}

func TestJSONToMembersEdgeCases(t *testing.T) {
	for _, in := range []string{"", "null", "[]"} {
		got, err := JSONToMembers(in)
		if err != nil {
			t.Fatalf("JSONToMembers(%q) failed: %v", in, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("JSONToMembers(%q) = %v, want empty non-nil", in, got)
		}
	}
	if _, err := JSONToMembers("{oops"); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
	if MembersToJSON(nil) != "[]" {
		t.Fatalf("MembersToJSON(nil) should be []")
	}
}
