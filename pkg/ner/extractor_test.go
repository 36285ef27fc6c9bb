package ner

import (
	"testing"
)

func TestCategorize(t *testing.T) {
	raw := []RawEntity{
		{Group: "PER", Word: "Walt Whitman"},
		{Group: "ORG", Word: "Library of Congress"},
		{Group: "LOC", Word: "Brooklyn"},
		{Group: "DATE", Word: "March"},
		{Group: "MISC", Word: "Leaves of Grass"},
	}

	got := Categorize(raw)

	if len(got[CategoryPerson]) != 1 || got[CategoryPerson][0] != "Walt Whitman" {
		t.Errorf("PERSON = %v", got[CategoryPerson])
	}
	if len(got[CategoryOrg]) != 1 || got[CategoryOrg][0] != "Library of Congress" {
		t.Errorf("ORG = %v", got[CategoryOrg])
	}
	if len(got[CategoryLoc]) != 1 || got[CategoryLoc][0] != "Brooklyn" {
		t.Errorf("LOC = %v", got[CategoryLoc])
	}
	if len(got[CategoryDate]) != 1 || got[CategoryDate][0] != "March" {
		t.Errorf("DATE = %v", got[CategoryDate])
	}
	if len(got[CategoryOther]) != 1 || got[CategoryOther][0] != "Leaves of Grass (MISC)" {
		t.Errorf("OTHER = %v", got[CategoryOther])
	}
}

func TestCategorizeDedupesPreservingOrder(t *testing.T) {
	raw := []RawEntity{
		{Group: "PER", Word: "Whitman"},
		{Group: "PER", Word: "Sagan"},
		{Group: "PER", Word: "Whitman"},
		{Group: "PER", Word: "Whitman"},
	}

	got := Categorize(raw)

	persons := got[CategoryPerson]
	if len(persons) != 2 {
		t.Fatalf("PERSON = %v, want 2 entries", persons)
	}
	if persons[0] != "Whitman" || persons[1] != "Sagan" {
		t.Errorf("PERSON = %v, want [Whitman Sagan]", persons)
	}
}

func TestCategorizeEmptyInput(t *testing.T) {
	got := Categorize(nil)
	for _, cat := range []string{CategoryPerson, CategoryOrg, CategoryLoc, CategoryDate, CategoryOther} {
		if len(got[cat]) != 0 {
			t.Errorf("%s = %v, want empty", cat, got[cat])
		}
	}
}
