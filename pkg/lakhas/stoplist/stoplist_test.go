package stoplist

import (
	"testing"
)

func TestManagerBasic(t *testing.T) {
	stops := []string{"the", "a", "and"}
	mgr := NewManager(stops)

	if !mgr.IsStop("the") {
		t.Error("'the' should be a stopword")
	}

	if mgr.IsStop("hello") {
		t.Error("'hello' should not be a stopword")
	}
}

func TestManagerCaseSensitive(t *testing.T) {
	mgr := NewManager([]string{"the"})

	if mgr.IsStop("The") {
		t.Error("Membership is exact: 'The' is not 'the'")
	}
}

func TestManagerAddRemove(t *testing.T) {
	mgr := NewManager([]string{"the"})

	mgr.Add("test")
	if !mgr.IsStop("test") {
		t.Error("'test' should be stopword after adding")
	}

	mgr.Remove("test")
	if mgr.IsStop("test") {
		t.Error("'test' should not be stopword after removing")
	}

	mgr.Add("test")
	if !mgr.IsStop("test") {
		t.Error("Re-adding a removed word should restore it")
	}
}

func TestEnglishBaseList(t *testing.T) {
	mgr := NewEnglish()

	for _, w := range []string{"the", "and", "of", "was"} {
		if !mgr.IsStop(w) {
			t.Errorf("%q should be an English stopword", w)
		}
	}
	for _, w := range []string{"cat", "genome", "."} {
		if mgr.IsStop(w) {
			t.Errorf("%q should not be an English stopword", w)
		}
	}
}

func TestEnglishOverrides(t *testing.T) {
	mgr := NewEnglish()

	mgr.Remove("not")
	if mgr.IsStop("not") {
		t.Error("Removed base word should no longer be a stopword")
	}

	mgr.Add("et")
	if !mgr.IsStop("et") {
		t.Error("Added word should be a stopword")
	}

	if got := mgr.Added(); len(got) != 1 || got[0] != "et" {
		t.Errorf("Added() = %v, want [et]", got)
	}
	if got := mgr.Removed(); len(got) != 1 || got[0] != "not" {
		t.Errorf("Removed() = %v, want [not]", got)
	}
}
