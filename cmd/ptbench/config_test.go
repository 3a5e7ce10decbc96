package main

import "testing"

func TestDefaultProfileMatchesOriginalStressDriver(t *testing.T) {
	p := defaultProfile()
	if p.InsertCount != 10000 || p.InsertAt != 10 {
		t.Fatalf("defaultProfile() insert range = [%d, %d), want [10, 10000)", p.InsertAt, p.InsertCount)
	}
	if p.RemoveStart != 4 || p.RemoveEnd != 294 {
		t.Fatalf("defaultProfile() remove range = [%d, %d), want [4, 294)", p.RemoveStart, p.RemoveEnd)
	}
	if !p.ContiguousInserts {
		t.Fatalf("defaultProfile().ContiguousInserts = false, want true")
	}
}

func TestLoadCorpusAggregatesMissingFiles(t *testing.T) {
	_, err := loadCorpus([]string{"/nonexistent/a.txt", "/nonexistent/b.txt"})
	if err == nil {
		t.Fatal("expected an error for two missing corpus files")
	}
}
