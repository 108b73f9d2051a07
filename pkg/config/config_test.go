package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "arbor.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfiguration(t *testing.T) {
	dir := t.TempDir()
	rootA, rootB := t.TempDir(), t.TempDir()
	body := fmt.Sprintf("roots:\n  - %s\n  - %s\nignorePaths:\n  - build\n", rootA, rootB)
	path := writeConfig(t, dir, body)

	configuration, err := Load(path)
	if err != nil {
		t.Fatalf("unable to load configuration: %v", err)
	}
	if len(configuration.Roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(configuration.Roots))
	}
	if configuration.ArchiveDirectory == "" {
		t.Fatal("expected a default archive directory to be set")
	}

	info := configuration.SyncInfo()
	if info.Replicas() != 2 {
		t.Fatalf("expected SyncInfo to carry 2 replicas, got %d", info.Replicas())
	}
	if !info.Ignore.IsIgnored("build") {
		t.Fatal("expected ignorePaths to carry through to SyncInfo")
	}
}

func TestLoadRejectsTooFewRoots(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, fmt.Sprintf("roots:\n  - %s\n", t.TempDir()))
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for fewer than two roots")
	}
}

func TestLoadRejectsRelativeRoots(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "roots:\n  - relative/a\n  - relative/b\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a relative replica root")
	}
}

func TestLoadRejectsInvalidIgnoreGlob(t *testing.T) {
	dir := t.TempDir()
	rootA, rootB := t.TempDir(), t.TempDir()
	body := fmt.Sprintf("roots:\n  - %s\n  - %s\nignoreGlobs:\n  - \"[\"\n", rootA, rootB)
	path := writeConfig(t, dir, body)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an invalid ignore glob")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rootA, rootB := t.TempDir(), t.TempDir()
	path := filepath.Join(dir, "arbor.yaml")

	original := &Configuration{Roots: []string{rootA, rootB}}
	if err := Save(path, original); err != nil {
		t.Fatalf("unable to save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unable to load: %v", err)
	}
	if len(loaded.Roots) != 2 {
		t.Fatalf("expected 2 roots after round trip, got %d", len(loaded.Roots))
	}
}
