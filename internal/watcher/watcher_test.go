// # internal/watcher/watcher_test.go
package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	tmpDir, _ := os.MkdirTemp("", "watchertest")
	defer os.RemoveAll(tmpDir)

	changed := make(chan []Change, 1)
	w, err := NewWatcher(100*time.Millisecond, []string{".sysml", ".kerml"}, []string{"exclude_dir"}, []string{"ignored*"}, func(changes []Change) {
		changed <- changes
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	err = w.Watch([]string{tmpDir})
	if err != nil {
		t.Fatal(err)
	}

	// Create a model file
	testFile := filepath.Join(tmpDir, "model.sysml")
	os.WriteFile(testFile, []byte("part def Car;"), 0644)

	select {
	case changes := <-changed:
		found := false
		for _, c := range changes {
			if c.Path == testFile && !c.Removed {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected to find %s in changes %v", testFile, changes)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timed out waiting for file change event")
	}

	// Files without a model extension are ignored.
	otherFile := filepath.Join(tmpDir, "notes.txt")
	os.WriteFile(otherFile, []byte("not a model"), 0644)

	// Excluded file patterns are ignored too.
	excludeFile := filepath.Join(tmpDir, "ignored.sysml")
	os.WriteFile(excludeFile, []byte("part def X;"), 0644)

	select {
	case changes := <-changed:
		for _, c := range changes {
			base := filepath.Base(c.Path)
			if base == "notes.txt" || base == "ignored.sysml" {
				t.Errorf("Filtered file triggered event: %s", base)
			}
		}
	case <-time.After(500 * time.Millisecond):
		// Expected
	}

	// New directory should be recursively watched after create.
	subdir := filepath.Join(tmpDir, "newdir")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}
	subFile := filepath.Join(subdir, "nested.kerml")
	if err := os.WriteFile(subFile, []byte("classifier Shape;"), 0644); err != nil {
		t.Fatal(err)
	}

	foundNested := false
	timeout := time.After(2 * time.Second)
	for !foundNested {
		select {
		case changes := <-changed:
			for _, c := range changes {
				if c.Path == subFile {
					foundNested = true
					break
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for nested file event in newly created directory")
		}
	}
}

func TestWatcherRemoveEvent(t *testing.T) {
	tmpDir, _ := os.MkdirTemp("", "watchertest")
	defer os.RemoveAll(tmpDir)

	testFile := filepath.Join(tmpDir, "model.sysml")
	os.WriteFile(testFile, []byte("part def Car;"), 0644)

	changed := make(chan []Change, 4)
	w, err := NewWatcher(100*time.Millisecond, []string{".sysml"}, nil, nil, func(changes []Change) {
		changed <- changes
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	os.Remove(testFile)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case changes := <-changed:
			for _, c := range changes {
				if c.Path == testFile && c.Removed {
					return
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for remove event")
		}
	}
}
