// SPDX-License-Identifier: EPL-2.0

package project

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ik5/bobwave/audio"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	a, err := r.GetOrCreate("song")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	b, _ := r.GetOrCreate("song")
	if a != b {
		t.Error("GetOrCreate() returned a different store for the same name")
	}
	if a.Name() != "song" {
		t.Errorf("Name() = %q, want song", a.Name())
	}

	c, _ := r.GetOrCreate("other")
	if c == a {
		t.Error("different names share a store")
	}

	if _, err := r.GetOrCreate("  "); !errors.Is(err, ErrInvalidProjectName) {
		t.Errorf("GetOrCreate(blank) error = %v, want %v", err, ErrInvalidProjectName)
	}
}

func TestRegistry_LookupDoesNotCreate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	if _, err := r.Lookup("ghost"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Lookup() error = %v, want %v", err, ErrProjectNotFound)
	}
	if len(r.Names()) != 0 {
		t.Errorf("Names() = %v, want empty", r.Names())
	}
}

func TestRegistry_NamesAndDelete(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		_, _ = r.GetOrCreate(n)
	}

	got := fmt.Sprint(r.Names())
	if got != "[alpha mid zeta]" {
		t.Errorf("Names() = %s", got)
	}

	if err := r.Delete("mid"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := r.Delete("mid"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, ErrProjectNotFound)
	}
	if got := fmt.Sprint(r.Names()); got != "[alpha zeta]" {
		t.Errorf("Names() after delete = %s", got)
	}
}

func TestRegistry_ConcurrentGetOrCreate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	stores := make([]*Store, 32)

	var wg sync.WaitGroup
	for i := range stores {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stores[i], _ = r.GetOrCreate("shared")
		}()
	}
	wg.Wait()

	for i, s := range stores {
		if s != stores[0] {
			t.Fatalf("goroutine %d got a different store", i)
		}
	}
}

func TestRegistry_ProjectsIndependent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	a, _ := r.GetOrCreate("a")
	b, _ := r.GetOrCreate("b")

	_, _ = a.AddLayer(testBuffer(1))

	if b.Len() != 0 {
		t.Errorf("b.Len() = %d, want 0", b.Len())
	}
}

func TestRegistry_InsertAfterDelete(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	s, _ := r.GetOrCreate("p")

	if err := r.Delete("p"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.Insert(NewLayer{Audio: audio.NewBuffer(audio.CD, 1)}, 0); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Insert() into deleted store error = %v, want %v", err, ErrProjectNotFound)
	}

	fresh, _ := r.GetOrCreate("p")
	if fresh == s {
		t.Fatal("GetOrCreate() returned the deleted store")
	}
	if _, err := fresh.Insert(NewLayer{Audio: audio.NewBuffer(audio.CD, 1)}, 0); err != nil {
		t.Errorf("Insert() into recreated store error = %v", err)
	}
}

func TestRegistry_StoreOptions(t *testing.T) {
	t.Parallel()

	r := NewRegistry(WithMaxOffset(100))
	s, _ := r.GetOrCreate("p")

	if s.MaxOffset() != 100 {
		t.Errorf("MaxOffset() = %d, want 100", s.MaxOffset())
	}
}
