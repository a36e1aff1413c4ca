package editor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"github.com/hazyhaar/vitrine/theme"
)

func TestStoreSectionSettersAreDisjoint(t *testing.T) {
	s := NewStore(theme.Defaults())

	colors := s.Get().Colors
	colors.Primary = "#ff0000"
	s.SetColors(colors)

	texts := s.Get().Texts
	texts.ShopName = "Loja Nova"
	s.SetTexts(texts)

	got := s.Get()
	if got.Colors.Primary != "#ff0000" {
		t.Errorf("colors write lost: %q", got.Colors.Primary)
	}
	if got.Texts.ShopName != "Loja Nova" {
		t.Errorf("texts write lost: %q", got.Texts.ShopName)
	}
	// Untouched groups keep their defaults.
	if !reflect.DeepEqual(got.Snippets, theme.Defaults().Snippets) {
		t.Error("snippets changed by unrelated section writes")
	}
}

func TestStoreSetTextsSanitizes(t *testing.T) {
	s := NewStore(theme.Defaults())
	s.SetTexts(theme.Texts{NoticeHTML: `<script>alert(1)</script><b>ok</b>`, ShopName: "x"})

	if got := s.Get().Texts.NoticeHTML; got != "<b>ok</b>" {
		t.Errorf("notice not sanitized: %q", got)
	}
}

func TestStoreSubscribersObserveEverySwap(t *testing.T) {
	s := NewStore(theme.Defaults())

	var mu sync.Mutex
	var seen []string
	unsub := s.Subscribe(func(c theme.Config) {
		mu.Lock()
		seen = append(seen, c.Texts.ShopName)
		mu.Unlock()
	})

	s.SetTexts(theme.Texts{ShopName: "a"})
	s.SetTexts(theme.Texts{ShopName: "b"})
	unsub()
	s.SetTexts(theme.Texts{ShopName: "c"})

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("subscriber swaps: %v", seen)
	}
}

// fakePersistence records saves and serves a canned record.
type fakePersistence struct {
	stored   theme.Record
	saveErr  error
	fetchErr error
	saves    int
}

func (f *fakePersistence) Fetch(context.Context) (theme.Record, error) {
	if f.fetchErr != nil {
		return theme.Record{}, f.fetchErr
	}
	return f.stored, nil
}

func (f *fakePersistence) Save(_ context.Context, rec theme.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.stored = rec
	return nil
}

func TestShellSaveSwapsCanonicalForm(t *testing.T) {
	s := NewStore(theme.Defaults())
	pers := &fakePersistence{}
	sh := NewShell(s, pers, nil)

	colors := s.Get().Colors
	colors.Primary = "#123456"
	s.SetColors(colors)

	if err := sh.Save(context.Background()); err != nil {
		t.Fatal(err)
	}
	if pers.saves != 1 {
		t.Fatalf("saves: %d", pers.saves)
	}
	if got := s.Get().Colors.Primary; got != "#123456" {
		t.Errorf("canonical reload lost edit: %q", got)
	}
}

func TestShellFailedSaveLeavesConfigIntact(t *testing.T) {
	s := NewStore(theme.Defaults())
	pers := &fakePersistence{saveErr: errors.New("store down")}
	sh := NewShell(s, pers, nil)

	texts := s.Get().Texts
	texts.ShopName = "Edição Valiosa"
	s.SetTexts(texts)
	before := s.Get()

	if err := sh.Save(context.Background()); err == nil {
		t.Fatal("expected save failure")
	}
	if !reflect.DeepEqual(s.Get(), before) {
		t.Error("failed save must leave the in-memory configuration unchanged")
	}
}

func TestShellLoad(t *testing.T) {
	s := NewStore(theme.Defaults())
	pers := &fakePersistence{stored: theme.Record{
		Texts: &theme.TextsRecord{ShopName: "Persistida"},
	}}
	sh := NewShell(s, pers, nil)

	if err := sh.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := s.Get().Texts.ShopName; got != "Persistida" {
		t.Errorf("shop name: %q", got)
	}
	// Groups absent from the record load their defaults.
	if got := s.Get().Colors; !reflect.DeepEqual(got, theme.Defaults().Colors) {
		t.Error("absent groups must default")
	}
}

func TestClientRoundTrip(t *testing.T) {
	var stored theme.Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/theme" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&stored)
			json.NewEncoder(w).Encode(stored)
		case http.MethodGet:
			json.NewEncoder(w).Encode(stored)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	rec := theme.Defaults().Record()
	rec.Texts.ShopName = "Via HTTP"

	if err := c.Save(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Texts == nil || got.Texts.ShopName != "Via HTTP" {
		t.Errorf("fetched record: %+v", got.Texts)
	}
}

func TestClientSaveErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Save(context.Background(), theme.Record{}); err == nil {
		t.Fatal("expected error on 500")
	}
}
