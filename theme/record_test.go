package theme

import (
	"encoding/json"
	"reflect"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestLoadEmptyRecordYieldsDefaults(t *testing.T) {
	got := Load(Record{})
	if !reflect.DeepEqual(got, Defaults()) {
		t.Errorf("Load(empty): got %+v, want defaults", got)
	}
}

func TestLoadMalformedJSONYieldsDefaults(t *testing.T) {
	rec := DecodeRecord([]byte(`{not json`))
	got := Load(rec)
	if !reflect.DeepEqual(got, Defaults()) {
		t.Errorf("Load(malformed): got %+v, want defaults", got)
	}
}

func TestLoadUnknownKeysDropped(t *testing.T) {
	rec := DecodeRecord([]byte(`{"colors":{"primary":"#123456","futureRole":"#fff"},"futureGroup":{"x":1}}`))
	got := Load(rec)
	if got.Colors.Primary != "#123456" {
		t.Errorf("primary: got %q, want #123456", got.Colors.Primary)
	}
	if got.Colors.Background != Defaults().Colors.Background {
		t.Errorf("background changed by unknown keys: %q", got.Colors.Background)
	}
}

func TestLoadInvalidEnumFallsBack(t *testing.T) {
	rec := Record{
		Layout: &LayoutRecord{Variant: "holographic", Navigation: "multi"},
		Sizes:  &SizesRecord{LogoSize: "xxl"},
	}
	got := Load(rec)
	if got.Layout.Variant != VariantSimple {
		t.Errorf("variant: got %q, want fallback %q", got.Layout.Variant, VariantSimple)
	}
	if got.Layout.Navigation != NavMulti {
		t.Errorf("navigation: got %q, want %q", got.Layout.Navigation, NavMulti)
	}
	if got.Sizes.LogoSize != ScaleSM {
		t.Errorf("logo size: got %q, want fallback %q", got.Sizes.LogoSize, ScaleSM)
	}
}

func TestMergeOverridesOnlyProvidedFields(t *testing.T) {
	cur := Defaults()
	cur.Colors.Primary = "#111111"
	cur.Colors.Button = "#222222"
	cur.Texts.ShopName = "Loja da Ana"

	partial := Record{
		Colors: &ColorsRecord{Primary: "#ff0000"},
		Texts:  &TextsRecord{FooterCopy: "© Ana"},
	}

	got := Merge(cur, partial)

	if got.Colors.Primary != "#ff0000" {
		t.Errorf("primary: got %q, want #ff0000", got.Colors.Primary)
	}
	if got.Colors.Button != "#222222" {
		t.Errorf("button overridden but absent from partial: got %q", got.Colors.Button)
	}
	if got.Texts.ShopName != "Loja da Ana" {
		t.Errorf("shop name overridden but absent from partial: got %q", got.Texts.ShopName)
	}
	if got.Texts.FooterCopy != "© Ana" {
		t.Errorf("footer copy: got %q, want © Ana", got.Texts.FooterCopy)
	}
	// Groups not present in partial are untouched.
	if !reflect.DeepEqual(got.Snippets, cur.Snippets) {
		t.Errorf("snippets changed by colors/texts merge: %+v", got.Snippets)
	}
	if !reflect.DeepEqual(got.Layout, cur.Layout) {
		t.Errorf("layout changed by colors/texts merge: %+v", got.Layout)
	}
}

func TestMergeExplicitFalseOverrides(t *testing.T) {
	cur := Defaults()
	if !cur.Snippets.ShowBanner {
		t.Fatal("precondition: ShowBanner defaults true")
	}

	got := Merge(cur, Record{Snippets: &SnippetsRecord{ShowBanner: boolPtr(false)}})

	if got.Snippets.ShowBanner {
		t.Error("ShowBanner: explicit false did not override")
	}
	if !got.Snippets.ShowNotice {
		t.Error("ShowNotice: absent toggle was overridden")
	}
}

func TestMergeDoesNotMutateCurrent(t *testing.T) {
	cur := Defaults()
	_ = Merge(cur, Record{Colors: &ColorsRecord{Primary: "#ff0000"}})
	if cur.Colors.Primary != Defaults().Colors.Primary {
		t.Errorf("Merge mutated its input: %q", cur.Colors.Primary)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Layout.Variant = VariantShop
	cfg.Colors.Primary = "#a1b2c3"
	cfg.Snippets.ButtonPulse = true
	cfg.Snippets.ShowBanner = false

	rec := cfg.Record()

	// Through JSON, as the persistence collaborator would see it.
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back := Load(DecodeRecord(data))

	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("round trip: got %+v, want %+v", back, cfg)
	}
}

func TestRecordDefinesEveryGroup(t *testing.T) {
	rec := Defaults().Record()
	if rec.Layout == nil || rec.Colors == nil || rec.Images == nil ||
		rec.Texts == nil || rec.Snippets == nil || rec.Sizes == nil || rec.Margins == nil {
		t.Fatalf("Record() left a group nil: %+v", rec)
	}
	if rec.Snippets.ShowBanner == nil {
		t.Error("Record() left a snippet toggle nil")
	}
}

func TestLoadSanitizesNoticeHTML(t *testing.T) {
	rec := Record{Texts: &TextsRecord{NoticeHTML: `<strong>hi</strong><script>alert(1)</script>`}}
	got := Load(rec)
	if got.Texts.NoticeHTML != "<strong>hi</strong>" {
		t.Errorf("notice: got %q, want script stripped", got.Texts.NoticeHTML)
	}
}
