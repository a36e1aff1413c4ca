package theme

import "encoding/json"

// Record is the wire form of a Config: what the persistence collaborator
// stores and returns. Groups are optional — a partial record carries only
// the groups it changes. Snippet toggles travel as *bool so an explicit
// false stays distinct from "not provided". Unknown keys are dropped by
// the JSON decoder, which keeps old records loadable forever.
type Record struct {
	Layout   *LayoutRecord   `json:"layout,omitempty"`
	Colors   *ColorsRecord   `json:"colors,omitempty"`
	Images   *ImagesRecord   `json:"images,omitempty"`
	Texts    *TextsRecord    `json:"texts,omitempty"`
	Snippets *SnippetsRecord `json:"snippets,omitempty"`
	Sizes    *SizesRecord    `json:"sizes,omitempty"`
	Margins  *MarginsRecord  `json:"margins,omitempty"`
}

// LayoutRecord mirrors Layout with loose string enums.
type LayoutRecord struct {
	Variant    string `json:"variant,omitempty"`
	Navigation string `json:"navigation,omitempty"`
	Font       string `json:"font,omitempty"`
	Corner     string `json:"corner,omitempty"`
}

// ColorsRecord mirrors Colors.
type ColorsRecord struct {
	Primary          string `json:"primary,omitempty"`
	Background       string `json:"background,omitempty"`
	CardBackground   string `json:"cardBackground,omitempty"`
	CardText         string `json:"cardText,omitempty"`
	Button           string `json:"button,omitempty"`
	ButtonText       string `json:"buttonText,omitempty"`
	FooterBackground string `json:"footerBackground,omitempty"`
	FooterText       string `json:"footerText,omitempty"`
	BumpBackground   string `json:"bumpBackground,omitempty"`
	BumpBorder       string `json:"bumpBorder,omitempty"`
	BumpText         string `json:"bumpText,omitempty"`
	StepActive       string `json:"stepActive,omitempty"`
	StepInactive     string `json:"stepInactive,omitempty"`
	NoticeBar        string `json:"noticeBar,omitempty"`
	NoticeBarText    string `json:"noticeBarText,omitempty"`
}

// ImagesRecord mirrors Images.
type ImagesRecord struct {
	LogoURL          string `json:"logoUrl,omitempty"`
	FaviconURL       string `json:"faviconUrl,omitempty"`
	BannerMobileURL  string `json:"bannerMobileUrl,omitempty"`
	BannerDesktopURL string `json:"bannerDesktopUrl,omitempty"`
	LogoAlign        string `json:"logoAlign,omitempty"`
}

// TextsRecord mirrors Texts.
type TextsRecord struct {
	NoticeHTML string `json:"noticeHtml,omitempty"`
	ShopName   string `json:"shopName,omitempty"`
	LegalID    string `json:"legalId,omitempty"`
	FooterCopy string `json:"footerCopy,omitempty"`
}

// SnippetsRecord mirrors Snippets with presence-tracked booleans.
type SnippetsRecord struct {
	ShowBanner       *bool `json:"showBanner,omitempty"`
	ShowNotice       *bool `json:"showNotice,omitempty"`
	ShowSecuritySeal *bool `json:"showSecuritySeal,omitempty"`
	CardShadow       *bool `json:"cardShadow,omitempty"`
	ButtonPulse      *bool `json:"buttonPulse,omitempty"`
	ButtonShadow     *bool `json:"buttonShadow,omitempty"`
	ShowSocialProof  *bool `json:"showSocialProof,omitempty"`
	ShowLegalID      *bool `json:"showLegalId,omitempty"`
}

// SizesRecord mirrors Sizes.
type SizesRecord struct {
	LogoSize     string `json:"logoSize,omitempty"`
	BannerHeight string `json:"bannerHeight,omitempty"`
	ButtonSize   string `json:"buttonSize,omitempty"`
}

// MarginsRecord mirrors Margins.
type MarginsRecord struct {
	CardGap    string `json:"cardGap,omitempty"`
	SectionGap string `json:"sectionGap,omitempty"`
}

// DecodeRecord parses a JSON record. Malformed input yields an empty record
// rather than an error: missing keys simply default on Load.
func DecodeRecord(data []byte) Record {
	var rec Record
	if len(data) > 0 {
		_ = json.Unmarshal(data, &rec)
	}
	return rec
}

// Load builds a Config from a possibly-partial persisted record. Missing
// fields take their documented defaults; malformed enum values fall back to
// the first valid option. Load never fails.
func Load(rec Record) Config {
	cfg := Defaults()
	apply(&cfg, rec)
	return cfg
}

// Merge returns cur with exactly the fields present in partial overridden,
// deep per nested group. Fields absent from partial are preserved.
func Merge(cur Config, partial Record) Config {
	cfg := cur
	apply(&cfg, partial)
	return cfg
}

// Record returns the full wire form of c. Every group and field is defined,
// so Load(c.Record()) == c.
func (c Config) Record() Record {
	t := c.Snippets
	return Record{
		Layout: &LayoutRecord{
			Variant:    string(c.Layout.Variant),
			Navigation: string(c.Layout.Navigation),
			Font:       string(c.Layout.Font),
			Corner:     string(c.Layout.Corner),
		},
		Colors: &ColorsRecord{
			Primary:          c.Colors.Primary,
			Background:       c.Colors.Background,
			CardBackground:   c.Colors.CardBackground,
			CardText:         c.Colors.CardText,
			Button:           c.Colors.Button,
			ButtonText:       c.Colors.ButtonText,
			FooterBackground: c.Colors.FooterBackground,
			FooterText:       c.Colors.FooterText,
			BumpBackground:   c.Colors.BumpBackground,
			BumpBorder:       c.Colors.BumpBorder,
			BumpText:         c.Colors.BumpText,
			StepActive:       c.Colors.StepActive,
			StepInactive:     c.Colors.StepInactive,
			NoticeBar:        c.Colors.NoticeBar,
			NoticeBarText:    c.Colors.NoticeBarText,
		},
		Images: &ImagesRecord{
			LogoURL:          c.Images.LogoURL,
			FaviconURL:       c.Images.FaviconURL,
			BannerMobileURL:  c.Images.BannerMobileURL,
			BannerDesktopURL: c.Images.BannerDesktopURL,
			LogoAlign:        string(c.Images.LogoAlign),
		},
		Texts: &TextsRecord{
			NoticeHTML: c.Texts.NoticeHTML,
			ShopName:   c.Texts.ShopName,
			LegalID:    c.Texts.LegalID,
			FooterCopy: c.Texts.FooterCopy,
		},
		Snippets: &SnippetsRecord{
			ShowBanner:       &t.ShowBanner,
			ShowNotice:       &t.ShowNotice,
			ShowSecuritySeal: &t.ShowSecuritySeal,
			CardShadow:       &t.CardShadow,
			ButtonPulse:      &t.ButtonPulse,
			ButtonShadow:     &t.ButtonShadow,
			ShowSocialProof:  &t.ShowSocialProof,
			ShowLegalID:      &t.ShowLegalID,
		},
		Sizes: &SizesRecord{
			LogoSize:     string(c.Sizes.LogoSize),
			BannerHeight: string(c.Sizes.BannerHeight),
			ButtonSize:   string(c.Sizes.ButtonSize),
		},
		Margins: &MarginsRecord{
			CardGap:    string(c.Margins.CardGap),
			SectionGap: string(c.Margins.SectionGap),
		},
	}
}

// apply writes the fields present in rec onto cfg. String fields are present
// when non-empty (every default is non-empty, so empty means "not provided");
// booleans are present when the pointer is non-nil.
func apply(cfg *Config, rec Record) {
	if l := rec.Layout; l != nil {
		if l.Variant != "" {
			cfg.Layout.Variant = normVariant(l.Variant)
		}
		if l.Navigation != "" {
			cfg.Layout.Navigation = normNavigation(l.Navigation)
		}
		if l.Font != "" {
			cfg.Layout.Font = normFont(l.Font)
		}
		if l.Corner != "" {
			cfg.Layout.Corner = normCorner(l.Corner)
		}
	}
	if c := rec.Colors; c != nil {
		setStr(&cfg.Colors.Primary, c.Primary)
		setStr(&cfg.Colors.Background, c.Background)
		setStr(&cfg.Colors.CardBackground, c.CardBackground)
		setStr(&cfg.Colors.CardText, c.CardText)
		setStr(&cfg.Colors.Button, c.Button)
		setStr(&cfg.Colors.ButtonText, c.ButtonText)
		setStr(&cfg.Colors.FooterBackground, c.FooterBackground)
		setStr(&cfg.Colors.FooterText, c.FooterText)
		setStr(&cfg.Colors.BumpBackground, c.BumpBackground)
		setStr(&cfg.Colors.BumpBorder, c.BumpBorder)
		setStr(&cfg.Colors.BumpText, c.BumpText)
		setStr(&cfg.Colors.StepActive, c.StepActive)
		setStr(&cfg.Colors.StepInactive, c.StepInactive)
		setStr(&cfg.Colors.NoticeBar, c.NoticeBar)
		setStr(&cfg.Colors.NoticeBarText, c.NoticeBarText)
	}
	if im := rec.Images; im != nil {
		setStr(&cfg.Images.LogoURL, im.LogoURL)
		setStr(&cfg.Images.FaviconURL, im.FaviconURL)
		setStr(&cfg.Images.BannerMobileURL, im.BannerMobileURL)
		setStr(&cfg.Images.BannerDesktopURL, im.BannerDesktopURL)
		if im.LogoAlign != "" {
			cfg.Images.LogoAlign = normAlign(im.LogoAlign)
		}
	}
	if tx := rec.Texts; tx != nil {
		if tx.NoticeHTML != "" {
			cfg.Texts.NoticeHTML = SanitizeHTML(tx.NoticeHTML)
		}
		setStr(&cfg.Texts.ShopName, tx.ShopName)
		setStr(&cfg.Texts.LegalID, tx.LegalID)
		setStr(&cfg.Texts.FooterCopy, tx.FooterCopy)
	}
	if sn := rec.Snippets; sn != nil {
		setBool(&cfg.Snippets.ShowBanner, sn.ShowBanner)
		setBool(&cfg.Snippets.ShowNotice, sn.ShowNotice)
		setBool(&cfg.Snippets.ShowSecuritySeal, sn.ShowSecuritySeal)
		setBool(&cfg.Snippets.CardShadow, sn.CardShadow)
		setBool(&cfg.Snippets.ButtonPulse, sn.ButtonPulse)
		setBool(&cfg.Snippets.ButtonShadow, sn.ButtonShadow)
		setBool(&cfg.Snippets.ShowSocialProof, sn.ShowSocialProof)
		setBool(&cfg.Snippets.ShowLegalID, sn.ShowLegalID)
	}
	if sz := rec.Sizes; sz != nil {
		if sz.LogoSize != "" {
			cfg.Sizes.LogoSize = normScale(sz.LogoSize)
		}
		if sz.BannerHeight != "" {
			cfg.Sizes.BannerHeight = normScale(sz.BannerHeight)
		}
		if sz.ButtonSize != "" {
			cfg.Sizes.ButtonSize = normScale(sz.ButtonSize)
		}
	}
	if m := rec.Margins; m != nil {
		if m.CardGap != "" {
			cfg.Margins.CardGap = normGap(m.CardGap)
		}
		if m.SectionGap != "" {
			cfg.Margins.SectionGap = normGap(m.SectionGap)
		}
	}
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
