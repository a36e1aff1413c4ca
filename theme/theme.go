// Package theme defines the checkout theme configuration model: the single
// source of visual truth for one checkout page.
//
// A Config is a value type made of nested groups (layout, colors, images,
// texts, snippets, sizes, margins). Every field has a non-zero default, so a
// zero persisted record loads into a fully usable configuration. All
// transformations here are pure; nothing in this package performs I/O.
package theme

// Variant selects one of the alternative checkout layout implementations.
type Variant string

const (
	VariantSimple Variant = "simple"
	VariantShop   Variant = "shop"
)

// Variants lists the valid layout variants, first entry is the fallback.
func Variants() []Variant { return []Variant{VariantSimple, VariantShop} }

// Navigation controls how the checkout collects data: one scrollable form,
// discrete steps, or a zero-step automatic flow.
type Navigation string

const (
	NavSingle    Navigation = "single"
	NavMulti     Navigation = "multi"
	NavAutomatic Navigation = "automatic"
)

// Navigations lists the valid navigation modes, first entry is the fallback.
func Navigations() []Navigation { return []Navigation{NavSingle, NavMulti, NavAutomatic} }

// Font is the checkout font family.
type Font string

const (
	FontInter   Font = "inter"
	FontRoboto  Font = "roboto"
	FontPoppins Font = "poppins"
	FontSystem  Font = "system"
)

// Corner is the corner-radius style applied to cards and buttons.
type Corner string

const (
	CornerStraight Corner = "straight"
	CornerRounded  Corner = "rounded"
	CornerPill     Corner = "pill"
)

// Align positions the logo inside the header.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Scale is a discrete size step for visual elements. Sizes are enumerated,
// never free numerics.
type Scale string

const (
	ScaleSM Scale = "sm"
	ScaleMD Scale = "md"
	ScaleLG Scale = "lg"
)

// Gap is a discrete spacing step between layout blocks.
type Gap string

const (
	GapNone Gap = "none"
	GapSM   Gap = "sm"
	GapMD   Gap = "md"
	GapLG   Gap = "lg"
)

// Layout groups the structural choices: which variant renders the checkout
// and how the customer moves through it.
type Layout struct {
	Variant    Variant
	Navigation Navigation
	Font       Font
	Corner     Corner
}

// Colors maps named color roles to hex values. Flat by design: layout
// variants pick the roles they need and ignore the rest.
type Colors struct {
	Primary          string
	Background       string
	CardBackground   string
	CardText         string
	Button           string
	ButtonText       string
	FooterBackground string
	FooterText       string
	BumpBackground   string
	BumpBorder       string
	BumpText         string
	StepActive       string
	StepInactive     string
	NoticeBar        string
	NoticeBarText    string
}

// Images holds named image-slot URLs plus layout hints.
type Images struct {
	LogoURL          string
	FaviconURL       string
	BannerMobileURL  string
	BannerDesktopURL string
	LogoAlign        Align
}

// Texts holds merchant-editable copy. NoticeHTML is sanitized on load.
type Texts struct {
	NoticeHTML string
	ShopName   string
	LegalID    string
	FooterCopy string
}

// Snippets are purely additive feature toggles. None is required for
// correctness and all default on load.
type Snippets struct {
	ShowBanner       bool
	ShowNotice       bool
	ShowSecuritySeal bool
	CardShadow       bool
	ButtonPulse      bool
	ButtonShadow     bool
	ShowSocialProof  bool
	ShowLegalID      bool
}

// Sizes holds the enumerated size steps for a small set of elements.
type Sizes struct {
	LogoSize     Scale
	BannerHeight Scale
	ButtonSize   Scale
}

// Margins holds the enumerated spacing steps.
type Margins struct {
	CardGap    Gap
	SectionGap Gap
}

// Config is the full visual and behavioral configuration of one checkout.
type Config struct {
	Layout   Layout
	Colors   Colors
	Images   Images
	Texts    Texts
	Snippets Snippets
	Sizes    Sizes
	Margins  Margins
}

// enum normalization: malformed values fall back to the first valid option.

func normVariant(s string) Variant {
	for _, v := range Variants() {
		if Variant(s) == v {
			return v
		}
	}
	return Variants()[0]
}

func normNavigation(s string) Navigation {
	for _, n := range Navigations() {
		if Navigation(s) == n {
			return n
		}
	}
	return Navigations()[0]
}

func normFont(s string) Font {
	switch Font(s) {
	case FontInter, FontRoboto, FontPoppins, FontSystem:
		return Font(s)
	}
	return FontInter
}

func normCorner(s string) Corner {
	switch Corner(s) {
	case CornerStraight, CornerRounded, CornerPill:
		return Corner(s)
	}
	return CornerStraight
}

func normAlign(s string) Align {
	switch Align(s) {
	case AlignLeft, AlignCenter, AlignRight:
		return Align(s)
	}
	return AlignLeft
}

func normScale(s string) Scale {
	switch Scale(s) {
	case ScaleSM, ScaleMD, ScaleLG:
		return Scale(s)
	}
	return ScaleSM
}

func normGap(s string) Gap {
	switch Gap(s) {
	case GapNone, GapSM, GapMD, GapLG:
		return Gap(s)
	}
	return GapNone
}
