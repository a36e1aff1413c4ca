package theme

// Defaults returns the documented default configuration. Every field is
// non-zero; loading an empty persisted record yields exactly this value.
func Defaults() Config {
	return Config{
		Layout: Layout{
			Variant:    VariantSimple,
			Navigation: NavMulti,
			Font:       FontInter,
			Corner:     CornerRounded,
		},
		Colors: Colors{
			Primary:          "#0f62fe",
			Background:       "#f4f4f4",
			CardBackground:   "#ffffff",
			CardText:         "#161616",
			Button:           "#0f62fe",
			ButtonText:       "#ffffff",
			FooterBackground: "#161616",
			FooterText:       "#f4f4f4",
			BumpBackground:   "#fff8e1",
			BumpBorder:       "#f1c21b",
			BumpText:         "#161616",
			StepActive:       "#0f62fe",
			StepInactive:     "#c6c6c6",
			NoticeBar:        "#161616",
			NoticeBarText:    "#ffffff",
		},
		Images: Images{
			LogoURL:          "/static/placeholder-logo.svg",
			FaviconURL:       "/static/favicon.ico",
			BannerMobileURL:  "/static/placeholder-banner-mobile.png",
			BannerDesktopURL: "/static/placeholder-banner-desktop.png",
			LogoAlign:        AlignCenter,
		},
		Texts: Texts{
			NoticeHTML: "<strong>Limited offer</strong> — free shipping today",
			ShopName:   "My Shop",
			LegalID:    "00.000.000/0000-00",
			FooterCopy: "All rights reserved.",
		},
		Snippets: Snippets{
			ShowBanner:       true,
			ShowNotice:       true,
			ShowSecuritySeal: true,
			CardShadow:       true,
			ButtonPulse:      false,
			ButtonShadow:     true,
			ShowSocialProof:  false,
			ShowLegalID:      true,
		},
		Sizes: Sizes{
			LogoSize:     ScaleMD,
			BannerHeight: ScaleMD,
			ButtonSize:   ScaleMD,
		},
		Margins: Margins{
			CardGap:    GapMD,
			SectionGap: GapMD,
		},
	}
}
