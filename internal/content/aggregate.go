package content

// Theme holds the global visual settings. Values live in the settings
// table as flat strings; the struct exists so client code stops guessing
// key names.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
	ButtonStyle     string `json:"buttonStyle"`
}

// ThemePartial is a sparse theme update: nil fields are left untouched.
type ThemePartial struct {
	PrimaryColor    *string
	SecondaryColor  *string
	BackgroundColor *string
	TextColor       *string
	FontFamily      *string
	ButtonStyle     *string
}

// Merge lays the partial over the theme and returns the result.
func (t Theme) Merge(partial ThemePartial) Theme {
	if partial.PrimaryColor != nil {
		t.PrimaryColor = *partial.PrimaryColor
	}
	if partial.SecondaryColor != nil {
		t.SecondaryColor = *partial.SecondaryColor
	}
	if partial.BackgroundColor != nil {
		t.BackgroundColor = *partial.BackgroundColor
	}
	if partial.TextColor != nil {
		t.TextColor = *partial.TextColor
	}
	if partial.FontFamily != nil {
		t.FontFamily = *partial.FontFamily
	}
	if partial.ButtonStyle != nil {
		t.ButtonStyle = *partial.ButtonStyle
	}
	return t
}

// Settings returns only the keys present in the partial, mapped to their
// settings-table names. Theme persistence sends exactly these.
func (p ThemePartial) Settings() map[string]string {
	out := map[string]string{}
	if p.PrimaryColor != nil {
		out["primaryColor"] = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		out["secondaryColor"] = *p.SecondaryColor
	}
	if p.BackgroundColor != nil {
		out["backgroundColor"] = *p.BackgroundColor
	}
	if p.TextColor != nil {
		out["textColor"] = *p.TextColor
	}
	if p.FontFamily != nil {
		out["fontFamily"] = *p.FontFamily
	}
	if p.ButtonStyle != nil {
		out["buttonStyle"] = *p.ButtonStyle
	}
	return out
}

// ThemeFromSettings builds a theme from the flat settings map, falling
// back to the given defaults field by field.
func ThemeFromSettings(settings map[string]string, defaults Theme) Theme {
	pick := func(key, def string) string {
		if v, ok := settings[key]; ok && v != "" {
			return v
		}
		return def
	}
	return Theme{
		PrimaryColor:    pick("primaryColor", defaults.PrimaryColor),
		SecondaryColor:  pick("secondaryColor", defaults.SecondaryColor),
		BackgroundColor: pick("backgroundColor", defaults.BackgroundColor),
		TextColor:       pick("textColor", defaults.TextColor),
		FontFamily:      pick("fontFamily", defaults.FontFamily),
		ButtonStyle:     pick("buttonStyle", defaults.ButtonStyle),
	}
}

// Aggregate is the merged, client-held configuration: built-in defaults
// overlaid with fetched documents and settings. It is derived state,
// rebuilt on every load, and never authoritative.
type Aggregate struct {
	RecipientName string
	Theme         Theme
	Screens       map[string]Payload
	MusicURL      string
}

// Clone returns a deep copy of the aggregate.
func (a Aggregate) Clone() Aggregate {
	screens := make(map[string]Payload, len(a.Screens))
	for slug, payload := range a.Screens {
		screens[slug] = payload.Clone()
	}
	a.Screens = screens
	return a
}

// Screen returns the payload for a slug, which always exists for known
// slugs after a load (defaults fill any gap).
func (a Aggregate) Screen(slug string) (Payload, bool) {
	p, ok := a.Screens[slug]
	return p, ok
}
