package typography

import (
	"strconv"
	"strings"
)

// headingSteps are the modular scale steps for h1 through h6.
var headingSteps = [6]float64{5.0 / 5, 3.0 / 5, 2.0 / 5, 0, -1.0 / 5, -1.5 / 5}

type decl struct{ prop, value string }

// Stylesheet renders the global CSS for t: base font, heading sizes from the
// scale and block spacing from the rhythm.
func (t *Typography) Stylesheet() string {
	var b strings.Builder
	one := t.Rhythm(1).String()
	half := t.Rhythm(0.5).String()
	pct := strconv.FormatFloat(t.cfg.BaseFontSize/16*100, 'f', -1, 64) + "%"
	lh := strconv.FormatFloat(t.cfg.BaseLineHeight, 'f', -1, 64)

	writeRule(&b, "html",
		decl{"font", strings.TrimSpace(t.cfg.BodyWeight + " " + pct + "/" + lh + " " + FontStack(t.cfg.BodyFontFamily))},
		decl{"box-sizing", "border-box"},
		decl{"overflow-y", "scroll"},
	)
	writeRule(&b, "*, *:before, *:after", decl{"box-sizing", "inherit"})
	writeRule(&b, "body",
		decl{"color", t.cfg.BodyColor},
		decl{"font-family", FontStack(t.cfg.BodyFontFamily)},
		decl{"font-weight", t.cfg.BodyWeight},
		decl{"word-wrap", "break-word"},
		decl{"font-kerning", "normal"},
	)
	writeRule(&b, "img", decl{"max-width", "100%"}, decl{"margin", "0 0 " + one}, decl{"padding", "0"})
	writeRule(&b, "h1, h2, h3, h4, h5, h6",
		decl{"margin", "0 0 " + one},
		decl{"padding", "0"},
		decl{"color", t.cfg.HeaderColor},
		decl{"font-family", FontStack(t.cfg.HeaderFontFamily)},
		decl{"font-weight", t.cfg.HeaderWeight},
		decl{"text-rendering", "optimizeLegibility"},
	)
	for i, step := range headingSteps {
		s := t.Scale(step)
		writeRule(&b, "h"+strconv.Itoa(i+1),
			decl{"font-size", s.FontSize.String()},
			decl{"line-height", s.LineHeight.String()},
		)
	}
	writeRule(&b, "p, ul, ol, dl, blockquote, pre, table, figure, hr, form, fieldset",
		decl{"margin", "0 0 " + one},
		decl{"padding", "0"},
	)
	writeRule(&b, "ul, ol", decl{"margin-left", one}, decl{"list-style-position", "outside"})
	writeRule(&b, "li", decl{"margin-bottom", half})
	writeRule(&b, "blockquote",
		decl{"margin-left", t.Rhythm(-0.75).String()},
		decl{"padding-left", t.Rhythm(0.75).String()},
		decl{"border-left", t.Rhythm(0.25).String() + " solid hsla(0,0%,0%,0.9)"},
		decl{"font-style", "italic"},
	)
	writeRule(&b, "b, strong, dt, th", decl{"font-weight", t.cfg.BoldWeight})
	writeRule(&b, "hr",
		decl{"background", "hsla(0,0%,0%,0.2)"},
		decl{"border", "none"},
		decl{"height", "1px"},
		decl{"margin-bottom", "calc(" + one + " - 1px)"},
	)
	writeRule(&b, "code, kbd, pre, samp", decl{"font-size", "85%"}, decl{"line-height", "normal"})
	writeRule(&b, "a", decl{"box-shadow", "0 1px 0 0 currentColor"}, decl{"color", "#007acc"}, decl{"text-decoration", "none"})
	writeRule(&b, "a.post-link, .post-thumbnail", decl{"box-shadow", "none"})
	return b.String()
}

// FontStack joins font family names into a CSS font-family value. Names
// containing spaces are quoted.
func FontStack(families []string) string {
	parts := make([]string, 0, len(families))
	for _, f := range families {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if strings.ContainsRune(f, ' ') {
			f = `"` + strings.ReplaceAll(f, `"`, ``) + `"`
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, ", ")
}

func writeRule(b *strings.Builder, selector string, decls ...decl) {
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range decls {
		if d.value == "" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(d.prop)
		b.WriteString(": ")
		b.WriteString(d.value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}
