// osis.go cleans OSIS markup (http://www.bibletechnologies.net/).
// Only the tags that actually occur in biblical texts are handled.
package cleaner

import "regexp"

// OSIS strips OSIS tags. Tags fall in two categories: content-removing
// tags (notes, titles, apparatus) whose whole span is deleted, and
// structural tags whose markers are stripped with the inner text kept.
type OSIS struct {
	lineBreak *regexp.Regexp
	removers  []*regexp.Regexp
}

// Tags whose content is deleted along with the tag pair.
var osisRemoveContent = []string{
	"note", "milestone", "title", "abbr", "catchWord", "index", "rdg",
	"rdgGroup", "figure",
}

// Tags stripped while their content is preserved. Self-closing forms are
// deleted outright.
var osisKeepContent = []string{
	"p", "l", "lg", "q", "a", "w", "divineName", "foreign", "hi",
	"inscription", "mentioned", "name", "reference", "seg", "transChange",
	"salute", "signed", "closer", "speech", "speaker", "list", "item",
	"table", "head", "row", "cell", "caption", "chapter", "div",
}

// NewOSIS compiles the OSIS tag patterns.
func NewOSIS() *OSIS {
	c := &OSIS{
		// x-br milestones mark line breaks; add a space before stripping
		// so adjacent words do not run together.
		lineBreak: regexp.MustCompile(`(<[^\>]+type="x-br"[^\>]+\>)`),
	}
	for _, tag := range osisRemoveContent {
		c.removers = append(c.removers,
			regexp.MustCompile(`(?i)<`+tag+`.*?`+tag+`>`),
			regexp.MustCompile(`(?i)<`+tag+`[^<]*/>`))
	}
	for _, tag := range osisKeepContent {
		c.removers = append(c.removers,
			regexp.MustCompile(`(?i)<`+tag+`.*?>`),
			regexp.MustCompile(`(?i)</`+tag+`>`),
			regexp.MustCompile(`(?i)<`+tag+`[^<]*/>`))
	}
	return c
}

// Clean removes OSIS tags from text.
func (c *OSIS) Clean(text string) string {
	text = c.lineBreak.ReplaceAllString(text, "$1 ")
	for _, re := range c.removers {
		text = re.ReplaceAllString(text, "")
	}
	return text
}
