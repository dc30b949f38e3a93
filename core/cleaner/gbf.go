// gbf.go cleans GBF markup (http://ebible.org/bible/gbf.htm).
// GBF uses bracketed two-letter codes; paired codes signal open/close by
// letter case, e.g. <TB>...<Tb> wraps a title block.
package cleaner

import "regexp"

// GBF strips the GBF codes that occur in biblical texts. Codes outside
// this set are left untouched.
type GBF struct {
	removers []*regexp.Regexp
}

// gbfPatterns enumerates the recognized codes. Title (T*) and footnote
// (F*) pairs are deleted with their content; reference and formatting
// codes are stripped on their own.
var gbfPatterns = []string{
	`<TB>.*?<Tb>`, `<TC>.*?<Tc>`, `<TH>.*?<Th>`, `<TS>.*?<Ts>`, `<TT>.*?<Tt>`,
	`<TN>.*?<Tn>`, `<TA>.*?<Ta>`, `<TP>.*?<Tp>`,
	`<FB>.*?<fb>`, `<FC>.*?<fc>`, `<FI>.*?<fi>`, `<FN.*?>.*?<fn>`, `<FO>.*?<fo>`,
	`<FR>.*?<fr>`, `<FS>.*?<fs>`, `<FU>.*?<fu>`, `<FV>.*?<fv>`,
	`<RF>.*?<Rf>`, `<RB>`, `<RP.*?>`, `<Rp.*?>`, `<RX.*?>`, `<Rx.*?>`,
	`<H.*?>`,
	`<B.*?>`,
	`<ZZ>`,
	`<D.*?>`, `<J.*?>`, `<P.>`,
	`<W.*?>`,
	`<S.*?>`,
	`<N.*?>`,
	`<C.>`,
}

// NewGBF compiles the GBF code patterns.
func NewGBF() *GBF {
	c := &GBF{}
	for _, pat := range gbfPatterns {
		c.removers = append(c.removers, regexp.MustCompile(pat))
	}
	return c
}

// Clean removes GBF codes from text. The special character reference codes
// <CAxx> and <CUxxxx> are not supported and pass through unchanged.
func (c *GBF) Clean(text string) string {
	for _, re := range c.removers {
		text = re.ReplaceAllString(text, "")
	}
	return text
}
