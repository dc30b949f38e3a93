// thml.go cleans ThML markup (https://www.ccel.org/ThML/).
package cleaner

import "regexp"

// ThML is the coarsest cleaner: scripture reference and commentary spans
// are deleted with their content, then every remaining tag is stripped
// with its content kept.
type ThML struct {
	removers []*regexp.Regexp
}

// NewThML compiles the ThML tag patterns.
func NewThML() *ThML {
	return &ThML{removers: []*regexp.Regexp{
		regexp.MustCompile(`<scripRef.*?>.*?</scripRef>`),
		regexp.MustCompile(`<scripCom.*?>.*?</scripCom>`),
		regexp.MustCompile(`<.*?>`),
	}}
}

// Clean removes ThML tags from text. The special character reference tags
// <CAxx> and <CUxxxx> are not supported: they are stripped like any other
// tag rather than converted to the characters they denote.
func (c *ThML) Clean(text string) string {
	for _, re := range c.removers {
		text = re.ReplaceAllString(text, "")
	}
	return text
}
