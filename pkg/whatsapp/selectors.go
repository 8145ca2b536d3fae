package whatsapp

import (
	"fmt"
	"sort"
)

// Names of the elements the sequencer interacts with.
const (
	SelectorLoginMarker    = "login_marker"
	SelectorAttachMenu     = "attach_menu"
	SelectorAttachMedia    = "attach_media"
	SelectorAttachDocument = "attach_document"
	SelectorTextBox        = "text_box"
	SelectorCaptionBox     = "caption_box"
	SelectorSendText       = "send_text"
	SelectorSendFile       = "send_file"
)

// Selector locates one element: Class is a dotted class signature and Index
// picks among its matches.
type Selector struct {
	Class string `yaml:"class" json:"class"`
	Index int    `yaml:"index" json:"index"`
}

// Selectors maps element names to their selectors.
type Selectors map[string]Selector

// SelectorOverride replaces parts of a Selector. An empty Class or a nil
// Index keeps the value being overridden.
type SelectorOverride struct {
	Class string `yaml:"class,omitempty" json:"class,omitempty"`
	Index *int   `yaml:"index,omitempty" json:"index,omitempty"`
}

// SelectorOverrides maps element names to partial selectors.
type SelectorOverrides map[string]SelectorOverride

// DefaultSelectors returns the class signatures of the WhatsApp Web build
// these flows were written against. They change with every front-end
// release, so override them through the config file rather than code.
func DefaultSelectors() Selectors {
	return Selectors{
		SelectorLoginMarker:    {Class: "landing-title._2K09Y"},
		SelectorAttachMenu:     {Class: "bo8jc6qi.p4t1lx4y.brjalhku"},
		SelectorAttachMedia:    {Class: "erpdyial.tviruh8d.gfz4du6o.r7fjleex.lhj4utae.le5p0ye3", Index: 1},
		SelectorAttachDocument: {Class: "erpdyial.tviruh8d.gfz4du6o.r7fjleex.lhj4utae.le5p0ye3"},
		SelectorTextBox:        {Class: "selectable-text.copyable-text.iq0m558w.g0rxnol2", Index: 1},
		SelectorCaptionBox:     {Class: "to2l77zo.gfz4du6o.ag5g9lrv.fe5nidar.kao4egtt"},
		SelectorSendText:       {Class: "tvf2evcx.oq44ahr5.lb5m6g5c.svlsagor.p2rjqpw5.epia9gcq"},
		SelectorSendFile: {Class: "p357zi0d.gndfcl4n.ac2vgrno.mh8l8k0y." +
			"k45dudtp.i5tg98hk.f9ovudaz.przvwfww.gx1rr48f." +
			"f8jlpxt4.hnx8ox4h.k17s6i4e.ofejerhi.os0tgls2." +
			"g9p5wyxn.i0tg5vk9.aoogvgrq.o2zu3hjb.hftcxtij." +
			"rtx6r8la.e3b81npk.oa9ii99z.p1ii4mzz"},
	}
}

// Merge returns a copy of s with overrides applied field by field.
func (s Selectors) Merge(overrides SelectorOverrides) Selectors {
	merged := make(Selectors, len(s)+len(overrides))
	for name, sel := range s {
		merged[name] = sel
	}
	for name, o := range overrides {
		sel := merged[name]
		if o.Class != "" {
			sel.Class = o.Class
		}
		if o.Index != nil {
			sel.Index = *o.Index
		}
		merged[name] = sel
	}
	return merged
}

// Overrides returns s as a full set of overrides, with every index set.
func (s Selectors) Overrides() SelectorOverrides {
	out := make(SelectorOverrides, len(s))
	for name, sel := range s {
		index := sel.Index
		out[name] = SelectorOverride{Class: sel.Class, Index: &index}
	}
	return out
}

// Validate checks that every element the sequencer needs has a usable
// selector.
func (s Selectors) Validate() error {
	var missing []string
	for _, name := range requiredSelectors {
		sel, ok := s[name]
		if !ok || sel.Class == "" {
			missing = append(missing, name)
			continue
		}
		if sel.Index < 0 {
			return fmt.Errorf("%w: selector %s has negative index %d", ErrInvalidArgument, name, sel.Index)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing selectors %v", ErrInvalidArgument, missing)
	}
	return nil
}

var requiredSelectors = []string{
	SelectorLoginMarker,
	SelectorAttachMenu,
	SelectorAttachMedia,
	SelectorAttachDocument,
	SelectorTextBox,
	SelectorCaptionBox,
	SelectorSendText,
	SelectorSendFile,
}
