package workspace

// Wire types for the hosted content-workspace API. Every nested value is a
// pointer or slice so that absent properties unmarshal to nil and the
// accessors in props.go can substitute defaults.

// Page is one record of a collection, carrying its raw property bag.
type Page struct {
	ID             string              `json:"id"`
	URL            string              `json:"url"`
	LastEditedTime string              `json:"last_edited_time"`
	Properties     map[string]Property `json:"properties"`
}

// Property is the discriminated union of property values a page can carry.
// Only the member matching Type is populated.
type Property struct {
	Type        string        `json:"type"`
	Title       []RichText    `json:"title,omitempty"`
	RichText    []RichText    `json:"rich_text,omitempty"`
	Date        *DateValue    `json:"date,omitempty"`
	Select      *SelectValue  `json:"select,omitempty"`
	MultiSelect []SelectValue `json:"multi_select,omitempty"`
	Number      *float64      `json:"number,omitempty"`
	Checkbox    *bool         `json:"checkbox,omitempty"`
	Files       []File        `json:"files,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// RichText is a single formatted text run.
type RichText struct {
	PlainText   string      `json:"plain_text"`
	Href        string      `json:"href,omitempty"`
	Annotations Annotations `json:"annotations"`
}

// Annotations are the independent formatting flags of a text run.
type Annotations struct {
	Bold          bool `json:"bold"`
	Italic        bool `json:"italic"`
	Strikethrough bool `json:"strikethrough"`
	Underline     bool `json:"underline"`
	Code          bool `json:"code"`
}

// DateValue holds a date property. Only the start date is used.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// SelectValue is one option of a select or multi-select property.
type SelectValue struct {
	Name string `json:"name"`
}

// File is one entry of a files property. Workspace-hosted files carry
// time-limited URLs; external files carry a caller-provided URL.
type File struct {
	Name     string        `json:"name,omitempty"`
	File     *HostedFile   `json:"file,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
}

// HostedFile is a workspace-hosted file reference. The URL expires.
type HostedFile struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

// ExternalFile is a user-supplied file reference.
type ExternalFile struct {
	URL string `json:"url"`
}

// Block is one unit of a page's body. Type discriminates which member is
// populated; unrecognized types leave all members nil.
type Block struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	HasChildren bool          `json:"has_children,omitempty"`
	Paragraph   *TextBlock    `json:"paragraph,omitempty"`
	Heading1    *TextBlock    `json:"heading_1,omitempty"`
	Heading2    *TextBlock    `json:"heading_2,omitempty"`
	Heading3    *TextBlock    `json:"heading_3,omitempty"`
	Bulleted    *TextBlock    `json:"bulleted_list_item,omitempty"`
	Numbered    *TextBlock    `json:"numbered_list_item,omitempty"`
	Quote       *TextBlock    `json:"quote,omitempty"`
	Toggle      *TextBlock    `json:"toggle,omitempty"`
	Code        *CodeBlock    `json:"code,omitempty"`
	Callout     *CalloutBlock `json:"callout,omitempty"`
	Image       *ImageBlock   `json:"image,omitempty"`
	Divider     *struct{}     `json:"divider,omitempty"`
	Table       *TableBlock   `json:"table,omitempty"`
}

// TextBlock is the common shape of paragraph, heading, list, quote and
// toggle blocks.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
}

// CodeBlock carries a code snippet and its language.
type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language,omitempty"`
}

// CalloutBlock carries highlighted text with an optional emoji icon.
type CalloutBlock struct {
	RichText []RichText `json:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty"`
}

// Icon is a callout's emoji icon.
type Icon struct {
	Emoji string `json:"emoji,omitempty"`
}

// ImageBlock references an image, hosted or external, with a caption.
type ImageBlock struct {
	File     *HostedFile   `json:"file,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
	Caption  []RichText    `json:"caption,omitempty"`
}

// TableBlock is carried through as a stub; table contents live in child
// blocks that this pipeline does not descend into.
type TableBlock struct {
	TableWidth int `json:"table_width,omitempty"`
}

// URL returns the image's URL, preferring the hosted file.
func (b *ImageBlock) URL() string {
	if b == nil {
		return ""
	}
	if b.File != nil {
		return b.File.URL
	}
	if b.External != nil {
		return b.External.URL
	}
	return ""
}
