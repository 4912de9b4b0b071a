// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notion is a minimal read-only client for the Notion REST API.
// It fetches child pages of a root page, page metadata, and block trees —
// the only three calls the blog pipeline needs.
package notion

import "time"

// BlockType tags the payload shape of a Block.
type BlockType string

// Block types understood by the renderer. Anything else is carried through
// verbatim and rendered as a visible placeholder.
const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockQuote            BlockType = "quote"
	BlockCode             BlockType = "code"
	BlockImage            BlockType = "image"
	BlockCallout          BlockType = "callout"
	BlockDivider          BlockType = "divider"
	BlockChildPage        BlockType = "child_page"
)

// Annotations holds the independent style flags of a rich text span.
// The flags are not mutually exclusive; all set flags apply at once.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color,omitempty"`
}

// Link is a hyperlink target inside a rich text span.
type Link struct {
	URL string `json:"url"`
}

// TextContent is the text payload of a rich text span.
type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// RichText is one run of styled inline text.
type RichText struct {
	Type        string       `json:"type,omitempty"`
	Text        *TextContent `json:"text,omitempty"`
	Annotations Annotations  `json:"annotations"`
	PlainText   string       `json:"plain_text"`
	Href        string       `json:"href,omitempty"`
}

// LinkURL returns the span's hyperlink target, or "" if the span has none.
func (rt RichText) LinkURL() string {
	if rt.Text != nil && rt.Text.Link != nil && rt.Text.Link.URL != "" {
		return rt.Text.Link.URL
	}
	return rt.Href
}

// RichTextBlock is the payload of paragraph, list item, and quote blocks.
type RichTextBlock struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

// HeadingBlock is the payload of heading_1..heading_3 blocks.
type HeadingBlock struct {
	RichText     []RichText `json:"rich_text"`
	IsToggleable bool       `json:"is_toggleable,omitempty"`
	Color        string     `json:"color,omitempty"`
}

// CodeBlock is the payload of code blocks.
type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"`
	Language string     `json:"language,omitempty"`
}

// FileLink points at an externally hosted or Notion-hosted file.
type FileLink struct {
	URL string `json:"url"`
}

// ImageBlock is the payload of image blocks. Exactly one of External or File
// is set depending on where the image is hosted.
type ImageBlock struct {
	Type     string     `json:"type,omitempty"`
	External *FileLink  `json:"external,omitempty"`
	File     *FileLink  `json:"file,omitempty"`
	Caption  []RichText `json:"caption,omitempty"`
}

// URLString resolves the image source from either hosting variant.
func (ib *ImageBlock) URLString() string {
	switch {
	case ib == nil:
		return ""
	case ib.External != nil && ib.External.URL != "":
		return ib.External.URL
	case ib.File != nil:
		return ib.File.URL
	}
	return ""
}

// Icon is a callout icon; only emoji icons are rendered.
type Icon struct {
	Type  string `json:"type,omitempty"`
	Emoji string `json:"emoji,omitempty"`
}

// CalloutBlock is the payload of callout blocks.
type CalloutBlock struct {
	RichText []RichText `json:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty"`
	Color    string     `json:"color,omitempty"`
}

// ChildPageBlock is the payload of child_page blocks.
type ChildPageBlock struct {
	Title string `json:"title"`
}

// Block is one node of structured page content. Payload presence is
// determined by Type; unknown types carry none.
type Block struct {
	ID          string    `json:"id"`
	Type        BlockType `json:"type"`
	HasChildren bool      `json:"has_children,omitempty"`

	Paragraph        *RichTextBlock  `json:"paragraph,omitempty"`
	Heading1         *HeadingBlock   `json:"heading_1,omitempty"`
	Heading2         *HeadingBlock   `json:"heading_2,omitempty"`
	Heading3         *HeadingBlock   `json:"heading_3,omitempty"`
	BulletedListItem *RichTextBlock  `json:"bulleted_list_item,omitempty"`
	NumberedListItem *RichTextBlock  `json:"numbered_list_item,omitempty"`
	Quote            *RichTextBlock  `json:"quote,omitempty"`
	Code             *CodeBlock      `json:"code,omitempty"`
	Image            *ImageBlock     `json:"image,omitempty"`
	Callout          *CalloutBlock   `json:"callout,omitempty"`
	ChildPage        *ChildPageBlock `json:"child_page,omitempty"`

	// Children holds nested blocks resolved by the blog service for blocks
	// with HasChildren set. It is not part of the Notion wire format.
	Children []Block `json:"children,omitempty"`
}

// RichTexts returns the block's rich text spans, or nil for types that
// carry none (image, divider, child_page, unknown).
func (b *Block) RichTexts() []RichText {
	switch b.Type {
	case BlockParagraph:
		if b.Paragraph != nil {
			return b.Paragraph.RichText
		}
	case BlockHeading1:
		if b.Heading1 != nil {
			return b.Heading1.RichText
		}
	case BlockHeading2:
		if b.Heading2 != nil {
			return b.Heading2.RichText
		}
	case BlockHeading3:
		if b.Heading3 != nil {
			return b.Heading3.RichText
		}
	case BlockBulletedListItem:
		if b.BulletedListItem != nil {
			return b.BulletedListItem.RichText
		}
	case BlockNumberedListItem:
		if b.NumberedListItem != nil {
			return b.NumberedListItem.RichText
		}
	case BlockQuote:
		if b.Quote != nil {
			return b.Quote.RichText
		}
	case BlockCode:
		if b.Code != nil {
			return b.Code.RichText
		}
	case BlockCallout:
		if b.Callout != nil {
			return b.Callout.RichText
		}
	}
	return nil
}

// IsListItem reports whether the block is a bulleted or numbered list item.
func (b *Block) IsListItem() bool {
	return b.Type == BlockBulletedListItem || b.Type == BlockNumberedListItem
}

// Heading returns the heading payload for heading blocks, nil otherwise.
func (b *Block) Heading() *HeadingBlock {
	switch b.Type {
	case BlockHeading1:
		return b.Heading1
	case BlockHeading2:
		return b.Heading2
	case BlockHeading3:
		return b.Heading3
	}
	return nil
}

// DateValue is the value of a date property.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// SelectOption is one value of a multi-select property.
type SelectOption struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Property is a page property value. Like Block, the populated field is
// determined by Type.
type Property struct {
	ID          string         `json:"id,omitempty"`
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	CreatedTime string         `json:"created_time,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
}

// Cover is a page cover image, hosted externally or by Notion.
type Cover struct {
	Type     string    `json:"type"`
	External *FileLink `json:"external,omitempty"`
	File     *FileLink `json:"file,omitempty"`
}

// URLString resolves the cover source from either hosting variant.
func (c *Cover) URLString() string {
	switch {
	case c == nil:
		return ""
	case c.Type == "external" && c.External != nil:
		return c.External.URL
	case c.Type == "file" && c.File != nil:
		return c.File.URL
	}
	return ""
}

// Page is the metadata of one Notion page.
type Page struct {
	ID          string              `json:"id"`
	CreatedTime time.Time           `json:"created_time"`
	Cover       *Cover              `json:"cover,omitempty"`
	Properties  map[string]Property `json:"properties"`
}

// PageRef identifies one child page of the blog root.
type PageRef struct {
	ID    string
	Title string
}
